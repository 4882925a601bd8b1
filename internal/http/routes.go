package http

import (
	"time"

	"loyalty_app/internal/config"
	"loyalty_app/internal/http/handlers"
	"loyalty_app/internal/http/middleware"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	redis "github.com/redis/go-redis/v9"
)

func RegisterRoutes(r *gin.Engine, db *pgxpool.Pool, rdb *redis.Client, h *handlers.Handler, cfg *config.Config, version string) {
	healthHandler := handlers.NewHealthHandler(db, rdb, version)
	middleware.UseRedis(rdb)

	r.Use(middleware.RequestID(), middleware.Metrics())

	// Health checks (no rate limiting)
	r.GET("/health", healthHandler.Health)
	r.GET("/healthz", healthHandler.Liveness)
	r.GET("/readyz", healthHandler.Readiness)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	limits := routeLimits{
		api:      middleware.RateLimit("api", cfg.APIRateLimit, time.Duration(cfg.APIRateWindow)*time.Second),
		auth:     middleware.RateLimit("auth", cfg.AuthRateLimit, time.Duration(cfg.AuthRateWindow)*time.Second),
		activity: middleware.ActivityRateLimit(cfg.ActivityRateLimit, time.Duration(cfg.ActivityRateWindow)*time.Second),
	}

	// API v1 routes
	registerAPIRoutes(r.Group("/api/v1"), h, limits)

	// Legacy /api routes for older clients
	api := r.Group("/api")
	api.GET("/health", healthHandler.Health)
	registerAPIRoutes(api, h, limits)
}

type routeLimits struct {
	api, auth, activity gin.HandlerFunc
}

func registerAPIRoutes(root *gin.RouterGroup, h *handlers.Handler, limits routeLimits) {
	auth := middleware.JWT()

	// Auth routes count against the auth limiter only
	root.POST("/auth/signup", limits.auth, h.Signup)
	root.POST("/auth/login", limits.auth, h.Login)

	api := root.Group("", limits.api)
	api.POST("/auth/logout", middleware.OptionalJWT(), h.Logout)

	// Account
	api.GET("/me", auth, h.Me)
	api.DELETE("/me", auth, h.DeleteMe)

	// Character and daily activities (per account limit)
	character := api.Group("/character", auth)
	{
		character.GET("", h.GetCharacter)
		character.GET("/remaining", h.Remaining)
		character.POST("/game", limits.activity, h.CompleteGame)
		character.POST("/pet", limits.activity, h.Pet)
		character.POST("/feed", limits.activity, h.Feed)
		character.POST("/equip", h.Equip)
		character.POST("/unequip", h.Unequip)
	}

	// Product catalog, exchange and donation
	products := api.Group("/products")
	{
		products.GET("", h.ListProducts)
		products.GET("/:id", h.GetProduct)
		products.POST("/:id/exchange", auth, h.ExchangeProduct)
		products.POST("/:id/donate", auth, h.Donate)
		products.GET("/my/donations", auth, h.MyDonations)
		products.GET("/my/exchanges", auth, h.MyExchanges)
		products.POST("/exchanges/:id/accept", auth, h.ToggleAccepted)
		products.POST("/complete-watching", auth, h.CompleteWatching)
		products.GET("/watch-status", auth, h.WatchStatus)
	}

	// Shop and inventory
	api.GET("/shop/items", h.ShopItems)
	api.POST("/shop/:itemType/purchase", auth, h.Purchase)
	api.GET("/inventory", auth, h.GetInventory)

	// Points
	api.GET("/charge/types", h.ChargeTypes)
	api.POST("/charge/:chargeType", auth, h.ChargePoints)
	api.GET("/history", auth, h.History)
	api.GET("/history/audit", auth, h.AuditHistory)
}
