package config

import (
	"errors"
	"os"
	"strconv"
	"time"

	"loyalty_app/internal/logger"

	"github.com/joho/godotenv"
)

type Config struct {
	AppPort     string
	DatabaseURL string
	JWTSecret   string
	Location    *time.Location

	LogLevel string
	LogJSON  bool

	// CookieSecure marks the access token cookie Secure (HTTPS only).
	CookieSecure bool

	// Redis backs rate limiting and the product cache. Empty address disables both.
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// Per-account limits on character activity endpoints
	ActivityRateLimit  int
	ActivityRateWindow int

	// Per-IP limits
	APIRateLimit   int
	APIRateWindow  int
	AuthRateLimit  int
	AuthRateWindow int

	ProductCacheTTL time.Duration
}

// Load reads .env and the process environment. Missing required values are fatal.
func Load() *Config {
	_ = godotenv.Load()

	cfg, err := Parse(os.Getenv)
	if err != nil {
		logger.Fatal("invalid configuration", "error", err)
	}
	return cfg
}

// Parse builds a Config from getenv, applying defaults.
func Parse(getenv func(string) string) (*Config, error) {
	dbURL := getenv("DATABASE_URL")
	if dbURL == "" {
		return nil, errors.New("DATABASE_URL is not set")
	}

	jwtSecret := getenv("JWT_SECRET")
	if jwtSecret == "" {
		return nil, errors.New("JWT_SECRET is not set")
	}

	port := getenv("APP_PORT")
	if port == "" {
		port = "8080"
	}

	tz := getenv("APP_TIMEZONE")
	if tz == "" {
		tz = "Asia/Seoul"
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, errors.New("APP_TIMEZONE is not a valid zone: " + tz)
	}

	logLevel := getenv("LOG_LEVEL")
	if logLevel == "" {
		logLevel = "info"
	}

	return &Config{
		AppPort:     port,
		DatabaseURL: dbURL,
		JWTSecret:   jwtSecret,
		Location:    loc,

		LogLevel: logLevel,
		LogJSON:  getenv("LOG_JSON") == "true",

		CookieSecure: getenv("COOKIE_SECURE") == "true",

		RedisAddr:     getenv("REDIS_ADDR"),
		RedisPassword: getenv("REDIS_PASSWORD"),
		RedisDB:       intOr(getenv("REDIS_DB"), 0),

		ActivityRateLimit:  intOr(getenv("ACTIVITY_RATE_LIMIT"), 30),
		ActivityRateWindow: intOr(getenv("ACTIVITY_RATE_WINDOW"), 60),

		APIRateLimit:   intOr(getenv("API_RATE_LIMIT"), 120),
		APIRateWindow:  intOr(getenv("API_RATE_WINDOW_SECONDS"), 60),
		AuthRateLimit:  intOr(getenv("AUTH_RATE_LIMIT"), 10),
		AuthRateWindow: intOr(getenv("AUTH_RATE_WINDOW_SECONDS"), 60),

		ProductCacheTTL: time.Duration(intOr(getenv("PRODUCT_CACHE_TTL"), 300)) * time.Second,
	}, nil
}

// intOr parses a non-negative integer, falling back to def.
func intOr(v string, def int) int {
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return def
	}
	return n
}
