package handlers

import (
	"errors"
	"net/http"

	"loyalty_app/internal/domain"
	"loyalty_app/internal/http/middleware"
	"loyalty_app/internal/logger"
	"loyalty_app/internal/service"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	Auth      *service.AuthService
	Character *service.CharacterService
	Reward    *service.RewardService
	Shop      *service.ShopService
	Charge    *service.ChargeService
	Inventory *service.InventoryService
	Audit     *service.AuditService

	// SecureCookie marks the access token cookie Secure.
	SecureCookie bool
}

// envelope is the body of every API response.
type envelope struct {
	Success bool   `json:"success"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

func respondOK(c *gin.Context, message string, data any) {
	c.JSON(http.StatusOK, envelope{Success: true, Code: "OK", Message: message, Data: data})
}

func fail(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, envelope{Success: false, Code: code, Message: message})
}

func badRequest(c *gin.Context, message string) {
	fail(c, http.StatusBadRequest, "BAD_REQUEST", message)
}

// errorStatus maps domain errors to an HTTP status and a stable error code.
var errorStatus = []struct {
	err    error
	status int
	code   string
}{
	{domain.ErrNotFound, http.StatusNotFound, "NOT_FOUND"},
	{domain.ErrDailyLimitExceeded, http.StatusBadRequest, "DAILY_LIMIT_EXCEEDED"},
	{domain.ErrInsufficientFunds, http.StatusBadRequest, "INSUFFICIENT_FUNDS"},
	{domain.ErrInsufficientStock, http.StatusBadRequest, "INSUFFICIENT_STOCK"},
	{domain.ErrNoConsumable, http.StatusBadRequest, "NO_CONSUMABLE"},
	{domain.ErrAlreadyCompleted, http.StatusConflict, "ALREADY_COMPLETED"},
	{domain.ErrInvalidItem, http.StatusBadRequest, "INVALID_ITEM"},
	{domain.ErrConflict, http.StatusConflict, "CONFLICT"},
	{domain.ErrNotOwned, http.StatusBadRequest, "NOT_OWNED"},
	{domain.ErrInvalidAmount, http.StatusBadRequest, "INVALID_AMOUNT"},
	{domain.ErrUsernameTaken, http.StatusConflict, "USERNAME_TAKEN"},
	{domain.ErrInvalidCredentials, http.StatusUnauthorized, "INVALID_CREDENTIALS"},
}

// respondError writes the envelope for err. Unknown errors are logged and hidden.
func respondError(c *gin.Context, err error) {
	for _, e := range errorStatus {
		if errors.Is(err, e.err) {
			fail(c, e.status, e.code, e.err.Error())
			return
		}
	}
	logger.WithContext(c.Request.Context()).Error("request failed",
		"error", err,
		"path", c.FullPath(),
	)
	fail(c, http.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
}

// getAccountID returns the id set by the JWT middleware.
func getAccountID(c *gin.Context) (int64, bool) {
	id := c.GetInt64(middleware.AccountIDKey)
	if id <= 0 {
		fail(c, http.StatusUnauthorized, "UNAUTHORIZED", "unauthorized")
		return 0, false
	}
	return id, true
}
