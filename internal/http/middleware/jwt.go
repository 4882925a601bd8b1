package middleware

import (
	"net/http"
	"strings"

	"loyalty_app/internal/logger"
	"loyalty_app/internal/service"

	"github.com/gin-gonic/gin"
)

// AccountIDKey is the gin context key holding the authenticated account id (int64).
const AccountIDKey = "account_id"

// TokenCookie is the cookie carrying the access token for browser clients.
const TokenCookie = "access_token"

// JWT authenticates the request from a Bearer header or the access_token cookie.
func JWT() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := requestToken(c)
		if token == "" {
			abortUnauthorized(c, "missing token")
			return
		}

		accountID, err := service.ParseJWT(token)
		if err != nil {
			abortUnauthorized(c, "invalid token")
			return
		}

		setAccount(c, accountID)
		c.Next()
	}
}

// OptionalJWT sets the account id when a valid token is present and never aborts.
func OptionalJWT() gin.HandlerFunc {
	return func(c *gin.Context) {
		if token := requestToken(c); token != "" {
			if accountID, err := service.ParseJWT(token); err == nil {
				setAccount(c, accountID)
			}
		}
		c.Next()
	}
}

func setAccount(c *gin.Context, accountID int64) {
	c.Set(AccountIDKey, accountID)
	c.Request = c.Request.WithContext(logger.ContextWithAccountID(c.Request.Context(), accountID))
}

func requestToken(c *gin.Context) string {
	if token := bearerToken(c.GetHeader("Authorization")); token != "" {
		return token
	}
	if v, err := c.Cookie(TokenCookie); err == nil {
		return v
	}
	return ""
}

func bearerToken(header string) string {
	const prefix = "Bearer "
	if len(header) > len(prefix) && strings.EqualFold(header[:len(prefix)], prefix) {
		return strings.TrimSpace(header[len(prefix):])
	}
	return ""
}

func abortUnauthorized(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"success": false,
		"code":    "UNAUTHORIZED",
		"message": msg,
	})
}
