package http

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"loyalty_app/internal/http/handlers"
	"loyalty_app/internal/http/middleware"

	"github.com/gin-gonic/gin"
)

func TestAuthRoutesSkipAPILimiter(t *testing.T) {
	gin.SetMode(gin.TestMode)
	middleware.UseRedis(nil)

	r := gin.New()
	registerAPIRoutes(r.Group("/api"), &handlers.Handler{}, routeLimits{
		api:      middleware.RateLimit("api", 1, time.Minute),
		auth:     middleware.RateLimit("auth", 2, time.Minute),
		activity: func(c *gin.Context) { c.Next() },
	})

	do := func(method, path string) int {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(method, path, strings.NewReader("{}")))
		return w.Code
	}

	// /me rejects the missing token after the api limiter has counted the call
	if got := do(http.MethodGet, "/api/me"); got != http.StatusUnauthorized {
		t.Fatalf("first /me = %d; want 401", got)
	}
	if got := do(http.MethodGet, "/api/me"); got != http.StatusTooManyRequests {
		t.Fatalf("second /me = %d; want 429", got)
	}

	// login fails validation before reaching the service, but is not api-limited
	for i := 0; i < 2; i++ {
		if got := do(http.MethodPost, "/api/auth/login"); got == http.StatusTooManyRequests {
			t.Fatalf("login %d was rate limited", i+1)
		}
	}
	if got := do(http.MethodPost, "/api/auth/login"); got != http.StatusTooManyRequests {
		t.Fatalf("third login = %d; want 429 from auth limiter", got)
	}
}
