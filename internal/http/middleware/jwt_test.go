package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"loyalty_app/internal/service"

	"github.com/gin-gonic/gin"
)

func newJWTRouter() *gin.Engine {
	r := gin.New()
	r.GET("/me", JWT(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"id": c.GetInt64(AccountIDKey)})
	})
	return r
}

func TestJWTMiddleware(t *testing.T) {
	service.InitJWT("middleware-secret")
	token, err := service.GenerateJWT(7)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	cases := []struct {
		name   string
		header string
		cookie string
		want   int
	}{
		{"bearer", "Bearer " + token, "", http.StatusOK},
		{"lowercase scheme", "bearer " + token, "", http.StatusOK},
		{"cookie", "", token, http.StatusOK},
		{"missing", "", "", http.StatusUnauthorized},
		{"bad token", "Bearer nope", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic " + token, "", http.StatusUnauthorized},
	}

	r := newJWTRouter()
	for _, tc := range cases {
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		if tc.header != "" {
			req.Header.Set("Authorization", tc.header)
		}
		if tc.cookie != "" {
			req.AddCookie(&http.Cookie{Name: TokenCookie, Value: tc.cookie})
		}
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != tc.want {
			t.Fatalf("%s: status = %d; want %d (%s)", tc.name, w.Code, tc.want, w.Body.String())
		}
		if tc.want == http.StatusOK && w.Body.String() != `{"id":7}` {
			t.Fatalf("%s: body = %s", tc.name, w.Body.String())
		}
	}
}

func TestRequestID(t *testing.T) {
	r := gin.New()
	r.GET("/", RequestID(), func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	generated := w.Header().Get(RequestIDHeader)
	if generated == "" {
		t.Fatalf("no request id assigned")
	}

	const given = "2f1c8a5e-3b7d-4e8a-9c1f-0a6b5d4e3c2b"
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, given)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if got := w.Header().Get(RequestIDHeader); got != given {
		t.Fatalf("request id = %q; want %q", got, given)
	}
}
