package handlers

import (
	"net/http"

	"loyalty_app/internal/domain"
	"loyalty_app/internal/http/middleware"
	"loyalty_app/internal/service"

	"github.com/gin-gonic/gin"
)

type credentials struct {
	Username string `json:"username" binding:"required,min=3,max=32"`
	Password string `json:"password" binding:"required,min=6,max=72"`
}

type tokenResponse struct {
	Token     string `json:"token"`
	AccountID int64  `json:"account_id"`
	Username  string `json:"username"`
}

func (h *Handler) Signup(c *gin.Context) {
	var req credentials
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "username must be 3-32 characters and password 6-72 characters")
		return
	}

	acct, err := h.Auth.Signup(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	h.issueToken(c, acct, "signed up")
}

func (h *Handler) Login(c *gin.Context) {
	var req credentials
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, domain.ErrInvalidCredentials)
		return
	}

	acct, err := h.Auth.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	h.Audit.LogWithRequest(c.Request.Context(), acct.ID, domain.AuditActionLogin, domain.AuditCategoryAuth, c.ClientIP(), c.Request.UserAgent(), nil)
	h.issueToken(c, acct, "logged in")
}

func (h *Handler) issueToken(c *gin.Context, acct *domain.Account, message string) {
	token, err := service.GenerateJWT(acct.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.TokenCookie, token, int(service.TokenTTL.Seconds()), "/", "", h.SecureCookie, true)
	respondOK(c, message, tokenResponse{Token: token, AccountID: acct.ID, Username: acct.Username})
}

// Logout clears the token cookie. Tokens are stateless and expire on their own.
func (h *Handler) Logout(c *gin.Context) {
	if id, exists := c.Get(middleware.AccountIDKey); exists {
		h.Audit.LogWithRequest(c.Request.Context(), id.(int64), domain.AuditActionLogout, domain.AuditCategoryAuth, c.ClientIP(), c.Request.UserAgent(), nil)
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.TokenCookie, "", -1, "/", "", h.SecureCookie, true)
	respondOK(c, "logged out", nil)
}

func (h *Handler) Me(c *gin.Context) {
	accountID, ok := getAccountID(c)
	if !ok {
		return
	}
	profile, err := h.Auth.Profile(c.Request.Context(), accountID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, "profile", profile)
}

func (h *Handler) DeleteMe(c *gin.Context) {
	accountID, ok := getAccountID(c)
	if !ok {
		return
	}
	if err := h.Auth.Delete(c.Request.Context(), accountID); err != nil {
		respondError(c, err)
		return
	}
	c.SetCookie(middleware.TokenCookie, "", -1, "/", "", h.SecureCookie, true)
	respondOK(c, "account deleted", nil)
}
