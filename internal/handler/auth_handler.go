package handler

import (
	"net/http"
	"strings"

	"runway-tickets/internal/model"
	"runway-tickets/internal/service"
	"runway-tickets/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	AccessTokenCookie  = "runway-access-token"
	RefreshTokenCookie = "runway-refresh-token"

	refreshTokenMaxAge = 60 * 60 * 24 * 30
)

type AuthHandler struct {
	users          service.UserService
	publicURL      string
	verifierCookie string
}

func NewAuthHandler(users service.UserService, publicURL, verifierCookie string) *AuthHandler {
	return &AuthHandler{
		users:          users,
		publicURL:      strings.TrimRight(publicURL, "/"),
		verifierCookie: verifierCookie,
	}
}

func (h *AuthHandler) RegisterRoutes(r *gin.Engine) {
	router := r.Group("/api/auth")
	{
		router.GET("callback", h.Callback)
		router.POST("sync-user", h.SyncUser)
		router.GET("check-admin", h.CheckAdmin)
	}
}

// Callback 以 authorization code 換 session，任何失敗都導回登入頁
func (h *AuthHandler) Callback(c *gin.Context) {
	next := safeRedirectPath(c.DefaultQuery("next", "/"))
	failure := h.publicURL + "/login?error=auth_failed"

	code := c.Query("code")
	if code == "" {
		c.Redirect(http.StatusTemporaryRedirect, failure)
		return
	}
	verifier, _ := c.Cookie(h.verifierCookie)

	session, err := h.users.CompleteSignIn(c, code, verifier)
	if err != nil {
		logger.WithComponent("handler").Warn("auth callback failed", zap.Error(err))
		c.Redirect(http.StatusTemporaryRedirect, failure)
		return
	}

	secure := strings.HasPrefix(h.publicURL, "https://")
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(AccessTokenCookie, session.AccessToken, session.ExpiresIn, "/", "", secure, true)
	c.SetCookie(RefreshTokenCookie, session.RefreshToken, refreshTokenMaxAge, "/", "", secure, true)
	c.SetCookie(h.verifierCookie, "", -1, "/", "", secure, true)
	c.Redirect(http.StatusTemporaryRedirect, h.publicURL+next)
}

func (h *AuthHandler) SyncUser(c *gin.Context) {
	var req model.SyncUserRequest
	if err := BindJson(c, &req); err != nil {
		return
	}
	if _, err := h.users.SyncUser(c, req); err != nil {
		handleError(c, err, "SyncUser", "Failed to sync user")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// CheckAdmin 查詢失敗一律回 false
func (h *AuthHandler) CheckAdmin(c *gin.Context) {
	userID := c.Query("userId")
	if userID == "" {
		c.JSON(http.StatusOK, gin.H{"isAdmin": false})
		return
	}
	c.JSON(http.StatusOK, gin.H{"isAdmin": h.users.IsAdmin(c, userID)})
}

// safeRedirectPath 只允許站內相對路徑
func safeRedirectPath(next string) string {
	if !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.HasPrefix(next, "/\\") {
		return "/"
	}
	return next
}
