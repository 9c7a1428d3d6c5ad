package handler

import (
	"errors"
	"net/http"

	"mathspring/internal/http-api/dto"
	"mathspring/internal/http-api/middleware"
	"mathspring/internal/http-api/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type AuthHandler struct {
	authService  service.AuthService
	cookieSecure bool
}

func NewAuthHandler(authService service.AuthService, cookieSecure bool) *AuthHandler {
	return &AuthHandler{authService: authService, cookieSecure: cookieSecure}
}

func (h *AuthHandler) LoginPage(c *gin.Context) {
	render(c, http.StatusOK, "login.html", "Log in", nil)
}

// Login: an incomplete form counts as bad credentials
func (h *AuthHandler) Login(c *gin.Context) {
	var form dto.LoginForm
	if err := c.ShouldBind(&form); err != nil {
		render(c, http.StatusUnauthorized, "login.html", "Log in", gin.H{"invalid": true})
		return
	}

	user, err := h.authService.Authenticate(c.Request.Context(), form.Username, form.Password)
	if errors.Is(err, service.ErrInvalidCredentials) {
		render(c, http.StatusUnauthorized, "login.html", "Log in", gin.H{"invalid": true})
		return
	}
	if err != nil {
		serverError(c, err, "login failed")
		return
	}

	token, err := h.authService.IssueToken(user)
	if err != nil {
		serverError(c, err, "issue session token")
		return
	}
	setSessionCookie(c, token, h.authService.SessionTTL(), h.cookieSecure)
	c.Redirect(http.StatusFound, "/home")
}

// Throttled renders the login page for attempts over the per-IP limit
func (h *AuthHandler) Throttled(c *gin.Context) {
	render(c, http.StatusTooManyRequests, "login.html", "Log in", gin.H{"throttled": true})
}

// Logout: works with or without a live session
func (h *AuthHandler) Logout(c *gin.Context) {
	if token, err := c.Cookie(middleware.CookieName); err == nil {
		if err := h.authService.RevokeToken(c.Request.Context(), token); err != nil {
			logrus.WithError(err).Error("revoke session token on logout")
		}
	}
	clearSessionCookie(c, h.cookieSecure)
	c.Redirect(http.StatusFound, "/")
}
