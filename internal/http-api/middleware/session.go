package middleware

import (
	"errors"
	"net/http"

	"mathspring/internal/http-api/models"
	"mathspring/internal/http-api/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

const (
	// CookieName carries the signed session token
	CookieName = "auth_token"

	contextUserKey = "user"

	LoginPath         = "/login"
	NotAuthorizedPath = "/notauthorized"
)

// RequireSession resolves the session cookie to a user and stores it in the
// gin context. Requests without a usable session are redirected to the login page.
func RequireSession(authService service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, _ := c.Cookie(CookieName)

		user, err := authService.ResolveToken(c.Request.Context(), token)
		if errors.Is(err, service.ErrNotAuthenticated) {
			c.Redirect(http.StatusFound, LoginPath)
			c.Abort()
			return
		}
		if err != nil {
			logrus.WithError(err).Error("session resolution failed")
			c.AbortWithStatus(http.StatusInternalServerError)
			return
		}

		c.Set(contextUserKey, user)
		c.Next()
	}
}

// RequireStaff lets staff members and superusers through
func RequireStaff() gin.HandlerFunc {
	return requireRole(func(u *models.User) bool { return u.Superuser() || u.Staff() })
}

// RequireSuperuser lets only superusers through
func RequireSuperuser() gin.HandlerFunc {
	return requireRole(func(u *models.User) bool { return u.Superuser() })
}

// requireRole must run after RequireSession; failures go to the not-authorized page
func requireRole(allowed func(*models.User) bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil {
			c.Redirect(http.StatusFound, LoginPath)
			c.Abort()
			return
		}
		if !allowed(user) {
			logrus.WithFields(logrus.Fields{"user_id": user.ID, "path": c.Request.URL.Path}).Warn("not authorized")
			c.Redirect(http.StatusFound, NotAuthorizedPath)
			c.Abort()
			return
		}
		c.Next()
	}
}

// CurrentUser returns the user stored by RequireSession, or nil
func CurrentUser(c *gin.Context) *models.User {
	value, ok := c.Get(contextUserKey)
	if !ok {
		return nil
	}
	user, _ := value.(*models.User)
	return user
}
