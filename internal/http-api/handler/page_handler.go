package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// PageHandler serves the pages that only need the session user
type PageHandler struct{}

func NewPageHandler() *PageHandler {
	return &PageHandler{}
}

func (h *PageHandler) Root(c *gin.Context) {
	c.Redirect(http.StatusFound, "/home")
}

func (h *PageHandler) Home(c *gin.Context) {
	render(c, http.StatusOK, "home.html", "Home", nil)
}

func (h *PageHandler) NotAuthorized(c *gin.Context) {
	render(c, http.StatusOK, "notauthorized.html", "Not authorized", nil)
}

func (h *PageHandler) Utilities(c *gin.Context) {
	render(c, http.StatusOK, "utilities.html", "Utilities", nil)
}

func (h *PageHandler) Profile(c *gin.Context) {
	render(c, http.StatusOK, "user.html", "Profile", nil)
}

func (h *PageHandler) ChangeAvatar(c *gin.Context) {
	render(c, http.StatusOK, "changeavatar.html", "Change avatar", nil)
}

// Dashboard returns a handler for one of the static section pages
func (h *PageHandler) Dashboard(heading string) gin.HandlerFunc {
	return func(c *gin.Context) {
		render(c, http.StatusOK, "dashboard.html", heading, gin.H{"heading": heading})
	}
}

// Pinger is satisfied by *sql.DB
type Pinger interface {
	PingContext(ctx context.Context) error
}

type HealthHandler struct {
	db Pinger
}

func NewHealthHandler(db Pinger) *HealthHandler {
	return &HealthHandler{db: db}
}

func (h *HealthHandler) Check(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	if err := h.db.PingContext(ctx); err != nil {
		logrus.WithError(err).Warn("health check: database unreachable")
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
