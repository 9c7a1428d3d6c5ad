package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"mathspring/internal/http-api/middleware"
	"mathspring/internal/http-api/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// FlagInvalidForm marks a submission that could not be bound at all
const FlagInvalidForm = "invalid_form"

// render merges the page title, the session user and data into one template context
func render(c *gin.Context, status int, name, title string, data gin.H) {
	page := gin.H{"title": title}
	if user := middleware.CurrentUser(c); user != nil {
		page["user"] = user
	}
	for key, value := range data {
		page[key] = value
	}
	c.HTML(status, name, page)
}

// fieldFlags turns a FieldErrors value into template flags; ok is false for any other error
func fieldFlags(err error) (gin.H, bool) {
	var fieldErrs service.FieldErrors
	if !errors.As(err, &fieldErrs) {
		return nil, false
	}
	flags := gin.H{}
	for flag := range fieldErrs {
		flags[flag] = true
	}
	return flags, true
}

func serverError(c *gin.Context, err error, msg string) {
	logrus.WithError(err).WithField("path", c.Request.URL.Path).Error(msg)
	_ = c.Error(err)
	c.AbortWithStatus(http.StatusInternalServerError)
}

// parseID accepts positive decimal ids only
func parseID(raw string) (uint, bool) {
	id, err := strconv.ParseUint(raw, 10, 0)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

func setSessionCookie(c *gin.Context, token string, ttl time.Duration, secure bool) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.CookieName, token, int(ttl.Seconds()), "/", "", secure, true)
}

func clearSessionCookie(c *gin.Context, secure bool) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.CookieName, "", -1, "/", "", secure, true)
}
