package handler

import (
	"net/http"

	"mathspring/internal/http-api/dto"
	"mathspring/internal/http-api/middleware"
	"mathspring/internal/http-api/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// ProfileHandler holds the self-service account edits
type ProfileHandler struct {
	userService  service.UserService
	authService  service.AuthService
	cookieSecure bool
}

func NewProfileHandler(userService service.UserService, authService service.AuthService, cookieSecure bool) *ProfileHandler {
	return &ProfileHandler{userService: userService, authService: authService, cookieSecure: cookieSecure}
}

func (h *ProfileHandler) ChangePasswordPage(c *gin.Context) {
	render(c, http.StatusOK, "changepassword.html", "Change password", nil)
}

func (h *ProfileHandler) ChangePassword(c *gin.Context) {
	var form dto.ChangePasswordForm
	if err := c.ShouldBind(&form); err != nil {
		render(c, http.StatusBadRequest, "changepassword.html", "Change password", gin.H{FlagInvalidForm: true})
		return
	}

	err := h.userService.ChangePassword(c.Request.Context(), middleware.CurrentUser(c), form)
	if flags, ok := fieldFlags(err); ok {
		render(c, http.StatusBadRequest, "changepassword.html", "Change password", flags)
		return
	}
	if err != nil {
		serverError(c, err, "change password")
		return
	}
	h.endSession(c)
}

func (h *ProfileHandler) ChangeUsernamePage(c *gin.Context) {
	render(c, http.StatusOK, "changeusername.html", "Change username", nil)
}

func (h *ProfileHandler) ChangeUsername(c *gin.Context) {
	var form dto.ChangeUsernameForm
	if err := c.ShouldBind(&form); err != nil {
		render(c, http.StatusBadRequest, "changeusername.html", "Change username", gin.H{FlagInvalidForm: true})
		return
	}

	_, err := h.userService.ChangeUsername(c.Request.Context(), middleware.CurrentUser(c), form.Username)
	if flags, ok := fieldFlags(err); ok {
		render(c, http.StatusBadRequest, "changeusername.html", "Change username", flags)
		return
	}
	if err != nil {
		serverError(c, err, "change username")
		return
	}
	h.endSession(c)
}

func (h *ProfileHandler) ChangeEmailPage(c *gin.Context) {
	render(c, http.StatusOK, "changeemail.html", "Change email", nil)
}

func (h *ProfileHandler) ChangeEmail(c *gin.Context) {
	var form dto.ChangeEmailForm
	if err := c.ShouldBind(&form); err != nil {
		render(c, http.StatusBadRequest, "changeemail.html", "Change email", gin.H{FlagInvalidForm: true})
		return
	}

	_, err := h.userService.ChangeEmail(c.Request.Context(), middleware.CurrentUser(c), form.Email)
	if flags, ok := fieldFlags(err); ok {
		render(c, http.StatusBadRequest, "changeemail.html", "Change email", flags)
		return
	}
	if err != nil {
		serverError(c, err, "change email")
		return
	}
	c.Redirect(http.StatusFound, "/user")
}

func (h *ProfileHandler) ChangeNamePage(c *gin.Context) {
	render(c, http.StatusOK, "changename.html", "Change name", nil)
}

func (h *ProfileHandler) ChangeName(c *gin.Context) {
	var form dto.ChangeNameForm
	if err := c.ShouldBind(&form); err != nil {
		render(c, http.StatusBadRequest, "changename.html", "Change name", gin.H{FlagInvalidForm: true})
		return
	}

	if _, err := h.userService.ChangeName(c.Request.Context(), middleware.CurrentUser(c), form.FirstName, form.LastName); err != nil {
		serverError(c, err, "change name")
		return
	}
	c.Redirect(http.StatusFound, "/user")
}

// endSession revokes the current token so the next request must log in again
func (h *ProfileHandler) endSession(c *gin.Context) {
	if token, err := c.Cookie(middleware.CookieName); err == nil {
		if err := h.authService.RevokeToken(c.Request.Context(), token); err != nil {
			logrus.WithError(err).Error("revoke session token after credential change")
		}
	}
	clearSessionCookie(c, h.cookieSecure)
	c.Redirect(http.StatusFound, middleware.LoginPath)
}
