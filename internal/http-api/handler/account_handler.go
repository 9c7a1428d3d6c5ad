package handler

import (
	"errors"
	"net/http"

	"mathspring/internal/http-api/dto"
	"mathspring/internal/http-api/middleware"
	"mathspring/internal/http-api/service"

	"github.com/gin-gonic/gin"
)

const userTablePath = "/usertable"

// AccountHandler covers account creation and the superuser user table
type AccountHandler struct {
	userService service.UserService
}

func NewAccountHandler(userService service.UserService) *AccountHandler {
	return &AccountHandler{userService: userService}
}

func (h *AccountHandler) RegisterPage(c *gin.Context) {
	render(c, http.StatusOK, "register.html", "Create account", nil)
}

func (h *AccountHandler) Register(c *gin.Context) {
	var form dto.RegisterForm
	if err := c.ShouldBind(&form); err != nil {
		render(c, http.StatusBadRequest, "register.html", "Create account", gin.H{FlagInvalidForm: true})
		return
	}

	_, err := h.userService.Register(c.Request.Context(), middleware.CurrentUser(c), form)
	if flags, ok := fieldFlags(err); ok {
		render(c, http.StatusBadRequest, "register.html", "Create account", flags)
		return
	}
	if err != nil {
		serverError(c, err, "register user")
		return
	}
	c.Redirect(http.StatusFound, "/utilities")
}

func (h *AccountHandler) UserTable(c *gin.Context) {
	users, err := h.userService.ListUsers(c.Request.Context())
	if err != nil {
		serverError(c, err, "list users")
		return
	}
	render(c, http.StatusOK, "usertable.html", "User table", gin.H{"users": users})
}

// EditPageByQuery serves /usertable/edit?id=N
func (h *AccountHandler) EditPageByQuery(c *gin.Context) {
	h.editPage(c, c.Query("id"))
}

// EditPage serves /usertable/edit/:id
func (h *AccountHandler) EditPage(c *gin.Context) {
	h.editPage(c, c.Param("id"))
}

func (h *AccountHandler) editPage(c *gin.Context, rawID string) {
	id, ok := parseID(rawID)
	if !ok {
		c.Redirect(http.StatusFound, userTablePath)
		return
	}
	target, err := h.userService.GetUser(c.Request.Context(), id)
	if errors.Is(err, service.ErrUserNotFound) {
		c.Redirect(http.StatusFound, userTablePath)
		return
	}
	if err != nil {
		serverError(c, err, "load user for edit")
		return
	}
	render(c, http.StatusOK, "edit.html", "Edit user", gin.H{"modify_user": target})
}

func (h *AccountHandler) EditUser(c *gin.Context) {
	id, ok := parseID(c.Param("id"))
	if !ok {
		c.Redirect(http.StatusFound, userTablePath)
		return
	}

	var form dto.EditUserForm
	bindErr := c.ShouldBind(&form)
	var err error
	if bindErr == nil {
		_, err = h.userService.EditUser(c.Request.Context(), id, form)
		if err == nil {
			c.Redirect(http.StatusFound, userTablePath)
			return
		}
	}
	if errors.Is(err, service.ErrUserNotFound) {
		c.Redirect(http.StatusFound, userTablePath)
		return
	}

	flags := gin.H{FlagInvalidForm: true}
	if bindErr == nil {
		var isFieldErr bool
		if flags, isFieldErr = fieldFlags(err); !isFieldErr {
			serverError(c, err, "edit user")
			return
		}
	}

	// re-render against the stored row, not the rejected input
	target, lookupErr := h.userService.GetUser(c.Request.Context(), id)
	if errors.Is(lookupErr, service.ErrUserNotFound) {
		c.Redirect(http.StatusFound, userTablePath)
		return
	}
	if lookupErr != nil {
		serverError(c, lookupErr, "load user for edit")
		return
	}
	flags["modify_user"] = target
	render(c, http.StatusBadRequest, "edit.html", "Edit user", flags)
}

// DeleteUser: unknown ids fall through to the table without a message
func (h *AccountHandler) DeleteUser(c *gin.Context) {
	id, ok := parseID(c.Param("id"))
	if !ok {
		c.Redirect(http.StatusFound, userTablePath)
		return
	}
	err := h.userService.DeleteUser(c.Request.Context(), id)
	if err != nil && !errors.Is(err, service.ErrUserNotFound) {
		serverError(c, err, "delete user")
		return
	}
	c.Redirect(http.StatusFound, userTablePath)
}
