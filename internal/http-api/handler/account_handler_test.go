package handler

import (
	"errors"
	"net/http"
	"net/url"
	"testing"

	"mathspring/internal/http-api/dto"
	"mathspring/internal/http-api/models"
	"mathspring/internal/http-api/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func registerValues() url.Values {
	return url.Values{
		"username":         {"alice"},
		"email":            {"a@x.org"},
		"first_name":       {"Alice"},
		"is_staff":         {"1"},
		"password":         {"abcdefghij1"},
		"password_confirm": {"abcdefghij1"},
	}
}

func TestRegister_Success(t *testing.T) {
	mockUserService := new(MockUserService)
	handler := NewAccountHandler(mockUserService)
	router := setupRouter(t)
	actor := staffUser()
	router.POST("/register", asUser(actor), handler.Register)

	expected := dto.RegisterForm{
		Username:        "alice",
		Email:           "a@x.org",
		FirstName:       "Alice",
		IsStaff:         "1",
		Password:        "abcdefghij1",
		PasswordConfirm: "abcdefghij1",
	}
	mockUserService.On("Register", mock.Anything, actor, expected).Return(&models.User{ID: 7, Username: "alice"}, nil)

	w := doPost(router, "/register", registerValues())

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/utilities", w.Header().Get("Location"))
	mockUserService.AssertExpectations(t)
}

func TestRegister_FieldErrors(t *testing.T) {
	mockUserService := new(MockUserService)
	handler := NewAccountHandler(mockUserService)
	router := setupRouter(t)
	router.POST("/register", asUser(staffUser()), handler.Register)

	mockUserService.On("Register", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, service.FieldErrors{service.FlagInvalidUser: true, service.FlagInvalidEmail: true})

	w := doPost(router, "/register", registerValues())

	assert.Equal(t, http.StatusBadRequest, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, `id="invalid_user"`)
	assert.Contains(t, body, `id="invalid_email"`)
	assert.NotContains(t, body, `id="invalid_password"`)
	assert.NotContains(t, body, `id="password_not_match"`)
}

func TestRegister_MissingFields(t *testing.T) {
	mockUserService := new(MockUserService)
	handler := NewAccountHandler(mockUserService)
	router := setupRouter(t)
	router.POST("/register", asUser(staffUser()), handler.Register)

	w := doPost(router, "/register", url.Values{"username": {"alice"}})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), `id="invalid_form"`)
	mockUserService.AssertNotCalled(t, "Register", mock.Anything, mock.Anything, mock.Anything)
}

func TestRegisterPage_SuperuserCheckbox(t *testing.T) {
	handler := NewAccountHandler(new(MockUserService))

	router := setupRouter(t)
	router.GET("/register", asUser(superuser()), handler.RegisterPage)
	assert.Contains(t, doGet(router, "/register").Body.String(), `name="is_superuser"`)

	router = setupRouter(t)
	router.GET("/register", asUser(staffUser()), handler.RegisterPage)
	assert.NotContains(t, doGet(router, "/register").Body.String(), `name="is_superuser"`)
}

func TestUserTable(t *testing.T) {
	mockUserService := new(MockUserService)
	handler := NewAccountHandler(mockUserService)
	router := setupRouter(t)
	router.GET("/usertable", asUser(superuser()), handler.UserTable)

	mockUserService.On("ListUsers", mock.Anything).Return([]models.User{
		{ID: 1, Username: "root", IsSuperuser: 1},
		{ID: 5, Username: "alice", Email: models.StringPtr("a@x.org")},
	}, nil)

	w := doGet(router, "/usertable")

	assert.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, `id="user-1"`)
	assert.Contains(t, body, `id="user-5"`)
	assert.Contains(t, body, "a@x.org")
	assert.Contains(t, body, `href="/usertable/delete/5"`)
}

func TestEditPage(t *testing.T) {
	mockUserService := new(MockUserService)
	handler := NewAccountHandler(mockUserService)
	router := setupRouter(t)
	router.GET("/usertable/edit", asUser(superuser()), handler.EditPageByQuery)
	router.GET("/usertable/edit/:id", asUser(superuser()), handler.EditPage)

	alice := &models.User{ID: 5, Username: "alice", Email: models.StringPtr("a@x.org"), IsStaff: 1}
	mockUserService.On("GetUser", mock.Anything, uint(5)).Return(alice, nil)
	mockUserService.On("GetUser", mock.Anything, uint(99)).Return(nil, service.ErrUserNotFound)

	for _, path := range []string{"/usertable/edit/5", "/usertable/edit?id=5"} {
		w := doGet(router, path)
		assert.Equal(t, http.StatusOK, w.Code, path)
		assert.Contains(t, w.Body.String(), `action="/usertable/edit/5"`, path)
		assert.Contains(t, w.Body.String(), `value="a@x.org"`, path)
	}

	for _, path := range []string{"/usertable/edit/99", "/usertable/edit?id=99", "/usertable/edit/abc", "/usertable/edit?id=", "/usertable/edit/0"} {
		w := doGet(router, path)
		assert.Equal(t, http.StatusFound, w.Code, path)
		assert.Equal(t, "/usertable", w.Header().Get("Location"), path)
	}
}

func TestEditUser_Success(t *testing.T) {
	mockUserService := new(MockUserService)
	handler := NewAccountHandler(mockUserService)
	router := setupRouter(t)
	router.POST("/usertable/edit/:id", asUser(superuser()), handler.EditUser)

	form := dto.EditUserForm{Username: "alice", Email: "a@x.org", IsStaff: "1"}
	mockUserService.On("EditUser", mock.Anything, uint(5), form).Return(&models.User{ID: 5, Username: "alice"}, nil)

	w := doPost(router, "/usertable/edit/5", url.Values{"username": {"alice"}, "email": {"a@x.org"}, "is_staff": {"1"}})

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/usertable", w.Header().Get("Location"))
	mockUserService.AssertExpectations(t)
}

func TestEditUser_Collision(t *testing.T) {
	mockUserService := new(MockUserService)
	handler := NewAccountHandler(mockUserService)
	router := setupRouter(t)
	router.POST("/usertable/edit/:id", asUser(superuser()), handler.EditUser)

	mockUserService.On("EditUser", mock.Anything, uint(5), mock.Anything).
		Return(nil, service.FieldErrors{service.FlagInvalidUsername: true})
	mockUserService.On("GetUser", mock.Anything, uint(5)).Return(&models.User{ID: 5, Username: "alice"}, nil)

	w := doPost(router, "/usertable/edit/5", url.Values{"username": {"bob"}})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), `id="invalid_username"`)
	assert.Contains(t, w.Body.String(), `value="alice"`)
}

func TestEditUser_UnknownID(t *testing.T) {
	mockUserService := new(MockUserService)
	handler := NewAccountHandler(mockUserService)
	router := setupRouter(t)
	router.POST("/usertable/edit/:id", asUser(superuser()), handler.EditUser)

	mockUserService.On("EditUser", mock.Anything, uint(99), mock.Anything).Return(nil, service.ErrUserNotFound)

	w := doPost(router, "/usertable/edit/99", url.Values{"username": {"bob"}})

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/usertable", w.Header().Get("Location"))
}

func TestEditUser_MissingUsername(t *testing.T) {
	mockUserService := new(MockUserService)
	handler := NewAccountHandler(mockUserService)
	router := setupRouter(t)
	router.POST("/usertable/edit/:id", asUser(superuser()), handler.EditUser)

	mockUserService.On("GetUser", mock.Anything, uint(5)).Return(&models.User{ID: 5, Username: "alice"}, nil)

	w := doPost(router, "/usertable/edit/5", url.Values{"email": {"a@x.org"}})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), `id="invalid_form"`)
	mockUserService.AssertNotCalled(t, "EditUser", mock.Anything, mock.Anything, mock.Anything)
}

func TestDeleteUser(t *testing.T) {
	mockUserService := new(MockUserService)
	handler := NewAccountHandler(mockUserService)
	router := setupRouter(t)
	router.GET("/usertable/delete/:id", asUser(superuser()), handler.DeleteUser)

	mockUserService.On("DeleteUser", mock.Anything, uint(5)).Return(nil)
	mockUserService.On("DeleteUser", mock.Anything, uint(99)).Return(service.ErrUserNotFound)
	mockUserService.On("DeleteUser", mock.Anything, uint(6)).Return(errors.New("connection refused"))

	for _, path := range []string{"/usertable/delete/5", "/usertable/delete/99", "/usertable/delete/abc"} {
		w := doGet(router, path)
		assert.Equal(t, http.StatusFound, w.Code, path)
		assert.Equal(t, "/usertable", w.Header().Get("Location"), path)
	}

	w := doGet(router, "/usertable/delete/6")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	mockUserService.AssertNumberOfCalls(t, "DeleteUser", 3)
}
