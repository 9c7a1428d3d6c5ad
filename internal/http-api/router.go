// Package httpapi assembles the gin engine for the admin site.
package httpapi

import (
	"fmt"
	"os"

	"mathspring/internal/config"
	"mathspring/internal/http-api/handler"
	"mathspring/internal/http-api/middleware"
	"mathspring/internal/http-api/service"
	"mathspring/internal/http-api/views"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// Deps is everything the router needs, built once at startup
type Deps struct {
	Config         *config.Config
	AuthService    service.AuthService
	UserService    service.UserService
	ProblemService service.ProblemService
	DB             handler.Pinger
}

// NewRouter registers every route with its session and role gates
func NewRouter(deps Deps) (*gin.Engine, error) {
	tmpl, err := views.Templates()
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.SetHTMLTemplate(tmpl)

	if dir := deps.Config.StaticDir; dir != "" {
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			r.Static("/static", dir)
		} else {
			logrus.WithField("dir", dir).Warn("static directory not found, serving without assets")
		}
	}

	authHandler := handler.NewAuthHandler(deps.AuthService, deps.Config.CookieSecure)
	pageHandler := handler.NewPageHandler()
	accountHandler := handler.NewAccountHandler(deps.UserService)
	profileHandler := handler.NewProfileHandler(deps.UserService, deps.AuthService, deps.Config.CookieSecure)
	problemHandler := handler.NewProblemHandler(deps.ProblemService)
	throttle := middleware.NewLoginThrottle(deps.Config.LoginRatePerMinute, deps.Config.LoginBurst)

	// public routes
	r.GET("/", pageHandler.Root)
	r.GET("/login", authHandler.LoginPage)
	r.POST("/login", throttle.Middleware(authHandler.Throttled), authHandler.Login)
	r.GET("/logout", authHandler.Logout)
	if deps.DB != nil {
		r.GET("/healthz", handler.NewHealthHandler(deps.DB).Check)
	}

	session := r.Group("/")
	session.Use(middleware.RequireSession(deps.AuthService))
	{
		session.GET("/home", pageHandler.Home)
		session.GET("/notauthorized", pageHandler.NotAuthorized)
		session.GET("/user", pageHandler.Profile)
		session.GET("/changeavatar", pageHandler.ChangeAvatar)

		session.GET("/changepassword", profileHandler.ChangePasswordPage)
		session.POST("/changepassword", profileHandler.ChangePassword)
		session.GET("/changeusername", profileHandler.ChangeUsernamePage)
		session.POST("/changeusername", profileHandler.ChangeUsername)
		session.GET("/changeemail", profileHandler.ChangeEmailPage)
		session.POST("/changeemail", profileHandler.ChangeEmail)
		session.GET("/changename", profileHandler.ChangeNamePage)
		session.POST("/changename", profileHandler.ChangeName)

		session.GET("/problem", pageHandler.Dashboard("Problems"))
		session.GET("/problem/:id", problemHandler.Detail)
		session.GET("/topic", pageHandler.Dashboard("Topics"))
		session.GET("/survey", pageHandler.Dashboard("Surveys"))
		session.GET("/standard", pageHandler.Dashboard("Standards"))
		session.GET("/strategies", pageHandler.Dashboard("Strategies"))
	}

	staff := session.Group("/")
	staff.Use(middleware.RequireStaff())
	{
		staff.GET("/utilities", pageHandler.Utilities)
		staff.GET("/register", accountHandler.RegisterPage)
		staff.POST("/register", accountHandler.Register)
	}

	superuser := session.Group("/usertable")
	superuser.Use(middleware.RequireSuperuser())
	{
		superuser.GET("", accountHandler.UserTable)
		superuser.GET("/edit", accountHandler.EditPageByQuery)
		superuser.GET("/edit/:id", accountHandler.EditPage)
		superuser.POST("/edit/:id", accountHandler.EditUser)
		superuser.GET("/delete/:id", accountHandler.DeleteUser)
	}

	return r, nil
}
