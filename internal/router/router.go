package router

import (
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	echoSwagger "github.com/swaggo/echo-swagger"

	"authbase/internal/auth"
	"authbase/internal/config"
	"authbase/internal/handler"
	appmw "authbase/internal/middleware"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	log *logrus.Logger,
	authHandler *handler.AuthHandler,
	guard *auth.SessionGuard,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(appmw.Metrics())
	e.Use(appmw.OriginGuard(cfg.FrontendOrigin, cfg.IsProduction()))

	corsConfig := middleware.DefaultCORSConfig
	if cfg.FrontendOrigin != "" {
		corsConfig.AllowOrigins = []string{cfg.FrontendOrigin}
		corsConfig.AllowCredentials = true
	}
	e.Use(middleware.CORSWithConfig(corsConfig))

	e.Validator = NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(cfg, log)

	e.GET("/health", handler.Health)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	authGroup := e.Group("/auth")

	// Public routes
	authGroup.POST("/register", authHandler.Register)
	authGroup.POST("/login", authHandler.Login)

	// Guarded routes (require a valid, active identity)
	guarded := authGroup.Group("", guard.Middleware())
	guarded.POST("/logout", authHandler.Logout)
	guarded.GET("/me", authHandler.Me)
}
