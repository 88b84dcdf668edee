package main

import (
	"net/http"

	_ "authbase/docs" // swagger docs

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"

	"authbase/internal/auth"
	"authbase/internal/config"
	"authbase/internal/db"
	"authbase/internal/handler"
	"authbase/internal/model"
	"authbase/internal/repository"
	"authbase/internal/router"
	"authbase/internal/service"
)

// @title Authbase API
// @version 1.0
// @description Stateless JWT authentication service: registration, login, logout, and session validation over cookie or bearer transport.
// @host localhost:8080
// @BasePath /
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token. Browser clients use the jwt cookie instead.
func main() {
	log := logrus.New()

	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("load config")
	}
	if cfg.IsProduction() {
		log.SetFormatter(&logrus.JSONFormatter{})
	}

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.RequestID())

	gormDB, err := db.NewMySQL(cfg.MySQLDSN, cfg.IsProduction())
	if err != nil {
		log.WithError(err).Fatal("database init")
	}

	if err := gormDB.AutoMigrate(&model.User{}); err != nil {
		log.WithError(err).Fatal("auto-migrate")
	}

	// Repositories and auth components
	userRepo := repository.NewUserRepository(gormDB)
	jwtService := auth.NewJWTService(cfg.JWTSecret, cfg.JWTExpiresIn)
	cookies := auth.NewCookieWriter(cfg)
	guard := auth.NewSessionGuard(auth.DefaultExtractors(), jwtService, userRepo)

	// Services and handlers
	authService := service.NewAuthService(userRepo, jwtService)
	authHandler := handler.NewAuthHandler(authService, cookies)

	router.Register(e, cfg, log, authHandler, guard)

	log.WithFields(logrus.Fields{
		"port": cfg.ServerPort,
		"mode": cfg.Mode,
	}).Info("starting server")

	if err := e.Start(":" + cfg.ServerPort); err != nil && err != http.ErrServerClosed {
		log.WithError(err).Fatal("server start")
	}
}
