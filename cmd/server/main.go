package main

import (
	"log"
	"net/http"

	"github.com/labstack/echo/v4"

	"clubhouse/internal/auth"
	"clubhouse/internal/cache"
	"clubhouse/internal/config"
	"clubhouse/internal/db"
	"clubhouse/internal/handler"
	"clubhouse/internal/model"
	"clubhouse/internal/repository"
	"clubhouse/internal/router"
	"clubhouse/internal/service"
	"clubhouse/internal/view"
)

func main() {
	cfg := config.Load()

	e := echo.New()
	e.HideBanner = true

	renderer, err := view.New()
	if err != nil {
		log.Fatalf("view init: %v", err)
	}
	e.Renderer = renderer

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	// Run migrations for all models
	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Message{},
		&model.Session{},
	); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	messageRepo := repository.NewMessageRepository(gormDB)
	sessionRepo := repository.NewSessionRepository(gormDB)

	// Initialize session management
	sessionStore := auth.NewSessionStore(sessionRepo)
	sessions := auth.NewManager(sessionStore, userRepo, cfg.SessionSecret, cfg.Production())

	// Initialize services
	authService := service.NewAuthService(userRepo)
	membershipService := service.NewMembershipService(userRepo)
	messageService := service.NewMessageService(messageRepo, userRepo, cacheClient)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService, sessions)
	messageHandler := handler.NewMessageHandler(messageService)
	memberHandler := handler.NewMemberHandler(membershipService)

	// Register routes
	router.Register(e, cfg, sessions, authHandler, messageHandler, memberHandler)

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
