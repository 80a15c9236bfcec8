package main

import (
	"log"
	"net/http"

	_ "taskboard/docs" // swagger docs

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"taskboard/internal/auth"
	"taskboard/internal/cache"
	"taskboard/internal/config"
	"taskboard/internal/db"
	"taskboard/internal/handler"
	"taskboard/internal/model"
	"taskboard/internal/repository"
	"taskboard/internal/router"
	"taskboard/internal/service"
)

// @title Task Management API
// @version 1.0
// @description A simple task management API with JWT authentication and per-user tasks.
// @host localhost:5000
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg := config.Load()

	e := echo.New()
	e.Use(middleware.RequestID())

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	if err := gormDB.AutoMigrate(&model.User{}, &model.Task{}); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	userRepo := repository.NewUserRepository(gormDB)
	taskRepo := repository.NewTaskRepository(gormDB)

	tokenService := auth.NewTokenService(cfg.JWTSecret)

	authService := service.NewAuthService(userRepo, tokenService)
	taskService := service.NewTaskService(taskRepo, cacheClient)

	authHandler := handler.NewAuthHandler(authService)
	taskHandler := handler.NewTaskHandler(taskService)

	router.Register(e, cfg, authHandler, taskHandler)

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
