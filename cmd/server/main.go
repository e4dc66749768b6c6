package main

import (
	"log"
	"net/http"

	"finmov/docs"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"finmov/internal/auth"
	"finmov/internal/cache"
	"finmov/internal/config"
	"finmov/internal/db"
	"finmov/internal/handler"
	"finmov/internal/model"
	"finmov/internal/repository"
	"finmov/internal/router"
	"finmov/internal/service"
)

// @title Financial Movements API
// @version 1.0
// @description Role-based income/expense tracking API with JWT authentication.
// @host localhost:8080
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg := config.Load()
	configureSwagger(cfg)

	e := echo.New()
	e.Use(middleware.RequestID())

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Movement{},
	); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	movementRepo := repository.NewMovementRepository(gormDB)

	// Initialize auth components
	jwtService := auth.NewJWTService(cfg.JWTSecret)
	tokenStore := auth.NewTokenStore(cacheClient)

	// Initialize services
	authService := service.NewAuthService(userRepo, jwtService, tokenStore)
	movementService := service.NewMovementService(movementRepo, userRepo)
	userService := service.NewUserService(userRepo, cacheClient)
	reportService := service.NewReportService(movementRepo)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService, cfg.CookieSecure)
	movementHandler := handler.NewMovementHandler(movementService)
	userHandler := handler.NewUserHandler(userService)
	reportHandler := handler.NewReportHandler(reportService)
	pageHandler := handler.NewPageHandler(jwtService, tokenStore, userService, movementService, reportService)

	// Register routes
	router.Register(
		e,
		cfg,
		jwtService,
		tokenStore,
		authHandler,
		movementHandler,
		userHandler,
		reportHandler,
		pageHandler,
	)

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}

// configureSwagger points the served docs at the configured public host.
func configureSwagger(cfg *config.Config) {
	if cfg.SwaggerHost != "" {
		docs.SwaggerInfo.Host = cfg.SwaggerHost
	}
}
