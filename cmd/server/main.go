package main

import (
	"context"
	"log"
	"net/http"
	"os"

	_ "bigbrother/docs" // swagger docs

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"bigbrother/internal/auth"
	"bigbrother/internal/cache"
	"bigbrother/internal/config"
	"bigbrother/internal/db"
	"bigbrother/internal/handler"
	"bigbrother/internal/model"
	"bigbrother/internal/repository"
	"bigbrother/internal/router"
	"bigbrother/internal/service"
)

// @title BigBrother Camera API
// @version 1.0
// @description Camera and user management API with JWT authentication and upload proxying.
// @host localhost:8080
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg := config.Load()

	e := echo.New()
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: func() string { return uuid.New().String() },
	}))

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	// Drop tables if RESET_DB environment variable is set
	if os.Getenv("RESET_DB") == "true" {
		log.Println("RESET_DB=true detected, dropping all tables...")
		tables := []interface{}{
			&model.Camera{},
			&model.User{},
		}
		for _, table := range tables {
			if err := gormDB.Migrator().DropTable(table); err != nil {
				log.Printf("Warning: Failed to drop table (may not exist): %v", err)
			}
		}
		log.Println("Tables dropped")
	}

	// Run migrations for all models
	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Camera{},
	); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	cameraRepo := repository.NewCameraRepository(gormDB)

	// Initialize auth components
	hasher := auth.NewPasswordHasher()
	jwtService := auth.NewJWTService(cfg.JWTSecret, cfg.JWTTTL)

	// Seed the admin user when the store is empty
	if err := service.EnsureAdminUser(context.Background(), userRepo, hasher, cfg.SeedAdminPassword); err != nil {
		log.Fatalf("seed admin user: %v", err)
	}

	// Initialize services
	authService := service.NewAuthService(userRepo, hasher, jwtService)
	userService := service.NewUserService(userRepo)
	cameraService := service.NewCameraService(cameraRepo, cacheClient)
	uploadService := service.NewUploadService(cfg.ContentManagerURL, cfg.UploadTimeout)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService, authService)
	cameraHandler := handler.NewCameraHandler(cameraService)
	uploadHandler := handler.NewUploadHandler(uploadService)

	// Register routes
	router.Register(
		e,
		cfg,
		jwtService,
		userRepo,
		authHandler,
		userHandler,
		cameraHandler,
		uploadHandler,
	)

	if cfg.SwaggerHost != "" {
		log.Printf("Swagger documentation available at: %s/swagger/index.html", cfg.SwaggerHost)
	}

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
