package main

import (
	"log"
	"net/http"
	"os"

	_ "dailyquest/docs" // swagger docs

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"dailyquest/internal/auth"
	"dailyquest/internal/cache"
	"dailyquest/internal/config"
	"dailyquest/internal/db"
	"dailyquest/internal/handler"
	"dailyquest/internal/model"
	"dailyquest/internal/repository"
	"dailyquest/internal/router"
	"dailyquest/internal/service"
	"dailyquest/internal/timezone"
)

// @title Daily Quest API
// @version 1.0
// @description Daily in-game task tracker with game catalog, reset times, and JWT authentication.
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
	e.Use(middleware.RequestID())

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	// Drop tables if RESET_DB environment variable is set
	if os.Getenv("RESET_DB") == "true" {
		log.Println("RESET_DB=true detected, dropping all tables...")
		tables := []interface{}{
			&model.ReminderSetting{},
			&model.DailyCompletion{},
			&model.UserGame{},
			&model.Game{},
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
		&model.Game{},
		&model.UserGame{},
		&model.DailyCompletion{},
		&model.ReminderSetting{},
	); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	gameRepo := repository.NewGameRepository(gormDB)
	userGameRepo := repository.NewUserGameRepository(gormDB)
	completionRepo := repository.NewCompletionRepository(gormDB)
	reminderRepo := repository.NewReminderRepository(gormDB)

	// Initialize auth components; secrets are injected here, never read
	// from the environment inside business logic.
	hasher := auth.NewPasswordHasher(cfg.PasswordPepper, cfg.BcryptCost)
	tokens := auth.NewTokenService(cfg.JWTSecret)
	timezones := timezone.NewService(cfg.DefaultTimezone)

	// Initialize services
	authService := service.NewAuthService(userRepo, hasher, tokens, timezones)
	accountService := service.NewAccountService(userRepo, hasher, timezones)
	adminService := service.NewAdminService(userRepo)
	gameService := service.NewGameService(gameRepo, cacheClient, timezones)
	trackingService := service.NewTrackingService(userRepo, gameRepo, userGameRepo, completionRepo, reminderRepo)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService, accountService)
	adminHandler := handler.NewAdminHandler(adminService)
	gameHandler := handler.NewGameHandler(gameService)
	trackingHandler := handler.NewTrackingHandler(trackingService)

	// Register routes
	router.Register(
		e,
		cfg,
		tokens,
		userRepo,
		authHandler,
		adminHandler,
		gameHandler,
		trackingHandler,
	)

	// Log swagger full path
	var swaggerURL string
	if cfg.SwaggerHost != "" {
		// SwaggerHost may already include scheme (http:// or https://)
		if len(cfg.SwaggerHost) >= 7 && cfg.SwaggerHost[:7] == "http://" {
			swaggerURL = cfg.SwaggerHost + "/swagger/index.html"
		} else if len(cfg.SwaggerHost) >= 8 && cfg.SwaggerHost[:8] == "https://" {
			swaggerURL = cfg.SwaggerHost + "/swagger/index.html"
		} else {
			swaggerURL = "http://" + cfg.SwaggerHost + "/swagger/index.html"
		}
	} else {
		swaggerURL = "http://localhost:" + cfg.ServerPort + "/swagger/index.html"
	}
	log.Printf("Swagger documentation available at: %s", swaggerURL)

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
