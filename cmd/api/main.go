package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/domlearn/backend/internal/auth"
	"github.com/domlearn/backend/internal/config"
	_ "github.com/domlearn/backend/internal/docs"
	"github.com/domlearn/backend/internal/handlers"
	"github.com/domlearn/backend/internal/logger"
	loggerMiddleware "github.com/domlearn/backend/internal/logger/middleware"
	"github.com/domlearn/backend/internal/middlewares"
	"github.com/domlearn/backend/internal/repositories"
	"github.com/domlearn/backend/internal/services"
	"github.com/domlearn/backend/internal/storage"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httprate"
	"github.com/go-redis/redis/v8"
	_ "github.com/go-sql-driver/mysql"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/mysql"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.uber.org/zap"
)

// maxRequestSize leaves room for multipart overhead around a 5 MiB image
const maxRequestSize = 8 << 20

// @title DomLearn Content API
// @version 1.0
// @description Public reader and admin authoring API for levels, sections and lessons

// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey AdminToken
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the admin token. The admin_token cookie is accepted as well.
func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v\n", err)
	}

	// Initialize logger
	if err := logger.Init(cfg.Logging.Level); err != nil {
		log.Fatalf("Failed to initialize logger: %v\n", err)
	}
	defer logger.Sync()

	logger.Logger.Info("Starting DomLearn API")

	// Connect to database
	db, err := connectDB(cfg.DSN())
	if err != nil {
		logger.Logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	// Run migrations
	if err := runMigrations(db); err != nil {
		logger.Logger.Fatal("Failed to run migrations", zap.Error(err))
	}

	// Token revocation needs Redis, without it tokens live until they expire
	var revocations services.RevocationStore = auth.NoopRevocationStore{}
	if cfg.Redis.Enabled() {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr(),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer rdb.Close()

		if err := rdb.Ping(context.Background()).Err(); err != nil {
			logger.Logger.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		revocations = auth.NewRedisRevocationStore(rdb)
	} else {
		logger.Logger.Warn("REDIS_HOST is not set, logout will not revoke tokens")
	}

	// Initialize repositories
	levelRepo := repositories.NewLevelRepository(db)
	sectionRepo := repositories.NewSectionRepository(db)
	lessonRepo := repositories.NewLessonRepository(db)
	transactor := repositories.NewTransactor(db, func(q repositories.Querier) services.TxRepositories {
		return services.TxRepositories{
			Levels:   repositories.NewLevelRepository(q),
			Sections: repositories.NewSectionRepository(q),
			Lessons:  repositories.NewLessonRepository(q),
		}
	})
	treeTransactor := repositories.NewTransactor(db, func(q repositories.Querier) services.TreeRepositories {
		return services.TreeRepositories{
			Levels:   repositories.NewLevelRepository(q),
			Sections: repositories.NewSectionRepository(q),
			Lessons:  repositories.NewLessonRepository(q),
		}
	})

	// Initialize services
	tokenGenerator := auth.NewTokenGenerator(cfg.JWT.Secret, cfg.JWT.AccessTokenExpiry)
	authService := services.NewAuthService(tokenGenerator, revocations, cfg.Admin.Login, cfg.Admin.PasswordHash, logger.Logger)
	mediaService := services.NewMediaService(authService, lessonRepo, storage.NewLocalStorage(cfg.Media.BasePath), cfg.Media.BaseURL, logger.Logger)
	contentService := services.NewContentService(transactor, authService, mediaService, logger.Logger)
	treeService := services.NewTreeService(authService, treeTransactor)
	readerService := services.NewReaderService(levelRepo, sectionRepo, lessonRepo)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService, cfg.Server.SecureCookies, logger.Logger)
	adminHandler := handlers.NewAdminHandler(contentService, treeService, mediaService, authService, logger.Logger)
	readerHandler := handlers.NewReaderHandler(readerService, logger.Logger)

	// Setup router
	r := chi.NewRouter()

	// Apply middleware
	r.Use(middlewares.RequestIDMiddleware)
	r.Use(loggerMiddleware.LoggerMiddleware(logger.Logger))
	r.Use(middlewares.RecoveryMiddleware(logger.Logger))
	r.Use(middlewares.CORSMiddleware(cfg.CORS.AllowedOrigins))
	r.Use(httprate.LimitByIP(100, time.Minute))
	r.Use(middlewares.RequestSizeLimitMiddleware(maxRequestSize))

	// Swagger documentation
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL(fmt.Sprintf("http://localhost:%d/swagger/doc.json", cfg.Server.Port)),
	))

	// Lesson images, unless they are served from another host
	if strings.HasPrefix(cfg.Media.BaseURL, "/") {
		fileServer := http.StripPrefix(cfg.Media.BaseURL, http.FileServer(storage.FileSystem(cfg.Media.BasePath)))
		r.Get(cfg.Media.BaseURL+"/*", fileServer.ServeHTTP)
	}

	r.Route("/api/v1", func(r chi.Router) {
		authHandler.RegisterRoutes(r)
		adminHandler.RegisterRoutes(r)
		readerHandler.RegisterRoutes(r)
	})

	// Start server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		logger.Logger.Info("Server starting", zap.Int("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Logger.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Logger.Info("Shutting down server...")

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Logger.Error("Server forced to shutdown", zap.Error(err))
	}

	logger.Logger.Info("Server exited")
}

// connectDB connects to the database
func connectDB(dsn string) (*sql.DB, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}

// runMigrations runs database migrations
func runMigrations(db *sql.DB) error {
	driver, err := mysql.WithInstance(db, &mysql.Config{})
	if err != nil {
		return fmt.Errorf("failed to create migration driver: %w", err)
	}

	// Running from cmd/api during development
	migrationPath := "file://migrations"
	if _, err := os.Stat("migrations"); os.IsNotExist(err) {
		if _, err := os.Stat("../../migrations"); err == nil {
			migrationPath = "file://../../migrations"
		}
	}

	m, err := migrate.NewWithDatabaseInstance(
		migrationPath,
		"mysql",
		driver,
	)
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}
