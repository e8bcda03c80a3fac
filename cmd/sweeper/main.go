package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/domlearn/backend/internal/config"
	"github.com/domlearn/backend/internal/logger"
	"github.com/domlearn/backend/internal/models"
	"github.com/domlearn/backend/internal/repositories"
	"github.com/domlearn/backend/internal/services"
	"github.com/domlearn/backend/internal/storage"
	_ "github.com/go-sql-driver/mysql"
	"go.uber.org/zap"
)

// noUploads rejects every upload, the sweeper only releases media
type noUploads struct{}

func (noUploads) Authorize(ctx context.Context, token string) error {
	return models.NewError(models.KindUnauthorized, "uploads are not accepted by the sweeper")
}

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

	logger.Logger.Info("Starting DomLearn media sweeper", zap.String("schedule", cfg.Media.SweepSchedule))

	// Connect to database
	db, err := connectDB(cfg.DSN())
	if err != nil {
		logger.Logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	mediaService := services.NewMediaService(
		noUploads{},
		repositories.NewLessonRepository(db),
		storage.NewLocalStorage(cfg.Media.BasePath),
		cfg.Media.BaseURL,
		logger.Logger,
	)

	sweeper, err := NewSweeper(mediaService, cfg.Media.SweepSchedule, logger.Logger)
	if err != nil {
		logger.Logger.Fatal("Failed to create sweeper", zap.Error(err))
	}

	sweeper.Start()
	defer sweeper.Stop()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Logger.Info("Shutting down sweeper...")
}

// connectDB connects to the database
func connectDB(dsn string) (*sql.DB, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(5)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}
