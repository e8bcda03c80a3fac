package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

// LoadTestConfig loads the configuration for integration tests from TEST_* variables.
// If the database variables are not set, the returned Config has an empty Database section,
// which lets tests fall back to a default DSN.
func LoadTestConfig() (*Config, error) {
	// Tests run from test/integration, so also look two levels up
	_ = godotenv.Load("../../.env")
	_ = godotenv.Load()

	cfg := &Config{}

	db, err := loadDatabase("TEST_")
	if err == nil {
		cfg.Database = db
	}

	cfg.JWT.Secret = envOrDefault("TEST_JWT_SECRET", "integration-secret")
	cfg.JWT.AccessTokenExpiry, err = durationEnv("TEST_JWT_ACCESS_TOKEN_EXPIRY", time.Hour)
	if err != nil {
		return nil, err
	}

	cfg.Media.BasePath = os.Getenv("TEST_MEDIA_BASE_PATH")
	cfg.Media.BaseURL = "/images"

	return cfg, nil
}
