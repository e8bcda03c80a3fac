// Package config provides configuration for the application
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	Database DatabaseConfig
	Redis    RedisConfig
	Server   ServerConfig
	Logging  LoggingConfig
	CORS     CORSConfig
	JWT      JWTConfig
	Admin    AdminConfig
	Media    MediaConfig
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
}

// RedisConfig holds Redis connection settings.
// An empty Host disables token revocation.
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// Enabled reports whether a Redis host is configured
func (c RedisConfig) Enabled() bool {
	return c.Host != ""
}

// Addr returns the host:port address of the Redis server
func (c RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// ServerConfig holds server settings
type ServerConfig struct {
	Port int
	// SecureCookies marks the admin cookie HTTPS-only
	SecureCookies bool
}

// LoggingConfig holds logging settings
type LoggingConfig struct {
	Level string
}

// CORSConfig holds CORS settings
type CORSConfig struct {
	AllowedOrigins []string
}

// JWTConfig holds admin capability token settings
type JWTConfig struct {
	Secret            string
	AccessTokenExpiry time.Duration
}

// AdminConfig holds the single admin credential
type AdminConfig struct {
	Login        string
	PasswordHash string
}

// MediaConfig holds lesson media storage settings
type MediaConfig struct {
	BasePath      string
	BaseURL       string
	SweepSchedule string
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// .env is optional, real environment wins
	godotenv.Load()

	cfg := &Config{}
	var err error

	if cfg.Database, err = loadDatabase(""); err != nil {
		return nil, err
	}

	if cfg.Server.Port, err = intEnv("SERVER_PORT", 8080); err != nil {
		return nil, err
	}

	if cfg.Server.SecureCookies, err = boolEnv("SECURE_COOKIES", false); err != nil {
		return nil, err
	}

	cfg.Logging.Level = envOrDefault("LOG_LEVEL", "info")
	cfg.CORS.AllowedOrigins = parseOrigins(os.Getenv("CORS_ALLOWED_ORIGINS"))

	if cfg.JWT.Secret, err = requiredEnv("JWT_SECRET"); err != nil {
		return nil, err
	}
	if cfg.JWT.AccessTokenExpiry, err = durationEnv("JWT_ACCESS_TOKEN_EXPIRY", 12*time.Hour); err != nil {
		return nil, err
	}

	if cfg.Admin.Login, err = requiredEnv("ADMIN_LOGIN"); err != nil {
		return nil, err
	}
	if cfg.Admin.PasswordHash, err = requiredEnv("ADMIN_PASSWORD_HASH"); err != nil {
		return nil, err
	}

	cfg.Media.BasePath = envOrDefault("MEDIA_BASE_PATH", "./images")
	cfg.Media.BaseURL = strings.TrimRight(envOrDefault("MEDIA_BASE_URL", "/images"), "/")
	cfg.Media.SweepSchedule = envOrDefault("MEDIA_SWEEP_SCHEDULE", "0 3 * * *")

	// Redis is optional, without it logout only clears the cookie
	cfg.Redis.Host = os.Getenv("REDIS_HOST")
	if cfg.Redis.Port, err = intEnv("REDIS_PORT", 6379); err != nil {
		return nil, err
	}
	cfg.Redis.Password = os.Getenv("REDIS_PASSWORD")
	if cfg.Redis.DB, err = intEnv("REDIS_DB", 0); err != nil {
		return nil, err
	}

	return cfg, nil
}

// DSN returns the database connection string
func (c *Config) DSN() string {
	return c.Database.DSN()
}

// DSN returns the go-sql-driver/mysql connection string
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?parseTime=true&charset=utf8mb4",
		c.User,
		c.Password,
		c.Host,
		c.Port,
		c.DBName,
	)
}

// loadDatabase reads the DB_* variables, prefixed with prefix (e.g. "TEST_")
func loadDatabase(prefix string) (DatabaseConfig, error) {
	var db DatabaseConfig
	var err error

	if db.Host, err = requiredEnv(prefix + "DB_HOST"); err != nil {
		return db, err
	}
	portStr, err := requiredEnv(prefix + "DB_PORT")
	if err != nil {
		return db, err
	}
	if db.Port, err = strconv.Atoi(portStr); err != nil {
		return db, fmt.Errorf("invalid %sDB_PORT: %w", prefix, err)
	}
	if db.User, err = requiredEnv(prefix + "DB_USER"); err != nil {
		return db, err
	}
	if db.Password, err = requiredEnv(prefix + "DB_PASSWORD"); err != nil {
		return db, err
	}
	if db.DBName, err = requiredEnv(prefix + "DB_NAME"); err != nil {
		return db, err
	}
	return db, nil
}

func requiredEnv(key string) (string, error) {
	value := os.Getenv(key)
	if value == "" {
		return "", fmt.Errorf("%s is required", key)
	}
	return value, nil
}

func envOrDefault(key, def string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return def
}

func intEnv(key string, def int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return def, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func durationEnv(key string, def time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return def, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}

func boolEnv(key string, def bool) (bool, error) {
	value := os.Getenv(key)
	if value == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("invalid %s: %w", key, err)
	}
	return b, nil
}

// parseOrigins splits a comma-separated origin list, defaulting to allow all
func parseOrigins(raw string) []string {
	origins := make([]string, 0)
	for _, origin := range strings.Split(raw, ",") {
		origin = strings.TrimSpace(origin)
		if origin != "" {
			origins = append(origins, origin)
		}
	}
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}
