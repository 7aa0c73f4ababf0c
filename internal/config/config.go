package config

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

// Defaults matching the reference deployment.
const (
	DefaultToleranceRadius = 20
	DefaultMinPoints       = 3
	DefaultMaxPoints       = 5
	DefaultMaxAttempts     = 3
)

type LoggingConfig struct {
	Level  string
	Format string
	File   string
}

type StoreConfig struct {
	DataFile string
}

type AuthConfig struct {
	// ToleranceRadius is the maximum Euclidean pixel distance between a
	// stored and candidate point for the point to count as matching.
	ToleranceRadius int
	MinPoints       int
	MaxPoints       int
	MaxAttempts     int
}

type Config struct {
	Environment      string
	Logging          LoggingConfig
	Store            StoreConfig
	Auth             AuthConfig
	DefaultImagePath string
}

// LoadConfig reads configuration from the environment, honouring an
// optional .env file in the working directory.
func LoadConfig() *Config {
	// Missing .env is fine; the defaults below stand on their own.
	_ = godotenv.Load()

	return &Config{
		Environment: getEnv("GRAPHAUTH_ENV", "development"),
		Logging: LoggingConfig{
			Level:  getEnv("GRAPHAUTH_LOG_LEVEL", "info"),
			Format: getEnv("GRAPHAUTH_LOG_FORMAT", "console"),
			File:   getEnv("GRAPHAUTH_LOG_FILE", "graphical_auth.log"),
		},
		Store: StoreConfig{
			DataFile: getEnv("GRAPHAUTH_DATA_FILE", filepath.Join("user_data", "users.json")),
		},
		Auth: AuthConfig{
			ToleranceRadius: getEnvInt("GRAPHAUTH_TOLERANCE_RADIUS", DefaultToleranceRadius),
			MinPoints:       getEnvInt("GRAPHAUTH_MIN_POINTS", DefaultMinPoints),
			MaxPoints:       getEnvInt("GRAPHAUTH_MAX_POINTS", DefaultMaxPoints),
			MaxAttempts:     getEnvInt("GRAPHAUTH_MAX_ATTEMPTS", DefaultMaxAttempts),
		},
		DefaultImagePath: getEnv("GRAPHAUTH_DEFAULT_IMAGE", filepath.Join("assets", "default_image.jpg")),
	}
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
