// Package config loads application configuration from the environment,
// with an optional .env file for development.
package config

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application.
type Config struct {
	Environment string
	Port        string

	DBPath     string // SQLite database file
	ImagesDir  string // processed article images (the catalog's files)
	OutfitsDir string // outfit photos, kept apart from article images
	InputDir   string // photos waiting to be processed
	ArchiveDir string // processed source photos, when archiving

	GeminiAPIKey  string
	GeminiModel   string
	GeminiBaseURL string

	// Optional API access control: a bcrypt hash of the shared access
	// password plus the JWT signing secret. Both empty means the API
	// is open.
	PasswordHash string
	JWTSecret    string
}

// Load reads configuration from environment variables, first loading a
// .env file when not running in production. A missing .env file is not
// an error; production deployments rely on real environment variables.
func Load() (*Config, error) {
	env := os.Getenv("GO_ENV")
	if env == "" {
		env = "development"
	}

	if env != "production" {
		if err := godotenv.Load(); err != nil {
			slog.Debug(".env file not loaded", "error", err)
		}
	}

	cfg := &Config{
		Environment:   env,
		Port:          envOrDefault("PORT", "8080"),
		DBPath:        envOrDefault("CLOSET_DB_PATH", "data/closet.db"),
		ImagesDir:     envOrDefault("CLOSET_IMAGES_DIR", "images/output"),
		OutfitsDir:    envOrDefault("CLOSET_OUTFITS_DIR", "images/outfits"),
		InputDir:      envOrDefault("CLOSET_INPUT_DIR", "images/input"),
		ArchiveDir:    envOrDefault("CLOSET_ARCHIVE_DIR", "images/archive"),
		GeminiAPIKey:  os.Getenv("GEMINI_API_KEY"),
		GeminiModel:   os.Getenv("GEMINI_MODEL"),
		GeminiBaseURL: os.Getenv("GEMINI_API_BASE"),
		PasswordHash:  os.Getenv("CLOSET_PASSWORD_HASH"),
		JWTSecret:     os.Getenv("CLOSET_JWT_SECRET"),
	}

	return cfg, nil
}

func envOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
