// Package config loads service configuration from the environment.
package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds everything the service reads from the environment.
type Config struct {
	Port             string
	GinMode          string
	LogLevel         string
	DataDir          string
	SitemapRequired  bool
	MaxPages         int
	PageDelay        time.Duration
	ProblemThreshold int
}

// Load reads .env files if present and builds the Config with defaults.
func Load() *Config {
	// .env.development wins for local development, then plain .env.
	if err := godotenv.Load(".env.development"); err != nil {
		if err := godotenv.Load(); err != nil {
			log.Println("No .env file found, using environment variables")
		}
	}

	return &Config{
		Port:             getEnv("PORT", "8082"),
		GinMode:          getEnv("GIN_MODE", "release"),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
		DataDir:          getEnv("DATA_DIR", "data"),
		SitemapRequired:  getEnvBool("SITEMAP_REQUIRED", false),
		MaxPages:         getEnvInt("MAX_PAGES", 20),
		PageDelay:        time.Duration(getEnvInt("PAGE_DELAY_MS", 400)) * time.Millisecond,
		ProblemThreshold: getEnvInt("PROBLEM_THRESHOLD", 70),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}
