package config

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// Database
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// Classifier service (hate speech / misinformation models)
	ClassifierBaseURL     string
	ClassifierHatePath    string
	ClassifierMisinfoPath string
	ClassifierTimeout     time.Duration
	ClassifierRPM         int

	// Alerts are raised above this classifier confidence.
	AlertConfidenceThreshold float64

	// Report cache (disabled when RedisURL is empty)
	RedisURL       string
	ReportCacheTTL time.Duration

	// Data sources
	PostsFixturePath    string
	AnalyticsTablesPath string

	// Admin
	AdminToken string

	// Logging
	LogRetentionDays int

	// Server
	Port        string
	CORSOrigins string
}

// Load reads .env files (if present) and then the process environment.
func Load() *Config {
	loadEnvFiles()

	return &Config{
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", ""),
		DBName:     getEnv("DB_NAME", "content_monitor"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		ClassifierBaseURL:     getEnv("CLASSIFIER_BASE_URL", "https://model.sui-ru.com"),
		ClassifierHatePath:    getEnv("CLASSIFIER_HATE_PATH", "/hate/analyze"),
		ClassifierMisinfoPath: getEnv("CLASSIFIER_MISINFO_PATH", "/misinformation/analyze"),
		ClassifierTimeout:     parseDuration(getEnv("CLASSIFIER_TIMEOUT", "10s"), 10*time.Second),
		ClassifierRPM:         parseInt(getEnv("CLASSIFIER_RPM", "60"), 60),

		AlertConfidenceThreshold: parseFloat(getEnv("ALERT_CONFIDENCE_THRESHOLD", "0.7"), 0.7),

		RedisURL:       getEnv("REDIS_URL", ""),
		ReportCacheTTL: parseDuration(getEnv("REPORT_CACHE_TTL", "30s"), 30*time.Second),

		PostsFixturePath:    getEnv("POSTS_FIXTURE_PATH", "data/facebook_data.json"),
		AnalyticsTablesPath: getEnv("ANALYTICS_TABLES_PATH", ""),

		AdminToken: getEnv("ADMIN_TOKEN", ""),

		LogRetentionDays: parseInt(getEnv("LOG_RETENTION_DAYS", "30"), 30),

		Port:        getEnv("PORT", "8080"),
		CORSOrigins: getEnv("CORS_ORIGINS", "*"),
	}
}

func (c *Config) DSN() string {
	return "host=" + c.DBHost +
		" user=" + c.DBUser +
		" password=" + c.DBPassword +
		" dbname=" + c.DBName +
		" port=" + c.DBPort +
		" sslmode=" + c.DBSSLMode +
		" TimeZone=UTC"
}

// loadEnvFiles loads ENV_FILE when set, otherwise .env.local then .env.
// godotenv never overrides variables already present in the environment,
// so .env.local wins over .env.
func loadEnvFiles() {
	files := []string{".env.local", ".env"}
	if envFile := os.Getenv("ENV_FILE"); envFile != "" {
		files = []string{envFile}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			slog.Warn("failed to load env file", "file", f, "error", err)
		}
	}
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func parseDuration(s string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil {
		return fallback
	}
	return d
}

func parseInt(s string, fallback int) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return fallback
	}
	return n
}

func parseFloat(s string, fallback float64) float64 {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fallback
	}
	return f
}
