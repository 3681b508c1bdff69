package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Source kinds understood by Load.
const (
	SourceCSV      = "csv"
	SourcePostgres = "postgres"
	SourceSQLite   = "sqlite"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	SourceKind string

	AppsCSV    string
	ReviewsCSV string

	PostgresHost     string
	PostgresPort     string
	PostgresUser     string
	PostgresPassword string
	PostgresDB       string
	PostgresSSLMode  string

	SQLitePath   string
	AppsTable    string
	ReviewsTable string

	MaxRetries     int
	HTTPTimeoutSec int

	ListenAddr string
	LogLevel   string
}

// Load reads the .env file and returns a populated Config struct.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("[config] No .env file found, falling back to system env vars")
	}

	return &Config{
		SourceKind: strings.ToLower(getEnv("SOURCE_KIND", SourceCSV)),

		AppsCSV:    getEnv("APPS_CSV", "./data/googleplaystore.csv"),
		ReviewsCSV: getEnv("REVIEWS_CSV", "./data/googleplaystore_user_reviews.csv"),

		PostgresHost:     getEnv("POSTGRES_HOST", "localhost"),
		PostgresPort:     getEnv("POSTGRES_PORT", "5432"),
		PostgresUser:     getEnv("POSTGRES_USER", "insights"),
		PostgresPassword: getEnv("POSTGRES_PASSWORD", "insights"),
		PostgresDB:       getEnv("POSTGRES_DB", "playstore"),
		PostgresSSLMode:  getEnv("POSTGRES_SSLMODE", "disable"),

		SQLitePath:   getEnv("SQLITE_PATH", "./data/playstore.db"),
		AppsTable:    getEnv("APPS_TABLE", "apps"),
		ReviewsTable: getEnv("REVIEWS_TABLE", "reviews"),

		MaxRetries:     getEnvInt("MAX_RETRIES", 3),
		HTTPTimeoutSec: getEnvInt("HTTP_TIMEOUT_SEC", 30),

		ListenAddr: getEnv("LISTEN_ADDR", ""),
		LogLevel:   getEnv("LOG_LEVEL", "info"),
	}
}

// DSN returns the PostgreSQL connection string.
func (c *Config) DSN() string {
	return "host=" + c.PostgresHost +
		" port=" + c.PostgresPort +
		" user=" + c.PostgresUser +
		" password=" + c.PostgresPassword +
		" dbname=" + c.PostgresDB +
		" sslmode=" + c.PostgresSSLMode
}

// Serving reports whether the HTTP surface should be started.
func (c *Config) Serving() bool {
	return c.ListenAddr != ""
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		n, err := strconv.Atoi(val)
		if err == nil {
			return n
		}
	}
	return fallback
}
