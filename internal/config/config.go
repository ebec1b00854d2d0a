package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	ServerPort      string
	AppBaseURL      string
	SessionDuration time.Duration
	SessionSecret   string

	// Database: sqlite (default), postgres or mysql
	DatabaseType   string
	DatabasePath   string
	DatabaseURL    string
	MigrationsPath string

	// File storage: local (default) or s3
	StorageBackend  string
	StoragePath     string
	S3Bucket        string
	UploadMaxSize   int64
	StaticFilesPath string

	// Email (AWS SES); disabled when SESFromEmail is empty
	AWSRegion    string
	SESFromEmail string
	SESFromName  string
	EmailDebug   bool

	// OAuth providers
	OAuthRedirectBaseURL string
	GoogleClientID       string
	GoogleClientSecret   string
	FacebookClientID     string
	FacebookClientSecret string
	AppleClientID        string
	AppleClientSecret    string
}

// Load reads configuration from environment variables with sensible defaults.
// A .env file in the working directory is loaded first if present.
func Load() *Config {
	if err := godotenv.Load(); err == nil {
		log.Println("Loaded configuration from .env")
	}

	return &Config{
		ServerPort:      getEnv("PORT", "8080"),
		AppBaseURL:      getEnv("APP_BASE_URL", "http://localhost:8080"),
		SessionDuration: getEnvDuration("SESSION_DURATION", 24*time.Hour),
		SessionSecret:   getEnv("SESSION_SECRET", "dev-only-insecure-secret"),

		DatabaseType:   getEnv("DB_TYPE", "sqlite"),
		DatabasePath:   getEnv("DB_PATH", "./flicksclub.db"),
		DatabaseURL:    getEnv("DB_URL", ""),
		MigrationsPath: getEnv("MIGRATIONS_PATH", "./migrations"),

		StorageBackend:  getEnv("STORAGE_BACKEND", "local"),
		StoragePath:     getEnv("STORAGE_PATH", "./data/documents"),
		S3Bucket:        getEnv("S3_BUCKET", ""),
		UploadMaxSize:   getEnvInt64("UPLOAD_MAX_SIZE", 10*1024*1024), // 10MB
		StaticFilesPath: getEnv("STATIC_PATH", "./static"),

		AWSRegion:    getEnv("AWS_REGION", "us-east-1"),
		SESFromEmail: getEnv("SES_FROM_EMAIL", ""),
		SESFromName:  getEnv("SES_FROM_NAME", "Flicks Club"),
		EmailDebug:   getEnvBool("EMAIL_DEBUG", false),

		OAuthRedirectBaseURL: getEnv("OAUTH_REDIRECT_BASE_URL", "http://localhost:8080"),
		GoogleClientID:       getEnv("GOOGLE_CLIENT_ID", ""),
		GoogleClientSecret:   getEnv("GOOGLE_CLIENT_SECRET", ""),
		FacebookClientID:     getEnv("FACEBOOK_CLIENT_ID", ""),
		FacebookClientSecret: getEnv("FACEBOOK_CLIENT_SECRET", ""),
		AppleClientID:        getEnv("APPLE_CLIENT_ID", ""),
		AppleClientSecret:    getEnv("APPLE_CLIENT_SECRET", ""),
	}
}

// getEnv reads an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.ParseInt(value, 10, 64); err == nil {
			return n
		}
		log.Printf("Invalid value for %s, using default", key)
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
		log.Printf("Invalid value for %s, using default", key)
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
		log.Printf("Invalid value for %s, using default", key)
	}
	return defaultValue
}
