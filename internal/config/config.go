// Package config provides configuration management for the application.
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration values for the application.
type Config struct {
	// AWS
	AWSRegion          string
	S3Bucket           string
	CatalogSnapshotKey string
	ReportPrefix       string

	// Database
	DBHost     string
	DBPort     int
	DBName     string
	DBUser     string
	DBPassword string

	// SES
	SESSenderEmail string
	LeadInboxEmail string

	// Engine
	DisqualifyMixShare   float64
	RefundVarianceLow    float64
	RefundVarianceHigh   float64
	VATPercent           float64
	InternationalShare   float64
	HighChargebackFee    float64
	StaleAfterDays       int
	EngineWorkers        int
	ReportExpiryMinutes  int
	NotificationTopCount int

	// Application
	Stage    string
	LogLevel string
	Port     string
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	// Load .env file if it exists (for local development)
	_ = godotenv.Load()

	cfg := &Config{
		// AWS
		AWSRegion:          getEnv("AWS_REGION", "me-south-1"),
		S3Bucket:           getEnv("S3_BUCKET", "psp-advisor-dev"),
		CatalogSnapshotKey: getEnv("CATALOG_SNAPSHOT_KEY", "catalog/providers.json"),
		ReportPrefix:       getEnv("REPORT_PREFIX", "reports"),

		// Database
		DBHost:     getEnv("DB_HOST", getEnv("ADVISOR_DB_HOST", "localhost")),
		DBPort:     getEnvInt("DB_PORT", getEnvInt("ADVISOR_DB_PORT", 5432)),
		DBName:     getEnv("DB_NAME", getEnv("ADVISOR_DB_NAME", "psp_advisor")),
		DBUser:     getEnv("DB_USER", getEnv("ADVISOR_DB_USER", "postgres")),
		DBPassword: getEnv("DB_PASSWORD", getEnv("ADVISOR_DB_PASSWORD", "")),

		// SES
		SESSenderEmail: getEnv("SES_SENDER_EMAIL", ""),
		LeadInboxEmail: getEnv("LEAD_INBOX_EMAIL", ""),

		// Engine
		DisqualifyMixShare:   getEnvFloat("DISQUALIFY_MIX_SHARE", 20),
		RefundVarianceLow:    getEnvFloat("REFUND_VARIANCE_LOW", 0.5),
		RefundVarianceHigh:   getEnvFloat("REFUND_VARIANCE_HIGH", 1.5),
		VATPercent:           getEnvFloat("VAT_PERCENT", 15),
		InternationalShare:   getEnvFloat("INTERNATIONAL_SHARE", 20),
		HighChargebackFee:    getEnvFloat("HIGH_CHARGEBACK_FEE", 60),
		StaleAfterDays:       getEnvInt("STALE_AFTER_DAYS", 90),
		EngineWorkers:        getEnvInt("ENGINE_WORKERS", 8),
		ReportExpiryMinutes:  getEnvInt("REPORT_EXPIRY_MINUTES", 60),
		NotificationTopCount: getEnvInt("NOTIFICATION_TOP_COUNT", 3),

		// Application
		Stage:    getEnv("STAGE", "dev"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
		Port:     getEnv("PORT", "8080"),
	}

	return cfg, nil
}

// DatabaseURL returns the PostgreSQL connection string.
func (c *Config) DatabaseURL() string {
	sslMode := "require" // Use SSL for RDS
	if c.DBHost == "localhost" || c.DBHost == "127.0.0.1" {
		sslMode = "disable" // Disable SSL for local development
	}
	return "postgres://" + c.DBUser + ":" + c.DBPassword + "@" + c.DBHost + ":" + strconv.Itoa(c.DBPort) + "/" + c.DBName + "?sslmode=" + sslMode
}

// StaleAfter returns the age after which provider data is considered stale.
func (c *Config) StaleAfter() time.Duration {
	return time.Duration(c.StaleAfterDays) * 24 * time.Hour
}

// DatabaseConfigured reports whether a database password or non-local host was supplied.
func (c *Config) DatabaseConfigured() bool {
	return c.DBPassword != "" || (c.DBHost != "localhost" && c.DBHost != "127.0.0.1")
}

// getEnv retrieves an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt retrieves an environment variable as int or returns a default value.
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

// getEnvFloat retrieves an environment variable as float64 or returns a default value.
func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 64); err == nil {
			return floatVal
		}
	}
	return defaultValue
}
