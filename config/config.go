package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	Port      string
	DBName    string
	JWTKey    string
	SaltRound int

	// Bootstrap admin account. Notification fan-out resolves "the admin"
	// by this email, not by scanning for role=admin.
	AdminEmail    string
	AdminPassword string

	// External media host (course images, documents, recordings)
	MediaCloudName string
	MediaAPIKey    string
	MediaAPISecret string
	MediaBaseURL   string

	// Outbound email
	SendgridAPIKey   string
	DefaultFromEmail string

	// Local storage root for message attachments
	UploadDir string
}

// AppConfig is a global variable to access configuration
var AppConfig *Config

// LoadConfig initializes configuration from environment variables or defaults
func LoadConfig() {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found. Using system environment variables.")
	}

	AppConfig = &Config{
		Port:      getEnv("PORT", "3000"),
		DBName:    getEnv("DB_NAME", "forma"),
		JWTKey:    getEnv("JWT_SECRET_KEY", "defaultSecret"),
		SaltRound: getEnvInt("SALT_ROUND", 10),

		AdminEmail:    getEnv("ADMIN_EMAIL", "admin@forma.local"),
		AdminPassword: getEnv("ADMIN_PASSWORD", "admin123"),

		MediaCloudName: getEnv("MEDIA_CLOUD_NAME", "forma"),
		MediaAPIKey:    getEnv("MEDIA_API_KEY", ""),
		MediaAPISecret: getEnv("MEDIA_API_SECRET", ""),
		MediaBaseURL:   getEnv("MEDIA_BASE_URL", "https://api.cloudinary.com/v1_1"),

		SendgridAPIKey:   getEnv("SENDGRID_API_KEY", ""),
		DefaultFromEmail: getEnv("DEFAULT_FROM_EMAIL", "noreply@forma.local"),

		UploadDir: getEnv("UPLOAD_DIR", "uploads"),
	}

	// Validate critical configuration
	if AppConfig.JWTKey == "defaultSecret" {
		log.Println("Warning: Using default JWT_SECRET_KEY. Update it in your environment.")
	}
	if AppConfig.AdminPassword == "admin123" {
		log.Println("Warning: Using default ADMIN_PASSWORD. Update it in your environment.")
	}
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvInt retrieves an environment variable as an integer or returns the default integer value
func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	intValue, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("Error converting environment variable %s to int: %v", key, err)
		return defaultValue
	}
	return intValue
}
