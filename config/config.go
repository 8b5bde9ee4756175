package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	AuthProviderFirebase = "firebase"
	AuthProviderLocal    = "local"

	StorageProviderFirebase   = "firebase"
	StorageProviderCloudinary = "cloudinary"
)

type Config struct {
	Port               string
	Database           DatabaseConfig
	AuthProvider       string
	JWTSecret          string
	Storage            StorageConfig
	AllowedOrigins     []string
	AllowedEmailDomain string
	ShutdownTimeout    time.Duration
}

type DatabaseConfig struct {
	Driver          string
	URL             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

type StorageConfig struct {
	Provider      string
	Bucket        string
	CloudinaryURL string
}

func LoadEnv() error {
	// Try to load .env file if it exists (for local development).
	// In deployed environments variables are set directly.
	if err := godotenv.Load(); err != nil {
		return nil
	}
	return nil
}

// Load reads the process environment into a Config.
func Load() *Config {
	return &Config{
		Port: GetEnv("PORT", "8080"),
		Database: DatabaseConfig{
			Driver:          strings.ToLower(GetEnv("DATABASE_DRIVER", "postgres")),
			URL:             os.Getenv("DATABASE_URL"),
			MaxOpenConns:    getEnvInt("DATABASE_MAX_OPEN_CONNS", 25),
			MaxIdleConns:    getEnvInt("DATABASE_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: getEnvDuration("DATABASE_CONN_MAX_LIFETIME", 5*time.Minute),
		},
		AuthProvider: strings.ToLower(GetEnv("AUTH_PROVIDER", AuthProviderFirebase)),
		JWTSecret:    os.Getenv("JWT_SECRET"),
		Storage: StorageConfig{
			Provider:      strings.ToLower(GetEnv("STORAGE_PROVIDER", StorageProviderFirebase)),
			Bucket:        os.Getenv("FIREBASE_STORAGE_BUCKET"),
			CloudinaryURL: os.Getenv("CLOUDINARY_URL"),
		},
		AllowedOrigins:     allowedOrigins(),
		AllowedEmailDomain: os.Getenv("ALLOWED_EMAIL_DOMAIN"),
		ShutdownTimeout:    getEnvDuration("SHUTDOWN_TIMEOUT", 30*time.Second),
	}
}

// ValidateEnv checks that critical environment variables are set.
// Returns an error if any critical variable is missing.
func ValidateEnv() error {
	var missing []string

	if os.Getenv("DATABASE_URL") == "" {
		missing = append(missing, "DATABASE_URL")
	}
	if strings.EqualFold(os.Getenv("AUTH_PROVIDER"), AuthProviderLocal) && os.Getenv("JWT_SECRET") == "" {
		missing = append(missing, "JWT_SECRET")
	}
	if strings.EqualFold(os.Getenv("STORAGE_PROVIDER"), StorageProviderCloudinary) && os.Getenv("CLOUDINARY_URL") == "" {
		missing = append(missing, "CLOUDINARY_URL")
	}

	if len(missing) > 0 {
		return fmt.Errorf("critical environment variables not set: %v", missing)
	}

	switch strings.ToLower(GetEnv("DATABASE_DRIVER", "postgres")) {
	case "postgres", "mysql", "sqlite":
	default:
		return fmt.Errorf("unsupported DATABASE_DRIVER %q", os.Getenv("DATABASE_DRIVER"))
	}

	// Non-critical variables - log warnings but don't fail
	if !strings.EqualFold(os.Getenv("STORAGE_PROVIDER"), StorageProviderCloudinary) && os.Getenv("FIREBASE_STORAGE_BUCKET") == "" {
		log.Println("WARNING: FIREBASE_STORAGE_BUCKET not set - file uploads will fail")
	}
	if os.Getenv("GOOGLE_APPLICATION_CREDENTIALS") == "" {
		log.Println("WARNING: GOOGLE_APPLICATION_CREDENTIALS not set - Firebase features may not work")
	}
	if os.Getenv("ALLOWED_ORIGINS") == "" && os.Getenv("FRONTEND_URL") == "" {
		log.Println("WARNING: ALLOWED_ORIGINS not set - CORS defaults to http://localhost:5173")
	}
	if os.Getenv("SMTP_HOST") == "" {
		log.Println("WARNING: SMTP_HOST not set - email notifications will not work")
	}

	return nil
}

func GetEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
		log.Printf("WARNING: invalid integer for %s, using default", key)
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
		log.Printf("WARNING: invalid duration for %s, using default", key)
	}
	return defaultValue
}

// allowedOrigins reads ALLOWED_ORIGINS (comma separated), falling back to FRONTEND_URL.
func allowedOrigins() []string {
	raw := os.Getenv("ALLOWED_ORIGINS")
	if raw == "" {
		raw = os.Getenv("FRONTEND_URL")
	}

	var origins []string
	for _, o := range strings.Split(raw, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	if len(origins) == 0 {
		origins = []string{"http://localhost:5173"}
	}
	return origins
}
