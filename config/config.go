package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	StoreDriverPostgres = "postgres"
	StoreDriverMemory   = "memory"

	AuthModeDecode = "decode"
	AuthModeHMAC   = "hmac"
	AuthModeJWKS   = "jwks"
)

type Config struct {
	Port        string
	LogLevel    string
	FrontendURL string
	// Storage
	StoreDriver string
	DBUrl       string
	AutoMigrate bool
	// Authorization
	AuthMode  string
	JWTSecret string
	JWTTTL    time.Duration
	JWKSURL   string
	// Company deletion removes the company's jobs and clears employee references
	CompanyDeleteCascade bool
	// Redis Configuration
	RedisURL      string
	RedisPassword string
	// Rate Limiting Configuration
	RateLimitWindowSeconds   int
	RateLimitLoginThreshold  int
	RateLimitGlobalThreshold int
	RateLimitUploadThreshold int
	// Failed-login lockout
	LoginMaxAttempts   int
	LoginBlockDuration time.Duration
	// Photo uploads
	UploadDir      string
	PublicBaseURL  string
	MaxPhotoBytes  int64
	PhotoMaxPixels int
	S3Bucket       string
	S3Region       string
	S3Endpoint     string
	S3AccessKeyID  string
	S3SecretKey    string
}

func LoadConfig() (*Config, error) {
	// .env is optional; real environment wins
	_ = godotenv.Load()

	cfg := &Config{
		Port:        getEnv("PORT", "8080"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		FrontendURL: strings.TrimRight(getEnv("FRONTEND_URL", "http://localhost:3000"), "/"),

		StoreDriver: strings.ToLower(getEnv("STORE_DRIVER", StoreDriverPostgres)),
		DBUrl:       getEnv("DATABASE_URL", ""),
		AutoMigrate: getEnvBool("AUTO_MIGRATE", true),

		AuthMode:  strings.ToLower(getEnv("AUTH_MODE", AuthModeDecode)),
		JWTSecret: getEnv("JWT_SECRET", ""),
		JWTTTL:    getEnvDuration("JWT_TTL", 24*time.Hour),
		JWKSURL:   getEnv("JWKS_URL", ""),

		CompanyDeleteCascade: getEnvBool("COMPANY_DELETE_CASCADE", false),

		RedisURL:      getEnv("REDIS_URL", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),

		RateLimitWindowSeconds:   getEnvInt("RATE_LIMIT_WINDOW_SECONDS", 60),    // 1 minute window
		RateLimitLoginThreshold:  getEnvInt("RATE_LIMIT_LOGIN_THRESHOLD", 10),   // 10 login attempts per window
		RateLimitGlobalThreshold: getEnvInt("RATE_LIMIT_GLOBAL_THRESHOLD", 300), // 300 requests per window
		RateLimitUploadThreshold: getEnvInt("RATE_LIMIT_UPLOAD_THRESHOLD", 10),   // 10 photo uploads per user per window

		LoginMaxAttempts:   getEnvInt("LOGIN_MAX_ATTEMPTS", 5),
		LoginBlockDuration: getEnvDuration("LOGIN_BLOCK_DURATION", 15*time.Minute),

		UploadDir:      getEnv("UPLOAD_DIR", "./uploads"),
		PublicBaseURL:  strings.TrimRight(getEnv("PUBLIC_BASE_URL", "http://localhost:8080"), "/"),
		MaxPhotoBytes:  int64(getEnvInt("MAX_PHOTO_BYTES", 5<<20)),
		PhotoMaxPixels: getEnvInt("PHOTO_MAX_DIMENSION", 512),
		S3Bucket:       getEnv("S3_BUCKET", ""),
		S3Region:       getEnv("S3_REGION", "us-east-1"),
		S3Endpoint:     getEnv("S3_ENDPOINT", ""),
		S3AccessKeyID:  getEnv("S3_ACCESS_KEY_ID", ""),
		S3SecretKey:    getEnv("S3_SECRET_ACCESS_KEY", ""),
	}

	if cfg.StoreDriver == StoreDriverPostgres && cfg.DBUrl == "" {
		log.Println("WARNING: DATABASE_URL is missing. Application may fail to connect.")
	}
	if cfg.JWTSecret == "" {
		log.Println("WARNING: JWT_SECRET is missing. Login endpoints cannot issue tokens.")
	}
	if cfg.RedisURL == "" {
		log.Println("WARNING: REDIS_URL not configured. Rate limiting will use in-memory fallback.")
	}

	return cfg, nil
}

// S3Enabled reports whether photos go to S3 instead of the local upload dir.
func (c *Config) S3Enabled() bool {
	return c.S3Bucket != ""
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// getEnvInt returns an integer environment variable or fallback if not set/invalid
func getEnvInt(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return fallback
}

// getEnvBool returns a boolean environment variable or fallback if not set/invalid
func getEnvBool(key string, fallback bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return fallback
}

// getEnvDuration accepts Go duration strings ("12h", "30m")
func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}
