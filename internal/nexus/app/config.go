package app

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/aussiebroadwan/nexus/internal/nexus/service"
	"github.com/aussiebroadwan/nexus/internal/nexus/session"
)

const (
	SessionBackendMemory = "memory"
	SessionBackendRedis  = "redis"
)

type Config struct {
	Env                  string        // Environment (dev, staging, prod) (default: dev)
	LogLevel             string        // Log level (debug, info, warn, error) (default: info)
	LogFormat            string        // Log format (json, text) (default: json)
	Port                 int           // HTTP server port (default: 3000)
	ShutdownGracePeriod  time.Duration // Graceful shutdown timeout (default: 10s)
	HousekeepingInterval time.Duration // Expired session sweep interval (default: 10m)

	DatabaseFile   string // Path to SQLite database file (default: ./nexus.db)
	PepperFile     string // Path to file containing pepper for password hashing (default: ./pepper)
	UploadDir      string // Directory holding uploaded documents (default: ./uploads)
	MaxUploadBytes int64  // Largest accepted document (default: 32 MiB)
	MFAIssuer      string // Issuer shown in authenticator apps (default: PixelForge Nexus)

	SessionTTL            time.Duration // Absolute session lifetime (default: 24h)
	SessionCookieName     string        // (default: nexus_sid)
	SessionCookieSecure   bool          // Set Secure on the cookie (default: false)
	SessionCookieSameSite string        // Strict, Lax or None (default: Lax)
	SessionBackend        string        // memory or redis (default: memory)

	RedisAddr     string // (default: localhost:6379)
	RedisPassword string
	RedisDB       int
	RedisPrefix   string // Key prefix for session entries (default: nexus)

	AdminUsername string // Seeded when no Admin exists (default: admin)
	AdminPassword string // (default: Admin123!)
}

func LoadConfig() Config {
	return Config{
		Env:                  getEnvOrDefault("ENV", "dev"),
		LogLevel:             getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:            getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                 getEnvIntOrDefault("PORT", 3000),
		ShutdownGracePeriod:  getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
		HousekeepingInterval: getEnvDurationOrDefault("HOUSEKEEPING_INTERVAL", 10*time.Minute),

		DatabaseFile:   getEnvOrDefault("NEXUS_DATABASE_FILE", "nexus.db"),
		PepperFile:     getEnvOrDefault("NEXUS_PEPPER_FILE", "pepper"),
		UploadDir:      getEnvOrDefault("NEXUS_UPLOAD_DIR", "uploads"),
		MaxUploadBytes: int64(getEnvIntOrDefault("NEXUS_MAX_UPLOAD_BYTES", 32<<20)),
		MFAIssuer:      getEnvOrDefault("NEXUS_MFA_ISSUER", "PixelForge Nexus"),

		SessionTTL:            getEnvDurationOrDefault("SESSION_TTL", session.DefaultTTL),
		SessionCookieName:     getEnvOrDefault("SESSION_COOKIE_NAME", session.DefaultCookieName),
		SessionCookieSecure:   getEnvBoolOrDefault("SESSION_COOKIE_SECURE", false),
		SessionCookieSameSite: getEnvOrDefault("SESSION_COOKIE_SAMESITE", "Lax"),
		SessionBackend:        strings.ToLower(getEnvOrDefault("SESSION_BACKEND", SessionBackendMemory)),

		RedisAddr:     getEnvOrDefault("REDIS_ADDR", "localhost:6379"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       getEnvIntOrDefault("REDIS_DB", 0),
		RedisPrefix:   getEnvOrDefault("REDIS_PREFIX", "nexus"),

		AdminUsername: getEnvOrDefault("ADMIN_USERNAME", "admin"),
		AdminPassword: getEnvOrDefault("ADMIN_PASSWORD", service.DefaultAdminPassword),
	}
}

// Validate rejects settings the application cannot start with.
func (c Config) Validate() error {
	switch c.SessionBackend {
	case SessionBackendMemory, SessionBackendRedis:
	default:
		return fmt.Errorf("SESSION_BACKEND must be %q or %q, got %q",
			SessionBackendMemory, SessionBackendRedis, c.SessionBackend)
	}
	if c.SessionTTL <= 0 {
		return fmt.Errorf("SESSION_TTL must be positive")
	}
	if c.MaxUploadBytes <= 0 {
		return fmt.Errorf("NEXUS_MAX_UPLOAD_BYTES must be positive")
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("PORT out of range: %d", c.Port)
	}
	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if b, err := strconv.ParseBool(value); err == nil {
		return b
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	// Try parsing as duration (e.g., "1h", "30m", "90s")
	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Bare integers are minutes
	if minutes, err := strconv.Atoi(value); err == nil {
		return time.Duration(minutes) * time.Minute
	}

	return defaultValue
}
