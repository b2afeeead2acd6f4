// Package config handles application configuration loading and management.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application.
type Config struct {
	Server   ServerConfig
	Cache    CacheConfig
	DocDB    DocDBConfig
	Vault    VaultConfig
	Upstream UpstreamConfig
	Views    ViewsConfig
	Log      LogConfig
}

// ServerConfig holds server-related configuration.
type ServerConfig struct {
	Host               string
	Port               int
	GinMode            string
	CORSAllowedOrigins []string
	// LoginRedirect is the login surface named in session-expired responses.
	LoginRedirect string
	EnableDocs    bool
}

// Address returns the server address in host:port format.
func (c ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// CacheConfig holds cache-related configuration.
type CacheConfig struct {
	Type      string
	Host      string
	Port      string
	Password  string
	DB        int
	TTL       time.Duration
	KeyPrefix string
}

// DocDBConfig holds document database configuration.
type DocDBConfig struct {
	Type     string
	URI      string
	Database string
}

// VaultConfig holds vault configuration.
type VaultConfig struct {
	Type string
}

// UpstreamConfig holds the admin and dashboard API configuration.
type UpstreamConfig struct {
	AdminURL     string
	DashboardURL string
	RefreshPath  string
	LoginPath    string
	LogoutPath   string
	MePath       string
	Timeout      time.Duration

	// Username and PasswordRef enable a service login at startup. The
	// password is resolved through the vault.
	Username    string
	PasswordRef string
}

// ServiceLogin reports whether a startup login is configured.
func (c UpstreamConfig) ServiceLogin() bool {
	return c.Username != "" && c.PasswordRef != ""
}

// ViewsConfig holds list view configuration.
type ViewsConfig struct {
	PageSize int
	StateTTL time.Duration
	// StateKey encrypts persisted view state. Empty disables encryption.
	StateKey string
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level  string
	Format string
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	// Load .env file if it exists (ignore error if not found)
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Host:               getEnv("SERVER_HOST", "0.0.0.0"),
			Port:               getEnvAsInt("SERVER_PORT", 8080),
			GinMode:            getEnv("GIN_MODE", "debug"),
			CORSAllowedOrigins: getEnvAsList("CORS_ALLOWED_ORIGINS", []string{"http://localhost:3000"}),
			LoginRedirect:      getEnv("LOGIN_REDIRECT", "/login"),
			EnableDocs:         getEnv("ENABLE_DOCS", "true") == "true",
		},
		Cache: CacheConfig{
			Type:      getEnv("CACHE_TYPE", "redis"),
			Host:      getEnv("REDIS_HOST", "localhost"),
			Port:      getEnv("REDIS_PORT", "6379"),
			Password:  getEnv("REDIS_PASSWORD", ""),
			DB:        getEnvAsInt("REDIS_DB", 0),
			TTL:       getEnvAsDuration("CACHE_TTL_SECONDS", 30*time.Minute),
			KeyPrefix: getEnv("CACHE_KEY_PREFIX", "admin-gateway:"),
		},
		DocDB: DocDBConfig{
			Type:     getEnv("DOCDB_TYPE", "mongodb"),
			URI:      getEnv("MONGODB_URI", "mongodb://localhost:27017"),
			Database: getEnv("MONGODB_DATABASE", "unifiedui"),
		},
		Vault: VaultConfig{
			Type: getEnv("VAULT_TYPE", "dotenv"),
		},
		Upstream: UpstreamConfig{
			AdminURL:     getEnv("ADMIN_API_URL", "http://localhost:8081/api/admin"),
			DashboardURL: getEnv("DASHBOARD_API_URL", ""),
			RefreshPath:  getEnv("AUTH_REFRESH_PATH", "/auth/refresh"),
			LoginPath:    getEnv("AUTH_LOGIN_PATH", "/auth/login"),
			LogoutPath:   getEnv("AUTH_LOGOUT_PATH", "/auth/logout"),
			MePath:       getEnv("AUTH_ME_PATH", "/auth/me"),
			Timeout:      getEnvAsDuration("UPSTREAM_TIMEOUT_SECONDS", 30*time.Second),
			Username:     getEnv("UPSTREAM_USERNAME", ""),
			PasswordRef:  getEnv("UPSTREAM_PASSWORD_REF", ""),
		},
		Views: ViewsConfig{
			PageSize: getEnvAsInt("LIST_PAGE_SIZE", 50),
			StateTTL: getEnvAsDuration("VIEW_STATE_TTL_SECONDS", 30*time.Minute),
			StateKey: getEnv("VIEW_STATE_ENCRYPTION_KEY", ""),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
	}

	if cfg.Upstream.AdminURL == "" {
		return nil, fmt.Errorf("ADMIN_API_URL is required")
	}
	if cfg.Views.PageSize <= 0 {
		return nil, fmt.Errorf("LIST_PAGE_SIZE must be positive, got %d", cfg.Views.PageSize)
	}

	return cfg, nil
}

// getEnv gets an environment variable with a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt gets an environment variable as an integer with a default value.
func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvAsDuration reads a whole number of seconds.
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if seconds, err := strconv.Atoi(value); err == nil && seconds >= 0 {
			return time.Duration(seconds) * time.Second
		}
	}
	return defaultValue
}

// getEnvAsList splits a comma separated variable, dropping blanks.
func getEnvAsList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
