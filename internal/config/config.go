// Package config handles loading application configuration from environment
// variables. All config is centralized here so no other package reads env
// vars directly. Sensible defaults are provided for development.
package config

import (
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/joho/godotenv"
)

// Config holds all application configuration. Populated from environment
// variables at startup. Passed to other packages via dependency injection.
type Config struct {
	// Env is the runtime environment: "development" or "production".
	Env string

	// Port is the HTTP listen port (default: 8080).
	Port int

	// BaseURL is the public-facing URL of the front-end timeline viewer.
	// Used as the allowed CORS origin.
	BaseURL string

	// LogLevel overrides the environment's default verbosity: "debug",
	// "info", "warn" or "error". Empty keeps the default.
	LogLevel string

	// Database holds MariaDB connection settings.
	Database DatabaseConfig

	// Redis holds Redis connection settings for the read cache.
	Redis RedisConfig

	// Archive holds settings for the web-archiving (permanence) API.
	Archive ArchiveConfig

	// Upload holds settings for citation image uploads.
	Upload UploadConfig

	// Export holds the location of the static per-timeline event exports.
	Export ExportConfig

	// Years holds the deployment-wide year display toggles.
	Years YearToggles

	// Admin holds settings for the admin write API.
	Admin AdminConfig
}

// DatabaseConfig holds MariaDB connection parameters. Individual fields
// (Host, User, Password, Name) are read from separate env vars so
// container orchestrators can manage each independently.
// If DATABASE_URL is set, it takes precedence over the individual fields.
type DatabaseConfig struct {
	// Host is the MariaDB address in host:port format (default: "localhost:3306").
	// If no port is specified, 3306 is appended automatically.
	Host string

	User     string
	Password string
	Name     string

	// dsnOverride is set when DATABASE_URL is provided, bypassing individual fields.
	dsnOverride string

	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration

	// MigrationsPath is the directory holding the *.up.sql / *.down.sql files.
	MigrationsPath string
}

// DSN returns the go-sql-driver/mysql connection string. If DATABASE_URL was
// set, it is returned as-is. Otherwise the DSN is built from the individual
// fields with the driver's Config.FormatDSN() so special characters in
// passwords survive.
func (d DatabaseConfig) DSN() string {
	if d.dsnOverride != "" {
		return d.dsnOverride
	}
	cfg := mysql.NewConfig()
	cfg.User = d.User
	cfg.Passwd = d.Password
	cfg.Net = "tcp"
	cfg.Addr = ensurePort(d.Host, "3306")
	cfg.DBName = d.Name
	cfg.ParseTime = true
	cfg.MultiStatements = true
	return cfg.FormatDSN()
}

// ensurePort appends the default port if the host string doesn't include one.
func ensurePort(host, defaultPort string) string {
	_, _, err := net.SplitHostPort(host)
	if err != nil {
		return net.JoinHostPort(host, defaultPort)
	}
	return host
}

// RedisConfig holds Redis connection parameters.
type RedisConfig struct {
	// URL is the Redis connection URL (e.g., "redis://localhost:6379").
	URL string

	// CacheTTL is how long derived read-API payloads stay cached.
	CacheTTL time.Duration
}

// ArchiveConfig holds the permanence API settings. Archival is disabled
// when APIKey is empty.
type ArchiveConfig struct {
	APIKey string

	// Folder is the destination folder ID on the archiving service.
	Folder string

	// APIURL is the base URL of the archiving API (no trailing slash).
	APIURL string

	// Host is prefixed to the returned GUID to build the permanent link.
	Host string

	// Timeout bounds a single archive request.
	Timeout time.Duration
}

// Enabled reports whether an API key is configured.
func (a ArchiveConfig) Enabled() bool {
	return a.APIKey != ""
}

// UploadConfig holds file upload settings.
type UploadConfig struct {
	// MaxSize is the maximum upload file size in bytes.
	MaxSize int64

	// MediaPath is the root directory for image file storage.
	MediaPath string

	// MediaURL is the public URL prefix images are served from.
	MediaURL string
}

// ExportConfig points at the directory holding json/events-{slug}.json.
type ExportConfig struct {
	Dir string
}

// YearToggles is the year range offered to the timeline viewer. Serialized
// directly by the year-settings endpoint.
type YearToggles struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// AdminConfig holds admin API settings.
type AdminConfig struct {
	// TokenHash is a bcrypt hash of the admin bearer token. The admin API
	// is not mounted when empty.
	TokenHash string
}

// Load reads configuration from environment variables with sensible defaults.
func Load() (*Config, error) {
	// A .env file in the working directory fills in variables not already
	// set. Its absence is normal in production.
	_ = godotenv.Load()

	cfg := &Config{
		Env:      getEnv("ENV", "development"),
		Port:     getEnvInt("PORT", 8080),
		BaseURL:  getEnv("BASE_URL", "http://localhost:8081"),
		LogLevel: getEnv("LOG_LEVEL", ""),

		Database: DatabaseConfig{
			Host:            getEnv("DB_HOST", "localhost:3306"),
			User:            getEnv("DB_USER", "timeline"),
			Password:        getEnv("DB_PASSWORD", "timeline"),
			Name:            getEnv("DB_NAME", "timeline"),
			dsnOverride:     getEnv("DATABASE_URL", ""),
			MaxOpenConns:    getEnvInt("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns:    getEnvInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: getEnvDuration("DB_CONN_MAX_LIFETIME", 5*time.Minute),
			MigrationsPath:  getEnv("MIGRATIONS_PATH", "db/migrations"),
		},

		Redis: RedisConfig{
			URL:      getEnv("REDIS_URL", "redis://localhost:6379"),
			CacheTTL: getEnvDuration("CACHE_TTL", 5*time.Minute),
		},

		Archive: ArchiveConfig{
			APIKey:  getEnv("ARCHIVE_API_KEY", ""),
			Folder:  getEnv("ARCHIVE_FOLDER", ""),
			APIURL:  strings.TrimRight(getEnv("ARCHIVE_API_URL", "https://api.perma.cc/v1"), "/"),
			Host:    strings.TrimRight(getEnv("ARCHIVE_HOST", "https://perma.cc"), "/"),
			Timeout: getEnvDuration("ARCHIVE_TIMEOUT", 15*time.Second),
		},

		Upload: UploadConfig{
			MaxSize:   getEnvInt64("MAX_UPLOAD_SIZE", 10*1024*1024), // 10MB
			MediaPath: getEnv("MEDIA_PATH", "./media"),
			MediaURL:  strings.TrimRight(getEnv("MEDIA_URL", "/media"), "/"),
		},

		Export: ExportConfig{
			Dir: getEnv("EXPORT_DIR", "./data"),
		},

		Years: YearToggles{
			Min: getEnvInt("YEARS_MIN", 1850),
			Max: getEnvInt("YEARS_MAX", 1930),
		},

		Admin: AdminConfig{
			TokenHash: getEnv("ADMIN_TOKEN_HASH", ""),
		},
	}

	return cfg, nil
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	env := strings.ToLower(c.Env)
	return env == "development" || env == "dev"
}

// --- Helper functions for reading environment variables ---

// getEnv reads a string env var or returns the default.
func getEnv(key, defaultVal string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return defaultVal
}

// getEnvInt reads an integer env var or returns the default.
func getEnvInt(key string, defaultVal int) int {
	if val, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return defaultVal
}

// getEnvInt64 reads an int64 env var or returns the default.
func getEnvInt64(key string, defaultVal int64) int64 {
	if val, ok := os.LookupEnv(key); ok {
		if i, err := strconv.ParseInt(val, 10, 64); err == nil {
			return i
		}
	}
	return defaultVal
}

// getEnvDuration reads a duration env var (e.g., "15s") or returns the default.
func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if val, ok := os.LookupEnv(key); ok {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
	}
	return defaultVal
}
