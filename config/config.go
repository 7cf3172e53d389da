package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"nfl-pickem-go/logging"
)

const defaultJWTSecret = "change-me-in-production"

// Config holds all application configuration
type Config struct {
	// Server configuration
	Server ServerConfig `json:"server"`

	// Database configuration
	Database DatabaseConfig `json:"database"`

	// Logging configuration
	Logging LoggingConfig `json:"logging"`

	// Odds provider configuration
	Odds OddsConfig `json:"odds"`

	// Authentication configuration
	Auth AuthConfig `json:"auth"`

	// Application configuration
	App AppConfig `json:"app"`

	// Cache configuration
	Cache CacheConfig `json:"cache"`
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port            string        `json:"port"`
	Host            string        `json:"host"`
	BehindProxy     bool          `json:"behind_proxy"`
	Environment     string        `json:"environment"`
	ShutdownTimeout time.Duration `json:"shutdown_timeout"`
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	URI      string        `json:"-"`
	Host     string        `json:"host"`
	Port     string        `json:"port"`
	Username string        `json:"username"`
	Password string        `json:"-"`
	Database string        `json:"database"`
	Timeout  time.Duration `json:"timeout"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level       string `json:"level"`
	Prefix      string `json:"prefix"`
	EnableColor bool   `json:"enable_color"`
	LogDir      string `json:"log_dir"`
	EnableFile  bool   `json:"enable_file"`
}

// OddsConfig holds odds provider configuration
type OddsConfig struct {
	APIKey            string        `json:"-"`
	BaseURL           string        `json:"base_url"`
	Bookmaker         string        `json:"bookmaker"`
	RequestsPerSecond float64       `json:"requests_per_second"`
	Timeout           time.Duration `json:"timeout"`
}

// AuthConfig holds admin authentication configuration
type AuthConfig struct {
	JWTSecret         string        `json:"-"`
	AdminUsername     string        `json:"admin_username"`
	AdminPasswordHash string        `json:"-"`
	TokenExpiry       time.Duration `json:"token_expiry"`
}

// AppConfig holds application-specific configuration
type AppConfig struct {
	CurrentSeason            int       `json:"current_season"`
	Week1Start               time.Time `json:"week1_start"`
	NFLWeeks                 int       `json:"nfl_weeks"`
	IsDevelopment            bool      `json:"is_development"`
	BackgroundUpdaterEnabled bool      `json:"background_updater_enabled"`
	RefreshSchedule          string    `json:"refresh_schedule"`
}

// CacheConfig holds leaderboard cache configuration. An empty RedisURL disables caching.
type CacheConfig struct {
	RedisURL       string        `json:"-"`
	LeaderboardTTL time.Duration `json:"leaderboard_ttl"`
}

// Load loads configuration from the .env file, if any, and the environment
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		logging.Debugf("Could not load .env file: %v", err)
	}
	return FromEnv()
}

// FromEnv builds configuration from environment variables only
func FromEnv() (*Config, error) {
	environment := getEnv("ENVIRONMENT", "development")
	isDevelopment := strings.ToLower(environment) == "development"

	week1Start, err := getTimeEnv("WEEK1_START", time.Date(2025, time.September, 4, 0, 0, 0, 0, time.UTC))
	if err != nil {
		return nil, err
	}

	config := &Config{
		Server: ServerConfig{
			Port:            getEnv("SERVER_PORT", "8080"),
			Host:            getEnv("SERVER_HOST", "0.0.0.0"),
			BehindProxy:     getBoolEnv("BEHIND_PROXY", false),
			Environment:     environment,
			ShutdownTimeout: getDurationEnv("SHUTDOWN_TIMEOUT", 15*time.Second),
		},
		Database: DatabaseConfig{
			URI:      getEnv("DB_URI", ""),
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "27017"),
			Username: getEnv("DB_USERNAME", ""),
			Password: getEnv("DB_PASSWORD", ""),
			Database: getEnv("DB_NAME", "nfl_pickem"),
			Timeout:  getDurationEnv("DB_TIMEOUT", 10*time.Second),
		},
		Logging: LoggingConfig{
			Level:       getEnv("LOG_LEVEL", "info"),
			Prefix:      getEnv("LOG_PREFIX", ""),
			EnableColor: getBoolEnv("LOG_COLOR", true),
			LogDir:      getEnv("LOG_DIR", "./logs"),
			EnableFile:  getBoolEnv("LOG_FILE", false),
		},
		Odds: OddsConfig{
			// ODD_API_KEY is the name older deployments used
			APIKey:            getEnv("ODDS_API_KEY", getEnv("ODD_API_KEY", "")),
			BaseURL:           getEnv("ODDS_API_BASE_URL", "https://api.the-odds-api.com"),
			Bookmaker:         getEnv("ODDS_BOOKMAKER", "draftkings"),
			RequestsPerSecond: getFloatEnv("ODDS_REQUESTS_PER_SECOND", 1),
			Timeout:           getDurationEnv("ODDS_TIMEOUT", 10*time.Second),
		},
		Auth: AuthConfig{
			JWTSecret:         getEnv("JWT_SECRET", defaultJWTSecret),
			AdminUsername:     getEnv("ADMIN_USERNAME", "admin"),
			AdminPasswordHash: getEnv("ADMIN_PASSWORD_HASH", ""),
			TokenExpiry:       getDurationEnv("TOKEN_EXPIRY", 12*time.Hour),
		},
		App: AppConfig{
			CurrentSeason:            getIntEnv("CURRENT_SEASON", 2025),
			Week1Start:               week1Start,
			NFLWeeks:                 getIntEnv("NFL_WEEKS", 18),
			IsDevelopment:            isDevelopment,
			BackgroundUpdaterEnabled: getBoolEnv("BACKGROUND_UPDATER_ENABLED", false),
			RefreshSchedule:          getEnv("REFRESH_SCHEDULE", "0 */15 * * * *"),
		},
		Cache: CacheConfig{
			RedisURL:       getEnv("REDIS_URL", ""),
			LeaderboardTTL: getDurationEnv("LEADERBOARD_CACHE_TTL", 10*time.Minute),
		},
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration for required fields and sensible values
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("server port is required")
	}

	if c.Database.URI == "" {
		if c.Database.Host == "" {
			return fmt.Errorf("database host is required")
		}
		if c.Database.Port == "" {
			return fmt.Errorf("database port is required")
		}
	}
	if c.Database.Database == "" {
		return fmt.Errorf("database name is required")
	}

	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("JWT secret is required")
	}
	if c.Auth.JWTSecret == defaultJWTSecret && !c.App.IsDevelopment {
		return fmt.Errorf("JWT secret must be changed in production")
	}

	if c.App.CurrentSeason < 2020 || c.App.CurrentSeason > 2100 {
		return fmt.Errorf("current season must be between 2020 and 2100, got: %d", c.App.CurrentSeason)
	}
	if c.App.NFLWeeks < 1 {
		return fmt.Errorf("NFL_WEEKS must be positive, got: %d", c.App.NFLWeeks)
	}
	if c.Odds.RequestsPerSecond < 0 {
		return fmt.Errorf("ODDS_REQUESTS_PER_SECOND must not be negative")
	}

	return nil
}

// GetServerAddress returns the full server address
func (c *Config) GetServerAddress() string {
	return c.Server.Host + ":" + c.Server.Port
}

// IsOddsConfigured returns true if the odds provider can be called
func (c *Config) IsOddsConfigured() bool {
	return c.Odds.APIKey != ""
}

// IsAdminConfigured returns true if admin login is possible
func (c *Config) IsAdminConfigured() bool {
	return c.Auth.AdminUsername != "" && c.Auth.AdminPasswordHash != ""
}

// IsCacheEnabled returns true if a Redis URL is set
func (c *Config) IsCacheEnabled() bool {
	return c.Cache.RedisURL != ""
}

// LogConfiguration logs the current configuration (without sensitive data)
func (c *Config) LogConfiguration() {
	logging.Info("=== Application Configuration ===")
	logging.Infof("Server: %s (Behind Proxy: %t, Environment: %s)",
		c.GetServerAddress(), c.Server.BehindProxy, c.Server.Environment)
	if c.Database.URI != "" {
		logging.Infof("Database: URI set, name=%s", c.Database.Database)
	} else {
		logging.Infof("Database: %s:%s/%s (Username: %s, Auth: %t)",
			c.Database.Host, c.Database.Port, c.Database.Database,
			c.Database.Username, c.Database.Password != "")
	}
	logging.Infof("Logging: Level=%s, Color=%t, File=%t", c.Logging.Level, c.Logging.EnableColor, c.Logging.EnableFile)
	logging.Infof("Odds: Configured=%t, Bookmaker=%s, Rate=%.2f/s",
		c.IsOddsConfigured(), c.Odds.Bookmaker, c.Odds.RequestsPerSecond)
	logging.Infof("Admin: Configured=%t, Username=%s", c.IsAdminConfigured(), c.Auth.AdminUsername)
	logging.Infof("App: Season=%d, Week1=%s, Weeks=%d, BackgroundUpdater=%t (%s)",
		c.App.CurrentSeason, c.App.Week1Start.Format("2006-01-02"), c.App.NFLWeeks,
		c.App.BackgroundUpdaterEnabled, c.App.RefreshSchedule)
	logging.Infof("Cache: Enabled=%t, TTL=%v", c.IsCacheEnabled(), c.Cache.LeaderboardTTL)
	logging.Info("================================")
}

// Helper functions for environment variable parsing

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		switch strings.ToLower(value) {
		case "true", "1", "yes", "on":
			return true
		case "false", "0", "no", "off":
			return false
		}
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getFloatEnv(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseFloat(value, 64); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

// getTimeEnv accepts a date (2006-01-02, midnight UTC) or an RFC 3339 timestamp
func getTimeEnv(key string, defaultValue time.Time) (time.Time, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid %s %q: expected YYYY-MM-DD or RFC 3339", key, value)
	}
	return t.UTC(), nil
}
