package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"clubsite/backend/internal/repository"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

const defaultJWTSecret = "change_me"

// Config holds all application configuration
type Config struct {
	// Database
	DatabaseHost     string `envconfig:"DATABASE_HOST" default:"localhost"`
	DatabasePort     int    `envconfig:"DATABASE_PORT" default:"5432"`
	DatabaseName     string `envconfig:"DATABASE_NAME" default:"clubsite"`
	DatabaseUser     string `envconfig:"DATABASE_USER" default:"clubsite"`
	DatabasePassword string `envconfig:"DATABASE_PASSWORD" default:""`
	DatabaseSSLMode  string `envconfig:"DATABASE_SSL_MODE" default:"disable"`
	AutoMigrate      bool   `envconfig:"AUTO_MIGRATE" default:"true"`

	// Redis
	RedisEnabled  bool   `envconfig:"REDIS_ENABLED" default:"true"`
	RedisHost     string `envconfig:"REDIS_HOST" default:"localhost"`
	RedisPort     int    `envconfig:"REDIS_PORT" default:"6379"`
	RedisPassword string `envconfig:"REDIS_PASSWORD" default:""`
	RedisDB       int    `envconfig:"REDIS_DB" default:"0"`

	// Application
	AppEnv      string   `envconfig:"APP_ENV" default:"development"`
	LogLevel    string   `envconfig:"LOG_LEVEL" default:"info"`
	HTTPPort    int      `envconfig:"HTTP_PORT" default:"8001"`
	CORSOrigins []string `envconfig:"CORS_ORIGINS" default:"*"`

	// Auth
	JWTSecretKey   string        `envconfig:"JWT_SECRET_KEY" default:"change_me"`
	AccessTokenTTL time.Duration `envconfig:"ACCESS_TOKEN_TTL" default:"24h"`
	AdminEmail     string        `envconfig:"ADMIN_EMAIL" default:""`
	AdminPassword  string        `envconfig:"ADMIN_PASSWORD" default:""`

	// Scheduler
	EnableScheduler      bool   `envconfig:"ENABLE_SCHEDULER" default:"true"`
	InitialSyncEnabled   bool   `envconfig:"INITIAL_SYNC_ENABLED" default:"true"`
	StandingsRefreshCron string `envconfig:"STANDINGS_REFRESH_CRON" default:"0 3 * * *"`
	StandingsTimezone    string `envconfig:"STANDINGS_TIMEZONE" default:""`

	// Standings source page
	StandingsURL           string        `envconfig:"STANDINGS_URL" default:"https://ffsr.ru/standings"`
	StandingsUserAgent     string        `envconfig:"STANDINGS_USER_AGENT" default:"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"`
	StandingsFetchTimeout  time.Duration `envconfig:"STANDINGS_FETCH_TIMEOUT" default:"10s"`
	StandingsMaxBodyBytes  int64         `envconfig:"STANDINGS_MAX_BODY_BYTES" default:"4194304"`
	StandingsLeagueName    string        `envconfig:"STANDINGS_LEAGUE_NAME" default:"ПЕРВАЯ лига"`
	StandingsLeagueMarker  string        `envconfig:"STANDINGS_LEAGUE_MARKER" default:"ПЕРВАЯ"`
	StandingsGenericMarker string        `envconfig:"STANDINGS_GENERIC_MARKER" default:"лига"`
	StandingsLookback      int           `envconfig:"STANDINGS_LOOKBACK" default:"5"`
	StandingsMinColumns    int           `envconfig:"STANDINGS_MIN_COLUMNS" default:"8"`

	// Caching TTL
	CacheTTLStandings time.Duration `envconfig:"CACHE_TTL_STANDINGS" default:"6h"`

	// Monitoring
	EnableMetrics bool `envconfig:"ENABLE_METRICS" default:"true"`
	MetricsPort   int  `envconfig:"METRICS_PORT" default:"9090"`
}

// Load loads configuration from environment variables
// It first attempts to load from .env file if in development mode
func Load() (*Config, error) {
	cfg, err := process()
	if err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// LoadPipeline loads configuration for commands that run the standings
// pipeline without opening the database. Database and auth settings are
// not checked.
func LoadPipeline() (*Config, error) {
	cfg, err := process()
	if err != nil {
		return nil, err
	}

	if err := cfg.ValidatePipeline(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func process() (*Config, error) {
	// Try to load .env file (ignore error if doesn't exist)
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment config: %w", err)
	}
	return &cfg, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.DatabasePassword == "" {
		return fmt.Errorf("DATABASE_PASSWORD is required")
	}

	if c.JWTSecretKey == defaultJWTSecret && c.IsProduction() {
		return fmt.Errorf("JWT_SECRET_KEY must be changed in production")
	}

	if (c.AdminEmail == "") != (c.AdminPassword == "") {
		return fmt.Errorf("ADMIN_EMAIL and ADMIN_PASSWORD must be set together")
	}

	return c.ValidatePipeline()
}

// ValidatePipeline checks only the standings source and scheduler settings
func (c *Config) ValidatePipeline() error {
	if strings.TrimSpace(c.StandingsURL) == "" {
		return fmt.Errorf("STANDINGS_URL is required")
	}

	if c.StandingsFetchTimeout <= 0 {
		return fmt.Errorf("STANDINGS_FETCH_TIMEOUT must be positive")
	}

	if c.StandingsLookback < 1 {
		return fmt.Errorf("STANDINGS_LOOKBACK must be at least 1")
	}

	if c.StandingsMinColumns < 1 {
		return fmt.Errorf("STANDINGS_MIN_COLUMNS must be at least 1")
	}

	if _, err := c.Location(); err != nil {
		return err
	}

	return nil
}

// Database returns the repository connection settings
func (c *Config) Database() repository.Config {
	return repository.Config{
		Host:     c.DatabaseHost,
		Port:     strconv.Itoa(c.DatabasePort),
		User:     c.DatabaseUser,
		Password: c.DatabasePassword,
		Database: c.DatabaseName,
		SSLMode:  c.DatabaseSSLMode,
	}
}

// RedisAddr returns the Redis address
func (c *Config) RedisAddr() string {
	return fmt.Sprintf("%s:%d", c.RedisHost, c.RedisPort)
}

// Location returns the time zone the daily refresh runs in.
// Empty means the server's local time.
func (c *Config) Location() (*time.Location, error) {
	if c.StandingsTimezone == "" {
		return time.Local, nil
	}

	loc, err := time.LoadLocation(c.StandingsTimezone)
	if err != nil {
		return nil, fmt.Errorf("invalid STANDINGS_TIMEZONE %q: %w", c.StandingsTimezone, err)
	}
	return loc, nil
}

// StandingsMarkers returns the text markers that identify the standings table
func (c *Config) StandingsMarkers() []string {
	return []string{c.StandingsLeagueMarker, c.StandingsGenericMarker}
}

// IsDevelopment returns true if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// MustLoad loads configuration or panics on error
// Use this in main() where we want to fail fast
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	return cfg
}
