package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Database  DatabaseConfig
	JWT       JWTConfig
	App       AppConfig
	Timesheet TimesheetConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
	MaxConns int
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret            string
	RefreshExpiration string
	AccessExpiration  string
}

// AppConfig holds application configuration
type AppConfig struct {
	Port        int
	Env         string
	LogLevel    string
	FrontendURL string
}

// TimesheetConfig holds the attendance rule thresholds. The defaults mirror
// the product's documented rule table; every value can be overridden per
// deployment because clients disagree on break and overtime policy.
type TimesheetConfig struct {
	LateGraceMinutes      float64
	NoShowMinutes         float64
	EarlyLeaveMinutes     float64
	BreakRequiredHours    float64
	DefaultMaxBreakHours  float64
	StandardWorkdayHours  float64
	OvertimeMediumHours   float64
}

func Load() (*Config, error) {
	// .env is optional in production; environment variables win either way.
	_ = godotenv.Load()

	config := &Config{}

	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}
	dbMaxConns, err := strconv.Atoi(getEnv("DB_MAX_CONNS", "25"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_MAX_CONNS: %w", err)
	}

	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "shifttracker"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
		MaxConns: dbMaxConns,
	}

	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:        appPort,
		Env:         getEnv("APP_ENV", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		FrontendURL: getEnv("FRONTEND_URL", "http://localhost:3000"),
	}

	config.JWT = JWTConfig{
		Secret:            getEnv("JWT_SECRET_KEY", ""),
		RefreshExpiration: getEnv("JWT_REFRESH_EXPIRATION_TIME", "168h"),
		AccessExpiration:  getEnv("JWT_ACCESS_EXPIRATION_TIME", "1h"),
	}

	ts, err := loadTimesheetConfig()
	if err != nil {
		return nil, err
	}
	config.Timesheet = ts

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

func loadTimesheetConfig() (TimesheetConfig, error) {
	ts := TimesheetConfig{}
	fields := []struct {
		dst *float64
		key string
		def string
	}{
		{&ts.LateGraceMinutes, "TIMESHEET_LATE_GRACE_MINUTES", "5"},
		{&ts.NoShowMinutes, "TIMESHEET_NO_SHOW_MINUTES", "30"},
		{&ts.EarlyLeaveMinutes, "TIMESHEET_EARLY_LEAVE_GRACE_MINUTES", "5"},
		{&ts.BreakRequiredHours, "TIMESHEET_BREAK_REQUIRED_HOURS", "6"},
		{&ts.DefaultMaxBreakHours, "TIMESHEET_DEFAULT_MAX_BREAK_HOURS", "1"},
		{&ts.StandardWorkdayHours, "TIMESHEET_STANDARD_WORKDAY_HOURS", "8"},
		{&ts.OvertimeMediumHours, "TIMESHEET_OVERTIME_MEDIUM_HOURS", "2"},
	}
	for _, f := range fields {
		v, err := strconv.ParseFloat(getEnv(f.key, f.def), 64)
		if err != nil {
			return TimesheetConfig{}, fmt.Errorf("invalid %s: %w", f.key, err)
		}
		*f.dst = v
	}
	return ts, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	if c.Timesheet.LateGraceMinutes < 0 || c.Timesheet.NoShowMinutes < 0 {
		return fmt.Errorf("timesheet thresholds must not be negative")
	}
	if c.Timesheet.NoShowMinutes < c.Timesheet.LateGraceMinutes {
		return fmt.Errorf("TIMESHEET_NO_SHOW_MINUTES must be >= TIMESHEET_LATE_GRACE_MINUTES")
	}
	return nil
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
