package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Database     DatabaseConfig
	JWT          JWTConfig
	App          AppConfig
	Attendance   AttendanceConfig
	Scheduler    SchedulerConfig
	Slack        SlackConfig
	SSMParameter string
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
	MaxConns int32
	MinConns int32
	// URL overrides the individual fields when set (DATABASE_URL).
	URL string
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret            string
	ServiceExpiration string
}

// AppConfig holds application configuration
type AppConfig struct {
	Port            int
	Env             string
	LogLevel        string
	FrontendURL     string
	DefaultTimezone string
	RunMigrations   bool
}

// AttendanceConfig holds check-in classification settings
type AttendanceConfig struct {
	CheckInRadiusMeters float64
}

// SchedulerConfig controls the in-process daily job runner and which jobs are exposed
type SchedulerConfig struct {
	Enabled     bool
	RunHour     int
	JobsEnabled []string
	JobTimeout  time.Duration
}

type SlackConfig struct {
	BotToken       string
	AlertChannelID string
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		slog.Warn("Failed to load .env file", "error", err)
	}

	config := &Config{}

	// Database configuration
	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}
	maxConns, err := strconv.Atoi(getEnv("DB_MAX_CONNS", "10"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_MAX_CONNS: %w", err)
	}
	minConns, err := strconv.Atoi(getEnv("DB_MIN_CONNS", "1"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_MIN_CONNS: %w", err)
	}

	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "cmlabs-hris"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
		MaxConns: int32(maxConns),
		MinConns: int32(minConns),
		URL:      getEnv("DATABASE_URL", ""),
	}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:            appPort,
		Env:             getEnv("APP_ENV", "development"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		FrontendURL:     getEnv("FRONTEND_URL", "http://localhost:3000"),
		DefaultTimezone: getEnv("DEFAULT_TIMEZONE", "Asia/Jakarta"),
		RunMigrations:   getEnvBool("RUN_MIGRATIONS", false),
	}

	// JWT configuration
	config.JWT = JWTConfig{
		Secret:            getEnv("JWT_SECRET_KEY", ""),
		ServiceExpiration: getEnv("JWT_SERVICE_EXPIRATION_TIME", "8760h"),
	}

	radius, err := strconv.ParseFloat(getEnv("CHECKIN_RADIUS_METERS", "100"), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid CHECKIN_RADIUS_METERS: %w", err)
	}
	config.Attendance = AttendanceConfig{CheckInRadiusMeters: radius}

	runHour, err := strconv.Atoi(getEnv("SCHEDULER_RUN_HOUR", "17"))
	if err != nil {
		return nil, fmt.Errorf("invalid SCHEDULER_RUN_HOUR: %w", err)
	}
	jobTimeout, err := time.ParseDuration(getEnv("JOB_TIMEOUT", "10m"))
	if err != nil {
		return nil, fmt.Errorf("invalid JOB_TIMEOUT: %w", err)
	}
	jobsEnabled := getEnvSlice("JOBS_ENABLED")
	if len(jobsEnabled) == 0 {
		jobsEnabled = []string{"attendance-tagger", "payroll-generator"}
	}
	config.Scheduler = SchedulerConfig{
		Enabled:     getEnvBool("SCHEDULER_ENABLED", false),
		RunHour:     runHour,
		JobsEnabled: jobsEnabled,
		JobTimeout:  jobTimeout,
	}

	config.Slack = SlackConfig{
		BotToken:       getEnv("SLACK_BOT_TOKEN", ""),
		AlertChannelID: getEnv("SLACK_ALERT_CHANNEL", ""),
	}

	// SSM parameter holding the service-role database credentials (lambda only)
	config.SSMParameter = getEnv("DATABASE_SSM_PARAMETER", "")

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Database.URL == "" && c.Database.Password == "" && c.SSMParameter == "" {
		return fmt.Errorf("DB_PASSWORD or DATABASE_URL is required")
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	if c.Attendance.CheckInRadiusMeters <= 0 {
		return fmt.Errorf("CHECKIN_RADIUS_METERS must be positive")
	}
	if c.Scheduler.RunHour < 0 || c.Scheduler.RunHour > 23 {
		return fmt.Errorf("SCHEDULER_RUN_HOUR must be between 0 and 23")
	}
	if _, err := time.LoadLocation(c.App.DefaultTimezone); err != nil {
		return fmt.Errorf("invalid DEFAULT_TIMEZONE: %w", err)
	}
	return nil
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	if c.Database.URL != "" {
		return c.Database.URL
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

// JobEnabled reports whether a job name appears in JOBS_ENABLED
func (c *Config) JobEnabled(name string) bool {
	for _, j := range c.Scheduler.JobsEnabled {
		if j == name {
			return true
		}
	}
	return false
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvSlice(env string) []string {
	value := getEnv(env, "")
	if value == "" {
		return []string{}
	}
	var result []string
	for _, part := range strings.Split(value, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
