package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go-hrm/internal/shared/connection"
)

const (
	PayrollModeBestEffort    = "best_effort"
	PayrollModeTransactional = "transactional"
)

type Config struct {
	App      AppConfig
	HTTP     HTTPConfig
	Database connection.PostgresConfig
	Redis    RedisConfig
	Kafka    KafkaConfig
	JWT      JWTConfig
	RBAC     RBACConfig
	Payroll  PayrollConfig
	Payslip  PayslipConfig
}

type AppConfig struct {
	Env         string
	Location    *time.Location
	AutoMigrate bool
	MaxRetries  int
}

type HTTPConfig struct {
	Port           string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	IdleTimeout    time.Duration
	RateLimitRPS   float64
	RateLimitBurst int
}

type RedisConfig struct {
	Addr string
}

type KafkaConfig struct {
	Broker             string
	OutboxPollInterval time.Duration
	ConsumerGroup      string
}

type JWTConfig struct {
	Secret string
}

type RBACConfig struct {
	ModelPath string
}

type PayrollConfig struct {
	// ProcessMode is best_effort (entries commit one by one) or transactional.
	ProcessMode string
}

type PayslipConfig struct {
	StorageDir string
}

// Load reads .env (when present) and the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	var err error

	cfg.App.Env = getEnv("APP_ENV", "development")
	cfg.App.Location, err = time.LoadLocation(getEnv("APP_TIMEZONE", "UTC"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_TIMEZONE: %w", err)
	}
	if cfg.App.AutoMigrate, err = getBool("DB_AUTO_MIGRATE", false); err != nil {
		return nil, err
	}
	if cfg.App.MaxRetries, err = getInt("CONNECT_MAX_RETRIES", 5); err != nil {
		return nil, err
	}

	cfg.HTTP.Port = getEnv("PORT", "3000")
	if cfg.HTTP.ReadTimeout, err = getDuration("HTTP_READ_TIMEOUT", 5*time.Second); err != nil {
		return nil, err
	}
	// Payroll processing runs inside the request, so writes get more room.
	if cfg.HTTP.WriteTimeout, err = getDuration("HTTP_WRITE_TIMEOUT", 60*time.Second); err != nil {
		return nil, err
	}
	if cfg.HTTP.IdleTimeout, err = getDuration("HTTP_IDLE_TIMEOUT", 60*time.Second); err != nil {
		return nil, err
	}
	if cfg.HTTP.RateLimitRPS, err = getFloat("RATE_LIMIT_RPS", 20); err != nil {
		return nil, err
	}
	if cfg.HTTP.RateLimitBurst, err = getInt("RATE_LIMIT_BURST", 40); err != nil {
		return nil, err
	}

	cfg.Database = connection.PostgresConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "go_hrm"),
		Port:     getEnv("DB_PORT", "5432"),
		SSLMode:  getEnv("DB_SSLMODE", "disable"),
	}

	cfg.Redis.Addr = getEnv("REDIS_ADDR", "localhost:6379")

	cfg.Kafka.Broker = getEnv("KAFKA_BROKER", "")
	cfg.Kafka.ConsumerGroup = getEnv("KAFKA_CONSUMER_GROUP", "go-hrm")
	if cfg.Kafka.OutboxPollInterval, err = getDuration("OUTBOX_POLL_INTERVAL", 3*time.Second); err != nil {
		return nil, err
	}

	cfg.JWT.Secret = getEnv("JWT_SECRET", "")
	cfg.RBAC.ModelPath = getEnv("RBAC_MODEL_PATH", "internal/rbac/infra/model.conf")
	cfg.Payroll.ProcessMode = getEnv("PAYROLL_PROCESS_MODE", PayrollModeBestEffort)
	cfg.Payslip.StorageDir = getEnv("PAYSLIP_STORAGE_DIR", "storage/payslips")

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	switch c.Payroll.ProcessMode {
	case PayrollModeBestEffort, PayrollModeTransactional:
	default:
		return fmt.Errorf("PAYROLL_PROCESS_MODE must be %q or %q, got %q",
			PayrollModeBestEffort, PayrollModeTransactional, c.Payroll.ProcessMode)
	}
	if c.App.MaxRetries < 1 {
		return fmt.Errorf("CONNECT_MAX_RETRIES must be positive")
	}
	return nil
}

func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.App.Env, "production")
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getInt(key string, fallback int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return v, nil
}

func getFloat(key string, fallback float64) (float64, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return v, nil
}

func getBool(key string, fallback bool) (bool, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("invalid %s: %w", key, err)
	}
	return v, nil
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return v, nil
}
