package config

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

const (
	DriverPostgres = "postgres"
	DriverMemory   = "memory"

	minJWTSecretLen = 32
)

type Config struct {
	Environment   string `env:"ENV" env-default:"development"`
	LogLevel      string `env:"LOG_LEVEL" env-default:"info"`
	TelegramToken string `env:"TELEGRAM_TOKEN"`
	BotTimezone   string `env:"BOT_TIMEZONE" env-default:"Europe/Moscow"`

	Database DatabaseConfig
	HTTP     HTTPConfig
	Auth     AuthConfig

	LockAuditInterval time.Duration `env:"LOCK_AUDIT_INTERVAL" env-default:"10m"`
}

type DatabaseConfig struct {
	Driver   string `env:"STORAGE_DRIVER" env-default:"postgres"`
	DSN      string `env:"DB_DSN"`
	MaxConns int32  `env:"DB_MAX_CONNS" env-default:"10"`
	MinConns int32  `env:"DB_MIN_CONNS" env-default:"1"`
}

type HTTPConfig struct {
	Addr            string        `env:"HTTP_ADDR" env-default:":10000"`
	ShutdownTimeout time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT" env-default:"10s"`
}

type AuthConfig struct {
	JWTSecret string        `env:"JWT_SECRET"`
	JWTIssuer string        `env:"JWT_ISSUER" env-default:"slot-swapper"`
	TokenTTL  time.Duration `env:"JWT_TOKEN_TTL" env-default:"24h"`
}

func Load() (*Config, error) {
	// Пытаемся загрузить .env файл (игнорируем ошибку, если файла нет)
	if err := godotenv.Load(".env"); err != nil {
		log.Println("⚠️  No .env file found, using environment variables")
	} else {
		log.Println("✅ Loaded configuration from .env file")
	}

	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("read env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate проверяет общие для всех бинарников настройки
func (c *Config) Validate() error {
	var errs []error

	switch c.Database.Driver {
	case DriverPostgres:
		if c.Database.DSN == "" {
			errs = append(errs, errors.New("DB_DSN is required for the postgres driver"))
		}
	case DriverMemory:
	default:
		errs = append(errs, fmt.Errorf("STORAGE_DRIVER must be %q or %q, got %q", DriverPostgres, DriverMemory, c.Database.Driver))
	}

	if c.Database.MinConns < 0 || c.Database.MaxConns < 1 || c.Database.MinConns > c.Database.MaxConns {
		errs = append(errs, fmt.Errorf("invalid pool size: min=%d max=%d", c.Database.MinConns, c.Database.MaxConns))
	}

	if c.LockAuditInterval <= 0 {
		errs = append(errs, errors.New("LOCK_AUDIT_INTERVAL must be positive"))
	}

	return errors.Join(errs...)
}

// ValidateAPI проверяет настройки HTTP API
func (c *Config) ValidateAPI() error {
	if len(c.Auth.JWTSecret) < minJWTSecretLen {
		return fmt.Errorf("JWT_SECRET must be at least %d characters", minJWTSecretLen)
	}
	if c.HTTP.Addr == "" {
		return errors.New("HTTP_ADDR is required")
	}
	return nil
}

// ValidateBot проверяет настройки Telegram бота
func (c *Config) ValidateBot() error {
	if c.TelegramToken == "" {
		return errors.New("TELEGRAM_TOKEN is required but not set")
	}
	if _, err := time.LoadLocation(c.BotTimezone); err != nil {
		return fmt.Errorf("BOT_TIMEZONE: %w", err)
	}
	return nil
}

// BotLocation возвращает часовой пояс, в котором бот читает и показывает время
func (c *Config) BotLocation() *time.Location {
	loc, err := time.LoadLocation(c.BotTimezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
