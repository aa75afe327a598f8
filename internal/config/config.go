// config - источник загрузки конфигурации qa-service.
//
// Источники (по убыванию приоритета):
//  1. явный путь --config;
//  2. CONFIG_PATH;
//  3. ./local.yaml;
//  4. только ENV (cleanenv).
//
// После файла всегда накладываются переменные окружения.
package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"

	apierrors "github.com/pribylovaa/go-qa-service/internal/errors"
	"github.com/pribylovaa/go-qa-service/internal/hasher"
	"github.com/pribylovaa/go-qa-service/internal/token"
)

type Config struct {
	Env      string        `yaml:"env" env:"ENV" env-default:"local"`
	HTTP     HTTPConfig    `yaml:"http"`
	Auth     AuthConfig    `yaml:"auth"`
	DB       DBConfig      `yaml:"db"`
	Redis    RedisConfig   `yaml:"redis"`
	CORS     CORSConfig    `yaml:"cors"`
	Timeouts TimeoutConfig `yaml:"timeouts"`
}

// TimeoutConfig — таймауты сервиса.
type TimeoutConfig struct {
	Service  time.Duration `yaml:"service" env:"SERVICE_TIMEOUT" env-default:"15s"`
	Shutdown time.Duration `yaml:"shutdown" env:"SHUTDOWN_TIMEOUT" env-default:"10s"`
}

// HTTPConfig — публичный REST-сервер.
type HTTPConfig struct {
	Host string `yaml:"host" env:"HTTP_HOST" env-default:"0.0.0.0"`
	Port string `yaml:"port" env:"HTTP_PORT" env-default:"3030"`
}

func (h HTTPConfig) Addr() string { return net.JoinHostPort(h.Host, h.Port) }

// AuthConfig — секрет токенов и параметры Argon2id.
type AuthConfig struct {
	TokenKey string       `yaml:"token_key" env:"TOKEN_KEY" env-required:"true"`
	Argon2   Argon2Config `yaml:"argon2"`
}

// Argon2Config — параметры хэширования паролей.
type Argon2Config struct {
	Memory  uint32 `yaml:"memory_kib" env:"ARGON2_MEMORY_KIB" env-default:"65536"`
	Time    uint32 `yaml:"time" env:"ARGON2_TIME" env-default:"1"`
	Threads uint8  `yaml:"threads" env:"ARGON2_THREADS" env-default:"4"`
}

// Params переводит конфиг в hasher.Params.
func (a Argon2Config) Params() hasher.Params {
	return hasher.Params{Memory: a.Memory, Time: a.Time, Threads: a.Threads}
}

// DBConfig — настройки подключения к базе данных.
type DBConfig struct {
	DatabaseURL string `yaml:"db_url" env:"DATABASE_URL" env-required:"true"`
	// SkipMigrate отключает применение миграций на старте.
	SkipMigrate bool   `yaml:"skip_migrate" env:"DB_SKIP_MIGRATE"`
}

// RedisConfig — кэш списков вопросов. Пустой URL отключает кэш.
type RedisConfig struct {
	RedisURL string        `yaml:"redis_url" env:"REDIS_URL"`
	TTL      time.Duration `yaml:"ttl" env:"REDIS_TTL" env-default:"30s"`
}

// CORSConfig — разрешённые источники; "*" — любой.
type CORSConfig struct {
	AllowedOrigins []string `yaml:"allowed_origins" env:"CORS_ALLOWED_ORIGINS" env-default:"*"`
}

// ErrInvalidConfig — конфигурация прочитана, но не проходит проверку.
var ErrInvalidConfig = errors.New("invalid config")

// MustLoad — паника при ошибке загрузки.
func MustLoad(path string) *Config {
	cfg, err := Load(path)

	if err != nil {
		panic(err)
	}

	return cfg
}

// Load читает конфигурацию и проверяет её. Любая ошибка имеет категорию
// KindConfiguration и фатальна для старта процесса.
func Load(path string) (*Config, error) {
	const op = "config.Load"

	cfg, err := read(path)
	if err != nil {
		return nil, apierrors.E(apierrors.KindConfiguration, op, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, apierrors.E(apierrors.KindConfiguration, op, err)
	}

	return cfg, nil
}

// Validate проверяет значения, которые cleanenv проверить не может.
func (c *Config) Validate() error {
	if len(c.Auth.TokenKey) < token.MinKeyLen {
		return fmt.Errorf("%w: auth.token_key must be at least %d bytes", ErrInvalidConfig, token.MinKeyLen)
	}

	if c.Auth.Argon2.Memory < 8*uint32(c.Auth.Argon2.Threads) {
		return fmt.Errorf("%w: auth.argon2.memory_kib must be >= 8*threads", ErrInvalidConfig)
	}

	if c.Auth.Argon2.Time == 0 || c.Auth.Argon2.Threads == 0 {
		return fmt.Errorf("%w: auth.argon2 time and threads must be positive", ErrInvalidConfig)
	}

	if c.Timeouts.Service < 0 {
		return fmt.Errorf("%w: timeouts.service must not be negative", ErrInvalidConfig)
	}

	return nil
}

func read(path string) (*Config, error) {
	var cfg Config

	tryRead := func(p string) (*Config, error) {
		if p == "" {
			return nil, fmt.Errorf("empty config path")
		}

		if _, err := os.Stat(p); err != nil {
			return nil, fmt.Errorf("config file %q stat failed: %w", p, err)
		}

		if err := cleanenv.ReadConfig(p, &cfg); err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}

		return &cfg, nil
	}

	// 1) --config
	if path != "" {
		return tryRead(path)
	}

	// 2) CONFIG_PATH
	if envPath := os.Getenv("CONFIG_PATH"); envPath != "" {
		return tryRead(envPath)
	}

	// 3) ./local.yaml
	if _, err := os.Stat("local.yaml"); err == nil {
		return tryRead("local.yaml")
	}

	// 4) только ENV
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("config not found: provide --config, CONFIG_PATH, local.yaml or env vars: %w", err)
	}

	return &cfg, nil
}
