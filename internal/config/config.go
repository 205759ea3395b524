package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/spf13/viper"

	"github.com/carex-health/carex-api/internal/store"
)

type ServerConfig struct {
	Port         int           `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

type StoreConfig struct {
	// Driver selects the document store backend: mongo, postgres or memory.
	Driver      string            `mapstructure:"driver"`
	URI         string            `mapstructure:"uri"`
	Database    string            `mapstructure:"database"`
	PostgresDSN string            `mapstructure:"postgres_dsn"`
	Collections store.Collections `mapstructure:"collections"`
}

type SessionConfig struct {
	// Driver selects the unlock-marker store: memory or redis.
	Driver          string        `mapstructure:"driver"`
	RedisURL        string        `mapstructure:"redis_url"`
	CleanupInterval time.Duration `mapstructure:"cleanup_interval"`
}

type GateConfig struct {
	Passkey     string        `mapstructure:"passkey"`
	PasskeyHash string        `mapstructure:"passkey_hash"`
	TokenSecret string        `mapstructure:"token_secret"`
	TokenExpiry time.Duration `mapstructure:"token_expiry"`
}

type SMTPConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	From     string `mapstructure:"from"`
}

type RateLimitConfig struct {
	RequestsPerSecond float64 `mapstructure:"requests_per_second"`
	Burst             int     `mapstructure:"burst"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Pretty bool   `mapstructure:"pretty"`
}

type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Log       LogConfig       `mapstructure:"log"`
	Store     StoreConfig     `mapstructure:"store"`
	Session   SessionConfig   `mapstructure:"session"`
	Gate      GateConfig      `mapstructure:"gate"`
	SMTP      SMTPConfig      `mapstructure:"smtp"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
	CORS      CORSConfig      `mapstructure:"cors"`
}

// LoadConfig reads config.yaml and then applies CAREX_* environment
// overrides, e.g. CAREX_GATE_PASSKEY or CAREX_STORE_URI.
func LoadConfig() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := envconfig.Process("carex", &cfg); err != nil {
		return nil, fmt.Errorf("failed to apply environment overrides: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults() {
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.read_timeout", 10*time.Second)
	viper.SetDefault("server.write_timeout", 10*time.Second)
	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.pretty", true)
	viper.SetDefault("store.driver", "mongo")
	viper.SetDefault("store.uri", "mongodb://localhost:27017")
	viper.SetDefault("store.database", "carex")
	viper.SetDefault("store.collections.users", "users")
	viper.SetDefault("store.collections.patients", "patients")
	viper.SetDefault("store.collections.appointments", "appointments")
	viper.SetDefault("session.driver", "memory")
	viper.SetDefault("session.cleanup_interval", 5*time.Minute)
	viper.SetDefault("gate.token_expiry", 12*time.Hour)
	viper.SetDefault("rate_limit.requests_per_second", 50)
	viper.SetDefault("rate_limit.burst", 100)
}

func (c *Config) validate() error {
	if c.Gate.Passkey == "" && c.Gate.PasskeyHash == "" {
		return fmt.Errorf("gate passkey or passkey hash must be configured")
	}
	if c.Gate.TokenSecret == "" {
		return fmt.Errorf("gate token secret must be configured")
	}
	switch c.Store.Driver {
	case "mongo", "postgres", "memory":
	default:
		return fmt.Errorf("unknown store driver %q", c.Store.Driver)
	}
	switch c.Session.Driver {
	case "memory", "redis":
	default:
		return fmt.Errorf("unknown session driver %q", c.Session.Driver)
	}
	return nil
}
