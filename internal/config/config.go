package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config is the full service configuration, loaded from the environment.
type Config struct {
	Env      string `env:"APP_ENV" envDefault:"development"`
	HTTPAddr string `env:"HTTP_ADDR" envDefault:":8080"`

	Database DatabaseConfig `envPrefix:"DB_"`
	Redis    RedisConfig    `envPrefix:"REDIS_"`
	Token    TokenConfig    `envPrefix:"TOKEN_"`
	TwoFA    TwoFAConfig    `envPrefix:"TWOFA_"`
	OpenAI   OpenAIConfig   `envPrefix:"OPENAI_"`
}

type DatabaseConfig struct {
	URL             string        `env:"URL,required"`
	MaxConns        int32         `env:"MAX_CONNS" envDefault:"10"`
	MinConns        int32         `env:"MIN_CONNS" envDefault:"1"`
	MaxConnLifetime time.Duration `env:"MAX_CONN_LIFETIME" envDefault:"1h"`
}

type RedisConfig struct {
	Addr     string `env:"ADDR" envDefault:"localhost:6379"`
	Password string `env:"PASSWORD"`
	DB       int    `env:"DB" envDefault:"0"`
}

type TokenConfig struct {
	Secret    string        `env:"SECRET,required"`
	Issuer    string        `env:"ISSUER" envDefault:"calmora"`
	AccessTTL time.Duration `env:"ACCESS_TTL" envDefault:"15m"`
}

type TwoFAConfig struct {
	// Issuer appears in authenticator apps next to the account name.
	Issuer string `env:"ISSUER" envDefault:"Calmora"`
	// EncryptionKey is a hex-encoded 32-byte key used to encrypt TOTP
	// secrets at rest.
	EncryptionKey string `env:"ENCRYPTION_KEY,required"`
}

type OpenAIConfig struct {
	APIKey string `env:"API_KEY"`
	Model  string `env:"MODEL" envDefault:"gpt-4o-mini"`
}

// Load parses configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return &cfg, nil
}

// IsDevelopment reports whether the service runs in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Env != "production"
}
