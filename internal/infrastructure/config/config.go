package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port      string `env:"PORT,       default=8080"`
	Env       string `env:"ENV,        default=development"`
	LogLevel  string `env:"LOG_LEVEL,  default=info"`
	JWTSecret string `env:"JWT_SECRET, required"`

	// TokenTTL is the session window for issued access tokens.
	TokenTTL   time.Duration `env:"TOKEN_TTL,   default=15m"`
	BcryptCost int           `env:"BCRYPT_COST, default=10"`

	MySQL MySQLConfig
}

type MySQLConfig struct {
	DSN string `env:"MYSQL_DSN, default=identity:identity@tcp(localhost:3306)/identity?parseTime=true"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}
