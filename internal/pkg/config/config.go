package config

import (
	"context"
	"fmt"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	// APIURL is the backend origin requests are forwarded to / sent against.
	APIURL   string `env:"LABELFORGE_API_URL, default=http://localhost:5000"`
	Port     string `env:"PORT,               default=8080"`
	Env      string `env:"ENV,                default=development"`
	LogLevel string `env:"LOG_LEVEL,          default=info"`

	Redis RedisConfig
}

// RedisConfig configures the optional Redis-backed session store.
// Addr left empty disables it.
type RedisConfig struct {
	Addr      string `env:"REDIS_ADDR"`
	DB        int    `env:"REDIS_DB, default=0"`
	KeyPrefix string `env:"REDIS_KEY_PREFIX, default=labelforge"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
