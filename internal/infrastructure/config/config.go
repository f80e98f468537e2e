package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// Backend names accepted by STORE_BACKEND.
const (
	BackendMemory = "memory"
	BackendRedis  = "redis"
	BackendMongo  = "mongo"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	// PasswordHashing is "plain" or "bcrypt".
	PasswordHashing string `env:"PASSWORD_HASHING, default=plain"`

	Store StoreConfig
	Mongo MongoConfig
	Redis RedisConfig
	TryOn TryOnConfig
}

type StoreConfig struct {
	// Backend defaults to memory, which keeps users, orders, the saved photo
	// and the session only for the life of the process. Use redis or mongo
	// for a session that is restored after a restart.
	Backend      string `env:"STORE_BACKEND,       default=memory"`
	KeyPrefix    string `env:"STORE_KEY_PREFIX,    default=vyom_"`
	ResetCorrupt bool   `env:"STORE_RESET_CORRUPT, default=false"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=vyom_store"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR,     default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,       default=0"`
}

type TryOnConfig struct {
	Endpoint string        `env:"TRYON_ENDPOINT, default=https://generativelanguage.googleapis.com"`
	Model    string        `env:"TRYON_MODEL,    default=gemini-2.5-flash-image"`
	APIKey   string        `env:"TRYON_API_KEY"`
	Timeout  time.Duration `env:"TRYON_TIMEOUT,  default=60s"`
}

// Durable reports whether records outlive the process.
func (s StoreConfig) Durable() bool {
	return s.Backend != BackendMemory
}

// IsDevelopment reports whether human-friendly logging should be used.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development" || c.Env == "dev" || c.Env == "local"
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	return load(ctx, envconfig.OsLookuper())
}

func load(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: lookuper,
	}); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.Store.Backend {
	case BackendMemory, BackendRedis, BackendMongo:
	default:
		return fmt.Errorf("load config: unknown STORE_BACKEND %q", c.Store.Backend)
	}
	switch c.PasswordHashing {
	case "", "plain", "bcrypt":
	default:
		return fmt.Errorf("load config: unknown PASSWORD_HASHING %q", c.PasswordHashing)
	}
	if c.TryOn.Timeout <= 0 {
		return fmt.Errorf("load config: TRYON_TIMEOUT must be positive")
	}
	return nil
}
