package config

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port      string        `env:"PORT,      default=5000"`
	Env       string        `env:"ENV,       default=development"`
	LogLevel  string        `env:"LOG_LEVEL, default=info"`
	JWTSecret string        `env:"JWT_SECRET"`
	JWTTTL    time.Duration `env:"JWT_TTL,   default=168h"`

	CORSOrigins    []string `env:"CORS_ORIGINS, default=*"`
	GoogleClientID string   `env:"GOOGLE_CLIENT_ID"`

	Mongo     MongoConfig
	Redis     RedisConfig
	Cache     CacheConfig
	RateLimit RateLimitConfig
}

type MongoConfig struct {
	URI      string        `env:"MONGO_URI,      default=mongodb://localhost:27017"`
	Database string        `env:"MONGO_DB,       default=resume_builder"`
	Timeout  time.Duration `env:"MONGO_TIMEOUT,  default=10s"`
	Attempts int           `env:"MONGO_ATTEMPTS, default=5"`
}

// RedisConfig is optional: an empty Addr disables Redis.
type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR"`
	DB       int    `env:"REDIS_DB,   default=0"`
	Password string `env:"REDIS_PASSWORD"`
}

type CacheConfig struct {
	DefaultTTL        time.Duration `env:"CACHE_DEFAULT_TTL,         default=60s"`
	ListTTL           time.Duration `env:"CACHE_LIST_TTL,            default=30s"`
	SweepInterval     time.Duration `env:"CACHE_SWEEP_INTERVAL,      default=5m"`
	InvalidateOnWrite bool          `env:"CACHE_INVALIDATE_ON_WRITE, default=true"`
}

type RateLimitConfig struct {
	Enabled bool          `env:"RATE_LIMIT_ENABLED, default=true"`
	RPS     float64       `env:"RATE_LIMIT_RPS,     default=1"`
	Burst   int           `env:"RATE_LIMIT_BURST,   default=10"`
	Window  time.Duration `env:"RATE_LIMIT_WINDOW,  default=60s"`
}

// IsProduction reports whether ENV is "production".
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Load reads a .env file when present, then environment variables.
func Load(ctx context.Context) (*Config, error) {
	_ = godotenv.Load()
	return load(ctx, envconfig.OsLookuper())
}

// MustLoad is Load that panics on error.
func MustLoad(ctx context.Context) *Config {
	cfg, err := Load(ctx)
	if err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return cfg
}

func load(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: lookuper}); err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.JWTSecret == "" {
		if c.IsProduction() {
			return errors.New("JWT_SECRET is required in production")
		}
		c.JWTSecret = "dev-secret-change-me"
	}
	if c.JWTTTL <= 0 {
		return errors.New("JWT_TTL must be positive")
	}
	if c.Cache.DefaultTTL <= 0 || c.Cache.ListTTL <= 0 || c.Cache.SweepInterval <= 0 {
		return errors.New("cache durations must be positive")
	}
	if c.RateLimit.Enabled && (c.RateLimit.RPS <= 0 || c.RateLimit.Burst < 0) {
		return errors.New("RATE_LIMIT_RPS must be positive and RATE_LIMIT_BURST non-negative")
	}
	return nil
}
