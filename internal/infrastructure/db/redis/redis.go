package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const defaultTimeout = 5 * time.Second

// Config captures the settings for establishing a Redis connection. An empty
// Addr means Redis is not used.
type Config struct {
	Addr     string
	Password string
	DB       int
	Timeout  time.Duration
}

func (c Config) Enabled() bool {
	return c.Addr != ""
}

// Connect initialises a Redis client and validates connectivity with a ping.
// It returns a nil client and no error when cfg is not enabled.
func Connect(ctx context.Context, cfg Config, log zerolog.Logger) (*redis.Client, error) {
	if !cfg.Enabled() {
		log.Info().Msg("redis disabled, using in-memory rate limiting")
		return nil, nil
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := Ping(ctx, client, timeout); err != nil {
		_ = client.Close()
		return nil, err
	}

	log.Info().Str("addr", cfg.Addr).Int("db", cfg.DB).Msg("redis connected")
	return client, nil
}

// Ping checks connectivity within timeout.
func Ping(ctx context.Context, client *redis.Client, timeout time.Duration) error {
	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		return fmt.Errorf("redis ping: %w", err)
	}
	return nil
}
