package config

import (
	"context"
	"testing"
	"time"

	"github.com/sethvargo/go-envconfig"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := load(context.Background(), envconfig.MapLookuper(map[string]string{}))
	require.NoError(t, err)

	require.Equal(t, "5000", cfg.Port)
	require.Equal(t, 168*time.Hour, cfg.JWTTTL)
	require.NotEmpty(t, cfg.JWTSecret, "development falls back to a local secret")
	require.Equal(t, "resume_builder", cfg.Mongo.Database)
	require.Empty(t, cfg.Redis.Addr)
	require.Equal(t, 60*time.Second, cfg.Cache.DefaultTTL)
	require.Equal(t, 30*time.Second, cfg.Cache.ListTTL)
	require.Equal(t, 5*time.Minute, cfg.Cache.SweepInterval)
	require.True(t, cfg.Cache.InvalidateOnWrite)
	require.Equal(t, []string{"*"}, cfg.CORSOrigins)
}

func TestLoad_Overrides(t *testing.T) {
	cfg, err := load(context.Background(), envconfig.MapLookuper(map[string]string{
		"PORT":                      "8080",
		"JWT_SECRET":                "s3cret",
		"REDIS_ADDR":                "localhost:6379",
		"CACHE_LIST_TTL":            "45s",
		"CACHE_INVALIDATE_ON_WRITE": "false",
		"CORS_ORIGINS":              "http://localhost:3000,https://app.example.com",
	}))
	require.NoError(t, err)

	require.Equal(t, "8080", cfg.Port)
	require.Equal(t, "s3cret", cfg.JWTSecret)
	require.Equal(t, "localhost:6379", cfg.Redis.Addr)
	require.Equal(t, 45*time.Second, cfg.Cache.ListTTL)
	require.False(t, cfg.Cache.InvalidateOnWrite)
	require.Equal(t, []string{"http://localhost:3000", "https://app.example.com"}, cfg.CORSOrigins)
}

func TestLoad_ProductionRequiresSecret(t *testing.T) {
	_, err := load(context.Background(), envconfig.MapLookuper(map[string]string{
		"ENV": "production",
	}))
	require.Error(t, err)
}

func TestLoad_RejectsBadDuration(t *testing.T) {
	_, err := load(context.Background(), envconfig.MapLookuper(map[string]string{
		"CACHE_DEFAULT_TTL": "0s",
	}))
	require.Error(t, err)
}
