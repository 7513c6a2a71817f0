package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	mr "github.com/alicebob/miniredis/v2"
	"github.com/labstack/echo/v4"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/resumeforge/resume-api/internal/infrastructure/db/redis"
)

type failingLimiter struct{}

func (failingLimiter) Allow(context.Context, string) (bool, error) {
	return false, errors.New("redis down")
}

func (failingLimiter) Window() time.Duration { return time.Second }

func newLimitedEcho(l Limiter, backend string) *echo.Echo {
	e := echo.New()
	e.POST("/api/auth/login", func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	}, RateLimit(l, backend, zerolog.Nop()))
	return e
}

func postFrom(e *echo.Echo, ip string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", nil)
	req.RemoteAddr = ip + ":1234"
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestRateLimit_Memory(t *testing.T) {
	e := newLimitedEcho(NewMemoryLimiter(0.001, 2), "memory")

	require.Equal(t, http.StatusOK, postFrom(e, "10.0.0.1").Code)
	require.Equal(t, http.StatusOK, postFrom(e, "10.0.0.1").Code)

	rec := postFrom(e, "10.0.0.1")
	require.Equal(t, http.StatusTooManyRequests, rec.Code)
	require.Equal(t, "1", rec.Header().Get("Retry-After"))

	require.Equal(t, http.StatusOK, postFrom(e, "10.0.0.2").Code, "other clients keep their own bucket")
}

func TestRateLimit_Redis(t *testing.T) {
	m, err := mr.Run()
	require.NoError(t, err)
	defer m.Close()
	client := goredis.NewClient(&goredis.Options{Addr: m.Addr()})
	defer client.Close()

	e := newLimitedEcho(redis.NewFixedWindowLimiter(client, 1, time.Minute), "redis")

	require.Equal(t, http.StatusOK, postFrom(e, "10.0.0.1").Code)

	// Three requests cross at most one window boundary, so one must be rejected.
	var rejected *httptest.ResponseRecorder
	for i := 0; i < 2 && rejected == nil; i++ {
		if rec := postFrom(e, "10.0.0.1"); rec.Code == http.StatusTooManyRequests {
			rejected = rec
		}
	}
	require.NotNil(t, rejected)
	require.Equal(t, "60", rejected.Header().Get("Retry-After"))
}

func TestRateLimit_FailsOpen(t *testing.T) {
	e := newLimitedEcho(failingLimiter{}, "redis")
	require.Equal(t, http.StatusOK, postFrom(e, "10.0.0.1").Code)
}

func TestMemoryLimiter_SweepDropsIdleBuckets(t *testing.T) {
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	l := NewMemoryLimiter(1, 2)
	l.now = func() time.Time { return now }
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		ok, _ := l.Allow(ctx, "ip:a")
		require.True(t, ok)
	}
	ok, _ := l.Allow(ctx, "ip:a")
	require.False(t, ok, "burst of 2 is spent")
	_, _ = l.Allow(ctx, "ip:b")
	require.Equal(t, 2, l.Len())

	now = now.Add(5 * time.Minute)
	_, _ = l.Allow(ctx, "ip:b")
	now = now.Add(DefaultLimiterIdle - time.Minute)

	require.Equal(t, 1, l.Sweep(), "only the bucket idle past the limit goes")
	require.Equal(t, 1, l.Len())
	require.Equal(t, 0, l.Sweep())

	ok, _ = l.Allow(ctx, "ip:a")
	require.True(t, ok)
}

func TestMemoryLimiter_IdleCoversRefill(t *testing.T) {
	require.Equal(t, DefaultLimiterIdle, NewMemoryLimiter(1, 10).idle)
	require.Equal(t, 2000*time.Second, NewMemoryLimiter(0.001, 2).idle.Round(time.Second))
	require.Equal(t, DefaultLimiterIdle, NewMemoryLimiter(0, 2).idle)
}

func TestMemoryLimiter_StartStop(t *testing.T) {
	start := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	l := NewMemoryLimiter(1, 2)
	l.now = func() time.Time { return start }
	_, _ = l.Allow(context.Background(), "ip:a")

	l.now = func() time.Time { return start.Add(time.Hour) }
	l.Start(context.Background(), 5*time.Millisecond, zerolog.Nop())
	require.Eventually(t, func() bool { return l.Len() == 0 }, time.Second, 5*time.Millisecond)

	l.Stop()
	l.Stop()
}
