package middleware

import (
	"context"
	"net/http"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/resumeforge/resume-api/internal/api/metrics"
)

// Limiter decides whether one more request for key is allowed. Window is the
// period after which a rejected client may retry.
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
	Window() time.Duration
}

// DefaultLimiterIdle is the shortest time a MemoryLimiter keeps an unused
// client bucket.
const DefaultLimiterIdle = 10 * time.Minute

// MemoryLimiter is a per-key token bucket held in process memory. Buckets
// unused for longer than the idle period are dropped by Sweep; by then they
// have refilled, so dropping one does not change what the client is allowed.
type MemoryLimiter struct {
	rps      rate.Limit
	burst    int
	idle     time.Duration
	now      func() time.Time
	limiters sync.Map // map[string]*bucket

	runMu  sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

type bucket struct {
	limiter  *rate.Limiter
	lastSeen atomic.Int64 // unix nanos
}

// NewMemoryLimiter allows rps events per second per key with the given burst.
func NewMemoryLimiter(rps float64, burst int) *MemoryLimiter {
	if burst < 1 {
		burst = 1
	}
	idle := DefaultLimiterIdle
	if rps > 0 {
		if refill := time.Duration(float64(burst) / rps * float64(time.Second)); refill > idle {
			idle = refill
		}
	}
	return &MemoryLimiter{rps: rate.Limit(rps), burst: burst, idle: idle, now: time.Now}
}

func (m *MemoryLimiter) Allow(_ context.Context, key string) (bool, error) {
	v, ok := m.limiters.Load(key)
	if !ok {
		v, _ = m.limiters.LoadOrStore(key, &bucket{limiter: rate.NewLimiter(m.rps, m.burst)})
	}
	b := v.(*bucket)
	now := m.now()
	b.lastSeen.Store(now.UnixNano())
	return b.limiter.AllowN(now, 1), nil
}

func (m *MemoryLimiter) Window() time.Duration {
	return time.Second
}

// Len returns the number of tracked clients.
func (m *MemoryLimiter) Len() int {
	n := 0
	m.limiters.Range(func(_, _ any) bool {
		n++
		return true
	})
	return n
}

// Sweep drops buckets idle for at least the idle period and returns how many
// were removed.
func (m *MemoryLimiter) Sweep() int {
	cutoff := m.now().Add(-m.idle).UnixNano()
	removed := 0
	m.limiters.Range(func(k, v any) bool {
		if v.(*bucket).lastSeen.Load() <= cutoff && m.limiters.CompareAndDelete(k, v) {
			removed++
		}
		return true
	})
	return removed
}

// Start sweeps every interval until ctx is cancelled or Stop is called.
// Calling Start on a running limiter is a no-op.
func (m *MemoryLimiter) Start(ctx context.Context, interval time.Duration, log zerolog.Logger) {
	m.runMu.Lock()
	defer m.runMu.Unlock()
	if m.cancel != nil {
		return
	}
	if interval <= 0 {
		interval = time.Minute
	}

	ctx, cancel := context.WithCancel(ctx)
	m.cancel = cancel
	m.done = make(chan struct{})

	go func(done chan struct{}) {
		defer close(done)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if n := m.Sweep(); n > 0 {
					log.Debug().Int("removed", n).Int("remaining", m.Len()).Msg("rate limiter sweep")
				}
			}
		}
	}(m.done)
}

// Stop cancels the sweep and waits for it to exit.
func (m *MemoryLimiter) Stop() {
	m.runMu.Lock()
	cancel, done := m.cancel, m.done
	m.cancel, m.done = nil, nil
	m.runMu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
}

// RateLimit rejects requests over the limiter's budget with 429 and a
// Retry-After header. Requests are keyed by client IP. When the limiter
// itself fails the request is let through and the failure logged.
func RateLimit(l Limiter, backend string, log zerolog.Logger) echo.MiddlewareFunc {
	retryAfter := strconv.Itoa(int(l.Window().Round(time.Second) / time.Second))
	if retryAfter == "0" {
		retryAfter = "1"
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ip := c.RealIP()
			if ip == "" {
				ip = "unknown"
			}

			ok, err := l.Allow(c.Request().Context(), "ip:"+ip)
			if err != nil {
				log.Warn().Err(err).Str("limiter", backend).Msg("rate limit check failed")
				return next(c)
			}
			if !ok {
				metrics.RateLimitRejected.WithLabelValues(backend).Inc()
				c.Response().Header().Set("Retry-After", retryAfter)
				return echo.NewHTTPError(http.StatusTooManyRequests, "too many requests, please try again later")
			}
			metrics.RateLimitAllowed.WithLabelValues(backend).Inc()
			return next(c)
		}
	}
}
