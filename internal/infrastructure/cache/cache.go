// Package cache holds the process-local response cache used in front of the
// read endpoints. Entries are keyed by an opaque string (the request URL,
// optionally scoped by caller) and expire by age only; there is no size bound.
package cache

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

const (
	DefaultTTL           = 60 * time.Second
	DefaultSweepInterval = 5 * time.Minute
)

// Entry is one stored response body.
type Entry struct {
	Body        []byte
	ContentType string
	StoredAt    time.Time
	TTL         time.Duration
}

// Options configures a Cache. Zero values fall back to the package defaults;
// SweepMaxAge defaults to DefaultTTL.
type Options struct {
	DefaultTTL    time.Duration
	SweepInterval time.Duration
	// SweepMaxAge is the age past which the background sweep evicts an entry,
	// independent of the entry's own TTL.
	SweepMaxAge time.Duration
	Clock       func() time.Time
	Logger      zerolog.Logger
	// OnSweep is called with the number of entries each sweep removed.
	OnSweep func(removed int)
}

type Cache struct {
	mu      sync.RWMutex
	entries map[string]Entry

	defaultTTL    time.Duration
	sweepInterval time.Duration
	sweepMaxAge   time.Duration
	now           func() time.Time
	logger        zerolog.Logger
	onSweep       func(int)

	runMu  sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

func New(opts Options) *Cache {
	c := &Cache{
		entries:       make(map[string]Entry),
		defaultTTL:    opts.DefaultTTL,
		sweepInterval: opts.SweepInterval,
		sweepMaxAge:   opts.SweepMaxAge,
		now:           opts.Clock,
		logger:        opts.Logger,
		onSweep:       opts.OnSweep,
	}
	if c.defaultTTL <= 0 {
		c.defaultTTL = DefaultTTL
	}
	if c.sweepInterval <= 0 {
		c.sweepInterval = DefaultSweepInterval
	}
	if c.sweepMaxAge <= 0 {
		c.sweepMaxAge = c.defaultTTL
	}
	if c.now == nil {
		c.now = time.Now
	}
	return c
}

// DefaultTTL is the TTL applied by Set when none is given.
func (c *Cache) DefaultTTL() time.Duration {
	return c.defaultTTL
}

// Get returns the entry for key while now - StoredAt < TTL. An expired entry
// is removed and reported as a miss.
func (c *Cache) Get(key string) (Entry, bool) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok {
		return Entry{}, false
	}
	if c.now().Sub(e.StoredAt) < e.TTL {
		return e, true
	}

	c.mu.Lock()
	// Only drop the entry we judged stale; a concurrent Set may have replaced it.
	if cur, ok := c.entries[key]; ok && cur.StoredAt.Equal(e.StoredAt) {
		delete(c.entries, key)
	}
	c.mu.Unlock()
	return Entry{}, false
}

// Set stores body under key. A ttl <= 0 uses the default TTL.
func (c *Cache) Set(key string, body []byte, contentType string, ttl time.Duration) {
	if ttl <= 0 {
		ttl = c.defaultTTL
	}
	stored := make([]byte, len(body))
	copy(stored, body)

	c.mu.Lock()
	c.entries[key] = Entry{Body: stored, ContentType: contentType, StoredAt: c.now(), TTL: ttl}
	c.mu.Unlock()
}

// ClearMatching removes every entry whose key contains substr and returns how
// many were removed.
func (c *Cache) ClearMatching(substr string) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	removed := 0
	for k := range c.entries {
		if strings.Contains(k, substr) {
			delete(c.entries, k)
			removed++
		}
	}
	return removed
}

// ClearAll empties the cache and returns how many entries it held.
func (c *Cache) ClearAll() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	n := len(c.entries)
	c.entries = make(map[string]Entry)
	return n
}

func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Sweep evicts every entry older than SweepMaxAge and returns the count.
func (c *Cache) Sweep() int {
	now := c.now()

	c.mu.Lock()
	removed := 0
	for k, e := range c.entries {
		if now.Sub(e.StoredAt) >= c.sweepMaxAge {
			delete(c.entries, k)
			removed++
		}
	}
	c.mu.Unlock()

	if c.onSweep != nil {
		c.onSweep(removed)
	}
	return removed
}

// Start launches the periodic sweep. It runs until ctx is cancelled or Stop is
// called. Calling Start on a running cache is a no-op.
func (c *Cache) Start(ctx context.Context) {
	c.runMu.Lock()
	defer c.runMu.Unlock()
	if c.cancel != nil {
		return
	}

	ctx, cancel := context.WithCancel(ctx)
	c.cancel = cancel
	c.done = make(chan struct{})

	go func(done chan struct{}) {
		defer close(done)
		ticker := time.NewTicker(c.sweepInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if n := c.Sweep(); n > 0 {
					c.logger.Debug().Int("removed", n).Int("remaining", c.Len()).Msg("cache sweep")
				}
			}
		}
	}(c.done)

	c.logger.Info().
		Dur("interval", c.sweepInterval).
		Dur("max_age", c.sweepMaxAge).
		Msg("cache sweep started")
}

// Stop cancels the sweep and waits for it to exit. Entries are kept.
func (c *Cache) Stop() {
	c.runMu.Lock()
	cancel, done := c.cancel, c.done
	c.cancel, c.done = nil, nil
	c.runMu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
}
