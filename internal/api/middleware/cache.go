package middleware

import (
	"bufio"
	"bytes"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/resumeforge/resume-api/internal/api/metrics"
	"github.com/resumeforge/resume-api/internal/infrastructure/cache"
)

const (
	HeaderXCache = "X-Cache"
	keySeparator = "|"
)

// KeyFunc derives the cache key of a request.
type KeyFunc func(c echo.Context) string

// URLKey keys by the full request URL including the query string.
func URLKey(c echo.Context) string {
	if uri := c.Request().RequestURI; uri != "" {
		return uri
	}
	return c.Request().URL.RequestURI()
}

// UserScopedKey prefixes URLKey with the authenticated caller so owner-scoped
// bodies are never served across users. Must run after Auth.
func UserScopedKey(c echo.Context) string {
	return UserID(c) + keySeparator + URLKey(c)
}

// Cache serves GET responses from store while they are younger than ttl and
// stores fresh 200 responses on a miss. A ttl <= 0 uses the store default.
// Non-GET requests pass straight through.
func Cache(store *cache.Cache, ttl time.Duration, key KeyFunc) echo.MiddlewareFunc {
	if key == nil {
		key = URLKey
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if c.Request().Method != http.MethodGet {
				return next(c)
			}

			k := key(c)
			if entry, ok := store.Get(k); ok {
				metrics.CacheLookupsTotal.WithLabelValues("hit").Inc()
				c.Response().Header().Set(HeaderXCache, "HIT")
				return c.Blob(http.StatusOK, entry.ContentType, entry.Body)
			}
			metrics.CacheLookupsTotal.WithLabelValues("miss").Inc()

			res := c.Response()
			res.Header().Set(HeaderXCache, "MISS")
			capture := &bodyCapture{ResponseWriter: res.Writer}
			res.Writer = capture
			defer func() { res.Writer = capture.ResponseWriter }()

			if err := next(c); err != nil {
				return err
			}
			if res.Status == http.StatusOK && capture.buf.Len() > 0 {
				store.Set(k, capture.buf.Bytes(), res.Header().Get(echo.HeaderContentType), ttl)
				metrics.CacheEntries.Set(float64(store.Len()))
			}
			return nil
		}
	}
}

// InvalidateCache clears the caller's cached entries under prefix after a
// successful mutation. GET requests and failed writes leave the cache alone.
func InvalidateCache(store *cache.Cache, prefix string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			err := next(c)
			if c.Request().Method == http.MethodGet || err != nil || c.Response().Status >= http.StatusBadRequest {
				return err
			}
			if n := store.ClearMatching(UserID(c) + keySeparator + prefix); n > 0 {
				metrics.CacheEvictionsTotal.WithLabelValues("write").Add(float64(n))
				metrics.CacheEntries.Set(float64(store.Len()))
			}
			return nil
		}
	}
}

// bodyCapture tees everything written to the client into buf.
type bodyCapture struct {
	http.ResponseWriter
	buf bytes.Buffer
}

func (w *bodyCapture) Write(b []byte) (int, error) {
	w.buf.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w *bodyCapture) Flush() {
	if f, ok := w.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

func (w *bodyCapture) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	if h, ok := w.ResponseWriter.(http.Hijacker); ok {
		return h.Hijack()
	}
	return nil, nil, errors.New("response writer does not support hijacking")
}
