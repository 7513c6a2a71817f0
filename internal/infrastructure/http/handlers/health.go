package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// HealthHandler is the liveness probe for GET /health.
// Returns 200 immediately; confirms the process is alive.
type HealthHandler struct{}

func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

func (h *HealthHandler) Liveness(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status": "ok",
	})
}

// Check probes one dependency and returns nil when it is usable.
type Check func(ctx context.Context) error

// MongoCheck runs the ping command against db.
func MongoCheck(db *mongo.Database) Check {
	return func(ctx context.Context) error {
		return db.RunCommand(ctx, bson.D{{Key: "ping", Value: 1}}).Err()
	}
}

// RedisCheck pings rdb. A nil client is reported as disabled by Readiness.
func RedisCheck(rdb *redis.Client) Check {
	if rdb == nil {
		return nil
	}
	return func(ctx context.Context) error {
		return rdb.Ping(ctx).Err()
	}
}

// ReadinessHandler is the readiness probe for GET /health/ready.
// Every configured dependency must answer before the service is ready.
type ReadinessHandler struct {
	checks    map[string]Check
	cacheSize func() int
	timeout   time.Duration
}

// NewReadinessHandler builds the probe. A nil Check marks the dependency as
// disabled; cacheSize may be nil.
func NewReadinessHandler(checks map[string]Check, cacheSize func() int) *ReadinessHandler {
	return &ReadinessHandler{checks: checks, cacheSize: cacheSize, timeout: 3 * time.Second}
}

type dependencyStatus struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

type readinessResponse struct {
	Status       string                      `json:"status"`
	Dependencies map[string]dependencyStatus `json:"dependencies"`
	CacheEntries *int                        `json:"cacheEntries,omitempty"`
}

func (h *ReadinessHandler) Readiness(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	deps := make(map[string]dependencyStatus, len(h.checks))
	healthy := true

	for name, check := range h.checks {
		if check == nil {
			deps[name] = dependencyStatus{Status: "disabled"}
			continue
		}
		if err := check(ctx); err != nil {
			deps[name] = dependencyStatus{Status: "unhealthy", Error: err.Error()}
			healthy = false
			continue
		}
		deps[name] = dependencyStatus{Status: "ok"}
	}

	status := "ok"
	httpStatus := http.StatusOK
	if !healthy {
		status = "degraded"
		httpStatus = http.StatusServiceUnavailable
	}

	resp := readinessResponse{Status: status, Dependencies: deps}
	if h.cacheSize != nil {
		n := h.cacheSize()
		resp.CacheEntries = &n
	}
	return c.JSON(httpStatus, resp)
}
