// Package metrics defines and registers all custom Prometheus metrics for the
// resume API. It is the single source of truth for metric names, labels, and
// help strings.
//
// Collectors are registered with the default Prometheus registry on import
// through promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "resume"

// ── Response cache ───────────────────────────────────────────────────────────

// CacheLookupsTotal counts response-cache lookups.
// Label:
//   - result: "hit" or "miss"
var CacheLookupsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cache_lookups_total",
		Help:      "Total number of response cache lookups, labelled by result (hit/miss).",
	},
	[]string{"result"},
)

// CacheEvictionsTotal counts entries removed from the response cache.
// Label:
//   - reason: "sweep" (background age sweep) or "write" (invalidated by a mutation)
var CacheEvictionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cache_evictions_total",
		Help:      "Total number of response cache entries evicted, by reason.",
	},
	[]string{"reason"},
)

// CacheEntries tracks the number of entries currently held.
var CacheEntries = promauto.NewGauge(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "cache_entries",
		Help:      "Current number of entries in the response cache.",
	},
)

// ── Rate limiting ────────────────────────────────────────────────────────────

// RateLimitAllowed counts requests let through by the limiter.
// Label:
//   - limiter: "redis" or "memory"
var RateLimitAllowed = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "rate_limit_allowed_total",
		Help:      "Number of allowed requests by limiter type.",
	},
	[]string{"limiter"},
)

// RateLimitRejected counts requests answered with 429.
var RateLimitRejected = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "rate_limit_rejected_total",
		Help:      "Number of rejected requests by limiter type.",
	},
	[]string{"limiter"},
)

// ── Records ──────────────────────────────────────────────────────────────────

// RecordsCreatedTotal counts records created through the API.
// Label:
//   - kind: "resume", "project", "course", "skill", "achievement"
var RecordsCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "records_created_total",
		Help:      "Total number of records created, by kind.",
	},
	[]string{"kind"},
)

// RecordsDeletedTotal counts records deleted through the API.
var RecordsDeletedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "records_deleted_total",
		Help:      "Total number of records deleted, by kind.",
	},
	[]string{"kind"},
)

// AuthEventsTotal counts authentication outcomes.
// Labels:
//   - method: "register", "login", "google"
//   - result: "ok" or "error"
var AuthEventsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_events_total",
		Help:      "Total number of authentication attempts, by method and result.",
	},
	[]string{"method", "result"},
)
