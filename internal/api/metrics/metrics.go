// Package metrics defines and registers all custom Prometheus metrics for
// the user & address management API. It is the single source of truth for
// metric names, labels, and help strings.
//
// Metrics are registered with the default registry via promauto at package
// load; the /metrics endpoint is served by echoprometheus.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "useraddress"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// LoginsTotal counts login attempts.
// Label:
//   - result: "success" or "failure"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// ── User metrics ──────────────────────────────────────────────────────────────

// UsersCreatedTotal counts newly registered users.
// Label:
//   - role: "USER" or "ADMIN"
var UsersCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "users_created_total",
		Help:      "Total number of users created, by role.",
	},
	[]string{"role"},
)

// UsersDeletedTotal counts deleted users (each delete cascades to the
// user's addresses).
var UsersDeletedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "users_deleted_total",
		Help:      "Total number of users deleted.",
	},
)

// ── Address metrics ───────────────────────────────────────────────────────────

// AddressesCreatedTotal counts newly created addresses.
// Label:
//   - type: "RESIDENTIAL" or "COMMERCIAL"
var AddressesCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "addresses_created_total",
		Help:      "Total number of addresses created, by type.",
	},
	[]string{"type"},
)

// ── Postal lookup metrics ─────────────────────────────────────────────────────

// CepCacheTotal counts postal lookup cache decisions.
// Label:
//   - result: "hit" (served from Redis) or "miss" (forwarded to the provider)
var CepCacheTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cep_cache_total",
		Help:      "Total number of postal lookup cache checks, by result (hit/miss).",
	},
	[]string{"result"},
)

// CepLookupDuration measures end-to-end postal lookup latency as observed by
// the transport layer, including cache hits.
var CepLookupDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "cep_lookup_duration_seconds",
		Help:      "Duration of postal code lookups.",
		Buckets:   prometheus.DefBuckets, // .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10
	},
)
