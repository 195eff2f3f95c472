// Package observability holds the process-wide Prometheus metrics.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// UsersRegistered tracks total user registrations (new identities only).
var UsersRegistered = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "mmledger",
	Subsystem: "registry",
	Name:      "users_registered_total",
	Help:      "Total new identities registered.",
})

// DisplayNameUpdates tracks renames of already-registered identities.
var DisplayNameUpdates = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "mmledger",
	Subsystem: "registry",
	Name:      "display_name_updates_total",
	Help:      "Total display name updates on existing identities.",
})

// GamesRecorded tracks recorded games by difficulty and outcome.
var GamesRecorded = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "mmledger",
	Subsystem: "ledger",
	Name:      "games_recorded_total",
	Help:      "Total games recorded.",
}, []string{"difficulty", "outcome"})

// PointsAwarded tracks total points added to user aggregates.
var PointsAwarded = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "mmledger",
	Subsystem: "ledger",
	Name:      "points_awarded_total",
	Help:      "Total points awarded across all recorded games.",
})

// DailyChallengesCompleted tracks daily challenge completions by difficulty.
var DailyChallengesCompleted = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "mmledger",
	Subsystem: "ledger",
	Name:      "daily_challenges_completed_total",
	Help:      "Total daily challenge completions recorded.",
}, []string{"difficulty"})

// HTTPRequests tracks served HTTP requests by method, path and status.
var HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "mmledger",
	Subsystem: "http",
	Name:      "requests_total",
	Help:      "Total HTTP requests served.",
}, []string{"method", "path", "status"})

// HTTPDuration tracks request latency by method and path.
var HTTPDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Namespace: "mmledger",
	Subsystem: "http",
	Name:      "request_duration_seconds",
	Help:      "HTTP request latency.",
	Buckets:   prometheus.DefBuckets,
}, []string{"method", "path"})
