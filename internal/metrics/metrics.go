package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP metrics
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "matchroom_http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "matchroom_http_request_duration_seconds",
			Help:    "HTTP request duration",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		},
		[]string{"method", "path"},
	)

	// Room metrics
	RoomsCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "matchroom_rooms_created_total",
			Help: "Total rooms created",
		},
	)

	CodeCollisions = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "matchroom_code_collisions_total",
			Help: "Generated room codes that collided with a live room",
		},
	)

	JoinAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "matchroom_join_attempts_total",
			Help: "Join attempts by outcome",
		},
		[]string{"result"}, // "joined", "rejoined", "full", "not_found", "error"
	)

	RoomsClosed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "matchroom_rooms_closed_total",
			Help: "Total rooms closed",
		},
	)

	// Swipe metrics
	Swipes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "matchroom_swipes_total",
			Help: "Accepted swipes by decision",
		},
		[]string{"decision"},
	)

	DuplicateSwipes = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "matchroom_duplicate_swipes_total",
			Help: "Swipes absorbed as idempotent repeats",
		},
	)

	Matches = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "matchroom_matches_total",
			Help: "Total matches found",
		},
	)

	// Event bus metrics
	EventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "matchroom_events_published_total",
			Help: "Events published by type",
		},
		[]string{"type"},
	)

	SubscribersDropped = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "matchroom_subscribers_dropped_total",
			Help: "Subscribers cut off for lagging behind",
		},
	)

	Subscribers = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "matchroom_subscribers",
			Help: "Currently attached subscribers",
		},
	)
)
