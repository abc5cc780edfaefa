// Peer-to-Playlist - Music-Matched Dating with Real-Time Chat
// Copyright 2026 The Peer-to-Playlist Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Shahir-47/Peer-to-Playlist

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Drop reasons for realtime events.
const (
	DropOffline    = "offline"
	DropBufferFull = "buffer_full"
	DropClosed     = "closed"
	DropQueueFull  = "queue_full"
	DropEncode     = "encode_error"
)

var (
	// Realtime
	OnlineUsers = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "presence_online_users",
			Help: "Number of users with a registered realtime connection",
		},
	)

	WSConnectionsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "websocket_connections_total",
			Help: "Total number of admitted websocket connections",
		},
	)

	WSHandshakeRejections = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "websocket_handshake_rejections_total",
			Help: "Total number of refused websocket handshakes",
		},
		[]string{"reason"},
	)

	WSMessagesReceived = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "websocket_messages_received_total",
			Help: "Total number of inbound websocket frames",
		},
	)

	EventsSent = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "realtime_events_sent_total",
			Help: "Total number of realtime events queued to a connection",
		},
		[]string{"event"},
	)

	EventsDropped = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "realtime_events_dropped_total",
			Help: "Total number of realtime events not delivered",
		},
		[]string{"event", "reason"},
	)

	NotifierQueueDepth = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "notifier_queue_depth",
			Help: "Pending notification jobs",
		},
	)

	// HTTP
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of in-flight API requests",
		},
	)

	// Storage
	MongoOperationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "mongo_operation_duration_seconds",
			Help:    "Duration of MongoDB operations in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation", "collection"},
	)

	MongoOperationErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mongo_operation_errors_total",
			Help: "Total number of failed MongoDB operations",
		},
		[]string{"operation", "collection"},
	)

	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)
)

// RecordEventSent counts an event handed to a connection's send buffer.
func RecordEventSent(event string) {
	EventsSent.WithLabelValues(event).Inc()
}

// RecordEventDropped counts an event that was not delivered.
func RecordEventDropped(event, reason string) {
	EventsDropped.WithLabelValues(event, reason).Inc()
}

// RecordHandshakeRejected counts a refused handshake.
func RecordHandshakeRejected(reason string) {
	WSHandshakeRejections.WithLabelValues(reason).Inc()
}

// RecordAPIRequest records one completed HTTP request.
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest adjusts the in-flight request gauge.
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordMongoOperation records duration and failure of one MongoDB call.
func RecordMongoOperation(operation, collection string, duration time.Duration, err error) {
	MongoOperationDuration.WithLabelValues(operation, collection).Observe(duration.Seconds())
	if err != nil {
		MongoOperationErrors.WithLabelValues(operation, collection).Inc()
	}
}
