// Peer-to-Playlist - Music-Matched Dating with Real-Time Chat
// Copyright 2026 The Peer-to-Playlist Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Shahir-47/Peer-to-Playlist

/*
Package metrics registers the Prometheus collectors exported at /metrics.

# Realtime

  - presence_online_users: users with a registered connection
  - websocket_connections_total: admitted connections
  - websocket_handshake_rejections_total{reason}
  - realtime_events_sent_total{event}
  - realtime_events_dropped_total{event,reason}: offline, buffer_full, closed, queue_full
  - notifier_queue_depth

# HTTP and storage

  - api_requests_total{method,endpoint,status_code}
  - api_request_duration_seconds{method,endpoint}
  - mongo_operation_duration_seconds{operation,collection}
  - mongo_operation_errors_total{operation,collection}
  - circuit_breaker_state{name}

Collectors are package variables registered with promauto, so importing the
package is enough to expose them.
*/
package metrics
