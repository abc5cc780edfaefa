// Peer-to-Playlist - Music-Matched Dating with Real-Time Chat
// Copyright 2026 The Peer-to-Playlist Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Shahir-47/Peer-to-Playlist

/*
Package middleware provides HTTP middleware shared by the API router.

  - RequestID: accepts or generates X-Request-ID and seeds the logging
    context with request and correlation ids.
  - PrometheusMetrics: counts requests and observes latency, labelled by
    the chi route pattern so path parameters such as user ids do not
    create new series.

Both take and return http.HandlerFunc; the router adapts them to chi.
*/
package middleware
