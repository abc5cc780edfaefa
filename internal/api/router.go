// Peer-to-Playlist - Music-Matched Dating with Real-Time Chat
// Copyright 2026 The Peer-to-Playlist Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Shahir-47/Peer-to-Playlist

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Shahir-47/Peer-to-Playlist/internal/auth"
	"github.com/Shahir-47/Peer-to-Playlist/internal/middleware"
)

// chiMiddleware adapts http.HandlerFunc middleware to Chi's func(http.Handler) http.Handler.
func chiMiddleware(mw func(http.HandlerFunc) http.HandlerFunc) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return mw(next.ServeHTTP)
	}
}

// Router wires handlers, session middleware and the realtime endpoint.
type Router struct {
	handler       *Handler
	sessions      *auth.Middleware
	chiMiddleware *ChiMiddleware
	realtime      http.Handler
}

// NewRouter creates the router. realtime serves GET /ws and may be nil.
func NewRouter(handler *Handler, sessions *auth.Middleware, chiMw *ChiMiddleware, realtime http.Handler) *Router {
	if chiMw == nil {
		chiMw = NewChiMiddleware(nil)
	}
	sessions.Unauthorized = func(w http.ResponseWriter, r *http.Request, _ error) {
		NewResponseWriter(w, r).Unauthorized("Not authorized")
	}
	return &Router{
		handler:       handler,
		sessions:      sessions,
		chiMiddleware: chiMw,
		realtime:      realtime,
	}
}

// SetupChi configures all HTTP routes.
func (router *Router) SetupChi() http.Handler {
	r := chi.NewRouter()

	r.Use(chiMiddleware(middleware.RequestID))
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(router.chiMiddleware.CORS())

	r.Route("/api/v1/health", func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimitHealth())
		r.Use(APISecurityHeaders())
		r.Get("/live", router.handler.HealthLive)
		r.Get("/ready", router.handler.HealthReady)
	})

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimitAuth())
		r.Use(APISecurityHeaders())
		r.Use(chiMiddleware(middleware.PrometheusMetrics))

		r.Post("/signup", router.handler.Signup)
		r.With(router.chiMiddleware.RateLimitLogin()).Post("/login", router.handler.Login)
		r.Post("/logout", router.handler.Logout)
		r.With(chiMiddleware(router.sessions.Authenticate)).Get("/me", router.handler.Me)
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimit())
		r.Use(APISecurityHeaders())
		r.Use(chiMiddleware(middleware.PrometheusMetrics))
		r.Use(chiMiddleware(router.sessions.Authenticate))

		r.Put("/users/update", router.handler.UpdateProfile)

		r.Route("/matches", func(r chi.Router) {
			r.Post("/swipe-right/{likedUserId}", router.handler.SwipeRight)
			r.Post("/swipe-left/{dislikedUserId}", router.handler.SwipeLeft)
			r.Get("/", router.handler.GetMatches)
			r.Get("/user-profiles", router.handler.GetUserProfiles)
		})

		r.Route("/messages", func(r chi.Router) {
			r.Post("/send", router.handler.SendMessage)
			r.Get("/conversation/{userId}", router.handler.GetConversation)
		})
	})

	if router.realtime != nil {
		r.With(router.chiMiddleware.RateLimitWebSocket()).Handle("/ws", router.realtime)
	}

	r.Handle("/metrics", promhttp.Handler())

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		NewResponseWriter(w, r).NotFound("Route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		NewResponseWriter(w, r).Error(http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Method not allowed")
	})

	return r
}
