// Peer-to-Playlist - Music-Matched Dating with Real-Time Chat
// Copyright 2026 The Peer-to-Playlist Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Shahir-47/Peer-to-Playlist

package websocket

import (
	"context"
	"sort"
	"sync"

	"github.com/Shahir-47/Peer-to-Playlist/internal/logging"
	"github.com/Shahir-47/Peer-to-Playlist/internal/metrics"
	"github.com/Shahir-47/Peer-to-Playlist/internal/presence"
)

// ShutdownReason describes why the hub stopped.
type ShutdownReason string

const (
	ShutdownReasonContextCanceled ShutdownReason = "context_canceled"
	ShutdownReasonContextDeadline ShutdownReason = "context_deadline"
)

// Message is the envelope written to and read from every connection.
type Message struct {
	Type string      `json:"type"`
	Data interface{} `json:"data,omitempty"`
}

// Options tunes per-connection behavior.
type Options struct {
	// SendBuffer is the outbound queue length per connection.
	SendBuffer int

	// CloseSuperseded closes the older connection when the same user
	// connects again. When false the older socket stays open but no longer
	// receives targeted events.
	CloseSuperseded bool

	// InboundRate and InboundBurst bound client frames per second.
	InboundRate  float64
	InboundBurst int
}

// DefaultOptions returns the options used when none are configured.
func DefaultOptions() Options {
	return Options{
		SendBuffer:   256,
		InboundRate:  5,
		InboundBurst: 20,
	}
}

// Hub owns the set of live connections and keeps the presence registry in
// step with them.
type Hub struct {
	registry  *presence.Registry
	opts      Options
	clients   map[*Client]bool
	broadcast chan Message
	mu        sync.RWMutex
}

// NewHub creates a hub bound to registry. The registry is injected so that
// tests and multiple hubs never share hidden global state.
func NewHub(registry *presence.Registry, opts Options) *Hub {
	defaults := DefaultOptions()
	if opts.SendBuffer <= 0 {
		opts.SendBuffer = defaults.SendBuffer
	}
	if opts.InboundRate <= 0 {
		opts.InboundRate = defaults.InboundRate
	}
	if opts.InboundBurst <= 0 {
		opts.InboundBurst = defaults.InboundBurst
	}
	return &Hub{
		registry:  registry,
		opts:      opts,
		clients:   make(map[*Client]bool),
		broadcast: make(chan Message, 256),
	}
}

// Registry returns the presence registry this hub maintains.
func (h *Hub) Registry() *presence.Registry {
	return h.registry
}

// Connect records an authenticated connection. Any previous connection for
// the same user stops receiving targeted events immediately.
func (h *Hub) Connect(c *Client) {
	h.mu.Lock()
	h.clients[c] = true
	total := len(h.clients)
	h.mu.Unlock()

	previous := h.registry.Register(c.userID, c)
	metrics.WSConnectionsTotal.Inc()
	metrics.OnlineUsers.Set(float64(h.registry.Len()))

	logging.Info().
		Str("user_id", c.userID).
		Uint64("client_id", c.id).
		Int("total_clients", total).
		Bool("superseded", previous != nil).
		Msg("websocket client connected")

	if old, ok := previous.(*Client); ok && h.opts.CloseSuperseded {
		logging.Debug().Str("user_id", c.userID).Uint64("client_id", old.id).Msg("closing superseded connection")
		old.close()
	}
}

// Disconnect removes a connection. It is safe to call more than once and
// never evicts a newer connection registered for the same user.
func (h *Hub) Disconnect(c *Client) {
	c.disconnectOnce.Do(func() {
		h.mu.Lock()
		delete(h.clients, c)
		total := len(h.clients)
		h.mu.Unlock()

		removed := h.registry.UnregisterHandle(c.userID, c)
		c.close()
		metrics.OnlineUsers.Set(float64(h.registry.Len()))

		logging.Info().
			Str("user_id", c.userID).
			Uint64("client_id", c.id).
			Int("total_clients", total).
			Bool("registry_entry_removed", removed).
			Msg("websocket client disconnected")
	})
}

// SendTo delivers one event to one connection. A nil or closed handle, or a
// full outbound buffer, drops the event without error.
func (h *Hub) SendTo(handle presence.Handle, event string, data interface{}) {
	c, ok := handle.(*Client)
	if !ok || c == nil {
		metrics.RecordEventDropped(event, metrics.DropOffline)
		return
	}
	if reason := c.trySend(Message{Type: event, Data: data}); reason != "" {
		metrics.RecordEventDropped(event, reason)
		logging.Debug().
			Str("event", event).
			Str("user_id", c.userID).
			Str("reason", reason).
			Msg("dropped targeted event")
		return
	}
	metrics.RecordEventSent(event)
}

// SendToUser looks the user up in the registry and sends to the current
// connection. It reports whether the user was online.
func (h *Hub) SendToUser(userID, event string, data interface{}) bool {
	handle, ok := h.registry.Lookup(userID)
	if !ok {
		metrics.RecordEventDropped(event, metrics.DropOffline)
		return false
	}
	h.SendTo(handle, event, data)
	return true
}

// BroadcastAll queues one event for every connected client. It never blocks;
// if the broadcast queue is full the event is dropped.
func (h *Hub) BroadcastAll(event string, data interface{}) {
	select {
	case h.broadcast <- Message{Type: event, Data: data}:
	default:
		metrics.RecordEventDropped(event, metrics.DropQueueFull)
		logging.Warn().Str("event", event).Msg("broadcast channel full, dropping event")
	}
}

// RunWithContext fans out broadcasts until ctx is done, then closes every
// connection.
func (h *Hub) RunWithContext(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			h.logGracefulShutdown(ctx)
			return ctx.Err()
		case message := <-h.broadcast:
			h.broadcastToClients(message)
		}
	}
}

func (h *Hub) logGracefulShutdown(ctx context.Context) {
	clientCount := h.ClientCount()
	h.closeAllClients()

	logging.Info().
		Str("component", "websocket-hub").
		Str("reason", string(getShutdownReason(ctx))).
		Int("clients_closed", clientCount).
		Msg("websocket hub stopped")
}

func getShutdownReason(ctx context.Context) ShutdownReason {
	if ctx.Err() == context.DeadlineExceeded {
		return ShutdownReasonContextDeadline
	}
	return ShutdownReasonContextCanceled
}

// snapshot returns the connected clients in connection order.
func (h *Hub) snapshot() []*Client {
	h.mu.RLock()
	clients := make([]*Client, 0, len(h.clients))
	for client := range h.clients {
		clients = append(clients, client)
	}
	h.mu.RUnlock()

	sort.Slice(clients, func(i, j int) bool {
		return clients[i].id < clients[j].id
	})
	return clients
}

func (h *Hub) broadcastToClients(message Message) {
	for _, client := range h.snapshot() {
		if reason := client.trySend(message); reason != "" {
			metrics.RecordEventDropped(message.Type, reason)
			continue
		}
		metrics.RecordEventSent(message.Type)
	}
}

func (h *Hub) closeAllClients() {
	for _, client := range h.snapshot() {
		client.close()
	}
}

// ClientCount returns the number of open connections, including superseded
// ones that have not closed yet.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
