// Peer-to-Playlist - Music-Matched Dating with Real-Time Chat
// Copyright 2026 The Peer-to-Playlist Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Shahir-47/Peer-to-Playlist

package websocket

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/goccy/go-json"
	"github.com/gorilla/websocket"
	"golang.org/x/time/rate"

	"github.com/Shahir-47/Peer-to-Playlist/internal/logging"
	"github.com/Shahir-47/Peer-to-Playlist/internal/metrics"
	"github.com/Shahir-47/Peer-to-Playlist/internal/models"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512 * 1024
)

var clientIDCounter atomic.Uint64

// Client is one WebSocket connection belonging to one user.
type Client struct {
	id      uint64
	userID  string
	hub     *Hub
	conn    *websocket.Conn
	limiter *rate.Limiter

	mu     sync.Mutex
	send   chan Message
	closed bool

	disconnectOnce sync.Once
}

// NewClient wraps an upgraded connection for userID.
func NewClient(hub *Hub, conn *websocket.Conn, userID string) *Client {
	return &Client{
		id:      clientIDCounter.Add(1),
		userID:  userID,
		hub:     hub,
		conn:    conn,
		limiter: rate.NewLimiter(rate.Limit(hub.opts.InboundRate), hub.opts.InboundBurst),
		send:    make(chan Message, hub.opts.SendBuffer),
	}
}

// ID returns the process-unique connection number.
func (c *Client) ID() uint64 {
	return c.id
}

// UserID returns the user the handshake bound this connection to.
func (c *Client) UserID() string {
	return c.userID
}

// trySend queues msg without blocking. It returns a drop reason, or "" when
// the message was queued.
func (c *Client) trySend(msg Message) string {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return metrics.DropClosed
	}
	select {
	case c.send <- msg:
		return ""
	default:
		return metrics.DropBufferFull
	}
}

// close stops the outbound queue. The write pump then sends a close frame.
func (c *Client) close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.closed {
		c.closed = true
		close(c.send)
	}
}

func (c *Client) readPump() {
	defer func() {
		c.hub.Disconnect(c)
		_ = c.conn.Close() // best-effort cleanup
	}()

	c.conn.SetReadLimit(maxMessageSize)
	if err := c.conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		logging.Error().Err(err).Msg("failed to set read deadline")
		return
	}
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, payload, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure, websocket.CloseNormalClosure) {
				logging.Warn().Err(err).Str("user_id", c.userID).Msg("unexpected websocket close error")
			}
			return
		}
		metrics.WSMessagesReceived.Inc()

		if !c.limiter.Allow() {
			logging.Debug().Str("user_id", c.userID).Msg("inbound frame rate exceeded, ignoring")
			continue
		}

		var msg Message
		if err := json.Unmarshal(payload, &msg); err != nil {
			continue
		}
		if msg.Type == models.EventPing {
			_ = c.trySend(Message{Type: models.EventPong})
		}
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close() // best-effort cleanup
	}()

	for {
		select {
		case message, ok := <-c.send:
			if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				logging.Error().Err(err).Msg("failed to set write deadline")
				return
			}

			if !ok {
				closeMsg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
				if err := c.conn.WriteMessage(websocket.CloseMessage, closeMsg); err != nil {
					logging.Debug().Err(err).Msg("failed to write close message")
				}
				return
			}

			payload, err := json.Marshal(message)
			if err != nil {
				metrics.RecordEventDropped(message.Type, metrics.DropEncode)
				logging.Error().Err(err).Str("event", message.Type).Msg("failed to encode event")
				continue
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				logging.Debug().Err(err).Str("user_id", c.userID).Msg("failed to write event")
				return
			}

		case <-ticker.C:
			if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				logging.Error().Err(err).Msg("failed to set write deadline for ping")
				return
			}
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// Start launches the read and write pumps.
func (c *Client) Start() {
	go c.writePump()
	go c.readPump()
}
