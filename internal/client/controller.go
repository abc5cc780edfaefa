// Peer-to-Playlist - Music-Matched Dating with Real-Time Chat
// Copyright 2026 The Peer-to-Playlist Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Shahir-47/Peer-to-Playlist

package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/goccy/go-json"
	"github.com/gorilla/websocket"

	"github.com/Shahir-47/Peer-to-Playlist/internal/logging"
)

const (
	userIDParam = "userId"

	defaultHandshakeTimeout = 10 * time.Second
	writeWait               = 10 * time.Second
)

var (
	// ErrNotConnected is returned by Send while no connection is open.
	ErrNotConnected = errors.New("not connected")

	// ErrMissingUserID is returned by Connect for an empty user id.
	ErrMissingUserID = errors.New("user id is required")
)

// State is the controller's connection state.
type State int32

const (
	StateDisconnected State = iota
	StateConnecting
	StateConnected
)

func (s State) String() string {
	switch s {
	case StateDisconnected:
		return "disconnected"
	case StateConnecting:
		return "connecting"
	case StateConnected:
		return "connected"
	default:
		return fmt.Sprintf("state(%d)", int32(s))
	}
}

// Handler receives the raw data of one event.
type Handler func(data json.RawMessage)

// Options configures a Controller.
type Options struct {
	// Header is sent with the handshake, e.g. the session cookie.
	Header http.Header

	// Origin is sent as the Origin header. The server rejects a handshake
	// without one unless its allow list contains "*". It overrides any
	// Origin in Header.
	Origin string

	HandshakeTimeout time.Duration
}

// envelope is the wire shape of every event.
type envelope struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data,omitempty"`
}

// session is one open connection and its reader.
type session struct {
	conn    *websocket.Conn
	userID  string
	writeMu sync.Mutex
	done    chan struct{}
}

// Controller keeps one connection per signed-in user and routes events to
// subscribed handlers.
type Controller struct {
	endpoint string
	header   http.Header
	dialer   *websocket.Dialer

	// lifecycleMu serializes Connect and Disconnect.
	lifecycleMu sync.Mutex

	mu            sync.Mutex
	sess          *session
	state         State
	onStateChange func(State)

	handlersMu sync.RWMutex
	handlers   map[string]Handler
}

// New returns a disconnected Controller for the /ws endpoint URL.
func New(endpoint string, opts Options) *Controller {
	timeout := opts.HandshakeTimeout
	if timeout <= 0 {
		timeout = defaultHandshakeTimeout
	}
	header := opts.Header.Clone()
	if opts.Origin != "" {
		if header == nil {
			header = http.Header{}
		}
		header.Set("Origin", opts.Origin)
	}
	return &Controller{
		endpoint: endpoint,
		header:   header,
		dialer: &websocket.Dialer{
			Proxy:            http.ProxyFromEnvironment,
			HandshakeTimeout: timeout,
		},
		handlers: make(map[string]Handler),
	}
}

// State returns the current connection state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// OnStateChange sets the hook called after every state transition.
func (c *Controller) OnStateChange(fn func(State)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onStateChange = fn
}

// Subscribe routes events named event to fn, replacing any earlier handler.
func (c *Controller) Subscribe(event string, fn Handler) {
	c.handlersMu.Lock()
	defer c.handlersMu.Unlock()
	c.handlers[event] = fn
}

// Unsubscribe removes the handler for event.
func (c *Controller) Unsubscribe(event string) {
	c.handlersMu.Lock()
	defer c.handlersMu.Unlock()
	delete(c.handlers, event)
}

// Connect opens a connection for userID. An open connection is closed
// first, so at most one exists at a time.
func (c *Controller) Connect(ctx context.Context, userID string) error {
	if strings.TrimSpace(userID) == "" {
		return ErrMissingUserID
	}

	c.lifecycleMu.Lock()
	defer c.lifecycleMu.Unlock()

	c.teardown()

	target, err := c.dialURL(userID)
	if err != nil {
		return err
	}

	c.setState(StateConnecting)

	conn, resp, err := c.dialer.DialContext(ctx, target, c.header)
	if resp != nil && resp.Body != nil {
		if cerr := resp.Body.Close(); cerr != nil {
			logging.Debug().Err(cerr).Msg("failed to close handshake response body")
		}
	}
	if err != nil {
		c.setState(StateDisconnected)
		if resp != nil {
			return fmt.Errorf("websocket dial failed (status %d): %w", resp.StatusCode, err)
		}
		return fmt.Errorf("websocket dial failed: %w", err)
	}

	sess := &session{conn: conn, userID: userID, done: make(chan struct{})}
	c.mu.Lock()
	c.sess = sess
	hook := c.setStateLocked(StateConnected)
	c.mu.Unlock()
	if hook != nil {
		hook(StateConnected)
	}

	go c.listen(sess)
	logging.Debug().Str("user_id", userID).Msg("realtime connection established")
	return nil
}

// Disconnect closes the open connection, if any, and waits for its reader
// to stop. No handler runs after Disconnect returns. Handlers must not call
// Disconnect or Connect themselves.
func (c *Controller) Disconnect() {
	c.lifecycleMu.Lock()
	defer c.lifecycleMu.Unlock()
	c.teardown()
}

// Send writes an event to the server.
func (c *Controller) Send(event string, data interface{}) error {
	c.mu.Lock()
	sess := c.sess
	c.mu.Unlock()
	if sess == nil {
		return ErrNotConnected
	}

	msg := struct {
		Type string      `json:"type"`
		Data interface{} `json:"data,omitempty"`
	}{Type: event, Data: data}
	payload, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", event, err)
	}

	sess.writeMu.Lock()
	defer sess.writeMu.Unlock()
	if err := sess.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}
	return sess.conn.WriteMessage(websocket.TextMessage, payload)
}

// teardown closes the current session. Callers hold lifecycleMu.
func (c *Controller) teardown() {
	c.mu.Lock()
	sess := c.sess
	c.sess = nil
	c.mu.Unlock()
	if sess == nil {
		return
	}

	sess.writeMu.Lock()
	err := sess.conn.WriteControl(
		websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(time.Second),
	)
	sess.writeMu.Unlock()
	if err != nil {
		logging.Debug().Err(err).Msg("failed to send close message")
	}
	if err := sess.conn.Close(); err != nil {
		logging.Debug().Err(err).Msg("failed to close connection")
	}
	<-sess.done

	c.setState(StateDisconnected)
	logging.Debug().Str("user_id", sess.userID).Msg("realtime connection closed")
}

// listen reads events until the connection closes.
func (c *Controller) listen(sess *session) {
	defer close(sess.done)

	for {
		_, payload, err := sess.conn.ReadMessage()
		if err != nil {
			c.mu.Lock()
			current := c.sess == sess
			var hook func(State)
			if current {
				c.sess = nil
				hook = c.setStateLocked(StateDisconnected)
			}
			c.mu.Unlock()

			if current {
				if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
					logging.Info().Err(err).Str("user_id", sess.userID).Msg("realtime connection lost")
				}
				_ = sess.conn.Close()
			}
			if hook != nil {
				hook(StateDisconnected)
			}
			return
		}
		c.dispatch(payload)
	}
}

func (c *Controller) dispatch(payload []byte) {
	var msg envelope
	if err := json.Unmarshal(payload, &msg); err != nil {
		logging.Debug().Err(err).Msg("failed to decode event")
		return
	}

	c.handlersMu.RLock()
	fn := c.handlers[msg.Type]
	c.handlersMu.RUnlock()

	if fn != nil {
		fn(msg.Data)
	}
}

func (c *Controller) setState(s State) {
	c.mu.Lock()
	hook := c.setStateLocked(s)
	c.mu.Unlock()
	if hook != nil {
		hook(s)
	}
}

// setStateLocked records s and returns the hook to call once c.mu is
// released, or nil when nothing changed.
func (c *Controller) setStateLocked(s State) func(State) {
	if c.state == s {
		return nil
	}
	c.state = s
	return c.onStateChange
}

func (c *Controller) dialURL(userID string) (string, error) {
	u, err := url.Parse(c.endpoint)
	if err != nil {
		return "", fmt.Errorf("invalid endpoint %q: %w", c.endpoint, err)
	}
	switch u.Scheme {
	case "http":
		u.Scheme = "ws"
	case "https":
		u.Scheme = "wss"
	}
	q := u.Query()
	q.Set(userIDParam, userID)
	u.RawQuery = q.Encode()
	return u.String(), nil
}
