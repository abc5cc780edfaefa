// Peer-to-Playlist - Music-Matched Dating with Real-Time Chat
// Copyright 2026 The Peer-to-Playlist Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Shahir-47/Peer-to-Playlist

package notify

import (
	"context"
	"sync"

	"github.com/Shahir-47/Peer-to-Playlist/internal/logging"
	"github.com/Shahir-47/Peer-to-Playlist/internal/metrics"
	"github.com/Shahir-47/Peer-to-Playlist/internal/models"
	"github.com/Shahir-47/Peer-to-Playlist/internal/presence"
)

// Directory resolves a user to their current connection.
type Directory interface {
	Lookup(userID string) (presence.Handle, bool)
}

// Channel delivers events to connections.
type Channel interface {
	SendTo(handle presence.Handle, event string, data interface{})
	BroadcastAll(event string, data interface{})
}

// Config sizes the dispatch queue.
type Config struct {
	QueueSize int
	Workers   int
}

// DefaultConfig returns the queue settings used when none are configured.
func DefaultConfig() Config {
	return Config{QueueSize: 1024, Workers: 2}
}

type job struct {
	event string
	run   func()
}

// Notifier turns committed mutations into realtime events. Every Notify
// method returns immediately; delivery happens on the worker goroutines
// started by RunWithContext.
type Notifier struct {
	directory Directory
	channel   Channel
	workers   int
	jobs      chan job
}

// New creates a notifier. Nothing is delivered until RunWithContext runs.
func New(directory Directory, channel Channel, cfg Config) *Notifier {
	defaults := DefaultConfig()
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = defaults.QueueSize
	}
	if cfg.Workers <= 0 {
		cfg.Workers = defaults.Workers
	}
	return &Notifier{
		directory: directory,
		channel:   channel,
		workers:   cfg.Workers,
		jobs:      make(chan job, cfg.QueueSize),
	}
}

// NotifyMatch tells both parties of a new mutual match. Each receives the
// other's id, name and image in its own job, so a failed delivery to one
// party does not affect the other.
func (n *Notifier) NotifyMatch(a, b *models.User) {
	if n == nil || a == nil || b == nil {
		return
	}
	aID, bID := a.HexID(), b.HexID()
	aCard, bCard := a.Counterpart(), b.Counterpart()

	n.enqueue(models.EventNewMatch, func() {
		n.deliver(aID, models.EventNewMatch, bCard)
	})
	n.enqueue(models.EventNewMatch, func() {
		n.deliver(bID, models.EventNewMatch, aCard)
	})
}

// NotifyMessage pushes a persisted message to its receiver. The sender is
// never notified of their own message.
func (n *Notifier) NotifyMessage(msg *models.Message) {
	if n == nil || msg == nil {
		return
	}
	record := *msg
	receiverID := msg.Receiver.Hex()

	n.enqueue(models.EventNewMessage, func() {
		n.deliver(receiverID, models.EventNewMessage, record)
	})
}

// NotifyNewProfile announces a newly created account to every connection.
func (n *Notifier) NotifyNewProfile() {
	if n == nil {
		return
	}
	n.enqueue(models.EventNewUserProfile, func() {
		n.channel.BroadcastAll(models.EventNewUserProfile, models.NewUserProfilePayload{})
	})
}

// enqueue never blocks. A full queue drops the job.
func (n *Notifier) enqueue(event string, run func()) {
	select {
	case n.jobs <- job{event: event, run: run}:
		metrics.NotifierQueueDepth.Set(float64(len(n.jobs)))
	default:
		metrics.RecordEventDropped(event, metrics.DropQueueFull)
		logging.Warn().Str("event", event).Msg("notification queue full, event dropped")
	}
}

// deliver looks the user up at send time and pushes if they are online.
func (n *Notifier) deliver(userID, event string, payload interface{}) {
	handle, ok := n.directory.Lookup(userID)
	if !ok {
		metrics.RecordEventDropped(event, metrics.DropOffline)
		logging.Debug().Str("event", event).Str("user_id", userID).Msg("recipient offline, event not delivered")
		return
	}
	n.channel.SendTo(handle, event, payload)
}

// RunWithContext processes queued notifications until ctx is done, then
// drains what is already queued.
func (n *Notifier) RunWithContext(ctx context.Context) error {
	var wg sync.WaitGroup
	for i := 0; i < n.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			n.work(ctx)
		}()
	}
	wg.Wait()
	n.drain()

	logging.Info().
		Str("component", "notifier").
		Msg("notifier stopped")
	return ctx.Err()
}

func (n *Notifier) work(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case j := <-n.jobs:
			n.run(j)
		}
	}
}

func (n *Notifier) drain() {
	for {
		select {
		case j := <-n.jobs:
			n.run(j)
		default:
			return
		}
	}
}

// run executes one job. A panic while delivering is logged and swallowed so
// one bad payload cannot stop the workers.
func (n *Notifier) run(j job) {
	defer func() {
		if r := recover(); r != nil {
			metrics.RecordEventDropped(j.event, metrics.DropEncode)
			logging.Error().Interface("panic", r).Str("event", j.event).Msg("notification delivery panicked")
		}
	}()
	j.run()
	metrics.NotifierQueueDepth.Set(float64(len(n.jobs)))
}

// Pending returns the number of queued notifications.
func (n *Notifier) Pending() int {
	return len(n.jobs)
}
