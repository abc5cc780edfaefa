// Peer-to-Playlist - Music-Matched Dating with Real-Time Chat
// Copyright 2026 The Peer-to-Playlist Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Shahir-47/Peer-to-Playlist

package presence

import (
	"sort"
	"sync"
)

// Handle is one live connection endpoint. Implementations must be comparable
// (pointer types), since UnregisterHandle compares handles with ==.
type Handle interface {
	UserID() string
}

// Registry maps user ids to their current connection handle.
// The zero value is not usable; call NewRegistry.
type Registry struct {
	mu    sync.RWMutex
	conns map[string]Handle
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{conns: make(map[string]Handle)}
}

// Register maps userID to h, replacing any earlier handle.
// The replaced handle is returned so the caller may close it; it is nil when
// the user had no entry or re-registered the same handle.
func (r *Registry) Register(userID string, h Handle) Handle {
	r.mu.Lock()
	defer r.mu.Unlock()

	prev := r.conns[userID]
	r.conns[userID] = h
	if prev == h {
		return nil
	}
	return prev
}

// Unregister removes userID. Absent ids are ignored.
func (r *Registry) Unregister(userID string) {
	r.mu.Lock()
	delete(r.conns, userID)
	r.mu.Unlock()
}

// UnregisterHandle removes userID only while it still maps to h.
// It reports whether an entry was removed.
func (r *Registry) UnregisterHandle(userID string, h Handle) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if cur, ok := r.conns[userID]; ok && cur == h {
		delete(r.conns, userID)
		return true
	}
	return false
}

// Lookup returns the handle registered for userID.
func (r *Registry) Lookup(userID string) (Handle, bool) {
	r.mu.RLock()
	h, ok := r.conns[userID]
	r.mu.RUnlock()
	return h, ok
}

// IsOnline reports whether userID has a registered handle.
func (r *Registry) IsOnline(userID string) bool {
	_, ok := r.Lookup(userID)
	return ok
}

// Len returns the number of registered users.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.conns)
}

// Online returns the registered user ids in sorted order.
func (r *Registry) Online() []string {
	r.mu.RLock()
	ids := make([]string, 0, len(r.conns))
	for id := range r.conns {
		ids = append(ids, id)
	}
	r.mu.RUnlock()

	sort.Strings(ids)
	return ids
}
