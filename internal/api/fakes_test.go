// Peer-to-Playlist - Music-Matched Dating with Real-Time Chat
// Copyright 2026 The Peer-to-Playlist Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Shahir-47/Peer-to-Playlist

package api

import (
	"context"
	"errors"
	"io"
	"slices"
	"sort"
	"sync"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Shahir-47/Peer-to-Playlist/internal/database"
	"github.com/Shahir-47/Peer-to-Playlist/internal/logging"
	"github.com/Shahir-47/Peer-to-Playlist/internal/models"
)

//nolint:gochecknoinits // init ensures consistent logging for tests
func init() {
	logging.Init(logging.Config{Level: "info", Format: "console", Output: io.Discard})
}

// eventLog records store writes and notifications in call order.
type eventLog struct {
	mu     sync.Mutex
	events []string
}

func (l *eventLog) add(e string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.events = append(l.events, e)
}

func (l *eventLog) snapshot() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.events...)
}

// fakeStore is an in-memory Store.
type fakeStore struct {
	mu       sync.Mutex
	log      *eventLog
	users    map[primitive.ObjectID]*models.User
	messages []models.Message
	pingErr  error
}

func newFakeStore(log *eventLog) *fakeStore {
	return &fakeStore{log: log, users: make(map[primitive.ObjectID]*models.User)}
}

func (s *fakeStore) get(id string) (*models.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, database.ErrNotFound
	}
	u, ok := s.users[oid]
	if !ok {
		return nil, database.ErrNotFound
	}
	return u, nil
}

func mustOID(t *testing.T, id string) primitive.ObjectID {
	t.Helper()
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		t.Fatalf("invalid id %q: %v", id, err)
	}
	return oid
}

func public(u *models.User) *models.User {
	c := *u
	c.Password = ""
	c.Likes = slices.Clone(u.Likes)
	c.Dislikes = slices.Clone(u.Dislikes)
	c.Matches = slices.Clone(u.Matches)
	return &c
}

func (s *fakeStore) CreateUser(_ context.Context, u *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.users {
		if existing.Email == u.Email {
			return database.ErrDuplicateEmail
		}
	}
	u.ID = primitive.NewObjectID()
	u.CreatedAt = time.Now()
	stored := *u
	s.users[u.ID] = &stored
	s.log.add("create_user")
	return nil
}

func (s *fakeStore) FindUserByID(_ context.Context, id string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, err := s.get(id)
	if err != nil {
		return nil, err
	}
	return public(u), nil
}

func (s *fakeStore) FindUserByEmail(_ context.Context, email string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == email {
			c := *u
			return &c, nil
		}
	}
	return nil, database.ErrNotFound
}

func (s *fakeStore) UpdateProfile(_ context.Context, id string, req *models.UpdateProfileRequest) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, err := s.get(id)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		u.Name = *req.Name
	}
	if req.Bio != nil {
		u.Bio = *req.Bio
	}
	if req.Age != nil {
		u.Age = *req.Age
	}
	return public(u), nil
}

func (s *fakeStore) Like(_ context.Context, userID, targetID string) (*database.LikeResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	me, err := s.get(userID)
	if err != nil {
		return nil, err
	}
	target, err := s.get(targetID)
	if err != nil {
		return nil, err
	}
	if target.ID == me.ID {
		return nil, database.ErrSelfSwipe
	}

	matched := false
	if !me.HasLiked(target.ID) {
		me.Likes = append(me.Likes, target.ID)
		if target.HasLiked(me.ID) && !me.IsMatchedWith(target.ID) {
			me.Matches = append(me.Matches, target.ID)
			target.Matches = append(target.Matches, me.ID)
			matched = true
		}
	}
	s.log.add("like")
	return &database.LikeResult{User: public(me), Target: public(target), Matched: matched}, nil
}

func (s *fakeStore) Dislike(_ context.Context, userID, targetID string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	me, err := s.get(userID)
	if err != nil {
		return nil, err
	}
	oid, err := primitive.ObjectIDFromHex(targetID)
	if err != nil {
		return nil, database.ErrNotFound
	}
	if oid == me.ID {
		return nil, database.ErrSelfSwipe
	}
	if !me.HasDisliked(oid) {
		me.Dislikes = append(me.Dislikes, oid)
	}
	return public(me), nil
}

func (s *fakeStore) FindMatches(_ context.Context, userID string) ([]models.MatchPayload, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	me, err := s.get(userID)
	if err != nil {
		return nil, err
	}
	cards := []models.MatchPayload{}
	for _, id := range me.Matches {
		cards = append(cards, s.users[id].Counterpart())
	}
	return cards, nil
}

func (s *fakeStore) FindCandidates(_ context.Context, userID string) ([]models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	me, err := s.get(userID)
	if err != nil {
		return nil, err
	}
	out := []models.User{}
	for _, u := range s.users {
		if u.ID == me.ID || me.HasLiked(u.ID) || me.HasDisliked(u.ID) || me.IsMatchedWith(u.ID) {
			continue
		}
		if models.Compatible(me, u) {
			out = append(out, *public(u))
		}
	}
	return out, nil
}

func (s *fakeStore) CreateMessage(_ context.Context, m *models.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	m.ID = primitive.NewObjectID()
	m.CreatedAt = time.Now().Add(time.Duration(len(s.messages)) * time.Millisecond)
	s.messages = append(s.messages, *m)
	s.log.add("create_message")
	return nil
}

func (s *fakeStore) FindMessagesBetween(_ context.Context, a, b string) ([]models.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []models.Message{}
	for _, m := range s.messages {
		sender, receiver := m.Sender.Hex(), m.Receiver.Hex()
		if (sender == a && receiver == b) || (sender == b && receiver == a) {
			out = append(out, m)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (s *fakeStore) Ping(context.Context) error {
	return s.pingErr
}

var errPing = errors.New("no reachable servers")

// recordingNotifier captures notifications.
type recordingNotifier struct {
	log      *eventLog
	mu       sync.Mutex
	matches  [][2]*models.User
	messages []*models.Message
	profiles int
}

func (n *recordingNotifier) NotifyMatch(a, b *models.User) {
	n.mu.Lock()
	n.matches = append(n.matches, [2]*models.User{a, b})
	n.mu.Unlock()
	n.log.add("notify_match")
}

func (n *recordingNotifier) NotifyMessage(msg *models.Message) {
	n.mu.Lock()
	n.messages = append(n.messages, msg)
	n.mu.Unlock()
	n.log.add("notify_message")
}

func (n *recordingNotifier) NotifyNewProfile() {
	n.mu.Lock()
	n.profiles++
	n.mu.Unlock()
	n.log.add("notify_profile")
}
