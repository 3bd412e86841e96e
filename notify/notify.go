// Copyright 2025 Eli Samuel. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

// Package notify defines the interface to the platform notification
// store. The reminder scheduler is its sole caller; implementations are
// supplied by the embedding application (or MemStore for in-process use).
package notify

import (
	"context"
	"sync"
	"time"
)

// Payload is the user visible content of a notification.
type Payload struct {
	Title string
	Body  string
}

// Store is a platform notification store keyed by owner ID. Add replaces
// nothing by itself: callers that require the single-slot invariant must
// Cancel first. Cancel of an owner with no live notification must succeed
// as a no-op.
type Store interface {
	Add(ctx context.Context, owner string, fireAt time.Time, p Payload) error
	Cancel(ctx context.Context, owner string) error
}

// Entry is a live notification held by MemStore.
type Entry struct {
	Owner   string
	FireAt  time.Time
	Payload Payload
}

// MemStore is an in-memory Store, safe for concurrent use. It keys live
// entries by owner and so cannot itself hold duplicate notifications for
// a single owner.
type MemStore struct {
	mu   sync.Mutex
	live map[string]Entry
}

func NewMemStore() *MemStore {
	return &MemStore{live: map[string]Entry{}}
}

func (s *MemStore) Add(_ context.Context, owner string, fireAt time.Time, p Payload) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.live[owner] = Entry{Owner: owner, FireAt: fireAt, Payload: p}
	return nil
}

func (s *MemStore) Cancel(_ context.Context, owner string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.live, owner)
	return nil
}

// Live returns the live entry for owner, if any.
func (s *MemStore) Live(owner string) (Entry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.live[owner]
	return e, ok
}

// Entries returns all live entries in unspecified order.
func (s *MemStore) Entries() []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	entries := make([]Entry, 0, len(s.live))
	for _, e := range s.live {
		entries = append(entries, e)
	}
	return entries
}
