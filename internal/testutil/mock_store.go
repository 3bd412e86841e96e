// Copyright 2025 Eli Samuel. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package testutil

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/esamuel/dosecal/notify"
)

// MockStore is an in-memory notification store that records every
// cancel/add call in order, supports per-owner failure injection and
// exposes the set of live entries for assertions.
type MockStore struct {
	mu         sync.Mutex
	live       map[string]notify.Entry
	calls      []string
	failAdd    map[string]error
	failCancel map[string]error
}

func NewMockStore() *MockStore {
	return &MockStore{
		live:       map[string]notify.Entry{},
		failAdd:    map[string]error{},
		failCancel: map[string]error{},
	}
}

// FailAdd makes subsequent Add calls for owner return err.
func (s *MockStore) FailAdd(owner string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failAdd[owner] = err
}

// FailCancel makes subsequent Cancel calls for owner return err.
func (s *MockStore) FailCancel(owner string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failCancel[owner] = err
}

func (s *MockStore) Add(_ context.Context, owner string, fireAt time.Time, p notify.Payload) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, "add:"+owner)
	if err := s.failAdd[owner]; err != nil {
		return err
	}
	if _, ok := s.live[owner]; ok {
		return fmt.Errorf("duplicate live notification for %v", owner)
	}
	s.live[owner] = notify.Entry{Owner: owner, FireAt: fireAt, Payload: p}
	return nil
}

func (s *MockStore) Cancel(_ context.Context, owner string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, "cancel:"+owner)
	if err := s.failCancel[owner]; err != nil {
		return err
	}
	delete(s.live, owner)
	return nil
}

// Live returns the live entry for owner, if any.
func (s *MockStore) Live(owner string) (notify.Entry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.live[owner]
	return e, ok
}

// NumLive returns the number of live entries for owner; anything other
// than 0 or 1 indicates a broken single-slot invariant.
func (s *MockStore) NumLive(owner string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.live[owner]; ok {
		return 1
	}
	return 0
}

// Calls returns the recorded call sequence, eg.
// ["cancel:amlodipine", "add:amlodipine"].
func (s *MockStore) Calls() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string{}, s.calls...)
}

// ResetCalls clears the recorded call sequence, keeping live entries.
func (s *MockStore) ResetCalls() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = nil
}
