// Copyright 2025 Eli Samuel. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package logging

import (
	"fmt"
	"iter"
	"sync"
	"time"

	"cloudeng.io/algo/container/list"
)

// StatusRecorder tracks the lifecycle of reminders: armed reminders sit
// on a pending list until they are replaced, disarmed or fail, at which
// point they move to the resolved list.
type StatusRecorder struct {
	mu       sync.Mutex
	resolved []*StatusRecord
	armed    *list.Double[*StatusRecord]
}

func NewStatusRecorder() *StatusRecorder {
	return &StatusRecorder{
		resolved: make([]*StatusRecord, 0, 64),
		armed:    list.NewDouble[*StatusRecord](),
	}
}

type StatusRecord struct {
	Owner string
	Op    string // "arm" or "disarm"
	Due   time.Time
	Fire  time.Time

	// The following fields are filled in by the status recorder.
	Armed    time.Time // Time the reminder was armed, set by NewArmed.
	Resolved time.Time // Time the reminder was replaced/disarmed/failed, set by ArmedDone.
	Error    error     // Set using the argument to ArmedDone.

	listID list.DoubleID[*StatusRecord]
}

func (sr *StatusRecord) Status() string {
	switch {
	case sr.Error != nil:
		return "failed"
	case sr.Resolved.IsZero():
		return "armed"
	}
	return "resolved"
}

func (sr *StatusRecord) Name() string {
	return fmt.Sprintf("%v.%v", sr.Owner, sr.Op)
}

func (sr *StatusRecord) ErrorMessage() string {
	if sr.Error == nil {
		return ""
	}
	return sr.Error.Error()
}

// NewArmed adds sr to the armed list. It is a no-op for a nil record.
func (s *StatusRecorder) NewArmed(sr *StatusRecord) *StatusRecord {
	if sr == nil {
		return sr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	sr.listID = s.armed.Append(sr)
	sr.Armed = time.Now().In(sr.Fire.Location())
	return sr
}

// ArmedDone moves sr from the armed list to the resolved list, recording
// the error, if any, that resolved it.
func (s *StatusRecorder) ArmedDone(sr *StatusRecord, err error) {
	if sr == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	sr.Resolved = time.Now().In(sr.Fire.Location())
	sr.Error = err
	s.resolved = append(s.resolved, sr)
	s.armed.RemoveItem(sr.listID)
}

func (s *StatusRecorder) Armed() iter.Seq[*StatusRecord] {
	return func(yield func(*StatusRecord) bool) {
		s.mu.Lock()
		defer s.mu.Unlock()
		for sr := range s.armed.Forward() {
			if !yield(sr) {
				return
			}
		}
	}
}

func (s *StatusRecorder) Resolved() iter.Seq[*StatusRecord] {
	return func(yield func(*StatusRecord) bool) {
		s.mu.Lock()
		defer s.mu.Unlock()
		for _, sr := range s.resolved {
			if !yield(sr) {
				return
			}
		}
	}
}

func (s *StatusRecorder) ResetResolved() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resolved = s.resolved[:0]
}
