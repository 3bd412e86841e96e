// Copyright 2025 Eli Samuel. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

// Package reminder maintains at most one pending notification per
// schedule owner, re-arming it idempotently as schedules change.
package reminder

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/esamuel/dosecal/dose"
	"github.com/esamuel/dosecal/internal/logging"
	"github.com/esamuel/dosecal/notify"
)

// TimeSource is an interface that provides the current time in a specific
// location and is intended for testing purposes. It is consulted once per
// Arm invocation.
type TimeSource interface {
	NowIn(in *time.Location) time.Time
}

type SystemTimeSource struct{}

func (SystemTimeSource) NowIn(loc *time.Location) time.Time {
	return time.Now().In(loc)
}

// PayloadFunc produces the notification content for a schedule.
type PayloadFunc func(sched dose.Schedule) notify.Payload

// MedicationPayload is the default notification text for a dose schedule.
func MedicationPayload(sched dose.Schedule) notify.Payload {
	return notify.Payload{
		Title: "Medication Reminder",
		Body:  fmt.Sprintf("Time to take your %v", sched.Name),
	}
}

type Option func(o *options)

type options struct {
	timeSource  TimeSource
	logger      *slog.Logger
	recorder    *logging.StatusRecorder
	payload     PayloadFunc
	loc         *time.Location
	horizonDays int
}

// WithTimeSource sets the time source used to evaluate 'now' and is
// primarily intended for testing purposes.
func WithTimeSource(ts TimeSource) Option {
	return func(o *options) {
		o.timeSource = ts
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// WithStatusRecorder records the armed/resolved lifecycle of every
// reminder handled by the scheduler.
func WithStatusRecorder(sr *logging.StatusRecorder) Option {
	return func(o *options) {
		o.recorder = sr
	}
}

// WithPayload overrides the default notification content.
func WithPayload(p PayloadFunc) Option {
	return func(o *options) {
		o.payload = p
	}
}

func WithTimeLocation(loc *time.Location) Option {
	return func(o *options) {
		o.loc = loc
	}
}

// WithHorizonDays bounds the forward search for the next occurrence.
func WithHorizonDays(days int) Option {
	return func(o *options) {
		o.horizonDays = days
	}
}

// Scheduler arms reminders against a notification store, one slot per
// owner. Arms for the same owner serialize; different owners proceed
// independently.
type Scheduler struct {
	options
	store  notify.Store
	mu     sync.Mutex
	owners map[string]*ownerState
}

type ownerState struct {
	mu    sync.Mutex
	armed bool
	fire  time.Time
	due   time.Time
	rec   *logging.StatusRecord
}

// New creates a scheduler backed by the supplied notification store.
func New(store notify.Store, opts ...Option) *Scheduler {
	s := &Scheduler{
		store:  store,
		owners: map[string]*ownerState{},
	}
	for _, opt := range opts {
		opt(&s.options)
	}
	if s.timeSource == nil {
		s.timeSource = SystemTimeSource{}
	}
	if s.logger == nil {
		s.logger = slog.New(slog.NewJSONHandler(os.Stderr, nil))
	}
	if s.payload == nil {
		s.payload = MedicationPayload
	}
	if s.loc == nil {
		s.loc = time.Local
	}
	s.logger = s.logger.With("mod", "reminder")
	return s
}

func (s *Scheduler) ownerState(owner string) *ownerState {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.owners[owner]
	if st == nil {
		st = &ownerState{}
		s.owners[owner] = st
	}
	return st
}

// resolve closes out the owner's current status record, if any.
func (s *Scheduler) resolve(st *ownerState, err error) {
	if s.recorder != nil && st.rec != nil {
		s.recorder.ArmedDone(st.rec, err)
	}
	st.rec = nil
}

// Arm computes the owner's next occurrence and (re)arms its reminder:
// any previously armed reminder for the schedule's owner is canceled
// first, so the store never holds two live reminders for one owner.
// Calling Arm twice with unchanged inputs yields the same single armed
// reminder.
//
// When no occurrence exists within the horizon Arm cancels any existing
// reminder and returns false with a nil error: nothing being due is a
// normal outcome, not a failure. A lead time that would place the fire
// point in the past falls back to firing at the occurrence itself.
//
// On a store failure the scheduler's bookkeeping records the owner as not
// armed; it never believes a rejected reminder is live.
func (s *Scheduler) Arm(ctx context.Context, sched dose.Schedule) (time.Time, bool, error) {
	owner := sched.Name
	st := s.ownerState(owner)
	st.mu.Lock()
	defer st.mu.Unlock()

	now := s.timeSource.NowIn(s.loc)
	fire, due, ok := sched.NextFireTime(now, s.loc, s.horizonDays)
	if !ok {
		s.resolve(st, nil)
		st.armed = false
		if err := s.store.Cancel(ctx, owner); err != nil {
			s.logger.Warn("cancel failed", "owner", owner, "now", now, "err", err)
			return time.Time{}, false, fmt.Errorf("cancel %v: %w", owner, err)
		}
		s.logger.Info("nothing due", "owner", owner, "now", now)
		return time.Time{}, false, nil
	}

	s.resolve(st, nil)
	st.armed = false
	if err := s.store.Cancel(ctx, owner); err != nil {
		s.logger.Warn("cancel failed", "owner", owner, "now", now, "err", err)
		return time.Time{}, false, fmt.Errorf("cancel %v: %w", owner, err)
	}
	if err := s.store.Add(ctx, owner, fire, s.payload(sched)); err != nil {
		if s.recorder != nil {
			rec := s.recorder.NewArmed(&logging.StatusRecord{Owner: owner, Op: "arm", Due: due, Fire: fire})
			s.recorder.ArmedDone(rec, err)
		}
		s.logger.Warn("arm failed", "owner", owner, "now", now, "due", due, "fire", fire, "err", err)
		return time.Time{}, false, fmt.Errorf("arm %v: %w", owner, err)
	}
	st.armed, st.fire, st.due = true, fire, due
	if s.recorder != nil {
		st.rec = s.recorder.NewArmed(&logging.StatusRecord{Owner: owner, Op: "arm", Due: due, Fire: fire})
	}
	s.logger.Info("armed", "owner", owner, "now", now, "due", due, "fire", fire)
	return fire, true, nil
}

// Disarm unconditionally cancels any pending reminder for the owner. It
// is safe to call when nothing is armed.
func (s *Scheduler) Disarm(ctx context.Context, owner string) error {
	st := s.ownerState(owner)
	st.mu.Lock()
	defer st.mu.Unlock()
	s.resolve(st, nil)
	st.armed = false
	if err := s.store.Cancel(ctx, owner); err != nil {
		s.logger.Warn("cancel failed", "owner", owner, "err", err)
		return fmt.Errorf("cancel %v: %w", owner, err)
	}
	s.logger.Info("disarmed", "owner", owner)
	return nil
}

// Armed returns the fire time the scheduler believes is armed for the
// owner, if any.
func (s *Scheduler) Armed(owner string) (time.Time, bool) {
	st := s.ownerState(owner)
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.fire, st.armed
}
