// Copyright 2025 Eli Samuel. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package testutil

import (
	"sync"
	"time"
)

// FixedTimeSource reports a settable instant as 'now' so tests can pin
// the clock.
type FixedTimeSource struct {
	mu  sync.Mutex
	now time.Time
}

func NewFixedTimeSource(now time.Time) *FixedTimeSource {
	return &FixedTimeSource{now: now}
}

func (t *FixedTimeSource) NowIn(loc *time.Location) time.Time {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.now.In(loc)
}

// Set moves the clock to now.
func (t *FixedTimeSource) Set(now time.Time) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.now = now
}
