// Copyright 2025 Eli Samuel. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

// Package fasting models a repeating fasting/eating cycle as a pure
// computation over a reference time of day. Nothing is cached between
// queries: editing the reference immediately changes every subsequent
// answer.
package fasting

import (
	"fmt"
	"time"

	"cloudeng.io/datetime"
)

// Period is the fixed length of one full cycle. The fasting and eating
// phases must partition it exactly.
const Period = 24 * time.Hour

// Phase is one of the two mutually exclusive states of the cycle.
type Phase int

const (
	Fasting Phase = iota
	Eating
)

func (p Phase) String() string {
	switch p {
	case Fasting:
		return "fasting"
	case Eating:
		return "eating"
	}
	return fmt.Sprintf("unknown(%d)", int(p))
}

// Cycle is a two-phase repeating cycle anchored at a reference time of
// day, the time of the last meal, when fasting begins.
//
// The arithmetic is deliberately time-of-day only: a reference recorded
// on an earlier calendar day is equivalent to the same clock time today,
// and a phase can never span more than 24 hours. This mirrors how the
// cycle is surfaced to the user (a daily eating window), not elapsed
// duration since an absolute instant.
type Cycle struct {
	FastingFor time.Duration
	EatingFor  time.Duration
	Reference  datetime.TimeOfDay
}

// Validate rejects cycles whose phases do not partition the 24h period.
// It is called at configuration time; the query methods assume the
// invariant already holds.
func (c Cycle) Validate() error {
	if c.FastingFor <= 0 || c.EatingFor <= 0 {
		return fmt.Errorf("phase lengths must be positive: fasting %v, eating %v", c.FastingFor, c.EatingFor)
	}
	if c.FastingFor+c.EatingFor != Period {
		return fmt.Errorf("phases must sum to %v: fasting %v + eating %v = %v",
			Period, c.FastingFor, c.EatingFor, c.FastingFor+c.EatingFor)
	}
	return nil
}

// State is the derived condition of the cycle at a particular moment.
// It is recomputed from scratch on every query.
type State struct {
	Phase            Phase
	Elapsed          time.Duration // elapsed within the current phase
	Remaining        time.Duration // remaining in the current phase
	PercentRemaining int           // of the current phase, in [0, 100]
}

const minutesPerDay = 24 * 60

// StateAt returns the cycle state at 'now'. Both the reference and 'now'
// are reduced to minutes since midnight; the period is added before the
// modulo so that a 'now' earlier in the day than the reference cannot go
// negative.
func (c Cycle) StateAt(now time.Time) State {
	ref := datetime.CalendarDateFromTime(now).Time(c.Reference, now.Location())
	refMin := ref.Hour()*60 + ref.Minute()
	nowMin := now.Hour()*60 + now.Minute()
	elapsed := (nowMin - refMin + minutesPerDay) % minutesPerDay

	fastingMin := int(c.FastingFor / time.Minute)
	var st State
	if elapsed < fastingMin {
		st.Phase = Fasting
		st.Elapsed = time.Duration(elapsed) * time.Minute
		st.Remaining = time.Duration(fastingMin-elapsed) * time.Minute
	} else {
		st.Phase = Eating
		st.Elapsed = time.Duration(elapsed-fastingMin) * time.Minute
		st.Remaining = time.Duration(minutesPerDay-elapsed) * time.Minute
	}
	st.PercentRemaining = percentRemaining(st.Remaining, c.phaseLength(st.Phase))
	return st
}

func (c Cycle) phaseLength(p Phase) time.Duration {
	if p == Fasting {
		return c.FastingFor
	}
	return c.EatingFor
}

func percentRemaining(remaining, phase time.Duration) int {
	if phase <= 0 {
		return 0
	}
	pct := int((remaining*100 + phase/2) / phase)
	if pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return pct
}

// Window returns the eating window containing or following 'now' as
// concrete timestamps: the end of the current fast and the start of the
// next one. If 'now' is inside the eating window the returned start is in
// the past.
func (c Cycle) Window(now time.Time) (start, end time.Time) {
	st := c.StateAt(now)
	if st.Phase == Fasting {
		start = now.Add(st.Remaining)
	} else {
		start = now.Add(-st.Elapsed)
	}
	return start, start.Add(c.EatingFor)
}

// ProgressAngle maps a percent-remaining value onto a clockwise sweep in
// degrees for ring style displays. It is a pure function of its input.
func ProgressAngle(percentRemaining int) float64 {
	if percentRemaining < 0 {
		percentRemaining = 0
	}
	if percentRemaining > 100 {
		percentRemaining = 100
	}
	return float64(100-percentRemaining) * 360.0 / 100.0
}
