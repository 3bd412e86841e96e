// Copyright 2025 Eli Samuel. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package fasting_test

import (
	"testing"
	"time"

	"cloudeng.io/datetime"
	"github.com/esamuel/dosecal/fasting"
)

func nt(h, m int) datetime.TimeOfDay {
	return datetime.NewTimeOfDay(h, m, 0)
}

func at(d, h, m int) time.Time {
	return time.Date(2025, 1, d, h, m, 0, 0, time.UTC)
}

func sixteenEight() fasting.Cycle {
	return fasting.SixteenEight.Cycle(nt(20, 0))
}

func TestStateAt(t *testing.T) {
	c := sixteenEight()
	for i, tc := range []struct {
		now       time.Time
		phase     fasting.Phase
		elapsed   time.Duration
		remaining time.Duration
	}{
		// Last meal 20:00, queried next day 06:00: 10h into a 16h fast.
		{at(5, 6, 0), fasting.Fasting, 10 * time.Hour, 6 * time.Hour},
		// At the reference: fasting has just begun.
		{at(4, 20, 0), fasting.Fasting, 0, 16 * time.Hour},
		// 16h after the reference: the eating window opens.
		{at(5, 12, 0), fasting.Eating, 0, 8 * time.Hour},
		// One hour before the next fast begins.
		{at(4, 19, 0), fasting.Eating, 7 * time.Hour, time.Hour},
		// Midnight, 4h into the fast.
		{at(5, 0, 0), fasting.Fasting, 4 * time.Hour, 12 * time.Hour},
	} {
		st := c.StateAt(tc.now)
		if got, want := st.Phase, tc.phase; got != want {
			t.Errorf("%v: got %v, want %v", i, got, want)
		}
		if got, want := st.Elapsed, tc.elapsed; got != want {
			t.Errorf("%v: got %v, want %v", i, got, want)
		}
		if got, want := st.Remaining, tc.remaining; got != want {
			t.Errorf("%v: got %v, want %v", i, got, want)
		}
	}
}

func TestStateAtPeriodic(t *testing.T) {
	c := fasting.FourteenTen.Cycle(nt(21, 30))
	for h := 0; h < 24; h++ {
		now := at(10, h, 17)
		a, b := c.StateAt(now), c.StateAt(now.Add(fasting.Period))
		if a != b {
			t.Errorf("%v: %+v != %+v", h, a, b)
		}
	}
}

func TestPercentRemaining(t *testing.T) {
	c := sixteenEight()
	for d := 1; d < 3; d++ {
		for h := 0; h < 24; h++ {
			for m := 0; m < 60; m += 7 {
				st := c.StateAt(at(d, h, m))
				if st.PercentRemaining < 0 || st.PercentRemaining > 100 {
					t.Fatalf("%v/%v/%v: percent out of range: %v", d, h, m, st.PercentRemaining)
				}
			}
		}
	}
	// 6h remaining of a 16h fast: round(100*6/16) = 38.
	if got, want := c.StateAt(at(5, 6, 0)).PercentRemaining, 38; got != want {
		t.Errorf("got %v, want %v", got, want)
	}
	// Phase start: the full phase remains.
	if got, want := c.StateAt(at(4, 20, 0)).PercentRemaining, 100; got != want {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestReferenceEdit(t *testing.T) {
	// Moving the reference immediately changes every subsequent query;
	// there is no cached state to invalidate.
	c := sixteenEight()
	now := at(5, 6, 0)
	if got, want := c.StateAt(now).Phase, fasting.Fasting; got != want {
		t.Fatalf("got %v, want %v", got, want)
	}
	c.Reference = nt(8, 0)
	st := c.StateAt(now)
	if got, want := st.Phase, fasting.Eating; got != want {
		t.Errorf("got %v, want %v", got, want)
	}
	if got, want := st.Remaining, 2*time.Hour; got != want {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestWindow(t *testing.T) {
	c := sixteenEight()
	// During the fast the window opens at fast end and spans 8h.
	start, end := c.Window(at(5, 6, 0))
	if want := at(5, 12, 0); !start.Equal(want) {
		t.Errorf("got %v, want %v", start, want)
	}
	if want := at(5, 20, 0); !end.Equal(want) {
		t.Errorf("got %v, want %v", end, want)
	}
	// During the eating window the returned start is in the past.
	start, end = c.Window(at(4, 19, 0))
	if want := at(4, 12, 0); !start.Equal(want) {
		t.Errorf("got %v, want %v", start, want)
	}
	if want := at(4, 20, 0); !end.Equal(want) {
		t.Errorf("got %v, want %v", end, want)
	}
}

func TestCycleValidate(t *testing.T) {
	if err := sixteenEight().Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	for i, c := range []fasting.Cycle{
		{FastingFor: 18 * time.Hour, EatingFor: 5 * time.Hour},
		{FastingFor: 0, EatingFor: 24 * time.Hour},
		{FastingFor: -2 * time.Hour, EatingFor: 26 * time.Hour},
		{FastingFor: 25 * time.Hour, EatingFor: -time.Hour},
	} {
		if err := c.Validate(); err == nil {
			t.Errorf("%v: expected an error", i)
		}
	}
}

func TestProgressAngle(t *testing.T) {
	for i, tc := range []struct {
		pct  int
		want float64
	}{
		{100, 0},
		{75, 90},
		{50, 180},
		{0, 360},
		{-10, 360},
		{110, 0},
	} {
		if got := fasting.ProgressAngle(tc.pct); got != tc.want {
			t.Errorf("%v: got %v, want %v", i, got, tc.want)
		}
	}
}
