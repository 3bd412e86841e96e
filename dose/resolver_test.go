// Copyright 2025 Eli Samuel. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package dose_test

import (
	"testing"
	"time"

	"cloudeng.io/datetime"
	"github.com/esamuel/dosecal/dose"
)

func nd(y, m, d int) datetime.CalendarDate {
	return datetime.NewCalendarDate(y, datetime.Month(m), d)
}

func nt(h, m int) datetime.TimeOfDay {
	return datetime.NewTimeOfDay(h, m, 0)
}

func at(y int, m time.Month, d, h, min int) time.Time {
	return time.Date(y, m, d, h, min, 0, 0, time.UTC)
}

func daily(times ...datetime.TimeOfDay) dose.Schedule {
	return dose.Schedule{
		Name:      "daily",
		Frequency: dose.NewDaily(),
		Times:     dose.NewTimeOfDaySet(times...),
	}
}

func TestActiveOn(t *testing.T) {
	anchor := nd(2025, 1, 10)
	for i, tc := range []struct {
		freq   dose.Frequency
		day    datetime.CalendarDate
		active bool
	}{
		{dose.NewDaily(), nd(2025, 1, 4), true},
		{dose.NewDaily(), nd(2025, 2, 28), true},

		// 2025-01-06 is a Monday, 2025-01-04 a Saturday.
		{dose.NewWeekly(time.Monday, time.Wednesday, time.Friday), nd(2025, 1, 6), true},
		{dose.NewWeekly(time.Monday, time.Wednesday, time.Friday), nd(2025, 1, 4), false},
		{dose.NewWeekly(time.Saturday), nd(2025, 1, 4), true},

		{dose.NewInterval(3, anchor), nd(2025, 1, 10), true},
		{dose.NewInterval(3, anchor), nd(2025, 1, 13), true},
		{dose.NewInterval(3, anchor), nd(2025, 1, 12), false},
		// Days before the anchor: signed difference, normalized modulo.
		{dose.NewInterval(3, anchor), nd(2025, 1, 7), true},
		{dose.NewInterval(3, anchor), nd(2025, 1, 4), true},
		{dose.NewInterval(3, anchor), nd(2025, 1, 5), false},
		{dose.NewInterval(1, anchor), nd(2024, 12, 25), true},

		{dose.NewMonthly(15), nd(2025, 1, 15), true},
		{dose.NewMonthly(15), nd(2025, 1, 14), false},
		// Strict short-month policy: no active day at all that month.
		{dose.NewMonthly(31), nd(2025, 2, 28), false},
		{dose.NewMonthly(31), nd(2025, 3, 31), true},
	} {
		sched := dose.Schedule{Name: "t", Frequency: tc.freq, Times: dose.NewTimeOfDaySet(nt(8, 0))}
		if got, want := sched.ActiveOn(tc.day, time.UTC), tc.active; got != want {
			t.Errorf("%v: %v on %v: got %v, want %v", i, tc.freq, tc.day, got, want)
		}
	}
}

func TestNextOccurrenceDaily(t *testing.T) {
	sched := daily(nt(8, 0), nt(20, 0))
	for i, tc := range []struct {
		from time.Time
		want time.Time
	}{
		// Mid-morning: the evening dose is next.
		{at(2025, 1, 4, 9, 0), at(2025, 1, 4, 20, 0)},
		// After the last dose of the day: tomorrow's first.
		{at(2025, 1, 4, 21, 0), at(2025, 1, 5, 8, 0)},
		// Exactly at dose time counts as passed.
		{at(2025, 1, 4, 8, 0), at(2025, 1, 4, 20, 0)},
		{at(2025, 1, 4, 20, 0), at(2025, 1, 5, 8, 0)},
		// Just before midnight.
		{at(2025, 1, 4, 23, 59), at(2025, 1, 5, 8, 0)},
	} {
		got, ok := sched.NextOccurrence(tc.from, time.UTC, 0)
		if !ok {
			t.Errorf("%v: no occurrence", i)
			continue
		}
		if !got.Equal(tc.want) {
			t.Errorf("%v: got %v, want %v", i, got, tc.want)
		}
	}
}

func TestNextOccurrenceWeekly(t *testing.T) {
	sched := dose.Schedule{
		Name:      "weekly",
		Frequency: dose.NewWeekly(time.Monday, time.Wednesday, time.Friday),
		Times:     dose.NewTimeOfDaySet(nt(8, 0)),
	}
	// Queried on a Saturday: the following Monday at 08:00.
	got, ok := sched.NextOccurrence(at(2025, 1, 4, 10, 0), time.UTC, 0)
	if !ok {
		t.Fatal("no occurrence")
	}
	if want := at(2025, 1, 6, 8, 0); !got.Equal(want) {
		t.Errorf("got %v, want %v", got, want)
	}

	// A single-weekday schedule always lands on that weekday.
	single := dose.Schedule{
		Name:      "single",
		Frequency: dose.NewWeekly(time.Thursday),
		Times:     dose.NewTimeOfDaySet(nt(12, 30)),
	}
	from := at(2025, 1, 1, 0, 0)
	for i := 0; i < 10; i++ {
		when, ok := single.NextOccurrence(from, time.UTC, 0)
		if !ok {
			t.Fatalf("%v: no occurrence", i)
		}
		if got, want := when.Weekday(), time.Thursday; got != want {
			t.Errorf("%v: got %v, want %v", i, got, want)
		}
		from = when
	}
}

func TestNextOccurrenceInterval(t *testing.T) {
	sched := dose.Schedule{
		Name:      "interval",
		Frequency: dose.NewInterval(3, nd(2025, 1, 1)),
		Times:     dose.NewTimeOfDaySet(nt(9, 0)),
	}
	// Successive occurrences are exactly a multiple of N days apart.
	from := at(2025, 1, 2, 0, 0)
	var prev time.Time
	for i := 0; i < 8; i++ {
		when, ok := sched.NextOccurrence(from, time.UTC, 0)
		if !ok {
			t.Fatalf("%v: no occurrence", i)
		}
		if !prev.IsZero() {
			days := int(when.Sub(prev) / (24 * time.Hour))
			if days%3 != 0 {
				t.Errorf("%v: %v and %v are %v days apart", i, prev, when, days)
			}
		}
		prev, from = when, when
	}
	first, _ := sched.NextOccurrence(at(2025, 1, 2, 0, 0), time.UTC, 0)
	if want := at(2025, 1, 4, 9, 0); !first.Equal(want) {
		t.Errorf("got %v, want %v", first, want)
	}
}

func TestNextOccurrenceMonthly(t *testing.T) {
	sched := dose.Schedule{
		Name:      "monthly",
		Frequency: dose.NewMonthly(31),
		Times:     dose.NewTimeOfDaySet(nt(8, 0)),
	}
	// From the end of January the 31st of March is beyond the default
	// horizon and February has no 31st: nothing is due.
	if when, ok := sched.NextOccurrence(at(2025, 1, 31, 9, 0), time.UTC, 0); ok {
		t.Errorf("unexpected occurrence: %v", when)
	}
	// From the start of March the 31st is within the horizon.
	when, ok := sched.NextOccurrence(at(2025, 3, 1, 9, 0), time.UTC, 0)
	if !ok {
		t.Fatal("no occurrence")
	}
	if want := at(2025, 3, 31, 8, 0); !when.Equal(want) {
		t.Errorf("got %v, want %v", when, want)
	}
	// A widened horizon finds the March date from January too.
	when, ok = sched.NextOccurrence(at(2025, 1, 31, 9, 0), time.UTC, 90)
	if !ok {
		t.Fatal("no occurrence")
	}
	if want := at(2025, 3, 31, 8, 0); !when.Equal(want) {
		t.Errorf("got %v, want %v", when, want)
	}
}

func TestNextOccurrenceMonotonic(t *testing.T) {
	for i, sched := range []dose.Schedule{
		daily(nt(8, 0), nt(14, 0), nt(20, 0)),
		{Name: "w", Frequency: dose.NewWeekly(time.Sunday), Times: dose.NewTimeOfDaySet(nt(7, 15))},
		{Name: "i", Frequency: dose.NewInterval(5, nd(2025, 1, 3)), Times: dose.NewTimeOfDaySet(nt(10, 0), nt(22, 0))},
	} {
		from := at(2025, 1, 1, 6, 30)
		for j := 0; j < 20; j++ {
			when, ok := sched.NextOccurrence(from, time.UTC, 0)
			if !ok {
				t.Fatalf("%v/%v: no occurrence", i, j)
			}
			if !when.After(from) {
				t.Errorf("%v/%v: %v does not advance past %v", i, j, when, from)
			}
			from = when
		}
	}
}

func TestNextOccurrenceDailyBound(t *testing.T) {
	// A daily schedule is never more than 24h past 'from' plus the
	// latest configured time of day.
	sched := daily(nt(6, 0), nt(23, 45))
	for h := 0; h < 24; h++ {
		from := at(2025, 1, 4, h, 17)
		when, ok := sched.NextOccurrence(from, time.UTC, 0)
		if !ok {
			t.Fatalf("%v: no occurrence", h)
		}
		if limit := from.Add(24*time.Hour + 23*time.Hour + 45*time.Minute); when.After(limit) {
			t.Errorf("%v: %v later than %v", h, when, limit)
		}
	}
}

func TestNextOccurrenceNoTimes(t *testing.T) {
	sched := dose.Schedule{Name: "empty", Frequency: dose.NewDaily()}
	if when, ok := sched.NextOccurrence(at(2025, 1, 4, 9, 0), time.UTC, 0); ok {
		t.Errorf("unexpected occurrence: %v", when)
	}
}

func TestNextFireTime(t *testing.T) {
	sched := daily(nt(20, 0))
	sched.LeadTime = 10 * time.Minute

	fire, due, ok := sched.NextFireTime(at(2025, 1, 4, 9, 0), time.UTC, 0)
	if !ok {
		t.Fatal("no occurrence")
	}
	if want := at(2025, 1, 4, 19, 50); !fire.Equal(want) {
		t.Errorf("got %v, want %v", fire, want)
	}
	if want := at(2025, 1, 4, 20, 0); !due.Equal(want) {
		t.Errorf("got %v, want %v", due, want)
	}

	// Lead time already elapsed: fall back to the occurrence itself.
	fire, due, ok = sched.NextFireTime(at(2025, 1, 4, 19, 55), time.UTC, 0)
	if !ok {
		t.Fatal("no occurrence")
	}
	if !fire.Equal(due) {
		t.Errorf("got %v, want %v", fire, due)
	}
	if want := at(2025, 1, 4, 20, 0); !due.Equal(want) {
		t.Errorf("got %v, want %v", due, want)
	}
}
