// Copyright 2025 Eli Samuel. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package dose

import (
	"time"

	"cloudeng.io/datetime"
)

// DefaultHorizonDays bounds how far forward NextOccurrence will search
// for an active day before reporting that nothing is due.
const DefaultHorizonDays = 30

var midnight = datetime.NewTimeOfDay(0, 0, 0)

// daysBetween returns the signed number of calendar days from a to b.
// Both days are composed at UTC midnight so the difference is an exact
// multiple of 24h regardless of any DST transitions in the caller's
// location.
func daysBetween(a, b datetime.CalendarDate) int {
	d := b.Time(midnight, time.UTC).Sub(a.Time(midnight, time.UTC))
	return int(d / (24 * time.Hour))
}

// ActiveOn reports whether the schedule's frequency makes day an active
// day. It considers only the day-level rule, not the times of day.
func (s Schedule) ActiveOn(day datetime.CalendarDate, loc *time.Location) bool {
	switch f := s.Frequency; f.Kind {
	case Daily:
		return true
	case Weekly:
		// Noon avoids any ambiguity on DST transition days.
		return f.Days.Contains(day.Time(datetime.NewTimeOfDay(12, 0, 0), loc).Weekday())
	case Interval:
		// Days before the anchor are included: normalize the modulo of
		// the signed difference into [0, every).
		m := daysBetween(f.Anchor, day) % f.Every
		if m < 0 {
			m += f.Every
		}
		return m == 0
	case Monthly:
		// Strict: a month without this day number has no active day.
		return day.Day() == f.Day
	}
	return false
}

// NextOccurrence returns the first concrete dose time strictly after
// 'from', searching at most horizonDays days ahead (DefaultHorizonDays if
// horizonDays is zero or negative). The second return value is false when
// no active day with a due time exists within the horizon; callers should
// treat that as nothing-to-arm rather than an error.
//
// A time of day exactly equal to 'from' counts as already passed, so a
// query made at dose time yields the following occurrence.
func (s Schedule) NextOccurrence(from time.Time, loc *time.Location, horizonDays int) (time.Time, bool) {
	if len(s.Times) == 0 {
		return time.Time{}, false
	}
	if horizonDays <= 0 {
		horizonDays = DefaultHorizonDays
	}
	today := datetime.CalendarDateFromTime(from.In(loc))
	if s.ActiveOn(today, loc) {
		for _, tod := range s.Times {
			if when := today.Time(tod, loc); when.After(from) {
				return when, true
			}
		}
	}
	// All of today's times have passed, or today is inactive: take the
	// earliest time of the first active day ahead.
	first := datetime.CalendarDateFromTime(from.In(loc).AddDate(0, 0, 1))
	last := datetime.CalendarDateFromTime(from.In(loc).AddDate(0, 0, horizonDays))
	for day := range datetime.NewCalendarDateRange(first, last).Dates() {
		if s.ActiveOn(day, loc) {
			return day.Time(s.Times[0], loc), true
		}
	}
	return time.Time{}, false
}

// NextFireTime returns the reminder fire time for the next occurrence,
// ie. the occurrence less the schedule's lead time. A lead time that has
// already elapsed falls back to the occurrence itself so that a dose due
// sooner than the lead time is never dropped. The occurrence is returned
// alongside the fire time.
func (s Schedule) NextFireTime(from time.Time, loc *time.Location, horizonDays int) (fire, due time.Time, ok bool) {
	due, ok = s.NextOccurrence(from, loc, horizonDays)
	if !ok {
		return time.Time{}, time.Time{}, false
	}
	fire = due.Add(-s.LeadTime)
	if !fire.After(from) {
		fire = due
	}
	return fire, due, true
}
