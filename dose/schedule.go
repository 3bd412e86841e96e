// Copyright 2025 Eli Samuel. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package dose

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"cloudeng.io/datetime"
	"cloudeng.io/errors"
)

// FrequencyKind discriminates the supported recurrence rules. The set is
// closed: the resolver switches exhaustively over it and treats any other
// value as invalid.
type FrequencyKind int

const (
	// Daily schedules are active every calendar day.
	Daily FrequencyKind = iota + 1
	// Weekly schedules are active on a set of weekdays.
	Weekly
	// Interval schedules are active every N days counted from an anchor date.
	Interval
	// Monthly schedules are active on a specific day of the month.
	Monthly
)

func (k FrequencyKind) String() string {
	switch k {
	case Daily:
		return "daily"
	case Weekly:
		return "weekly"
	case Interval:
		return "interval"
	case Monthly:
		return "monthly"
	}
	return fmt.Sprintf("unknown(%d)", int(k))
}

// WeekdaySet is a set of time.Weekday values.
type WeekdaySet uint8

// NewWeekdaySet returns a set containing the supplied weekdays.
func NewWeekdaySet(days ...time.Weekday) WeekdaySet {
	var s WeekdaySet
	for _, d := range days {
		s |= 1 << uint(d)
	}
	return s
}

func (s WeekdaySet) Contains(d time.Weekday) bool {
	return s&(1<<uint(d)) != 0
}

func (s WeekdaySet) Empty() bool {
	return s == 0
}

// Days returns the members of the set in time.Weekday order, ie. starting
// with Sunday.
func (s WeekdaySet) Days() []time.Weekday {
	days := make([]time.Weekday, 0, 7)
	for d := time.Sunday; d <= time.Saturday; d++ {
		if s.Contains(d) {
			days = append(days, d)
		}
	}
	return days
}

func (s WeekdaySet) String() string {
	names := make([]string, 0, 7)
	for _, d := range s.Days() {
		names = append(names, strings.ToLower(d.String()[:3]))
	}
	return strings.Join(names, ",")
}

// ParseWeekday parses a weekday name, accepting both full names and
// three letter abbreviations, case insensitively.
func ParseWeekday(v string) (time.Weekday, error) {
	v = strings.ToLower(strings.TrimSpace(v))
	for d := time.Sunday; d <= time.Saturday; d++ {
		n := strings.ToLower(d.String())
		if v == n || v == n[:3] {
			return d, nil
		}
	}
	return 0, fmt.Errorf("invalid weekday: %q", v)
}

// Frequency describes which calendar days a schedule is active on. It is
// a tagged value: Kind selects the rule and only the fields for that rule
// are meaningful.
type Frequency struct {
	Kind FrequencyKind

	// Weekly.
	Days WeekdaySet

	// Interval.
	Every  int
	Anchor datetime.CalendarDate

	// Monthly.
	Day int
}

// NewDaily returns a frequency that is active every day.
func NewDaily() Frequency {
	return Frequency{Kind: Daily}
}

// NewWeekly returns a frequency active on the supplied weekdays.
func NewWeekly(days ...time.Weekday) Frequency {
	return Frequency{Kind: Weekly, Days: NewWeekdaySet(days...)}
}

// NewInterval returns a frequency active every 'every' days counted from
// the anchor date.
func NewInterval(every int, anchor datetime.CalendarDate) Frequency {
	return Frequency{Kind: Interval, Every: every, Anchor: anchor}
}

// NewMonthly returns a frequency active on the supplied day of the month.
// Months that do not contain that day have no active day (no clamping).
func NewMonthly(day int) Frequency {
	return Frequency{Kind: Monthly, Day: day}
}

func (f Frequency) String() string {
	switch f.Kind {
	case Daily:
		return "daily"
	case Weekly:
		return "weekly " + f.Days.String()
	case Interval:
		return fmt.Sprintf("every %d days from %v", f.Every, f.Anchor)
	case Monthly:
		return fmt.Sprintf("monthly %d", f.Day)
	}
	return f.Kind.String()
}

func (f Frequency) validate() error {
	switch f.Kind {
	case Daily:
		return nil
	case Weekly:
		if f.Days.Empty() {
			return fmt.Errorf("weekly frequency with no weekdays")
		}
		return nil
	case Interval:
		if f.Every < 1 {
			return fmt.Errorf("interval must be at least one day: %d", f.Every)
		}
		if f.Anchor == datetime.NewCalendarDate(0, 0, 0) {
			return fmt.Errorf("interval frequency with no anchor date")
		}
		return nil
	case Monthly:
		if f.Day < 1 || f.Day > 31 {
			return fmt.Errorf("day of month out of range: %d", f.Day)
		}
		return nil
	}
	return fmt.Errorf("invalid frequency kind: %v", f.Kind)
}

// TimeOfDaySet is an ordered, de-duplicated set of times of day. The zero
// value is an empty set. Mutations preserve the sorted/unique invariant.
type TimeOfDaySet []datetime.TimeOfDay

// NewTimeOfDaySet returns a set containing the supplied times, sorted and
// de-duplicated.
func NewTimeOfDaySet(times ...datetime.TimeOfDay) TimeOfDaySet {
	s := TimeOfDaySet{}
	for _, t := range times {
		s.Add(t)
	}
	return s
}

func (s TimeOfDaySet) Contains(t datetime.TimeOfDay) bool {
	_, found := slices.BinarySearch(s, t)
	return found
}

// Add inserts t, keeping the set sorted. Adding an existing member is a
// no-op.
func (s *TimeOfDaySet) Add(t datetime.TimeOfDay) {
	i, found := slices.BinarySearch(*s, t)
	if found {
		return
	}
	*s = slices.Insert(*s, i, t)
}

// Remove deletes t from the set if present.
func (s *TimeOfDaySet) Remove(t datetime.TimeOfDay) {
	i, found := slices.BinarySearch(*s, t)
	if !found {
		return
	}
	*s = slices.Delete(*s, i, i+1)
}

// Replace substitutes newer for older. Replacing with an existing member
// collapses the two entries into one.
func (s *TimeOfDaySet) Replace(older, newer datetime.TimeOfDay) {
	s.Remove(older)
	s.Add(newer)
}

func (s TimeOfDaySet) String() string {
	parts := make([]string, len(s))
	for i, t := range s {
		parts[i] = t.String()
	}
	return strings.Join(parts, ",")
}

// Schedule is a recurring dosing rule: a frequency plus the times of day
// the dose is due on active days. Name doubles as the owner ID for any
// reminder armed on the schedule's behalf.
type Schedule struct {
	Name      string
	Frequency Frequency
	Times     TimeOfDaySet
	// LeadTime is subtracted from an occurrence to produce the reminder
	// fire time.
	LeadTime time.Duration
}

func (s Schedule) String() string {
	out := fmt.Sprintf("%v: %v at %v", s.Name, s.Frequency, s.Times)
	if s.LeadTime > 0 {
		out += fmt.Sprintf(" (reminder %v early)", s.LeadTime)
	}
	return out
}

// Validate reports every violation that would make the schedule
// unsaveable, not just the first.
func (s Schedule) Validate() error {
	var errs errors.M
	if len(s.Name) == 0 {
		errs.Append(fmt.Errorf("schedule with no name"))
	}
	if err := s.Frequency.validate(); err != nil {
		errs.Append(fmt.Errorf("schedule %q: %w", s.Name, err))
	}
	if len(s.Times) == 0 {
		errs.Append(fmt.Errorf("schedule %q: no times of day", s.Name))
	}
	if s.LeadTime < 0 {
		errs.Append(fmt.Errorf("schedule %q: negative lead time", s.Name))
	}
	return errs.Err()
}
