// Copyright 2025 Eli Samuel. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"cloudeng.io/datetime"
)

type SchedulePrintFlags struct {
	ConfigFileFlags
	DateRange string `subcmd:"date-range,,date range in <year>/<month>/<day>:<year>/<month>/<day> format"`
}

type ScheduleNextFlags struct {
	ConfigFileFlags
	At string `subcmd:"at,,time to evaluate from instead of the current time"`
}

type Schedule struct {
	out io.Writer
}

func (s *Schedule) Print(ctx context.Context, flags any, args []string) error {
	fv := flags.(*SchedulePrintFlags)
	loc, err := loadLocation(&fv.ConfigFileFlags)
	if err != nil {
		return err
	}
	scheds, err := loadSchedules(ctx, &fv.ConfigFileFlags)
	if err != nil {
		return err
	}
	scheds, err = selectSchedules(scheds, args)
	if err != nil {
		return err
	}

	var dr datetime.CalendarDateRange
	if fv.DateRange != "" {
		if err := dr.Parse(fv.DateRange); err != nil {
			return err
		}
	} else {
		now := time.Now().In(loc)
		dr = datetime.NewCalendarDateRange(
			datetime.CalendarDateFromTime(now),
			datetime.CalendarDateFromTime(now.AddDate(0, 0, 13)))
	}

	tm := tableManager{}
	fmt.Fprintln(s.out, tm.Calendar(scheds, dr, loc).Render())
	return nil
}

func (s *Schedule) Next(ctx context.Context, flags any, args []string) error {
	fv := flags.(*ScheduleNextFlags)
	loc, err := loadLocation(&fv.ConfigFileFlags)
	if err != nil {
		return err
	}
	scheds, err := loadSchedules(ctx, &fv.ConfigFileFlags)
	if err != nil {
		return err
	}
	scheds, err = selectSchedules(scheds, args)
	if err != nil {
		return err
	}
	from, err := parseAt(fv.At, loc)
	if err != nil {
		return err
	}

	tm := tableManager{}
	fmt.Fprintln(s.out, tm.NextOccurrences(scheds, from, loc).Render())
	return nil
}
