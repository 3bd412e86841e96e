// Copyright 2025 Eli Samuel. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package main

import (
	"time"

	"cloudeng.io/datetime"
	"github.com/esamuel/dosecal/dose"
	"github.com/esamuel/dosecal/fasting"
	"github.com/esamuel/dosecal/internal/logging"
	"github.com/jedib0t/go-pretty/v6/table"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

type tableManager struct{}

var titleCase = cases.Title(language.English)

// Calendar renders every dose due on every day in dr, one row per dose,
// grouped by day.
func (tm tableManager) Calendar(scheds dose.Schedules, dr datetime.CalendarDateRange, loc *time.Location) table.Writer {
	tw := table.NewWriter()
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, AutoMerge: true},
	})
	tw.AppendHeader(table.Row{"Date", "Time", "Schedule", "Frequency"})
	for day := range dr.Dates() {
		for _, sched := range scheds.Schedules {
			if !sched.ActiveOn(day, loc) {
				continue
			}
			for _, tod := range sched.Times {
				tw.AppendRow(table.Row{day, tod, titleCase.String(sched.Name), sched.Frequency})
			}
		}
		tw.AppendSeparator()
	}
	return tw
}

func (tm tableManager) NextOccurrences(scheds dose.Schedules, from time.Time, loc *time.Location) table.Writer {
	tw := table.NewWriter()
	tw.AppendHeader(table.Row{"Schedule", "Due", "Reminder", "In"})
	for _, sched := range scheds.Schedules {
		fire, due, ok := sched.NextFireTime(from, loc, 0)
		if !ok {
			tw.AppendRow(table.Row{titleCase.String(sched.Name), "nothing due", "", ""})
			continue
		}
		tw.AppendRow(table.Row{
			titleCase.String(sched.Name),
			due.Format(time.DateTime),
			fire.Format(time.DateTime),
			due.Sub(from).Round(time.Minute),
		})
	}
	return tw
}

// ArmedStatus renders the recorder's armed and resolved reminders.
func (tm tableManager) ArmedStatus(sr *logging.StatusRecorder) table.Writer {
	tw := table.NewWriter()
	tw.AppendHeader(table.Row{"Owner", "Status", "Fires At", "Due At", "Error"})
	for rec := range sr.Armed() {
		tw.AppendRow(table.Row{rec.Owner, rec.Status(), rec.Fire.Format(time.DateTime), rec.Due.Format(time.DateTime), ""})
	}
	for rec := range sr.Resolved() {
		fire, due := "", ""
		if !rec.Fire.IsZero() {
			fire = rec.Fire.Format(time.DateTime)
		}
		if !rec.Due.IsZero() {
			due = rec.Due.Format(time.DateTime)
		}
		tw.AppendRow(table.Row{rec.Owner, rec.Status(), fire, due, rec.ErrorMessage()})
	}
	return tw
}

// FastingStatus renders the cycle state at 'now' as a single row.
func (tm tableManager) FastingStatus(cycle fasting.Cycle, now time.Time) table.Writer {
	st := cycle.StateAt(now)
	start, end := cycle.Window(now)
	tw := table.NewWriter()
	tw.AppendHeader(table.Row{"Phase", "Elapsed", "Remaining", "% Left", "Eating From", "Eating Until"})
	tw.AppendRow(table.Row{
		titleCase.String(st.Phase.String()),
		st.Elapsed,
		st.Remaining,
		st.PercentRemaining,
		start.Format(time.DateTime),
		end.Format(time.DateTime),
	})
	return tw
}
