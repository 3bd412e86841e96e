// Copyright 2025 Eli Samuel. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/esamuel/dosecal/dose"
	"github.com/esamuel/dosecal/fasting"
)

type ConfigFileFlags struct {
	ScheduleFile string `subcmd:"schedules,$HOME/.dosecal-schedules.yaml,path to a file containing the dose schedules"`
	FastingFile  string `subcmd:"fasting,,path to a file containing the fasting cycle configuration"`
	TZLocation   string `subcmd:"tz,,timezone in which schedules are evaluated"`
}

func loadLocation(fv *ConfigFileFlags) (*time.Location, error) {
	if fv.TZLocation == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(fv.TZLocation)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone: %q: %v", fv.TZLocation, err)
	}
	return loc, nil
}

func loadSchedules(ctx context.Context, fv *ConfigFileFlags) (dose.Schedules, error) {
	if fv.ScheduleFile == "" {
		return dose.Schedules{}, fmt.Errorf("no schedule file specified")
	}
	scheds, err := dose.ParseConfigFile(ctx, fv.ScheduleFile)
	if err != nil {
		return dose.Schedules{}, fmt.Errorf("failed to parse schedule file: %q: %v", fv.ScheduleFile, err)
	}
	return scheds, nil
}

func loadFasting(ctx context.Context, fv *ConfigFileFlags) (fasting.Config, error) {
	if fv.FastingFile == "" {
		return fasting.Config{}, fmt.Errorf("no fasting file specified")
	}
	cfg, err := fasting.ParseConfigFile(ctx, fv.FastingFile)
	if err != nil {
		return fasting.Config{}, fmt.Errorf("failed to parse fasting file: %q: %v", fv.FastingFile, err)
	}
	return cfg, nil
}

// selectSchedules filters scheds down to the named schedules, or returns
// them all when no names are given.
func selectSchedules(scheds dose.Schedules, names []string) (dose.Schedules, error) {
	if len(names) == 0 {
		return scheds, nil
	}
	var out dose.Schedules
	for _, name := range names {
		sched := scheds.Lookup(name)
		if sched.Name == "" {
			return dose.Schedules{}, fmt.Errorf("unknown schedule: %q", name)
		}
		out.Schedules = append(out.Schedules, sched)
	}
	return out, nil
}

// parseAt interprets the --at flag, defaulting to the current time in
// loc.
func parseAt(at string, loc *time.Location) (time.Time, error) {
	if at == "" {
		return time.Now().In(loc), nil
	}
	when, err := time.ParseInLocation(time.RFC3339, at, loc)
	if err == nil {
		return when, nil
	}
	when, err = time.ParseInLocation("2006-01-02 15:04", at, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid time: %q: use RFC3339 or 2006-01-02 15:04", at)
	}
	return when, nil
}

func newLogfile(logfile string) (*os.File, error) {
	return os.OpenFile(logfile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0600)
}

func setupLogging(logfile string) (*slog.Logger, func(), error) {
	if len(logfile) == 0 {
		return slog.New(slog.NewJSONHandler(os.Stderr, nil)), func() {}, nil
	}
	f, err := newLogfile(logfile)
	if err != nil {
		return nil, func() {}, err
	}
	l := slog.New(slog.NewJSONHandler(f, nil))
	return l, func() { f.Close() }, nil
}
