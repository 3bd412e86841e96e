// Copyright 2025 Eli Samuel. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"fmt"
	"io"

	"github.com/esamuel/dosecal/fasting"
	"github.com/esamuel/dosecal/internal/logging"
	"github.com/esamuel/dosecal/notify"
	"github.com/esamuel/dosecal/reminder"
)

type RemindStatusFlags struct {
	ConfigFileFlags
	LogFile     string `subcmd:"log-file,,log file"`
	HorizonDays int    `subcmd:"horizon-days,0,days to search ahead for the next occurrence"`
}

type Remind struct {
	out io.Writer
}

func (r *Remind) Status(ctx context.Context, flags any, args []string) error {
	fv := flags.(*RemindStatusFlags)
	loc, err := loadLocation(&fv.ConfigFileFlags)
	if err != nil {
		return err
	}
	scheds, err := loadSchedules(ctx, &fv.ConfigFileFlags)
	if err != nil {
		return err
	}
	if fv.FastingFile != "" {
		cfg, err := loadFasting(ctx, &fv.ConfigFileFlags)
		if err != nil {
			return err
		}
		scheds.Schedules = append(scheds.Schedules, cfg.Schedules(loc).Schedules...)
	}

	logger, cleanup, err := setupLogging(fv.LogFile)
	if err != nil {
		return err
	}
	defer cleanup()

	sr := logging.NewStatusRecorder()
	scheduler := reminder.New(notify.NewMemStore(),
		reminder.WithLogger(logger),
		reminder.WithStatusRecorder(sr),
		reminder.WithTimeLocation(loc),
		reminder.WithHorizonDays(fv.HorizonDays),
		reminder.WithPayload(fasting.Payload(reminder.MedicationPayload)),
	)
	if err := scheduler.ArmAll(ctx, scheds); err != nil {
		return err
	}

	tm := tableManager{}
	fmt.Fprintln(r.out, tm.ArmedStatus(sr).Render())
	return nil
}
