// Copyright 2025 Eli Samuel. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"errors"
	"os"

	"cloudeng.io/cmdutil"
	"cloudeng.io/cmdutil/subcmd"
)

const cmdSpec = `name: dosecal
summary: dosecal is a command line tool for inspecting dose schedules, reminders and fasting cycles
commands:
  - name: schedule
    summary: query dose schedules
    commands:
      - name: print
        summary: |
          print a calendar of scheduled doses over a date range, or the
          next two weeks if no range is specified
        arguments:
          - <schedule>... - schedule names, or all schedules if none are specified
      - name: next
        summary: print the next occurrence and reminder fire time for each schedule
        arguments:
          - <schedule>... - schedule names, or all schedules if none are specified
  - name: remind
    summary: arm and inspect reminders
    commands:
      - name: status
        summary: |
          arm a reminder for every schedule, including the fasting window
          boundaries when a fasting config is supplied, and print the
          resulting armed state
  - name: fast
    summary: query the fasting cycle
    commands:
      - name: status
        summary: print the current phase, time remaining and eating window
  - name: config
    summary: query/inspect the configuration files
    commands:
      - name: display
`

func cli() *subcmd.CommandSetYAML {
	cmd := subcmd.MustFromYAML(cmdSpec)

	schedule := &Schedule{out: os.Stdout}
	cmd.Set("schedule", "print").MustRunner(schedule.Print, &SchedulePrintFlags{})
	cmd.Set("schedule", "next").MustRunner(schedule.Next, &ScheduleNextFlags{})

	remind := &Remind{out: os.Stdout}
	cmd.Set("remind", "status").MustRunner(remind.Status, &RemindStatusFlags{})

	fast := &Fast{out: os.Stdout}
	cmd.Set("fast", "status").MustRunner(fast.Status, &FastStatusFlags{})

	config := &Config{out: os.Stdout}
	cmd.Set("config", "display").MustRunner(config.Display, &ConfigFlags{})
	return cmd
}

var errInterrupt = errors.New("interrupt")

func main() {
	ctx := context.Background()
	ctx, cancel := context.WithCancelCause(ctx)
	cmdutil.HandleSignals(func() { cancel(errInterrupt) }, os.Interrupt)
	err := cli().Dispatch(ctx)
	if context.Cause(ctx) == errInterrupt {
		cmdutil.Exit("%v", errInterrupt)
	}
	if err != nil {
		cmdutil.Exit("%v", err)
	}
}
