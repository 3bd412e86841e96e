// Copyright 2025 Eli Samuel. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"fmt"
	"io"
)

type ConfigFlags struct {
	ConfigFileFlags
}

type Config struct {
	out io.Writer
}

func (c *Config) Display(ctx context.Context, flags any, args []string) error {
	fv := flags.(*ConfigFlags)
	loc, err := loadLocation(&fv.ConfigFileFlags)
	if err != nil {
		return err
	}

	scheds, err := loadSchedules(ctx, &fv.ConfigFileFlags)
	if err != nil {
		return err
	}
	fmt.Fprintf(c.out, "Schedules:\n")
	for _, sched := range scheds.Schedules {
		fmt.Fprintf(c.out, "  %v\n", sched)
	}

	if fv.FastingFile == "" {
		return nil
	}
	cfg, err := loadFasting(ctx, &fv.ConfigFileFlags)
	if err != nil {
		return err
	}
	fmt.Fprintf(c.out, "\nFasting:\n")
	fmt.Fprintf(c.out, "  fasting for: %v\n", cfg.Cycle.FastingFor)
	fmt.Fprintf(c.out, "  eating for: %v\n", cfg.Cycle.EatingFor)
	fmt.Fprintf(c.out, "  last meal: %v\n", cfg.Cycle.Reference)
	fmt.Fprintf(c.out, "  pre-fast warning: %v\n", cfg.PreFastWarning)
	fmt.Fprintf(c.out, "\nBoundary reminders:\n")
	for _, sched := range cfg.Schedules(loc).Schedules {
		fmt.Fprintf(c.out, "  %v\n", sched)
	}
	return nil
}
