// Copyright 2025 Eli Samuel. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"fmt"
	"io"

	"github.com/esamuel/dosecal/fasting"
)

type FastStatusFlags struct {
	ConfigFileFlags
	At string `subcmd:"at,,time to evaluate instead of the current time"`
}

type Fast struct {
	out io.Writer
}

func (f *Fast) Status(ctx context.Context, flags any, args []string) error {
	fv := flags.(*FastStatusFlags)
	loc, err := loadLocation(&fv.ConfigFileFlags)
	if err != nil {
		return err
	}
	cfg, err := loadFasting(ctx, &fv.ConfigFileFlags)
	if err != nil {
		return err
	}
	now, err := parseAt(fv.At, loc)
	if err != nil {
		return err
	}

	tm := tableManager{}
	fmt.Fprintln(f.out, tm.FastingStatus(cfg.Cycle, now).Render())
	st := cfg.Cycle.StateAt(now)
	fmt.Fprintf(f.out, "progress ring sweep: %.1f°\n", fasting.ProgressAngle(st.PercentRemaining))
	return nil
}
