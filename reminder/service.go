// Copyright 2025 Eli Samuel. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package reminder

import (
	"context"

	"cloudeng.io/sync/errgroup"
	"github.com/esamuel/dosecal/dose"
)

// ArmAll (re)arms every schedule concurrently. Schedules are independent
// owners, so their arms may proceed in parallel; the per-owner locking in
// Arm still serializes any concurrent arms for a single owner.
func (s *Scheduler) ArmAll(ctx context.Context, scheds dose.Schedules) error {
	var g errgroup.T
	for _, sched := range scheds.Schedules {
		g.Go(func() error {
			_, _, err := s.Arm(ctx, sched)
			return err
		})
	}
	return g.Wait()
}

// DisarmAll cancels every schedule's reminder, eg. when reminders are
// disabled wholesale.
func (s *Scheduler) DisarmAll(ctx context.Context, scheds dose.Schedules) error {
	var g errgroup.T
	for _, sched := range scheds.Schedules {
		g.Go(func() error {
			return s.Disarm(ctx, sched.Name)
		})
	}
	return g.Wait()
}
