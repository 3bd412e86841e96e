// Copyright 2025 Eli Samuel. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package dose

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"cloudeng.io/cmdutil/cmdyaml"
	"cloudeng.io/datetime"
	"gopkg.in/yaml.v3"
)

// ParseFrequency parses the textual frequency spellings used in schedule
// files:
//
//	daily
//	weekly mon,wed,fri
//	every 3 days from 2025/06/01
//	monthly 15
func ParseFrequency(v string) (Frequency, error) {
	fields := strings.Fields(strings.TrimSpace(v))
	if len(fields) == 0 {
		return Frequency{}, fmt.Errorf("empty frequency")
	}
	switch fields[0] {
	case "daily":
		if len(fields) != 1 {
			return Frequency{}, fmt.Errorf("invalid frequency: %q", v)
		}
		return NewDaily(), nil
	case "weekly":
		if len(fields) != 2 {
			return Frequency{}, fmt.Errorf("weekly frequency requires a day list: %q", v)
		}
		var days []time.Weekday
		for _, p := range strings.Split(fields[1], ",") {
			d, err := ParseWeekday(p)
			if err != nil {
				return Frequency{}, err
			}
			days = append(days, d)
		}
		return NewWeekly(days...), nil
	case "every":
		// every <n> days from <year>/<month>/<day>
		if len(fields) != 5 || fields[2] != "days" || fields[3] != "from" {
			return Frequency{}, fmt.Errorf("invalid interval frequency: %q", v)
		}
		every, err := strconv.Atoi(fields[1])
		if err != nil {
			return Frequency{}, fmt.Errorf("invalid interval: %q", fields[1])
		}
		var anchor datetime.CalendarDate
		if err := anchor.Parse(fields[4]); err != nil {
			return Frequency{}, fmt.Errorf("invalid anchor date: %q: %w", fields[4], err)
		}
		return NewInterval(every, anchor), nil
	case "monthly":
		if len(fields) != 2 {
			return Frequency{}, fmt.Errorf("monthly frequency requires a day of month: %q", v)
		}
		day, err := strconv.Atoi(fields[1])
		if err != nil {
			return Frequency{}, fmt.Errorf("invalid day of month: %q", fields[1])
		}
		return NewMonthly(day), nil
	}
	return Frequency{}, fmt.Errorf("unknown frequency: %q", v)
}

type frequencySpec struct {
	Frequency
}

func (f *frequencySpec) UnmarshalYAML(node *yaml.Node) error {
	freq, err := ParseFrequency(node.Value)
	if err != nil {
		return err
	}
	f.Frequency = freq
	return nil
}

type timesSpec struct {
	TimeOfDaySet
}

func (t *timesSpec) UnmarshalYAML(node *yaml.Node) error {
	for _, p := range strings.Split(node.Value, ",") {
		var tod datetime.TimeOfDay
		if err := tod.Parse(strings.TrimSpace(p)); err != nil {
			return err
		}
		t.Add(tod)
	}
	return nil
}

type scheduleConfig struct {
	Name      string        `yaml:"name" cmd:"the name of the medication or recurring item"`
	Frequency frequencySpec `yaml:"frequency" cmd:"daily, weekly <days>, every <n> days from <date>, or monthly <day>"`
	Times     timesSpec     `yaml:"times" cmd:"comma separated times of day, eg: 08:00,20:00"`
	LeadTime  int           `yaml:"lead_time" cmd:"minutes before a dose that its reminder fires"`
}

type schedulesConfig struct {
	Schedules []scheduleConfig `yaml:"schedules" cmd:"the dose schedules"`
}

// Schedules is the parsed form of a schedules config file.
type Schedules struct {
	Schedules []Schedule
}

// Lookup returns the named schedule, or the zero schedule if it is not
// present.
func (s Schedules) Lookup(name string) Schedule {
	for _, sched := range s.Schedules {
		if sched.Name == name {
			return sched
		}
	}
	return Schedule{}
}

func (cfg schedulesConfig) createSchedules() (Schedules, error) {
	var scheds Schedules
	names := map[string]struct{}{}
	for _, csched := range cfg.Schedules {
		if _, ok := names[csched.Name]; ok {
			return Schedules{}, fmt.Errorf("duplicate schedule name: %v", csched.Name)
		}
		names[csched.Name] = struct{}{}
		sched := Schedule{
			Name:      csched.Name,
			Frequency: csched.Frequency.Frequency,
			Times:     csched.Times.TimeOfDaySet,
			LeadTime:  time.Duration(csched.LeadTime) * time.Minute,
		}
		if err := sched.Validate(); err != nil {
			return Schedules{}, err
		}
		scheds.Schedules = append(scheds.Schedules, sched)
	}
	return scheds, nil
}

// ParseConfigFile parses a schedules config file.
func ParseConfigFile(ctx context.Context, cfgFile string) (Schedules, error) {
	var cfg schedulesConfig
	if err := cmdyaml.ParseConfigFile(ctx, cfgFile, &cfg); err != nil {
		return Schedules{}, err
	}
	return cfg.createSchedules()
}

// ParseConfig parses schedules config data.
func ParseConfig(cfgData []byte) (Schedules, error) {
	var cfg schedulesConfig
	if err := yaml.Unmarshal(cfgData, &cfg); err != nil {
		return Schedules{}, err
	}
	return cfg.createSchedules()
}
