// Copyright 2025 Eli Samuel. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package fasting

import (
	"context"
	"fmt"
	"time"

	"cloudeng.io/cmdutil/cmdyaml"
	"cloudeng.io/datetime"
	"github.com/esamuel/dosecal/dose"
	"github.com/esamuel/dosecal/notify"
	"gopkg.in/yaml.v3"
)

// Protocol names a preset fasting/eating split.
type Protocol int

const (
	// TwelveTwelve fasts for 12 hours and eats within a 12 hour window.
	TwelveTwelve Protocol = iota + 1
	// FourteenTen fasts for 14 hours and eats within a 10 hour window.
	FourteenTen
	// SixteenEight fasts for 16 hours and eats within an 8 hour window.
	SixteenEight
	// Custom uses explicitly configured phase lengths.
	Custom
)

func (p Protocol) String() string {
	switch p {
	case TwelveTwelve:
		return "12:12"
	case FourteenTen:
		return "14:10"
	case SixteenEight:
		return "16:8"
	case Custom:
		return "custom"
	}
	return fmt.Sprintf("unknown(%d)", int(p))
}

// ParseProtocol parses a protocol preset name as written in config files.
func ParseProtocol(v string) (Protocol, error) {
	switch v {
	case "12:12":
		return TwelveTwelve, nil
	case "14:10":
		return FourteenTen, nil
	case "16:8":
		return SixteenEight, nil
	case "custom":
		return Custom, nil
	}
	return 0, fmt.Errorf("unknown fasting protocol: %q", v)
}

// Cycle returns the preset's cycle anchored at the supplied reference
// time of day. Custom has no preset lengths and panics; custom cycles are
// constructed directly.
func (p Protocol) Cycle(reference datetime.TimeOfDay) Cycle {
	var fasting time.Duration
	switch p {
	case TwelveTwelve:
		fasting = 12 * time.Hour
	case FourteenTen:
		fasting = 14 * time.Hour
	case SixteenEight:
		fasting = 16 * time.Hour
	default:
		panic(fmt.Sprintf("no preset cycle for protocol %v", p))
	}
	return Cycle{
		FastingFor: fasting,
		EatingFor:  Period - fasting,
		Reference:  reference,
	}
}

type protocolSpec struct {
	Protocol
}

func (p *protocolSpec) UnmarshalYAML(node *yaml.Node) error {
	proto, err := ParseProtocol(node.Value)
	if err != nil {
		return err
	}
	p.Protocol = proto
	return nil
}

type timeOfDaySpec struct {
	datetime.TimeOfDay
}

func (t *timeOfDaySpec) UnmarshalYAML(node *yaml.Node) error {
	return t.TimeOfDay.Parse(node.Value)
}

type cycleConfig struct {
	Protocol       protocolSpec  `yaml:"protocol" cmd:"one of 12:12, 14:10, 16:8 or custom"`
	FastingHours   int           `yaml:"fasting_hours" cmd:"fasting phase length for a custom protocol"`
	EatingHours    int           `yaml:"eating_hours" cmd:"eating phase length for a custom protocol"`
	Reference      timeOfDaySpec `yaml:"last_meal" cmd:"time of day of the last meal, when fasting begins"`
	PreFastWarning int           `yaml:"prefast_warning" cmd:"minutes of warning before the eating window closes"`
}

// Config is the parsed form of a fasting config file: the cycle plus the
// reminder schedules derived from its phase boundaries.
type Config struct {
	Cycle          Cycle
	PreFastWarning time.Duration
}

func (cfg cycleConfig) createConfig() (Config, error) {
	var c Cycle
	switch cfg.Protocol.Protocol {
	case 0:
		return Config{}, fmt.Errorf("no fasting protocol specified")
	case Custom:
		c = Cycle{
			FastingFor: time.Duration(cfg.FastingHours) * time.Hour,
			EatingFor:  time.Duration(cfg.EatingHours) * time.Hour,
			Reference:  cfg.Reference.TimeOfDay,
		}
	default:
		c = cfg.Protocol.Cycle(cfg.Reference.TimeOfDay)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	if cfg.PreFastWarning < 0 {
		return Config{}, fmt.Errorf("negative prefast warning: %d", cfg.PreFastWarning)
	}
	return Config{
		Cycle:          c,
		PreFastWarning: time.Duration(cfg.PreFastWarning) * time.Minute,
	}, nil
}

// ParseConfigFile parses a fasting config file.
func ParseConfigFile(ctx context.Context, cfgFile string) (Config, error) {
	var cfg cycleConfig
	if err := cmdyaml.ParseConfigFile(ctx, cfgFile, &cfg); err != nil {
		return Config{}, err
	}
	return cfg.createConfig()
}

// ParseConfig parses fasting config data.
func ParseConfig(cfgData []byte) (Config, error) {
	var cfg cycleConfig
	if err := yaml.Unmarshal(cfgData, &cfg); err != nil {
		return Config{}, err
	}
	return cfg.createConfig()
}

// Owner IDs for the reminders derived from the cycle's phase boundaries.
const (
	WindowOpenOwner  = "fasting:window-open"
	WindowCloseOwner = "fasting:window-close"
)

// Schedules expresses the cycle's phase boundaries as daily dose
// schedules so they can be armed through the reminder scheduler: one at
// the start of the eating window and one at its close, the latter with
// the configured pre-fast warning as its lead time.
func (cfg Config) Schedules(loc *time.Location) dose.Schedules {
	day := datetime.NewCalendarDate(2024, 1, 1) // any date, only the time of day survives
	ref := day.Time(cfg.Cycle.Reference, loc)
	open := datetime.TimeOfDayFromTime(ref.Add(cfg.Cycle.FastingFor))
	return dose.Schedules{
		Schedules: []dose.Schedule{
			{
				Name:      WindowOpenOwner,
				Frequency: dose.NewDaily(),
				Times:     dose.NewTimeOfDaySet(open),
			},
			{
				Name:      WindowCloseOwner,
				Frequency: dose.NewDaily(),
				Times:     dose.NewTimeOfDaySet(cfg.Cycle.Reference),
				LeadTime:  cfg.PreFastWarning,
			},
		},
	}
}

// Payload returns the notification content for the cycle boundary
// reminders, delegating any other owner to the fallback.
func Payload(fallback func(dose.Schedule) notify.Payload) func(dose.Schedule) notify.Payload {
	return func(sched dose.Schedule) notify.Payload {
		switch sched.Name {
		case WindowOpenOwner:
			return notify.Payload{Title: "Meal Window", Body: "You can eat now."}
		case WindowCloseOwner:
			return notify.Payload{Title: "Fasting Reminder", Body: "It's almost time to stop eating."}
		}
		return fallback(sched)
	}
}
