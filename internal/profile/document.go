// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Svetlana Sibiryakova

// Package profile persists mouse configuration profiles as a JSON document
// in the user's configuration directory.
package profile

import (
	"fmt"
	"strconv"

	"github.com/pulsar-tools/pulsarctl/pkg/pulsar"
)

// Button is one button binding: the action name plus its wire code.
type Button struct {
	Action string `json:"action"`
	Code   byte   `json:"code"`
}

// PowerSaving holds the power management options.
type PowerSaving struct {
	IdleTime            int `json:"idle_time"`             // seconds
	LowBatteryThreshold int `json:"low_battery_threshold"` // percent
}

// Profile is one complete set of mouse settings.
//
// RippleControl, AngleSnap and DebounceTime are stored but not yet wired to
// any command; the wire protocol for them is unknown.
type Profile struct {
	DPIStages       map[string]int    `json:"dpi_stages"`
	ActiveDPIStage  int               `json:"active_dpi_stage"`
	PollingRate     int               `json:"polling_rate"`
	LiftoffDistance float64           `json:"liftoff_distance"`
	Buttons         map[string]Button `json:"buttons"`
	MotionSync      bool              `json:"motion_sync"`
	RippleControl   bool              `json:"ripple_control"`
	AngleSnap       bool              `json:"angle_snap"`
	DebounceTime    int               `json:"debounce_time"` // milliseconds
	PowerSaving     PowerSaving       `json:"power_saving"`
}

// Document is the full configuration document: all profiles plus the active
// profile pointer. Profile ids are the string keys "1".."4".
type Document struct {
	Profiles      map[string]*Profile `json:"profiles"`
	ActiveProfile string              `json:"active_profile"`
}

// Default returns the canonical default document: one profile ("1") with the
// factory DPI stages, 1000 Hz polling, 1.0 mm lift-off, the five default
// button bindings, motion sync on, 3 ms debounce and 30 s idle / 10%
// battery threshold.
func Default() *Document {
	return &Document{
		Profiles:      map[string]*Profile{"1": DefaultProfile()},
		ActiveProfile: "1",
	}
}

// DefaultProfile returns the factory settings for a single profile.
func DefaultProfile() *Profile {
	stages := make(map[string]int, len(pulsar.DefaultDPIStages))
	for i, dpi := range pulsar.DefaultDPIStages {
		stages[strconv.Itoa(i+1)] = dpi
	}

	buttons := make(map[string]Button, len(pulsar.DefaultButtonActions))
	for i, action := range pulsar.DefaultButtonActions {
		buttons[strconv.Itoa(i+1)] = Button{
			Action: action,
			Code:   pulsar.ButtonActions[action],
		}
	}

	return &Profile{
		DPIStages:       stages,
		ActiveDPIStage:  2, // 1600 DPI
		PollingRate:     1000,
		LiftoffDistance: 1.0,
		Buttons:         buttons,
		MotionSync:      true,
		RippleControl:   false,
		AngleSnap:       false,
		DebounceTime:    3,
		PowerSaving: PowerSaving{
			IdleTime:            30,
			LowBatteryThreshold: 10,
		},
	}
}

// Clone returns a deep copy of the profile. Nested maps are copied by
// value, so edits to the clone never mutate the source.
func (p *Profile) Clone() *Profile {
	c := *p
	c.DPIStages = make(map[string]int, len(p.DPIStages))
	for k, v := range p.DPIStages {
		c.DPIStages[k] = v
	}
	c.Buttons = make(map[string]Button, len(p.Buttons))
	for k, v := range p.Buttons {
		c.Buttons[k] = v
	}
	return &c
}

// Active returns the profile the active-profile pointer addresses, or an
// error when the pointer is stale.
func (d *Document) Active() (*Profile, error) {
	p, ok := d.Profiles[d.ActiveProfile]
	if !ok {
		return nil, fmt.Errorf("active profile %q not found", d.ActiveProfile)
	}
	return p, nil
}

// Copy duplicates the source profile under the target id, overwriting any
// existing target. Fails without mutation when the source does not exist.
func (d *Document) Copy(sourceID, targetID string) error {
	src, ok := d.Profiles[sourceID]
	if !ok {
		return fmt.Errorf("source profile %q not found", sourceID)
	}
	d.Profiles[targetID] = src.Clone()
	return nil
}

// Reset replaces a profile's settings with the factory defaults. Fails
// without mutation when the profile does not exist.
func (d *Document) Reset(profileID string) error {
	if _, ok := d.Profiles[profileID]; !ok {
		return fmt.Errorf("profile %q not found", profileID)
	}
	d.Profiles[profileID] = DefaultProfile()
	return nil
}
