// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Svetlana Sibiryakova

// Package pulsar implements the USB command protocol for the Pulsar X2
// gaming mouse.
//
// The command byte layouts are placeholders pending reverse engineering of
// the real wire protocol. Every command is a fixed 8-byte frame with the
// opcode at offset 0; parameter offsets are documented per builder in
// commands.go. Keep the layout isolated behind this package so it can be
// swapped once real hardware behavior is known.
package pulsar

// USB identifiers for the Pulsar X2 V3.
const (
	VendorID  = 0x3710
	ProductID = 0x5402 // 1K dongle; 0x5406 for the 8K dongle
)

// Model specifications.
const (
	ModelName      = "X2"
	SensorModel    = "XS-1 (PixArt)"
	MinDPI         = 50
	MaxDPI         = 32000
	DPIStep        = 10
	MaxPollingRate = 8000 // requires the 8K dongle
)

// CommandSize is the fixed frame length for every command.
const CommandSize = 8

// Command opcodes (byte 0 of every frame).
const (
	OpGetInfo       = 0x10
	OpGetSettings   = 0x12
	OpSetDPI        = 0x20
	OpSetPolling    = 0x30
	OpSetLiftoff    = 0x40
	OpSetButton     = 0x50
	OpSetMotionSync = 0x60
	OpSetPower      = 0x70
	OpSaveProfile   = 0xF0
)

// PollingRates lists the supported report rates in Hz, ascending. The index
// of a rate in this slice is its wire encoding.
var PollingRates = []int{125, 250, 500, 1000, 2000, 4000, 8000}

// LiftoffDistances lists the supported lift-off distances in mm, ascending.
// The index of a distance in this slice is its wire encoding.
var LiftoffDistances = []float64{0.7, 1.0, 2.0}

// DefaultDPIStages are the factory presets for the six DPI stages.
var DefaultDPIStages = []int{800, 1600, 3200, 6400, 12800, 25600}

// Stage and button limits.
const (
	MinDPIStage    = 1
	MaxDPIStage    = 6
	MinButton      = 1
	MaxButton      = 5
	MinProfileSlot = 1
	MaxProfileSlot = 4
)

// Power-saving limits.
const (
	MinIdleTime         = 30  // seconds
	MaxIdleTime         = 900 // seconds
	MinBatteryThreshold = 5   // percent
	MaxBatteryThreshold = 20  // percent
)

// ButtonActions maps action names to their single-byte wire codes.
// Code 0x00 disables the button.
var ButtonActions = map[string]byte{
	"Left Click":   0x01,
	"Right Click":  0x02,
	"Middle Click": 0x03,
	"Back":         0x04,
	"Forward":      0x05,
	"DPI Up":       0x06,
	"DPI Down":     0x07,
	"DPI Cycle":    0x08,
	"Scroll Up":    0x09,
	"Scroll Down":  0x0A,
	"Double Click": 0x0B,
	"Ctrl":         0x10,
	"Shift":        0x11,
	"Alt":          0x12,
	"OS/Command":   0x13,
	"Disabled":     0x00,
}

// DefaultButtonActions are the factory bindings for buttons 1-5, in order.
var DefaultButtonActions = []string{
	"Left Click", "Right Click", "Middle Click", "Back", "Forward",
}
