// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Svetlana Sibiryakova

package pulsar

// Command builder functions create fixed 8-byte command frames ready for
// transmission. Each builder copies a fresh template, so frames never share
// state and concurrent encodes cannot corrupt each other.

// Command is a fixed-size command frame with the opcode at offset 0.
type Command [CommandSize]byte

// Opcode returns the frame's command opcode.
func (c Command) Opcode() byte {
	return c[0]
}

// Bytes returns the frame as a byte slice for transmission.
func (c Command) Bytes() []byte {
	return c[:]
}

func newCommand(opcode byte) Command {
	return Command{opcode}
}

// NewGetInfo creates a device-info query (0x10). The reply layout is
// interpreted by ParseDeviceInfo.
func NewGetInfo() Command {
	return newCommand(OpGetInfo)
}

// NewGetSettings creates a settings query (0x12).
func NewGetSettings() Command {
	return newCommand(OpGetSettings)
}

// NewSetDPI creates a SET_DPI command (0x20) for the given stage.
// The DPI value is clamped to [50, 32000] and rounded to the nearest
// multiple of 10; the 16-bit result is written big-endian at offsets 2-3,
// the stage at offset 1. Stage validity is the caller's concern.
func NewSetDPI(dpi, stage int) Command {
	dpi = ClampDPI(dpi)
	c := newCommand(OpSetDPI)
	c[1] = byte(stage)
	c[2] = byte(dpi >> 8)
	c[3] = byte(dpi)
	return c
}

// DPI decodes the DPI value carried by a SET_DPI frame.
func (c Command) DPI() int {
	return int(c[2])<<8 | int(c[3])
}

// NewSetPolling creates a SET_POLLING command (0x30). Rates outside the
// supported set are snapped to the nearest supported rate first; offset 1
// carries the rate's enumeration index (0 for 125 Hz .. 6 for 8000 Hz).
func NewSetPolling(rate int) Command {
	rate = SnapPollingRate(rate)
	c := newCommand(OpSetPolling)
	for i, r := range PollingRates {
		if r == rate {
			c[1] = byte(i)
			break
		}
	}
	return c
}

// NewSetLiftoff creates a SET_LIFTOFF command (0x40). Distances outside the
// supported set are snapped to the nearest supported distance; offset 1
// carries the distance index (0.7 -> 0, 1.0 -> 1, 2.0 -> 2).
func NewSetLiftoff(distance float64) Command {
	distance = SnapLiftoffDistance(distance)
	c := newCommand(OpSetLiftoff)
	for i, d := range LiftoffDistances {
		if d == distance {
			c[1] = byte(i)
			break
		}
	}
	return c
}

// LiftoffDistance decodes the distance carried by a SET_LIFTOFF frame.
func (c Command) LiftoffDistance() float64 {
	i := int(c[1])
	if i >= len(LiftoffDistances) {
		return 0
	}
	return LiftoffDistances[i]
}

// NewSetButton creates a SET_BUTTON command (0x50) binding a button to a
// named action. Returns ok=false without a frame when the button is outside
// 1-5 or the action name is unknown, rather than emitting a malformed
// frame.
func NewSetButton(button int, actionName string) (Command, bool) {
	if !ValidButton(button) {
		return Command{}, false
	}
	code, ok := ButtonActions[actionName]
	if !ok {
		return Command{}, false
	}
	c := newCommand(OpSetButton)
	c[1] = byte(button)
	c[2] = code
	return c, true
}

// NewSetMotionSync creates a SET_MOTION_SYNC command (0x60); offset 1 is
// 1 or 0.
func NewSetMotionSync(enabled bool) Command {
	c := newCommand(OpSetMotionSync)
	if enabled {
		c[1] = 1
	}
	return c
}

// NewSetPower creates a SET_POWER command (0x70). The idle time is clamped
// to [30, 900] seconds and split little-endian across offsets 1-2. When a
// threshold is given it is clamped to [5, 20] percent and written at offset
// 3; pass nil to leave the device threshold untouched.
func NewSetPower(idleTime int, threshold *int) Command {
	idleTime = ClampIdleTime(idleTime)
	c := newCommand(OpSetPower)
	c[1] = byte(idleTime)
	c[2] = byte(idleTime >> 8)
	if threshold != nil {
		c[3] = byte(ClampBatteryThreshold(*threshold))
	}
	return c
}

// IdleTime decodes the idle time carried by a SET_POWER frame.
func (c Command) IdleTime() int {
	return int(c[1]) | int(c[2])<<8
}

// NewSaveProfile creates a SAVE_PROFILE command (0xF0) persisting the
// current settings to an on-device slot. Slot range validation happens at
// the facade layer.
func NewSaveProfile(slot int) Command {
	c := newCommand(OpSaveProfile)
	c[1] = byte(slot)
	return c
}
