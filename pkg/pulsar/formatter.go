// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Svetlana Sibiryakova

package pulsar

import (
	"fmt"
	"strings"
)

// FormatCommand renders a command frame as space-separated hex bytes.
func FormatCommand(c Command) string {
	parts := make([]string, len(c))
	for i, b := range c {
		parts[i] = fmt.Sprintf("%02x", b)
	}
	return strings.Join(parts, " ")
}

// FormatOpcode returns a human-readable name for a command opcode.
func FormatOpcode(opcode byte) string {
	switch opcode {
	case OpGetInfo:
		return "GET_INFO"
	case OpGetSettings:
		return "GET_SETTINGS"
	case OpSetDPI:
		return "SET_DPI"
	case OpSetPolling:
		return "SET_POLLING"
	case OpSetLiftoff:
		return "SET_LIFTOFF"
	case OpSetButton:
		return "SET_BUTTON"
	case OpSetMotionSync:
		return "SET_MOTION_SYNC"
	case OpSetPower:
		return "SET_POWER"
	case OpSaveProfile:
		return "SAVE_PROFILE"
	default:
		return "UNKNOWN"
	}
}

// ActionName reverse-maps a button action code to its name. Unassigned
// codes yield ok=false.
func ActionName(code byte) (string, bool) {
	for name, c := range ButtonActions {
		if c == code {
			return name, true
		}
	}
	return "", false
}

// ActionNames returns all known action names sorted by wire code, with
// "Disabled" (0x00) first.
func ActionNames() []string {
	names := make([]string, 0, len(ButtonActions))
	for code := 0; code <= 0xFF; code++ {
		if name, ok := ActionName(byte(code)); ok {
			names = append(names, name)
		}
	}
	return names
}

// DeviceInfo holds the fields decoded from a GET_INFO reply.
//
// The offsets are speculative pending protocol reverse engineering:
// firmware version at bytes 1-2, hardware revision at byte 3, active
// on-device profile at byte 4.
type DeviceInfo struct {
	FirmwareMajor uint8
	FirmwareMinor uint8
	HardwareRev   uint8
	ActiveProfile uint8
}

// ParseDeviceInfo decodes a GET_INFO reply. The reply must carry at least
// five bytes.
func ParseDeviceInfo(reply []byte) (DeviceInfo, error) {
	if len(reply) < 5 {
		return DeviceInfo{}, fmt.Errorf("device info reply too short: %d bytes (need 5)", len(reply))
	}
	return DeviceInfo{
		FirmwareMajor: reply[1],
		FirmwareMinor: reply[2],
		HardwareRev:   reply[3],
		ActiveProfile: reply[4],
	}, nil
}

// String renders the device info the way the info command prints it.
func (d DeviceInfo) String() string {
	var s strings.Builder
	fmt.Fprintf(&s, "Firmware version: %d.%d\n", d.FirmwareMajor, d.FirmwareMinor)
	fmt.Fprintf(&s, "Hardware revision: %d\n", d.HardwareRev)
	fmt.Fprintf(&s, "Active profile: %d", d.ActiveProfile)
	return s.String()
}
