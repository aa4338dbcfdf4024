// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Svetlana Sibiryakova

package pulsar

import "testing"

func TestNewSetDPI(t *testing.T) {
	tests := []struct {
		name      string
		dpi       int
		stage     int
		wantDPI   int
		wantStage byte
	}{
		{"exact value", 1600, 2, 1600, 2},
		{"rounds half up", 1605, 2, 1610, 2},
		{"rounds down", 1604, 3, 1600, 3},
		{"clamps below minimum", 10, 1, 50, 1},
		{"clamps above maximum", 99999, 6, 32000, 6},
		{"minimum boundary", 50, 1, 50, 1},
		{"maximum boundary", 32000, 6, 32000, 6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewSetDPI(tt.dpi, tt.stage)

			if c.Opcode() != OpSetDPI {
				t.Errorf("Opcode() = 0x%02X, want 0x%02X", c.Opcode(), OpSetDPI)
			}
			if c[1] != tt.wantStage {
				t.Errorf("stage byte = %d, want %d", c[1], tt.wantStage)
			}
			if c.DPI() != tt.wantDPI {
				t.Errorf("DPI() = %d, want %d", c.DPI(), tt.wantDPI)
			}
		})
	}
}

func TestNewSetDPI_BigEndianField(t *testing.T) {
	c := NewSetDPI(25600, 5)

	// 25600 = 0x6400, high byte at offset 2
	if c[2] != 0x64 || c[3] != 0x00 {
		t.Errorf("dpi field = %02x %02x, want 64 00", c[2], c[3])
	}
}

func TestNewSetPolling(t *testing.T) {
	tests := []struct {
		name      string
		rate      int
		wantIndex byte
	}{
		{"125 Hz", 125, 0},
		{"250 Hz", 250, 1},
		{"500 Hz", 500, 2},
		{"1000 Hz", 1000, 3},
		{"2000 Hz", 2000, 4},
		{"4000 Hz", 4000, 5},
		{"8000 Hz", 8000, 6},
		{"snaps 900 to 1000", 900, 3},
		{"exact tie prefers lower rate", 3000, 4},
		{"snaps above maximum", 20000, 6},
		{"snaps below minimum", 1, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewSetPolling(tt.rate)

			if c.Opcode() != OpSetPolling {
				t.Errorf("Opcode() = 0x%02X, want 0x%02X", c.Opcode(), OpSetPolling)
			}
			if c[1] != tt.wantIndex {
				t.Errorf("rate index = %d, want %d", c[1], tt.wantIndex)
			}
		})
	}
}

func TestNewSetLiftoff_RoundTrip(t *testing.T) {
	for _, d := range LiftoffDistances {
		c := NewSetLiftoff(d)
		if got := c.LiftoffDistance(); got != d {
			t.Errorf("LiftoffDistance() = %v, want %v", got, d)
		}
	}
}

func TestNewSetLiftoff_Snap(t *testing.T) {
	tests := []struct {
		name     string
		distance float64
		want     float64
	}{
		{"snaps 0.8 to 0.7", 0.8, 0.7},
		{"snaps 1.4 to 1.0", 1.4, 1.0},
		{"snaps 5.0 to 2.0", 5.0, 2.0},
		{"snaps 0.1 to 0.7", 0.1, 0.7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewSetLiftoff(tt.distance)
			if got := c.LiftoffDistance(); got != tt.want {
				t.Errorf("LiftoffDistance() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNewSetButton(t *testing.T) {
	c, ok := NewSetButton(3, "DPI Cycle")
	if !ok {
		t.Fatal("NewSetButton() ok = false, want true")
	}
	if c.Opcode() != OpSetButton {
		t.Errorf("Opcode() = 0x%02X, want 0x%02X", c.Opcode(), OpSetButton)
	}
	if c[1] != 3 {
		t.Errorf("button byte = %d, want 3", c[1])
	}
	if c[2] != 0x08 {
		t.Errorf("action code = 0x%02X, want 0x08", c[2])
	}
}

func TestNewSetButton_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		button int
		action string
	}{
		{"button below range", 0, "Left Click"},
		{"button above range", 6, "Left Click"},
		{"unknown action", 1, "Teleport"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, ok := NewSetButton(tt.button, tt.action); ok {
				t.Error("NewSetButton() ok = true, want false")
			}
		})
	}
}

func TestNewSetMotionSync(t *testing.T) {
	on := NewSetMotionSync(true)
	if on.Opcode() != OpSetMotionSync || on[1] != 1 {
		t.Errorf("enabled frame = %s, want byte 1 = 1", FormatCommand(on))
	}

	off := NewSetMotionSync(false)
	if off[1] != 0 {
		t.Errorf("disabled frame = %s, want byte 1 = 0", FormatCommand(off))
	}
}

func TestNewSetPower(t *testing.T) {
	threshold := 10
	c := NewSetPower(300, &threshold)

	if c.Opcode() != OpSetPower {
		t.Errorf("Opcode() = 0x%02X, want 0x%02X", c.Opcode(), OpSetPower)
	}
	if c.IdleTime() != 300 {
		t.Errorf("IdleTime() = %d, want 300", c.IdleTime())
	}
	// 300 = 0x012C, low byte at offset 1
	if c[1] != 0x2C || c[2] != 0x01 {
		t.Errorf("idle field = %02x %02x, want 2c 01", c[1], c[2])
	}
	if c[3] != 10 {
		t.Errorf("threshold byte = %d, want 10", c[3])
	}
}

func TestNewSetPower_Clamps(t *testing.T) {
	threshold := 25
	c := NewSetPower(1000, &threshold)

	if c.IdleTime() != 900 {
		t.Errorf("IdleTime() = %d, want 900 (clamped)", c.IdleTime())
	}
	if c[3] != 20 {
		t.Errorf("threshold byte = %d, want 20 (clamped)", c[3])
	}
}

func TestNewSetPower_NoThreshold(t *testing.T) {
	c := NewSetPower(60, nil)

	if c[3] != 0 {
		t.Errorf("threshold byte = %d, want 0 (template default)", c[3])
	}
}

func TestNewSaveProfile(t *testing.T) {
	c := NewSaveProfile(2)

	if c.Opcode() != OpSaveProfile {
		t.Errorf("Opcode() = 0x%02X, want 0x%02X", c.Opcode(), OpSaveProfile)
	}
	if c[1] != 2 {
		t.Errorf("slot byte = %d, want 2", c[1])
	}
}

func TestQueryCommands(t *testing.T) {
	info := NewGetInfo()
	if info != (Command{OpGetInfo}) {
		t.Errorf("GET_INFO frame = %s, want opcode-only frame", FormatCommand(info))
	}

	settings := NewGetSettings()
	if settings != (Command{OpGetSettings}) {
		t.Errorf("GET_SETTINGS frame = %s, want opcode-only frame", FormatCommand(settings))
	}
}

func TestCommandsDoNotShareState(t *testing.T) {
	a := NewSetDPI(800, 1)
	b := NewSetDPI(25600, 6)

	if a.DPI() != 800 || b.DPI() != 25600 {
		t.Errorf("frames share state: a=%s b=%s", FormatCommand(a), FormatCommand(b))
	}
}
