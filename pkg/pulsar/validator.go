// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Svetlana Sibiryakova

package pulsar

import "math"

// ClampDPI clamps a DPI value to the supported range and rounds it to the
// nearest multiple of 10. Halfway values round up (1605 -> 1610).
func ClampDPI(dpi int) int {
	if dpi < MinDPI {
		dpi = MinDPI
	}
	if dpi > MaxDPI {
		dpi = MaxDPI
	}
	return int(math.Round(float64(dpi)/DPIStep)) * DPIStep
}

// SnapPollingRate returns the supported polling rate closest to the
// requested one. On an exact tie the lower rate wins.
func SnapPollingRate(rate int) int {
	best := PollingRates[0]
	for _, r := range PollingRates[1:] {
		if abs(r-rate) < abs(best-rate) {
			best = r
		}
	}
	return best
}

// ValidPollingRate reports whether rate is one of the supported rates.
func ValidPollingRate(rate int) bool {
	for _, r := range PollingRates {
		if r == rate {
			return true
		}
	}
	return false
}

// SnapLiftoffDistance returns the supported lift-off distance closest to the
// requested one. On an exact tie the lower distance wins.
func SnapLiftoffDistance(distance float64) float64 {
	best := LiftoffDistances[0]
	for _, d := range LiftoffDistances[1:] {
		if math.Abs(d-distance) < math.Abs(best-distance) {
			best = d
		}
	}
	return best
}

// ValidLiftoffDistance reports whether distance is one of the supported
// lift-off distances.
func ValidLiftoffDistance(distance float64) bool {
	for _, d := range LiftoffDistances {
		if d == distance {
			return true
		}
	}
	return false
}

// ClampIdleTime clamps the power-saving idle time to the supported range.
func ClampIdleTime(seconds int) int {
	return clamp(seconds, MinIdleTime, MaxIdleTime)
}

// ClampBatteryThreshold clamps the low-battery threshold to the supported
// range.
func ClampBatteryThreshold(percent int) int {
	return clamp(percent, MinBatteryThreshold, MaxBatteryThreshold)
}

// ValidStage reports whether stage addresses one of the six DPI stages.
func ValidStage(stage int) bool {
	return stage >= MinDPIStage && stage <= MaxDPIStage
}

// ValidButton reports whether button addresses one of the five buttons.
func ValidButton(button int) bool {
	return button >= MinButton && button <= MaxButton
}

// ValidProfileSlot reports whether slot addresses one of the four on-device
// profile slots.
func ValidProfileSlot(slot int) bool {
	return slot >= MinProfileSlot && slot <= MaxProfileSlot
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
