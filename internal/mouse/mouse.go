// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Svetlana Sibiryakova

// Package mouse composes the profile store, the command encoder and a
// device transport into one facade. Every setter follows the same shape:
// validate, mutate the in-memory document, encode and send the command,
// persist the document.
//
// Transport failures degrade gracefully. The local document always
// reflects the user's latest intent even when the device never received
// the command: the ordering is mutate, send, persist, and neither a send
// nor a persist failure rolls the mutation back.
package mouse

import (
	"fmt"
	"log"
	"sort"
	"strconv"
	"strings"

	"github.com/pulsar-tools/pulsarctl/internal/device"
	"github.com/pulsar-tools/pulsarctl/internal/profile"
	"github.com/pulsar-tools/pulsarctl/pkg/pulsar"
)

// Mouse orchestrates configuration changes against one active profile.
// Setters return a user-facing status message; referential failures
// (unknown action, bad profile slot) abort with an error and no side
// effects.
type Mouse struct {
	store     *profile.Store
	doc       *profile.Document
	transport device.Transport
	debug     bool
}

// New builds a facade over an already-loaded document.
func New(store *profile.Store, doc *profile.Document, transport device.Transport, debug bool) *Mouse {
	return &Mouse{store: store, doc: doc, transport: transport, debug: debug}
}

// Document exposes the in-memory configuration document.
func (m *Mouse) Document() *profile.Document {
	return m.doc
}

func (m *Mouse) activeProfile() *profile.Profile {
	p, err := m.doc.Active()
	if err != nil {
		// Tolerate a stale pointer by falling back to profile "1",
		// creating it if needed.
		log.Printf("%v, falling back to profile 1", err)
		fallback, ok := m.doc.Profiles["1"]
		if !ok {
			fallback = profile.DefaultProfile()
			m.doc.Profiles["1"] = fallback
		}
		return fallback
	}
	return p
}

// send pushes a frame to the device. Failures are reported, not returned:
// the local document is the source of truth and device sync is
// best-effort.
func (m *Mouse) send(cmd pulsar.Command) {
	if _, err := m.transport.Send(cmd, false, device.DefaultTimeout); err != nil {
		log.Printf("device not updated: %v", err)
	}
}

// persist writes the document through to disk after every mutation.
func (m *Mouse) persist() {
	if err := m.store.Save(m.doc); err != nil {
		log.Printf("configuration not saved: %v", err)
	}
}

// SetDPI sets the DPI for one stage of the active profile. Stage 0 means
// "the profile's active stage"; a stage outside 1-6 falls back to stage 1
// with a warning. The DPI value is clamped and rounded by the encoder
// rules before storage.
func (m *Mouse) SetDPI(dpi, stage int) string {
	var s strings.Builder
	p := m.activeProfile()

	if stage == 0 {
		stage = p.ActiveDPIStage
	}
	if !pulsar.ValidStage(stage) {
		fmt.Fprintf(&s, "Warning: invalid DPI stage %d, using stage 1.\n", stage)
		stage = 1
	}

	dpi = pulsar.ClampDPI(dpi)
	p.DPIStages[strconv.Itoa(stage)] = dpi

	m.send(pulsar.NewSetDPI(dpi, stage))
	m.persist()
	fmt.Fprintf(&s, "DPI for stage %d set to %d.", stage, dpi)
	return s.String()
}

// SetPollingRate sets the report rate, snapping unsupported rates to the
// nearest supported one. Rates above 1000 Hz only work with the 8K dongle;
// that is an advisory, not a blocking condition.
func (m *Mouse) SetPollingRate(rate int) string {
	var s strings.Builder
	if !pulsar.ValidPollingRate(rate) {
		snapped := pulsar.SnapPollingRate(rate)
		fmt.Fprintf(&s, "Warning: polling rate %d Hz not supported, using %d Hz.\n", rate, snapped)
		rate = snapped
	}
	if rate > 1000 {
		fmt.Fprintf(&s, "Note: polling rates above 1000 Hz require the 8K dongle.\n")
	}

	m.activeProfile().PollingRate = rate

	m.send(pulsar.NewSetPolling(rate))
	m.persist()
	fmt.Fprintf(&s, "Polling rate set to %d Hz.", rate)
	return s.String()
}

// SetLiftoffDistance sets the lift-off distance, snapping unsupported
// values to the nearest supported one.
func (m *Mouse) SetLiftoffDistance(distance float64) string {
	var s strings.Builder
	if !pulsar.ValidLiftoffDistance(distance) {
		snapped := pulsar.SnapLiftoffDistance(distance)
		fmt.Fprintf(&s, "Warning: lift-off distance %vmm not supported, using %vmm.\n", distance, snapped)
		distance = snapped
	}

	m.activeProfile().LiftoffDistance = distance

	m.send(pulsar.NewSetLiftoff(distance))
	m.persist()
	fmt.Fprintf(&s, "Lift-off distance set to %vmm.", distance)
	return s.String()
}

// SetButtonMapping binds a button to a named action. The operation is
// atomic: an invalid button or unknown action aborts with no mutation, no
// command and no persist.
func (m *Mouse) SetButtonMapping(button int, actionName string) (string, error) {
	cmd, ok := pulsar.NewSetButton(button, actionName)
	if !ok {
		if !pulsar.ValidButton(button) {
			return "", fmt.Errorf("invalid button %d: valid buttons are 1-5", button)
		}
		return "", fmt.Errorf("unknown action %q: valid actions are %s",
			actionName, strings.Join(pulsar.ActionNames(), ", "))
	}

	m.activeProfile().Buttons[strconv.Itoa(button)] = profile.Button{
		Action: actionName,
		Code:   pulsar.ButtonActions[actionName],
	}

	m.send(cmd)
	m.persist()
	return fmt.Sprintf("Button %d set to %q.", button, actionName), nil
}

// SetMotionSync toggles motion sync.
func (m *Mouse) SetMotionSync(enabled bool) string {
	m.activeProfile().MotionSync = enabled

	m.send(pulsar.NewSetMotionSync(enabled))
	m.persist()
	if enabled {
		return "Motion sync enabled."
	}
	return "Motion sync disabled."
}

// SetPowerSaving sets the idle time and, when threshold is non-nil, the
// low-battery threshold. Out-of-range values are clamped with a warning.
func (m *Mouse) SetPowerSaving(idleTime int, threshold *int) string {
	var s strings.Builder
	if idleTime < pulsar.MinIdleTime || idleTime > pulsar.MaxIdleTime {
		fmt.Fprintf(&s, "Warning: invalid idle time %ds, valid range is %d-%ds.\n",
			idleTime, pulsar.MinIdleTime, pulsar.MaxIdleTime)
		idleTime = pulsar.ClampIdleTime(idleTime)
	}

	p := m.activeProfile()
	p.PowerSaving.IdleTime = idleTime

	if threshold != nil {
		t := *threshold
		if t < pulsar.MinBatteryThreshold || t > pulsar.MaxBatteryThreshold {
			fmt.Fprintf(&s, "Warning: invalid battery threshold %d%%, valid range is %d-%d%%.\n",
				t, pulsar.MinBatteryThreshold, pulsar.MaxBatteryThreshold)
			t = pulsar.ClampBatteryThreshold(t)
		}
		p.PowerSaving.LowBatteryThreshold = t
		threshold = &t
	}

	m.send(pulsar.NewSetPower(idleTime, threshold))
	m.persist()
	fmt.Fprintf(&s, "Power saving set: idle time %ds.", idleTime)
	if threshold != nil {
		fmt.Fprintf(&s, " Low-battery threshold: %d%%.", *threshold)
	}
	return s.String()
}

// SaveToProfile persists the current settings to an on-device profile slot
// and repoints the local active-profile pointer at it.
//
// This only signals the device and moves the pointer; it does not copy the
// in-memory settings into the slot's local entry.
func (m *Mouse) SaveToProfile(slot int) (string, error) {
	if !pulsar.ValidProfileSlot(slot) {
		return "", fmt.Errorf("invalid profile slot %d: valid slots are 1-4", slot)
	}

	m.send(pulsar.NewSaveProfile(slot))
	m.doc.ActiveProfile = strconv.Itoa(slot)
	m.persist()
	return fmt.Sprintf("Settings saved to device profile %d.", slot), nil
}

// DeviceInfo queries the device and returns a printable report. In debug
// mode static model data is reported instead of touching hardware.
func (m *Mouse) DeviceInfo() (string, error) {
	if m.debug {
		return fmt.Sprintf("Model: %s\nSensor: %s\nMax DPI: %d\nMax polling rate: %d Hz",
			pulsar.ModelName, pulsar.SensorModel, pulsar.MaxDPI, pulsar.MaxPollingRate), nil
	}

	reply, err := m.transport.Send(pulsar.NewGetInfo(), true, device.DefaultTimeout)
	if err != nil {
		return "", fmt.Errorf("cannot query device info: %w", err)
	}
	if reply == nil {
		return "", fmt.Errorf("no device info available")
	}

	info, err := pulsar.ParseDeviceInfo(reply)
	if err != nil {
		return "", err
	}
	return info.String(), nil
}

// Settings renders the active profile's full settings snapshot.
func (m *Mouse) Settings() string {
	p := m.activeProfile()

	var s strings.Builder
	fmt.Fprintf(&s, "=== Profile settings ===\n")
	fmt.Fprintf(&s, "Profile: %s (active)\n", m.doc.ActiveProfile)

	fmt.Fprintf(&s, "\nDPI stages:\n")
	for _, stage := range sortedKeys(p.DPIStages) {
		marker := ""
		if stage == strconv.Itoa(p.ActiveDPIStage) {
			marker = " *"
		}
		fmt.Fprintf(&s, "  Stage %s: %d DPI%s\n", stage, p.DPIStages[stage], marker)
	}

	fmt.Fprintf(&s, "\nPolling rate: %d Hz\n", p.PollingRate)
	fmt.Fprintf(&s, "Lift-off distance: %vmm\n", p.LiftoffDistance)

	fmt.Fprintf(&s, "\nButtons:\n")
	for _, button := range sortedButtonKeys(p.Buttons) {
		b := p.Buttons[button]
		fmt.Fprintf(&s, "  Button %s: %s (code 0x%02x)\n", button, b.Action, b.Code)
	}

	fmt.Fprintf(&s, "\nOther settings:\n")
	fmt.Fprintf(&s, "  Motion sync: %s\n", onOff(p.MotionSync))
	fmt.Fprintf(&s, "  Ripple control: %s\n", onOff(p.RippleControl))
	fmt.Fprintf(&s, "  Angle snap: %s\n", onOff(p.AngleSnap))
	fmt.Fprintf(&s, "  Debounce time: %d ms\n", p.DebounceTime)

	fmt.Fprintf(&s, "\nPower saving:\n")
	fmt.Fprintf(&s, "  Idle time: %d seconds\n", p.PowerSaving.IdleTime)
	fmt.Fprintf(&s, "  Low-battery threshold: %d%%", p.PowerSaving.LowBatteryThreshold)
	return s.String()
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func sortedButtonKeys(m map[string]profile.Button) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func onOff(v bool) string {
	if v {
		return "on"
	}
	return "off"
}
