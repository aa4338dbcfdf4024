// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Svetlana Sibiryakova

package profile

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func tempStore(t *testing.T) *Store {
	t.Helper()
	return &Store{Path: filepath.Join(t.TempDir(), "pulsar", "pulsar_x2_v3_config.json")}
}

func TestLoad_MissingFile(t *testing.T) {
	s := tempStore(t)

	doc := s.Load()
	if doc == nil {
		t.Fatal("Load() returned nil")
	}
	if doc.ActiveProfile != "1" {
		t.Errorf("ActiveProfile = %q, want \"1\"", doc.ActiveProfile)
	}
	if _, ok := doc.Profiles["1"]; !ok {
		t.Error("default document missing profile \"1\"")
	}
}

func TestLoad_CorruptFile(t *testing.T) {
	s := tempStore(t)
	if err := os.MkdirAll(filepath.Dir(s.Path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(s.Path, []byte("{not valid json"), 0o644); err != nil {
		t.Fatal(err)
	}

	doc := s.Load()
	if doc.ActiveProfile != "1" {
		t.Errorf("corrupt file should fall back to defaults, got active profile %q", doc.ActiveProfile)
	}

	// A subsequent save overwrites the corrupt file with a valid document.
	if err := s.Save(doc); err != nil {
		t.Fatalf("Save() after corrupt load failed: %v", err)
	}
	reloaded := s.Load()
	if !reflect.DeepEqual(doc, reloaded) {
		t.Error("reloaded document differs from saved default")
	}
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	s := tempStore(t)

	doc := Default()
	p := doc.Profiles["1"]
	p.DPIStages["2"] = 1610
	p.PollingRate = 2000
	p.LiftoffDistance = 0.7
	p.MotionSync = false
	p.PowerSaving.IdleTime = 300
	doc.ActiveProfile = "1"

	if err := s.Save(doc); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}

	loaded := s.Load()
	if !reflect.DeepEqual(doc, loaded) {
		t.Errorf("round-trip mismatch:\nsaved:  %+v\nloaded: %+v", doc, loaded)
	}
}

func TestDefaultProfile(t *testing.T) {
	p := DefaultProfile()

	wantStages := map[string]int{
		"1": 800, "2": 1600, "3": 3200, "4": 6400, "5": 12800, "6": 25600,
	}
	if !reflect.DeepEqual(p.DPIStages, wantStages) {
		t.Errorf("DPIStages = %v, want %v", p.DPIStages, wantStages)
	}
	if p.ActiveDPIStage != 2 {
		t.Errorf("ActiveDPIStage = %d, want 2", p.ActiveDPIStage)
	}
	if p.PollingRate != 1000 {
		t.Errorf("PollingRate = %d, want 1000", p.PollingRate)
	}
	if p.LiftoffDistance != 1.0 {
		t.Errorf("LiftoffDistance = %v, want 1.0", p.LiftoffDistance)
	}
	if len(p.Buttons) != 5 {
		t.Errorf("len(Buttons) = %d, want 5", len(p.Buttons))
	}
	if b := p.Buttons["1"]; b.Action != "Left Click" || b.Code != 0x01 {
		t.Errorf("button 1 = %+v, want Left Click/0x01", b)
	}
	if !p.MotionSync {
		t.Error("MotionSync = false, want true")
	}
	if p.DebounceTime != 3 {
		t.Errorf("DebounceTime = %d, want 3", p.DebounceTime)
	}
	if p.PowerSaving.IdleTime != 30 || p.PowerSaving.LowBatteryThreshold != 10 {
		t.Errorf("PowerSaving = %+v, want 30s/10%%", p.PowerSaving)
	}
}

func TestCopy_ValueIndependence(t *testing.T) {
	doc := Default()

	if err := doc.Copy("1", "2"); err != nil {
		t.Fatalf("Copy() failed: %v", err)
	}

	doc.Profiles["2"].DPIStages["1"] = 12345
	doc.Profiles["2"].Buttons["1"] = Button{Action: "Disabled", Code: 0x00}

	if doc.Profiles["1"].DPIStages["1"] != 800 {
		t.Error("mutating the copy changed the source DPI stage")
	}
	if doc.Profiles["1"].Buttons["1"].Action != "Left Click" {
		t.Error("mutating the copy changed the source button binding")
	}
}

func TestCopy_MissingSource(t *testing.T) {
	doc := Default()

	if err := doc.Copy("9", "2"); err == nil {
		t.Error("Copy() err = nil, want error for missing source")
	}
	if _, ok := doc.Profiles["2"]; ok {
		t.Error("failed copy created target profile")
	}
}

func TestReset(t *testing.T) {
	doc := Default()
	doc.Profiles["1"].PollingRate = 8000

	if err := doc.Reset("1"); err != nil {
		t.Fatalf("Reset() failed: %v", err)
	}
	if doc.Profiles["1"].PollingRate != 1000 {
		t.Errorf("PollingRate after reset = %d, want 1000", doc.Profiles["1"].PollingRate)
	}
}

func TestReset_MissingProfile(t *testing.T) {
	doc := Default()

	if err := doc.Reset("3"); err == nil {
		t.Error("Reset() err = nil, want error for missing profile")
	}
}

func TestActive_StalePointer(t *testing.T) {
	doc := Default()
	doc.ActiveProfile = "4"

	if _, err := doc.Active(); err == nil {
		t.Error("Active() err = nil, want error for stale pointer")
	}
}
