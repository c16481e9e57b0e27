package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/cylsum/internal/validate"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Seed != validate.DefaultSeed {
		t.Errorf("expected seed %d, got %d", validate.DefaultSeed, cfg.Seed)
	}
	if cfg.Systems.Count != validate.DefaultSystems {
		t.Errorf("expected %d systems, got %d", validate.DefaultSystems, cfg.Systems.Count)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
	if cfg.Validator() != validate.DefaultConfig() {
		t.Error("default config should round-trip to validator defaults")
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("quick")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.Systems.Count != 1000 {
		t.Errorf("expected 1000 systems, got %d", cfg.Systems.Count)
	}

	cfg.Systems.Count = 1
	if Presets["quick"].Systems.Count != 1000 {
		t.Error("GetPreset should return a copy")
	}
}

func TestGetPreset_NotFound(t *testing.T) {
	if GetPreset("nonexistent") != nil {
		t.Error("expected nil for nonexistent preset")
	}
}

func TestPresetsValidate(t *testing.T) {
	names := ListPresets()
	if len(names) != len(Presets) {
		t.Fatalf("expected %d presets, got %d", len(Presets), len(names))
	}
	for _, name := range names {
		if err := GetPreset(name).Validate(); err != nil {
			t.Errorf("preset %s: %v", name, err)
		}
	}
}

func TestLoad_PartialFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg.yaml")
	data := []byte("seed: 7\nsystems:\n  count: 250\n  sensitivity_floor: 0.5\n")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Seed != 7 || cfg.Systems.Count != 250 || cfg.Systems.SensitivityFloor != 0.5 {
		t.Errorf("file values not applied: %+v", cfg.Systems)
	}
	if cfg.Systems.MaxComponents != 5 || cfg.Corollary.Trials != validate.DefaultCorollaryTrials {
		t.Error("defaults not kept for missing fields")
	}
}

func TestLoad_Invalid(t *testing.T) {
	dir := t.TempDir()

	bad := filepath.Join(dir, "bad.yaml")
	os.WriteFile(bad, []byte("systems:\n  count: 0\n"), 0644)
	if _, err := Load(bad); err == nil {
		t.Error("expected validation error")
	}

	broken := filepath.Join(dir, "broken.yaml")
	os.WriteFile(broken, []byte("seed: [\n"), 0644)
	if _, err := Load(broken); err == nil {
		t.Error("expected parse error")
	}

	if _, err := Load(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg.yaml")
	cfg := GetPreset("mixed-sign")
	cfg.Seed = 99

	if err := Save(path, cfg); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if *loaded != *cfg {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", loaded, cfg)
	}
}

func TestFingerprint(t *testing.T) {
	a := DefaultConfig()
	b := DefaultConfig()
	b.Seed = 1234
	b.Runs = 3
	b.Log.Level = "debug"

	if a.Fingerprint() == "" {
		t.Fatal("expected non-empty fingerprint")
	}
	if a.Fingerprint() != b.Fingerprint() {
		t.Error("seed, runs and logging should not change the fingerprint")
	}

	c := DefaultConfig()
	c.Systems.PerturbationDeg = 0.5
	if a.Fingerprint() == c.Fingerprint() {
		t.Error("sampling changes should change the fingerprint")
	}
}
