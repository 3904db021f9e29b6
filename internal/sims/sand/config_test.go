package sand

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFromMapDefaults(t *testing.T) {
	cfg, err := FromMap(nil)
	if err != nil {
		t.Fatalf("FromMap(nil): %v", err)
	}
	if cfg != DefaultConfig() {
		t.Fatalf("FromMap(nil) = %+v, want defaults", cfg)
	}
}

func TestFromMapParsesKeys(t *testing.T) {
	cfg, err := FromMap(map[string]string{
		"w":                   "64",
		"h":                   "48",
		"seed":                "-9",
		"free_fall_threshold": "6",
		"gravity":             "0.5",
		"drag":                "0.9",
		"landing_cap":         "2.5",
		"enclosed_neighbors":  "3",
		"tint":                "false",
	})
	if err != nil {
		t.Fatalf("FromMap: %v", err)
	}
	if cfg.Width != 64 || cfg.Height != 48 || cfg.Seed != -9 {
		t.Fatalf("unexpected world config: %+v", cfg)
	}
	p := cfg.Params
	if p.FreeFallThreshold != 6 || p.Gravity != 0.5 || p.Drag != 0.9 || p.LandingCap != 2.5 || p.EnclosedNeighbors != 3 || p.Tint {
		t.Fatalf("unexpected params: %+v", p)
	}
}

func TestFromMapIgnoresInvalidValues(t *testing.T) {
	cfg, err := FromMap(map[string]string{
		"w":                   "-3",
		"h":                   "tall",
		"free_fall_threshold": "0",
		"drag":                "1.5",
		"gravity":             "-1",
		"enclosed_neighbors":  "9",
		"tint":                "sometimes",
	})
	if err != nil {
		t.Fatalf("FromMap: %v", err)
	}
	if cfg != DefaultConfig() {
		t.Fatalf("invalid values should be ignored, got %+v", cfg)
	}
}

func TestFromMapLoadsMaterials(t *testing.T) {
	path := filepath.Join(t.TempDir(), "m.yaml")
	doc := "materials:\n  - name: sand\n    solid: true\n    movable: true\n    inertial_resistance: 0.5\n    roll_speed: 1\n    color: [1, 1, 1]\n"
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := FromMap(map[string]string{"materials": path, "w": "8"})
	if err != nil {
		t.Fatalf("FromMap: %v", err)
	}
	if cfg.Materials == nil || cfg.Materials.Resistance(Sand) != 0.5 {
		t.Fatalf("material table not loaded")
	}

	cfg, err = FromMap(map[string]string{"materials": path + ".missing", "w": "8"})
	if err == nil {
		t.Fatalf("expected an error for a missing table")
	}
	if cfg.Width != 8 || cfg.Materials != nil {
		t.Fatalf("remaining keys should still apply: %+v", cfg)
	}
}
