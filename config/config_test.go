package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") error: %v", err)
	}

	if cfg.Flee.Radius != 0.8 || cfg.Flee.Strength != 2.5 || cfg.Flee.MaxSpeed != 1.2 {
		t.Errorf("unexpected flee defaults: %+v", cfg.Flee)
	}
	if cfg.Camera.Near != 0.1 || cfg.Camera.Far != 100 {
		t.Errorf("expected near/far 0.1/100, got %v/%v", cfg.Camera.Near, cfg.Camera.Far)
	}
	if cfg.Derived.DT32 <= 0 {
		t.Errorf("expected positive derived dt, got %f", cfg.Derived.DT32)
	}
	for i := 0; i < 3; i++ {
		if cfg.Derived.TankMin[i] >= cfg.Derived.TankMax[i] {
			t.Errorf("tank axis %d: min %f >= max %f", i, cfg.Derived.TankMin[i], cfg.Derived.TankMax[i])
		}
	}
}

func TestLoadOverlay(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	overlay := "school:\n  count: 7\nflee:\n  radius: 1.5\n"
	if err := os.WriteFile(path, []byte(overlay), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.School.Count != 7 {
		t.Errorf("expected count 7, got %d", cfg.School.Count)
	}
	if cfg.Flee.Radius != 1.5 {
		t.Errorf("expected radius 1.5, got %v", cfg.Flee.Radius)
	}
	// Untouched fields keep their defaults
	if cfg.Flee.Strength != 2.5 {
		t.Errorf("expected default strength 2.5, got %v", cfg.Flee.Strength)
	}
}

func TestLoadRejectsBadSpeedRange(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(path, []byte("school:\n  min_speed: 0.6\n  max_speed: 0.2\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected error for inverted speed range")
	}
}

func TestLoadRejectsBadPhysicsAndFlee(t *testing.T) {
	cases := map[string]string{
		"zero flee max speed":    "flee:\n  max_speed: 0\n",
		"negative flee radius":   "flee:\n  radius: -0.5\n",
		"negative flee strength": "flee:\n  strength: -1\n",
		"zero epsilon":           "physics:\n  epsilon: 0\n",
		"negative wall margin":   "physics:\n  wall_margin: -0.01\n",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "bad.yaml")
			if err := os.WriteFile(path, []byte(body), 0644); err != nil {
				t.Fatal(err)
			}
			if _, err := Load(path); err == nil {
				t.Errorf("expected error for %s", name)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestWriteYAMLRoundtrip(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	cfg.School.Count = 33

	path := filepath.Join(t.TempDir(), "out.yaml")
	if err := cfg.WriteYAML(path); err != nil {
		t.Fatalf("WriteYAML error: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("reload error: %v", err)
	}
	if loaded.School.Count != 33 {
		t.Errorf("expected count 33 after reload, got %d", loaded.School.Count)
	}
}

func TestFingerprint(t *testing.T) {
	a, _ := Load("")
	b, _ := Load("")

	fa, err := a.Fingerprint()
	if err != nil {
		t.Fatal(err)
	}
	fb, _ := b.Fingerprint()
	if fa != fb {
		t.Errorf("identical configs should share a fingerprint: %x vs %x", fa, fb)
	}

	b.Flee.Radius = 2
	fb, _ = b.Fingerprint()
	if fa == fb {
		t.Error("changed config should change the fingerprint")
	}
}

func TestClone(t *testing.T) {
	a, _ := Load("")
	b := a.Clone()
	b.Flee.Radius = 9
	if a.Flee.Radius == 9 {
		t.Error("clone should not alias its source")
	}
}
