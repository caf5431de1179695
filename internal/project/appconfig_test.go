package project

import (
	"path/filepath"
	"testing"
)

func TestLoadAppConfig_MissingFileYieldsDefaults(t *testing.T) {
	cfg, err := LoadAppConfig(filepath.Join(t.TempDir(), "config.json"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.DefaultPanelWidth != 800 || cfg.DefaultPanelHeight != 1900 {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
	if cfg.RecentLayouts == nil {
		t.Error("RecentLayouts should never be nil")
	}
}

func TestSaveLoadAppConfig_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.json")

	cfg := DefaultAppConfig()
	cfg.DefaultPanelWidth = 1200
	cfg.LibraryDir = "/tmp/shapes"
	cfg.AddRecentLayout("/tmp/a.yaml")

	if err := SaveAppConfig(path, cfg); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := LoadAppConfig(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.DefaultPanelWidth != 1200 || got.LibraryDir != "/tmp/shapes" {
		t.Errorf("round trip mismatch: %+v", got)
	}
	if len(got.RecentLayouts) != 1 || got.RecentLayouts[0] != "/tmp/a.yaml" {
		t.Errorf("recent layouts mismatch: %v", got.RecentLayouts)
	}
}

func TestLoadAppConfig_EnvOverride(t *testing.T) {
	t.Setenv("PANELCUT_DEFAULT_PANEL_WIDTH", "2440")
	t.Setenv("PANELCUT_LIBRARY_DIR", "/srv/shapes")

	cfg, err := LoadAppConfig(filepath.Join(t.TempDir(), "config.json"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.DefaultPanelWidth != 2440 {
		t.Errorf("expected env override 2440, got %f", cfg.DefaultPanelWidth)
	}
	if cfg.LibraryDir != "/srv/shapes" {
		t.Errorf("expected env override library dir, got %q", cfg.LibraryDir)
	}
}

func TestPanelSizeOrDefault(t *testing.T) {
	cfg := DefaultAppConfig()
	cfg.DefaultPanelWidth = 1200
	cfg.DefaultPanelHeight = 2400

	if w, h := cfg.PanelSizeOrDefault(0, 0); w != 1200 || h != 2400 {
		t.Errorf("expected configured defaults, got %f x %f", w, h)
	}
	if w, h := cfg.PanelSizeOrDefault(600, 0); w != 600 || h != 2400 {
		t.Errorf("expected explicit width kept, got %f x %f", w, h)
	}
	if w, h := cfg.PanelSizeOrDefault(600, 900); w != 600 || h != 900 {
		t.Errorf("expected explicit size kept, got %f x %f", w, h)
	}
}

func TestAddRecentLayout_DedupAndCap(t *testing.T) {
	cfg := DefaultAppConfig()
	for i := 0; i < 12; i++ {
		cfg.AddRecentLayout(filepath.Join("/tmp", string(rune('a'+i))+".yaml"))
	}
	if len(cfg.RecentLayouts) != 10 {
		t.Errorf("expected cap at 10, got %d", len(cfg.RecentLayouts))
	}

	cfg.AddRecentLayout(cfg.RecentLayouts[3])
	seen := map[string]bool{}
	for _, p := range cfg.RecentLayouts {
		if seen[p] {
			t.Errorf("duplicate entry %q", p)
		}
		seen[p] = true
	}
}
