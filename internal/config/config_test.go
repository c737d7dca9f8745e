package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.General.FixturesDir != "fixtures" {
		t.Errorf("FixturesDir = %q, want fixtures", cfg.General.FixturesDir)
	}
	if cfg.General.TrendWindowMonths != 6 {
		t.Errorf("TrendWindowMonths = %d, want 6", cfg.General.TrendWindowMonths)
	}
	if cfg.Appearance.Theme != "flexoki-dark" {
		t.Errorf("Theme = %q, want flexoki-dark", cfg.Appearance.Theme)
	}
}

func TestLoad_NoFileReturnsDefaults(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.General.TrendWindowMonths != 6 {
		t.Errorf("TrendWindowMonths = %d, want default 6", cfg.General.TrendWindowMonths)
	}
	if Exists() {
		t.Error("Exists() = true with no config file")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg := DefaultConfig()
	cfg.General.FixturesDir = "/data/fixtures"
	cfg.General.TrendWindowMonths = 3
	cfg.General.NoCache = true
	cfg.Appearance.Theme = "flexoki-light"

	if err := Save(cfg); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if !Exists() {
		t.Error("Exists() = false after save")
	}

	got, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.General.FixturesDir != "/data/fixtures" {
		t.Errorf("FixturesDir = %q", got.General.FixturesDir)
	}
	if got.General.TrendWindowMonths != 3 {
		t.Errorf("TrendWindowMonths = %d, want 3", got.General.TrendWindowMonths)
	}
	if !got.General.NoCache {
		t.Error("NoCache = false, want true")
	}
	if got.Appearance.Theme != "flexoki-light" {
		t.Errorf("Theme = %q, want flexoki-light", got.Appearance.Theme)
	}
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	path := filepath.Join(dir, "cfoq", "config.toml")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("[general]\nfixtures_dir = \"custom\"\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.General.FixturesDir != "custom" {
		t.Errorf("FixturesDir = %q, want custom", cfg.General.FixturesDir)
	}
	// Unset keys fall back to defaults.
	if cfg.Appearance.Theme != "flexoki-dark" {
		t.Errorf("Theme = %q, want default", cfg.Appearance.Theme)
	}
}

func TestFixturesDir_EnvOverride(t *testing.T) {
	t.Setenv("CFOQ_FIXTURES_DIR", "/env/fixtures")

	cfg := DefaultConfig()
	cfg.General.FixturesDir = "/config/fixtures"

	if got := FixturesDir(cfg); got != "/env/fixtures" {
		t.Errorf("FixturesDir = %q, want env override", got)
	}

	t.Setenv("CFOQ_FIXTURES_DIR", "")
	if got := FixturesDir(cfg); got != "/config/fixtures" {
		t.Errorf("FixturesDir = %q, want config value", got)
	}
}
