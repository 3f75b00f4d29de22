package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "qc.yml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadDefaultsWithoutFile(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg != Default() {
		t.Fatalf("expected defaults, got %+v", cfg)
	}
	if got := cfg.Rules().InventoryCapacity; got != 20 {
		t.Fatalf("expected capacity 20, got %d", got)
	}
}

func TestLoadExplicitMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yml"))
	if err == nil {
		t.Fatal("expected error for missing explicit config")
	}
}

func TestLoadFileThenEnv(t *testing.T) {
	chdir(t, t.TempDir())
	path := writeConfig(t, "data_dir: gamedata\ninventory_capacity: 5\nescape_chance: 0.25\nseed: 42\n")
	t.Setenv("QC_INVENTORY_CAPACITY", "7")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.DataDir != "gamedata" {
		t.Fatalf("expected data_dir from file, got %q", cfg.DataDir)
	}
	if cfg.InventoryCapacity != 7 {
		t.Fatalf("expected env to override file, got %d", cfg.InventoryCapacity)
	}
	if cfg.EscapeChance != 0.25 || cfg.Seed != 42 {
		t.Fatalf("unexpected file values: %+v", cfg)
	}
	if cfg.SaveDir != "saves" {
		t.Fatalf("expected default save_dir, got %q", cfg.SaveDir)
	}
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("QC_VERBOSE=true\n"), 0o644); err != nil {
		t.Fatalf("write .env: %v", err)
	}
	t.Cleanup(func() { os.Unsetenv("QC_VERBOSE") })

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !cfg.Verbose {
		t.Fatal("expected verbose from .env")
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	chdir(t, t.TempDir())
	path := writeConfig(t, "critical_chance: 1.5\n")

	_, err := Load(path)
	if err == nil || !strings.Contains(err.Error(), "critical_chance") {
		t.Fatalf("expected critical_chance error, got %v", err)
	}
}

func TestLoadBadEnv(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("QC_SEED", "not-a-number")

	_, err := Load("")
	if err == nil || !strings.Contains(err.Error(), "parse env:") {
		t.Fatalf("expected parse env error, got %v", err)
	}
}

// chdir changes the working directory for the duration of the test and
// restores it on cleanup (stand-in for testing.T.Chdir, which needs Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(prev); err != nil {
			t.Errorf("restore wd: %v", err)
		}
	})
}
