package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_DefaultsWithoutEnv(t *testing.T) {
	t.Chdir(t.TempDir())
	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Width != DefaultWidth || cfg.Height != DefaultHeight {
		t.Fatalf("expected %dx%d, got %dx%d", DefaultWidth, DefaultHeight, cfg.Width, cfg.Height)
	}
	if len(cfg.BlueRoster) != 2 || len(cfg.RedRoster) != 1 {
		t.Fatalf("expected default rosters 2/1, got %v/%v", cfg.BlueRoster, cfg.RedRoster)
	}
}

func TestLoad_EnvFileAndOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "game.env")
	body := "HEX_WIDTH=5\nHEX_HEIGHT=6\nHEX_SEED=77\nHEX_RED_ROSTER=generic, soldier\n"
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("HEX_HEIGHT", "9")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Width != 5 {
		t.Fatalf("expected width 5 from file, got %d", cfg.Width)
	}
	if cfg.Height != 9 {
		t.Fatalf("expected process env to win with height 9, got %d", cfg.Height)
	}
	if cfg.Seed != 77 {
		t.Fatalf("expected seed 77, got %d", cfg.Seed)
	}
	if len(cfg.RedRoster) != 2 || cfg.RedRoster[1] != "soldier" {
		t.Fatalf("expected red roster [generic soldier], got %v", cfg.RedRoster)
	}
}

func TestLoad_RejectsBadValues(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("HEX_WIDTH", "wide")
	if _, err := Load(); err == nil {
		t.Fatal("expected error for non-numeric width")
	}
	t.Setenv("HEX_WIDTH", "0")
	if _, err := Load(); err == nil {
		t.Fatal("expected error for zero width")
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.env")); err == nil {
		t.Fatal("expected error for missing env file")
	}
}
