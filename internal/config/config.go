package config

import (
	"fmt"
	"image/color"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Window and rendering constants.
const (
	ScreenWidth   = 1280
	ScreenHeight  = 800
	LogPanelWidth = 320
	BorderWidth   = 24
	HexScale      = 44.0 // pixels per grid unit
	UnitRadius    = 11.0
	AIDelayFrames = 30 // frames the AI waits before playing, so its turn is visible
)

// Unit mobility per kind, in adjacency hops.
const (
	SoldierMobility = 2
	AerialMobility  = 3
	GenericMobility = 2
)

// Defaults overridable from the environment.
const (
	DefaultWidth        = 8
	DefaultHeight       = 8
	DefaultBaseIncome   = 10
	DefaultUnitCost     = 30
	DefaultStartCredits = 0
	DefaultLogLevel     = "info"
)

var (
	BackgroundColor  = color.RGBA{12, 14, 12, 255}
	TileNormalColor  = color.RGBA{70, 100, 120, 230}
	TileHighColor    = color.RGBA{230, 200, 80, 255}
	TileGreyColor    = color.RGBA{45, 48, 52, 230}
	TileOutlineColor = color.RGBA{20, 24, 30, 255}
	BlueColor        = color.RGBA{70, 110, 210, 255}
	RedColor         = color.RGBA{210, 70, 70, 255}
	TextColor        = color.RGBA{240, 240, 240, 255}
)

// Config holds the per-session settings.
type Config struct {
	Width        int
	Height       int
	Seed         int64 // 0 = seed from the clock
	BaseIncome   int   // credits per owned base per turn
	UnitCost     int   // credits for one reinforcement
	StartCredits int
	BlueRoster   []string // unit kinds spawned for blue at session start
	RedRoster    []string
	LogLevel     string
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Width:        DefaultWidth,
		Height:       DefaultHeight,
		BaseIncome:   DefaultBaseIncome,
		UnitCost:     DefaultUnitCost,
		StartCredits: DefaultStartCredits,
		BlueRoster:   []string{"soldier", "aerial"},
		RedRoster:    []string{"generic"},
		LogLevel:     DefaultLogLevel,
	}
}

// Load builds a Config from the defaults, the given .env files (or ./.env if
// present and none are given) and the process environment, in increasing
// precedence.
func Load(files ...string) (Config, error) {
	cfg := Default()

	if len(files) == 0 {
		if _, err := os.Stat(".env"); err == nil {
			files = []string{".env"}
		}
	}
	fileVals := map[string]string{}
	if len(files) > 0 {
		vals, err := godotenv.Read(files...)
		if err != nil {
			return cfg, fmt.Errorf("config: read env files: %w", err)
		}
		fileVals = vals
	}
	lookup := func(key string) (string, bool) {
		if v, ok := os.LookupEnv(key); ok {
			return v, true
		}
		v, ok := fileVals[key]
		return v, ok
	}

	ints := []struct {
		key string
		dst *int
	}{
		{"HEX_WIDTH", &cfg.Width},
		{"HEX_HEIGHT", &cfg.Height},
		{"HEX_BASE_INCOME", &cfg.BaseIncome},
		{"HEX_UNIT_COST", &cfg.UnitCost},
		{"HEX_START_CREDITS", &cfg.StartCredits},
	}
	for _, f := range ints {
		v, ok := lookup(f.key)
		if !ok || v == "" {
			continue
		}
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return cfg, fmt.Errorf("config: %s: %w", f.key, err)
		}
		*f.dst = n
	}

	if v, ok := lookup("HEX_SEED"); ok && v != "" {
		seed, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		if err != nil {
			return cfg, fmt.Errorf("config: HEX_SEED: %w", err)
		}
		cfg.Seed = seed
	}
	if v, ok := lookup("HEX_BLUE_ROSTER"); ok && v != "" {
		cfg.BlueRoster = splitList(v)
	}
	if v, ok := lookup("HEX_RED_ROSTER"); ok && v != "" {
		cfg.RedRoster = splitList(v)
	}
	if v, ok := lookup("LOG_LEVEL"); ok && v != "" {
		cfg.LogLevel = v
	}

	if cfg.Width < 1 || cfg.Height < 1 {
		return cfg, fmt.Errorf("config: grid must be at least 1x1, got %dx%d", cfg.Width, cfg.Height)
	}
	return cfg, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
