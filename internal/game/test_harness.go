package game

import (
	"fmt"

	"github.com/Garsondee/Hex-Skirmish/internal/config"
	"github.com/Garsondee/Hex-Skirmish/internal/hexgrid"
)

// TestSim is a headless session harness for tests and batch reports. It
// drives the same World, Selector and DummyAI the window does, with
// deterministic seeding and structured logging.
type TestSim struct {
	World    *World
	Selector *Selector
	AIs      [sideCount]*DummyAI
	SimLog   *SimLog

	cfg          config.Config
	verbose      bool
	defaultBases bool
	initialSpawn bool
	err          error
}

// simOptionKind controls the pass in which an option is applied.
type simOptionKind int

const (
	simOptInfra simOptionKind = iota // grid size, seed, config: applied before the world exists
	simOptBase                       // bases: applied to the new world
	simOptUnit                       // units: applied after bases exist
)

// SimOption is a builder function applied to a TestSim during construction.
type SimOption struct {
	kind simOptionKind
	fn   func(*TestSim)
}

// WithGridSize sets the board dimensions.
func WithGridSize(w, h int) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.cfg.Width = w
		ts.cfg.Height = h
	}}
}

// WithSeed sets the RNG seed for deterministic runs.
func WithSeed(seed int64) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.cfg.Seed = seed
	}}
}

// WithVerbose enables per-turn verbose logging.
func WithVerbose(v bool) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.verbose = v
	}}
}

// WithConfig edits the session configuration.
func WithConfig(edit func(*config.Config)) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		edit(&ts.cfg)
	}}
}

// WithoutInitialSpawn skips the random opening rosters; only units added
// with WithUnit are on the board.
func WithoutInitialSpawn() SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.initialSpawn = false
	}}
}

// WithoutBases skips the default bases.
func WithoutBases() SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.defaultBases = false
	}}
}

// WithBase gives side a base at (x, y). Any WithBase replaces the default
// bases.
func WithBase(side Side, x, y int) SimOption {
	return SimOption{simOptBase, func(ts *TestSim) {
		t, err := ts.World.Grid.Lookup(x, y)
		if err != nil {
			ts.fail(fmt.Errorf("WithBase: %w", err))
			return
		}
		ts.fail(ts.World.PlaceBase(side, t))
	}}
}

// WithUnit spawns a unit of kind for side at (x, y).
func WithUnit(kind UnitKind, side Side, x, y int) SimOption {
	return SimOption{simOptUnit, func(ts *TestSim) {
		t, err := ts.World.Grid.Lookup(x, y)
		if err != nil {
			ts.fail(fmt.Errorf("WithUnit: %w", err))
			return
		}
		_, err = ts.World.Spawn(kind, side, t)
		ts.fail(err)
	}}
}

// NewTestSim constructs a TestSim from the given options in ordered passes:
//  1. Infrastructure (grid size, seed, config)
//  2. Build the World
//  3. Bases (the defaults unless WithBase or WithoutBases is given)
//  4. Units, then the configured rosters unless WithoutInitialSpawn
//  5. Start turn 1
//
// Option failures are collected and returned as the error.
func NewTestSim(opts ...SimOption) (*TestSim, error) {
	ts := &TestSim{
		cfg:          config.Default(),
		defaultBases: true,
		initialSpawn: true,
	}
	ts.cfg.Seed = 1
	for _, o := range opts {
		if o.kind == simOptInfra {
			o.fn(ts)
		}
		if o.kind == simOptBase {
			ts.defaultBases = false
		}
	}

	w, err := NewWorld(ts.cfg)
	if err != nil {
		return nil, err
	}
	w.Log.SetVerbose(ts.verbose)
	ts.World = w
	ts.SimLog = w.Log
	ts.Selector = NewSelector(w, SideBlue)
	for s := Side(0); s < sideCount; s++ {
		ts.AIs[s] = NewDummyAI(w, s)
	}

	if ts.defaultBases {
		ts.fail(w.PlaceDefaultBases())
	}
	for _, o := range opts {
		if o.kind == simOptBase {
			o.fn(ts)
		}
	}
	for _, o := range opts {
		if o.kind == simOptUnit {
			o.fn(ts)
		}
	}
	if ts.initialSpawn {
		ts.fail(w.SpawnInitial())
	}
	if ts.err != nil {
		return nil, ts.err
	}
	w.beginTurn()
	return ts, nil
}

func (ts *TestSim) fail(err error) {
	if err != nil && ts.err == nil {
		ts.err = err
	}
}

// Tile returns the tile at (x, y) or nil.
func (ts *TestSim) Tile(x, y int) *hexgrid.Tile {
	t, _ := ts.World.Grid.At(x, y)
	return t
}

// Unit returns the unit with the given label, or nil.
func (ts *TestSim) Unit(label string) *Unit {
	for _, u := range ts.World.Units() {
		if u.Label() == label {
			return u
		}
	}
	return nil
}

// Click forwards a click on (x, y) to the selector; a hole or
// out-of-range coordinate is a click that hit nothing.
func (ts *TestSim) Click(x, y int) bool {
	return ts.Selector.Click(ts.Tile(x, y))
}

// PlayTurn lets the AI play the active side's turn and returns the number
// of units it moved.
func (ts *TestSim) PlayTurn() int {
	w := ts.World
	ts.logVerbose()
	return ts.AIs[w.ActiveSide()].StartTurn()
}

// RunTurns plays n turns with both sides driven by the AI, stopping early
// if the game ends. Returns the number of units moved.
func (ts *TestSim) RunTurns(n int) int {
	moved := 0
	for i := 0; i < n && !ts.World.Over(); i++ {
		moved += ts.PlayTurn()
	}
	return moved
}

// RunUntil plays AI turns up to maxTurns, stopping early if predicate
// returns true. Returns the turn at which the predicate was satisfied, or -1.
func (ts *TestSim) RunUntil(predicate func(*TestSim) bool, maxTurns int) int {
	for i := 0; i < maxTurns && !ts.World.Over(); i++ {
		ts.PlayTurn()
		if predicate(ts) {
			return ts.World.Turn()
		}
	}
	return -1
}

func (ts *TestSim) logVerbose() {
	w := ts.World
	side := w.ActiveSide()
	for _, u := range w.Roster(side).Units {
		ts.SimLog.AddVerbose(w.Turn(), u.Label(), side.String(), "move", "position", u.Tile().String(), 0)
	}
	r := w.Roster(side)
	ts.SimLog.AddVerbose(w.Turn(), "--", side.String(), "economy", "credits", fmt.Sprint(r.Credits), float64(r.Credits))
}

// SimSnapshot is a lightweight state summary.
type SimSnapshot struct {
	Turn   int
	Active Side
	Units  []UnitSnapshot
}

// UnitSnapshot is a lightweight copy of a unit's state.
type UnitSnapshot struct {
	Label string
	Kind  UnitKind
	Side  Side
	X, Y  int
}

// Snapshot returns the current state of all units.
func (ts *TestSim) Snapshot() SimSnapshot {
	w := ts.World
	snap := SimSnapshot{Turn: w.Turn(), Active: w.ActiveSide()}
	for _, u := range w.Units() {
		t := u.Tile()
		snap.Units = append(snap.Units, UnitSnapshot{
			Label: u.Label(),
			Kind:  u.Kind(),
			Side:  u.Side(),
			X:     t.X,
			Y:     t.Y,
		})
	}
	return snap
}
