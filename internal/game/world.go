package game

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/zyedidia/generic/mapset"

	"github.com/Garsondee/Hex-Skirmish/internal/config"
	"github.com/Garsondee/Hex-Skirmish/internal/event"
	"github.com/Garsondee/Hex-Skirmish/internal/hexgrid"
)

var (
	ErrTileOccupied        = errors.New("tile occupied")
	ErrNoFreeTile          = errors.New("no free tile to spawn on")
	ErrInsufficientCredits = errors.New("insufficient credits")
	ErrNoFreeBase          = errors.New("no free base")
)

// TurnEvent is the payload of event.TurnStarted.
type TurnEvent struct {
	Turn int
	Side Side
}

// UnitEvent is the payload of UnitSpawned, UnitMoved and UnitRemoved.
// From is nil for spawns, To is nil for removals.
type UnitEvent struct {
	Unit *Unit
	From *hexgrid.Tile
	To   *hexgrid.Tile
}

// BaseEvent is the payload of event.BaseCaptured.
type BaseEvent struct {
	Base *hexgrid.Tile
	From Side
	To   Side
}

// GameOverEvent is the payload of event.GameOver.
type GameOverEvent struct {
	Turn   int
	Winner Side
}

// World is the simulation context of one session: the board, both rosters
// and the turn driver. Game (the window) and TestSim (headless) both run
// the session through it.
type World struct {
	ID     uuid.UUID
	Grid   *hexgrid.Grid
	Log    *SimLog
	Events *event.Dispatcher

	cfg        config.Config
	rosters    [sideCount]*Roster
	active     Side
	turn       int
	rng        *rand.Rand
	nextLabel  [sideCount]int
	incomeTurn [sideCount]int // turn in which income was last granted
	over       bool
	winner     Side
	logger     zerolog.Logger
}

// NewWorld builds the board described by cfg. The world starts on turn 1
// with blue to move, no bases and no units; call Setup for the standard
// opening.
func NewWorld(cfg config.Config) (*World, error) {
	grid, err := hexgrid.Build(cfg.Width, cfg.Height)
	if err != nil {
		return nil, fmt.Errorf("world: %w", err)
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	w := &World{
		ID:     uuid.New(),
		Grid:   grid,
		Log:    NewSimLog(false),
		Events: event.NewDispatcher(),
		cfg:    cfg,
		active: SideBlue,
		turn:   1,
		rng:    rand.New(rand.NewSource(seed)), // #nosec G404 -- gameplay randomness
		logger: zerolog.Nop(),
	}
	for s := Side(0); s < sideCount; s++ {
		w.rosters[s] = newRoster(s, cfg.StartCredits)
	}
	return w, nil
}

// SetLogger attaches a process logger; the default discards everything.
func (w *World) SetLogger(l zerolog.Logger) {
	w.logger = l.With().Str("world", w.ID.String()).Logger()
}

// Setup places the default bases, spawns both configured rosters and
// starts the first turn.
func (w *World) Setup() error {
	if err := w.PlaceDefaultBases(); err != nil {
		return err
	}
	if err := w.SpawnInitial(); err != nil {
		return err
	}
	w.beginTurn()
	return nil
}

func (w *World) Config() config.Config { return w.cfg }
func (w *World) ActiveSide() Side      { return w.active }
func (w *World) Turn() int             { return w.turn }
func (w *World) Over() bool            { return w.over }

// Winner returns the winning side once the game is over.
func (w *World) Winner() (Side, bool) { return w.winner, w.over }

// Roster returns the roster of side.
func (w *World) Roster(side Side) *Roster { return w.rosters[side] }

// Units returns every unit on the board, blue first.
func (w *World) Units() []*Unit {
	var out []*Unit
	for _, r := range w.rosters {
		out = append(out, r.Units...)
	}
	return out
}

// UnitAt returns the unit standing on t, or nil.
func (w *World) UnitAt(t *hexgrid.Tile) *Unit { return unitOn(t) }

// BaseOwner returns the side owning t as a base.
func (w *World) BaseOwner(t *hexgrid.Tile) (Side, bool) {
	for _, r := range w.rosters {
		if r.Owns(t) {
			return r.Side, true
		}
	}
	return 0, false
}

func (w *World) ownTile(t *hexgrid.Tile) error {
	if t == nil {
		return fmt.Errorf("%w: nil tile", hexgrid.ErrNoSuchTile)
	}
	if got, ok := w.Grid.At(t.X, t.Y); !ok || got != t {
		return fmt.Errorf("%w: %v is not on this board", hexgrid.ErrNoSuchTile, t)
	}
	return nil
}

// --- bases ---

// PlaceBase gives t to side as a base, taking it from the other side if
// needed.
func (w *World) PlaceBase(side Side, t *hexgrid.Tile) error {
	if err := w.ownTile(t); err != nil {
		return err
	}
	w.rosters[side.Opponent()].removeBase(t)
	w.rosters[side].addBase(t)
	w.Log.Add(w.turn, "--", side.String(), "base", "placed", t.String(), 0)
	return nil
}

// PlaceDefaultBases puts blue's base on the first tile and red's on the
// last. A single-tile board only gets a blue base.
func (w *World) PlaceDefaultBases() error {
	tiles := w.Grid.Tiles()
	if err := w.PlaceBase(SideBlue, tiles[0]); err != nil {
		return err
	}
	if len(tiles) > 1 {
		return w.PlaceBase(SideRed, tiles[len(tiles)-1])
	}
	return nil
}

// --- spawning ---

// Spawn creates a unit of kind for side on t.
func (w *World) Spawn(kind UnitKind, side Side, t *hexgrid.Tile) (*Unit, error) {
	if !kind.valid() {
		return nil, fmt.Errorf("spawn: %w: %d", ErrUnknownUnitKind, kind)
	}
	if err := w.ownTile(t); err != nil {
		return nil, fmt.Errorf("spawn: %w", err)
	}
	if t.IsOccupied() {
		return nil, fmt.Errorf("spawn: %w: %v holds %s", ErrTileOccupied, t, t.Occupant.Label())
	}
	label := fmt.Sprintf("%s%d", side.labelPrefix(), w.nextLabel[side])
	w.nextLabel[side]++

	u := newUnit(label, kind, side)
	u.place(t)
	w.rosters[side].Units = append(w.rosters[side].Units, u)

	w.Log.Add(w.turn, u.label, side.String(), "spawn", kind.String(), t.String(), 0)
	w.logger.Debug().Str("unit", u.label).Str("kind", kind.String()).Str("tile", t.String()).Msg("spawned")
	w.Events.Dispatch(event.Event{Type: event.UnitSpawned, Data: UnitEvent{Unit: u, To: t}})
	return u, nil
}

// SpawnNamed is Spawn with the kind given as a tag such as "Soldier".
func (w *World) SpawnNamed(tag string, side Side, t *hexgrid.Tile) (*Unit, error) {
	kind, err := ParseUnitKind(tag)
	if err != nil {
		return nil, fmt.Errorf("spawn: %w", err)
	}
	return w.Spawn(kind, side, t)
}

// SpawnRandom spawns on a random tile that is neither occupied nor a base.
func (w *World) SpawnRandom(kind UnitKind, side Side) (*Unit, error) {
	bases := mapset.New[*hexgrid.Tile]()
	for _, r := range w.rosters {
		for _, b := range r.Bases {
			bases.Put(b)
		}
	}
	var free []*hexgrid.Tile
	for _, t := range w.Grid.Tiles() {
		if !t.IsOccupied() && !bases.Has(t) {
			free = append(free, t)
		}
	}
	if len(free) == 0 {
		return nil, fmt.Errorf("spawn %s %s: %w", side, kind, ErrNoFreeTile)
	}
	return w.Spawn(kind, side, free[w.rng.Intn(len(free))])
}

// SpawnInitial spawns the configured rosters of both sides on distinct
// random tiles.
func (w *World) SpawnInitial() error {
	rosters := [sideCount][]string{SideBlue: w.cfg.BlueRoster, SideRed: w.cfg.RedRoster}
	for side, tags := range rosters {
		for _, tag := range tags {
			kind, err := ParseUnitKind(tag)
			if err != nil {
				return fmt.Errorf("initial %s roster: %w", Side(side), err)
			}
			if _, err := w.SpawnRandom(kind, Side(side)); err != nil {
				return err
			}
		}
	}
	return nil
}

// Reinforce buys a unit of kind for side and places it on a free owned
// base.
func (w *World) Reinforce(side Side, kind UnitKind) (*Unit, error) {
	if !kind.valid() {
		return nil, fmt.Errorf("reinforce: %w: %d", ErrUnknownUnitKind, kind)
	}
	r := w.rosters[side]
	if r.Credits < w.cfg.UnitCost {
		return nil, fmt.Errorf("reinforce: %w: have %d, need %d", ErrInsufficientCredits, r.Credits, w.cfg.UnitCost)
	}
	base, ok := r.FreeBase()
	if !ok {
		return nil, fmt.Errorf("reinforce: %w for %s", ErrNoFreeBase, side)
	}
	u, err := w.Spawn(kind, side, base)
	if err != nil {
		return nil, err
	}
	r.Credits -= w.cfg.UnitCost
	w.Log.Add(w.turn, u.label, side.String(), "economy", "spend", kind.String(), float64(w.cfg.UnitCost))
	return u, nil
}

// --- movement ---

// MoveUnit relocates u to dst and records the move. Legality is the
// caller's concern.
func (w *World) MoveUnit(u *Unit, dst *hexgrid.Tile) {
	from := u.Tile()
	u.MoveTo(dst)
	w.Log.Add(w.turn, u.label, u.side.String(), "move", "moved", fmt.Sprintf("%v → %v", from, dst), 0)
	w.logger.Debug().Str("unit", u.label).Stringer("from", from).Stringer("to", dst).Msg("moved")
	w.Events.Dispatch(event.Event{Type: event.UnitMoved, Data: UnitEvent{Unit: u, From: from, To: dst}})
}

func (w *World) removeUnit(u *Unit, reason string) {
	from := u.Tile()
	u.vacate()
	w.rosters[u.side].removeUnit(u)
	w.Log.Add(w.turn, u.label, u.side.String(), "unit", "removed", reason, 0)
	w.Events.Dispatch(event.Event{Type: event.UnitRemoved, Data: UnitEvent{Unit: u, From: from}})
}

// --- turns ---

// GrantIncome credits side with the base income for the current turn. It
// pays at most once per side and turn and returns the amount granted.
func (w *World) GrantIncome(side Side) int {
	if w.incomeTurn[side] == w.turn {
		return 0
	}
	w.incomeTurn[side] = w.turn
	granted := w.rosters[side].AddCredits(w.cfg.BaseIncome)
	if granted > 0 {
		w.Log.Add(w.turn, "--", side.String(), "economy", "income", fmt.Sprintf("+%d", granted), float64(granted))
	}
	return granted
}

func (w *World) beginTurn() {
	w.Grid.DeselectAll()
	w.GrantIncome(w.active)
	w.Log.Add(w.turn, "--", w.active.String(), "turn", "start", fmt.Sprintf("turn %d", w.turn), float64(w.turn))
	w.logger.Info().Int("turn", w.turn).Stringer("side", w.active).Msg("turn started")
	w.Events.Dispatch(event.Event{Type: event.TurnStarted, Data: TurnEvent{Turn: w.turn, Side: w.active}})
}

// EndTurn resolves base captures for both sides, checks for a winner and,
// unless the game just ended, hands the turn to the other side.
func (w *World) EndTurn() {
	if w.over {
		return
	}
	w.cleanup()
	if w.checkVictory() {
		return
	}
	w.active = w.active.Opponent()
	w.turn++
	w.beginTurn()
}

// cleanup flips every base that has an opposing unit standing on it. The
// capturing unit garrisons the base and leaves the board.
func (w *World) cleanup() {
	var captured []*Unit
	for _, r := range w.rosters {
		for _, u := range r.Units {
			base := u.Tile()
			owner, ok := w.BaseOwner(base)
			if !ok || owner == u.side {
				continue
			}
			w.rosters[owner].removeBase(base)
			w.rosters[u.side].addBase(base)
			w.Log.Add(w.turn, u.label, u.side.String(), "base", "captured", fmt.Sprintf("%v from %s", base, owner), 0)
			w.logger.Info().Str("unit", u.label).Stringer("base", base).Stringer("from", owner).Msg("base captured")
			w.Events.Dispatch(event.Event{Type: event.BaseCaptured, Data: BaseEvent{Base: base, From: owner, To: u.side}})
			captured = append(captured, u)
		}
	}
	for _, u := range captured {
		w.removeUnit(u, "garrisoned "+u.Tile().String())
	}
}

func (w *World) checkVictory() bool {
	blueOut := w.rosters[SideBlue].Defeated()
	redOut := w.rosters[SideRed].Defeated()
	switch {
	case blueOut && redOut:
		w.winner = w.active
	case blueOut:
		w.winner = SideRed
	case redOut:
		w.winner = SideBlue
	default:
		return false
	}
	w.over = true
	w.Grid.DeselectAll()
	w.Log.Add(w.turn, "--", w.winner.String(), "game", "over", w.winner.String()+" wins", float64(w.turn))
	w.logger.Info().Int("turn", w.turn).Stringer("winner", w.winner).Msg("game over")
	w.Events.Dispatch(event.Event{Type: event.GameOver, Data: GameOverEvent{Turn: w.turn, Winner: w.winner}})
	return true
}
