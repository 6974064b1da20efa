package game

import (
	"errors"
	"testing"

	"github.com/Garsondee/Hex-Skirmish/internal/config"
	"github.com/Garsondee/Hex-Skirmish/internal/event"
	"github.com/Garsondee/Hex-Skirmish/internal/hexgrid"
)

// recorder collects dispatched events.
type recorder struct {
	events []event.Event
}

func (r *recorder) OnEvent(e event.Event) { r.events = append(r.events, e) }

func (r *recorder) count(t event.Type) int {
	n := 0
	for _, e := range r.events {
		if e.Type == t {
			n++
		}
	}
	return n
}

func listen(w *World) *recorder {
	r := &recorder{}
	w.Events.SubscribeAll(r,
		event.TurnStarted, event.UnitSpawned, event.UnitMoved,
		event.UnitRemoved, event.BaseCaptured, event.GameOver)
	return r
}

func TestNewWorld_RejectsBadGrid(t *testing.T) {
	cfg := config.Default()
	cfg.Width = 0
	if _, err := NewWorld(cfg); !errors.Is(err, hexgrid.ErrInvalidDimensions) {
		t.Fatalf("expected ErrInvalidDimensions, got %v", err)
	}
}

func TestSetup_DefaultOpening(t *testing.T) {
	cfg := config.Default()
	cfg.Seed = 7
	w, err := NewWorld(cfg)
	if err != nil {
		t.Fatalf("NewWorld: %v", err)
	}
	rec := listen(w)
	if err := w.Setup(); err != nil {
		t.Fatalf("Setup: %v", err)
	}

	blue, red := w.Roster(SideBlue), w.Roster(SideRed)
	if len(blue.Units) != 2 || len(red.Units) != 1 {
		t.Fatalf("expected 2 blue and 1 red unit, got %d and %d", len(blue.Units), len(red.Units))
	}
	if blue.Units[0].Kind() != KindSoldier || blue.Units[1].Kind() != KindAerial || red.Units[0].Kind() != KindGeneric {
		t.Fatalf("unexpected opening kinds: %s %s %s", blue.Units[0].Kind(), blue.Units[1].Kind(), red.Units[0].Kind())
	}
	tiles := w.Grid.Tiles()
	if !blue.Owns(tiles[0]) || !red.Owns(tiles[len(tiles)-1]) {
		t.Fatal("expected blue base on the first tile and red base on the last")
	}
	seen := map[*hexgrid.Tile]bool{}
	for _, u := range w.Units() {
		if seen[u.Tile()] {
			t.Fatalf("two units share %v", u.Tile())
		}
		seen[u.Tile()] = true
		if _, isBase := w.BaseOwner(u.Tile()); isBase {
			t.Fatalf("%s spawned on base %v", u.Label(), u.Tile())
		}
		if u.Tile().Occupant != hexgrid.Occupant(u) {
			t.Fatalf("%s is not the occupant of its tile", u.Label())
		}
	}
	if w.Turn() != 1 || w.ActiveSide() != SideBlue {
		t.Fatalf("expected turn 1 blue, got turn %d %s", w.Turn(), w.ActiveSide())
	}
	if blue.Credits != cfg.BaseIncome {
		t.Fatalf("expected blue to start with %d credits, got %d", cfg.BaseIncome, blue.Credits)
	}
	if rec.count(event.UnitSpawned) != 3 || rec.count(event.TurnStarted) != 1 {
		t.Fatalf("expected 3 spawns and 1 turn start, got %d and %d",
			rec.count(event.UnitSpawned), rec.count(event.TurnStarted))
	}
}

func TestSetup_UnknownRosterTag(t *testing.T) {
	cfg := config.Default()
	cfg.Seed = 1
	cfg.RedRoster = []string{"tank"}
	w, err := NewWorld(cfg)
	if err != nil {
		t.Fatalf("NewWorld: %v", err)
	}
	if err := w.Setup(); !errors.Is(err, ErrUnknownUnitKind) {
		t.Fatalf("expected ErrUnknownUnitKind, got %v", err)
	}
}

func TestSpawn_Errors(t *testing.T) {
	ts := mustSim(t, WithoutInitialSpawn(), WithUnit(KindSoldier, SideBlue, 2, 2))
	w := ts.World

	if _, err := w.Spawn(KindGeneric, SideRed, ts.Tile(2, 2)); !errors.Is(err, ErrTileOccupied) {
		t.Fatalf("expected ErrTileOccupied, got %v", err)
	}
	if _, err := w.Spawn(UnitKind(9), SideRed, ts.Tile(3, 3)); !errors.Is(err, ErrUnknownUnitKind) {
		t.Fatalf("expected ErrUnknownUnitKind, got %v", err)
	}
	if _, err := w.SpawnNamed("tank", SideRed, ts.Tile(3, 3)); !errors.Is(err, ErrUnknownUnitKind) {
		t.Fatalf("expected ErrUnknownUnitKind, got %v", err)
	}
	other, _ := hexgrid.Build(8, 8)
	if _, err := w.Spawn(KindGeneric, SideRed, other.Tiles()[9]); !errors.Is(err, hexgrid.ErrNoSuchTile) {
		t.Fatalf("expected ErrNoSuchTile for a foreign tile, got %v", err)
	}
	if _, err := w.Spawn(KindGeneric, SideRed, nil); !errors.Is(err, hexgrid.ErrNoSuchTile) {
		t.Fatalf("expected ErrNoSuchTile for nil, got %v", err)
	}
	if len(w.Units()) != 1 {
		t.Fatalf("failed spawns must not add units, got %d", len(w.Units()))
	}

	u, err := w.SpawnNamed("Aerial", SideRed, ts.Tile(3, 3))
	if err != nil {
		t.Fatalf("SpawnNamed: %v", err)
	}
	if u.Label() != "R0" || u.Kind() != KindAerial {
		t.Fatalf("expected R0 aerial, got %s %s", u.Label(), u.Kind())
	}
}

func TestSpawnRandom_NoFreeTile(t *testing.T) {
	cfg := config.Default()
	cfg.Width, cfg.Height, cfg.Seed = 2, 1, 1
	w, err := NewWorld(cfg)
	if err != nil {
		t.Fatalf("NewWorld: %v", err)
	}
	if err := w.PlaceDefaultBases(); err != nil {
		t.Fatalf("PlaceDefaultBases: %v", err)
	}
	if _, err := w.SpawnRandom(KindSoldier, SideBlue); !errors.Is(err, ErrNoFreeTile) {
		t.Fatalf("expected ErrNoFreeTile, got %v", err)
	}
}

func TestPlaceBase_TransfersOwnership(t *testing.T) {
	ts := mustSim(t, WithoutInitialSpawn())
	w := ts.World
	redBase := ts.Tile(10, 7)
	if err := w.PlaceBase(SideBlue, redBase); err != nil {
		t.Fatalf("PlaceBase: %v", err)
	}
	if w.Roster(SideRed).Owns(redBase) || !w.Roster(SideBlue).Owns(redBase) {
		t.Fatal("expected the base to move from red to blue")
	}
	if owner, ok := w.BaseOwner(redBase); !ok || owner != SideBlue {
		t.Fatalf("expected blue owner, got %s (%v)", owner, ok)
	}
}

func TestReinforce(t *testing.T) {
	ts := mustSim(t, WithoutInitialSpawn(), WithConfig(func(c *config.Config) {
		c.StartCredits = 25
		c.BaseIncome = 10
		c.UnitCost = 30
	}))
	w := ts.World
	blue := w.Roster(SideBlue)
	if blue.Credits != 35 {
		t.Fatalf("expected 35 credits after turn-1 income, got %d", blue.Credits)
	}

	u, err := w.Reinforce(SideBlue, KindSoldier)
	if err != nil {
		t.Fatalf("Reinforce: %v", err)
	}
	if u.Tile() != ts.Tile(0, 0) {
		t.Fatalf("expected reinforcement on blue base (0,0), got %v", u.Tile())
	}
	if blue.Credits != 5 {
		t.Fatalf("expected 5 credits left, got %d", blue.Credits)
	}
	if _, err := w.Reinforce(SideBlue, KindSoldier); !errors.Is(err, ErrInsufficientCredits) {
		t.Fatalf("expected ErrInsufficientCredits, got %v", err)
	}
	blue.Credits = 100
	if _, err := w.Reinforce(SideBlue, KindAerial); !errors.Is(err, ErrNoFreeBase) {
		t.Fatalf("expected ErrNoFreeBase, got %v", err)
	}
	if blue.Credits != 100 {
		t.Fatalf("failed reinforcement must not spend credits, got %d", blue.Credits)
	}
	if !ts.SimLog.HasEntry("economy", "spend", "soldier") {
		t.Fatal("expected an economy/spend entry")
	}
}

func TestGrantIncome_OncePerSideAndTurn(t *testing.T) {
	ts := mustSim(t)
	w := ts.World
	income := w.Config().BaseIncome
	if got := w.GrantIncome(SideBlue); got != 0 {
		t.Fatalf("expected no second payment on turn 1, got %d", got)
	}
	w.EndTurn()
	red := w.Roster(SideRed)
	if red.Credits != income {
		t.Fatalf("expected red to receive %d on its turn, got %d", income, red.Credits)
	}
	if got := w.GrantIncome(SideRed); got != 0 || red.Credits != income {
		t.Fatalf("expected the AI's grant to be a no-op, got +%d (total %d)", got, red.Credits)
	}
}

func TestEndTurn_FlipsSideAndResetsTiles(t *testing.T) {
	ts := mustSim(t)
	w := ts.World
	rec := listen(w)
	marked := ts.Tile(4, 4)
	marked.Highlight()

	w.EndTurn()

	if w.ActiveSide() != SideRed || w.Turn() != 2 {
		t.Fatalf("expected turn 2 red, got turn %d %s", w.Turn(), w.ActiveSide())
	}
	if marked.Visual() != hexgrid.VisualNormal {
		t.Fatalf("expected tiles reset on turn start, got %s", marked.Visual())
	}
	if len(rec.events) != 1 {
		t.Fatalf("expected exactly one event, got %d", len(rec.events))
	}
	te, ok := rec.events[0].Data.(TurnEvent)
	if !ok || te.Turn != 2 || te.Side != SideRed {
		t.Fatalf("expected TurnEvent{2 red}, got %+v", rec.events[0].Data)
	}
}

func TestEndTurn_CaptureGarrisonsUnit(t *testing.T) {
	ts := mustSim(t, WithoutInitialSpawn(),
		WithUnit(KindSoldier, SideBlue, 2, 2),
		WithUnit(KindGeneric, SideRed, 5, 5),
	)
	w := ts.World
	rec := listen(w)
	redBase := ts.Tile(10, 7)
	b0 := ts.Unit("B0")

	w.MoveUnit(b0, redBase)
	w.EndTurn()

	if w.Roster(SideRed).HasBases() {
		t.Fatal("expected red to lose its only base")
	}
	if !w.Roster(SideBlue).Owns(redBase) || len(w.Roster(SideBlue).Bases) != 2 {
		t.Fatalf("expected blue to own 2 bases including %v", redBase)
	}
	if len(w.Roster(SideBlue).Units) != 0 || b0.OnBoard() || redBase.IsOccupied() {
		t.Fatal("expected the capturing unit to leave the board")
	}
	if !ts.SimLog.HasEntry("base", "captured", "(10,7)") {
		t.Fatalf("expected a capture entry\n%s", ts.SimLog.Format())
	}
	if rec.count(event.BaseCaptured) != 1 || rec.count(event.UnitRemoved) != 1 {
		t.Fatalf("expected 1 capture and 1 removal event, got %d and %d",
			rec.count(event.BaseCaptured), rec.count(event.UnitRemoved))
	}
	if w.Over() {
		t.Fatal("neither side is out of bases and units; game should continue")
	}
	if w.ActiveSide() != SideRed {
		t.Fatalf("expected red to move next, got %s", w.ActiveSide())
	}
}

func TestEndTurn_Victory(t *testing.T) {
	ts := mustSim(t, WithoutInitialSpawn(), WithUnit(KindSoldier, SideBlue, 2, 2))
	w := ts.World
	rec := listen(w)

	w.MoveUnit(ts.Unit("B0"), ts.Tile(10, 7))
	w.EndTurn()

	winner, over := w.Winner()
	if !over || winner != SideBlue {
		t.Fatalf("expected blue to win, got %s (over=%v)", winner, over)
	}
	if rec.count(event.GameOver) != 1 {
		t.Fatalf("expected one GameOver event, got %d", rec.count(event.GameOver))
	}
	turn := w.Turn()
	w.EndTurn()
	if w.Turn() != turn || rec.count(event.TurnStarted) != 0 {
		t.Fatal("expected EndTurn to do nothing once the game is over")
	}
}
