package game

import (
	"errors"
	"testing"

	"github.com/Garsondee/Hex-Skirmish/internal/hexgrid"
)

func mustSim(t *testing.T, opts ...SimOption) *TestSim {
	t.Helper()
	ts, err := NewTestSim(opts...)
	if err != nil {
		t.Fatalf("NewTestSim: %v", err)
	}
	return ts
}

func TestParseUnitKind(t *testing.T) {
	cases := map[string]UnitKind{
		"Soldier":   KindSoldier,
		"AERIAL":    KindAerial,
		" generic ": KindGeneric,
	}
	for tag, want := range cases {
		got, err := ParseUnitKind(tag)
		if err != nil {
			t.Fatalf("ParseUnitKind(%q): %v", tag, err)
		}
		if got != want {
			t.Fatalf("ParseUnitKind(%q): expected %s, got %s", tag, want, got)
		}
	}
	if _, err := ParseUnitKind("tank"); !errors.Is(err, ErrUnknownUnitKind) {
		t.Fatalf("expected ErrUnknownUnitKind, got %v", err)
	}
}

func TestUnitKind_Mobility(t *testing.T) {
	for _, k := range []UnitKind{KindSoldier, KindAerial, KindGeneric} {
		if k.Mobility() < 1 {
			t.Fatalf("%s: mobility must be at least 1, got %d", k, k.Mobility())
		}
	}
	if KindAerial.Mobility() <= KindSoldier.Mobility() {
		t.Fatalf("expected aerial to outrange soldier, got %d vs %d", KindAerial.Mobility(), KindSoldier.Mobility())
	}
	if UnitKind(99).Mobility() != 0 || UnitKind(99).String() != "unknown" {
		t.Fatal("expected out-of-range kind to be unknown with zero mobility")
	}
}

func TestSide_Opponent(t *testing.T) {
	if SideBlue.Opponent() != SideRed || SideRed.Opponent() != SideBlue {
		t.Fatal("expected blue and red to oppose each other")
	}
}

func TestUnit_MoveToClearsPreviousTile(t *testing.T) {
	ts := mustSim(t, WithoutInitialSpawn(), WithUnit(KindSoldier, SideBlue, 3, 3))
	u := ts.Unit("B0")
	if u == nil {
		t.Fatal("expected unit B0")
	}
	from := ts.Tile(3, 3)
	dst := ts.Tile(4, 4)
	dst.Highlight()

	u.MoveTo(dst)

	if from.Occupant != nil {
		t.Fatalf("expected %v to be vacated, still holds %v", from, from.Occupant)
	}
	if dst.Occupant != hexgrid.Occupant(u) {
		t.Fatalf("expected %v to hold B0, got %v", dst, dst.Occupant)
	}
	if u.Tile() != dst || u.Position() != dst.Center {
		t.Fatalf("expected unit at %v center %+v, got %v %+v", dst, dst.Center, u.Tile(), u.Position())
	}
	if dst.Visual() != hexgrid.VisualNormal {
		t.Fatalf("expected destination deselected, got %s", dst.Visual())
	}
}

func TestUnit_MoveToIsUnconditional(t *testing.T) {
	ts := mustSim(t, WithoutInitialSpawn(), WithUnit(KindGeneric, SideRed, 1, 1))
	u := ts.Unit("R0")
	far := ts.Tile(10, 7)
	u.MoveTo(far)
	if u.Tile() != far {
		t.Fatalf("expected MoveTo to ignore reach, unit at %v", u.Tile())
	}
}

func TestLegalMoves_UsesUnitMobility(t *testing.T) {
	ts := mustSim(t, WithoutInitialSpawn(),
		WithUnit(KindSoldier, SideBlue, 4, 4),
		WithUnit(KindAerial, SideBlue, 6, 2),
	)
	for _, label := range []string{"B0", "B1"} {
		u := ts.Unit(label)
		got := LegalMoves(u)
		want := hexgrid.LegalMoves(u.Tile(), u.Kind().Mobility())
		if got.Size() != want.Size() {
			t.Fatalf("%s: expected %d legal tiles, got %d", label, want.Size(), got.Size())
		}
	}
	if LegalMoves(nil).Size() != 0 {
		t.Fatal("expected empty legal set for nil mover")
	}
}
