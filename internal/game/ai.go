package game

import (
	"github.com/Garsondee/Hex-Skirmish/internal/hexgrid"
)

// DummyAI plays a side by moving each of its units to a random free tile
// within reach, then ending the turn.
type DummyAI struct {
	world *World
	side  Side
}

func NewDummyAI(world *World, side Side) *DummyAI {
	return &DummyAI{world: world, side: side}
}

func (ai *DummyAI) Side() Side { return ai.side }

// Destinations returns the tiles u may move to: its legal moves minus
// occupied tiles and its own tile, in tile order.
func Destinations(u *Unit) []*hexgrid.Tile {
	var out []*hexgrid.Tile
	for _, t := range hexgrid.Sorted(LegalMoves(u)) {
		if t != u.Tile() && !t.IsOccupied() {
			out = append(out, t)
		}
	}
	return out
}

// StartTurn plays one full turn and returns the number of units moved. A
// side without bases does not move. The turn always ends, so control
// passes to the other side even when nothing moved. Nothing happens when
// it is not this side's turn.
func (ai *DummyAI) StartTurn() int {
	w := ai.world
	if w.Over() || w.ActiveSide() != ai.side {
		return 0
	}
	w.Grid.DeselectAll()
	w.GrantIncome(ai.side)

	moved := 0
	r := w.Roster(ai.side)
	if r.HasBases() {
		for _, u := range r.Units {
			dst := Destinations(u)
			if len(dst) == 0 {
				continue
			}
			w.MoveUnit(u, dst[w.rng.Intn(len(dst))])
			moved++
		}
	} else {
		w.Log.Add(w.turn, "--", ai.side.String(), "ai", "no_bases", "holding position", 0)
	}
	w.EndTurn()
	return moved
}
