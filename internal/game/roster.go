package game

import (
	"slices"

	"github.com/Garsondee/Hex-Skirmish/internal/hexgrid"
)

// Side identifies one of the two rosters.
type Side int

const (
	SideBlue  Side = iota // human player by default
	SideRed               // scripted opponent by default
	sideCount             // sentinel
)

func (s Side) String() string {
	switch s {
	case SideBlue:
		return "blue"
	case SideRed:
		return "red"
	default:
		return "unknown"
	}
}

// Opponent returns the other side.
func (s Side) Opponent() Side {
	if s == SideBlue {
		return SideRed
	}
	return SideBlue
}

// labelPrefix is the first character of unit labels, e.g. "B0".
func (s Side) labelPrefix() string {
	if s == SideBlue {
		return "B"
	}
	return "R"
}

// Roster is one side's units, bases and credits.
type Roster struct {
	Side    Side
	Units   []*Unit
	Bases   []*hexgrid.Tile
	Credits int
}

func newRoster(side Side, credits int) *Roster {
	return &Roster{Side: side, Credits: credits}
}

// HasBases reports whether the side still owns at least one base.
func (r *Roster) HasBases() bool { return len(r.Bases) > 0 }

// Owns reports whether t is one of the side's bases.
func (r *Roster) Owns(t *hexgrid.Tile) bool {
	return slices.Contains(r.Bases, t)
}

// AddCredits grants perBase credits for every owned base and returns the
// amount granted.
func (r *Roster) AddCredits(perBase int) int {
	granted := perBase * len(r.Bases)
	r.Credits += granted
	return granted
}

// Defeated reports whether the side has neither bases nor units left.
func (r *Roster) Defeated() bool {
	return len(r.Bases) == 0 && len(r.Units) == 0
}

// FreeBase returns the first owned base with nobody on it.
func (r *Roster) FreeBase() (*hexgrid.Tile, bool) {
	for _, b := range r.Bases {
		if !b.IsOccupied() {
			return b, true
		}
	}
	return nil, false
}

func (r *Roster) addBase(t *hexgrid.Tile) {
	if !r.Owns(t) {
		r.Bases = append(r.Bases, t)
	}
}

func (r *Roster) removeBase(t *hexgrid.Tile) {
	r.Bases = slices.DeleteFunc(r.Bases, func(b *hexgrid.Tile) bool { return b == t })
}

func (r *Roster) removeUnit(u *Unit) {
	r.Units = slices.DeleteFunc(r.Units, func(x *Unit) bool { return x == u })
}
