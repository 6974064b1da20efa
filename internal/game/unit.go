package game

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/zyedidia/generic/mapset"

	"github.com/Garsondee/Hex-Skirmish/internal/config"
	"github.com/Garsondee/Hex-Skirmish/internal/hexgrid"
)

// ErrUnknownUnitKind is returned when a unit tag does not name a kind.
var ErrUnknownUnitKind = errors.New("unknown unit kind")

// UnitKind is the closed set of unit variants.
type UnitKind uint8

const (
	KindSoldier UnitKind = iota // infantry
	KindAerial                  // long-range mover
	KindGeneric                 // baseline opponent unit
	kindCount                   // sentinel
)

func (k UnitKind) String() string {
	switch k {
	case KindSoldier:
		return "soldier"
	case KindAerial:
		return "aerial"
	case KindGeneric:
		return "generic"
	default:
		return "unknown"
	}
}

// Mobility returns the adjacency hops a unit of this kind may cover per move.
func (k UnitKind) Mobility() int {
	switch k {
	case KindSoldier:
		return config.SoldierMobility
	case KindAerial:
		return config.AerialMobility
	case KindGeneric:
		return config.GenericMobility
	default:
		return 0
	}
}

func (k UnitKind) valid() bool { return k < kindCount }

// ParseUnitKind resolves a unit tag such as "Soldier" to its kind.
func ParseUnitKind(tag string) (UnitKind, error) {
	switch strings.ToLower(strings.TrimSpace(tag)) {
	case "soldier":
		return KindSoldier, nil
	case "aerial":
		return KindAerial, nil
	case "generic":
		return KindGeneric, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownUnitKind, tag)
	}
}

// Mover is the capability shared by every unit kind.
type Mover interface {
	Tile() *hexgrid.Tile
	Mobility() int
	MoveTo(dst *hexgrid.Tile)
}

var _ Mover = (*Unit)(nil)

// Unit is a piece on the board.
type Unit struct {
	id    uuid.UUID
	label string
	kind  UnitKind
	side  Side
	mob   int
	tile  *hexgrid.Tile
	pos   hexgrid.Vec2 // grid-space draw position
}

func newUnit(label string, kind UnitKind, side Side) *Unit {
	return &Unit{
		id:    uuid.New(),
		label: label,
		kind:  kind,
		side:  side,
		mob:   kind.Mobility(),
	}
}

func (u *Unit) ID() uuid.UUID { return u.id }
func (u *Unit) Label() string { return u.label }
func (u *Unit) Kind() UnitKind { return u.kind }
func (u *Unit) Side() Side { return u.side }
func (u *Unit) Mobility() int { return u.mob }
func (u *Unit) Tile() *hexgrid.Tile { return u.tile }
func (u *Unit) Position() hexgrid.Vec2 { return u.pos }
func (u *Unit) String() string { return u.label }
func (u *Unit) OnBoard() bool { return u.tile != nil }

// MoveTo relocates the unit to dst without checking legality; callers
// decide whether the move is allowed. The previous tile is vacated so a
// tile never lists a unit that has left it.
func (u *Unit) MoveTo(dst *hexgrid.Tile) {
	u.vacate()
	u.pos = dst.Center
	dst.Occupant = u
	dst.Deselect()
	u.tile = dst
}

// place puts a freshly spawned unit on t.
func (u *Unit) place(t *hexgrid.Tile) {
	u.pos = t.Center
	t.Occupant = u
	u.tile = t
}

func (u *Unit) vacate() {
	if u.tile != nil && u.tile.Occupant == hexgrid.Occupant(u) {
		u.tile.Occupant = nil
	}
	u.tile = nil
}

// LegalMoves returns the tiles m can reach this move, occupied or not.
func LegalMoves(m Mover) mapset.Set[*hexgrid.Tile] {
	if m == nil {
		return mapset.New[*hexgrid.Tile]()
	}
	return hexgrid.LegalMoves(m.Tile(), m.Mobility())
}

// unitOn returns the unit standing on t, or nil.
func unitOn(t *hexgrid.Tile) *Unit {
	if t == nil {
		return nil
	}
	u, _ := t.Occupant.(*Unit)
	return u
}
