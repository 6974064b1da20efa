package game

import (
	"github.com/zyedidia/generic/mapset"

	"github.com/Garsondee/Hex-Skirmish/internal/event"
	"github.com/Garsondee/Hex-Skirmish/internal/hexgrid"
)

// Mode is the selection state of the human player's turn.
type Mode uint8

const (
	ModeNormal Mode = iota // nothing selected
	ModeMove               // one unit selected, waiting for a destination
)

func (m Mode) String() string {
	switch m {
	case ModeNormal:
		return "normal"
	case ModeMove:
		return "move"
	default:
		return "unknown"
	}
}

// Selector turns tile clicks into unit selection and movement for the
// human-controlled sides. Mode is ModeMove exactly while a unit is active.
type Selector struct {
	world  *World
	humans mapset.Set[Side]
	mode   Mode
	active *Unit
	sub    event.Subscription
}

// NewSelector creates a selector for world. humans lists the sides driven
// by clicks; blue when none are given. The selection is dropped whenever a
// new turn starts.
func NewSelector(world *World, humans ...Side) *Selector {
	if len(humans) == 0 {
		humans = []Side{SideBlue}
	}
	s := &Selector{world: world, humans: mapset.New[Side]()}
	for _, h := range humans {
		s.humans.Put(h)
	}
	s.sub = world.Events.Subscribe(event.TurnStarted, s)
	return s
}

// Detach stops the selector from following its world's turns. The current
// selection is kept.
func (s *Selector) Detach() {
	s.world.Events.Unsubscribe(s.sub)
}

// Mode is ModeMove while a unit is selected.
func (s *Selector) Mode() Mode { return s.mode }

// Active returns the selected unit, or nil.
func (s *Selector) Active() *Unit { return s.active }

// IsHuman reports whether side is driven by this selector.
func (s *Selector) IsHuman(side Side) bool { return s.humans.Has(side) }

// OnEvent resets the selection at the start of every turn.
func (s *Selector) OnEvent(e event.Event) {
	if e.Type == event.TurnStarted {
		s.reset()
	}
}

func (s *Selector) reset() {
	s.mode = ModeNormal
	s.active = nil
}

// Legal returns the legal-move set of the active unit, or an empty set.
func (s *Selector) Legal() mapset.Set[*hexgrid.Tile] {
	if s.active == nil {
		return mapset.New[*hexgrid.Tile]()
	}
	return LegalMoves(s.active)
}

// Click handles one primary-button press on hit and reports whether it
// moved a unit. Clicks without a tile, outside a human turn or after the
// game has ended do nothing.
//
// In ModeMove a click on a free legal tile moves the active unit there and
// clears the selection. Any other click drops the selection, selects the
// clicked unit if it belongs to the side to move, and highlights hit.
func (s *Selector) Click(hit *hexgrid.Tile) bool {
	w := s.world
	if hit == nil || w.Over() || !s.humans.Has(w.ActiveSide()) {
		return false
	}
	w.Grid.DeselectAllExcept(hit)

	legal := s.Legal()
	if s.mode == ModeMove && legal.Has(hit) && hit != s.active.Tile() && !hit.IsOccupied() {
		w.MoveUnit(s.active, hit)
		s.reset()
		return true
	}

	s.reset()
	if u := unitOn(hit); u != nil && u.Side() == w.ActiveSide() {
		s.mode = ModeMove
		s.active = u
		w.Grid.GreyOutAll()
		s.Legal().Each(func(t *hexgrid.Tile) {
			t.Deselect()
		})
	}
	hit.Highlight()
	return false
}
