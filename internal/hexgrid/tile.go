// Package hexgrid implements the staggered hex board: tile construction,
// adjacency and mobility-bounded reachability.
package hexgrid

import "fmt"

// Vec2 is a point in grid-space units (not screen pixels).
type Vec2 struct {
	X, Y float64
}

// Visual is the display state of a tile.
type Visual uint8

const (
	VisualNormal      Visual = iota // default sprite
	VisualHighlighted               // clicked / selected
	VisualGreyed                    // outside the active unit's reach
)

func (v Visual) String() string {
	switch v {
	case VisualNormal:
		return "normal"
	case VisualHighlighted:
		return "highlighted"
	case VisualGreyed:
		return "greyed"
	default:
		return "unknown"
	}
}

// Occupant is anything that can stand on a tile.
type Occupant interface {
	Label() string
}

// Tile is one cell of the board.
type Tile struct {
	X, Y      int   // skewed-offset grid coordinates
	Index     int   // creation order, stable for the session
	Position  Vec2  // grid-space position
	Center    Vec2  // placement point for units
	Neighbors []*Tile
	Occupant  Occupant

	visual Visual
}

func (t *Tile) String() string {
	return fmt.Sprintf("(%d,%d)", t.X, t.Y)
}

// Visual returns the current display state.
func (t *Tile) Visual() Visual { return t.visual }

// Deselect resets the tile to its default appearance.
func (t *Tile) Deselect() { t.visual = VisualNormal }

// Highlight marks the tile as the current selection.
func (t *Tile) Highlight() { t.visual = VisualHighlighted }

// GreyOut dims the tile.
func (t *Tile) GreyOut() { t.visual = VisualGreyed }

// IsOccupied reports whether a unit stands on the tile.
func (t *Tile) IsOccupied() bool { return t.Occupant != nil }

// IsNeighbor reports whether o is in t's adjacency list.
func (t *Tile) IsNeighbor(o *Tile) bool {
	for _, n := range t.Neighbors {
		if n == o {
			return true
		}
	}
	return false
}
