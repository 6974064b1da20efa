package hexgrid

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidDimensions = errors.New("hexgrid: width and height must be at least 1")
	ErrNoSuchTile        = errors.New("hexgrid: no such tile")
)

// Layout constants for grid-space positions.
const (
	colSpacing  = 1.5
	rowSpacing  = 1.3
	rowInset    = 0.5  // horizontal start of every row
	oddShift    = -0.7 // extra horizontal shift on odd rows
	centerNudge = 0.1
)

// NeighborOffsets are the six adjacency offsets, clockwise from east.
// They approximate hex adjacency for the staggered column numbering used by
// Build and must stay in this order: neighbor lists are filled in it.
var NeighborOffsets = [6][2]int{
	{+1, 0},
	{0, -1},
	{-1, -1},
	{-1, 0},
	{0, +1},
	{+1, +1},
}

// rowPattern is the horizontal stagger applied to a row.
type rowPattern int

const (
	rowInitial rowPattern = iota // first row only
	rowEven
	rowOdd
)

// Grid owns every tile of the board.
type Grid struct {
	width     int
	height    int
	realWidth int
	cells     [][]*Tile // [x][y]; nil where the stagger leaves a hole
	tiles     []*Tile   // creation order
}

// RealWidth returns the number of grid columns needed for a staggered board
// of the given width and height.
func RealWidth(width, height int) int {
	return width + (height-1)/2
}

// Build constructs a width×height board and its adjacency lists.
//
// Rows are laid out bottom-up. Every second row is shifted left by 0.7 and
// every row after a shifted one starts one grid column further right, so the
// column index of a tile is skewed rather than a plain offset coordinate.
func Build(width, height int) (*Grid, error) {
	if width < 1 || height < 1 {
		return nil, fmt.Errorf("%w: got %dx%d", ErrInvalidDimensions, width, height)
	}
	g := &Grid{
		width:     width,
		height:    height,
		realWidth: RealWidth(width, height),
		tiles:     make([]*Tile, 0, width*height),
	}
	g.cells = make([][]*Tile, g.realWidth)
	for x := range g.cells {
		g.cells[x] = make([]*Tile, height)
	}

	pattern := rowInitial
	count := 0
	for y := 0; y < height; y++ {
		col := count
		for x := 0; x < width; x++ {
			g.addTile(col, y, x, pattern)
			col++
		}
		switch pattern {
		case rowOdd:
			pattern = rowEven
			count++
		default:
			pattern = rowOdd
		}
	}

	g.buildAdjacency()
	return g, nil
}

func (g *Grid) addTile(col, row, rowPos int, pattern rowPattern) {
	px := colSpacing*float64(rowPos) + rowInset
	if pattern == rowOdd {
		px += oddShift
	}
	py := rowSpacing * float64(row)

	t := &Tile{
		X:        col,
		Y:        row,
		Index:    len(g.tiles),
		Position: Vec2{X: px, Y: py},
		Center:   Vec2{X: px + centerNudge, Y: py + centerNudge},
	}
	g.cells[col][row] = t
	g.tiles = append(g.tiles, t)
}

// buildAdjacency fills every tile's neighbor list from NeighborOffsets.
func (g *Grid) buildAdjacency() {
	for _, t := range g.tiles {
		t.Neighbors = make([]*Tile, 0, len(NeighborOffsets))
		for _, off := range NeighborOffsets {
			if n, ok := g.At(t.X+off[0], t.Y+off[1]); ok {
				t.Neighbors = append(t.Neighbors, n)
			}
		}
	}
}

func (g *Grid) inBounds(x, y int) bool {
	return x >= 0 && x < g.realWidth && y >= 0 && y < g.height
}

// At returns the tile at (x, y). The second result is false when the
// coordinates are out of range or fall in a stagger hole.
func (g *Grid) At(x, y int) (*Tile, bool) {
	if !g.inBounds(x, y) {
		return nil, false
	}
	t := g.cells[x][y]
	return t, t != nil
}

// Lookup is At with an error result for callers that propagate failures.
func (g *Grid) Lookup(x, y int) (*Tile, error) {
	t, ok := g.At(x, y)
	if !ok {
		return nil, fmt.Errorf("%w at (%d,%d)", ErrNoSuchTile, x, y)
	}
	return t, nil
}

// Tiles returns every tile in creation order. The slice is shared; do not
// modify it.
func (g *Grid) Tiles() []*Tile { return g.tiles }

// Width is the number of tiles per row.
func (g *Grid) Width() int { return g.width }

// Height is the number of rows.
func (g *Grid) Height() int { return g.height }

// RealWidth is the number of grid columns, including stagger holes.
func (g *Grid) RealWidth() int { return g.realWidth }

// DeselectAll resets every tile to its default appearance.
func (g *Grid) DeselectAll() {
	for _, t := range g.tiles {
		t.Deselect()
	}
}

// DeselectAllExcept resets every tile but keep.
func (g *Grid) DeselectAllExcept(keep *Tile) {
	for _, t := range g.tiles {
		if t != keep {
			t.Deselect()
		}
	}
}

// GreyOutAll dims every tile.
func (g *Grid) GreyOutAll() {
	for _, t := range g.tiles {
		t.GreyOut()
	}
}

// Bounds returns the grid-space bounding box of all tile positions.
func (g *Grid) Bounds() (lo, hi Vec2) {
	for i, t := range g.tiles {
		p := t.Position
		if i == 0 {
			lo, hi = p, p
			continue
		}
		if p.X < lo.X {
			lo.X = p.X
		}
		if p.Y < lo.Y {
			lo.Y = p.Y
		}
		if p.X > hi.X {
			hi.X = p.X
		}
		if p.Y > hi.Y {
			hi.Y = p.Y
		}
	}
	return lo, hi
}
