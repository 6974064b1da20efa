package hexgrid

import (
	"math"
	"sort"

	"github.com/zyedidia/generic/mapset"
)

// LegalMoves returns every tile reachable from start within mob adjacency
// hops. Round one is start's neighbors; each further round adds the
// neighbors of everything already reached. Occupancy is not considered and
// start itself is included once mob >= 2, so callers filter both.
func LegalMoves(start *Tile, mob int) mapset.Set[*Tile] {
	legal := mapset.New[*Tile]()
	if start == nil || mob <= 0 {
		return legal
	}
	frontier := make([]*Tile, 0, len(start.Neighbors))
	for _, n := range start.Neighbors {
		if !legal.Has(n) {
			legal.Put(n)
			frontier = append(frontier, n)
		}
	}
	for round := 1; round < mob; round++ {
		var next []*Tile
		for _, t := range frontier {
			for _, n := range t.Neighbors {
				if !legal.Has(n) {
					legal.Put(n)
					next = append(next, n)
				}
			}
		}
		if len(next) == 0 {
			break
		}
		frontier = next
	}
	return legal
}

// Sorted returns the members of set ordered by creation index.
func Sorted(set mapset.Set[*Tile]) []*Tile {
	out := make([]*Tile, 0, set.Size())
	set.Each(func(t *Tile) {
		out = append(out, t)
	})
	sort.Slice(out, func(i, j int) bool { return out[i].Index < out[j].Index })
	return out
}

// HitTest returns the tile whose center is nearest to p, provided it lies
// within radius grid units. Pointer resolution uses this to map a click to
// a tile.
func (g *Grid) HitTest(p Vec2, radius float64) (*Tile, bool) {
	var best *Tile
	bestD2 := math.MaxFloat64
	r2 := radius * radius
	for _, t := range g.tiles {
		dx := t.Position.X - p.X
		dy := t.Position.Y - p.Y
		d2 := dx*dx + dy*dy
		if d2 <= r2 && d2 < bestD2 {
			best, bestD2 = t, d2
		}
	}
	return best, best != nil
}
