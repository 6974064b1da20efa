package app

import (
	"math"

	"github.com/Garsondee/Hex-Skirmish/internal/config"
	"github.com/Garsondee/Hex-Skirmish/internal/hexgrid"
)

// hexRadius is the corner radius of a pointy-top hex in grid units. Tiles in
// a row are 1.5 apart, which is sqrt(3) radii.
const hexRadius = 0.866

// view maps grid space (y up, row 0 at the bottom) to screen pixels.
type view struct {
	lo, hi hexgrid.Vec2 // tile position bounds
	scale  float64      // pixels per grid unit
	offX   float64
	offY   float64
}

// newView fits the board into a w×h pixel area inside the window border.
// The scale never exceeds config.HexScale.
func newView(g *hexgrid.Grid, w, h float64) view {
	lo, hi := g.Bounds()
	boardW := hi.X - lo.X + 2*hexRadius
	boardH := hi.Y - lo.Y + 2*hexRadius
	border := float64(config.BorderWidth)
	scale := math.Min(config.HexScale, math.Min((w-2*border)/boardW, (h-2*border)/boardH))
	if scale <= 0 {
		scale = 1
	}
	return view{
		lo:    lo,
		hi:    hi,
		scale: scale,
		offX:  border + hexRadius*scale,
		offY:  border + hexRadius*scale,
	}
}

func (v view) toScreen(p hexgrid.Vec2) (float32, float32) {
	x := v.offX + (p.X-v.lo.X)*v.scale
	y := v.offY + (v.hi.Y-p.Y)*v.scale
	return float32(x), float32(y)
}

func (v view) toGrid(x, y float64) hexgrid.Vec2 {
	return hexgrid.Vec2{
		X: (x-v.offX)/v.scale + v.lo.X,
		Y: v.hi.Y - (y-v.offY)/v.scale,
	}
}

// hexCorners returns the six screen-space corners of the hex at p, scaled
// by shrink to leave a gap between neighbors.
func (v view) hexCorners(p hexgrid.Vec2, shrink float64) [6][2]float32 {
	cx, cy := v.toScreen(p)
	r := hexRadius * v.scale * shrink
	var out [6][2]float32
	for i := range out {
		a := math.Pi/6 + float64(i)*math.Pi/3
		out[i] = [2]float32{cx + float32(r*math.Cos(a)), cy + float32(r*math.Sin(a))}
	}
	return out
}
