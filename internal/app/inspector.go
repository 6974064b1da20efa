package app

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/Garsondee/Hex-Skirmish/internal/config"
	"github.com/Garsondee/Hex-Skirmish/internal/game"
)

// Inspector panel: rendered into an offscreen buffer at 1x then blitted at hudScale.
const (
	inspBufW  = 150
	inspBufH  = 84
	inspPad   = 4
	inspLineH = 13
)

// inspectLines describes the tile under the cursor.
func (g *Game) inspectLines() []string {
	t := g.hover
	if t == nil {
		return nil
	}
	lines := []string{
		fmt.Sprintf("Tile %v  #%d", t, t.Index),
		fmt.Sprintf("State: %s", t.Visual()),
		fmt.Sprintf("Neighbors: %d", len(t.Neighbors)),
	}
	if owner, ok := g.world.BaseOwner(t); ok {
		lines = append(lines, fmt.Sprintf("Base: %s", owner))
	}
	if u := g.world.UnitAt(t); u != nil {
		lines = append(lines,
			fmt.Sprintf("Unit: %s %s", u.Label(), u.Kind()),
			fmt.Sprintf("Reach: %d free tiles", len(game.Destinations(u))),
		)
	}
	return lines
}

// drawInspector renders the inspector panel in the top-left corner of the
// board.
func (g *Game) drawInspector(screen *ebiten.Image) {
	lines := g.inspectLines()
	if len(lines) == 0 {
		return
	}
	g.inspBuf.Clear()
	vector.FillRect(g.inspBuf, 0, 0, inspBufW, inspBufH, color.RGBA{R: 8, G: 10, B: 14, A: 220}, false)
	vector.StrokeRect(g.inspBuf, 0.5, 0.5, inspBufW-1, inspBufH-1, 1.0, color.RGBA{R: 60, G: 90, B: 120, A: 200}, false)
	for i, l := range lines {
		ebitenutil.DebugPrintAt(g.inspBuf, l, inspPad, inspPad+i*inspLineH-2)
	}

	opts := &ebiten.DrawImageOptions{}
	opts.GeoM.Scale(hudScale, hudScale)
	opts.GeoM.Translate(float64(g.boardWidth-config.BorderWidth-inspBufW*hudScale), config.BorderWidth+4)
	screen.DrawImage(g.inspBuf, opts)
}
