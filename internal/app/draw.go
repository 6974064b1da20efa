package app

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"

	"github.com/Garsondee/Hex-Skirmish/internal/config"
	"github.com/Garsondee/Hex-Skirmish/internal/game"
	"github.com/Garsondee/Hex-Skirmish/internal/hexgrid"
)

// hexShrink leaves a thin gap between neighboring hexes.
const hexShrink = 0.94

func sideColor(s game.Side) color.RGBA {
	if s == game.SideRed {
		return config.RedColor
	}
	return config.BlueColor
}

func tileColor(v hexgrid.Visual) color.RGBA {
	switch v {
	case hexgrid.VisualHighlighted:
		return config.TileHighColor
	case hexgrid.VisualGreyed:
		return config.TileGreyColor
	default:
		return config.TileNormalColor
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(config.BackgroundColor)

	g.drawBoard(screen)
	g.drawUnits(screen)

	// Board border frame.
	bw := float32(g.boardWidth - 2*config.BorderWidth)
	bh := float32(g.height - 2*config.BorderWidth)
	vector.StrokeRect(screen, config.BorderWidth-4, config.BorderWidth-4, bw+8, bh+8, 2.0, color.RGBA{R: 40, G: 60, B: 80, A: 255}, false)

	drawLogPanel(screen, g.turnLog, g.boardWidth, g.height)
	g.drawStatus(screen)
	if g.showHUD {
		g.drawHUD(screen)
	}
	g.drawInspector(screen)
}

// drawBoard paints every tile from its current visual state, then marks
// bases with their owner's color.
func (g *Game) drawBoard(screen *ebiten.Image) {
	for _, t := range g.world.Grid.Tiles() {
		corners := g.view.hexCorners(t.Position, hexShrink)
		var path vector.Path
		path.MoveTo(corners[0][0], corners[0][1])
		for _, c := range corners[1:] {
			path.LineTo(c[0], c[1])
		}
		path.Close()

		op := &vector.DrawPathOptions{AntiAlias: true}
		op.ColorScale.ScaleWithColor(tileColor(t.Visual()))
		vector.FillPath(screen, &path, &vector.FillOptions{}, op)

		outline := config.TileOutlineColor
		width := float32(1.5)
		if owner, ok := g.world.BaseOwner(t); ok {
			outline = sideColor(owner)
			width = 3
		}
		for i := range corners {
			a, b := corners[i], corners[(i+1)%len(corners)]
			vector.StrokeLine(screen, a[0], a[1], b[0], b[1], width, outline, true)
		}
		if t == g.hover {
			cx, cy := g.view.toScreen(t.Position)
			vector.StrokeCircle(screen, cx, cy, float32(hexRadius*g.view.scale*0.7), 1, color.RGBA{R: 255, G: 255, B: 255, A: 90}, true)
		}
	}
}

// drawUnits draws each unit as a side-colored disc with its label.
func (g *Game) drawUnits(screen *ebiten.Image) {
	active := g.selector.Active()
	for _, u := range g.world.Units() {
		x, y := g.view.toScreen(u.Position())
		vector.FillCircle(screen, x, y, config.UnitRadius, sideColor(u.Side()), true)
		ring := color.RGBA{R: 15, G: 15, B: 15, A: 255}
		if u == active {
			ring = config.TileHighColor
		}
		vector.StrokeCircle(screen, x, y, config.UnitRadius, 2, ring, true)
		if u.Kind() == game.KindAerial {
			vector.StrokeCircle(screen, x, y, config.UnitRadius+4, 1, ring, true)
		}
		text.Draw(screen, u.Label(), basicfont.Face7x13, int(x)-7, int(y)+4, config.TextColor)
	}
}

// drawStatus prints whose turn it is, credits and the last notice along the
// top border.
func (g *Game) drawStatus(screen *ebiten.Image) {
	w := g.world
	blue, red := w.Roster(game.SideBlue), w.Roster(game.SideRed)
	line := fmt.Sprintf("Turn %d  %s to move   blue: %dcr %d bases   red: %dcr %d bases",
		w.Turn(), w.ActiveSide(), blue.Credits, len(blue.Bases), red.Credits, len(red.Bases))
	if winner, over := w.Winner(); over {
		line = fmt.Sprintf("Turn %d  GAME OVER: %s wins   R=restart", w.Turn(), winner)
	}
	text.Draw(screen, line, basicfont.Face7x13, config.BorderWidth, config.BorderWidth-8, sideColor(w.ActiveSide()))
	if g.notice != "" {
		text.Draw(screen, g.notice, basicfont.Face7x13, config.BorderWidth, g.height-8, config.TextColor)
	}
}

func (g *Game) drawHUD(screen *ebiten.Image) {
	lines := []string{
		fmt.Sprintf("click=select/move  mode: %s", g.selector.Mode()),
		"SPACE end turn",
		fmt.Sprintf("1/2/3 buy soldier/aerial/generic (%dcr)", g.cfg.UnitCost),
		"C copy log  R restart  H hide keys",
	}
	const lineH = 14
	const padX = 6
	const padY = 4

	maxLen := 0
	for _, l := range lines {
		if len(l) > maxLen {
			maxLen = len(l)
		}
	}
	boxW := float32(maxLen*7 + padX*2)
	boxH := float32(len(lines)*lineH + padY*2)
	bx := float32(g.boardWidth) - boxW - config.BorderWidth - 4
	by := float32(g.height) - boxH - config.BorderWidth - 4

	vector.FillRect(screen, bx, by, boxW, boxH, color.RGBA{R: 6, G: 10, B: 14, A: 210}, false)
	vector.StrokeRect(screen, bx, by, boxW, boxH, 1.0, color.RGBA{R: 60, G: 90, B: 120, A: 180}, false)
	for i, line := range lines {
		text.Draw(screen, line, basicfont.Face7x13, int(bx)+padX, int(by)+padY+(i+1)*lineH-3, config.TextColor)
	}
}
