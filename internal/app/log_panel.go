package app

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/Garsondee/Hex-Skirmish/internal/config"
	"github.com/Garsondee/Hex-Skirmish/internal/game"
)

const logLineHeight = 14

// drawLogPanel renders the turn log on the right side of the screen,
// newest entry at the bottom.
func drawLogPanel(screen *ebiten.Image, tl *game.TurnLog, panelX, panelH int) {
	px := float32(panelX)
	pw := float32(config.LogPanelWidth)
	// Panel background.
	vector.FillRect(screen, px, 0, pw, float32(panelH), color.RGBA{R: 10, G: 12, B: 16, A: 248}, false)
	// Left separator line.
	vector.StrokeLine(screen, px, 0, px, float32(panelH), 1.0, color.RGBA{R: 50, G: 60, B: 80, A: 255}, false)

	// Title bar.
	vector.FillRect(screen, px, 0, pw, 16, color.RGBA{R: 20, G: 26, B: 36, A: 255}, false)
	ebitenutil.DebugPrintAt(screen, "TURN LOG", panelX+8, 0)
	vector.StrokeLine(screen, px, 16, px+pw, 16, 1.0, color.RGBA{R: 50, G: 70, B: 100, A: 200}, false)

	entries := tl.Recent()
	maxVisible := (panelH - 24) / logLineHeight
	if len(entries) > maxVisible {
		entries = entries[len(entries)-maxVisible:]
	}
	recent := 3 // how many latest entries to highlight

	y := 20
	for i, e := range entries {
		if i >= len(entries)-recent {
			vector.FillRect(screen, px+2, float32(y), pw-4, logLineHeight, color.RGBA{R: 30, G: 36, B: 48, A: 160}, false)
		}
		// Side colour indicator.
		vector.FillRect(screen, px+5, float32(y+4), 3, 6, sideColor(e.Side), false)
		ebitenutil.DebugPrintAt(screen, e.String(), panelX+12, y-1)
		y += logLineHeight
	}
}
