// Package app is the ebiten window around a game.World: it draws the board
// from the tiles' visual state each frame and turns mouse and keyboard input
// into selector clicks and turn commands.
package app

import (
	"errors"
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/rs/zerolog"

	"github.com/Garsondee/Hex-Skirmish/internal/config"
	"github.com/Garsondee/Hex-Skirmish/internal/game"
	"github.com/Garsondee/Hex-Skirmish/internal/hexgrid"
)

// hudScale is the integer upscale factor applied to the inspector text.
const hudScale = 2

type Game struct {
	width      int
	height     int
	boardWidth int // playfield width (log panel takes the rest)

	cfg      config.Config
	logger   zerolog.Logger
	world    *game.World
	selector *game.Selector
	ai       *game.DummyAI
	turnLog  *game.TurnLog
	view     view

	hover   *hexgrid.Tile // tile under the cursor, for the inspector
	aiWait  int           // frames until the AI plays
	notice  string        // last command feedback shown in the HUD
	showHUD bool

	prevKeys map[ebiten.Key]bool

	// Offscreen buffer for the inspector, rendered at 1x then blitted at hudScale.
	inspBuf *ebiten.Image
}

// New creates the window state and starts a session from cfg. Blue is
// played with the mouse, red by the DummyAI.
func New(cfg config.Config, logger zerolog.Logger) (*Game, error) {
	g := &Game{
		width:      config.ScreenWidth,
		height:     config.ScreenHeight,
		boardWidth: config.ScreenWidth - config.LogPanelWidth,
		cfg:        cfg,
		logger:     logger,
		showHUD:    true,
		prevKeys:   make(map[ebiten.Key]bool),
		inspBuf:    ebiten.NewImage(inspBufW, inspBufH),
	}
	if err := g.newSession(); err != nil {
		return nil, err
	}
	return g, nil
}

// newSession throws away the current world and sets up a fresh one.
func (g *Game) newSession() error {
	if g.world != nil {
		g.selector.Detach()
		g.turnLog.Unfollow()
	}
	w, err := game.NewWorld(g.cfg)
	if err != nil {
		return err
	}
	w.SetLogger(g.logger)
	g.world = w
	g.selector = game.NewSelector(w, game.SideBlue)
	g.ai = game.NewDummyAI(w, game.SideRed)
	g.turnLog = game.NewTurnLog()
	g.turnLog.Follow(w)
	g.view = newView(w.Grid, float64(g.boardWidth), float64(g.height))
	g.hover = nil
	g.aiWait = config.AIDelayFrames
	g.notice = ""
	if err := w.Setup(); err != nil {
		return err
	}
	g.logger.Info().Str("session", w.ID.String()).Int("width", g.cfg.Width).Int("height", g.cfg.Height).Msg("session started")
	return nil
}

func (g *Game) Update() error {
	if err := g.handleInput(); err != nil {
		return err
	}
	if g.world.Over() || g.selector.IsHuman(g.world.ActiveSide()) {
		return nil
	}
	// AI turn: wait a moment so the hand-over is visible, then play.
	if g.aiWait > 0 {
		g.aiWait--
		return nil
	}
	moved := g.ai.StartTurn()
	g.logger.Debug().Int("moved", moved).Msg("ai turn done")
	g.aiWait = config.AIDelayFrames
	return nil
}

// handleInput processes clicks and edge-triggered keypresses.
func (g *Game) handleInput() error {
	currentKeys := map[ebiten.Key]bool{}
	pressed := func(k ebiten.Key) bool {
		currentKeys[k] = ebiten.IsKeyPressed(k)
		return currentKeys[k] && !g.prevKeys[k]
	}
	defer func() { g.prevKeys = currentKeys }()

	mx, my := ebiten.CursorPosition()
	g.hover = g.tileAt(mx, my)

	// Left mouse click: select, or move the selected unit.
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) && g.hover != nil {
		g.selector.Click(g.hover)
	}

	humanTurn := !g.world.Over() && g.selector.IsHuman(g.world.ActiveSide())

	// Space / Enter: end the human turn.
	space := pressed(ebiten.KeySpace)
	enter := pressed(ebiten.KeyEnter)
	if (space || enter) && humanTurn {
		g.world.EndTurn()
		g.notice = ""
	}

	// 1-3: buy a reinforcement on a free base.
	buyKeys := []struct {
		key  ebiten.Key
		kind game.UnitKind
	}{
		{ebiten.Key1, game.KindSoldier},
		{ebiten.Key2, game.KindAerial},
		{ebiten.Key3, game.KindGeneric},
	}
	for _, b := range buyKeys {
		if pressed(b.key) && humanTurn {
			g.reinforce(b.kind)
		}
	}

	// C: copy the full session log.
	if pressed(ebiten.KeyC) {
		g.copyLog()
	}

	// H: toggle HUD key legend.
	if pressed(ebiten.KeyH) {
		g.showHUD = !g.showHUD
	}

	// R: restart.
	if pressed(ebiten.KeyR) {
		return g.newSession()
	}
	return nil
}

func (g *Game) reinforce(kind game.UnitKind) {
	side := g.world.ActiveSide()
	u, err := g.world.Reinforce(side, kind)
	switch {
	case errors.Is(err, game.ErrInsufficientCredits):
		g.notice = fmt.Sprintf("need %d credits for a %s", g.cfg.UnitCost, kind)
	case errors.Is(err, game.ErrNoFreeBase):
		g.notice = "every base is occupied"
	case err != nil:
		g.notice = err.Error()
		g.logger.Error().Err(err).Msg("reinforce")
	default:
		g.notice = fmt.Sprintf("%s deployed", u.Label())
	}
}

func (g *Game) copyLog() {
	if err := clipboard.WriteAll(g.world.Log.Format()); err != nil {
		g.notice = "clipboard unavailable"
		g.logger.Warn().Err(err).Msg("copy session log")
		return
	}
	g.notice = fmt.Sprintf("copied %d log lines", g.world.Log.Len())
}

// tileAt resolves a cursor position to the tile under it, or nil.
func (g *Game) tileAt(mx, my int) *hexgrid.Tile {
	if mx < 0 || mx >= g.boardWidth || my < 0 || my >= g.height {
		return nil
	}
	t, _ := g.world.Grid.HitTest(g.view.toGrid(float64(mx), float64(my)), hexRadius)
	return t
}

func (g *Game) Layout(_, _ int) (int, int) {
	return g.width, g.height
}

// World returns the running session.
func (g *Game) World() *game.World { return g.world }
