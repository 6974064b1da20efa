package main

import (
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/Garsondee/Hex-Skirmish/internal/app"
	"github.com/Garsondee/Hex-Skirmish/internal/config"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}
	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}

	g, err := app.New(cfg, log.Logger)
	if err != nil {
		log.Fatal().Err(err).Msg("start session")
	}
	ebiten.SetWindowTitle("Hex Skirmish")
	ebiten.SetWindowSize(config.ScreenWidth, config.ScreenHeight)
	if err := ebiten.RunGame(g); err != nil {
		log.Fatal().Err(err).Msg("run game")
	}
}
