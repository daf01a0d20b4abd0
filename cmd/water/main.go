//go:build ebiten

package main

import (
	"errors"
	"flag"
	"log"

	"water-ca/internal/app"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	flag.Parse()

	engine, err := cfg.Engine()
	if err != nil {
		log.Fatal(err)
	}

	game := app.New(engine, cfg.Scale, cfg.Seed)
	game.SetPaused(cfg.Paused)
	size := engine.Size()

	ebiten.SetWindowTitle("water-ca: " + engine.Mode().String())
	ebiten.SetTPS(cfg.TPS)
	ebiten.SetWindowSize(size.W*cfg.Scale, size.H*cfg.Scale)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
}
