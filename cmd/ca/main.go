//go:build ebiten

package main

import (
	"errors"
	"flag"
	"log"

	"toroid/internal/app"
	"toroid/internal/core"
	_ "toroid/internal/sims/briansbrain"
	_ "toroid/internal/sims/elementary"
	_ "toroid/internal/sims/life"
	_ "toroid/internal/sims/propagation"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	flag.Parse()

	sim, err := core.New(cfg.Sim, cfg.Overrides())
	if err != nil {
		log.Fatalf("build %s: %v", cfg.Sim, err)
	}

	game := app.New(sim, cfg)
	size := sim.Size()

	ebiten.SetWindowTitle("toroid - " + sim.Name())
	ebiten.SetWindowSize(size.W*cfg.Scale+cfg.Panel, size.H*cfg.Scale)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
}
