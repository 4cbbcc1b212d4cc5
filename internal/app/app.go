//go:build ebiten

package app

import (
	"log"
	"time"

	"toroid/internal/core"
	"toroid/internal/render"
	"toroid/internal/ui"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Game adapts a core simulation to the ebiten.Game interface.
type Game struct {
	sim     core.Sim
	painter *render.GridPainter
	overlay *ui.Overlay
	hud     *ui.HUD
	pacer   *core.FixedStep

	scale     int
	panel     int
	paused    bool
	tickOnce  bool
	seed      int64
	seedValue int
}

// New constructs a Game for the provided simulation.
func New(sim core.Sim, cfg *Config) *Game {
	size := sim.Size()
	return &Game{
		sim:       sim,
		painter:   render.NewGridPainter(size.W, size.H, render.ForSim(sim.Name())),
		overlay:   ui.NewOverlay(sim, cfg.Scale),
		hud:       ui.NewHUD(sim, cfg.Panel),
		pacer:     core.NewFixedStep(cfg.TPS),
		scale:     cfg.Scale,
		panel:     cfg.Panel,
		seed:      cfg.Seed,
		seedValue: SeedValue(sim.Name()),
	}
}

// Reset reinitializes the simulation state with the provided seed.
func (g *Game) Reset(seed int64) {
	g.seed = seed
	g.sim.Reset(seed)
	g.overlay.Observe()
	g.tickOnce = false
}

// Update handles per-frame logic and advances the simulation.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.paused = !g.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		g.paused = false
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		g.tickOnce = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.Reset(g.seed)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		g.Reset(time.Now().UnixNano())
	}
	if ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		g.seedAtCursor()
	}

	g.overlay.Update()

	// Seeding happens between ticks only; Step runs to completion here.
	if (!g.paused && g.pacer.ShouldStep()) || g.tickOnce {
		g.sim.Step()
		g.overlay.Observe()
		g.tickOnce = false
	}
	g.hud.Update()
	return nil
}

func (g *Game) seedAtCursor() {
	cx, cy := ebiten.CursorPosition()
	x, y, ok := CellAt(cx, cy, g.scale, g.sim.Size())
	if !ok {
		return
	}
	if err := g.sim.Seed(x, y, g.seedValue); err != nil {
		log.Printf("seed (%d,%d): %v", x, y, err)
	}
}

// Draw renders the current simulation state.
func (g *Game) Draw(screen *ebiten.Image) {
	g.painter.Blit(screen, g.sim.Cells(), g.scale)
	g.overlay.Draw(screen)
	g.hud.Draw(screen, g.sim.Size().W*g.scale, g.scale)
}

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	s := g.sim.Size()
	return s.W*g.scale + g.panel, s.H * g.scale
}
