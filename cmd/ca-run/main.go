// Command ca-run steps a registered simulation headlessly and logs tick
// statistics.
package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"os"
	"os/signal"

	"toroid/internal/app"
	"toroid/internal/core"
	_ "toroid/internal/sims/briansbrain"
	_ "toroid/internal/sims/elementary"
	_ "toroid/internal/sims/life"
	_ "toroid/internal/sims/propagation"
	"toroid/pkg/sim"
)

func main() {
	cfg := app.NewConfig()
	cfg.TPS = 0
	cfg.Bind(flag.CommandLine)
	steps := flag.Int("steps", 500, "generations to run")
	every := flag.Int("every", 50, "log stats every N generations")
	list := flag.Bool("list", false, "list registered simulations and exit")
	flag.Parse()

	if *list {
		for _, name := range core.Names() {
			log.Println(name)
		}
		return
	}

	s, err := core.New(cfg.Sim, cfg.Overrides())
	if err != nil {
		log.Fatalf("build %s: %v", cfg.Sim, err)
	}
	stats, ok := s.(core.StatsProvider)
	if !ok {
		log.Fatalf("%s reports no stats", s.Name())
	}
	if p, ok := s.(core.ParameterProvider); ok {
		for _, g := range p.Parameters().Groups {
			for _, param := range g.Params {
				log.Printf("%s.%s=%s", g.Name, param.Key, param.Value)
			}
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var pacer *core.FixedStep
	if cfg.TPS > 0 {
		pacer = core.NewFixedStep(cfg.TPS)
	}
	logger := sim.LogObserver{Logger: log.Default(), Every: *every}
	for i := 0; i < *steps; i++ {
		if pacer != nil {
			if err := pacer.Wait(ctx); err != nil {
				if errors.Is(err, context.Canceled) {
					log.Printf("interrupted after %d generations", i)
					return
				}
				log.Fatal(err)
			}
		} else if ctx.Err() != nil {
			log.Printf("interrupted after %d generations", i)
			return
		}
		s.Step()
		logger.TickCommitted(stats.Stats())
	}
	st := stats.Stats()
	log.Printf("done: %s gen=%d pop=%d", s.Name(), st.Generation, st.Population)
}
