// Command ca-sweep runs every registered simulation under each topology,
// strategy and worker count and checks that all variants of a sim reach the
// same state as its sequential buffered baseline.
package main

import (
	"bytes"
	"flag"
	"fmt"
	"log"
	"os"
	"runtime"
	"sort"
	"strconv"
	"sync"
	"time"

	"toroid/internal/app"
	"toroid/internal/core"
	_ "toroid/internal/sims/briansbrain"
	_ "toroid/internal/sims/elementary"
	_ "toroid/internal/sims/life"
	_ "toroid/internal/sims/propagation"
	"toroid/pkg/convolve"
)

type scenario struct {
	sim      string
	topology convolve.Topology
	strategy convolve.Strategy
	workers  int
}

func (s scenario) String() string {
	return fmt.Sprintf("%s/%s/%s/w%d", s.sim, s.topology, s.strategy, s.workers)
}

func (s scenario) baseline() scenario {
	return scenario{sim: s.sim, topology: s.topology, strategy: convolve.Buffered, workers: 1}
}

type scenarioResult struct {
	scenario scenario
	cells    []uint8
	elapsed  time.Duration
	err      error
}

func main() {
	steps := flag.Int("steps", 64, "generations per scenario")
	workers := flag.Int("workers", runtime.NumCPU(), "number of worker goroutines")
	size := flag.Int("size", 96, "grid width and height")
	var extra app.KVList
	flag.Var(&extra, "set", "extra sim parameter in key=value form (repeatable)")
	flag.Parse()

	var sets []scenario
	for _, name := range core.Names() {
		for _, topo := range []convolve.Topology{convolve.Toroidal, convolve.Bounded} {
			for _, strategy := range []convolve.Strategy{convolve.Buffered, convolve.Inline, convolve.Spectral} {
				if strategy == convolve.Spectral && topo != convolve.Toroidal {
					continue
				}
				for _, n := range []int{1, 2, 4} {
					sets = append(sets, scenario{sim: name, topology: topo, strategy: strategy, workers: n})
				}
			}
		}
	}

	log.Printf("Sweeping %d scenarios (%d workers, %d steps, %dx%d)", len(sets), *workers, *steps, *size, *size)

	jobs := make(chan scenario)
	results := make(chan scenarioResult)
	var wg sync.WaitGroup

	for i := 0; i < *workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for sc := range jobs {
				results <- runScenario(sc, *size, *steps, extra.Map())
			}
		}()
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	go func() {
		for _, sc := range sets {
			jobs <- sc
		}
		close(jobs)
	}()

	start := time.Now()
	byScenario := map[scenario]scenarioResult{}
	for res := range results {
		if res.err != nil {
			log.Fatalf("%s: %v", res.scenario, res.err)
		}
		byScenario[res.scenario] = res
	}

	sort.Slice(sets, func(i, j int) bool { return sets[i].String() < sets[j].String() })
	mismatches := 0
	for _, sc := range sets {
		res := byScenario[sc]
		base := byScenario[sc.baseline()]
		status := "ok"
		if !bytes.Equal(res.cells, base.cells) {
			status = "MISMATCH"
			mismatches++
		}
		fmt.Printf("%-40s %8s %s\n", sc, res.elapsed.Round(time.Microsecond), status)
	}
	log.Printf("%d scenarios, %d mismatches (elapsed %s)", len(sets), mismatches, time.Since(start).Round(time.Millisecond))
	if mismatches > 0 {
		os.Exit(1)
	}
}

func runScenario(sc scenario, size, steps int, extra map[string]string) scenarioResult {
	cfg := map[string]string{}
	for k, v := range extra {
		cfg[k] = v
	}
	cfg["w"] = strconv.Itoa(size)
	cfg["h"] = strconv.Itoa(size)
	cfg["topology"] = sc.topology.String()
	cfg["strategy"] = sc.strategy.String()
	cfg["workers"] = strconv.Itoa(sc.workers)

	s, err := core.New(sc.sim, cfg)
	if err != nil {
		return scenarioResult{scenario: sc, err: err}
	}
	start := time.Now()
	for i := 0; i < steps; i++ {
		s.Step()
	}
	return scenarioResult{
		scenario: sc,
		cells:    append([]uint8(nil), s.Cells()...),
		elapsed:  time.Since(start),
	}
}
