package sim

import (
	"fmt"
	"strconv"

	"go.uber.org/multierr"

	"toroid/pkg/convolve"
	"toroid/pkg/core"
	"toroid/pkg/pattern"
	"toroid/pkg/rule"
)

// Config fixes everything about a Simulation at construction.
type Config struct {
	Name     string
	Width    int
	Height   int
	Kernel   core.Kernel
	Topology convolve.Topology
	Strategy convolve.Strategy
	Rule     rule.Rule
	Workers  int
	Seed     int64
	Pattern  pattern.Pattern
}

// DefaultConfig returns Conway's Life on a 256x256 torus seeded at 25% density.
func DefaultConfig() Config {
	return Config{
		Name:     "life",
		Width:    256,
		Height:   256,
		Kernel:   core.Moore(),
		Topology: convolve.Toroidal,
		Strategy: convolve.Buffered,
		Rule:     rule.Conway(),
		Workers:  1,
		Seed:     1,
		Pattern:  pattern.Random{Density: 0.25},
	}
}

// FromMap overlays the shared keys w, h, kernel, topology, strategy,
// workers, seed and pattern onto base. Every unparsable value is reported;
// the returned Config keeps base values for those keys.
func FromMap(cfg map[string]string, base Config) (Config, error) {
	c := base
	var errs error
	if v, ok := cfg["w"]; ok {
		if n, err := strconv.Atoi(v); err != nil || n <= 0 {
			errs = multierr.Append(errs, fmt.Errorf("w=%q: %w", v, core.ErrInvalidDimension))
		} else {
			c.Width = n
		}
	}
	if v, ok := cfg["h"]; ok {
		if n, err := strconv.Atoi(v); err != nil || n <= 0 {
			errs = multierr.Append(errs, fmt.Errorf("h=%q: %w", v, core.ErrInvalidDimension))
		} else {
			c.Height = n
		}
	}
	if v, ok := cfg["kernel"]; ok {
		if p, err := core.ParsePreset(v); err != nil {
			errs = multierr.Append(errs, err)
		} else {
			c.Kernel = p.Kernel()
		}
	}
	if v, ok := cfg["topology"]; ok {
		if t, err := convolve.ParseTopology(v); err != nil {
			errs = multierr.Append(errs, err)
		} else {
			c.Topology = t
		}
	}
	if v, ok := cfg["strategy"]; ok {
		if s, err := convolve.ParseStrategy(v); err != nil {
			errs = multierr.Append(errs, err)
		} else {
			c.Strategy = s
		}
	}
	if v, ok := cfg["workers"]; ok {
		if n, err := strconv.Atoi(v); err != nil || n < 1 {
			errs = multierr.Append(errs, fmt.Errorf("workers=%q: want a positive integer", v))
		} else {
			c.Workers = n
		}
	}
	if v, ok := cfg["seed"]; ok {
		if n, err := strconv.ParseInt(v, 10, 64); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("seed=%q: %w", v, err))
		} else {
			c.Seed = n
		}
	}
	if v, ok := cfg["pattern"]; ok {
		if p, err := pattern.Parse(v, c.Width, c.Height); err != nil {
			errs = multierr.Append(errs, err)
		} else {
			c.Pattern = p
		}
	}
	return c, errs
}
