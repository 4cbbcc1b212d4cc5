package propagation

import (
	"fmt"
	"image"
	"strconv"

	"go.uber.org/multierr"

	"toroid/internal/core"
	"toroid/pkg/convolve"
	kernel "toroid/pkg/core"
	"toroid/pkg/pattern"
	"toroid/pkg/rule"
	"toroid/pkg/sim"
)

// Config holds the engine settings plus the decay parameters.
type Config struct {
	sim.Config
	Decay rule.Decay
}

// DefaultConfig starts a single full-strength pulse in the middle of a
// bounded 160x100 grid with cardinal neighbors.
func DefaultConfig() Config {
	c := sim.DefaultConfig()
	c.Name = "propagation"
	c.Width, c.Height = 160, 100
	c.Kernel = kernel.Cardinal()
	c.Topology = convolve.Bounded
	c.Pattern = pattern.Pulse{At: image.Pt(80, 50), Value: 255}
	return Config{Config: c, Decay: rule.DefaultDecay()}
}

// FromMap populates a Config from a string map. Besides the engine keys it
// reads "threshold" (0-255), "decay" and "spread" (both in [0,1]).
func FromMap(cfg map[string]string) (Config, error) {
	c := DefaultConfig()
	base, err := sim.FromMap(cfg, c.Config)
	c.Config = base
	if _, moved := cfg["w"]; moved {
		c.Pattern = recentre(c.Pattern, c.Width, c.Height)
	} else if _, moved := cfg["h"]; moved {
		c.Pattern = recentre(c.Pattern, c.Width, c.Height)
	}
	if v, ok := cfg["threshold"]; ok {
		if n, perr := strconv.Atoi(v); perr != nil || n < 0 || n > 255 {
			err = multierr.Append(err, fmt.Errorf("threshold=%q: want an integer in [0,255]", v))
		} else {
			c.Decay.Threshold = uint8(n)
		}
	}
	factors := []struct {
		key string
		dst *float64
	}{
		{"decay", &c.Decay.DecayFactor},
		{"spread", &c.Decay.SpreadFactor},
	}
	for _, f := range factors {
		v, ok := cfg[f.key]
		if !ok {
			continue
		}
		if parsed, perr := strconv.ParseFloat(v, 64); perr != nil || parsed < 0 || parsed > 1 {
			err = multierr.Append(err, fmt.Errorf("%s=%q: want a factor in [0,1]", f.key, v))
		} else {
			*f.dst = parsed
		}
	}
	return c, err
}

// recentre keeps the default pulse in the middle of a resized grid.
func recentre(p pattern.Pattern, w, h int) pattern.Pattern {
	if pulse, ok := p.(pattern.Pulse); ok {
		pulse.At = image.Pt(w/2, h/2)
		return pulse
	}
	return p
}

// Propagation spreads a fading wave outwards from seeded cells.
type Propagation struct {
	*sim.Simulation
	decay rule.Decay
}

// New creates a propagation simulation.
func New(c Config) (*Propagation, error) {
	sc := c.Config
	sc.Rule = c.Decay
	s, err := sim.New(sc)
	if err != nil {
		return nil, err
	}
	return &Propagation{Simulation: s, decay: c.Decay}, nil
}

// Size returns the grid dimensions.
func (p *Propagation) Size() core.Size { return core.Size{W: p.Width(), H: p.Height()} }

// Parameters describes the configuration the sim was built with.
func (p *Propagation) Parameters() core.ParameterSnapshot {
	return core.ParameterSnapshot{Groups: []core.ParameterGroup{
		core.EngineGroup(p.Config()),
		{Name: "Decay", Params: []core.Parameter{
			{Key: "threshold", Label: "Threshold", Type: core.ParamTypeInt, Value: strconv.Itoa(int(p.decay.Threshold)),
				Description: "cells below this value die"},
			{Key: "decay", Label: "Decay", Type: core.ParamTypeFloat, Value: strconv.FormatFloat(p.decay.DecayFactor, 'g', -1, 64)},
			{Key: "spread", Label: "Spread", Type: core.ParamTypeFloat, Value: strconv.FormatFloat(p.decay.SpreadFactor, 'g', -1, 64)},
		}},
	}}
}

func init() {
	core.Register("propagation", func(cfg map[string]string) (core.Sim, error) {
		c, err := FromMap(cfg)
		if err != nil {
			return nil, err
		}
		p, err := New(c)
		if err != nil {
			return nil, err
		}
		return p, nil
	})
}
