package briansbrain

import (
	"toroid/internal/core"
	"toroid/pkg/pattern"
	"toroid/pkg/rule"
	"toroid/pkg/sim"
)

// Config holds the engine settings for Brian's Brain.
type Config struct {
	sim.Config
}

// DefaultConfig seeds one cell in eight as firing on a 256x256 torus.
func DefaultConfig() Config {
	c := sim.DefaultConfig()
	c.Name = "briansbrain"
	c.Pattern = pattern.Random{Density: 0.125, Value: rule.BrainFiring}
	return Config{Config: c}
}

// FromMap populates a Config from a string map.
func FromMap(cfg map[string]string) (Config, error) {
	c := DefaultConfig()
	base, err := sim.FromMap(cfg, c.Config)
	c.Config = base
	return c, err
}

// Brain implements Brian's Brain cellular automaton.
type Brain struct {
	*sim.Simulation
}

// New creates a Brain simulation.
func New(c Config) (*Brain, error) {
	sc := c.Config
	sc.Rule = rule.Brain{}
	s, err := sim.New(sc)
	if err != nil {
		return nil, err
	}
	return &Brain{Simulation: s}, nil
}

// Size returns the grid dimensions.
func (b *Brain) Size() core.Size { return core.Size{W: b.Width(), H: b.Height()} }

// Parameters describes the configuration the sim was built with.
func (b *Brain) Parameters() core.ParameterSnapshot {
	return core.ParameterSnapshot{Groups: []core.ParameterGroup{core.EngineGroup(b.Config())}}
}

func init() {
	core.Register("briansbrain", func(cfg map[string]string) (core.Sim, error) {
		c, err := FromMap(cfg)
		if err != nil {
			return nil, err
		}
		b, err := New(c)
		if err != nil {
			return nil, err
		}
		return b, nil
	})
}
