package elementary

import (
	"fmt"
	"image"
	"strconv"

	"go.uber.org/multierr"

	"toroid/internal/core"
	"toroid/pkg/pattern"
	"toroid/pkg/rule"
	"toroid/pkg/sim"
)

// Config holds parameters for the elementary cellular automaton.
type Config struct {
	sim.Config
	Code uint8
}

// DefaultConfig runs rule 110 from a single centred cell.
func DefaultConfig() Config {
	c := sim.DefaultConfig()
	c.Name = "elementary"
	c.Kernel = rule.WolframKernel()
	c.Pattern = nil
	return Config{Config: c, Code: 110}
}

// FromMap populates a Config from a string map. The "rule" key takes a
// Wolfram code in [0,255].
func FromMap(cfg map[string]string) (Config, error) {
	c := DefaultConfig()
	base, err := sim.FromMap(cfg, c.Config)
	c.Config = base
	if v, ok := cfg["rule"]; ok {
		if parsed, perr := strconv.Atoi(v); perr != nil || parsed < 0 || parsed > 255 {
			err = multierr.Append(err, fmt.Errorf("rule=%q: want a Wolfram code in [0,255]", v))
		} else {
			c.Code = uint8(parsed)
		}
	}
	return c, err
}

// Elementary runs a one-dimensional Wolfram code down the grid. Row 0 holds
// the seed; row y shows generation y once y ticks have run.
type Elementary struct {
	*sim.Simulation
	code uint8
}

// New creates an automaton. Without an explicit pattern the top row is seeded
// with a single active cell.
func New(c Config) (*Elementary, error) {
	sc := c.Config
	sc.Rule = rule.Wolfram{Code: c.Code}
	if sc.Pattern == nil {
		sc.Pattern = pattern.Points{At: image.Pt(sc.Width/2, 0), Offsets: []image.Point{{}}}
	}
	s, err := sim.New(sc)
	if err != nil {
		return nil, err
	}
	return &Elementary{Simulation: s, code: c.Code}, nil
}

// Size returns the simulation grid dimensions.
func (e *Elementary) Size() core.Size { return core.Size{W: e.Width(), H: e.Height()} }

// Parameters describes the configuration the sim was built with.
func (e *Elementary) Parameters() core.ParameterSnapshot {
	return core.ParameterSnapshot{Groups: []core.ParameterGroup{
		core.EngineGroup(e.Config()),
		{Name: "Rule", Params: []core.Parameter{{
			Key: "rule", Label: "Wolfram code", Type: core.ParamTypeInt, Value: strconv.Itoa(int(e.code)),
		}}},
	}}
}

func init() {
	core.Register("elementary", func(cfg map[string]string) (core.Sim, error) {
		c, err := FromMap(cfg)
		if err != nil {
			return nil, err
		}
		e, err := New(c)
		if err != nil {
			return nil, err
		}
		return e, nil
	})
}
