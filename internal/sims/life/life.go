package life

import (
	"go.uber.org/multierr"

	"toroid/internal/core"
	"toroid/pkg/rule"
	"toroid/pkg/sim"
)

// Config holds the engine settings plus the Life rulestring.
type Config struct {
	sim.Config
	RuleString string
}

// DefaultConfig returns Conway's Life on a 256x256 torus.
func DefaultConfig() Config {
	return Config{Config: sim.DefaultConfig(), RuleString: "B3/S23"}
}

// FromMap populates a Config from a string map. The "rule" key takes a
// rulestring such as "B36/S23".
func FromMap(cfg map[string]string) (Config, error) {
	c := DefaultConfig()
	base, err := sim.FromMap(cfg, c.Config)
	c.Config = base
	if v, ok := cfg["rule"]; ok {
		if _, perr := rule.ParseLife(v); perr != nil {
			err = multierr.Append(err, perr)
		} else {
			c.RuleString = v
		}
	}
	return c, err
}

// Life runs an outer-totalistic birth/survival automaton.
type Life struct {
	*sim.Simulation
}

// New builds a Life simulation and seeds its pattern.
func New(c Config) (*Life, error) {
	r, err := rule.ParseLife(c.RuleString)
	if err != nil {
		return nil, err
	}
	sc := c.Config
	sc.Name = "life"
	sc.Rule = r
	s, err := sim.New(sc)
	if err != nil {
		return nil, err
	}
	return &Life{Simulation: s}, nil
}

// Size returns the grid dimensions.
func (l *Life) Size() core.Size { return core.Size{W: l.Width(), H: l.Height()} }

// Parameters describes the configuration the sim was built with.
func (l *Life) Parameters() core.ParameterSnapshot {
	return core.ParameterSnapshot{Groups: []core.ParameterGroup{
		core.EngineGroup(l.Config()),
		{Name: "Rule", Params: []core.Parameter{{
			Key: "rule", Label: "Rulestring", Type: core.ParamTypeString,
			Value: l.Config().Rule.Name(), Description: "birth/survival neighbor counts",
		}}},
	}}
}

func init() {
	core.Register("life", func(cfg map[string]string) (core.Sim, error) {
		c, err := FromMap(cfg)
		if err != nil {
			return nil, err
		}
		l, err := New(c)
		if err != nil {
			return nil, err
		}
		return l, nil
	})
}
