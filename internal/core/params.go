package core

import (
	"strconv"

	"toroid/pkg/sim"
)

// ParamType enumerates supported parameter value kinds.
type ParamType string

const (
	// ParamTypeInt denotes integer-valued parameters.
	ParamTypeInt ParamType = "int"
	// ParamTypeFloat denotes floating-point parameters.
	ParamTypeFloat ParamType = "float"
	// ParamTypeString denotes free-form parameters such as rule strings.
	ParamTypeString ParamType = "string"
)

// Parameter describes a single construction-time value of a simulation.
type Parameter struct {
	Key         string
	Label       string
	Type        ParamType
	Value       string
	Description string
}

// ParameterGroup clusters related parameters for presentation purposes.
type ParameterGroup struct {
	Name    string
	Params  []Parameter
	Summary string
}

// ParameterSnapshot captures the set of parameters a sim was built with.
// Everything is fixed at construction, so a snapshot never goes stale.
type ParameterSnapshot struct {
	Groups []ParameterGroup
}

// ParameterProvider is implemented by sims that describe their configuration.
type ParameterProvider interface {
	Parameters() ParameterSnapshot
}

// StatsProvider is implemented by sims that report per-tick statistics.
type StatsProvider interface {
	Stats() sim.Stats
}

// EngineGroup describes the grid, kernel and scan settings shared by every
// preset.
func EngineGroup(c sim.Config) ParameterGroup {
	return ParameterGroup{
		Name: "Engine",
		Params: []Parameter{
			{Key: "w", Label: "Width", Type: ParamTypeInt, Value: strconv.Itoa(c.Width)},
			{Key: "h", Label: "Height", Type: ParamTypeInt, Value: strconv.Itoa(c.Height)},
			{Key: "kernel", Label: "Kernel taps", Type: ParamTypeInt, Value: strconv.Itoa(c.Kernel.Len())},
			{Key: "topology", Label: "Topology", Type: ParamTypeString, Value: c.Topology.String()},
			{Key: "strategy", Label: "Strategy", Type: ParamTypeString, Value: c.Strategy.String()},
			{Key: "workers", Label: "Workers", Type: ParamTypeInt, Value: strconv.Itoa(c.Workers)},
		},
	}
}
