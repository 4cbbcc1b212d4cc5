package convolve

import (
	"fmt"
	"strings"
)

// Topology selects how kernel taps that leave the grid are resolved.
type Topology uint8

const (
	// Toroidal wraps taps across opposite edges.
	Toroidal Topology = iota
	// Bounded drops taps that fall off the grid, so border cells aggregate
	// fewer terms. It is not the same as padding the border with zeros for
	// reducers other than a plain sum.
	Bounded
)

func (t Topology) String() string {
	switch t {
	case Toroidal:
		return "toroidal"
	case Bounded:
		return "bounded"
	}
	return fmt.Sprintf("topology(%d)", uint8(t))
}

// ParseTopology looks up a topology by name.
func ParseTopology(name string) (Topology, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "toroidal", "torus", "wrap":
		return Toroidal, nil
	case "bounded", "flat", "non-toroidal":
		return Bounded, nil
	}
	return 0, fmt.Errorf("unknown topology %q", name)
}

// Strategy selects how the per-cell aggregate is computed.
type Strategy uint8

const (
	// Buffered samples every tap into a reusable buffer and reduces it.
	Buffered Strategy = iota
	// Inline sums taps directly without a buffer.
	Inline
	// Spectral computes every aggregate of a tick at once with a 2D FFT.
	// Toroidal only.
	Spectral
)

func (s Strategy) String() string {
	switch s {
	case Buffered:
		return "buffered"
	case Inline:
		return "inline"
	case Spectral:
		return "spectral"
	}
	return fmt.Sprintf("strategy(%d)", uint8(s))
}

// ParseStrategy looks up a strategy by name.
func ParseStrategy(name string) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "buffered", "buffer":
		return Buffered, nil
	case "inline", "inline-sum":
		return Inline, nil
	case "spectral", "fft":
		return Spectral, nil
	}
	return 0, fmt.Errorf("unknown strategy %q", name)
}
