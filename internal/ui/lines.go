package ui

import (
	"fmt"
	"strings"
	"time"

	"toroid/internal/core"
)

// LineKind selects how a panel line is styled.
type LineKind int

const (
	LineTitle LineKind = iota
	LineGroup
	LineParam
	LineStat
)

// Line is one row of the side panel.
type Line struct {
	Kind  LineKind
	Label string
	Value string
}

// PanelLines lays out the side panel for s: a title, each parameter group
// the sim reports, then live tick statistics.
func PanelLines(s core.Sim) []Line {
	lines := []Line{{Kind: LineTitle, Label: title(s)}}
	if p, ok := s.(core.ParameterProvider); ok {
		for _, g := range p.Parameters().Groups {
			lines = append(lines, Line{Kind: LineGroup, Label: g.Name})
			for _, param := range g.Params {
				lines = append(lines, Line{Kind: LineParam, Label: param.Label, Value: param.Value})
			}
		}
	}
	if p, ok := s.(core.StatsProvider); ok {
		st := p.Stats()
		lines = append(lines,
			Line{Kind: LineGroup, Label: "Tick"},
			Line{Kind: LineStat, Label: "Generation", Value: fmt.Sprint(st.Generation)},
			Line{Kind: LineStat, Label: "Population", Value: fmt.Sprint(st.Population)},
			Line{Kind: LineStat, Label: "Changes", Value: fmt.Sprint(st.Changes)},
			Line{Kind: LineStat, Label: "Births/Deaths", Value: fmt.Sprintf("%d/%d", st.Births, st.Deaths)},
			Line{Kind: LineStat, Label: "Scan", Value: st.Scan.Round(time.Microsecond).String()},
			Line{Kind: LineStat, Label: "Commit", Value: st.Commit.Round(time.Microsecond).String()},
		)
	}
	return lines
}

func title(s core.Sim) string {
	if s == nil || s.Name() == "" {
		return "Simulation"
	}
	name := s.Name()
	return strings.ToUpper(name[:1]) + name[1:]
}

// ChangedMask marks every index whose value differs between prev and cur.
// dst is reused when it has the right length.
func ChangedMask(dst []bool, prev, cur []uint8) []bool {
	if len(dst) != len(cur) {
		dst = make([]bool, len(cur))
	}
	for i := range cur {
		dst[i] = i < len(prev) && prev[i] != cur[i]
	}
	return dst
}
