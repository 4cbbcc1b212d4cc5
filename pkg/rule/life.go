package rule

import (
	"fmt"
	"strings"

	"toroid/pkg/convolve"
	"toroid/pkg/core"
)

// maxCount bounds neighbor counts a Life rule can name.
const maxCount = 63

// counts is a bit set of neighbor counts.
type counts uint64

func (c counts) has(n int) bool { return n >= 0 && n <= maxCount && c&(1<<uint(n)) != 0 }

func (c counts) String() string {
	var b strings.Builder
	for n := 0; n <= maxCount; n++ {
		if c.has(n) {
			fmt.Fprintf(&b, "%d", n)
		}
	}
	return b.String()
}

// Life is an outer-totalistic birth/survival rule. A cell is alive when its
// value is non-zero; births write 1 and deaths write 0.
type Life struct {
	birth, survive counts
}

// Conway returns B3/S23.
func Conway() Life {
	l, _ := NewLife([]int{3}, []int{2, 3})
	return l
}

// NewLife builds a rule from explicit birth and survival counts.
func NewLife(birth, survive []int) (Life, error) {
	var l Life
	for _, n := range birth {
		if n < 0 || n > maxCount {
			return Life{}, fmt.Errorf("birth count %d out of range [0,%d]", n, maxCount)
		}
		l.birth |= 1 << uint(n)
	}
	for _, n := range survive {
		if n < 0 || n > maxCount {
			return Life{}, fmt.Errorf("survival count %d out of range [0,%d]", n, maxCount)
		}
		l.survive |= 1 << uint(n)
	}
	return l, nil
}

// ParseLife parses a rulestring such as "B3/S23" or "s23/b36". Each digit is
// a single count.
func ParseLife(rs string) (Life, error) {
	parts := strings.Split(strings.ToUpper(strings.TrimSpace(rs)), "/")
	if len(parts) != 2 {
		return Life{}, fmt.Errorf("rulestring %q: want B<digits>/S<digits>", rs)
	}
	var birth, survive []int
	var sawB, sawS bool
	for _, part := range parts {
		if part == "" {
			return Life{}, fmt.Errorf("rulestring %q: empty section", rs)
		}
		digits, err := parseDigits(part[1:])
		if err != nil {
			return Life{}, fmt.Errorf("rulestring %q: %w", rs, err)
		}
		switch part[0] {
		case 'B':
			birth, sawB = digits, true
		case 'S':
			survive, sawS = digits, true
		default:
			return Life{}, fmt.Errorf("rulestring %q: unknown section %q", rs, part)
		}
	}
	if !sawB || !sawS {
		return Life{}, fmt.Errorf("rulestring %q: want both B and S sections", rs)
	}
	return NewLife(birth, survive)
}

func parseDigits(s string) ([]int, error) {
	out := make([]int, 0, len(s))
	for _, r := range s {
		if r < '0' || r > '9' {
			return nil, fmt.Errorf("bad count %q", r)
		}
		out = append(out, int(r-'0'))
	}
	return out, nil
}

// Name returns the rulestring.
func (l Life) Name() string { return "B" + l.birth.String() + "/S" + l.survive.String() }

// Evaluate applies birth and survival to one cell.
func (l Life) Evaluate(s *convolve.Site, changes *core.ChangeSet) {
	n := int(s.Aggregate)
	if s.Value == 0 {
		if l.birth.has(n) {
			changes.Put(s.Index, 1)
		}
		return
	}
	if !l.survive.has(n) {
		changes.Put(s.Index, 0)
	}
}
