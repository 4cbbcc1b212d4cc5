// Package sim drives a grid through generations: each tick scans every cell
// against the committed state, collects the rule's writes in one change set
// and commits them together.
package sim

import (
	"errors"
	"fmt"
	"image"
	"time"

	"golang.org/x/sync/errgroup"

	"toroid/pkg/convolve"
	"toroid/pkg/core"
)

var (
	// ErrTickInProgress is returned by writes attempted while a tick runs.
	ErrTickInProgress = errors.New("tick in progress")
	// ErrNoRule is returned by New when the config names no rule.
	ErrNoRule = errors.New("no rule configured")
)

// Phase is the stepper state.
type Phase int

const (
	Idle Phase = iota
	Scanning
	Committing
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Scanning:
		return "scanning"
	case Committing:
		return "committing"
	default:
		return fmt.Sprintf("Phase(%d)", int(p))
	}
}

// Option customises a Simulation.
type Option func(*Simulation)

// WithObserver installs o for tick notifications.
func WithObserver(o Observer) Option {
	return func(s *Simulation) {
		if o != nil {
			s.observer = o
		}
	}
}

// band is one scan region with its own scratch state.
type band struct {
	rect    image.Rectangle
	buf     *convolve.Buffer
	changes *core.ChangeSet
	site    convolve.Site
}

// Simulation owns a grid and advances it one generation per Step. It is not
// safe for concurrent use; callers serialise Step, Seed and Reset.
type Simulation struct {
	cfg      Config
	grid     *core.Grid
	engine   *convolve.Engine
	bands    []*band
	pending  *core.ChangeSet
	observer Observer

	phase Phase
	gen   int
	pop   int
	stats Stats
}

// New validates cfg and seeds the configured pattern with cfg.Seed.
func New(cfg Config, opts ...Option) (*Simulation, error) {
	if cfg.Rule == nil {
		return nil, ErrNoRule
	}
	g, err := core.NewGrid(cfg.Width, cfg.Height)
	if err != nil {
		return nil, err
	}
	engine, err := convolve.NewEngine(cfg.Kernel, cfg.Width, cfg.Height, cfg.Topology, cfg.Strategy)
	if err != nil {
		return nil, err
	}
	rects := Partition(cfg.Width, cfg.Height, cfg.Workers)
	if err := CheckPartition(rects, cfg.Width, cfg.Height); err != nil {
		return nil, err
	}
	if cfg.Name == "" {
		cfg.Name = cfg.Rule.Name()
	}
	s := &Simulation{
		cfg:      cfg,
		grid:     g,
		engine:   engine,
		pending:  core.NewChangeSet(g.Len()),
		observer: nopObserver{},
	}
	for _, r := range rects {
		s.bands = append(s.bands, &band{
			rect:    r,
			buf:     convolve.NewBuffer(cfg.Kernel),
			changes: core.NewChangeSet(g.Len()),
		})
	}
	for _, opt := range opts {
		opt(s)
	}
	if err := s.reseed(cfg.Seed); err != nil {
		return nil, err
	}
	return s, nil
}

// Name identifies the simulation.
func (s *Simulation) Name() string { return s.cfg.Name }

// Config returns the construction config.
func (s *Simulation) Config() Config { return s.cfg }

// Width returns the grid width.
func (s *Simulation) Width() int { return s.grid.Width() }

// Height returns the grid height.
func (s *Simulation) Height() int { return s.grid.Height() }

// Cells exposes the committed grid, row-major. Callers must not write to it.
func (s *Simulation) Cells() []uint8 { return s.grid.Cells() }

// At reads the committed value at (x, y).
func (s *Simulation) At(x, y int) (uint8, error) { return s.grid.At(x, y) }

// AtIndex reads the committed value at idx.
func (s *Simulation) AtIndex(idx int) (uint8, error) { return s.grid.AtIndex(idx) }

// Generation counts committed ticks since the last Reset.
func (s *Simulation) Generation() int { return s.gen }

// Phase reports the stepper state.
func (s *Simulation) Phase() Phase { return s.phase }

// Stats describes the last committed tick.
func (s *Simulation) Stats() Stats { return s.stats }

// Population counts non-zero cells.
func (s *Simulation) Population() int { return s.pop }

// Seed writes v (clamped to [0,255]) at (x, y) immediately.
func (s *Simulation) Seed(x, y, v int) error {
	if s.phase != Idle {
		return fmt.Errorf("%w: seed (%d,%d) during %s", ErrTickInProgress, x, y, s.phase)
	}
	before, err := s.grid.At(x, y)
	if err != nil {
		return err
	}
	if err := s.grid.Set(x, y, v); err != nil {
		return err
	}
	after, _ := s.grid.At(x, y)
	s.pop += alive(after) - alive(before)
	return nil
}

// Reset clears the grid and reapplies the configured pattern with seed. It
// panics if the pattern writes outside the grid.
func (s *Simulation) Reset(seed int64) {
	if err := s.reseed(seed); err != nil {
		panic(fmt.Sprintf("sim: reset %s: %v", s.cfg.Name, err))
	}
}

func (s *Simulation) reseed(seed int64) error {
	if s.phase != Idle {
		return fmt.Errorf("%w: reset during %s", ErrTickInProgress, s.phase)
	}
	s.grid.Clear()
	s.gen, s.pop, s.stats = 0, 0, Stats{}
	if s.cfg.Pattern != nil {
		if err := s.cfg.Pattern.Apply(s, core.NewRNG(seed)); err != nil {
			return err
		}
	}
	s.pop = s.grid.Population()
	s.stats.Population = s.pop
	return nil
}

// Step advances exactly one generation. Calling Step from inside a tick, or
// a rule writing an index outside the grid, panics. A panic before the
// commit leaves the grid at the previous generation.
func (s *Simulation) Step() {
	if s.phase != Idle {
		panic(fmt.Sprintf("sim: Step called during %s", s.phase))
	}
	s.phase = Scanning
	defer func() {
		if r := recover(); r != nil {
			s.abort()
			panic(r)
		}
	}()
	s.observer.TickStarted(s.gen)

	start := time.Now()
	s.engine.Prepare(s.grid)
	if err := s.scan(); err != nil {
		panic(fmt.Sprintf("sim: %s generation %d: %v", s.cfg.Name, s.gen+1, err))
	}
	changes := s.gather()
	scanned := time.Now()

	s.phase = Committing
	st := Stats{Generation: s.gen + 1, Changes: changes.Len()}
	cells := s.grid.Cells()
	changes.Each(func(idx int, v uint8) {
		switch before := cells[idx]; {
		case before == 0 && v != 0:
			st.Births++
		case before != 0 && v == 0:
			st.Deaths++
		}
	})
	if err := changes.Commit(s.grid); err != nil {
		panic(fmt.Sprintf("sim: %s commit: %v", s.cfg.Name, err))
	}
	s.gen++
	s.pop += st.Births - st.Deaths
	st.Population = s.pop
	st.Scan = scanned.Sub(start)
	st.Commit = time.Since(scanned)
	s.stats = st
	s.observer.TickCommitted(st)
	s.phase = Idle
}

func (s *Simulation) scan() error {
	if len(s.bands) == 1 {
		return s.scanBand(s.bands[0])
	}
	var g errgroup.Group
	for _, b := range s.bands {
		g.Go(func() error { return s.scanBand(b) })
	}
	return g.Wait()
}

func (s *Simulation) scanBand(b *band) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("rows %d-%d: %v", b.rect.Min.Y, b.rect.Max.Y-1, r)
		}
	}()
	w := s.grid.Width()
	for y := b.rect.Min.Y; y < b.rect.Max.Y; y++ {
		for x := b.rect.Min.X; x < b.rect.Max.X; x++ {
			s.engine.Visit(s.grid, y*w+x, b.buf, &b.site)
			s.cfg.Rule.Evaluate(&b.site, b.changes)
		}
	}
	return nil
}

// gather merges band writes in band order, which replays the sequential
// row-major write order.
func (s *Simulation) gather() *core.ChangeSet {
	if len(s.bands) == 1 {
		return s.bands[0].changes
	}
	for _, b := range s.bands {
		s.pending.Merge(b.changes)
		b.changes.Reset()
	}
	return s.pending
}

// abort drops every pending write of an unfinished tick.
func (s *Simulation) abort() {
	for _, b := range s.bands {
		b.changes.Reset()
	}
	s.pending.Reset()
	s.phase = Idle
}

func alive(v uint8) int {
	if v != 0 {
		return 1
	}
	return 0
}
