package sim

import (
	"log"
	"time"
)

// Stats describes one committed generation.
type Stats struct {
	Generation int
	Changes    int
	Births     int
	Deaths     int
	Population int
	Scan       time.Duration
	Commit     time.Duration
}

// Observer receives tick notifications. Callbacks run on the stepping
// goroutine, inside the tick: TickCommitted sees the new generation but the
// simulation still refuses Seed, Reset and Step until it returns.
type Observer interface {
	TickStarted(gen int)
	TickCommitted(st Stats)
}

type nopObserver struct{}

func (nopObserver) TickStarted(int)     {}
func (nopObserver) TickCommitted(Stats) {}

// LogObserver prints a stats line every Every generations.
type LogObserver struct {
	Logger *log.Logger
	Every  int
}

func (o LogObserver) TickStarted(int) {}

func (o LogObserver) TickCommitted(st Stats) {
	every := o.Every
	if every <= 0 {
		every = 1
	}
	if st.Generation%every != 0 {
		return
	}
	logger := o.Logger
	if logger == nil {
		logger = log.Default()
	}
	logger.Printf("gen=%d changes=%d births=%d deaths=%d pop=%d scan=%s commit=%s",
		st.Generation, st.Changes, st.Births, st.Deaths, st.Population, st.Scan, st.Commit)
}
