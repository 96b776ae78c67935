package engine

import "sync/atomic"

// Sequencer hands out the one global ordering observable to clients
// (spec.md §4.1). It is lock-free: a single atomic counter is enough
// because the engine never relies on wall-clock time, only on strict
// monotonicity.
type Sequencer struct {
	counter atomic.Uint64
}

func NewSequencer() *Sequencer {
	return &Sequencer{}
}

// Next returns a value strictly greater than any value previously
// returned, safe under arbitrary concurrent callers.
func (s *Sequencer) Next() uint64 {
	return s.counter.Add(1)
}

// Value reports the most recently issued sequence number, for the
// metrics gauge. It is a snapshot, not a synchronization point.
func (s *Sequencer) Value() uint64 {
	return s.counter.Load()
}
