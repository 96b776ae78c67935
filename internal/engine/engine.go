// Package engine bundles the Sequencer, Registry, and GlobalIndex
// singletons spec.md §9 says may be grouped into one "Engine" value
// passed to dispatchers instead of relying on true process-wide
// globals. Behavior is identical either way; this just avoids package
// level state.
package engine

import "matchcore/internal/events"

type Engine struct {
	Sequencer   *Sequencer
	Registry    *Registry
	GlobalIndex *GlobalIndex
	Emitter     events.Emitter
}

func New(emitter events.Emitter) *Engine {
	seq := NewSequencer()
	idx := NewGlobalIndex()
	return &Engine{
		Sequencer:   seq,
		Registry:    NewRegistry(seq, idx, emitter),
		GlobalIndex: idx,
		Emitter:     emitter,
	}
}
