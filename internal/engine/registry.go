package engine

import (
	"sync"

	"matchcore/internal/book"
	"matchcore/internal/events"
)

// Registry maps instrument name to its Book, lazily creating one on
// first sight of a name (spec.md §4.4). Books, once created, live for
// the process lifetime and are never moved or destroyed — that
// long-lived aliasing is what lets GlobalIndex hold bare *book.Book
// pointers safely (spec.md §9, "cyclic ownership risk").
type Registry struct {
	mu    sync.RWMutex
	books map[string]*book.Book

	seq         *Sequencer
	globalIndex *GlobalIndex
	emitter     events.Emitter
}

func NewRegistry(seq *Sequencer, globalIndex *GlobalIndex, emitter events.Emitter) *Registry {
	return &Registry{
		books:       make(map[string]*book.Book),
		seq:         seq,
		globalIndex: globalIndex,
		emitter:     emitter,
	}
}

// GetOrCreate resolves name to its Book, creating one under a
// double-checked write lock if this is the first reference. The name
// lock is only ever held across this map lookup/insertion, never
// across a book operation (spec.md §5 lock hierarchy: Registry before
// GlobalIndex before Book, never the reverse).
func (r *Registry) GetOrCreate(name string) *book.Book {
	r.mu.RLock()
	if b, ok := r.books[name]; ok {
		r.mu.RUnlock()
		return b
	}
	r.mu.RUnlock()

	r.mu.Lock()
	defer r.mu.Unlock()
	if b, ok := r.books[name]; ok {
		return b
	}

	b := book.New(name, r.seq, r.globalIndex, r.emitter)
	r.books[name] = b
	return b
}

// Names returns every instrument seen so far, for the admin surface.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.books))
	for name := range r.books {
		names = append(names, name)
	}
	return names
}

// Lookup returns an existing book without creating one, for read-only
// callers (currently the tests) that shouldn't conjure instruments into
// existence just by asking about them.
func (r *Registry) Lookup(name string) (*book.Book, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	b, ok := r.books[name]
	return b, ok
}
