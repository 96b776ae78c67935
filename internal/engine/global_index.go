package engine

import (
	"sync"

	"matchcore/internal/book"
)

// GlobalIndex is the process-wide order-id-to-book reverse lookup used
// exclusively to route cancels (spec.md §3/§4.3). It is intentionally
// the only place in the engine where a single mutex protects state
// belonging to every instrument at once — and the critical section is
// always short: a map lookup, insert, or delete, never a book
// mutation.
type GlobalIndex struct {
	mu    sync.Mutex
	index map[uint32]*book.Book
}

func NewGlobalIndex() *GlobalIndex {
	return &GlobalIndex{index: make(map[uint32]*book.Book)}
}

// Put publishes that orderID now rests on b. Called by a book, under
// that book's own lock, after the order has already been committed to
// the book's local collections — so I5 (spec.md §3) holds at every
// observer point.
func (g *GlobalIndex) Put(orderID uint32, b *book.Book) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.index[orderID] = b
}

// Delete purges orderID, called by a book under its own lock once the
// order is fully matched. A cancelled order's entry is removed by the
// dispatcher through LookupAndDelete instead.
func (g *GlobalIndex) Delete(orderID uint32) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.index, orderID)
}

// LookupAndDelete atomically resolves orderID to its book and removes
// the entry in the same critical section. This is the dispatcher's
// cancel-routing primitive (spec.md §4.3): the removal happens before
// the book is ever touched, which is what keeps the lock order
// "global-index before book" for cancels and avoids ever holding both
// a book lock and the global-index lock as non-leaves at once.
func (g *GlobalIndex) LookupAndDelete(orderID uint32) (*book.Book, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	b, ok := g.index[orderID]
	if ok {
		delete(g.index, orderID)
	}
	return b, ok
}
