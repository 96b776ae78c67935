package book

import (
	"fmt"
	"sync"

	"matchcore/internal/events"
)

// Side is BUY or SELL, as stamped on a resting order.
type Side int

const (
	Buy Side = iota
	Sell
)

func (s Side) eventSide() events.Side {
	if s == Buy {
		return events.Buy
	}
	return events.Sell
}

// Order is the mutable resting-order record. OrderID and Price are
// fixed for the life of the order; Count and ExecutionID mutate as
// fills land. ArrivalSeq is set exactly once, when the order rests,
// and never changes after — that immutability is what gives time
// priority its meaning (spec.md §4.2, "partial fills do not change a
// resting order's time priority").
type Order struct {
	OrderID     uint32
	Price       uint32
	Count       uint32
	ExecutionID uint32
	ArrivalSeq  uint64
	Side        Side
}

// InvariantViolation is panicked when a held lock observes state that
// should be structurally impossible (e.g. an id present in the local
// index but absent from its price level's order queue). It is never
// recovered inside the book itself — per spec.md §7, an invariant
// violation is a bug and the only correct response is to abort,
// because the state is already inconsistent.
type InvariantViolation struct {
	msg string
}

func (e *InvariantViolation) Error() string { return e.msg }

func newInvariantViolation(format string, args ...interface{}) *InvariantViolation {
	return &InvariantViolation{msg: fmt.Sprintf(format, args...)}
}

// Sequencer gives out strictly increasing sequence numbers. A single
// shared counter (see engine.Sequencer) satisfies every book; the
// interface here just keeps this package free of a dependency on the
// engine package.
type Sequencer interface {
	Next() uint64
}

// GlobalIndex is the process-wide order-id-to-book reverse lookup
// that a book publishes into when an order rests and purges from when
// an order is fully matched (a cancelled order's entry is removed by
// the dispatcher before Cancel is called). The book never reads it — only writes —
// which is what keeps the "book → global-index acquired briefly"
// leaf-lock rule in spec.md §5 trivially true.
type GlobalIndex interface {
	Put(orderID uint32, b *Book)
	Delete(orderID uint32)
}

// handle is what the local index stores: enough to find and remove an
// order from its resting side without rescanning every price level.
type handle struct {
	side  Side
	level *priceLevel
}

// Book is one instrument's bids/asks plus its local id index. All of
// its operations are serialized by mu, held for the entirety of one
// submit or one cancel (spec.md §5).
type Book struct {
	name string

	bids *levelHeap
	asks *levelHeap

	localIndex map[uint32]handle

	seq         Sequencer
	globalIndex GlobalIndex
	emitter     events.Emitter

	mu sync.Mutex
}

func New(name string, seq Sequencer, globalIndex GlobalIndex, emitter events.Emitter) *Book {
	return &Book{
		name:        name,
		bids:        newLevelHeap(true),
		asks:        newLevelHeap(false),
		localIndex:  make(map[uint32]handle),
		seq:         seq,
		globalIndex: globalIndex,
		emitter:     emitter,
	}
}

func (b *Book) Name() string { return b.name }

func (b *Book) sideHeap(s Side) *levelHeap {
	if s == Buy {
		return b.bids
	}
	return b.asks
}
