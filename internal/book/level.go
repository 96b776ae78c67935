package book

import "container/heap"

// priceLevel holds every resting order at one price, in strict
// arrival order. Orders are appended as they rest and popped from the
// front as they're consumed, so queue position already encodes
// arrival_seq/order_id priority (spec.md §4.2) without needing to
// store or compare those fields again here.
type priceLevel struct {
	price  uint32
	orders []*Order
}

func (l *priceLevel) empty() bool { return len(l.orders) == 0 }

func (l *priceLevel) front() *Order { return l.orders[0] }

func (l *priceLevel) pushBack(o *Order) {
	l.orders = append(l.orders, o)
}

func (l *priceLevel) popFront() {
	l.orders = l.orders[1:]
}

// remove deletes the order with orderID from anywhere in the queue
// (a cancel target need not be at the front) and reports whether it
// was found.
func (l *priceLevel) remove(orderID uint32) bool {
	for i, o := range l.orders {
		if o.OrderID == orderID {
			l.orders = append(l.orders[:i], l.orders[i+1:]...)
			return true
		}
	}
	return false
}

// levelHeap is a heap of priceLevels for one side of one book: a
// max-heap on price for bids, a min-heap on price for asks. This is
// the "one queue per price level" design spec.md §9 explicitly leaves
// open as an acceptable alternative to a flat ordered set, and is the
// structure the teacher's orderLevelHeap already implements.
type levelHeap struct {
	levels  []*priceLevel
	byPrice map[uint32]*priceLevel
	isBid   bool
}

func newLevelHeap(isBid bool) *levelHeap {
	return &levelHeap{byPrice: make(map[uint32]*priceLevel), isBid: isBid}
}

func (h *levelHeap) Len() int { return len(h.levels) }

func (h *levelHeap) Less(i, j int) bool {
	if h.isBid {
		return h.levels[i].price > h.levels[j].price
	}
	return h.levels[i].price < h.levels[j].price
}

func (h *levelHeap) Swap(i, j int) {
	h.levels[i], h.levels[j] = h.levels[j], h.levels[i]
}

func (h *levelHeap) Push(x any) {
	h.levels = append(h.levels, x.(*priceLevel))
}

func (h *levelHeap) Pop() any {
	old := h.levels
	n := len(old)
	item := old[n-1]
	h.levels = old[:n-1]
	return item
}

func (h *levelHeap) Peek() *priceLevel {
	if len(h.levels) == 0 {
		return nil
	}
	return h.levels[0]
}

func (h *levelHeap) ensure(price uint32) *priceLevel {
	if lvl, ok := h.byPrice[price]; ok {
		return lvl
	}
	lvl := &priceLevel{price: price}
	h.byPrice[price] = lvl
	heap.Push(h, lvl)
	return lvl
}

func (h *levelHeap) removeLevel(lvl *priceLevel) {
	for i, candidate := range h.levels {
		if candidate == lvl {
			heap.Remove(h, i)
			break
		}
	}
	delete(h.byPrice, lvl.price)
}

var _ heap.Interface = (*levelHeap)(nil)
