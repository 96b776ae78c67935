package book

import "matchcore/internal/events"

// Submit runs the matching algorithm for one incoming BUY or SELL
// order (spec.md §4.2): it walks the opposite side in strict
// price-then-arrival order, fills what it can at the resting order's
// price, and rests any residual on its own side. count and price are
// assumed already validated by the protocol layer — count == 0 or
// price == 0 incoming orders must never reach here (spec.md §4.2
// edge cases).
func (b *Book) Submit(side Side, orderID, price, count uint32) {
	b.mu.Lock()
	defer b.mu.Unlock()

	opposite := b.sideHeap(oppositeOf(side))
	residual := count

	for residual > 0 {
		lvl := opposite.Peek()
		if lvl == nil {
			break
		}
		if side == Buy && lvl.price > price {
			break
		}
		if side == Sell && lvl.price < price {
			break
		}

		resting := lvl.front()

		fill := min(residual, resting.Count)
		residual -= fill
		resting.Count -= fill

		seq := b.seq.Next()
		b.emitter.Emit(events.OrderExecuted{
			RestingID:   resting.OrderID,
			TakerID:     orderID,
			ExecutionID: resting.ExecutionID,
			Price:       resting.Price,
			Count:       fill,
			Seq:         seq,
		})
		resting.ExecutionID++

		if resting.Count == 0 {
			lvl.popFront()
			delete(b.localIndex, resting.OrderID)
			b.globalIndex.Delete(resting.OrderID)
			if lvl.empty() {
				opposite.removeLevel(lvl)
			}
		}
	}

	if residual > 0 {
		seq := b.seq.Next()
		order := &Order{
			OrderID:     orderID,
			Price:       price,
			Count:       residual,
			ExecutionID: 1,
			ArrivalSeq:  seq,
			Side:        side,
		}

		lvl := b.sideHeap(side).ensure(price)
		lvl.pushBack(order)
		b.localIndex[orderID] = handle{side: side, level: lvl}
		b.globalIndex.Put(orderID, b)

		b.emitter.Emit(events.OrderAdded{
			OrderID:    orderID,
			Instrument: b.name,
			Price:      price,
			Count:      residual,
			Side:       side.eventSide(),
			Seq:        seq,
		})
	}
}

// Cancel removes a resting order by id and reports whether it was
// resident. A miss here is a normal outcome, not a bug: the dispatcher
// already removed this id from the global index before calling in
// (spec.md §4.3), so by the time Cancel runs, a concurrent fill may
// have fully matched the order away on this exact book under this
// exact lock between that global-index removal and this call. Per the
// Open Question in spec.md §9 ("ambiguities in the source"), this
// implementation resolves that race as accepted=false rather than an
// assertion failure — an assert here would crash the process on
// perfectly ordinary client traffic. See DESIGN.md.
func (b *Book) Cancel(orderID uint32) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	h, ok := b.localIndex[orderID]
	if !ok {
		return false
	}
	delete(b.localIndex, orderID)

	if !h.level.remove(orderID) {
		// The local index and the level's order queue disagree about
		// whether this id is resting. That can only happen if some
		// other path mutated one without the other under this same
		// lock — a real bug, not a race with another goroutine.
		panic(newInvariantViolation("order %d in local index but absent from level %d on book %q", orderID, h.level.price, b.name))
	}
	if h.level.empty() {
		b.sideHeap(h.side).removeLevel(h.level)
	}

	seq := b.seq.Next()
	b.emitter.Emit(events.OrderDeleted{OrderID: orderID, Accepted: true, Seq: seq})
	return true
}

func oppositeOf(s Side) Side {
	if s == Buy {
		return Sell
	}
	return Buy
}

func min(a, b uint32) uint32 {
	if a < b {
		return a
	}
	return b
}
