package dispatch

import (
	"context"
	"testing"

	"matchcore/internal/engine"
	"matchcore/internal/events"
	"matchcore/internal/logging"
	"matchcore/internal/metrics"
	"matchcore/internal/protocol"
)

func newTestDispatcher() (*Dispatcher, *events.Recorder, *engine.Engine) {
	rec := events.NewRecorder()
	eng := engine.New(rec)
	d := New(eng, logging.NewNop(), metrics.New())
	return d, rec, eng
}

func TestHandleCommandSubmitRests(t *testing.T) {
	d, rec, _ := newTestDispatcher()
	ctx := context.Background()

	d.HandleCommand(ctx, protocol.Command{Type: protocol.CommandBuy, OrderID: 1, Instrument: "AAPL", Price: 100, Count: 10})

	evs := rec.Events()
	if len(evs) != 1 {
		t.Fatalf("expected 1 event, got %d", len(evs))
	}
	added, ok := evs[0].(events.OrderAdded)
	if !ok {
		t.Fatalf("expected OrderAdded, got %T", evs[0])
	}
	if added.Instrument != "AAPL" || added.OrderID != 1 {
		t.Fatalf("unexpected added event: %+v", added)
	}
}

func TestHandleCommandSubmitMatchesAcrossTwoCommands(t *testing.T) {
	d, rec, _ := newTestDispatcher()
	ctx := context.Background()

	d.HandleCommand(ctx, protocol.Command{Type: protocol.CommandBuy, OrderID: 1, Instrument: "AAPL", Price: 100, Count: 10})
	d.HandleCommand(ctx, protocol.Command{Type: protocol.CommandSell, OrderID: 2, Instrument: "AAPL", Price: 100, Count: 4})

	var sawExec bool
	for _, ev := range rec.Events() {
		if ex, ok := ev.(events.OrderExecuted); ok {
			sawExec = true
			if ex.RestingID != 1 || ex.TakerID != 2 || ex.Count != 4 {
				t.Fatalf("unexpected execution: %+v", ex)
			}
		}
	}
	if !sawExec {
		t.Fatalf("expected a fill event")
	}
}

func TestHandleCommandCancelAccepted(t *testing.T) {
	d, rec, _ := newTestDispatcher()
	ctx := context.Background()

	d.HandleCommand(ctx, protocol.Command{Type: protocol.CommandBuy, OrderID: 1, Instrument: "AAPL", Price: 100, Count: 10})
	d.HandleCommand(ctx, protocol.Command{Type: protocol.CommandCancel, OrderID: 1})

	var deletes []events.OrderDeleted
	for _, ev := range rec.Events() {
		if del, ok := ev.(events.OrderDeleted); ok {
			deletes = append(deletes, del)
		}
	}
	if len(deletes) != 1 || !deletes[0].Accepted {
		t.Fatalf("expected one accepted delete event, got %+v", deletes)
	}
}

func TestHandleCommandCancelUnknownEmitsRejected(t *testing.T) {
	d, rec, _ := newTestDispatcher()
	ctx := context.Background()

	d.HandleCommand(ctx, protocol.Command{Type: protocol.CommandCancel, OrderID: 999})

	evs := rec.Events()
	if len(evs) != 1 {
		t.Fatalf("expected 1 event, got %d", len(evs))
	}
	del, ok := evs[0].(events.OrderDeleted)
	if !ok || del.Accepted {
		t.Fatalf("expected a rejected delete event, got %+v", evs[0])
	}
}

func TestHandleCommandSubmitCreatesInstrumentOnFirstSight(t *testing.T) {
	d, _, eng := newTestDispatcher()
	ctx := context.Background()

	if _, ok := eng.Registry.Lookup("AAPL"); ok {
		t.Fatalf("instrument should not exist before any command touches it")
	}

	d.HandleCommand(ctx, protocol.Command{Type: protocol.CommandBuy, OrderID: 1, Instrument: "AAPL", Price: 100, Count: 10})

	if _, ok := eng.Registry.Lookup("AAPL"); !ok {
		t.Fatalf("expected AAPL to be registered after its first order")
	}
}

func TestHandleCommandCancelRoutesAcrossInstruments(t *testing.T) {
	d, rec, _ := newTestDispatcher()
	ctx := context.Background()

	d.HandleCommand(ctx, protocol.Command{Type: protocol.CommandBuy, OrderID: 1, Instrument: "AAPL", Price: 100, Count: 10})
	d.HandleCommand(ctx, protocol.Command{Type: protocol.CommandBuy, OrderID: 2, Instrument: "MSFT", Price: 50, Count: 5})

	// Cancel only needs the order id; the dispatcher must route it to the
	// correct book via the global index without the caller naming MSFT.
	d.HandleCommand(ctx, protocol.Command{Type: protocol.CommandCancel, OrderID: 2})

	var deletes []events.OrderDeleted
	for _, ev := range rec.Events() {
		if del, ok := ev.(events.OrderDeleted); ok {
			deletes = append(deletes, del)
		}
	}
	if len(deletes) != 1 || deletes[0].OrderID != 2 || !deletes[0].Accepted {
		t.Fatalf("expected order 2 to be cancelled via global-index routing, got %+v", deletes)
	}
}
