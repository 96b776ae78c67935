// Package dispatch implements the per-command driver spec.md §4.3/§9
// calls the Dispatcher: the only component that may touch the global
// order index without holding a specific book's lock. It resolves an
// instrument through the Registry, invokes the matching book, and
// (for cancels) performs the atomic global-index lookup/remove before
// ever calling into a book.
package dispatch

import (
	"context"
	"time"

	"go.uber.org/zap"

	"matchcore/internal/book"
	"matchcore/internal/engine"
	"matchcore/internal/events"
	"matchcore/internal/logging"
	"matchcore/internal/metrics"
	"matchcore/internal/protocol"
)

type Dispatcher struct {
	engine  *engine.Engine
	logger  *logging.Logger
	metrics *metrics.Metrics
}

func New(e *engine.Engine, logger *logging.Logger, m *metrics.Metrics) *Dispatcher {
	return &Dispatcher{engine: e, logger: logger, metrics: m}
}

// HandleCommand routes one parsed command to the engine. It returns
// nothing: business outcomes are events (an unknown cancel id is a
// successful negative response, spec.md §4.6), and a command type the
// codec should never have produced is only logged as an error.
func (d *Dispatcher) HandleCommand(ctx context.Context, cmd protocol.Command) {
	start := time.Now()
	defer func() {
		d.metrics.CommandLatency.Observe(time.Since(start).Seconds())
	}()

	switch cmd.Type {
	case protocol.CommandBuy, protocol.CommandSell:
		d.handleSubmit(ctx, cmd)
	case protocol.CommandCancel:
		d.handleCancel(ctx, cmd)
	default:
		d.logger.Error(ctx, "dispatch.unknown_command_type", zap.Uint8("type", uint8(cmd.Type)))
	}
}

func (d *Dispatcher) handleSubmit(ctx context.Context, cmd protocol.Command) {
	side := book.Buy
	if cmd.Type == protocol.CommandSell {
		side = book.Sell
	}

	b := d.engine.Registry.GetOrCreate(cmd.Instrument)

	d.logger.Info(ctx, "dispatch.submit",
		zap.Uint32("order_id", cmd.OrderID),
		zap.String("instrument", cmd.Instrument),
		zap.Uint32("price", cmd.Price),
		zap.Uint32("count", cmd.Count),
		zap.Bool("is_sell", side == book.Sell),
	)

	b.Submit(side, cmd.OrderID, cmd.Price, cmd.Count)

	bids, asks := b.Depth()
	d.metrics.RestingDepth.WithLabelValues(cmd.Instrument, "bid").Set(float64(bids))
	d.metrics.RestingDepth.WithLabelValues(cmd.Instrument, "ask").Set(float64(asks))
	d.metrics.SequenceValue.Set(float64(d.engine.Sequencer.Value()))
}

// handleCancel implements spec.md §4.3's cancel routing exactly: the
// global-index entry is looked up and removed first, as a leaf
// operation that never holds a book lock; only then is the resolved
// book's own Cancel called. If either step fails to find the order —
// it was never resting, or it raced a concurrent fill between the two
// steps — the outcome is a normal accepted=false, never a panic (see
// the Open Question decision recorded in DESIGN.md).
func (d *Dispatcher) handleCancel(ctx context.Context, cmd protocol.Command) {
	b, found := d.engine.GlobalIndex.LookupAndDelete(cmd.OrderID)

	accepted := false
	if found {
		accepted = b.Cancel(cmd.OrderID)
	}

	d.logger.Info(ctx, "dispatch.cancel",
		zap.Uint32("order_id", cmd.OrderID),
		zap.Bool("accepted", accepted),
	)

	if accepted {
		d.metrics.CancelsAccepted.Inc()
		bids, asks := b.Depth()
		d.metrics.RestingDepth.WithLabelValues(b.Name(), "bid").Set(float64(bids))
		d.metrics.RestingDepth.WithLabelValues(b.Name(), "ask").Set(float64(asks))
		return
	}

	d.metrics.CancelsRejected.Inc()
	d.engine.Emitter.Emit(events.OrderDeleted{
		OrderID:  cmd.OrderID,
		Accepted: false,
		Seq:      d.engine.Sequencer.Next(),
	})
}
