// Package events defines the three record kinds the core emits
// (OrderAdded, OrderExecuted, OrderDeleted) and the serializing sink
// that writes them out, one line per record, without interleaving.
package events

import "fmt"

// Side mirrors the B/S egress field; it is a wire-level type, distinct
// from the matching side used inside a book so the two can evolve
// independently.
type Side byte

const (
	Buy  Side = 'B'
	Sell Side = 'S'
)

// Event is any of OrderAdded, OrderExecuted, OrderDeleted.
type Event interface {
	line() string
}

type OrderAdded struct {
	OrderID    uint32
	Instrument string
	Price      uint32
	Count      uint32
	Side       Side
	Seq        uint64
}

func (e OrderAdded) line() string {
	return fmt.Sprintf("A %d %s %d %d %c %d", e.OrderID, e.Instrument, e.Price, e.Count, byte(e.Side), e.Seq)
}

type OrderExecuted struct {
	RestingID   uint32
	TakerID     uint32
	ExecutionID uint32
	Price       uint32
	Count       uint32
	Seq         uint64
}

func (e OrderExecuted) line() string {
	return fmt.Sprintf("E %d %d %d %d %d %d", e.RestingID, e.TakerID, e.ExecutionID, e.Price, e.Count, e.Seq)
}

type OrderDeleted struct {
	OrderID  uint32
	Accepted bool
	Seq      uint64
}

func (e OrderDeleted) line() string {
	return fmt.Sprintf("D %d %t %d", e.OrderID, e.Accepted, e.Seq)
}

// Line renders ev in its egress wire format, with no trailing newline.
func Line(ev Event) string {
	return ev.line()
}
