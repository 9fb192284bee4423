package notify

import (
	"context"
	"errors"
)

// Event types pushed to staff screens and suppliers.
const (
	EventOrderDispatched = "order_dispatched"
	EventTableSettled    = "table_settled"
	EventOrderCompleted  = "order_completed"
	EventRefundProcessed = "refund_processed"
	EventSupplierStatus  = "supplier_status"
)

// Event is one notification. SupplierID addresses a single supplier in
// addition to staff; empty means staff only.
type Event struct {
	Type       string
	SupplierID string
	Data       interface{}
}

// Message is the wire form of an Event.
type Message struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// Publisher delivers events at most once. Failures are reported but never
// undo the write that produced the event.
type Publisher interface {
	Publish(ctx context.Context, evt Event) error
}

type Nop struct{}

func (Nop) Publish(context.Context, Event) error { return nil }

// Multi fans an event out to every publisher and joins their errors.
type Multi []Publisher

func (m Multi) Publish(ctx context.Context, evt Event) error {
	var errs []error
	for _, p := range m {
		if err := p.Publish(ctx, evt); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
