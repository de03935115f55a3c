package comm

import (
	"context"

	"github.com/robotalks/dshot.go/pkg/esc/msgs"
	fx "github.com/robotalks/dshot.go/pkg/framework"
)

// EventMux fans events out to multiple senders.
type EventMux struct {
	Senders []EventSender
}

// Add adds senders to the mux.
func (m *EventMux) Add(senders ...EventSender) *EventMux {
	m.Senders = append(m.Senders, senders...)
	return m
}

// SendEvent implements EventSender.
func (m *EventMux) SendEvent(ctx context.Context, msg msgs.Message) error {
	var errs fx.AggregatedError
	for _, s := range m.Senders {
		errs.Add(s.SendEvent(ctx, msg))
	}
	return errs.Aggregate()
}
