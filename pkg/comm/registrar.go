package comm

import (
	"context"

	"github.com/robotalks/dshot.go/pkg/esc/msgs"
)

// Registrar serves incoming commands for a link daemon and publishes
// events, over a Pipe.
type Registrar struct {
	Handler CommandHandler

	pipe Pipe
}

// Init initializes the Registrar with the downlink transport.
func (r *Registrar) Init(rw PacketReadWriter) {
	r.pipe.ReadWriter = rw
	r.pipe.Handler = msgs.HandleTypedMsgFunc(r.handleTypedMsg)
}

// SendEvent implements EventSender.
func (r *Registrar) SendEvent(ctx context.Context, msg msgs.Message) error {
	return r.pipe.SendMsg(msg, 0)
}

// Run implements Runnable.
func (r *Registrar) Run(ctx context.Context) error {
	return r.pipe.Run(ctx)
}

func (r *Registrar) handleTypedMsg(ctx context.Context, msg msgs.Message, typed *msgs.Typed) error {
	if !typed.IsCommand() {
		return nil
	}
	h := r.Handler
	if h == nil {
		return nil
	}
	reply := h.HandleCommand(ctx, msg)
	if reply == nil {
		reply = msgs.NewCommandOK()
	}
	return r.pipe.SendMsg(reply, typed.Sequence)
}
