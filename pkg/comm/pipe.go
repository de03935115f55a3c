// Package comm connects ESC link daemons with their clients over
// pluggable packet transports (MQTT, websocket, byte streams).
package comm

import (
	"context"
	"sync"

	"github.com/golang/glog"

	"github.com/robotalks/dshot.go/pkg/esc/msgs"
	fx "github.com/robotalks/dshot.go/pkg/framework"
)

// Pipe is a bi-directional pipe for typed messages over a packet
// transport.
type Pipe struct {
	ReadWriter PacketReadWriter
	Handler    msgs.TypedMsgHandler

	sendLock sync.Mutex
}

// NewPipe creates a Pipe with the given PacketReadWriter.
func NewPipe(rw PacketReadWriter) *Pipe {
	return &Pipe{ReadWriter: rw}
}

// SendMsg serializes and sends a message with a sequence number.
func (p *Pipe) SendMsg(msg msgs.Message, seq uint32) error {
	typed, err := msgs.TypedFrom(msg)
	if err != nil {
		return err
	}
	typed.Sequence = seq
	return p.SendTyped(typed)
}

// SendTyped sends a Typed envelope.
func (p *Pipe) SendTyped(typed *msgs.Typed) error {
	pkt, err := typed.Encode()
	if err != nil {
		return err
	}
	p.sendLock.Lock()
	defer p.sendLock.Unlock()
	return p.ReadWriter.WritePacket(pkt)
}

// Run implements Runnable. It reads packets until the transport fails
// or the context ends. Undecodable packets are dropped, not fatal.
func (p *Pipe) Run(ctx context.Context) error {
	return fx.RunWithContext(ctx, func() error {
		for {
			pkt, err := p.ReadWriter.ReadPacket()
			if err != nil {
				return err
			}
			typed, err := msgs.DecodeTyped(pkt)
			if err != nil {
				glog.Warningf("drop undecodable packet: %v", err)
				continue
			}
			msg, err := typed.Msg()
			if err != nil {
				glog.Warningf("drop message: %v", err)
				continue
			}
			if h := p.Handler; h != nil {
				if err := h.HandleTypedMsg(ctx, msg, typed); err != nil {
					return err
				}
			}
		}
	})
}
