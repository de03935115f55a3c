package comm

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/robotalks/dshot.go/pkg/esc/msgs"
)

type chanRW struct {
	in  chan []byte
	out chan []byte
}

func (rw *chanRW) ReadPacket() ([]byte, error) {
	pkt, ok := <-rw.in
	if !ok {
		return nil, io.EOF
	}
	return pkt, nil
}

func (rw *chanRW) WritePacket(pkt []byte) error {
	rw.out <- pkt
	return nil
}

// chanPair builds a connected transport pair.
func chanPair() (*chanRW, *chanRW) {
	a := make(chan []byte, 16)
	b := make(chan []byte, 16)
	return &chanRW{in: a, out: b}, &chanRW{in: b, out: a}
}

func TestCommandReply(t *testing.T) {
	daemonRW, clientRW := chanPair()

	var reg Registrar
	reg.Handler = HandleCommandFunc(func(ctx context.Context, msg msgs.Message) msgs.Message {
		m, ok := msg.(*msgs.ThrottleSet)
		require.True(t, ok)
		if m.Throttle >= 2000 {
			return msgs.NewCommandErrFromMsg("out of range")
		}
		return nil
	})
	reg.Init(daemonRW)

	var conn ClientConn
	conn.Init(clientRW)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go reg.Run(ctx)
	go conn.Run(ctx)

	res := <-conn.DoCommand(&msgs.ThrottleSet{Throttle: 100}).ResultChan()
	require.NoError(t, res.Err)
	require.IsType(t, &msgs.CommandOK{}, res.Msg)

	res = <-conn.DoCommand(&msgs.ThrottleSet{Throttle: 3000}).ResultChan()
	require.Error(t, res.Err)
	require.EqualError(t, res.Err, "out of range")
}

func TestEventDelivery(t *testing.T) {
	daemonRW, clientRW := chanPair()

	var reg Registrar
	reg.Init(daemonRW)

	var conn ClientConn
	conn.Init(clientRW)
	events := make(chan msgs.Message, 1)
	conn.OnEvent = func(msg msgs.Message) {
		events <- msg
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go reg.Run(ctx)
	go conn.Run(ctx)

	status := &msgs.Status{Throttle: 55, Speed: "dshot150", Frames: 9}
	require.NoError(t, reg.SendEvent(ctx, status))

	select {
	case msg := <-events:
		require.Equal(t, status, msg)
	case <-time.After(time.Second):
		t.Fatal("no event received")
	}
}

func TestCommandExpiration(t *testing.T) {
	_, clientRW := chanPair()

	var conn ClientConn
	conn.Init(clientRW)
	conn.Expiration = time.Millisecond

	f := conn.DoCommand(&msgs.StatusQuery{})
	conn.purgeExpired(time.Now().Add(time.Second))

	select {
	case res := <-f.ResultChan():
		require.Equal(t, ErrNoReply, res.Err)
	case <-time.After(time.Second):
		t.Fatal("future not expired")
	}
}

func TestPipeDropsBadPackets(t *testing.T) {
	daemonRW, clientRW := chanPair()

	var handled []msgs.Message
	pipe := NewPipe(daemonRW)
	pipe.Handler = msgs.HandleTypedMsgFunc(func(ctx context.Context, msg msgs.Message, typed *msgs.Typed) error {
		handled = append(handled, msg)
		return nil
	})

	// junk, unknown type, then a valid command
	clientRW.WritePacket([]byte("not json"))
	clientRW.WritePacket([]byte(`{"type_id":2147418112}`))
	other := NewPipe(clientRW)
	require.NoError(t, other.SendMsg(&msgs.StatusQuery{}, 1))
	close(daemonRW.in)

	err := pipe.Run(context.Background())
	require.Equal(t, io.EOF, err)
	require.Len(t, handled, 1)
	require.IsType(t, &msgs.StatusQuery{}, handled[0])
}
