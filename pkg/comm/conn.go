package comm

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/robotalks/dshot.go/pkg/esc/msgs"
	fx "github.com/robotalks/dshot.go/pkg/framework"
)

// ErrNoReply indicates no reply arrived before the command expired.
var ErrNoReply = errors.New("no reply")

// DefaultCommandExpiration is the default timeout expecting a result.
const DefaultCommandExpiration = time.Second

// ClientConn provides the base implementation of Conn using a Pipe.
type ClientConn struct {
	Expiration time.Duration
	// OnEvent receives event-kind messages; optional.
	OnEvent func(msgs.Message)

	pipe   Pipe
	seq    uint32
	seqMap map[uint32]*commandFuture
	lock   sync.Mutex
}

type commandFuture struct {
	seq      uint32
	expireAt time.Time
	result   chan Result
}

// ResultChan implements CommandFuture.
func (f *commandFuture) ResultChan() <-chan Result {
	return f.result
}

// Init initializes ClientConn with defaults.
func (c *ClientConn) Init(rw PacketReadWriter) {
	c.Expiration = DefaultCommandExpiration
	c.pipe.ReadWriter = rw
	c.pipe.Handler = msgs.HandleTypedMsgFunc(c.handleTypedMsg)
	c.seqMap = make(map[uint32]*commandFuture)
}

// DoCommand implements Conn.
func (c *ClientConn) DoCommand(msg msgs.Message) CommandFuture {
	c.lock.Lock()
	defer c.lock.Unlock()
	c.seq++
	if c.seq == 0 {
		c.seq++
	}
	f := &commandFuture{
		seq:      c.seq,
		expireAt: time.Now().Add(c.Expiration),
		result:   make(chan Result, 1),
	}
	if err := c.pipe.SendMsg(msg, f.seq); err != nil {
		f.result <- Result{Err: err}
		return f
	}
	c.seqMap[f.seq] = f
	return f
}

// Run implements Runnable. It pumps the pipe and expires commands
// which never got a reply.
func (c *ClientConn) Run(ctx context.Context) error {
	runner := fx.NewRunnerWith(ctx)
	runner.Go(&c.pipe, fx.RunFunc(c.purgeLoop))
	return runner.Wait()
}

func (c *ClientConn) purgeLoop(ctx context.Context) error {
	ticker := time.NewTicker(DefaultCommandExpiration)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case now := <-ticker.C:
			c.purgeExpired(now)
		}
	}
}

func (c *ClientConn) purgeExpired(now time.Time) {
	c.lock.Lock()
	defer c.lock.Unlock()
	for seq, f := range c.seqMap {
		if f.expireAt.Before(now) {
			delete(c.seqMap, seq)
			f.result <- Result{Err: ErrNoReply}
		}
	}
}

func (c *ClientConn) handleTypedMsg(ctx context.Context, msg msgs.Message, typed *msgs.Typed) error {
	if typed.IsEvent() {
		if h := c.OnEvent; h != nil {
			h(msg)
		}
		return nil
	}
	c.lock.Lock()
	defer c.lock.Unlock()
	f := c.seqMap[typed.Sequence]
	if f == nil {
		return nil
	}
	delete(c.seqMap, typed.Sequence)
	result := Result{Msg: msg}
	if cmdErr, ok := msg.(*msgs.CommandErr); ok {
		result = Result{Err: cmdErr}
	}
	f.result <- result
	return nil
}
