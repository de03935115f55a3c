package websocket

import (
	"context"
	"net/http"
	"sync"

	"golang.org/x/net/websocket"

	"github.com/robotalks/dshot.go/pkg/comm"
	"github.com/robotalks/dshot.go/pkg/esc/msgs"
	fx "github.com/robotalks/dshot.go/pkg/framework"
)

// Server serves link clients over websocket at /<type>/<id>. Each
// connection gets its own Registrar; events are broadcast to all of
// them.
type Server struct {
	Addr    string
	Ref     comm.LinkRef
	Handler comm.CommandHandler

	ctx   context.Context
	lock  sync.Mutex
	conns map[*comm.Registrar]struct{}
}

// NewServer creates a Server.
func NewServer(addr string, ref comm.LinkRef, handler comm.CommandHandler) *Server {
	return &Server{
		Addr:    addr,
		Ref:     ref,
		Handler: handler,
		conns:   make(map[*comm.Registrar]struct{}),
	}
}

// SendEvent implements EventSender by broadcasting to all connections.
func (s *Server) SendEvent(ctx context.Context, msg msgs.Message) error {
	s.lock.Lock()
	conns := make([]*comm.Registrar, 0, len(s.conns))
	for reg := range s.conns {
		conns = append(conns, reg)
	}
	s.lock.Unlock()
	var errs fx.AggregatedError
	for _, reg := range conns {
		errs.Add(reg.SendEvent(ctx, msg))
	}
	return errs.Aggregate()
}

// Run implements Runnable.
func (s *Server) Run(ctx context.Context) error {
	s.ctx = ctx
	mux := http.NewServeMux()
	mux.Handle("/"+s.Ref.Name(), websocket.Handler(s.serve))
	srv := &http.Server{Addr: s.Addr, Handler: mux}
	return fx.RunWithContextCloser(ctx, srv, func() error {
		err := srv.ListenAndServe()
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	})
}

func (s *Server) serve(ws *websocket.Conn) {
	reg := &comm.Registrar{Handler: s.Handler}
	reg.Init(New(ws))
	s.lock.Lock()
	s.conns[reg] = struct{}{}
	s.lock.Unlock()
	defer func() {
		s.lock.Lock()
		delete(s.conns, reg)
		s.lock.Unlock()
	}()
	// the handler must not return before the connection is done
	reg.Run(s.ctx)
}
