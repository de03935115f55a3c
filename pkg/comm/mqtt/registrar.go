package mqtt

import (
	"context"
	"encoding/json"

	fx "github.com/robotalks/dshot.go/pkg/framework"

	"github.com/robotalks/dshot.go/pkg/comm"
	"github.com/robotalks/dshot.go/pkg/esc/msgs"
)

// Registrar registers a link daemon on the broker and serves its
// command topic. The retained meta topic doubles as presence: it is
// cleared by the broker will when the daemon drops off.
type Registrar struct {
	Queue *Queue
	Info  comm.LinkInfo

	metaJSON  string
	registrar comm.Registrar
	rw        *ReadWriter
}

// NewRegistrar creates a Registrar.
func NewRegistrar(brokerURL string, info comm.LinkInfo, handler comm.CommandHandler) (*Registrar, error) {
	meta, err := json.Marshal(&info.Meta)
	if err != nil {
		panic(err)
	}
	opts, topicPrefix, err := ClientOptionsFromURL(brokerURL)
	if err != nil {
		return nil, err
	}
	opts.SetBinaryWill(topicPrefix+info.Ref.Name()+"/meta", nil, 1, true)
	if opts.ClientID == "" {
		opts.SetClientID("dshot:" + info.Ref.Name())
	}
	r := &Registrar{
		Queue:    NewQueue(opts, topicPrefix),
		Info:     info,
		metaJSON: string(meta),
	}
	r.Queue.OnConnect = func(*Queue) { r.onConnected() }
	r.rw = NewPacketReadWriter(r.Queue).ForDaemon(info.Ref)
	r.registrar.Handler = handler
	r.registrar.Init(r.rw)
	return r, nil
}

// SendEvent implements EventSender.
func (r *Registrar) SendEvent(ctx context.Context, msg msgs.Message) error {
	return r.registrar.SendEvent(ctx, msg)
}

// Run implements Runnable. It keeps the registration alive until the
// context ends, then clears the retained meta.
func (r *Registrar) Run(ctx context.Context) error {
	r.Queue.Connect()
	runner := fx.NewRunnerWith(ctx)
	runner.Go(r.rw, &r.registrar)
	err := runner.Wait()
	r.Queue.PubWith(r.Info.Ref.Name()+"/meta", nil, 1, true)
	r.Queue.Close()
	return err
}

func (r *Registrar) onConnected() {
	r.Queue.PubWith(r.Info.Ref.Name()+"/meta", []byte(r.metaJSON), 1, true)
}
