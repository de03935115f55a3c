package mqtt

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"

	fx "github.com/robotalks/dshot.go/pkg/framework"

	"github.com/robotalks/dshot.go/pkg/comm"
)

// Connector implements comm.Connector using MQTT.
type Connector struct {
	DiscoverTimeout time.Duration

	options     *paho.ClientOptions
	topicPrefix string
}

// DefaultDiscoverTimeout defines the default timeout value of discovery.
const DefaultDiscoverTimeout = 500 * time.Millisecond

// NewConnector creates a Connector.
func NewConnector(brokerURL string) (*Connector, error) {
	opts, topicPrefix, err := ClientOptionsFromURL(brokerURL)
	if err != nil {
		return nil, err
	}
	return &Connector{
		DiscoverTimeout: DefaultDiscoverTimeout,
		options:         opts,
		topicPrefix:     topicPrefix,
	}, nil
}

// Discover implements Connector. It collects retained meta topics for
// the discovery window.
func (c *Connector) Discover(ctx context.Context) (res []comm.LinkInfo, err error) {
	q := NewQueue(c.options, c.topicPrefix)
	q.Connect()
	defer q.Close()
	resCh := make(chan comm.LinkInfo, 1)
	q.Sub("+/+/meta", Handler(func(topic string, payload []byte) {
		items := strings.Split(topic, "/")
		if len(items) != 3 || len(payload) == 0 {
			return
		}
		info := comm.LinkInfo{Ref: comm.LinkRef{Type: items[0], ID: items[1]}}
		json.Unmarshal(payload, &info.Meta)
		select {
		case resCh <- info:
		case <-time.After(time.Second):
		}
	}))

	dur := c.DiscoverTimeout
	if dur == 0 {
		dur = DefaultDiscoverTimeout
	}
	timeout := time.After(dur)
	for {
		select {
		case info := <-resCh:
			res = append(res, info)
		case <-timeout:
			return
		case <-ctx.Done():
			err = ctx.Err()
			return
		}
	}
}

// Connect implements Connector.
func (c *Connector) Connect(ctx context.Context, ref comm.LinkRef) (comm.Conn, error) {
	conn := &Conn{
		Queue: NewQueue(c.options, c.topicPrefix),
	}
	conn.rw = NewPacketReadWriter(conn.Queue).ForClient(ref)
	conn.Init(conn.rw)
	token := conn.Queue.Connect()
	token.Wait()
	if err := token.Error(); err != nil {
		return nil, err
	}
	return conn, nil
}

// Conn implements comm.Conn using MQTT.
type Conn struct {
	comm.ClientConn
	Queue *Queue

	rw *ReadWriter
}

// Run implements Runnable, pumping the topic subscription and the
// client connection.
func (c *Conn) Run(ctx context.Context) error {
	runner := fx.NewRunnerWith(ctx)
	runner.Go(c.rw, &c.ClientConn)
	err := runner.Wait()
	c.Queue.Close()
	return err
}
