package websocket

import (
	"context"
	"errors"
	"net/url"

	"golang.org/x/net/websocket"

	"github.com/robotalks/dshot.go/pkg/comm"
	fx "github.com/robotalks/dshot.go/pkg/framework"
)

// ErrNoDiscovery indicates the websocket transport cannot enumerate
// links; a direct link URL must be used instead.
var ErrNoDiscovery = errors.New("discovery not supported over websocket")

// Connector implements comm.Connector by dialing a link daemon
// directly. The registry URL points at the daemon itself, e.g.
// ws://host:port.
type Connector struct {
	URL string
}

// NewConnector creates a Connector.
func NewConnector(serverURL string) (*Connector, error) {
	if _, err := url.Parse(serverURL); err != nil {
		return nil, err
	}
	return &Connector{URL: serverURL}, nil
}

// Discover implements Connector.
func (c *Connector) Discover(ctx context.Context) ([]comm.LinkInfo, error) {
	return nil, ErrNoDiscovery
}

// Connect implements Connector.
func (c *Connector) Connect(ctx context.Context, ref comm.LinkRef) (comm.Conn, error) {
	u, err := url.Parse(c.URL)
	if err != nil {
		return nil, err
	}
	u.Path = "/" + ref.Name()
	ws, err := websocket.Dial(u.String(), "", "http://"+u.Host)
	if err != nil {
		return nil, err
	}
	conn := &Conn{ws: ws}
	conn.Init(New(ws))
	return conn, nil
}

// Conn implements comm.Conn over a dialed websocket.
type Conn struct {
	comm.ClientConn

	ws *websocket.Conn
}

// Run implements Runnable.
func (c *Conn) Run(ctx context.Context) error {
	return fx.RunWithContextCloser(ctx, c.ws, func() error {
		return c.ClientConn.Run(ctx)
	})
}
