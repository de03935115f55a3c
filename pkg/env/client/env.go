// Package client sets up connectivity for link clients.
package client

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/url"
	"os"

	"github.com/robotalks/dshot.go/pkg/comm"
	"github.com/robotalks/dshot.go/pkg/comm/mqtt"
	ws "github.com/robotalks/dshot.go/pkg/comm/websocket"
)

// Config provides common options to set up Connectors.
type Config struct {
	Ref comm.LinkRef

	// RegistryURL specifies the URL of the link registry, or a direct
	// daemon URL for the websocket scheme.
	// e.g. mqtt://host:port/topic-prefix, ws://host:port
	RegistryURL string
}

var defaultConfig = Config{
	RegistryURL: "mqtt://localhost:1883/dshot/",
}

func init() {
	if val := os.Getenv("DSHOT_TYPE"); val != "" {
		defaultConfig.Ref.Type = val
	}
	if val := os.Getenv("DSHOT_ID"); val != "" {
		defaultConfig.Ref.ID = val
	}
	if val := os.Getenv("DSHOT_REGISTRY_URL"); val != "" {
		defaultConfig.RegistryURL = val
	}
}

// SetupFlags sets up command line flags.
func SetupFlags() {
	flag.StringVar(&defaultConfig.Ref.Type, "link-type", defaultConfig.Ref.Type, "Link type to connect.")
	flag.StringVar(&defaultConfig.Ref.ID, "link-id", defaultConfig.Ref.ID, "Link ID to connect.")
	flag.StringVar(&defaultConfig.RegistryURL, "link-reg", defaultConfig.RegistryURL, "Link registry URL.")
}

// Default gets the default config.
func Default() *Config {
	return &defaultConfig
}

// NewConfig creates a Config with default configurations.
func NewConfig() *Config {
	conf := defaultConfig
	return &conf
}

// NewConnector creates a Connector using current config.
func (c *Config) NewConnector() (comm.Connector, error) {
	parsedURL, err := url.Parse(c.RegistryURL)
	if err != nil {
		return nil, fmt.Errorf("invalid registry URL: %v", err)
	}
	switch parsedURL.Scheme {
	case "mqtt":
		return mqtt.NewConnector(c.RegistryURL)
	case "ws", "wss":
		return ws.NewConnector(c.RegistryURL)
	default:
		return nil, fmt.Errorf("unknown registry URL scheme: %q", parsedURL.Scheme)
	}
}

// MustNewConnector creates a Connector and fails on error.
func (c *Config) MustNewConnector() comm.Connector {
	conn, err := c.NewConnector()
	if err != nil {
		log.Fatalln(err)
	}
	return conn
}

// Connect directly connects to a link daemon.
func (c *Config) Connect() (comm.Conn, error) {
	if !c.Ref.IsValid() {
		return nil, fmt.Errorf("link type and id must be specified")
	}
	connector, err := c.NewConnector()
	if err != nil {
		return nil, err
	}
	return connector.Connect(context.TODO(), c.Ref)
}

// MustConnect connects to a link daemon or fails.
func (c *Config) MustConnect() comm.Conn {
	conn, err := c.Connect()
	if err != nil {
		log.Fatalln(err)
	}
	return conn
}
