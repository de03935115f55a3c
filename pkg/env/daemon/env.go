// Package daemon sets up the serving environment for a link daemon.
package daemon

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/robotalks/dshot.go/pkg/comm"
	"github.com/robotalks/dshot.go/pkg/comm/mqtt"
	ws "github.com/robotalks/dshot.go/pkg/comm/websocket"
	"github.com/robotalks/dshot.go/pkg/env"
	fx "github.com/robotalks/dshot.go/pkg/framework"
)

// Config provides common options to set up the env for link daemons.
type Config struct {
	Info comm.LinkInfo

	// MQTTBrokerURL specifies the MQTT broker to register on.
	// e.g. mqtt://host:port/topic-prefix
	MQTTBrokerURL string
	// ListenAddr serves websocket clients directly when non-empty.
	ListenAddr string
}

var defaultConfig = Config{
	MQTTBrokerURL: "mqtt://localhost:1883/dshot/",
}

func init() {
	if val := os.Getenv("DSHOT_MQTT_URL"); val != "" {
		defaultConfig.MQTTBrokerURL = val
	}
	defaultConfig.Info.Ref.ID = env.MachineID()
}

// SetupFlags sets command line flags.
func SetupFlags() {
	flag.StringVar(&defaultConfig.Info.Ref.Type, "type", defaultConfig.Info.Ref.Type, "Link type")
	flag.StringVar(&defaultConfig.Info.Ref.ID, "id", defaultConfig.Info.Ref.ID, "Link ID")
	flag.StringVar(&defaultConfig.MQTTBrokerURL, "mqtt", defaultConfig.MQTTBrokerURL, "MQTT broker URL, empty to disable")
	flag.StringVar(&defaultConfig.ListenAddr, "listen", defaultConfig.ListenAddr, "Websocket listen address, empty to disable")
}

// SetLinkType should be called in init with basic info about the link.
func SetLinkType(typ string, meta comm.LinkMeta) {
	defaultConfig.Info.Ref.Type = typ
	defaultConfig.Info.Meta = meta
}

// Default gets default config.
func Default() *Config {
	return &defaultConfig
}

// NewConfig creates a Config with default configurations.
func NewConfig() *Config {
	conf := defaultConfig
	return &conf
}

// Env is the serving environment of a link daemon.
type Env struct {
	Config  *Config
	Events  *comm.EventMux
	Runners []fx.Runnable
}

// NewEnv creates Env from config, registering handler on every
// configured transport.
func (c *Config) NewEnv(handler comm.CommandHandler) (*Env, error) {
	if !c.Info.Ref.IsValid() {
		return nil, fmt.Errorf("link type and id must be specified")
	}
	e := &Env{Config: c, Events: &comm.EventMux{}}
	if c.MQTTBrokerURL != "" {
		reg, err := mqtt.NewRegistrar(c.MQTTBrokerURL, c.Info, handler)
		if err != nil {
			return nil, fmt.Errorf("create MQTT registrar error: %v", err)
		}
		e.Events.Add(reg)
		e.Runners = append(e.Runners, fx.NamedRun("mqtt", reg))
	}
	if c.ListenAddr != "" {
		srv := ws.NewServer(c.ListenAddr, c.Info.Ref, handler)
		e.Events.Add(srv)
		e.Runners = append(e.Runners, fx.NamedRun("websocket", srv))
	}
	if len(e.Runners) == 0 {
		return nil, fmt.Errorf("at least one of -mqtt or -listen is required")
	}
	return e, nil
}

// MustNewEnv creates Env and fails on error.
func (c *Config) MustNewEnv(handler comm.CommandHandler) *Env {
	e, err := c.NewEnv(handler)
	if err != nil {
		log.Fatalln(err)
	}
	return e
}
