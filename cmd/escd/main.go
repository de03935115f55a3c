package main

//go-build: CGO_ENABLED=0

import (
	"flag"
	"log"

	"github.com/robotalks/dshot.go/pkg/comm"
	"github.com/robotalks/dshot.go/pkg/dshot"
	"github.com/robotalks/dshot.go/pkg/env/daemon"
	"github.com/robotalks/dshot.go/pkg/esc"
	fx "github.com/robotalks/dshot.go/pkg/framework"
	"github.com/robotalks/dshot.go/pkg/hw/periphio"
	"github.com/robotalks/dshot.go/pkg/sim"
)

var (
	pinName   string
	speedName = "dshot300"
	interval  = esc.DefaultInterval
	simulate  bool
)

func init() {
	daemon.SetLinkType("esc", comm.LinkMeta{Description: "DShot ESC"})
	daemon.SetupFlags()
	flag.StringVar(&pinName, "pin", pinName, "GPIO pin driving the ESC signal line")
	flag.StringVar(&speedName, "speed", speedName, "DShot speed: dshot150, dshot300, dshot600")
	flag.DurationVar(&interval, "interval", interval, "Frame refresh interval")
	flag.BoolVar(&simulate, "sim", simulate, "Drive a simulated signal line instead of GPIO")
}

func newController(speed dshot.Speed) *dshot.Controller {
	if simulate {
		line := &sim.Line{}
		return dshot.NewController(line, line, speed)
	}
	if pinName == "" {
		log.Fatalln("-pin is required unless -sim is set")
	}
	pin, err := periphio.Open(pinName)
	if err != nil {
		log.Fatalf("open pin %s error: %v", pinName, err)
	}
	return dshot.NewController(pin, periphio.SpinDelay{}, speed)
}

func main() {
	flag.Parse()

	speed, ok := dshot.SpeedByName(speedName)
	if !ok {
		log.Fatalf("unknown speed %q", speedName)
	}

	link := esc.NewLink(newController(speed), speed)
	link.Interval = interval

	svc := &esc.Service{Link: link}
	env := daemon.NewConfig().MustNewEnv(svc)
	svc.Events = env.Events

	err := fx.NewRunner().HandleSignals().
		Go(env.Runners...).
		Go(fx.NamedRun("link", link)).
		Wait()
	if err != nil {
		log.Fatalln(err)
	}
}
