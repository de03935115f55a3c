package sh

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"reflect"
	"time"

	"github.com/abiosoft/ishell"

	"github.com/robotalks/dshot.go/pkg/comm"
	"github.com/robotalks/dshot.go/pkg/env/client"
	"github.com/robotalks/dshot.go/pkg/esc/msgs"
	fx "github.com/robotalks/dshot.go/pkg/framework"
)

// Shell provides ishell backed interactive shell.
type Shell struct {
	Interactive bool
	OutputJSON  bool
	AutoConnect bool

	Shell  *ishell.Shell
	Config *client.Config
	Sess   *ConnSession
}

// ConnSession holds a live connection and the goroutine pumping it.
type ConnSession struct {
	Ctx    context.Context
	Cancel func()
	Ref    comm.LinkRef
	Conn   comm.Conn
}

const (
	shellKey          = "$shell"
	unconnectedPrompt = "[none] > "
)

var (
	// flags

	evalOnly   bool
	outputJSON bool

	// commands
	commands = []*ishell.Cmd{
		&DiscoverCmd,
		&ConnectCmd,
		&DisconnectCmd,
	}
)

func init() {
	flag.BoolVar(&evalOnly, "e", evalOnly, "Evaluation only, no interactive shell.")
	flag.BoolVar(&outputJSON, "json", outputJSON, "Print output in JSON.")
}

// AddCmds is used by other commands providers during init func.
func AddCmds(cmds ...*ishell.Cmd) {
	commands = append(commands, cmds...)
}

// New creates a new shell.
func New(conf *client.Config) *Shell {
	s := &Shell{
		Interactive: !evalOnly,
		OutputJSON:  outputJSON,

		Shell:  ishell.New(),
		Config: conf,
	}
	s.Shell.Set(shellKey, s)
	s.Shell.SetPrompt(unconnectedPrompt)
	for _, cmd := range commands {
		s.Shell.AddCmd(cmd)
	}
	return s
}

// ShellFrom gets Shell from ishell context.
func ShellFrom(c *ishell.Context) *Shell {
	return c.Get(shellKey).(*Shell)
}

// MustBeConnected wraps command func requires a connection.
func MustBeConnected(fn func(c *ishell.Context)) func(c *ishell.Context) {
	return func(c *ishell.Context) {
		if ShellFrom(c).Sess == nil {
			c.Err(fmt.Errorf("not connected"))
			return
		}
		fn(c)
	}
}

// FormatInfo prints LinkInfo into friendly string for display.
func FormatInfo(info comm.LinkInfo) string {
	var w bytes.Buffer
	fmt.Fprintf(&w, "%s", info.Ref.Name())
	if info.Meta.Description != "" {
		fmt.Fprintf(&w, ": %s", info.Meta.Description)
	}
	return w.String()
}

// FormatStatus prints a link status into friendly string for display.
func FormatStatus(status *msgs.Status) string {
	var w bytes.Buffer
	fmt.Fprintf(&w, "throttle %d telemetry %v speed %s frames %d",
		status.Throttle, status.Telemetry, status.Speed, status.Frames)
	if status.PinErrors > 0 {
		fmt.Fprintf(&w, " pin-errors %d", status.PinErrors)
	}
	return w.String()
}

// DoCommand runs a command and waits for result.
func DoCommand(c *ishell.Context, msg msgs.Message) (err error) {
	s := ShellFrom(c)
	if s.Sess == nil {
		err = fmt.Errorf("not connected")
		c.Err(err)
		return
	}
	f := s.Sess.Conn.DoCommand(msg)
	select {
	case res := <-f.ResultChan():
		if res.Err != nil {
			c.Err(res.Err)
			return res.Err
		}
		if s.OutputJSON {
			out, err := json.Marshal(res.Msg)
			if err != nil {
				c.Err(err)
				return err
			}
			c.Println(string(out))
			return nil
		}
		if _, ok := res.Msg.(*msgs.CommandOK); ok {
			c.Println("OK")
			return nil
		}
		if r, ok := res.Msg.(*msgs.StatusReply); ok && r.Status != nil {
			c.Println(FormatStatus(r.Status))
			return nil
		}
		c.Printf("%s %+v\n",
			reflect.Indirect(reflect.ValueOf(res.Msg)).Type().Name(),
			res.Msg)
	case <-time.After(time.Second):
		c.Err(fmt.Errorf("Command timeout"))
		return context.DeadlineExceeded
	}
	return nil
}

// WithAutoConnect sets AutoConnect.
func (s *Shell) WithAutoConnect(en bool) *Shell {
	s.AutoConnect = en
	return s
}

// DiscoverLinks discovers registered links.
func (s *Shell) DiscoverLinks(filter func(comm.LinkInfo) bool) (comm.Connector, []comm.LinkInfo, error) {
	connector, err := s.Config.NewConnector()
	if err != nil {
		return nil, nil, err
	}
	infoList, err := connector.Discover(context.TODO())
	if err != nil {
		return connector, nil, err
	}
	if filter != nil {
		items := make([]comm.LinkInfo, 0, len(infoList))
		for _, info := range infoList {
			if filter(info) {
				items = append(items, info)
			}
		}
		infoList = items
	}
	return connector, infoList, nil
}

// SelectLink discovers links and asks for a choice.
func (s *Shell) SelectLink(filter func(comm.LinkInfo) bool) (comm.Connector, *comm.LinkInfo, error) {
	connector, infoList, err := s.DiscoverLinks(filter)
	if err != nil {
		return nil, nil, err
	}
	if len(infoList) == 0 {
		return connector, nil, nil
	}
	var index int
	if len(infoList) > 1 {
		if !s.Interactive {
			return nil, nil, fmt.Errorf("more than 1 links discovered in non-interactive mode")
		}
		items := make([]string, len(infoList))
		for n, info := range infoList {
			items[n] = info.Ref.Name()
			if info.Meta.Description != "" {
				items[n] += ": " + info.Meta.Description
			}
		}
		index = s.Shell.MultiChoice(items, "Which one to connect?")
	}

	return connector, &infoList[index], nil
}

// Connect connects the link with ref.
func (s *Shell) Connect(ref comm.LinkRef) error {
	connector, err := s.Config.NewConnector()
	if err != nil {
		return err
	}
	sess := &ConnSession{Ref: ref}
	sess.Ctx, sess.Cancel = context.WithCancel(context.Background())
	if sess.Conn, err = connector.Connect(sess.Ctx, ref); err != nil {
		sess.Cancel()
		return err
	}
	if s.Sess != nil {
		s.Sess.Cancel()
	}
	s.Sess = sess
	if r, ok := sess.Conn.(fx.Runnable); ok {
		go r.Run(sess.Ctx)
	}
	s.Shell.SetPrompt(fmt.Sprintf("%s > ", ref.Name()))
	return nil
}

// Disconnect disconnects current link.
func (s *Shell) Disconnect() {
	if s.Sess != nil {
		s.Sess.Cancel()
		s.Sess = nil
		s.Shell.SetPrompt(unconnectedPrompt)
	}
}

// Run runs the shell.
func (s *Shell) Run(args ...string) {
	if s.AutoConnect && s.Config.Ref.IsValid() {
		if s.Interactive {
			s.Shell.Printf("Connecting %s ...\n", s.Config.Ref.Name())
		}
		if err := s.Connect(s.Config.Ref); err != nil {
			log.Fatalf("connect %q failed: %v", s.Config.Ref.Name(), err)
		}
	}

	if len(args) > 0 {
		if err := s.Shell.Process(args...); err != nil {
			log.Fatalln(err)
		}
		return
	}
	if s.Interactive {
		s.Shell.Run()
		return
	}
	log.Fatalln("command expected")
}

var (
	// DiscoverCmd discovers registered links.
	DiscoverCmd = ishell.Cmd{
		Name:    "discover",
		Aliases: []string{"list", "l"},
		Help:    "",
		Func: func(c *ishell.Context) {
			s := ShellFrom(c)
			_, infoList, err := s.DiscoverLinks(nil)
			if err != nil {
				c.Err(err)
				return
			}
			if s.OutputJSON {
				if len(infoList) == 0 {
					// in case infoList is nil, make it empty slice.
					infoList = []comm.LinkInfo{}
				}
				out, err := json.Marshal(infoList)
				if err != nil {
					c.Err(err)
					return
				}
				c.Println(string(out))
				return
			}
			if len(infoList) == 0 {
				c.Println("No links found")
				return
			}
			for _, info := range infoList {
				c.Println(FormatInfo(info))
			}
		},
	}

	// ConnectCmd connects a link.
	ConnectCmd = ishell.Cmd{
		Name:    "connect",
		Aliases: []string{"c"},
		Help:    "TYPE ID",
		Func: func(c *ishell.Context) {
			s := ShellFrom(c)
			var ref comm.LinkRef
			if len(c.Args) >= 2 {
				ref.Type, ref.ID = c.Args[0], c.Args[1]
			} else {
				var filter func(comm.LinkInfo) bool
				if len(c.Args) == 1 {
					filter = func(info comm.LinkInfo) bool {
						return info.Ref.Type == c.Args[0]
					}
				}
				_, info, err := s.SelectLink(filter)
				if err != nil {
					c.Err(err)
					return
				}
				if info == nil {
					c.Err(fmt.Errorf("no link discovered"))
					return
				}
				ref = info.Ref
			}
			if err := s.Connect(ref); err != nil {
				c.Err(err)
				return
			}
		},
	}

	// DisconnectCmd disconnects current link.
	DisconnectCmd = ishell.Cmd{
		Name:    "disconnect",
		Aliases: []string{"d"},
		Help:    "",
		Func: func(c *ishell.Context) {
			ShellFrom(c).Disconnect()
		},
	}
)

// Main is a helper to provide a single call in main.
func Main() {
	flag.Parse()
	New(client.NewConfig()).WithAutoConnect(true).Run(flag.Args()...)
}
