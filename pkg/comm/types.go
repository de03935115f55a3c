package comm

import (
	"context"

	"github.com/robotalks/dshot.go/pkg/esc/msgs"
)

// PacketReader reads packets in bytes.
type PacketReader interface {
	ReadPacket() ([]byte, error)
}

// PacketWriter writes packets in bytes.
type PacketWriter interface {
	WritePacket([]byte) error
}

// PacketReadWriter reads/writes packets in bytes.
type PacketReadWriter interface {
	PacketReader
	PacketWriter
}

// EventSender sends event-kind messages to connected clients.
type EventSender interface {
	SendEvent(context.Context, msgs.Message) error
}

// CommandHandler processes a command-kind message and produces the
// reply to send back.
type CommandHandler interface {
	HandleCommand(context.Context, msgs.Message) msgs.Message
}

// HandleCommandFunc is func form of CommandHandler.
type HandleCommandFunc func(context.Context, msgs.Message) msgs.Message

// HandleCommand implements CommandHandler.
func (f HandleCommandFunc) HandleCommand(ctx context.Context, msg msgs.Message) msgs.Message {
	return f(ctx, msg)
}

// LinkRef is a reference to a registered ESC link daemon.
type LinkRef struct {
	// Type is the link type (e.g. "esc").
	Type string
	// ID is the unique ID of the device.
	ID string
}

// Name retrieves the name from ref.
func (r LinkRef) Name() string {
	return r.Type + "/" + r.ID
}

// IsValid indicates LinkRef is valid.
func (r LinkRef) IsValid() bool {
	return r.Type != "" && r.ID != ""
}

// LinkMeta provides metadata for a registered link.
type LinkMeta struct {
	Description string            `json:"description,omitempty"`
	Labels      map[string]string `json:"labels,omitempty"`
}

// LinkInfo provides information of a registered link.
type LinkInfo struct {
	Ref  LinkRef
	Meta LinkMeta
}

// Connector is used by clients to reach a registered link daemon.
type Connector interface {
	// Discover enumerates registered links.
	Discover(context.Context) ([]LinkInfo, error)
	// Connect connects to the specified link.
	Connect(context.Context, LinkRef) (Conn, error)
}

// Conn is a client connection to a link daemon.
type Conn interface {
	// DoCommand executes a command.
	DoCommand(msgs.Message) CommandFuture
}

// Result represents the result of a command.
type Result struct {
	Msg msgs.Message
	Err error
}

// CommandFuture is the future of a sent command.
type CommandFuture interface {
	ResultChan() <-chan Result
}
