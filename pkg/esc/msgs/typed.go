package msgs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// TypeID masks
const (
	TypeIDMaskKind  uint32 = 0x80000000
	TypeIDMaskGroup uint32 = 0x7fff0000
	TypeIDMaskID    uint32 = 0x0000ffff
	TypeIDMaskReply uint32 = 0x00008000
)

// Message kinds
const (
	TypeIDKindCommand uint32 = 0x00000000
	TypeIDKindEvent   uint32 = 0x80000000
)

// Message is the abstract unit exchanged with a link daemon.
type Message interface {
	// NewMessage creates an empty message of the same type.
	NewMessage() Message
}

// SerializableMessage can be carried over the wire. The concrete struct
// is serialized as JSON.
type SerializableMessage interface {
	Message
	TypeID() uint32
}

// Typed is the wire envelope wrapping a serialized message with its
// type information.
type Typed struct {
	TypeID   uint32          `json:"type_id"`
	Sequence uint32          `json:"seq,omitempty"`
	Message  json.RawMessage `json:"msg,omitempty"`
}

// TypedMsgHandler handles a decoded message.
type TypedMsgHandler interface {
	HandleTypedMsg(context.Context, Message, *Typed) error
}

// HandleTypedMsgFunc is func form of TypedMsgHandler.
type HandleTypedMsgFunc func(context.Context, Message, *Typed) error

// HandleTypedMsg implements TypedMsgHandler.
func (f HandleTypedMsgFunc) HandleTypedMsg(ctx context.Context, msg Message, typed *Typed) error {
	return f(ctx, msg, typed)
}

// ErrUnknownType indicates an unknown type id.
type ErrUnknownType struct {
	TypeID uint32
}

// Error implements error.
func (e *ErrUnknownType) Error() string {
	return fmt.Sprintf("unknown type: %x", e.TypeID)
}

var (
	// ErrNotSerializable indicates the message is not serializable.
	ErrNotSerializable = errors.New("not serializable message")
	// ErrUnsupportedCommand indicates the command is unsupported.
	ErrUnsupportedCommand = errors.New("unsupported command")
)

// MessageTypes are predefined mappings of type ID to messages.
var MessageTypes = map[uint32]SerializableMessage{
	CommandOKTypeID:    (*CommandOK)(nil),
	CommandErrTypeID:   (*CommandErr)(nil),
	ThrottleSetTypeID:  (*ThrottleSet)(nil),
	TelemetrySetTypeID: (*TelemetrySet)(nil),
	CommandSendTypeID:  (*CommandSend)(nil),
	StatusQueryTypeID:  (*StatusQuery)(nil),
	StatusReplyTypeID:  (*StatusReply)(nil),
	StatusTypeID:       (*Status)(nil),
}

// TypedFrom creates a Typed from a serializable message.
func TypedFrom(msg Message) (*Typed, error) {
	s, ok := msg.(SerializableMessage)
	if !ok {
		return nil, ErrNotSerializable
	}
	data, err := json.Marshal(msg)
	if err != nil {
		return nil, err
	}
	return &Typed{TypeID: s.TypeID(), Message: data}, nil
}

// Encode encodes the envelope for the wire.
func (t *Typed) Encode() ([]byte, error) {
	return json.Marshal(t)
}

// DecodeTyped parses a wire packet into an envelope.
func DecodeTyped(pkt []byte) (*Typed, error) {
	var t Typed
	if err := json.Unmarshal(pkt, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

// Msg reconstructs the wrapped message from the registry.
func (t *Typed) Msg() (Message, error) {
	prototype := MessageTypes[t.TypeID]
	if prototype == nil {
		return nil, &ErrUnknownType{TypeID: t.TypeID}
	}
	msg := prototype.NewMessage()
	if len(t.Message) > 0 {
		if err := json.Unmarshal(t.Message, msg); err != nil {
			return nil, err
		}
	}
	return msg, nil
}

// Kind returns the kind bit of the type ID.
func (t *Typed) Kind() uint32 {
	return t.TypeID & TypeIDMaskKind
}

// IsCommand indicates a command-kind message.
func (t *Typed) IsCommand() bool {
	return t.Kind() == TypeIDKindCommand
}

// IsEvent indicates an event-kind message.
func (t *Typed) IsEvent() bool {
	return t.Kind() == TypeIDKindEvent
}
