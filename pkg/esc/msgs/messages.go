package msgs

// Type IDs. The generic group carries command replies, the esc group
// carries link control.
const (
	CommandOKTypeID  uint32 = TypeIDKindCommand | 0x00010000 | TypeIDMaskReply | 0x01
	CommandErrTypeID uint32 = TypeIDKindCommand | 0x00010000 | TypeIDMaskReply | 0x02

	ThrottleSetTypeID  uint32 = TypeIDKindCommand | 0x00020001
	TelemetrySetTypeID uint32 = TypeIDKindCommand | 0x00020002
	CommandSendTypeID  uint32 = TypeIDKindCommand | 0x00020003
	StatusQueryTypeID  uint32 = TypeIDKindCommand | 0x00020004
	StatusReplyTypeID  uint32 = TypeIDKindCommand | 0x00020004 | TypeIDMaskReply

	StatusTypeID uint32 = TypeIDKindEvent | 0x00020001
)

// CommandOK is the generic reply indicating success for commands.
type CommandOK struct {
}

// NewCommandOK creates a CommandOK.
func NewCommandOK() *CommandOK {
	return &CommandOK{}
}

// NewMessage implements Message.
func (m *CommandOK) NewMessage() Message { return &CommandOK{} }

// TypeID implements SerializableMessage.
func (m *CommandOK) TypeID() uint32 { return CommandOKTypeID }

// CommandErr is the generic reply representing a command error.
type CommandErr struct {
	Message string `json:"message,omitempty"`
}

// NewCommandErr creates a CommandErr from an error.
func NewCommandErr(err error) *CommandErr {
	return NewCommandErrFromMsg(err.Error())
}

// NewCommandErrFromMsg creates a CommandErr.
func NewCommandErrFromMsg(message string) *CommandErr {
	return &CommandErr{Message: message}
}

// NewMessage implements Message.
func (m *CommandErr) NewMessage() Message { return &CommandErr{} }

// TypeID implements SerializableMessage.
func (m *CommandErr) TypeID() uint32 { return CommandErrTypeID }

// Error implements error.
func (m *CommandErr) Error() string { return m.Message }

// ThrottleSet commands the link to a new throttle value.
type ThrottleSet struct {
	Throttle uint16 `json:"throttle"`
}

// NewMessage implements Message.
func (m *ThrottleSet) NewMessage() Message { return &ThrottleSet{} }

// TypeID implements SerializableMessage.
func (m *ThrottleSet) TypeID() uint32 { return ThrottleSetTypeID }

// TelemetrySet toggles telemetry requests on outgoing frames.
type TelemetrySet struct {
	Enabled bool `json:"enabled"`
}

// NewMessage implements Message.
func (m *TelemetrySet) NewMessage() Message { return &TelemetrySet{} }

// TypeID implements SerializableMessage.
func (m *TelemetrySet) TypeID() uint32 { return TelemetrySetTypeID }

// CommandSend transmits a named special command to the ESC.
type CommandSend struct {
	Name string `json:"name"`
}

// NewMessage implements Message.
func (m *CommandSend) NewMessage() Message { return &CommandSend{} }

// TypeID implements SerializableMessage.
func (m *CommandSend) TypeID() uint32 { return CommandSendTypeID }

// StatusQuery requests the current link status.
type StatusQuery struct {
}

// NewMessage implements Message.
func (m *StatusQuery) NewMessage() Message { return &StatusQuery{} }

// TypeID implements SerializableMessage.
func (m *StatusQuery) TypeID() uint32 { return StatusQueryTypeID }

// Status describes the state of one ESC link.
type Status struct {
	Throttle  uint16 `json:"throttle"`
	Telemetry bool   `json:"telemetry"`
	Speed     string `json:"speed"`
	Frames    uint64 `json:"frames"`
	PinErrors uint64 `json:"pin_errors"`
}

// NewMessage implements Message.
func (m *Status) NewMessage() Message { return &Status{} }

// TypeID implements SerializableMessage.
func (m *Status) TypeID() uint32 { return StatusTypeID }

// StatusReply answers a StatusQuery.
type StatusReply struct {
	Status *Status `json:"status,omitempty"`
}

// NewMessage implements Message.
func (m *StatusReply) NewMessage() Message { return &StatusReply{} }

// TypeID implements SerializableMessage.
func (m *StatusReply) TypeID() uint32 { return StatusReplyTypeID }
