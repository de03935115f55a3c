package msgs

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTypedRoundTrip(t *testing.T) {
	for _, tc := range []struct {
		name string
		msg  Message
	}{
		{"throttle-set", &ThrottleSet{Throttle: 1200}},
		{"telemetry-set", &TelemetrySet{Enabled: true}},
		{"command-send", &CommandSend{Name: "beacon1"}},
		{"status-query", &StatusQuery{}},
		{"command-ok", &CommandOK{}},
		{"command-err", NewCommandErrFromMsg("boom")},
		{"status-reply", &StatusReply{Status: &Status{Throttle: 7, Speed: "dshot300", Frames: 3}}},
		{"status-event", &Status{Throttle: 42, Telemetry: true, Speed: "dshot600"}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			typed, err := TypedFrom(tc.msg)
			require.NoError(t, err)
			typed.Sequence = 9

			pkt, err := typed.Encode()
			require.NoError(t, err)

			decoded, err := DecodeTyped(pkt)
			require.NoError(t, err)
			require.Equal(t, typed.TypeID, decoded.TypeID)
			require.Equal(t, uint32(9), decoded.Sequence)

			msg, err := decoded.Msg()
			require.NoError(t, err)
			require.Equal(t, tc.msg, msg)
		})
	}
}

func TestTypedKind(t *testing.T) {
	cmd, err := TypedFrom(&ThrottleSet{})
	require.NoError(t, err)
	require.True(t, cmd.IsCommand())
	require.False(t, cmd.IsEvent())

	evt, err := TypedFrom(&Status{})
	require.NoError(t, err)
	require.True(t, evt.IsEvent())
	require.False(t, evt.IsCommand())
}

func TestTypedUnknownType(t *testing.T) {
	typed := &Typed{TypeID: 0x7ffeffff}
	_, err := typed.Msg()
	var unknown *ErrUnknownType
	require.ErrorAs(t, err, &unknown)
	require.Equal(t, uint32(0x7ffeffff), unknown.TypeID)
}

type notSerializable struct{}

func (notSerializable) NewMessage() Message { return notSerializable{} }

func TestTypedFromNotSerializable(t *testing.T) {
	_, err := TypedFrom(notSerializable{})
	require.Equal(t, ErrNotSerializable, err)
}

func TestCommandErrIsError(t *testing.T) {
	var err error = NewCommandErrFromMsg("bad state")
	require.EqualError(t, err, "bad state")
}
