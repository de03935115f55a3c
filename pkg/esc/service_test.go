package esc

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/robotalks/dshot.go/pkg/dshot"
	"github.com/robotalks/dshot.go/pkg/esc/msgs"
)

type captureEvents struct {
	sent []msgs.Message
}

func (c *captureEvents) SendEvent(ctx context.Context, msg msgs.Message) error {
	c.sent = append(c.sent, msg)
	return nil
}

func TestServiceHandleCommand(t *testing.T) {
	link, line, stop := startLink(t)
	defer stop()
	events := &captureEvents{}
	svc := &Service{Link: link, Events: events}
	ctx := context.Background()

	reply := svc.HandleCommand(ctx, &msgs.ThrottleSet{Throttle: 321})
	require.IsType(t, &msgs.CommandOK{}, reply)

	reply = svc.HandleCommand(ctx, &msgs.TelemetrySet{Enabled: true})
	require.IsType(t, &msgs.CommandOK{}, reply)

	reply = svc.HandleCommand(ctx, &msgs.CommandSend{Name: "beacon3"})
	require.IsType(t, &msgs.CommandOK{}, reply)

	reply = svc.HandleCommand(ctx, &msgs.StatusQuery{})
	statusReply, ok := reply.(*msgs.StatusReply)
	require.True(t, ok)
	require.Equal(t, uint16(321), statusReply.Status.Throttle)
	require.True(t, statusReply.Status.Telemetry)

	// one status event per applied command
	require.Len(t, events.sent, 3)
	for _, msg := range events.sent {
		require.IsType(t, &msgs.Status{}, msg)
	}
	last := events.sent[2].(*msgs.Status)
	require.Equal(t, uint16(321), last.Throttle)

	frames, err := line.Frames(dshot.DShot600)
	require.NoError(t, err)
	require.Len(t, frames, 3)
}

func TestServiceHandleCommandErrors(t *testing.T) {
	link, _, stop := startLink(t)
	defer stop()
	svc := &Service{Link: link}
	ctx := context.Background()

	reply := svc.HandleCommand(ctx, &msgs.ThrottleSet{Throttle: 2000})
	cmdErr, ok := reply.(*msgs.CommandErr)
	require.True(t, ok)
	require.Equal(t, dshot.ErrThrottleRange.Error(), cmdErr.Message)

	reply = svc.HandleCommand(ctx, &msgs.CommandSend{Name: "no-such-command"})
	cmdErr, ok = reply.(*msgs.CommandErr)
	require.True(t, ok)
	require.Contains(t, cmdErr.Message, "unknown command")

	// a reply message is not a recognized command
	reply = svc.HandleCommand(ctx, &msgs.CommandOK{})
	cmdErr, ok = reply.(*msgs.CommandErr)
	require.True(t, ok)
	require.Equal(t, msgs.ErrUnsupportedCommand.Error(), cmdErr.Message)
}
