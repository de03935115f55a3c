package esc

import (
	"context"

	"github.com/golang/glog"

	"github.com/robotalks/dshot.go/pkg/comm"
	"github.com/robotalks/dshot.go/pkg/dshot"
	"github.com/robotalks/dshot.go/pkg/esc/msgs"
)

// Service exposes a Link to the comm layer, mapping control messages to
// link operations and announcing status changes as events.
type Service struct {
	Link *Link
	// Events receives a Status event after every applied command;
	// optional.
	Events comm.EventSender
}

// HandleCommand implements comm.CommandHandler.
func (s *Service) HandleCommand(ctx context.Context, msg msgs.Message) msgs.Message {
	switch m := msg.(type) {
	case *msgs.ThrottleSet:
		return s.reply(ctx, s.Link.SetThrottle(ctx, m.Throttle))
	case *msgs.TelemetrySet:
		return s.reply(ctx, s.Link.SetTelemetry(ctx, m.Enabled))
	case *msgs.CommandSend:
		cmd, ok := dshot.CommandByName(m.Name)
		if !ok {
			return msgs.NewCommandErrFromMsg("unknown command: " + m.Name)
		}
		return s.reply(ctx, s.Link.SendCommand(ctx, cmd))
	case *msgs.StatusQuery:
		status, err := s.Link.Status(ctx)
		if err != nil {
			return msgs.NewCommandErr(err)
		}
		return &msgs.StatusReply{Status: status}
	}
	return msgs.NewCommandErr(msgs.ErrUnsupportedCommand)
}

func (s *Service) reply(ctx context.Context, err error) msgs.Message {
	if err != nil {
		return msgs.NewCommandErr(err)
	}
	s.notifyStatus(ctx)
	return msgs.NewCommandOK()
}

func (s *Service) notifyStatus(ctx context.Context) {
	if s.Events == nil {
		return
	}
	status, err := s.Link.Status(ctx)
	if err != nil {
		return
	}
	if err := s.Events.SendEvent(ctx, status); err != nil {
		glog.Warningf("status event: %v", err)
	}
}
