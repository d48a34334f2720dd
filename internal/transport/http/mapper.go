package http

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/tidwall/gjson"

	"github.com/vovakirdan/pairchat-server/internal/core"
	"github.com/vovakirdan/pairchat-server/internal/proto"
)

var (
	errMalformedFrame = errors.New("malformed frame")
	errUnknownType    = errors.New("unknown message type")
	errInvalidJoin    = errors.New("invalid joinRoom")
)

// inboundToCommand decodes a raw client frame. Any error means the frame is
// dropped without a reply.
func inboundToCommand(data []byte) (*core.Command, error) {
	if !gjson.ValidBytes(data) {
		return nil, errMalformedFrame
	}
	typ := gjson.GetBytes(data, "type")
	if typ.Type != gjson.String {
		return nil, fmt.Errorf("%w: missing type", errUnknownType)
	}

	var inbound proto.Inbound
	if err := json.Unmarshal(data, &inbound); err != nil {
		return nil, fmt.Errorf("%w: %v", errMalformedFrame, err)
	}

	switch inbound.Type {
	case proto.InboundTypeJoinRoom:
		if inbound.RoomID == "" {
			return nil, fmt.Errorf("%w: missing roomId", errInvalidJoin)
		}
		role, ok := core.ParseRole(inbound.Role)
		if !ok {
			return nil, fmt.Errorf("%w: role %q", errInvalidJoin, inbound.Role)
		}
		return &core.Command{Kind: core.CommandJoinRoom, RoomID: inbound.RoomID, Role: role}, nil
	case proto.InboundTypeChatMessage:
		return &core.Command{Kind: core.CommandChatMessage, RoomID: inbound.RoomID, Text: inbound.Text}, nil
	case proto.InboundTypeTerminateRoom:
		return &core.Command{Kind: core.CommandTerminateRoom, RoomID: inbound.RoomID}, nil
	case proto.InboundTypeLeaveQueue:
		return &core.Command{Kind: core.CommandLeaveQueue}, nil
	default:
		return nil, fmt.Errorf("%w: %q", errUnknownType, inbound.Type)
	}
}

func outboundFromEvent(event *core.Event) any {
	switch event.Kind {
	case core.EventQueueStatus:
		return proto.QueueStatus{
			Type:     proto.OutboundTypeQueueStatus,
			Message:  event.Notice,
			Position: event.Position,
		}
	case core.EventMatched:
		return proto.Matched{
			Type:    proto.OutboundTypeMatched,
			RoomID:  event.RoomID,
			Role:    string(event.Role),
			Message: event.Notice,
		}
	case core.EventChatMessage:
		return proto.ChatMessage{
			Type: proto.OutboundTypeChatMessage,
			Text: event.Text,
			From: string(event.From),
		}
	case core.EventParticipantLeft:
		return proto.ParticipantLeft{
			Type:    proto.OutboundTypeParticipantLeft,
			Role:    string(event.Role),
			Message: event.Notice,
		}
	case core.EventLeftQueue:
		return proto.LeftQueue{
			Type:    proto.OutboundTypeLeftQueue,
			Message: event.Notice,
		}
	case core.EventError:
		if event.Error == nil {
			return proto.Error{Type: proto.OutboundTypeError, Code: "unknown", Message: "unknown error"}
		}
		return proto.Error{
			Type:    proto.OutboundTypeError,
			Code:    event.Error.Code,
			Message: event.Error.Message,
		}
	default:
		return proto.Error{Type: proto.OutboundTypeError, Code: "unknown", Message: "unknown event"}
	}
}
