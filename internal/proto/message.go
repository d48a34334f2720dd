package proto

// Inbound message types.
const (
	InboundTypeJoinRoom      = "joinRoom"
	InboundTypeChatMessage   = "chatMessage"
	InboundTypeTerminateRoom = "terminateRoom"
	InboundTypeLeaveQueue    = "leaveQueue"
)

// Outbound message types.
const (
	OutboundTypeQueueStatus     = "queueStatus"
	OutboundTypeMatched         = "matched"
	OutboundTypeChatMessage     = "chatMessage"
	OutboundTypeParticipantLeft = "participantLeft"
	OutboundTypeLeftQueue       = "leftQueue"
	OutboundTypeError           = "error"
)

// Inbound is any message coming from the client. Fields not used by a type
// are left empty.
type Inbound struct {
	Type   string `json:"type"`
	RoomID string `json:"roomId,omitempty"`
	Role   string `json:"role,omitempty"`
	Text   string `json:"text,omitempty"`
}

// QueueStatus reports the queue length after the client was enqueued.
type QueueStatus struct {
	Type     string `json:"type"`
	Message  string `json:"message"`
	Position int    `json:"position"`
}

// Matched announces an auto-match.
type Matched struct {
	Type    string `json:"type"`
	RoomID  string `json:"roomId"`
	Role    string `json:"role"`
	Message string `json:"message"`
}

// ChatMessage is relayed text from the other participant.
type ChatMessage struct {
	Type string `json:"type"`
	Text string `json:"text"`
	From string `json:"from"`
}

// ParticipantLeft tells the client which role is gone.
type ParticipantLeft struct {
	Type    string `json:"type"`
	Role    string `json:"role"`
	Message string `json:"message,omitempty"`
}

// LeftQueue acknowledges a leaveQueue request.
type LeftQueue struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// Error describes a rejected operation.
type Error struct {
	Type    string `json:"type"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// Outbound is the union of all server messages, used by clients that decode
// before knowing the type.
type Outbound struct {
	Type     string `json:"type"`
	Message  string `json:"message,omitempty"`
	Position int    `json:"position,omitempty"`
	RoomID   string `json:"roomId,omitempty"`
	Role     string `json:"role,omitempty"`
	Text     string `json:"text,omitempty"`
	From     string `json:"from,omitempty"`
	Code     string `json:"code,omitempty"`
}
