package core

// CommandKind describes what the client wants to do.
type CommandKind int

const (
	// CommandJoinRoom attaches the client to a chosen room and role, bypassing the queue.
	CommandJoinRoom CommandKind = iota
	// CommandChatMessage relays text to the other participant of the room.
	CommandChatMessage
	// CommandTerminateRoom tears the room down for both participants.
	CommandTerminateRoom
	// CommandLeaveQueue removes the client from the waiting queue.
	CommandLeaveQueue
)

func (k CommandKind) String() string {
	switch k {
	case CommandJoinRoom:
		return "joinRoom"
	case CommandChatMessage:
		return "chatMessage"
	case CommandTerminateRoom:
		return "terminateRoom"
	case CommandLeaveQueue:
		return "leaveQueue"
	default:
		return "unknown"
	}
}

// Command represents an action requested by a client.
// RoomID is a hint for chat and terminate; the client's own room wins.
type Command struct {
	Kind   CommandKind
	RoomID string
	Role   Role
	Text   string
}
