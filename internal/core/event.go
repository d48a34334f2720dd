package core

// EventKind is a notification the core emits to clients.
type EventKind int

const (
	// EventQueueStatus reports the queue length after the client was enqueued.
	EventQueueStatus EventKind = iota
	// EventMatched tells a client it was auto-matched into a room.
	EventMatched
	// EventChatMessage carries text relayed from the other participant.
	EventChatMessage
	// EventParticipantLeft tells a client its partner is gone.
	EventParticipantLeft
	// EventLeftQueue acknowledges a leave-queue request.
	EventLeftQueue
	// EventError notifies the client about a rejected operation.
	EventError
)

func (k EventKind) String() string {
	switch k {
	case EventQueueStatus:
		return "queueStatus"
	case EventMatched:
		return "matched"
	case EventChatMessage:
		return "chatMessage"
	case EventParticipantLeft:
		return "participantLeft"
	case EventLeftQueue:
		return "leftQueue"
	case EventError:
		return "error"
	default:
		return "unknown"
	}
}

// Human-readable notices attached to events.
const (
	NoticeWaiting       = "Waiting for another user to connect..."
	NoticeMatched       = "You've been matched with another user!"
	NoticePartnerGone   = "The other participant has disconnected"
	NoticeLeftQueue     = "You've left the waiting queue"
	NoticeSenderTaken   = "Room already has a sender"
	NoticeReceiverTaken = "Room already has a receiver"
)

// Event is sent to a client to describe what happened.
//
// Role is the client's assigned role for EventMatched and the departed role
// for EventParticipantLeft. From is the author's role for EventChatMessage.
type Event struct {
	Kind     EventKind
	RoomID   string
	Role     Role
	From     Role
	Text     string
	Position int
	Notice   string
	Error    *CoreError
}
