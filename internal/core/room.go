package core

import "time"

// Room pairs at most one sender and one receiver.
type Room struct {
	ID        string
	Sender    *Client
	Receiver  *Client
	CreatedAt time.Time
}

// NewRoom constructs an empty room.
func NewRoom(id string, createdAt time.Time) *Room {
	return &Room{ID: id, CreatedAt: createdAt}
}

// Occupant returns the client holding the given slot, or nil.
func (r *Room) Occupant(role Role) *Client {
	switch role {
	case RoleSender:
		return r.Sender
	case RoleReceiver:
		return r.Receiver
	default:
		return nil
	}
}

// RoleOf reports which slot c holds in the room.
func (r *Room) RoleOf(c *Client) (Role, bool) {
	switch {
	case c == nil:
		return "", false
	case r.Sender == c:
		return RoleSender, true
	case r.Receiver == c:
		return RoleReceiver, true
	default:
		return "", false
	}
}

// Paired returns true when both slots are filled.
func (r *Room) Paired() bool {
	return r.Sender != nil && r.Receiver != nil
}

// Empty returns true if neither slot is filled.
func (r *Room) Empty() bool {
	return r.Sender == nil && r.Receiver == nil
}

func (r *Room) setOccupant(role Role, c *Client) {
	switch role {
	case RoleSender:
		r.Sender = c
	case RoleReceiver:
		r.Receiver = c
	}
}
