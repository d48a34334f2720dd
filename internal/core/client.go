package core

import "sync/atomic"

const defaultEventBuffer = 16

type clientStatus int

const (
	clientPending clientStatus = iota
	clientOpen
	clientClosed
)

// Client is one live connection as seen by the core layer.
//
// roomID, role and status are owned by the hub goroutine. Transports only
// read Events and call MarkDisconnected.
type Client struct {
	ID     string
	Events chan *Event

	roomID string
	role   Role
	status clientStatus

	disconnected atomic.Bool
}

// NewClient constructs a client with a buffered event channel.
func NewClient(id string, buffer int) *Client {
	if buffer <= 0 {
		buffer = defaultEventBuffer
	}
	return &Client{
		ID:     id,
		Events: make(chan *Event, buffer),
	}
}

// MarkDisconnected records that the underlying transport is gone. The hub
// stops delivering events and will not requeue the client, even before its
// close has been processed.
func (c *Client) MarkDisconnected() {
	c.disconnected.Store(true)
}

func (c *Client) isOpen() bool {
	return c.status == clientOpen && !c.disconnected.Load()
}

func (c *Client) setRoom(roomID string, role Role) {
	c.roomID = roomID
	c.role = role
}

func (c *Client) clearRoom() {
	c.roomID = ""
	c.role = ""
}

func (c *Client) room() (string, Role, bool) {
	if c.roomID == "" {
		return "", "", false
	}
	return c.roomID, c.role, true
}

// close marks the client terminal and ends its event stream.
func (c *Client) close() {
	if c.status == clientClosed {
		return
	}
	c.status = clientClosed
	close(c.Events)
}
