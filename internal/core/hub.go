package core

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/vovakirdan/pairchat-server/internal/utils"
)

const defaultInboxSize = 256

type envelopeKind int

const (
	envConnect envelopeKind = iota
	envCommand
	envClose
	envStats
)

// envelope is one unit of work for the hub loop.
type envelope struct {
	kind   envelopeKind
	client *Client
	cmd    Command
	reply  chan Stats
}

// Stats is a snapshot of the hub state.
type Stats struct {
	Clients     int    `json:"clients"`
	Waiting     int    `json:"waiting"`
	Rooms       int    `json:"rooms"`
	PairedRooms int    `json:"paired_rooms"`
	Matches     uint64 `json:"matches"`
}

// Hub owns the waiting queue and the room table. All state is mutated by the
// goroutine running Run; other goroutines talk to it through the inbox.
type Hub struct {
	inbox chan envelope
	done  chan struct{}

	clients map[*Client]struct{}
	queue   waitingQueue
	rooms   map[string]*Room
	matches uint64

	receiverPolicy ReceiverPolicy
	newRoomID      func() string
	newTicket      func() string
	now            func() time.Time

	log *zerolog.Logger
}

// Option customizes a Hub.
type Option func(*Hub)

// WithReceiverPolicy selects how manual joins treat a taken receiver slot.
func WithReceiverPolicy(p ReceiverPolicy) Option {
	return func(h *Hub) { h.receiverPolicy = p }
}

// WithRoomIDGenerator replaces the room id source used by auto-matching.
func WithRoomIDGenerator(gen func() string) Option {
	return func(h *Hub) { h.newRoomID = gen }
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(h *Hub) { h.now = now }
}

// WithInboxSize sets the buffer of the hub inbox.
func WithInboxSize(n int) Option {
	return func(h *Hub) {
		if n > 0 {
			h.inbox = make(chan envelope, n)
		}
	}
}

// NewHub creates a hub. A nil logger disables logging.
func NewHub(logger *zerolog.Logger, opts ...Option) *Hub {
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}
	hubLog := logger.With().Str("component", "hub").Logger()

	h := &Hub{
		inbox:          make(chan envelope, defaultInboxSize),
		done:           make(chan struct{}),
		clients:        make(map[*Client]struct{}),
		rooms:          make(map[string]*Room),
		receiverPolicy: ReceiverPolicyOverwrite,
		newRoomID:      utils.NewRoomID,
		newTicket:      utils.NewSessionID,
		now:            time.Now,
		log:            &hubLog,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Run processes envelopes until ctx is cancelled. On exit every remaining
// client's event stream is closed.
func (h *Hub) Run(ctx context.Context) {
	defer h.shutdown()

	for {
		select {
		case <-ctx.Done():
			return
		case env := <-h.inbox:
			h.dispatch(env)
		}
	}
}

// Done is closed once Run has returned.
func (h *Hub) Done() <-chan struct{} {
	return h.done
}

// RegisterClient announces a new connection. The client is queued and may be
// matched right away.
func (h *Hub) RegisterClient(c *Client) error {
	return h.post(envelope{kind: envConnect, client: c})
}

// UnregisterClient announces that the connection is closed.
func (h *Hub) UnregisterClient(c *Client) error {
	return h.post(envelope{kind: envClose, client: c})
}

// Submit hands a client command to the hub.
func (h *Hub) Submit(c *Client, cmd Command) error {
	return h.post(envelope{kind: envCommand, client: c, cmd: cmd})
}

// Stats returns a snapshot taken on the hub goroutine. Every envelope posted
// before the call has been handled when it returns.
func (h *Hub) Stats(ctx context.Context) (Stats, error) {
	reply := make(chan Stats, 1)
	select {
	case h.inbox <- envelope{kind: envStats, reply: reply}:
	case <-h.done:
		return Stats{}, ErrHubStopped
	case <-ctx.Done():
		return Stats{}, ctx.Err()
	}

	select {
	case s := <-reply:
		return s, nil
	case <-h.done:
		return Stats{}, ErrHubStopped
	case <-ctx.Done():
		return Stats{}, ctx.Err()
	}
}

func (h *Hub) post(env envelope) error {
	select {
	case h.inbox <- env:
		return nil
	case <-h.done:
		return ErrHubStopped
	}
}

func (h *Hub) shutdown() {
	close(h.done)
	for c := range h.clients {
		c.close()
	}
	h.log.Info().Int("clients", len(h.clients)).Msg("hub stopped")
}

func (h *Hub) dispatch(env envelope) {
	switch env.kind {
	case envConnect:
		h.handleConnect(env.client)
	case envClose:
		h.handleClose(env.client)
	case envStats:
		env.reply <- h.snapshot()
	case envCommand:
		if env.client.status != clientOpen {
			return
		}
		switch env.cmd.Kind {
		case CommandJoinRoom:
			h.handleJoinRoom(env.client, env.cmd.RoomID, env.cmd.Role)
		case CommandChatMessage:
			h.handleChatMessage(env.client, env.cmd.RoomID, env.cmd.Text)
		case CommandTerminateRoom:
			h.handleTerminateRoom(env.client, env.cmd.RoomID)
		case CommandLeaveQueue:
			h.handleLeaveQueue(env.client)
		default:
			h.log.Debug().Str("client_id", env.client.ID).Int("kind", int(env.cmd.Kind)).Msg("unknown command")
		}
	}
}

func (h *Hub) handleConnect(c *Client) {
	if c.status != clientPending {
		return
	}
	c.status = clientOpen
	h.clients[c] = struct{}{}

	h.log.Info().Str("client_id", c.ID).Msg("client connected")
	h.enqueue(c, c.ID)
	h.runMatchingPass()
}

// enqueue appends c to the queue and reports the new queue length to it.
func (h *Hub) enqueue(c *Client, sessionID string) {
	h.pruneQueue()
	if !h.queue.push(WaitingEntry{Client: c, SessionID: sessionID, EnqueuedAt: h.now()}) {
		return
	}
	h.log.Debug().Str("client_id", c.ID).Int("queue_len", h.queue.len()).Msg("client queued")
	h.send(c, &Event{
		Kind:     EventQueueStatus,
		Position: h.queue.len(),
		Notice:   NoticeWaiting,
	})
}

// runMatchingPass pairs the two oldest waiting clients until fewer than two remain.
func (h *Hub) runMatchingPass() {
	h.pruneQueue()
	for {
		first, second, ok := h.queue.popPair()
		if !ok {
			return
		}

		room := NewRoom(h.newRoomID(), h.now())
		room.Sender = first.Client
		room.Receiver = second.Client
		h.rooms[room.ID] = room
		h.matches++

		first.Client.setRoom(room.ID, RoleSender)
		second.Client.setRoom(room.ID, RoleReceiver)

		h.send(first.Client, &Event{Kind: EventMatched, RoomID: room.ID, Role: RoleSender, Notice: NoticeMatched})
		h.send(second.Client, &Event{Kind: EventMatched, RoomID: room.ID, Role: RoleReceiver, Notice: NoticeMatched})

		h.log.Info().
			Str("room_id", room.ID).
			Str("sender", first.Client.ID).
			Str("receiver", second.Client.ID).
			Msg("clients matched")
	}
}

// pruneQueue drops entries whose connection is gone but whose close has not
// been handled yet. The close still runs later and finds them absent.
func (h *Hub) pruneQueue() {
	if n := h.queue.dropWhere(func(c *Client) bool { return !c.isOpen() }); n > 0 {
		h.log.Debug().Int("dropped", n).Int("queue_len", h.queue.len()).Msg("dropped disconnected clients from queue")
	}
}

func (h *Hub) handleJoinRoom(c *Client, roomID string, role Role) {
	if roomID == "" || !role.Valid() {
		h.log.Debug().Str("client_id", c.ID).Str("room_id", roomID).Str("role", string(role)).Msg("join dropped: invalid request")
		return
	}

	h.queue.remove(c)

	var current *Client
	if room := h.rooms[roomID]; room != nil {
		current = room.Occupant(role)
	}
	if current == c {
		return
	}
	if current != nil {
		switch {
		case role == RoleSender:
			h.log.Debug().Str("client_id", c.ID).Str("room_id", roomID).Msg("sender slot taken")
			h.send(c, errorEvent(ErrCodeSenderTaken, NoticeSenderTaken))
			return
		case h.receiverPolicy == ReceiverPolicyGuarded:
			h.log.Debug().Str("client_id", c.ID).Str("room_id", roomID).Msg("receiver slot taken")
			h.send(c, errorEvent(ErrCodeReceiverTaken, NoticeReceiverTaken))
			return
		}
	}

	h.detach(c)

	room := h.rooms[roomID]
	if room == nil {
		room = NewRoom(roomID, h.now())
		h.rooms[roomID] = room
	}
	if current != nil {
		current.clearRoom()
		h.log.Info().Str("room_id", roomID).Str("client_id", current.ID).Msg("receiver replaced")
	}
	room.setOccupant(role, c)
	c.setRoom(roomID, role)

	h.log.Info().Str("client_id", c.ID).Str("room_id", roomID).Str("role", string(role)).Msg("client joined room")
}

func (h *Hub) handleChatMessage(c *Client, roomHint, text string) {
	room := h.resolveRoom(c, roomHint)
	if room == nil {
		h.log.Debug().Str("client_id", c.ID).Str("room_id", roomHint).Msg("chat dropped: no room")
		return
	}
	role, ok := room.RoleOf(c)
	if !ok {
		h.log.Debug().Str("client_id", c.ID).Str("room_id", room.ID).Msg("chat dropped: not an occupant")
		return
	}
	peer := room.Occupant(role.Opposite())
	if peer == nil {
		h.log.Debug().Str("client_id", c.ID).Str("room_id", room.ID).Msg("chat dropped: no partner")
		return
	}

	h.send(peer, &Event{Kind: EventChatMessage, RoomID: room.ID, From: role, Text: text})
}

func (h *Hub) handleTerminateRoom(c *Client, roomHint string) {
	room := h.resolveRoom(c, roomHint)
	if room == nil {
		h.log.Debug().Str("client_id", c.ID).Str("room_id", roomHint).Msg("terminate dropped: no room")
		return
	}

	survivor, departed := room.Sender, RoleReceiver
	if room.Sender == c {
		survivor, departed = room.Receiver, RoleSender
	}
	if survivor != nil && survivor != c {
		h.send(survivor, &Event{Kind: EventParticipantLeft, RoomID: room.ID, Role: departed})
	}

	h.deleteRoom(room)
	h.log.Info().Str("client_id", c.ID).Str("room_id", room.ID).Msg("room terminated")
}

func (h *Hub) handleLeaveQueue(c *Client) {
	if h.queue.remove(c) {
		h.log.Debug().Str("client_id", c.ID).Int("queue_len", h.queue.len()).Msg("client left queue")
	}
	h.send(c, &Event{Kind: EventLeftQueue, Notice: NoticeLeftQueue})
}

func (h *Hub) handleClose(c *Client) {
	if c.status == clientClosed {
		return
	}
	h.queue.remove(c)

	if roomID, role, ok := c.room(); ok {
		if room := h.rooms[roomID]; room != nil {
			survivor := room.Occupant(role.Opposite())
			if survivor != nil && survivor != c && survivor.isOpen() {
				h.send(survivor, &Event{
					Kind:   EventParticipantLeft,
					RoomID: roomID,
					Role:   role,
					Notice: NoticePartnerGone,
				})
				survivor.clearRoom()
				h.enqueue(survivor, h.newTicket())
				h.log.Info().Str("client_id", survivor.ID).Str("room_id", roomID).Msg("partner gone, client requeued")
			}
			h.deleteRoom(room)
		}
	}

	c.clearRoom()
	c.close()
	delete(h.clients, c)
	h.log.Info().Str("client_id", c.ID).Msg("client disconnected")

	h.runMatchingPass()
}

// resolveRoom prefers the client's own room over the hint it sent.
func (h *Hub) resolveRoom(c *Client, hint string) *Room {
	id := hint
	if roomID, _, ok := c.room(); ok {
		id = roomID
	}
	if id == "" {
		return nil
	}
	return h.rooms[id]
}

// detach frees whatever slot c holds. A room left with no occupants is dropped.
func (h *Hub) detach(c *Client) {
	roomID, _, ok := c.room()
	if !ok {
		return
	}
	if room := h.rooms[roomID]; room != nil {
		if role, in := room.RoleOf(c); in {
			room.setOccupant(role, nil)
		}
		if room.Empty() {
			delete(h.rooms, roomID)
		}
	}
	c.clearRoom()
}

// deleteRoom drops the room and the occupants' cached association with it.
func (h *Hub) deleteRoom(room *Room) {
	for _, c := range []*Client{room.Sender, room.Receiver} {
		if c != nil && c.roomID == room.ID {
			c.clearRoom()
		}
	}
	delete(h.rooms, room.ID)
}

// send delivers ev without blocking. Closed clients and full buffers drop it.
func (h *Hub) send(c *Client, ev *Event) {
	if !c.isOpen() {
		return
	}
	select {
	case c.Events <- ev:
	default:
		h.log.Warn().Str("client_id", c.ID).Str("event", ev.Kind.String()).Msg("client event buffer full, dropping")
	}
}

func (h *Hub) snapshot() Stats {
	s := Stats{
		Clients: len(h.clients),
		Waiting: h.queue.len(),
		Rooms:   len(h.rooms),
		Matches: h.matches,
	}
	for _, room := range h.rooms {
		if room.Paired() {
			s.PairedRooms++
		}
	}
	return s
}
