package core

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func startHub(t *testing.T, opts ...Option) *Hub {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	hub := NewHub(nil, opts...)
	go hub.Run(ctx)
	t.Cleanup(func() {
		cancel()
		<-hub.Done()
	})
	return hub
}

// sequentialRoomIDs returns a generator producing room-1, room-2, ...
func sequentialRoomIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("room-%d", n)
	}
}

func connect(t *testing.T, hub *Hub, id string) *Client {
	t.Helper()

	c := NewClient(id, 64)
	require.NoError(t, hub.RegisterClient(c))
	return c
}

func submit(t *testing.T, hub *Hub, c *Client, cmd Command) {
	t.Helper()
	require.NoError(t, hub.Submit(c, cmd))
}

// settle waits until the hub has handled everything posted so far.
func settle(t *testing.T, hub *Hub) Stats {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	stats, err := hub.Stats(ctx)
	require.NoError(t, err)
	return stats
}

// nextEvent returns the next event delivered to c.
func nextEvent(t *testing.T, c *Client) *Event {
	t.Helper()

	select {
	case ev, ok := <-c.Events:
		require.True(t, ok, "event stream of %s closed", c.ID)
		return ev
	case <-time.After(2 * time.Second):
		t.Fatalf("no event for %s", c.ID)
		return nil
	}
}

// mustEvent skips events until one of the given kind arrives.
func mustEvent(t *testing.T, c *Client, kind EventKind) *Event {
	t.Helper()

	deadline := time.After(2 * time.Second)
	for {
		select {
		case ev, ok := <-c.Events:
			require.True(t, ok, "event stream of %s closed", c.ID)
			if ev.Kind == kind {
				return ev
			}
		case <-deadline:
			t.Fatalf("expected event kind %v for %s not received", kind, c.ID)
			return nil
		}
	}
}

// noEvent asserts nothing is pending for c once the hub is idle.
func noEvent(t *testing.T, hub *Hub, c *Client) {
	t.Helper()

	settle(t, hub)
	select {
	case ev, ok := <-c.Events:
		if ok {
			t.Fatalf("unexpected event for %s: %+v", c.ID, ev)
		}
	default:
	}
}

// drain discards all pending events for the clients.
func drain(t *testing.T, hub *Hub, clients ...*Client) {
	t.Helper()

	settle(t, hub)
	for _, c := range clients {
		for {
			select {
			case _, ok := <-c.Events:
				if ok {
					continue
				}
			default:
			}
			break
		}
	}
}
