package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWaitingQueueFIFO(t *testing.T) {
	var q waitingQueue
	a, b, c := NewClient("a", 0), NewClient("b", 0), NewClient("c", 0)

	require.True(t, q.push(WaitingEntry{Client: a}))
	require.True(t, q.push(WaitingEntry{Client: b}))
	require.True(t, q.push(WaitingEntry{Client: c}))
	assert.False(t, q.push(WaitingEntry{Client: b}), "duplicate entry")
	assert.Equal(t, 3, q.len())

	first, second, ok := q.popPair()
	require.True(t, ok)
	assert.Same(t, a, first.Client)
	assert.Same(t, b, second.Client)

	_, _, ok = q.popPair()
	assert.False(t, ok, "single entry never pairs")
	assert.True(t, q.contains(c))
}

func TestWaitingQueueRemove(t *testing.T) {
	var q waitingQueue
	a, b, c := NewClient("a", 0), NewClient("b", 0), NewClient("c", 0)
	q.push(WaitingEntry{Client: a})
	q.push(WaitingEntry{Client: b})
	q.push(WaitingEntry{Client: c})

	assert.True(t, q.remove(b))
	assert.False(t, q.remove(b))
	assert.Equal(t, 2, q.len())

	first, second, ok := q.popPair()
	require.True(t, ok)
	assert.Same(t, a, first.Client)
	assert.Same(t, c, second.Client)
}

func TestWaitingQueueDropWhere(t *testing.T) {
	var q waitingQueue
	a, b, c, d := NewClient("a", 0), NewClient("b", 0), NewClient("c", 0), NewClient("d", 0)
	for _, cl := range []*Client{a, b, c, d} {
		q.push(WaitingEntry{Client: cl})
	}

	dropped := q.dropWhere(func(cl *Client) bool { return cl == a || cl == c })
	assert.Equal(t, 2, dropped)
	assert.Equal(t, 2, q.len())
	assert.False(t, q.contains(a))

	first, second, ok := q.popPair()
	require.True(t, ok)
	assert.Same(t, b, first.Client)
	assert.Same(t, d, second.Client)

	assert.Zero(t, q.dropWhere(func(*Client) bool { return true }))
}
