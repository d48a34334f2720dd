package core

import "time"

// WaitingEntry is a client waiting in the queue for a partner.
type WaitingEntry struct {
	Client     *Client
	SessionID  string
	EnqueuedAt time.Time
}

// waitingQueue is a FIFO of waiting clients. A client appears at most once.
type waitingQueue struct {
	entries []WaitingEntry
}

func (q *waitingQueue) len() int {
	return len(q.entries)
}

func (q *waitingQueue) indexOf(c *Client) int {
	for i, e := range q.entries {
		if e.Client == c {
			return i
		}
	}
	return -1
}

func (q *waitingQueue) contains(c *Client) bool {
	return q.indexOf(c) >= 0
}

// push appends e. Returns false if the client is already queued.
func (q *waitingQueue) push(e WaitingEntry) bool {
	if q.contains(e.Client) {
		return false
	}
	q.entries = append(q.entries, e)
	return true
}

// remove deletes c from the queue. Returns true if it was present.
func (q *waitingQueue) remove(c *Client) bool {
	i := q.indexOf(c)
	if i < 0 {
		return false
	}
	copy(q.entries[i:], q.entries[i+1:])
	q.entries[len(q.entries)-1] = WaitingEntry{}
	q.entries = q.entries[:len(q.entries)-1]
	return true
}

// dropWhere deletes every entry whose client matches gone, keeping order.
func (q *waitingQueue) dropWhere(gone func(*Client) bool) int {
	kept := q.entries[:0]
	for _, e := range q.entries {
		if !gone(e.Client) {
			kept = append(kept, e)
		}
	}
	dropped := len(q.entries) - len(kept)
	clear(q.entries[len(kept):])
	q.entries = kept
	return dropped
}

// popPair removes and returns the two oldest entries.
func (q *waitingQueue) popPair() (first, second WaitingEntry, ok bool) {
	if len(q.entries) < 2 {
		return WaitingEntry{}, WaitingEntry{}, false
	}
	first, second = q.entries[0], q.entries[1]
	q.entries[0], q.entries[1] = WaitingEntry{}, WaitingEntry{}
	q.entries = q.entries[2:]
	return first, second, true
}
