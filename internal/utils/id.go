package utils

import (
	"crypto/rand"
	"encoding/hex"

	"github.com/google/uuid"
)

// NewSessionID returns a random identifier for a connection or queue ticket.
func NewSessionID() string {
	return uuid.NewString()
}

// NewRoomID returns an opaque, unguessable room token.
func NewRoomID() string {
	const size = 12

	buf := make([]byte, size)
	if _, err := rand.Read(buf); err == nil {
		return hex.EncodeToString(buf)
	}

	// Fallback to the uuid generator's own entropy source.
	id := uuid.New()
	return hex.EncodeToString(id[:size])
}
