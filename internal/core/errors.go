package core

import "errors"

// Error codes for policy rejections.
const (
	ErrCodeSenderTaken   = "sender_taken"
	ErrCodeReceiverTaken = "receiver_taken"
)

// ErrHubStopped is returned when the hub loop is no longer running.
var ErrHubStopped = errors.New("hub stopped")

// CoreError wraps a code and human-readable message.
type CoreError struct {
	Code    string
	Message string
}

func (e *CoreError) Error() string {
	return e.Message
}

func coreError(code, msg string) *CoreError {
	return &CoreError{Code: code, Message: msg}
}

func errorEvent(code, msg string) *Event {
	return &Event{Kind: EventError, Notice: msg, Error: coreError(code, msg)}
}
