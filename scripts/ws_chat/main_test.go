package main

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vovakirdan/pairchat-server/internal/proto"
)

func TestParseLine(t *testing.T) {
	tests := []struct {
		line string
		want proto.Inbound
		ok   bool
	}{
		{line: "", ok: false},
		{line: "hi there", want: proto.Inbound{Type: proto.InboundTypeChatMessage, Text: "hi there"}, ok: true},
		{line: "/leave", want: proto.Inbound{Type: proto.InboundTypeTerminateRoom}, ok: true},
		{line: "/quit-queue", want: proto.Inbound{Type: proto.InboundTypeLeaveQueue}, ok: true},
		{line: "/join abc receiver", want: proto.Inbound{Type: proto.InboundTypeJoinRoom, RoomID: "abc", Role: "receiver"}, ok: true},
		{line: "/join abc", ok: false},
		{line: "/nope", ok: false},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			got, ok := parseLine(tt.line)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}
