package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"

	"github.com/vovakirdan/pairchat-server/internal/proto"
)

func main() {
	if err := run(); err != nil {
		log.Printf("ws_smoke: %v", err)
		os.Exit(1)
	}
}

func run() error {
	addr := flag.String("addr", "ws://localhost:8080/ws", "WebSocket address")
	text := flag.String("text", "hello from smoke test", "message text to send")
	timeout := flag.Duration("timeout", 5*time.Second, "total timeout for the run")
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	first, err := dial(ctx, *addr)
	if err != nil {
		return err
	}
	defer first.Close(websocket.StatusNormalClosure, "bye")

	second, err := dial(ctx, *addr)
	if err != nil {
		return err
	}
	defer second.Close(websocket.StatusNormalClosure, "bye")

	firstMatch, err := waitFor(ctx, first, proto.OutboundTypeMatched)
	if err != nil {
		return fmt.Errorf("first client: %w", err)
	}
	secondMatch, err := waitFor(ctx, second, proto.OutboundTypeMatched)
	if err != nil {
		return fmt.Errorf("second client: %w", err)
	}
	if firstMatch.RoomID != secondMatch.RoomID {
		return fmt.Errorf("clients matched into different rooms: %s vs %s", firstMatch.RoomID, secondMatch.RoomID)
	}
	fmt.Printf("Matched: room=%s first=%s second=%s\n", firstMatch.RoomID, firstMatch.Role, secondMatch.Role)

	if err := wsjson.Write(ctx, first, proto.Inbound{Type: proto.InboundTypeChatMessage, Text: *text}); err != nil {
		return fmt.Errorf("send: %w", err)
	}
	relayed, err := waitFor(ctx, second, proto.OutboundTypeChatMessage)
	if err != nil {
		return fmt.Errorf("relay: %w", err)
	}
	if relayed.Text != *text {
		return fmt.Errorf("relayed text %q, want %q", relayed.Text, *text)
	}
	fmt.Printf("Relayed: from=%s text=%q\n", relayed.From, relayed.Text)

	if err := wsjson.Write(ctx, first, proto.Inbound{Type: proto.InboundTypeTerminateRoom}); err != nil {
		return fmt.Errorf("terminate: %w", err)
	}
	left, err := waitFor(ctx, second, proto.OutboundTypeParticipantLeft)
	if err != nil {
		return fmt.Errorf("terminate: %w", err)
	}
	fmt.Printf("Terminated: departed role=%s\n", left.Role)
	return nil
}

func dial(ctx context.Context, addr string) (*websocket.Conn, error) {
	conn, _, err := websocket.Dial(ctx, addr, nil)
	if err != nil {
		return nil, fmt.Errorf("dial: %w", err)
	}
	return conn, nil
}

// waitFor reads until a message of the given type arrives, printing the rest.
func waitFor(ctx context.Context, conn *websocket.Conn, typ string) (proto.Outbound, error) {
	for {
		var outbound proto.Outbound
		if err := wsjson.Read(ctx, conn, &outbound); err != nil {
			return outbound, fmt.Errorf("read: %w", err)
		}
		if outbound.Type == typ {
			return outbound, nil
		}
		if outbound.Type == proto.OutboundTypeError {
			return outbound, fmt.Errorf("server error %s: %s", outbound.Code, outbound.Message)
		}
		fmt.Printf("Received outbound: type=%s message=%q\n", outbound.Type, outbound.Message)
	}
}
