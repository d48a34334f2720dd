package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"

	"github.com/vovakirdan/pairchat-server/internal/proto"
)

const usage = `Type messages and press Enter to send. Commands:
  /leave            end the current conversation
  /join <room> <role>  join a room as sender or receiver
  /quit-queue       leave the waiting queue
Ctrl+C to exit.`

func main() {
	if err := run(); err != nil {
		log.Printf("ws_chat: %v", err)
		os.Exit(1)
	}
}

func run() error {
	addr := flag.String("addr", "ws://localhost:8080/ws", "WebSocket address")
	flag.Parse()

	baseCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithCancel(baseCtx)
	defer cancel()

	conn, _, err := websocket.Dial(ctx, *addr, nil)
	if err != nil {
		return fmt.Errorf("dial: %w", err)
	}
	defer conn.Close(websocket.StatusNormalClosure, "bye")

	fmt.Printf("Connected to %s\n", *addr)
	fmt.Println(usage)

	go func() {
		defer cancel()
		readLoop(ctx, conn)
	}()

	writeLoop(ctx, conn)

	stop()
	cancel()
	_ = conn.Close(websocket.StatusNormalClosure, "bye")
	return nil
}

func readLoop(ctx context.Context, conn *websocket.Conn) {
	for {
		var outbound proto.Outbound
		if err := wsjson.Read(ctx, conn, &outbound); err != nil {
			if errors.Is(err, context.Canceled) {
				return
			}
			switch websocket.CloseStatus(err) {
			case websocket.StatusNormalClosure, websocket.StatusGoingAway:
				return
			}
			log.Printf("read error: %v", err)
			return
		}

		switch outbound.Type {
		case proto.OutboundTypeQueueStatus:
			fmt.Printf("* %s (queue length %d)\n", outbound.Message, outbound.Position)
		case proto.OutboundTypeMatched:
			fmt.Printf("* %s room=%s role=%s\n", outbound.Message, outbound.RoomID, outbound.Role)
		case proto.OutboundTypeChatMessage:
			fmt.Printf("%s: %s\n", outbound.From, outbound.Text)
		case proto.OutboundTypeParticipantLeft:
			msg := outbound.Message
			if msg == "" {
				msg = "The other participant left"
			}
			fmt.Printf("* %s (%s)\n", msg, outbound.Role)
		case proto.OutboundTypeLeftQueue:
			fmt.Printf("* %s\n", outbound.Message)
		case proto.OutboundTypeError:
			fmt.Printf("! %s [%s]\n", outbound.Message, outbound.Code)
		default:
			fmt.Printf("type=%s %+v\n", outbound.Type, outbound)
		}
	}
}

func writeLoop(ctx context.Context, conn *websocket.Conn) {
	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case line, ok := <-lines:
			if !ok {
				return
			}
			msg, ok := parseLine(strings.TrimSpace(line))
			if !ok {
				continue
			}
			if err := wsjson.Write(ctx, conn, msg); err != nil {
				log.Printf("send error: %v", err)
				return
			}
		}
	}
}

func parseLine(line string) (proto.Inbound, bool) {
	if line == "" {
		return proto.Inbound{}, false
	}
	if !strings.HasPrefix(line, "/") {
		return proto.Inbound{Type: proto.InboundTypeChatMessage, Text: line}, true
	}

	fields := strings.Fields(line)
	switch fields[0] {
	case "/leave":
		return proto.Inbound{Type: proto.InboundTypeTerminateRoom}, true
	case "/quit-queue":
		return proto.Inbound{Type: proto.InboundTypeLeaveQueue}, true
	case "/join":
		if len(fields) != 3 {
			fmt.Println("usage: /join <room> <sender|receiver>")
			return proto.Inbound{}, false
		}
		return proto.Inbound{Type: proto.InboundTypeJoinRoom, RoomID: fields[1], Role: fields[2]}, true
	default:
		fmt.Println(usage)
		return proto.Inbound{}, false
	}
}
