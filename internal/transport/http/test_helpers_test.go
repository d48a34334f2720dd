package http

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/pairchat-server/internal/config"
	"github.com/vovakirdan/pairchat-server/internal/core"
	"github.com/vovakirdan/pairchat-server/internal/proto"
)

type testServer struct {
	*httptest.Server
	hub *core.Hub
}

func startTestServer(t *testing.T, mutate func(*config.Config)) *testServer {
	t.Helper()

	cfg := config.Default()
	if mutate != nil {
		mutate(&cfg)
	}

	logger := zerolog.Nop()
	hub := core.NewHub(&logger, core.WithReceiverPolicy(cfg.Policy()))
	ctx, cancel := context.WithCancel(context.Background())
	go hub.Run(ctx)

	ts := httptest.NewServer(NewRouter(hub, cfg, &logger))
	t.Cleanup(func() {
		ts.Close()
		cancel()
		<-hub.Done()
	})

	return &testServer{Server: ts, hub: hub}
}

func (ts *testServer) dial(t *testing.T) *websocket.Conn {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	wsURL := strings.Replace(ts.URL, "http", "ws", 1) + "/ws"
	conn, _, err := websocket.Dial(ctx, wsURL, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close(websocket.StatusNormalClosure, "done") })
	return conn
}

// waitForStats polls the hub until cond holds.
func (ts *testServer) waitForStats(t *testing.T, cond func(core.Stats) bool) {
	t.Helper()

	require.Eventually(t, func() bool {
		stats, err := ts.hub.Stats(context.Background())
		return err == nil && cond(stats)
	}, 2*time.Second, 10*time.Millisecond)
}

func send(t *testing.T, conn *websocket.Conn, v any) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, wsjson.Write(ctx, conn, v))
}

func sendRaw(t *testing.T, conn *websocket.Conn, raw string) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, conn.Write(ctx, websocket.MessageText, []byte(raw)))
}

func read(t *testing.T, conn *websocket.Conn) proto.Outbound {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	_, data, err := conn.Read(ctx)
	require.NoError(t, err)

	var out proto.Outbound
	require.NoError(t, json.Unmarshal(data, &out), "payload %s", data)
	return out
}

// readType reads the next message and checks its type.
func readType(t *testing.T, conn *websocket.Conn, typ string) proto.Outbound {
	t.Helper()

	out := read(t, conn)
	require.Equal(t, typ, out.Type, "unexpected message %+v", out)
	return out
}
