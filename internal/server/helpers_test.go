package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"

	"github.com/lox/blackjack/internal/blackjack"
	"github.com/lox/blackjack/internal/protocol"
	"github.com/lox/blackjack/internal/randutil"
)

func testLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{})
}

func newTestGameService(seed int64) *GameService {
	engine := blackjack.NewEngine(randutil.NewLocked(seed))
	return NewGameService(engine, testLogger())
}

// newTestServer starts the full router on an httptest server
func newTestServer(t *testing.T) (*Server, *httptest.Server) {
	t.Helper()

	srv := NewServer("", newTestGameService(42), testLogger())
	return srv, newHTTPTestServer(t, srv)
}

func newHTTPTestServer(t *testing.T, srv *Server) *httptest.Server {
	t.Helper()
	ts := httptest.NewServer(srv.Routes())
	t.Cleanup(ts.Close)
	return ts
}

// postGame posts body to /api/game and returns the status and raw reply
func postGame(t *testing.T, ts *httptest.Server, body any) (int, []byte) {
	t.Helper()

	var payload []byte
	switch b := body.(type) {
	case string:
		payload = []byte(b)
	default:
		var err error
		payload, err = json.Marshal(b)
		require.NoError(t, err)
	}

	resp, err := http.Post(ts.URL+"/api/game", "application/json", bytes.NewReader(payload))
	require.NoError(t, err)
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, data
}

func decodeState(t *testing.T, data []byte) blackjack.GameState {
	t.Helper()
	var state blackjack.GameState
	require.NoError(t, json.Unmarshal(data, &state))
	return state
}

func decodeError(t *testing.T, data []byte) protocol.ErrorData {
	t.Helper()
	var resp protocol.ErrorResponse
	require.NoError(t, json.Unmarshal(data, &resp))
	return resp.Error
}

func dialWebSocket(t *testing.T, ts *httptest.Server) *websocket.Conn {
	t.Helper()

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func sendEnvelope(t *testing.T, conn *websocket.Conn, typ protocol.MessageType, requestID string, data any) {
	t.Helper()
	msg, err := protocol.NewEnvelope(typ, requestID, data)
	require.NoError(t, err)
	require.NoError(t, conn.WriteJSON(msg))
}

func readEnvelope(t *testing.T, conn *websocket.Conn) protocol.Envelope {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	var msg protocol.Envelope
	require.NoError(t, conn.ReadJSON(&msg))
	return msg
}
