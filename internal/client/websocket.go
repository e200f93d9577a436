package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/lox/blackjack/internal/blackjack"
	"github.com/lox/blackjack/internal/protocol"
)

const (
	writeWait  = 10 * time.Second
	pingPeriod = 54 * time.Second
)

// WebSocket sends requests over a single WebSocket connection. Replies are
// matched to requests by request id, so Send may be called concurrently.
type WebSocket struct {
	conn      *websocket.Conn
	send      chan *protocol.Envelope
	options   remoteOptions
	logger    *log.Logger
	ctx       context.Context
	cancel    context.CancelFunc
	closeOnce sync.Once

	mu      sync.Mutex
	pending map[string]chan *protocol.Envelope
}

// websocketURL converts an http(s) server URL to the ws(s) endpoint
func websocketURL(serverURL string) (string, error) {
	u, err := url.Parse(serverURL)
	if err != nil {
		return "", fmt.Errorf("invalid server URL: %w", err)
	}

	switch u.Scheme {
	case "http":
		u.Scheme = "ws"
	case "https":
		u.Scheme = "wss"
	case "ws", "wss":
	default:
		return "", fmt.Errorf("unsupported URL scheme %q", u.Scheme)
	}

	u.Path = "/ws"
	return u.String(), nil
}

// DialWebSocket connects to the server at serverURL
func DialWebSocket(ctx context.Context, serverURL string, logger *log.Logger, opts ...Option) (*WebSocket, error) {
	logger = logger.WithPrefix("ws")

	wsURL, err := websocketURL(serverURL)
	if err != nil {
		return nil, err
	}

	logger.Info("Connecting to server", "url", wsURL)
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, wsURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to connect: %w", err)
	}

	connCtx, cancel := context.WithCancel(context.Background())
	w := &WebSocket{
		conn:    conn,
		send:    make(chan *protocol.Envelope, 64),
		options: newRemoteOptions(opts),
		logger:  logger,
		ctx:     connCtx,
		cancel:  cancel,
		pending: make(map[string]chan *protocol.Envelope),
	}

	go w.readPump()
	go w.writePump()

	logger.Info("Connected to server")
	return w, nil
}

// Send writes req and waits for the matching reply
func (w *WebSocket) Send(ctx context.Context, req protocol.Request) (blackjack.GameState, error) {
	ctx, cancel := context.WithTimeout(ctx, w.options.requestTimeout)
	defer cancel()

	requestID := uuid.NewString()
	msg, err := protocol.NewEnvelope(protocol.TypeAction, requestID, req)
	if err != nil {
		return blackjack.GameState{}, fmt.Errorf("failed to encode request: %w", err)
	}

	reply := make(chan *protocol.Envelope, 1)
	w.mu.Lock()
	if w.pending == nil {
		w.mu.Unlock()
		return blackjack.GameState{}, ErrClosed
	}
	w.pending[requestID] = reply
	w.mu.Unlock()
	defer w.forget(requestID)

	select {
	case w.send <- msg:
	case <-w.ctx.Done():
		return blackjack.GameState{}, ErrClosed
	case <-ctx.Done():
		return blackjack.GameState{}, ctx.Err()
	}

	select {
	case env, ok := <-reply:
		if !ok {
			return blackjack.GameState{}, ErrClosed
		}
		return decodeReply(env)
	case <-ctx.Done():
		return blackjack.GameState{}, ctx.Err()
	}
}

func decodeReply(env *protocol.Envelope) (blackjack.GameState, error) {
	switch env.Type {
	case protocol.TypeState:
		var state blackjack.GameState
		if err := json.Unmarshal(env.Data, &state); err != nil {
			return blackjack.GameState{}, fmt.Errorf("failed to decode state: %w", err)
		}
		return state, nil
	case protocol.TypeError:
		var data protocol.ErrorData
		if err := json.Unmarshal(env.Data, &data); err != nil {
			return blackjack.GameState{}, fmt.Errorf("failed to decode error: %w", err)
		}
		return blackjack.GameState{}, data.Err()
	default:
		return blackjack.GameState{}, fmt.Errorf("unexpected reply type %q", env.Type)
	}
}

func (w *WebSocket) forget(requestID string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.pending != nil {
		delete(w.pending, requestID)
	}
}

// Close closes the connection and fails any request still waiting
func (w *WebSocket) Close() error {
	var err error
	w.closeOnce.Do(func() {
		w.cancel()
		_ = w.conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
			time.Now().Add(writeWait))
		err = w.conn.Close()

		w.mu.Lock()
		for id, ch := range w.pending {
			close(ch)
			delete(w.pending, id)
		}
		w.pending = nil
		w.mu.Unlock()

		w.logger.Info("Disconnected from server")
	})
	return err
}

// readPump delivers replies to waiting requests
func (w *WebSocket) readPump() {
	defer func() { _ = w.Close() }()

	for {
		var msg protocol.Envelope
		if err := w.conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				w.logger.Error("WebSocket error", "error", err)
			}
			return
		}

		w.mu.Lock()
		ch, ok := w.pending[msg.RequestID]
		if ok {
			delete(w.pending, msg.RequestID)
		}
		w.mu.Unlock()

		if !ok {
			w.logger.Debug("Dropping unmatched reply", "type", msg.Type, "request_id", msg.RequestID)
			continue
		}
		ch <- &msg
	}
}

// writePump serialises writes and keeps the connection alive
func (w *WebSocket) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case message := <-w.send:
			_ = w.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := w.conn.WriteJSON(message); err != nil {
				w.logger.Error("Failed to write message", "error", err)
				_ = w.Close()
				return
			}

		case <-ticker.C:
			_ = w.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := w.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				_ = w.Close()
				return
			}

		case <-w.ctx.Done():
			return
		}
	}
}
