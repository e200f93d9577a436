package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/lox/blackjack/internal/protocol"
)

// Connection represents a WebSocket connection to a client
type Connection struct {
	conn        *websocket.Conn
	send        chan *protocol.Envelope
	logger      *log.Logger
	ctx         context.Context
	cancel      context.CancelFunc
	closeOnce   sync.Once
	gameService *GameService
}

// NewConnection creates a new connection wrapper
func NewConnection(conn *websocket.Conn, logger *log.Logger, gameService *GameService) *Connection {
	ctx, cancel := context.WithCancel(context.Background())

	return &Connection{
		conn:        conn,
		send:        make(chan *protocol.Envelope, 256),
		logger:      logger.WithPrefix("conn"),
		ctx:         ctx,
		cancel:      cancel,
		gameService: gameService,
	}
}

// Start begins handling the connection
func (c *Connection) Start() {
	go c.writePump()
	go c.readPump()
}

// Done is closed once the connection has shut down
func (c *Connection) Done() <-chan struct{} {
	return c.ctx.Done()
}

// Close closes the connection
func (c *Connection) Close() error {
	var err error
	c.closeOnce.Do(func() {
		c.cancel()
		err = c.conn.Close()
	})
	return err
}

// SendMessage queues an envelope for the client
func (c *Connection) SendMessage(msg *protocol.Envelope) error {
	select {
	case <-c.ctx.Done():
		return ErrConnectionClosed
	default:
	}

	select {
	case c.send <- msg:
		return nil
	case <-c.ctx.Done():
		return ErrConnectionClosed
	default:
		c.logger.Warn("Connection send buffer full, closing connection")
		_ = c.Close() // Ignore close errors
		return ErrConnectionClosed
	}
}

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer. A full state is a few KB.
	maxMessageSize = 32 << 10
)

var (
	ErrConnectionClosed = errors.New("connection closed")
)

// readPump handles incoming messages from the client
func (c *Connection) readPump() {
	defer func() { _ = c.Close() }() // Ignore close errors during cleanup

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.logger.Error("WebSocket error", "error", err)
			}
			return
		}

		var msg protocol.Envelope
		if err := json.Unmarshal(data, &msg); err != nil {
			c.sendError("", fmt.Errorf("%w: %v", protocol.ErrMalformedMessage, err))
			continue
		}

		c.handleMessage(&msg)
	}
}

// writePump handles outgoing messages to the client
func (c *Connection) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.Close() // Ignore close errors during cleanup
	}()

	for {
		select {
		case message := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteJSON(message); err != nil {
				c.logger.Error("Failed to write message", "error", err)
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}

		case <-c.ctx.Done():
			_ = c.conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
				time.Now().Add(writeWait))
			return
		}
	}
}

// handleMessage processes an incoming envelope from the client
func (c *Connection) handleMessage(msg *protocol.Envelope) {
	requestID := msg.RequestID
	if requestID == "" {
		requestID = uuid.NewString()
	}

	c.logger.Debug("Received message", "type", msg.Type, "request_id", requestID)

	switch msg.Type {
	case protocol.TypeAction:
		var req protocol.Request
		if err := json.Unmarshal(msg.Data, &req); err != nil {
			c.sendError(requestID, fmt.Errorf("%w: %v", protocol.ErrMalformedMessage, err))
			return
		}

		state, err := c.gameService.Handle(c.ctx, req)
		if err != nil {
			c.sendError(requestID, err)
			return
		}

		reply, err := protocol.NewEnvelope(protocol.TypeState, requestID, state)
		if err != nil {
			c.logger.Error("Failed to create state message", "error", err)
			return
		}
		_ = c.SendMessage(reply) // Ignore send errors

	default:
		c.sendError(requestID, fmt.Errorf("%w: unknown message type %q", protocol.ErrMalformedMessage, msg.Type))
	}
}

// sendError sends an error message to the client
func (c *Connection) sendError(requestID string, err error) {
	data := protocol.NewErrorData(err)
	if data.Code == protocol.CodeInternal {
		c.logger.Error("Request failed", "request_id", requestID, "error", err)
	}

	errorMsg, mErr := protocol.NewEnvelope(protocol.TypeError, requestID, data)
	if mErr != nil {
		c.logger.Error("Failed to create error message", "error", mErr)
		return
	}

	_ = c.SendMessage(errorMsg) // Ignore send errors during error handling
}
