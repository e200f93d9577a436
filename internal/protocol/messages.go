// Package protocol defines the transport-agnostic wire contract between a
// blackjack client and the engine: a request naming an action, the caller's
// current state and an optional bet, answered by a new state or an error.
package protocol

import (
	"encoding/json"
	"time"

	"github.com/lox/blackjack/internal/blackjack"
)

// MessageType identifies the type of a WebSocket envelope
type MessageType string

const (
	// Client -> Server
	TypeAction MessageType = "action"

	// Server -> Client
	TypeState MessageType = "state"
	TypeError MessageType = "error"
)

// String returns the string representation of the message type
func (mt MessageType) String() string {
	return string(mt)
}

// Request asks the engine to apply one action. The action stays a string on
// the wire so that an unknown name is reported as an invalid action rather
// than a malformed message.
type Request struct {
	Action string               `json:"action"`
	State  *blackjack.GameState `json:"state"`
	Bet    *int                 `json:"bet,omitempty"`
}

// NewRequest builds a request for a known action
func NewRequest(action blackjack.Action, state *blackjack.GameState, bet *int) Request {
	return Request{Action: action.String(), State: state, Bet: bet}
}

// ParsedAction returns the request's action as a blackjack.Action
func (r Request) ParsedAction() (blackjack.Action, error) {
	return blackjack.ParseAction(r.Action)
}

// ErrorData is the body of every error reply
type ErrorData struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse wraps ErrorData for HTTP replies: {"error":{...}}
type ErrorResponse struct {
	Error ErrorData `json:"error"`
}

// Envelope is the framing used on the WebSocket transport
type Envelope struct {
	Type      MessageType     `json:"type"`
	RequestID string          `json:"requestId,omitempty"`
	Data      json.RawMessage `json:"data"`
	Timestamp time.Time       `json:"timestamp"`
}

// NewEnvelope creates an envelope with the current timestamp
func NewEnvelope(messageType MessageType, requestID string, data any) (*Envelope, error) {
	dataBytes, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}

	return &Envelope{
		Type:      messageType,
		RequestID: requestID,
		Data:      dataBytes,
		Timestamp: time.Now(),
	}, nil
}
