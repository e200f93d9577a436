package protocol

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/lox/blackjack/internal/blackjack"
)

// ErrMalformedMessage is returned when a message body cannot be decoded
var ErrMalformedMessage = errors.New("malformed message")

// Error codes sent on the wire
const (
	CodeInvalidAction     = "invalid_action"
	CodeInsufficientFunds = "insufficient_funds"
	CodeInvalidBet        = "invalid_bet"
	CodeMissingState      = "missing_state"
	CodeInvalidState      = "invalid_state"
	CodeInvalidMessage    = "invalid_message"
	CodeInternal          = "internal_error"
)

var codeErrors = []struct {
	code string
	err  error
}{
	{CodeInvalidAction, blackjack.ErrInvalidAction},
	{CodeInsufficientFunds, blackjack.ErrInsufficientFunds},
	{CodeInvalidBet, blackjack.ErrInvalidBet},
	{CodeMissingState, blackjack.ErrMissingState},
	{CodeInvalidState, blackjack.ErrInvalidState},
	{CodeInvalidMessage, ErrMalformedMessage},
}

// CodeFor maps an error to its wire code. Anything unrecognised, including
// blackjack.ErrDeckExhausted, is an internal error.
func CodeFor(err error) string {
	for _, ce := range codeErrors {
		if errors.Is(err, ce.err) {
			return ce.code
		}
	}
	return CodeInternal
}

// StatusFor returns the HTTP status used for a wire code
func StatusFor(code string) int {
	if code == CodeInternal {
		return http.StatusInternalServerError
	}
	return http.StatusBadRequest
}

// NewErrorData builds the wire form of err. Internal errors carry a generic
// message so that defects are not leaked to clients.
func NewErrorData(err error) ErrorData {
	code := CodeFor(err)
	if code == CodeInternal {
		return ErrorData{Code: code, Message: "internal server error"}
	}
	return ErrorData{Code: code, Message: err.Error()}
}

// Err converts wire error data back into an error that matches the original
// sentinel with errors.Is.
func (e ErrorData) Err() error {
	for _, ce := range codeErrors {
		if ce.code == e.Code {
			return &RemoteError{Code: e.Code, Message: e.Message, sentinel: ce.err}
		}
	}
	return &RemoteError{Code: e.Code, Message: e.Message}
}

// RemoteError is an error reported by the other side of a transport
type RemoteError struct {
	Code     string
	Message  string
	sentinel error
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap exposes the matching sentinel, if any
func (e *RemoteError) Unwrap() error {
	return e.sentinel
}
