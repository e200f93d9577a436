package client

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/lox/blackjack/internal/blackjack"
	"github.com/lox/blackjack/internal/protocol"
	"github.com/lox/blackjack/internal/server"
)

// ErrClosed is returned by a transport after Close
var ErrClosed = errors.New("transport closed")

// Transport carries a request to an engine and returns the next state.
// Engine errors come back matching the blackjack sentinel errors.
type Transport interface {
	Send(ctx context.Context, req protocol.Request) (blackjack.GameState, error)
	Close() error
}

// Local applies requests to an in-process engine
type Local struct {
	service *server.GameService
}

// NewLocal creates a transport around an in-process engine
func NewLocal(engine *blackjack.Engine, logger *log.Logger) *Local {
	return &Local{service: server.NewGameService(engine, logger)}
}

// Send applies req directly
func (l *Local) Send(ctx context.Context, req protocol.Request) (blackjack.GameState, error) {
	return l.service.Handle(ctx, req)
}

// Close is a no-op for the local transport
func (l *Local) Close() error {
	return nil
}

// New builds the transport selected by cfg. engine is only used in local mode.
func New(ctx context.Context, cfg *ClientConfig, engine *blackjack.Engine, logger *log.Logger) (Transport, error) {
	switch cfg.Server.Mode {
	case ModeLocal:
		return NewLocal(engine, logger), nil
	case ModeHTTP:
		return NewHTTP(cfg.Server.URL, logger, WithRequestTimeout(cfg.GetRequestTimeout())), nil
	case ModeWebSocket:
		dialCtx, cancel := context.WithTimeout(ctx, cfg.GetConnectTimeout())
		defer cancel()
		return DialWebSocket(dialCtx, cfg.Server.URL, logger, WithRequestTimeout(cfg.GetRequestTimeout()))
	default:
		return nil, fmt.Errorf("invalid mode: %s", cfg.Server.Mode)
	}
}
