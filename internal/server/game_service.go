package server

import (
	"context"

	"github.com/charmbracelet/log"

	"github.com/lox/blackjack/internal/blackjack"
	"github.com/lox/blackjack/internal/protocol"
)

// GameService validates requests and runs them through the engine. It holds
// no per-player state.
type GameService struct {
	engine *blackjack.Engine
	logger *log.Logger
}

// NewGameService creates a game service around engine
func NewGameService(engine *blackjack.Engine, logger *log.Logger) *GameService {
	return &GameService{
		engine: engine,
		logger: logger.WithPrefix("game"),
	}
}

// Engine returns the underlying engine
func (gs *GameService) Engine() *blackjack.Engine {
	return gs.engine
}

// Handle applies one request and returns the next state
func (gs *GameService) Handle(ctx context.Context, req protocol.Request) (blackjack.GameState, error) {
	if err := ctx.Err(); err != nil {
		return blackjack.GameState{}, err
	}

	action, err := req.ParsedAction()
	if err != nil {
		gs.logger.Debug("Rejected request", "action", req.Action, "error", err)
		return blackjack.GameState{}, err
	}

	if req.State != nil {
		if err := req.State.Validate(); err != nil {
			gs.logger.Debug("Rejected state", "action", action, "error", err)
			return blackjack.GameState{}, err
		}
	}

	next, err := gs.engine.Apply(action, req.State, req.Bet)
	if err != nil {
		if protocol.CodeFor(err) == protocol.CodeInternal {
			gs.logger.Error("Engine failure", "action", action, "error", err)
		}
		return blackjack.GameState{}, err
	}

	gs.logger.Debug("Applied action",
		"action", action,
		"status", next.Status,
		"player", next.PlayerHand.Score(),
		"dealer", next.DealerHand.Score(),
		"bankroll", next.Bankroll)

	if next.IsOver() && (req.State == nil || !req.State.IsOver()) {
		gs.logger.Info("Round settled",
			"outcome", next.Outcome,
			"player", next.PlayerHand.String(),
			"dealer", next.DealerHand.String(),
			"bet", next.CurrentBet,
			"doubled", next.IsDoubled,
			"bankroll", next.Bankroll)
	}

	return next, nil
}
