package blackjack

import "errors"

var (
	// ErrInvalidAction is returned for an unrecognised action name
	ErrInvalidAction = errors.New("invalid action")

	// ErrInsufficientFunds is returned when a bet exceeds the bankroll at deal time
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrInvalidBet is returned for a bet that is zero or negative
	ErrInvalidBet = errors.New("bet must be positive")

	// ErrMissingState is returned when an action that needs a state gets none
	ErrMissingState = errors.New("game state required")

	// ErrInvalidState is returned when a caller-supplied state breaks an invariant
	ErrInvalidState = errors.New("invalid game state")

	// ErrDeckExhausted means a card was needed and none remained. With one
	// 52-card deck per round this cannot happen, so it indicates a defect.
	ErrDeckExhausted = errors.New("deck exhausted")
)
