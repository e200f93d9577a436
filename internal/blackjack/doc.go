// Package blackjack implements the rules engine for single-player Blackjack.
//
// The engine is stateless: the caller owns the GameState and passes it into
// every transition, receiving a fresh snapshot back. Nothing is stored between
// calls, so a state can travel over any transport and be resumed anywhere.
//
// # Basic Usage
//
//	e := blackjack.NewEngine(randutil.New(42))
//	state, err := e.Deal(50, 1000)
//	if err != nil {
//	    // errors.Is(err, blackjack.ErrInsufficientFunds)
//	}
//	state, err = e.Hit(state)
//	state, err = e.Stand(state)
//	fmt.Println(state.Outcome, state.Bankroll)
//
// Transitions that are not legal in the current state (hitting after the
// round is over, doubling after a hit) are no-ops and return the state
// unchanged with a nil error.
//
// # Dealer Policy
//
// The dealer's second card stays hidden until the player stands, busts or
// doubles. The dealer then draws while the score is below 17 and stands on
// any 17, soft or hard.
//
// # Deterministic Testing
//
// NewEngine takes a deck.Source, so tests can pass a seeded source from
// randutil.New. States can also be built by hand with NewHand and
// deck.MustParseCards to script exact scenarios.
package blackjack
