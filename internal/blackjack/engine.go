package blackjack

import (
	"fmt"

	"github.com/lox/blackjack/internal/deck"
)

const (
	// DefaultInitialBankroll is the bankroll a new player starts with
	DefaultInitialBankroll = 1000

	// DefaultBaseBet is the bet offered when entering the betting phase
	DefaultBaseBet = 50
)

// Engine applies blackjack rules to caller-held game states. An Engine holds
// only configuration and its random source; it is safe for concurrent use as
// long as the source is.
type Engine struct {
	src             deck.Source
	baseBet         int
	initialBankroll int
}

// Option configures an Engine
type Option func(*Engine)

// WithBaseBet sets the bet offered by ShowBetting
func WithBaseBet(bet int) Option {
	return func(e *Engine) {
		if bet > 0 {
			e.baseBet = bet
		}
	}
}

// WithInitialBankroll sets the bankroll used when a request carries no state
func WithInitialBankroll(bankroll int) Option {
	return func(e *Engine) {
		if bankroll >= 0 {
			e.initialBankroll = bankroll
		}
	}
}

// NewEngine creates an engine that shuffles with src
func NewEngine(src deck.Source, opts ...Option) *Engine {
	e := &Engine{
		src:             src,
		baseBet:         DefaultBaseBet,
		initialBankroll: DefaultInitialBankroll,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// BaseBet returns the configured base bet
func (e *Engine) BaseBet() int { return e.baseBet }

// InitialBankroll returns the configured starting bankroll
func (e *Engine) InitialBankroll() int { return e.initialBankroll }

// ShowBetting returns an empty state in the betting phase
func (e *Engine) ShowBetting(bankroll int) GameState {
	return GameState{
		PlayerHand: NewHand(),
		DealerHand: NewHand(),
		Deck:       []deck.Card{},
		Status:     StatusBetting,
		Bankroll:   bankroll,
		CurrentBet: e.baseBet,
	}
}

// Deal starts a round on a freshly shuffled deck. Cards come off the top in
// the order player, player, dealer, dealer; the dealer's second card is
// hidden.
func (e *Engine) Deal(bet, bankroll int) (GameState, error) {
	if bet <= 0 {
		return GameState{}, fmt.Errorf("deal %d: %w", bet, ErrInvalidBet)
	}
	if bet > bankroll {
		return GameState{}, fmt.Errorf("bet %d exceeds bankroll %d: %w", bet, bankroll, ErrInsufficientFunds)
	}

	s := GameState{
		Deck:       deck.NewShuffled(e.src),
		Status:     StatusPlaying,
		CanDouble:  bet <= bankroll-bet,
		Bankroll:   bankroll,
		CurrentBet: bet,
	}

	var cards [4]deck.Card
	for i := range cards {
		c, err := s.draw()
		if err != nil {
			return GameState{}, fmt.Errorf("deal: %w", err)
		}
		cards[i] = c
	}

	s.PlayerHand = NewHand(cards[0], cards[1])
	s.DealerHand = Hand{Cards: []deck.Card{cards[2], cards[3]}, HasHiddenCard: true}

	return s, nil
}

// Hit draws one card for the player. A bust ends the round as a loss without
// the dealer drawing. Any hit forfeits the chance to double.
func (e *Engine) Hit(s GameState) (GameState, error) {
	if s.Status != StatusPlaying {
		return s, nil
	}

	next := s.clone()
	c, err := next.draw()
	if err != nil {
		return s, fmt.Errorf("hit: %w", err)
	}

	next.PlayerHand = next.PlayerHand.with(c)
	next.CanDouble = false
	if next.PlayerHand.IsBusted() {
		next.settle(OutcomeLose)
	}

	return next, nil
}

// Stand reveals the dealer's hand, plays it out and settles the round
func (e *Engine) Stand(s GameState) (GameState, error) {
	if s.Status != StatusPlaying {
		return s, nil
	}

	next := s.clone()
	if err := playDealer(&next); err != nil {
		return s, fmt.Errorf("stand: %w", err)
	}
	next.settle(DetermineOutcome(next.PlayerHand, next.DealerHand))

	return next, nil
}

// DoubleDown doubles the bet, draws exactly one card and ends the player's
// turn. A bust loses the doubled bet immediately; otherwise the dealer plays
// as in Stand.
func (e *Engine) DoubleDown(s GameState) (GameState, error) {
	if !s.CanDouble || s.Status != StatusPlaying || s.CurrentBet > s.Bankroll-s.CurrentBet {
		return s, nil
	}

	next := s.clone()
	c, err := next.draw()
	if err != nil {
		return s, fmt.Errorf("double down: %w", err)
	}

	next.PlayerHand = next.PlayerHand.with(c)
	next.CurrentBet *= 2
	next.IsDoubled = true
	next.CanDouble = false

	if next.PlayerHand.IsBusted() {
		next.settle(OutcomeLose)
		return next, nil
	}

	final, err := e.Stand(next)
	if err != nil {
		return s, fmt.Errorf("double down: %w", err)
	}
	return final, nil
}

// DetermineOutcome compares final hands. A busted player always loses, then a
// busted dealer always loses, then the higher score wins.
func DetermineOutcome(player, dealer Hand) Outcome {
	switch {
	case player.IsBusted():
		return OutcomeLose
	case dealer.IsBusted():
		return OutcomeWin
	case player.Score() > dealer.Score():
		return OutcomeWin
	case player.Score() < dealer.Score():
		return OutcomeLose
	default:
		return OutcomePush
	}
}

// playDealer reveals the hidden card and draws until the dealer reaches 17
func playDealer(s *GameState) error {
	s.DealerHand.HasHiddenCard = false
	for s.DealerHand.Score() < DealerStandScore {
		c, err := s.draw()
		if err != nil {
			return err
		}
		s.DealerHand.Cards = append(s.DealerHand.Cards, c)
	}
	return nil
}
