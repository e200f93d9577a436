package blackjack

import (
	"fmt"
	"math"
	"strconv"

	"github.com/lox/blackjack/internal/deck"
)

// Status is the phase of a round
type Status string

const (
	StatusBetting  Status = "betting"
	StatusPlaying  Status = "playing"
	StatusGameOver Status = "gameOver"
)

// Valid reports whether s is a known status
func (s Status) Valid() bool {
	switch s {
	case StatusBetting, StatusPlaying, StatusGameOver:
		return true
	}
	return false
}

// Outcome is the result of a finished round from the player's side
type Outcome string

const (
	OutcomeNone Outcome = ""
	OutcomeWin  Outcome = "win"
	OutcomeLose Outcome = "lose"
	OutcomePush Outcome = "push"
)

// Valid reports whether o is a known outcome, including none
func (o Outcome) Valid() bool {
	switch o {
	case OutcomeNone, OutcomeWin, OutcomeLose, OutcomePush:
		return true
	}
	return false
}

// GameState is the complete state of one round. The caller holds it between
// transitions; the engine never keeps a copy.
type GameState struct {
	PlayerHand Hand        `json:"playerHand"`
	DealerHand Hand        `json:"dealerHand"`
	Deck       []deck.Card `json:"deck"` // remaining cards, top of the deck last
	Status     Status      `json:"gameStatus"`
	Outcome    Outcome     `json:"outcome,omitempty"`
	CanDouble  bool        `json:"canDouble"`
	Bankroll   int         `json:"bankroll"`
	CurrentBet int         `json:"currentBet"`
	IsDoubled  bool        `json:"isDoubled"`
}

// IsOver reports whether the round has been settled
func (s GameState) IsOver() bool {
	return s.Status == StatusGameOver
}

// Validate checks the structural invariants of a state received from a caller
func (s GameState) Validate() error {
	if !s.Status.Valid() {
		return fmt.Errorf("%w: unknown status %q", ErrInvalidState, s.Status)
	}
	if !s.Outcome.Valid() {
		return fmt.Errorf("%w: unknown outcome %q", ErrInvalidState, s.Outcome)
	}
	if (s.Outcome != OutcomeNone) != (s.Status == StatusGameOver) {
		return fmt.Errorf("%w: outcome %q with status %q", ErrInvalidState, s.Outcome, s.Status)
	}
	if s.Bankroll < 0 {
		return fmt.Errorf("%w: negative bankroll %d", ErrInvalidState, s.Bankroll)
	}
	if s.CurrentBet <= 0 {
		return fmt.Errorf("%w: bet must be positive, got %d", ErrInvalidState, s.CurrentBet)
	}
	if s.CanDouble && (s.Status != StatusPlaying || s.IsDoubled || s.CurrentBet > s.Bankroll-s.CurrentBet) {
		return fmt.Errorf("%w: double down not available", ErrInvalidState)
	}

	seen := make(map[deck.Card]bool, deck.Size)
	total := 0
	for _, cards := range [][]deck.Card{s.PlayerHand.Cards, s.DealerHand.Cards, s.Deck} {
		for _, c := range cards {
			if !c.Valid() {
				return fmt.Errorf("%w: invalid card %v", ErrInvalidState, c)
			}
			if seen[c] {
				return fmt.Errorf("%w: duplicate card %s", ErrInvalidState, c.Code())
			}
			seen[c] = true
			total++
		}
	}

	if s.Status != StatusBetting && total != deck.Size {
		return fmt.Errorf("%w: %d cards in play, want %d", ErrInvalidState, total, deck.Size)
	}
	if s.Status == StatusPlaying && (len(s.PlayerHand.Cards) < 2 || len(s.DealerHand.Cards) < 2) {
		return fmt.Errorf("%w: hands not dealt", ErrInvalidState)
	}

	return nil
}

// clone returns a copy that shares no slices with s
func (s GameState) clone() GameState {
	s.PlayerHand = s.PlayerHand.clone()
	s.DealerHand = s.DealerHand.clone()
	s.Deck = append([]deck.Card(nil), s.Deck...)
	return s
}

// draw takes the top card off the deck
func (s *GameState) draw() (deck.Card, error) {
	n := len(s.Deck)
	if n == 0 {
		return deck.Card{}, ErrDeckExhausted
	}
	c := s.Deck[n-1]
	s.Deck = s.Deck[:n-1]
	return c, nil
}

// settle ends the round with the given outcome and moves the bet
func (s *GameState) settle(outcome Outcome) {
	s.DealerHand.HasHiddenCard = false
	s.Status = StatusGameOver
	s.Outcome = outcome
	s.CanDouble = false

	switch outcome {
	case OutcomeWin:
		// Saturate rather than wrap at the top of the int range.
		if s.CurrentBet > math.MaxInt-s.Bankroll {
			s.Bankroll = math.MaxInt
		} else {
			s.Bankroll += s.CurrentBet
		}
	case OutcomeLose:
		s.Bankroll -= s.CurrentBet
	}
}

func itoa(n int) string {
	return strconv.Itoa(n)
}
