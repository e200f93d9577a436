package blackjack

import (
	"testing"

	"github.com/lox/blackjack/internal/deck"
)

// scriptedState builds a playing state whose deck yields next in order.
// The rest of the 52 cards sit underneath so the card total stays valid.
func scriptedState(t *testing.T, player, dealer, next string, bankroll, bet int) GameState {
	t.Helper()

	p := deck.MustParseCards(player)
	d := deck.MustParseCards(dealer)
	n := deck.MustParseCards(next)

	used := make(map[deck.Card]bool)
	for _, cards := range [][]deck.Card{p, d, n} {
		for _, c := range cards {
			if used[c] {
				t.Fatalf("card %s scripted twice", c.Code())
			}
			used[c] = true
		}
	}

	remaining := make([]deck.Card, 0, deck.Size)
	for _, c := range deck.New() {
		if !used[c] {
			remaining = append(remaining, c)
		}
	}
	for i := len(n) - 1; i >= 0; i-- {
		remaining = append(remaining, n[i])
	}

	return GameState{
		PlayerHand: NewHand(p...),
		DealerHand: Hand{Cards: d, HasHiddenCard: true},
		Deck:       remaining,
		Status:     StatusPlaying,
		CanDouble:  bet <= bankroll-bet,
		Bankroll:   bankroll,
		CurrentBet: bet,
	}
}

// sequenceSource returns each value in turn, clamped to the requested range
type sequenceSource struct {
	values []int
	i      int
}

func (s *sequenceSource) IntN(n int) int {
	if len(s.values) == 0 {
		return 0
	}
	v := s.values[s.i%len(s.values)]
	s.i++
	if v >= n {
		v = n - 1
	}
	return v
}
