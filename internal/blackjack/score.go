package blackjack

import "github.com/lox/blackjack/internal/deck"

const (
	// Blackjack is the best possible score
	Blackjack = 21

	// DealerStandScore is the score at which the dealer stops drawing
	DealerStandScore = 17
)

// CardPoints returns the non-ace point value of a card: faces count 10,
// numbered ranks count their face value. Aces are scored by CalculateScore.
func CardPoints(c deck.Card) int {
	if c.Rank.IsFaceCard() {
		return 10
	}
	return int(c.Rank)
}

// CalculateScore sums a hand. Aces are added after every other card, each
// counting 11 if that keeps the running total at or below 21 and 1 otherwise.
func CalculateScore(cards []deck.Card) int {
	score := 0
	aces := 0

	for _, c := range cards {
		if c.IsAce() {
			aces++
			continue
		}
		score += CardPoints(c)
	}

	for i := 0; i < aces; i++ {
		if score+11 <= Blackjack {
			score += 11
		} else {
			score++
		}
	}

	return score
}

// IsBusted reports whether a score is over 21
func IsBusted(score int) bool {
	return score > Blackjack
}
