package deck

// Size is the number of cards in a standard deck
const Size = 52

// Source supplies uniformly distributed integers in [0, n).
// *math/rand/v2.Rand satisfies it.
type Source interface {
	IntN(n int) int
}

// New returns all 52 cards in canonical order: suits S, C, H, D, each from
// Ace through King.
func New() []Card {
	cards := make([]Card, 0, Size)
	for _, suit := range Suits {
		for rank := Ace; rank <= King; rank++ {
			cards = append(cards, NewCard(suit, rank))
		}
	}
	return cards
}

// Shuffle returns a copy of cards in uniformly random order using a
// Fisher-Yates pass from the last index down to 1. The input is not modified.
func Shuffle(cards []Card, src Source) []Card {
	shuffled := make([]Card, len(cards))
	copy(shuffled, cards)

	for i := len(shuffled) - 1; i > 0; i-- {
		j := src.IntN(i + 1)
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	}
	return shuffled
}

// NewShuffled is shorthand for Shuffle(New(), src)
func NewShuffled(src Source) []Card {
	return Shuffle(New(), src)
}
