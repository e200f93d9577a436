package blackjack

import (
	"encoding/json"
	"strings"

	"github.com/lox/blackjack/internal/deck"
)

// Hand is the ordered set of cards held by the player or the dealer.
// Score and bust state are always derived from Cards.
type Hand struct {
	Cards []deck.Card

	// HasHiddenCard marks a dealer hand whose second card is face down.
	// Only the first card counts toward Score while it is set.
	HasHiddenCard bool
}

// NewHand creates a face-up hand from the given cards
func NewHand(cards ...deck.Card) Hand {
	return Hand{Cards: append([]deck.Card(nil), cards...)}
}

// VisibleCards returns the cards that count toward the score
func (h Hand) VisibleCards() []deck.Card {
	if h.HasHiddenCard && len(h.Cards) > 1 {
		return h.Cards[:1]
	}
	return h.Cards
}

// Score returns the blackjack score of the visible cards
func (h Hand) Score() int {
	return CalculateScore(h.VisibleCards())
}

// IsBusted reports whether the visible score is over 21
func (h Hand) IsBusted() bool {
	return IsBusted(h.Score())
}

// IsBlackjack reports a two-card 21
func (h Hand) IsBlackjack() bool {
	return !h.HasHiddenCard && len(h.Cards) == 2 && h.Score() == Blackjack
}

// Reveal returns a copy of the hand with every card face up
func (h Hand) Reveal() Hand {
	h.Cards = h.clone().Cards
	h.HasHiddenCard = false
	return h
}

// String renders the hand, e.g. "[10♠ A♥] (21)"
func (h Hand) String() string {
	parts := make([]string, len(h.Cards))
	for i, c := range h.Cards {
		if h.HasHiddenCard && i == 1 {
			parts[i] = "🂠"
			continue
		}
		parts[i] = c.String()
	}
	return "[" + strings.Join(parts, " ") + "] (" + itoa(h.Score()) + ")"
}

func (h Hand) clone() Hand {
	h.Cards = append([]deck.Card(nil), h.Cards...)
	return h
}

func (h Hand) with(c deck.Card) Hand {
	h = h.clone()
	h.Cards = append(h.Cards, c)
	return h
}

type handJSON struct {
	Cards         []deck.Card `json:"cards"`
	Score         int         `json:"score"`
	IsBusted      bool        `json:"isBusted"`
	HasHiddenCard bool        `json:"hasHiddenCard"`
}

// MarshalJSON includes the derived score and bust flag for presentation
func (h Hand) MarshalJSON() ([]byte, error) {
	cards := h.Cards
	if cards == nil {
		cards = []deck.Card{}
	}
	return json.Marshal(handJSON{
		Cards:         cards,
		Score:         h.Score(),
		IsBusted:      h.IsBusted(),
		HasHiddenCard: h.HasHiddenCard,
	})
}

// UnmarshalJSON reads cards and the hidden flag. Any score or bust values in
// the input are ignored and recomputed.
func (h *Hand) UnmarshalJSON(data []byte) error {
	var raw handJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	h.Cards = raw.Cards
	h.HasHiddenCard = raw.HasHiddenCard
	return nil
}
