package blackjack

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/blackjack/internal/deck"
)

func TestNewHandBlackjack(t *testing.T) {
	h := NewHand(deck.MustParseCards("10SAH")...)

	assert.Equal(t, 21, h.Score())
	assert.False(t, h.IsBusted())
	assert.True(t, h.IsBlackjack())
}

func TestNewHandCopiesCards(t *testing.T) {
	cards := deck.MustParseCards("10SAH")
	h := NewHand(cards...)
	cards[0] = deck.NewCard(deck.Clubs, deck.Two)

	assert.Equal(t, deck.NewCard(deck.Spades, deck.Ten), h.Cards[0])
}

func TestHiddenCardExcludedFromScore(t *testing.T) {
	h := Hand{Cards: deck.MustParseCards("6CKD"), HasHiddenCard: true}

	assert.Equal(t, 6, h.Score())
	assert.Len(t, h.VisibleCards(), 1)
	assert.False(t, h.IsBlackjack())
	assert.Equal(t, "[6♣ 🂠] (6)", h.String())

	revealed := h.Reveal()
	assert.Equal(t, 16, revealed.Score())
	assert.False(t, revealed.HasHiddenCard)
	assert.True(t, h.HasHiddenCard, "Reveal must not modify the receiver")
	assert.Equal(t, "[6♣ K♦] (16)", revealed.String())
}

func TestHandJSON(t *testing.T) {
	h := Hand{Cards: deck.MustParseCards("10S8H5D")}

	data, err := json.Marshal(h)
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Equal(t, float64(23), raw["score"])
	assert.Equal(t, true, raw["isBusted"])
	assert.Equal(t, false, raw["hasHiddenCard"])

	var decoded Hand
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, h.Cards, decoded.Cards)
}

func TestHandJSONIgnoresSuppliedScore(t *testing.T) {
	var h Hand
	input := `{"cards":[{"code":"KS"},{"code":"QH"}],"score":3,"isBusted":true,"hasHiddenCard":false}`
	require.NoError(t, json.Unmarshal([]byte(input), &h))

	assert.Equal(t, 20, h.Score())
	assert.False(t, h.IsBusted())
}

func TestEmptyHandMarshalsEmptyCards(t *testing.T) {
	data, err := json.Marshal(Hand{})
	require.NoError(t, err)
	assert.JSONEq(t, `{"cards":[],"score":0,"isBusted":false,"hasHiddenCard":false}`, string(data))
}
