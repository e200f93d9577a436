package bot

import (
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/blackjack/internal/blackjack"
	"github.com/lox/blackjack/internal/deck"
	"github.com/lox/blackjack/internal/randutil"
)

func testLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{})
}

// playing returns a playing state with the given hands; the dealer's second
// card is hidden
func playing(player, dealer string, canDouble bool) blackjack.GameState {
	return blackjack.GameState{
		PlayerHand: blackjack.NewHand(deck.MustParseCards(player)...),
		DealerHand: blackjack.Hand{Cards: deck.MustParseCards(dealer), HasHiddenCard: true},
		Status:     blackjack.StatusPlaying,
		CanDouble:  canDouble,
		Bankroll:   1000,
		CurrentBet: 50,
	}
}

func TestBasicBot(t *testing.T) {
	t.Parallel()
	b := NewBasicBot(testLogger())

	tests := []struct {
		name      string
		player    string
		dealer    string
		canDouble bool
		want      blackjack.Action
	}{
		{"hard 8 hits", "5S3H", "6C9D", true, blackjack.ActionHit},
		{"hard 9 vs 4 doubles", "5S4H", "4C9D", true, blackjack.ActionDouble},
		{"hard 9 vs 8 hits", "5S4H", "8C9D", true, blackjack.ActionHit},
		{"hard 10 vs 10 hits", "6S4H", "KC9D", true, blackjack.ActionHit},
		{"hard 11 vs ace doubles", "6S5H", "AC9D", true, blackjack.ActionDouble},
		{"hard 11 hits when double unavailable", "6S5H", "AC9D", false, blackjack.ActionHit},
		{"hard 12 vs 4 stands", "10S2H", "4C9D", true, blackjack.ActionStand},
		{"hard 12 vs 2 hits", "10S2H", "2C9D", true, blackjack.ActionHit},
		{"hard 16 vs 6 stands", "10S6H", "6C9D", true, blackjack.ActionStand},
		{"hard 16 vs 10 hits", "10S6H", "QC9D", true, blackjack.ActionHit},
		{"hard 17 stands", "10S7H", "AC9D", true, blackjack.ActionStand},
		{"soft 13 vs 5 doubles", "AS2H", "5C9D", true, blackjack.ActionDouble},
		{"soft 17 vs 2 hits", "AS6H", "2C9D", true, blackjack.ActionHit},
		{"soft 18 vs 4 doubles", "AS7H", "4C9D", true, blackjack.ActionDouble},
		{"soft 18 vs 4 stands without double", "AS7H", "4C9D", false, blackjack.ActionStand},
		{"soft 18 vs 7 stands", "AS7H", "7C9D", true, blackjack.ActionStand},
		{"soft 18 vs 10 hits", "AS7H", "10C9D", true, blackjack.ActionHit},
		{"soft 19 stands", "AS8H", "6C9D", true, blackjack.ActionStand},
		{"three card soft 18", "AS3H4D", "10C9D", false, blackjack.ActionHit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			state := playing(tt.player, tt.dealer, tt.canDouble)
			d := b.MakeDecision(state, blackjack.LegalActions(state))
			assert.Equal(t, tt.want, d.Action, d.Reasoning)
			assert.NotEmpty(t, d.Reasoning)
		})
	}
}

func TestDealerAndCautiousBots(t *testing.T) {
	t.Parallel()

	dealer := NewDealerBot(testLogger())
	cautious := NewCautiousBot(testLogger())

	s16 := playing("10S6H", "2C9D", true)
	s17 := playing("10S7H", "2C9D", true)
	s12 := playing("10S2H", "2C9D", true)
	s11 := playing("6S5H", "2C9D", true)

	assert.Equal(t, blackjack.ActionHit, dealer.MakeDecision(s16, nil).Action)
	assert.Equal(t, blackjack.ActionStand, dealer.MakeDecision(s17, nil).Action)
	assert.Equal(t, blackjack.ActionStand, cautious.MakeDecision(s12, nil).Action)
	assert.Equal(t, blackjack.ActionHit, cautious.MakeDecision(s11, nil).Action)
}

func TestRandBotPicksLegalActions(t *testing.T) {
	t.Parallel()
	r := NewRandBot(randutil.New(7), testLogger())

	state := playing("10S6H", "2C9D", true)
	legal := blackjack.LegalActions(state)
	seen := make(map[blackjack.Action]bool)
	for range 200 {
		d := r.MakeDecision(state, legal)
		assert.Contains(t, legal, d.Action)
		seen[d.Action] = true
	}
	assert.Len(t, seen, len(legal))

	assert.Equal(t, blackjack.ActionStand, r.MakeDecision(state, nil).Action)
}

func TestNew(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{"basic", "cautious", "dealer", "rand"}, Names())
	for _, name := range Names() {
		agent, err := New(name, randutil.New(1), testLogger())
		require.NoError(t, err, name)
		assert.NotNil(t, agent)
	}

	_, err := New("card-counter", randutil.New(1), testLogger())
	assert.Error(t, err)
}

func TestIsSoft(t *testing.T) {
	t.Parallel()

	assert.True(t, isSoft(deck.MustParseCards("AS6H")))
	assert.False(t, isSoft(deck.MustParseCards("AS6H10D")))
	assert.False(t, isSoft(deck.MustParseCards("10S6H")))
	assert.True(t, isSoft(deck.MustParseCards("ASAH")))
}
