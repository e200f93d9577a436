// Package bot provides automated blackjack players used by the simulator and
// by the TUI's hint key.
package bot

import (
	"fmt"
	"math/rand/v2"
	"slices"
	"sort"

	"github.com/charmbracelet/log"

	"github.com/lox/blackjack/internal/blackjack"
	"github.com/lox/blackjack/internal/deck"
)

// Decision is an action chosen by a bot along with why it was chosen
type Decision struct {
	Action    blackjack.Action
	Reasoning string
}

// Agent picks an action for a round in progress. legal is the result of
// blackjack.LegalActions for state.
type Agent interface {
	MakeDecision(state blackjack.GameState, legal []blackjack.Action) Decision
}

var factories = map[string]func(rng *rand.Rand, logger *log.Logger) Agent{
	"basic":    func(_ *rand.Rand, logger *log.Logger) Agent { return NewBasicBot(logger) },
	"dealer":   func(_ *rand.Rand, logger *log.Logger) Agent { return NewDealerBot(logger) },
	"cautious": func(_ *rand.Rand, logger *log.Logger) Agent { return NewCautiousBot(logger) },
	"rand":     func(rng *rand.Rand, logger *log.Logger) Agent { return NewRandBot(rng, logger) },
}

// Names lists the registered bot names in sorted order
func Names() []string {
	names := make([]string, 0, len(factories))
	for name := range factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// New creates the bot registered under name
func New(name string, rng *rand.Rand, logger *log.Logger) (Agent, error) {
	factory, ok := factories[name]
	if !ok {
		return nil, fmt.Errorf("unknown bot %q (want one of %v)", name, Names())
	}
	return factory(rng, logger), nil
}

// handInfo summarises the player's hand and the dealer's up card
type handInfo struct {
	total  int
	soft   bool
	upCard int // 2-11, 11 for an ace, 0 when unknown
}

func describe(state blackjack.GameState) handInfo {
	info := handInfo{
		total: state.PlayerHand.Score(),
		soft:  isSoft(state.PlayerHand.Cards),
	}
	if visible := state.DealerHand.VisibleCards(); len(visible) > 0 {
		info.upCard = upCardValue(visible[0])
	}
	return info
}

// isSoft reports whether an ace in cards is being counted as 11
func isSoft(cards []deck.Card) bool {
	hard := 0
	hasAce := false
	for _, c := range cards {
		if c.IsAce() {
			hasAce = true
			hard++
			continue
		}
		hard += blackjack.CardPoints(c)
	}
	return hasAce && blackjack.CalculateScore(cards) == hard+10
}

func upCardValue(c deck.Card) int {
	if c.IsAce() {
		return 11
	}
	return blackjack.CardPoints(c)
}

// choose returns want when it is legal, otherwise fallback
func choose(legal []blackjack.Action, want, fallback blackjack.Action, reasoning string) Decision {
	if slices.Contains(legal, want) {
		return Decision{Action: want, Reasoning: reasoning}
	}
	return Decision{Action: fallback, Reasoning: reasoning + " (" + want.String() + " unavailable)"}
}
