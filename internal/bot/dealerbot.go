package bot

import (
	"github.com/charmbracelet/log"

	"github.com/lox/blackjack/internal/blackjack"
)

// DealerBot plays the dealer's own policy: hit below 17, never double
type DealerBot struct {
	logger *log.Logger
}

// NewDealerBot creates a new DealerBot instance
func NewDealerBot(logger *log.Logger) *DealerBot {
	return &DealerBot{logger: logger}
}

func (d *DealerBot) MakeDecision(state blackjack.GameState, legal []blackjack.Action) Decision {
	if state.PlayerHand.Score() < blackjack.DealerStandScore {
		return Decision{Action: blackjack.ActionHit, Reasoning: "dealer-bot below 17"}
	}
	return Decision{Action: blackjack.ActionStand, Reasoning: "dealer-bot standing"}
}

// CautiousBot never risks a bust: it stands on any 12 or more
type CautiousBot struct {
	logger *log.Logger
}

// NewCautiousBot creates a new CautiousBot instance
func NewCautiousBot(logger *log.Logger) *CautiousBot {
	return &CautiousBot{logger: logger}
}

func (c *CautiousBot) MakeDecision(state blackjack.GameState, legal []blackjack.Action) Decision {
	if state.PlayerHand.Score() <= 11 {
		return Decision{Action: blackjack.ActionHit, Reasoning: "cautious-bot cannot bust"}
	}
	return Decision{Action: blackjack.ActionStand, Reasoning: "cautious-bot standing"}
}
