package bot

import (
	"math/rand/v2"

	"github.com/charmbracelet/log"

	"github.com/lox/blackjack/internal/blackjack"
)

// RandBot is a simple bot that makes uniform random legal actions
type RandBot struct {
	rng    *rand.Rand
	logger *log.Logger
}

// NewRandBot creates a new RandBot instance
func NewRandBot(rng *rand.Rand, logger *log.Logger) *RandBot {
	return &RandBot{rng: rng, logger: logger}
}

func (r *RandBot) MakeDecision(state blackjack.GameState, legal []blackjack.Action) Decision {
	if len(legal) == 0 {
		return Decision{Action: blackjack.ActionStand, Reasoning: "rand-bot no legal actions"}
	}
	return Decision{Action: legal[r.rng.IntN(len(legal))], Reasoning: "rand-bot random action"}
}
