package bot

import (
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/lox/blackjack/internal/blackjack"
)

// BasicBot plays textbook basic strategy for a dealer that stands on soft 17,
// without splits or surrender
type BasicBot struct {
	logger *log.Logger
}

// NewBasicBot creates a new BasicBot instance
func NewBasicBot(logger *log.Logger) *BasicBot {
	return &BasicBot{logger: logger}
}

func (b *BasicBot) MakeDecision(state blackjack.GameState, legal []blackjack.Action) Decision {
	info := describe(state)

	var d Decision
	if info.soft {
		d = b.soft(info, legal)
	} else {
		d = b.hard(info, legal)
	}

	b.logger.Debug("Basic strategy", "total", info.total, "soft", info.soft, "up", info.upCard, "action", d.Action)
	return d
}

func (b *BasicBot) hard(info handInfo, legal []blackjack.Action) Decision {
	up := info.upCard
	reason := fmt.Sprintf("hard %d vs %d", info.total, up)

	switch {
	case info.total <= 8:
		return Decision{Action: blackjack.ActionHit, Reasoning: reason}
	case info.total == 9 && up >= 3 && up <= 6:
		return choose(legal, blackjack.ActionDouble, blackjack.ActionHit, reason)
	case info.total == 10 && up >= 2 && up <= 9:
		return choose(legal, blackjack.ActionDouble, blackjack.ActionHit, reason)
	case info.total == 11:
		return choose(legal, blackjack.ActionDouble, blackjack.ActionHit, reason)
	case info.total <= 11:
		return Decision{Action: blackjack.ActionHit, Reasoning: reason}
	case info.total == 12 && up >= 4 && up <= 6:
		return Decision{Action: blackjack.ActionStand, Reasoning: reason}
	case info.total >= 13 && info.total <= 16 && up >= 2 && up <= 6:
		return Decision{Action: blackjack.ActionStand, Reasoning: reason}
	case info.total <= 16:
		return Decision{Action: blackjack.ActionHit, Reasoning: reason}
	default:
		return Decision{Action: blackjack.ActionStand, Reasoning: reason}
	}
}

func (b *BasicBot) soft(info handInfo, legal []blackjack.Action) Decision {
	up := info.upCard
	reason := fmt.Sprintf("soft %d vs %d", info.total, up)

	switch {
	case info.total <= 14 && up >= 5 && up <= 6:
		return choose(legal, blackjack.ActionDouble, blackjack.ActionHit, reason)
	case info.total <= 16 && up >= 4 && up <= 6:
		return choose(legal, blackjack.ActionDouble, blackjack.ActionHit, reason)
	case info.total == 17 && up >= 3 && up <= 6:
		return choose(legal, blackjack.ActionDouble, blackjack.ActionHit, reason)
	case info.total <= 17:
		return Decision{Action: blackjack.ActionHit, Reasoning: reason}
	case info.total == 18 && up >= 3 && up <= 6:
		return choose(legal, blackjack.ActionDouble, blackjack.ActionStand, reason)
	case info.total == 18 && up >= 9:
		return Decision{Action: blackjack.ActionHit, Reasoning: reason}
	default:
		return Decision{Action: blackjack.ActionStand, Reasoning: reason}
	}
}
