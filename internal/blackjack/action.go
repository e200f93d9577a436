package blackjack

import "fmt"

// Action is a player request understood by the engine
type Action int

const (
	ActionShowBetting Action = iota
	ActionDeal
	ActionHit
	ActionStand
	ActionDouble
)

var actionNames = [...]string{
	ActionShowBetting: "showBetting",
	ActionDeal:        "deal",
	ActionHit:         "hit",
	ActionStand:       "stand",
	ActionDouble:      "double",
}

// Actions lists every action in declaration order
func Actions() []Action {
	return []Action{ActionShowBetting, ActionDeal, ActionHit, ActionStand, ActionDouble}
}

// String returns the wire name of the action
func (a Action) String() string {
	if a < 0 || int(a) >= len(actionNames) {
		return fmt.Sprintf("Action(%d)", int(a))
	}
	return actionNames[a]
}

// ParseAction converts a wire name into an Action
func ParseAction(s string) (Action, error) {
	for i, name := range actionNames {
		if name == s {
			return Action(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidAction, s)
}

// MarshalText implements encoding.TextMarshaler
func (a Action) MarshalText() ([]byte, error) {
	if a < 0 || int(a) >= len(actionNames) {
		return nil, fmt.Errorf("%w: %d", ErrInvalidAction, int(a))
	}
	return []byte(actionNames[a]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (a *Action) UnmarshalText(text []byte) error {
	parsed, err := ParseAction(string(text))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

// LegalActions returns the actions that would change s. ShowBetting is always
// available.
func LegalActions(s GameState) []Action {
	switch s.Status {
	case StatusPlaying:
		actions := []Action{ActionHit, ActionStand}
		if s.CanDouble {
			actions = append(actions, ActionDouble)
		}
		return actions
	default:
		if s.Bankroll >= s.CurrentBet && s.CurrentBet > 0 {
			return []Action{ActionDeal, ActionShowBetting}
		}
		return []Action{ActionShowBetting}
	}
}

// Apply runs a single action. state may be nil for ShowBetting and Deal, in
// which case the initial bankroll is used. For Deal a nil bet falls back to
// the state's current bet (undoubled), then the base bet.
func (e *Engine) Apply(a Action, state *GameState, bet *int) (GameState, error) {
	switch a {
	case ActionShowBetting:
		return e.ShowBetting(e.bankrollOf(state)), nil

	case ActionDeal:
		amount := e.baseBet
		if state != nil && state.CurrentBet > 0 {
			amount = state.CurrentBet
			if state.IsDoubled {
				amount /= 2
			}
		}
		if bet != nil {
			amount = *bet
		}
		return e.Deal(amount, e.bankrollOf(state))

	case ActionHit:
		if state == nil {
			return GameState{}, fmt.Errorf("hit: %w", ErrMissingState)
		}
		return e.Hit(*state)

	case ActionStand:
		if state == nil {
			return GameState{}, fmt.Errorf("stand: %w", ErrMissingState)
		}
		return e.Stand(*state)

	case ActionDouble:
		if state == nil {
			return GameState{}, fmt.Errorf("double: %w", ErrMissingState)
		}
		return e.DoubleDown(*state)

	default:
		return GameState{}, fmt.Errorf("%w: %s", ErrInvalidAction, a)
	}
}

func (e *Engine) bankrollOf(state *GameState) int {
	if state == nil {
		return e.initialBankroll
	}
	return state.Bankroll
}
