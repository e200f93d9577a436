package tui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the table's key bindings
type keyMap struct {
	Deal    key.Binding
	Hit     key.Binding
	Stand   key.Binding
	Double  key.Binding
	BetUp   key.Binding
	BetDown key.Binding
	Betting key.Binding
	Hint    key.Binding
	Help    key.Binding
	Quit    key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Deal: key.NewBinding(
			key.WithKeys("d", "enter"),
			key.WithHelp("d/enter", "deal"),
		),
		Hit: key.NewBinding(
			key.WithKeys("h"),
			key.WithHelp("h", "hit"),
		),
		Stand: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "stand"),
		),
		Double: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "double"),
		),
		BetUp: key.NewBinding(
			key.WithKeys("+", "="),
			key.WithHelp("+", "raise bet"),
		),
		BetDown: key.NewBinding(
			key.WithKeys("-", "_"),
			key.WithHelp("-", "lower bet"),
		),
		Betting: key.NewBinding(
			key.WithKeys("b"),
			key.WithHelp("b", "betting"),
		),
		Hint: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "advice"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "more keys"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c", "esc"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp implements help.KeyMap
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Deal, k.Hit, k.Stand, k.Double, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Deal, k.Hit, k.Stand, k.Double},
		{k.BetUp, k.BetDown, k.Betting, k.Hint},
		{k.Help, k.Quit},
	}
}

// setPlaying enables the bindings that apply to the current phase
func (k *keyMap) setPlaying(playing, canDouble bool) {
	k.Hit.SetEnabled(playing)
	k.Stand.SetEnabled(playing)
	k.Double.SetEnabled(playing && canDouble)
	k.Hint.SetEnabled(playing)
	k.Deal.SetEnabled(!playing)
	k.BetUp.SetEnabled(!playing)
	k.BetDown.SetEnabled(!playing)
	k.Betting.SetEnabled(!playing)
}
