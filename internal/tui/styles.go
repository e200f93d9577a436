package tui

import "github.com/charmbracelet/lipgloss"

// Styles holds every style the table view uses
type Styles struct {
	Header     lipgloss.Style
	Label      lipgloss.Style
	Score      lipgloss.Style
	RedCard    lipgloss.Style
	BlackCard  lipgloss.Style
	HiddenCard lipgloss.Style
	Bankroll   lipgloss.Style
	Win        lipgloss.Style
	Lose       lipgloss.Style
	Push       lipgloss.Style
	Error      lipgloss.Style
	Hint       lipgloss.Style
	Info       lipgloss.Style
	Table      lipgloss.Style
}

// Theme returns the styles for a named theme. Unknown names get the default.
func Theme(name string) Styles {
	switch name {
	case "dark":
		return darkStyles()
	case "light":
		return lightStyles()
	default:
		return defaultStyles()
	}
}

func defaultStyles() Styles {
	return Styles{
		Header: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Bold(true).
			Padding(0, 1),
		Label: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#96CEB4")).
			Bold(true),
		Score: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")),
		RedCard: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B")).
			Bold(true),
		BlackCard: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Bold(true),
		HiddenCard: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#626262")),
		Bankroll: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFD700")).
			Bold(true),
		Win: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#96CEB4")).
			Bold(true),
		Lose: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B")).
			Bold(true),
		Push: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFEAA7")).
			Bold(true),
		Error: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B")),
		Hint: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#7D56F4")).
			Italic(true),
		Info: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#626262")),
		Table: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#04B575")).
			Padding(0, 1),
	}
}

func darkStyles() Styles {
	s := defaultStyles()
	s.Header = s.Header.Background(lipgloss.Color("#303030"))
	s.BlackCard = s.BlackCard.Foreground(lipgloss.Color("#BCBCBC"))
	s.Table = s.Table.BorderForeground(lipgloss.Color("#444444"))
	return s
}

func lightStyles() Styles {
	s := defaultStyles()
	s.Header = s.Header.
		Foreground(lipgloss.Color("#000000")).
		Background(lipgloss.Color("#D7D7FF"))
	s.BlackCard = s.BlackCard.Foreground(lipgloss.Color("#000000"))
	s.Score = s.Score.Foreground(lipgloss.Color("#303030"))
	s.Table = s.Table.BorderForeground(lipgloss.Color("#5F8700"))
	return s
}
