package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/lox/blackjack/internal/blackjack"
	"github.com/lox/blackjack/internal/deck"
)

// hiddenCard is shown in place of the dealer's face-down card
const hiddenCard = "🂠"

// View renders the table
func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.styles.Header.Render("Blackjack"))
	b.WriteString("\n\n")

	table := lipgloss.JoinVertical(lipgloss.Left,
		m.renderHand("Dealer", m.state.DealerHand),
		"",
		m.renderHand("You", m.state.PlayerHand),
	)
	b.WriteString(m.styles.Table.Render(table))
	b.WriteString("\n")

	b.WriteString(m.renderStatus())
	b.WriteString("\n")

	if banner := m.renderOutcome(); banner != "" {
		b.WriteString(banner)
		b.WriteString("\n")
	}
	if m.errMessage != "" {
		b.WriteString(m.styles.Error.Render(m.errMessage))
		b.WriteString("\n")
	}
	if m.hint != "" {
		b.WriteString(m.styles.Hint.Render(m.hint))
		b.WriteString("\n")
	}
	if m.replenisher.Pending() {
		b.WriteString(m.styles.Info.Render(fmt.Sprintf("Out of chips. The house tops you up in %s.", m.replenisher.Delay())))
		b.WriteString("\n")
	}

	if len(m.gameLog) > 0 {
		b.WriteString("\n")
		b.WriteString(m.logViewport.View())
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

// renderHand draws one hand. A hidden card hides the score as well.
func (m *Model) renderHand(label string, h blackjack.Hand) string {
	title := m.styles.Label.Render(label)
	if len(h.Cards) == 0 {
		return title + "  " + m.styles.Info.Render("no cards")
	}

	cards := make([]string, 0, len(h.Cards))
	for _, c := range h.VisibleCards() {
		cards = append(cards, m.renderCard(c))
	}
	if h.HasHiddenCard {
		cards = append(cards, m.styles.HiddenCard.Render(hiddenCard))
	}

	line := fmt.Sprintf("%s  %s", title, strings.Join(cards, " "))
	if !h.HasHiddenCard {
		score := fmt.Sprintf("(%d)", h.Score())
		if h.IsBusted() {
			score = fmt.Sprintf("(%d bust)", h.Score())
		}
		line += "  " + m.styles.Score.Render(score)
	}
	return line
}

func (m *Model) renderCard(c deck.Card) string {
	if c.IsRed() {
		return m.styles.RedCard.Render(c.String())
	}
	return m.styles.BlackCard.Render(c.String())
}

func (m *Model) renderStatus() string {
	parts := []string{
		m.styles.Bankroll.Render(fmt.Sprintf("Bankroll: $%d", m.state.Bankroll)),
	}

	switch m.state.Status {
	case blackjack.StatusPlaying:
		bet := fmt.Sprintf("Bet: $%d", m.state.CurrentBet)
		if m.state.IsDoubled {
			bet += " (doubled)"
		}
		parts = append(parts, m.styles.Bankroll.Render(bet))
	default:
		parts = append(parts, m.styles.Bankroll.Render(fmt.Sprintf("Next bet: $%d", m.bet)))
	}

	if m.busy {
		parts = append(parts, m.styles.Info.Render("..."))
	}
	return strings.Join(parts, "  ")
}

func (m *Model) renderOutcome() string {
	if m.state.Status != blackjack.StatusGameOver {
		return ""
	}

	text := outcomeText(m.state.Outcome)
	switch m.state.Outcome {
	case blackjack.OutcomeWin:
		return m.styles.Win.Render(text)
	case blackjack.OutcomeLose:
		return m.styles.Lose.Render(text)
	default:
		return m.styles.Push.Render(text)
	}
}

func joinLines(lines []string) string {
	return strings.Join(lines, "\n")
}

// Run starts the table program and blocks until the player quits
func Run(m *Model) error {
	program := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(m.ctx))
	_, err := program.Run()
	return err
}
