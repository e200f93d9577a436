// Package tui is the terminal blackjack table. It renders whatever state the
// transport returns and never applies rules itself.
package tui

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/lox/blackjack/internal/bankroll"
	"github.com/lox/blackjack/internal/blackjack"
	"github.com/lox/blackjack/internal/bot"
	"github.com/lox/blackjack/internal/client"
	"github.com/lox/blackjack/internal/protocol"
)

const (
	betStep = 10
	minBet  = betStep
	logSize = 50
)

// stateMsg carries the reply to one action
type stateMsg struct {
	action blackjack.Action
	state  blackjack.GameState
	err    error
}

// replenishedMsg is sent when the bankroll has been topped up
type replenishedMsg struct {
	bankroll int
}

// Model is the Bubble Tea model for the blackjack table
type Model struct {
	ctx         context.Context
	transport   client.Transport
	store       bankroll.Store
	replenisher *bankroll.Replenisher
	advisor     bot.Agent
	logger      *log.Logger

	state      blackjack.GameState
	bet        int
	busy       bool
	errMessage string
	hint       string
	replenishC chan int

	gameLog     []string
	logViewport viewport.Model
	keys        keyMap
	help        help.Model
	styles      Styles

	width    int
	height   int
	quitting bool
}

// Option configures a Model
type Option func(*Model)

// WithTheme selects the named colour theme
func WithTheme(name string) Option {
	return func(m *Model) {
		m.styles = Theme(name)
	}
}

// WithAdvisor sets the bot consulted by the advice key
func WithAdvisor(agent bot.Agent) Option {
	return func(m *Model) {
		m.advisor = agent
	}
}

// WithReplenishOptions configures the bankroll top-up timer. The timer only
// arms once the bankroll cannot cover the table minimum.
func WithReplenishOptions(opts ...bankroll.ReplenishOption) Option {
	return func(m *Model) {
		m.replenisher = m.newReplenisher(opts...)
	}
}

// NewModel loads the saved bankroll from store and returns a model in the
// betting phase
func NewModel(ctx context.Context, transport client.Transport, store bankroll.Store, logger *log.Logger, opts ...Option) (*Model, error) {
	rec, err := store.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load bankroll: %w", err)
	}

	vp := viewport.New(40, 6)
	m := &Model{
		ctx:         ctx,
		transport:   transport,
		store:       store,
		logger:      logger.WithPrefix("tui"),
		bet:         rec.LastBet,
		replenishC:  make(chan int, 1),
		logViewport: vp,
		keys:        defaultKeyMap(),
		help:        help.New(),
		styles:      Theme("default"),
		state: blackjack.GameState{
			PlayerHand: blackjack.NewHand(),
			DealerHand: blackjack.NewHand(),
			Status:     blackjack.StatusBetting,
			Bankroll:   rec.Bankroll,
			CurrentBet: rec.LastBet,
		},
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.replenisher == nil {
		m.replenisher = m.newReplenisher()
	}

	m.keys.setPlaying(false, false)
	m.replenisher.Arm(rec.Bankroll)
	return m, nil
}

// State returns the last state received from the transport
func (m *Model) State() blackjack.GameState {
	return m.state
}

// Bet returns the bet the next deal will use
func (m *Model) Bet() int {
	return m.bet
}

// Log returns the round log, oldest first
func (m *Model) Log() []string {
	return append([]string(nil), m.gameLog...)
}

// Init starts the model by fetching a betting state
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.send(blackjack.ActionShowBetting, nil), m.waitForReplenish())
}

// Update handles messages in the TUI
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.logViewport.Width = max(msg.Width-4, 10)
		return m, nil

	case tea.KeyMsg:
		return m, m.handleKey(msg)

	case stateMsg:
		m.handleState(msg)
		return m, nil

	case replenishedMsg:
		m.handleReplenished(msg.bankroll)
		return m, m.waitForReplenish()
	}

	var cmd tea.Cmd
	m.logViewport, cmd = m.logViewport.Update(msg)
	return m, cmd
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	if key.Matches(msg, m.keys.Quit) {
		m.quit()
		return tea.Quit
	}
	if key.Matches(msg, m.keys.Help) {
		m.help.ShowAll = !m.help.ShowAll
		return nil
	}
	if m.busy {
		return nil
	}

	switch {
	case key.Matches(msg, m.keys.Deal):
		bet := m.bet
		return m.send(blackjack.ActionDeal, &bet)
	case key.Matches(msg, m.keys.Hit):
		return m.send(blackjack.ActionHit, nil)
	case key.Matches(msg, m.keys.Stand):
		return m.send(blackjack.ActionStand, nil)
	case key.Matches(msg, m.keys.Double):
		return m.send(blackjack.ActionDouble, nil)
	case key.Matches(msg, m.keys.Betting):
		return m.send(blackjack.ActionShowBetting, nil)
	case key.Matches(msg, m.keys.BetUp):
		m.adjustBet(betStep)
	case key.Matches(msg, m.keys.BetDown):
		m.adjustBet(-betStep)
	case key.Matches(msg, m.keys.Hint):
		m.advise()
	}
	return nil
}

// send returns a command that applies action through the transport
func (m *Model) send(action blackjack.Action, bet *int) tea.Cmd {
	m.busy = true
	m.errMessage = ""
	m.hint = ""

	state := m.state
	req := protocol.NewRequest(action, &state, bet)

	return func() tea.Msg {
		next, err := m.transport.Send(m.ctx, req)
		return stateMsg{action: action, state: next, err: err}
	}
}

func (m *Model) handleState(msg stateMsg) {
	m.busy = false

	if msg.err != nil {
		m.logger.Warn("Action failed", "action", msg.action, "error", msg.err)
		m.errMessage = describeError(msg.err)
		return
	}

	wasOver := m.state.IsOver()
	m.state = msg.state
	m.keys.setPlaying(m.state.Status == blackjack.StatusPlaying, m.state.CanDouble)

	switch {
	case msg.action == blackjack.ActionDeal:
		m.appendLog(fmt.Sprintf("Dealt %s against %s, bet %d",
			m.state.PlayerHand.String(), m.state.DealerHand.String(), m.state.CurrentBet))
	case msg.action == blackjack.ActionDouble && m.state.IsDoubled:
		m.appendLog(fmt.Sprintf("Doubled to %d", m.state.CurrentBet))
	}

	if m.state.IsOver() && !wasOver {
		m.settled()
	}
}

// settled records a finished round
func (m *Model) settled() {
	m.appendLog(fmt.Sprintf("%s: %s vs %s, bankroll %d",
		outcomeText(m.state.Outcome), m.state.PlayerHand.String(), m.state.DealerHand.String(), m.state.Bankroll))

	if m.bet > m.state.Bankroll && m.state.Bankroll >= minBet {
		m.bet = m.state.Bankroll - m.state.Bankroll%betStep
	}
	m.save()
	m.replenisher.Arm(m.state.Bankroll)
}

func (m *Model) handleReplenished(amount int) {
	if m.state.Status == blackjack.StatusPlaying {
		return
	}
	m.state.Bankroll = amount
	m.errMessage = ""
	m.appendLog(fmt.Sprintf("Bankroll replenished to %d", amount))
	m.save()
}

func (m *Model) save() {
	rec := bankroll.Record{Bankroll: m.state.Bankroll, LastBet: m.bet}
	if err := m.store.Save(rec); err != nil {
		m.logger.Error("Failed to save bankroll", "error", err)
		m.errMessage = "could not save bankroll"
	}
}

func (m *Model) newReplenisher(opts ...bankroll.ReplenishOption) *bankroll.Replenisher {
	opts = append([]bankroll.ReplenishOption{bankroll.WithMinBet(minBet)}, opts...)
	return bankroll.NewReplenisher(m.logger, m.onReplenish, opts...)
}

// onReplenish runs on the timer goroutine and hands over to Update
func (m *Model) onReplenish(amount int) {
	select {
	case m.replenishC <- amount:
	default:
	}
}

func (m *Model) waitForReplenish() tea.Cmd {
	return func() tea.Msg {
		select {
		case amount := <-m.replenishC:
			return replenishedMsg{bankroll: amount}
		case <-m.ctx.Done():
			return nil
		}
	}
}

func (m *Model) adjustBet(delta int) {
	next := m.bet + delta
	if next < minBet {
		next = minBet
	}
	if next > m.state.Bankroll && m.state.Bankroll >= minBet {
		next = m.state.Bankroll
	}
	m.bet = next
	m.errMessage = ""
}

func (m *Model) advise() {
	if m.advisor == nil {
		return
	}
	d := m.advisor.MakeDecision(m.state, blackjack.LegalActions(m.state))
	m.hint = fmt.Sprintf("Advice: %s (%s)", d.Action, d.Reasoning)
}

func (m *Model) quit() {
	m.quitting = true
	m.replenisher.Stop()
	if m.state.Status != blackjack.StatusPlaying {
		m.save()
	}
}

func (m *Model) appendLog(entry string) {
	m.gameLog = append(m.gameLog, entry)
	if len(m.gameLog) > logSize {
		m.gameLog = m.gameLog[len(m.gameLog)-logSize:]
	}
	m.logViewport.SetContent(joinLines(m.gameLog))
	m.logViewport.GotoBottom()
}

// describeError turns a transport error into a line for the player
func describeError(err error) string {
	switch {
	case errors.Is(err, blackjack.ErrInsufficientFunds):
		return "Not enough in the bankroll for that bet"
	case errors.Is(err, blackjack.ErrInvalidBet):
		return "Bets must be positive"
	case errors.Is(err, context.DeadlineExceeded):
		return "The dealer took too long to answer"
	case errors.Is(err, client.ErrClosed):
		return "Lost connection to the table"
	default:
		return err.Error()
	}
}

func outcomeText(o blackjack.Outcome) string {
	switch o {
	case blackjack.OutcomeWin:
		return "You Win!"
	case blackjack.OutcomeLose:
		return "Dealer Wins"
	case blackjack.OutcomePush:
		return "It's a Push"
	default:
		return ""
	}
}
