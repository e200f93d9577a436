// Package simulator plays many headless rounds against the engine with one of
// the bots and summarises the results.
package simulator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/lox/blackjack/internal/blackjack"
	"github.com/lox/blackjack/internal/bot"
	"github.com/lox/blackjack/internal/randutil"
	"github.com/lox/blackjack/internal/statistics"
)

// maxActionsPerRound bounds a round; no legal sequence comes close
const maxActionsPerRound = 32

// ErrRoundStuck is returned when a bot keeps a round open past the limit
var ErrRoundStuck = errors.New("round did not finish")

// Config holds configuration for running simulations
type Config struct {
	Rounds  int
	Workers int
	Bot     string
	Seed    int64
	Bet     int
	Timeout time.Duration // Per simulation; zero means none
	Logger  *log.Logger
}

// Simulator runs blackjack round simulations
type Simulator struct {
	config Config
}

// New creates a new simulator with the given configuration
func New(config Config) *Simulator {
	if config.Workers <= 0 {
		config.Workers = 1
	}
	if config.Bet <= 0 {
		config.Bet = blackjack.DefaultBaseBet
	}
	if config.Bot == "" {
		config.Bot = "basic"
	}
	if config.Logger == nil {
		config.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return &Simulator{config: config}
}

// Run plays every round and returns the merged statistics. Each worker owns
// an engine seeded from Seed plus its index, and results are merged in worker
// order, so a fixed seed and worker count always give the same totals.
func (s *Simulator) Run(ctx context.Context) (*statistics.Statistics, error) {
	if s.config.Rounds <= 0 {
		return nil, fmt.Errorf("rounds must be positive, got %d", s.config.Rounds)
	}
	if _, err := bot.New(s.config.Bot, nil, s.config.Logger); err != nil {
		return nil, err
	}

	if s.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.config.Timeout)
		defer cancel()
	}

	workers := min(s.config.Workers, s.config.Rounds)
	results := make([]*statistics.Statistics, workers)

	g, ctx := errgroup.WithContext(ctx)
	for w := 0; w < workers; w++ {
		rounds := s.config.Rounds / workers
		if w < s.config.Rounds%workers {
			rounds++
		}
		seed := s.config.Seed + int64(w)

		g.Go(func() error {
			stats, err := s.runWorker(ctx, seed, rounds)
			if err != nil {
				return fmt.Errorf("worker %d (seed %d): %w", w, seed, err)
			}
			results[w] = stats
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	total := &statistics.Statistics{}
	for _, stats := range results {
		total.Merge(stats)
	}

	if err := total.Validate(); err != nil {
		return nil, fmt.Errorf("statistics validation failed: %w", err)
	}
	return total, nil
}

// runWorker plays rounds on a private engine. Every round starts from the
// initial bankroll so results measure the strategy rather than a bankroll
// trajectory.
func (s *Simulator) runWorker(ctx context.Context, seed int64, rounds int) (*statistics.Statistics, error) {
	rng := randutil.New(seed)
	engine := blackjack.NewEngine(rng, blackjack.WithBaseBet(s.config.Bet))
	agent, err := bot.New(s.config.Bot, randutil.New(seed^0x5eed), s.config.Logger)
	if err != nil {
		return nil, err
	}

	stats := &statistics.Statistics{}
	for i := 0; i < rounds; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		result, err := playRound(engine, agent, s.config.Bet, seed)
		if err != nil {
			return nil, fmt.Errorf("round %d: %w", i+1, err)
		}
		stats.Add(result)
	}

	s.config.Logger.Debug("Worker finished", "seed", seed, "rounds", rounds, "mean", stats.Mean())
	return stats, nil
}

// playRound deals one round and lets agent act until it settles
func playRound(engine *blackjack.Engine, agent bot.Agent, bet int, seed int64) (statistics.RoundResult, error) {
	bankroll := engine.InitialBankroll()

	state, err := engine.Deal(bet, bankroll)
	if err != nil {
		return statistics.RoundResult{}, err
	}

	for steps := 0; state.Status == blackjack.StatusPlaying; steps++ {
		if steps >= maxActionsPerRound {
			return statistics.RoundResult{}, ErrRoundStuck
		}

		decision := agent.MakeDecision(state, blackjack.LegalActions(state))
		state, err = engine.Apply(decision.Action, &state, nil)
		if err != nil {
			return statistics.RoundResult{}, err
		}
	}

	if !state.IsOver() {
		return statistics.RoundResult{}, fmt.Errorf("%w: left in %s", ErrRoundStuck, state.Status)
	}
	return statistics.ResultFromState(state, bankroll, seed), nil
}

// RunSimulation is a convenience function for running a simulation with basic parameters
func RunSimulation(ctx context.Context, rounds int, botName string, seed int64, logger *log.Logger) (*statistics.Statistics, error) {
	return New(Config{
		Rounds:  rounds,
		Workers: 1,
		Bot:     botName,
		Seed:    seed,
		Logger:  logger,
	}).Run(ctx)
}

// PrintSummary writes a summary of simulation results
func PrintSummary(w io.Writer, stats *statistics.Statistics, botName string, bet int) {
	low, high := stats.ConfidenceInterval95()

	fmt.Fprintf(w, "\n=== FINAL RESULTS for %s-bot ===\n", botName)
	fmt.Fprintf(w, "Rounds played: %d (flat bet %d)\n", stats.Rounds, bet)

	fmt.Fprintf(w, "\n=== OUTCOMES ===\n")
	fmt.Fprintf(w, "Wins: %d (%.2f%%)\n", stats.Wins, stats.WinRate()*100)
	fmt.Fprintf(w, "Losses: %d (%.2f%%)\n", stats.Losses, stats.LossRate()*100)
	fmt.Fprintf(w, "Pushes: %d (%.2f%%)\n", stats.Pushes, stats.PushRate()*100)
	fmt.Fprintf(w, "Blackjacks: %d, player busts: %d, dealer busts: %d\n",
		stats.Blackjacks, stats.PlayerBusts, stats.DealerBusts)

	fmt.Fprintf(w, "\n=== STATISTICAL RESULTS ===\n")
	fmt.Fprintf(w, "Net: %.0f chips on %d wagered\n", stats.AllNet, stats.Wagered)
	fmt.Fprintf(w, "Return on wager: %.3f%%\n", stats.ReturnOnWager()*100)
	fmt.Fprintf(w, "Mean: %.4f chips/round\n", stats.Mean())
	fmt.Fprintf(w, "Std Dev: %.4f chips\n", stats.StdDev())
	fmt.Fprintf(w, "95%% CI: [%.4f, %.4f] chips/round\n", low, high)

	fmt.Fprintf(w, "\n=== DOUBLE DOWN ANALYSIS ===\n")
	fmt.Fprintf(w, "Doubled rounds: %d, net %.0f chips\n", stats.Doubles, stats.DoubledNet)
	fmt.Fprintf(w, "Standard rounds: %d, net %.0f chips\n", stats.Rounds-stats.Doubles, stats.StandardNet)
}
