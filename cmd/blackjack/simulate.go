package main

import (
	"os"
	"time"

	"github.com/lox/blackjack/cmd/blackjack/shared"
	"github.com/lox/blackjack/internal/randutil"
	"github.com/lox/blackjack/internal/simulator"
)

// SimulateCmd plays rounds with a built-in bot and prints the results
type SimulateCmd struct {
	Rounds  int           `short:"n" default:"10000" help:"Number of rounds to play"`
	Workers int           `short:"w" default:"4" help:"Parallel workers"`
	Bot     string        `short:"b" default:"basic" help:"Bot strategy to play"`
	Bet     int           `default:"50" help:"Bet placed every round"`
	Seed    *int64        `help:"Deterministic seed (optional)"`
	Timeout time.Duration `help:"Abort the simulation after this long (optional)"`
	Debug   bool          `help:"Enable debug logging"`
}

func (c *SimulateCmd) Run() error {
	level := "info"
	if c.Debug {
		level = "debug"
	}
	logger := shared.SetupLogger(level)

	seed := randutil.Seed(c.Seed)
	logger.Info("Starting simulation",
		"rounds", c.Rounds,
		"workers", c.Workers,
		"bot", c.Bot,
		"bet", c.Bet,
		"seed", seed)

	ctx := shared.SetupSignalHandlerWithLogger(logger)

	start := time.Now()
	stats, err := simulator.New(simulator.Config{
		Rounds:  c.Rounds,
		Workers: c.Workers,
		Bot:     c.Bot,
		Seed:    seed,
		Bet:     c.Bet,
		Timeout: c.Timeout,
		Logger:  logger,
	}).Run(ctx)
	if err != nil {
		return err
	}

	simulator.PrintSummary(os.Stdout, stats, c.Bot, c.Bet)
	logger.Info("Simulation complete", "duration", time.Since(start).Round(time.Millisecond))
	return nil
}
