package main

import (
	"fmt"

	"github.com/lox/blackjack/cmd/blackjack/shared"
	"github.com/lox/blackjack/internal/bankroll"
	"github.com/lox/blackjack/internal/blackjack"
	"github.com/lox/blackjack/internal/bot"
	"github.com/lox/blackjack/internal/client"
	"github.com/lox/blackjack/internal/randutil"
	"github.com/lox/blackjack/internal/tui"
)

// PlayCmd runs the interactive table
type PlayCmd struct {
	Config       string `short:"c" default:"client.hcl" env:"BLACKJACK_CLIENT_CONFIG" help:"Path to HCL configuration file"`
	Mode         string `short:"m" enum:",local,http,websocket" default:"" help:"Engine transport: local, http or websocket (overrides config)"`
	Server       string `short:"s" env:"BLACKJACK_SERVER_URL" help:"Server URL to connect to (overrides config)"`
	BankrollFile string `long:"bankroll-file" env:"BLACKJACK_BANKROLL_FILE" help:"Bankroll save file (overrides config)"`
	NoPersist    bool   `long:"no-persist" help:"Do not load or save the bankroll"`
	Theme        string `enum:",default,dark,light" default:"" help:"Colour theme (overrides config)"`
	Hints        bool   `help:"Enable the advice key (overrides config)"`
	LogLevel     string `short:"l" help:"Log level (overrides config)"`
	LogFile      string `long:"log-file" help:"Log file path (overrides config)"`
	Seed         *int64 `help:"Deterministic shuffle seed for local mode (optional)"`
}

func (c *PlayCmd) Run() error {
	cfg, err := client.LoadClientConfig(c.Config)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	c.applyOverrides(cfg)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logger, closeLog, err := shared.SetupFileLogger(cfg.UI.LogFile, cfg.UI.LogLevel)
	if err != nil {
		return err
	}
	defer func() { _ = closeLog() }()

	store, err := c.openStore(cfg)
	if err != nil {
		return err
	}

	seed := randutil.Seed(c.Seed)
	logger.Info("Starting blackjack table",
		"mode", cfg.Server.Mode,
		"server", cfg.Server.URL,
		"seed", seed,
		"config", c.Config)

	ctx := shared.SetupSignalHandlerWithLogger(logger)

	var engine *blackjack.Engine
	if cfg.Server.Mode == client.ModeLocal {
		engine = blackjack.NewEngine(randutil.NewLocked(seed))
	}
	transport, err := client.New(ctx, cfg, engine, logger)
	if err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	defer func() { _ = transport.Close() }()

	opts := []tui.Option{
		tui.WithTheme(cfg.UI.Theme),
		tui.WithReplenishOptions(
			bankroll.WithDelay(cfg.GetReplenishDelay()),
			bankroll.WithAmount(cfg.Player.ReplenishAmount),
		),
	}
	if cfg.UI.ShowHints {
		advisor, err := bot.New(cfg.UI.HintBot, randutil.New(seed), logger)
		if err != nil {
			return fmt.Errorf("hint bot: %w", err)
		}
		opts = append(opts, tui.WithAdvisor(advisor))
	}

	model, err := tui.NewModel(ctx, transport, store, logger, opts...)
	if err != nil {
		return err
	}
	return tui.Run(model)
}

func (c *PlayCmd) applyOverrides(cfg *client.ClientConfig) {
	if c.Mode != "" {
		cfg.Server.Mode = c.Mode
	}
	if c.Server != "" {
		cfg.Server.URL = c.Server
	}
	if c.BankrollFile != "" {
		cfg.Player.BankrollFile = c.BankrollFile
	}
	if c.NoPersist {
		persist := false
		cfg.Player.Persist = &persist
	}
	if c.Theme != "" {
		cfg.UI.Theme = c.Theme
	}
	if c.Hints {
		cfg.UI.ShowHints = true
	}
	if c.LogLevel != "" {
		cfg.UI.LogLevel = c.LogLevel
	}
	if c.LogFile != "" {
		cfg.UI.LogFile = c.LogFile
	}
}

func (c *PlayCmd) openStore(cfg *client.ClientConfig) (bankroll.Store, error) {
	if !cfg.ShouldPersist() {
		return &bankroll.MemoryStore{}, nil
	}
	path := cfg.Player.BankrollFile
	if path == "" {
		var err error
		if path, err = bankroll.DefaultPath(); err != nil {
			return nil, fmt.Errorf("bankroll path: %w", err)
		}
	}
	return bankroll.NewFileStore(path), nil
}
