package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/lox/blackjack/cmd/blackjack/shared"
	"github.com/lox/blackjack/internal/randutil"
	"github.com/lox/blackjack/internal/server"
	"golang.org/x/sync/errgroup"
)

// ServerCmd serves the stateless rules engine over HTTP and WebSocket
type ServerCmd struct {
	Config          string `short:"c" default:"server.hcl" env:"BLACKJACK_SERVER_CONFIG" help:"Path to HCL configuration file"`
	Address         string `env:"BLACKJACK_ADDRESS" help:"Listen address (overrides config)"`
	Port            int    `short:"p" env:"BLACKJACK_PORT" help:"Listen port (overrides config)"`
	LogLevel        string `short:"l" env:"BLACKJACK_LOG_LEVEL" enum:",debug,info,warn,error" default:"" help:"Log level (overrides config)"`
	Debug           bool   `help:"Enable debug logging"`
	InitialBankroll int    `env:"BLACKJACK_INITIAL_BANKROLL" help:"Bankroll for a fresh deal (overrides config)"`
	BaseBet         int    `env:"BLACKJACK_BASE_BET" help:"Default bet (overrides config)"`
	Seed            *int64 `env:"BLACKJACK_SEED" help:"Deterministic shuffle seed (optional)"`
}

func (c *ServerCmd) Run() error {
	cfg, err := server.LoadServerConfig(c.Config)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	c.applyOverrides(cfg)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logger := shared.SetupLogger(cfg.Server.LogLevel)

	seed := randutil.Seed(cfg.Game.Seed)
	if cfg.Game.Seed != nil {
		logger.Info("Using deterministic seed", "seed", seed)
	} else {
		logger.Info("Using random seed", "seed", seed)
	}

	engine := server.NewEngineFromConfig(cfg.Game, randutil.NewLocked(seed))
	gs := server.NewGameService(engine, logger)
	s := server.NewServer(cfg.GetServerAddress(), gs, logger,
		server.WithMaxBodyBytes(cfg.Server.MaxBodyBytes))

	logger.Info("Starting blackjack server",
		"address", cfg.GetServerAddress(),
		"initial_bankroll", cfg.Game.InitialBankroll,
		"base_bet", cfg.Game.BaseBet,
		"config", c.Config)

	ctx := shared.SetupSignalHandlerWithLogger(logger)
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := s.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		logger.Info("Shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(),
			time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
		defer cancel()
		return s.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

func (c *ServerCmd) applyOverrides(cfg *server.ServerConfig) {
	if c.Address != "" {
		cfg.Server.Address = c.Address
	}
	if c.Port != 0 {
		cfg.Server.Port = c.Port
	}
	if c.LogLevel != "" {
		cfg.Server.LogLevel = c.LogLevel
	}
	if c.Debug {
		cfg.Server.LogLevel = "debug"
	}
	if c.InitialBankroll != 0 {
		cfg.Game.InitialBankroll = c.InitialBankroll
	}
	if c.BaseBet != 0 {
		cfg.Game.BaseBet = c.BaseBet
	}
	if c.Seed != nil {
		cfg.Game.Seed = c.Seed
	}
}
