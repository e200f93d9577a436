package main

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/blackjack/internal/bankroll"
	"github.com/lox/blackjack/internal/client"
	"github.com/lox/blackjack/internal/server"
)

func TestServerCmdOverrides(t *testing.T) {
	seed := int64(99)
	cmd := &ServerCmd{
		Address:         "0.0.0.0",
		Port:            9090,
		Debug:           true,
		InitialBankroll: 2000,
		BaseBet:         100,
		Seed:            &seed,
	}

	cfg := server.DefaultServerConfig()
	cmd.applyOverrides(cfg)

	assert.Equal(t, "0.0.0.0:9090", cfg.GetServerAddress())
	assert.Equal(t, "debug", cfg.Server.LogLevel)
	assert.Equal(t, 2000, cfg.Game.InitialBankroll)
	assert.Equal(t, 100, cfg.Game.BaseBet)
	require.NotNil(t, cfg.Game.Seed)
	assert.Equal(t, seed, *cfg.Game.Seed)
	require.NoError(t, cfg.Validate())
}

func TestServerCmdKeepsConfigWithoutFlags(t *testing.T) {
	cfg := server.DefaultServerConfig()
	(&ServerCmd{}).applyOverrides(cfg)
	assert.Equal(t, server.DefaultServerConfig(), cfg)
}

func TestPlayCmdOverrides(t *testing.T) {
	cmd := &PlayCmd{
		Mode:      client.ModeWebSocket,
		Server:    "http://example.test:8080",
		NoPersist: true,
		Theme:     "dark",
		Hints:     true,
		LogLevel:  "debug",
		LogFile:   "table.log",
	}

	cfg := client.DefaultClientConfig()
	cmd.applyOverrides(cfg)

	assert.Equal(t, client.ModeWebSocket, cfg.Server.Mode)
	assert.Equal(t, "http://example.test:8080", cfg.Server.URL)
	assert.False(t, cfg.ShouldPersist())
	assert.Equal(t, "dark", cfg.UI.Theme)
	assert.True(t, cfg.UI.ShowHints)
	assert.Equal(t, "debug", cfg.UI.LogLevel)
	assert.Equal(t, "table.log", cfg.UI.LogFile)
	require.NoError(t, cfg.Validate())
}

func TestPlayCmdOpenStore(t *testing.T) {
	t.Run("memory when persistence is off", func(t *testing.T) {
		cmd := &PlayCmd{NoPersist: true}
		cfg := client.DefaultClientConfig()
		cmd.applyOverrides(cfg)

		store, err := cmd.openStore(cfg)
		require.NoError(t, err)
		assert.IsType(t, &bankroll.MemoryStore{}, store)
	})

	t.Run("file store at the configured path", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bankroll.json")
		cmd := &PlayCmd{BankrollFile: path}
		cfg := client.DefaultClientConfig()
		cmd.applyOverrides(cfg)

		store, err := cmd.openStore(cfg)
		require.NoError(t, err)
		fs, ok := store.(*bankroll.FileStore)
		require.True(t, ok)
		assert.Equal(t, path, fs.Path())
	})
}
