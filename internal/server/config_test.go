package server

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "server.hcl")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadServerConfigMissingFile(t *testing.T) {
	t.Parallel()

	cfg, err := LoadServerConfig(filepath.Join(t.TempDir(), "missing.hcl"))
	require.NoError(t, err)
	assert.Equal(t, DefaultServerConfig(), cfg)
	assert.Equal(t, "localhost:8080", cfg.GetServerAddress())
	require.NoError(t, cfg.Validate())
}

func TestLoadServerConfig(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, `
server {
  address   = "0.0.0.0"
  port      = 9090
  log_level = "debug"
}

game {
  initial_bankroll = 500
  base_bet         = 25
  seed             = 7
}
`)

	cfg, err := LoadServerConfig(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "0.0.0.0:9090", cfg.GetServerAddress())
	assert.Equal(t, "debug", cfg.Server.LogLevel)
	assert.Equal(t, 5, cfg.Server.ShutdownTimeout)
	assert.Equal(t, int64(64<<10), cfg.Server.MaxBodyBytes)
	assert.Equal(t, 500, cfg.Game.InitialBankroll)
	assert.Equal(t, 25, cfg.Game.BaseBet)
	require.NotNil(t, cfg.Game.Seed)
	assert.Equal(t, int64(7), *cfg.Game.Seed)
}

func TestLoadServerConfigParseError(t *testing.T) {
	t.Parallel()

	_, err := LoadServerConfig(writeConfig(t, `server {`))
	assert.Error(t, err)

	_, err = LoadServerConfig(writeConfig(t, `
server {
  port = "not a number"
}
game {}
`))
	assert.Error(t, err)
}

func TestServerConfigValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(*ServerConfig)
	}{
		{"port too high", func(c *ServerConfig) { c.Server.Port = 70000 }},
		{"unknown log level", func(c *ServerConfig) { c.Server.LogLevel = "chatty" }},
		{"zero shutdown timeout", func(c *ServerConfig) { c.Server.ShutdownTimeout = 0 }},
		{"negative body limit", func(c *ServerConfig) { c.Server.MaxBodyBytes = -1 }},
		{"negative bankroll", func(c *ServerConfig) { c.Game.InitialBankroll = -10 }},
		{"zero base bet", func(c *ServerConfig) { c.Game.BaseBet = 0 }},
		{"base bet above bankroll", func(c *ServerConfig) { c.Game.BaseBet = 2000 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultServerConfig()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestNewEngineFromConfig(t *testing.T) {
	t.Parallel()

	cfg := DefaultServerConfig()
	cfg.Game.InitialBankroll = 300
	cfg.Game.BaseBet = 20

	engine := NewEngineFromConfig(cfg.Game, nil)
	assert.Equal(t, 300, engine.InitialBankroll())
	assert.Equal(t, 20, engine.BaseBet())
}
