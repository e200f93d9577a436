package client

import (
	"fmt"
	"os"
	"time"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/lox/blackjack/internal/bankroll"
	"github.com/lox/blackjack/internal/blackjack"
)

// Transport modes
const (
	ModeLocal     = "local"
	ModeHTTP      = "http"
	ModeWebSocket = "websocket"
)

// ClientConfig represents the complete client configuration
type ClientConfig struct {
	Server ServerConnection `hcl:"server,block"`
	Player PlayerSettings   `hcl:"player,block"`
	UI     UISettings       `hcl:"ui,block"`
}

// ServerConnection selects where actions are applied
type ServerConnection struct {
	Mode           string `hcl:"mode,optional"`
	URL            string `hcl:"url,optional"`
	ConnectTimeout int    `hcl:"connect_timeout,optional"` // seconds
	RequestTimeout int    `hcl:"request_timeout,optional"` // seconds
}

// PlayerSettings contains player-specific settings
type PlayerSettings struct {
	BankrollFile    string `hcl:"bankroll_file,optional"`
	Persist         *bool  `hcl:"persist,optional"`
	ReplenishDelay  int    `hcl:"replenish_delay,optional"` // seconds
	ReplenishAmount int    `hcl:"replenish_amount,optional"`
}

// UISettings contains user interface settings
type UISettings struct {
	LogLevel  string `hcl:"log_level,optional"`
	LogFile   string `hcl:"log_file,optional"`
	Theme     string `hcl:"theme,optional"`
	HintBot   string `hcl:"hint_bot,optional"`
	ShowHints bool   `hcl:"show_hints,optional"` // enables the advice key
}

// DefaultClientConfig returns default client configuration
func DefaultClientConfig() *ClientConfig {
	persist := true
	return &ClientConfig{
		Server: ServerConnection{
			Mode:           ModeLocal,
			URL:            "http://localhost:8080",
			ConnectTimeout: 10,
			RequestTimeout: 30,
		},
		Player: PlayerSettings{
			Persist:         &persist,
			ReplenishDelay:  int(bankroll.DefaultReplenishDelay / time.Second),
			ReplenishAmount: blackjack.DefaultInitialBankroll,
		},
		UI: UISettings{
			LogLevel: "warn",
			LogFile:  "blackjack.log",
			Theme:    "default",
			HintBot:  "basic",
		},
	}
}

// LoadClientConfig loads client configuration from HCL file
func LoadClientConfig(filename string) (*ClientConfig, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return DefaultClientConfig(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var config ClientConfig
	diags = gohcl.DecodeBody(file.Body, nil, &config)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	// Apply defaults for missing values
	defaults := DefaultClientConfig()

	if config.Server.Mode == "" {
		config.Server.Mode = defaults.Server.Mode
	}
	if config.Server.URL == "" {
		config.Server.URL = defaults.Server.URL
	}
	if config.Server.ConnectTimeout == 0 {
		config.Server.ConnectTimeout = defaults.Server.ConnectTimeout
	}
	if config.Server.RequestTimeout == 0 {
		config.Server.RequestTimeout = defaults.Server.RequestTimeout
	}

	if config.Player.Persist == nil {
		config.Player.Persist = defaults.Player.Persist
	}
	if config.Player.ReplenishDelay == 0 {
		config.Player.ReplenishDelay = defaults.Player.ReplenishDelay
	}
	if config.Player.ReplenishAmount == 0 {
		config.Player.ReplenishAmount = defaults.Player.ReplenishAmount
	}

	if config.UI.LogLevel == "" {
		config.UI.LogLevel = defaults.UI.LogLevel
	}
	if config.UI.LogFile == "" {
		config.UI.LogFile = defaults.UI.LogFile
	}
	if config.UI.Theme == "" {
		config.UI.Theme = defaults.UI.Theme
	}
	if config.UI.HintBot == "" {
		config.UI.HintBot = defaults.UI.HintBot
	}

	return &config, nil
}

// Validate validates the client configuration
func (c *ClientConfig) Validate() error {
	switch c.Server.Mode {
	case ModeLocal:
	case ModeHTTP, ModeWebSocket:
		if c.Server.URL == "" {
			return fmt.Errorf("server URL is required in %s mode", c.Server.Mode)
		}
	default:
		return fmt.Errorf("invalid mode: %s", c.Server.Mode)
	}

	if c.Server.ConnectTimeout <= 0 {
		return fmt.Errorf("connect timeout must be positive")
	}
	if c.Server.RequestTimeout <= 0 {
		return fmt.Errorf("request timeout must be positive")
	}

	if c.Player.ReplenishDelay < 0 {
		return fmt.Errorf("replenish delay cannot be negative")
	}
	if c.Player.ReplenishAmount <= 0 {
		return fmt.Errorf("replenish amount must be positive")
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[c.UI.LogLevel] {
		return fmt.Errorf("invalid log level: %s", c.UI.LogLevel)
	}

	validThemes := map[string]bool{
		"default": true,
		"dark":    true,
		"light":   true,
	}
	if !validThemes[c.UI.Theme] {
		return fmt.Errorf("invalid theme: %s", c.UI.Theme)
	}

	return nil
}

// ShouldPersist reports whether the bankroll is saved between sessions
func (c *ClientConfig) ShouldPersist() bool {
	return c.Player.Persist == nil || *c.Player.Persist
}

// GetReplenishDelay returns the replenish delay as a duration
func (c *ClientConfig) GetReplenishDelay() time.Duration {
	return time.Duration(c.Player.ReplenishDelay) * time.Second
}

// GetRequestTimeout returns the per-request timeout
func (c *ClientConfig) GetRequestTimeout() time.Duration {
	return time.Duration(c.Server.RequestTimeout) * time.Second
}

// GetConnectTimeout returns the dial timeout
func (c *ClientConfig) GetConnectTimeout() time.Duration {
	return time.Duration(c.Server.ConnectTimeout) * time.Second
}
