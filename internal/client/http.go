package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/lox/blackjack/internal/blackjack"
	"github.com/lox/blackjack/internal/protocol"
)

// Option configures a remote transport
type Option func(*remoteOptions)

type remoteOptions struct {
	requestTimeout time.Duration
	httpClient     *http.Client
}

// WithRequestTimeout bounds each request
func WithRequestTimeout(d time.Duration) Option {
	return func(o *remoteOptions) {
		if d > 0 {
			o.requestTimeout = d
		}
	}
}

// WithHTTPClient sets the client used by the HTTP transport
func WithHTTPClient(c *http.Client) Option {
	return func(o *remoteOptions) {
		o.httpClient = c
	}
}

func newRemoteOptions(opts []Option) remoteOptions {
	o := remoteOptions{
		requestTimeout: 30 * time.Second,
		httpClient:     http.DefaultClient,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// HTTP posts each request to the server's /api/game endpoint
type HTTP struct {
	endpoint string
	options  remoteOptions
	logger   *log.Logger
}

// NewHTTP creates an HTTP transport for the server at serverURL
func NewHTTP(serverURL string, logger *log.Logger, opts ...Option) *HTTP {
	return &HTTP{
		endpoint: strings.TrimRight(serverURL, "/") + "/api/game",
		options:  newRemoteOptions(opts),
		logger:   logger.WithPrefix("http"),
	}
}

// Send posts req and decodes the reply
func (h *HTTP) Send(ctx context.Context, req protocol.Request) (blackjack.GameState, error) {
	ctx, cancel := context.WithTimeout(ctx, h.options.requestTimeout)
	defer cancel()

	body, err := json.Marshal(req)
	if err != nil {
		return blackjack.GameState{}, fmt.Errorf("failed to encode request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, h.endpoint, bytes.NewReader(body))
	if err != nil {
		return blackjack.GameState{}, err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := h.options.httpClient.Do(httpReq)
	if err != nil {
		return blackjack.GameState{}, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return blackjack.GameState{}, fmt.Errorf("failed to read response: %w", err)
	}

	h.logger.Debug("Received response", "action", req.Action, "status", resp.StatusCode)

	if resp.StatusCode != http.StatusOK {
		var errResp protocol.ErrorResponse
		if err := json.Unmarshal(data, &errResp); err != nil || errResp.Error.Code == "" {
			return blackjack.GameState{}, fmt.Errorf("unexpected status %d", resp.StatusCode)
		}
		return blackjack.GameState{}, errResp.Error.Err()
	}

	var state blackjack.GameState
	if err := json.Unmarshal(data, &state); err != nil {
		return blackjack.GameState{}, fmt.Errorf("failed to decode state: %w", err)
	}
	return state, nil
}

// Close is a no-op; the HTTP transport holds no connection
func (h *HTTP) Close() error {
	return nil
}
