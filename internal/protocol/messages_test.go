package protocol

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/blackjack/internal/blackjack"
	"github.com/lox/blackjack/internal/randutil"
)

func TestRequestJSON(t *testing.T) {
	var req Request
	require.NoError(t, json.Unmarshal([]byte(`{"action":"deal","state":null,"bet":100}`), &req))

	assert.Equal(t, "deal", req.Action)
	assert.Nil(t, req.State)
	require.NotNil(t, req.Bet)
	assert.Equal(t, 100, *req.Bet)

	action, err := req.ParsedAction()
	require.NoError(t, err)
	assert.Equal(t, blackjack.ActionDeal, action)
}

func TestRequestUnknownActionDecodes(t *testing.T) {
	var req Request
	require.NoError(t, json.Unmarshal([]byte(`{"action":"split"}`), &req))

	_, err := req.ParsedAction()
	assert.True(t, errors.Is(err, blackjack.ErrInvalidAction))
}

func TestRequestCarriesState(t *testing.T) {
	state, err := blackjack.NewEngine(randutil.New(1)).Deal(50, 1000)
	require.NoError(t, err)

	data, err := json.Marshal(NewRequest(blackjack.ActionHit, &state, nil))
	require.NoError(t, err)
	assert.NotContains(t, string(data), `"bet"`)

	var req Request
	require.NoError(t, json.Unmarshal(data, &req))
	require.NotNil(t, req.State)
	assert.Equal(t, state, *req.State)
	assert.Equal(t, "hit", req.Action)
}

func TestEnvelope(t *testing.T) {
	env, err := NewEnvelope(TypeError, "req-1", ErrorData{Code: CodeInvalidAction, Message: "nope"})
	require.NoError(t, err)

	assert.Equal(t, TypeError, env.Type)
	assert.Equal(t, "req-1", env.RequestID)
	assert.False(t, env.Timestamp.IsZero())

	var data ErrorData
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Equal(t, CodeInvalidAction, data.Code)
}

func TestCodeFor(t *testing.T) {
	tests := []struct {
		err    error
		code   string
		status int
	}{
		{fmt.Errorf("wrap: %w", blackjack.ErrInvalidAction), CodeInvalidAction, http.StatusBadRequest},
		{blackjack.ErrInsufficientFunds, CodeInsufficientFunds, http.StatusBadRequest},
		{blackjack.ErrInvalidBet, CodeInvalidBet, http.StatusBadRequest},
		{blackjack.ErrMissingState, CodeMissingState, http.StatusBadRequest},
		{blackjack.ErrInvalidState, CodeInvalidState, http.StatusBadRequest},
		{fmt.Errorf("%w: eof", ErrMalformedMessage), CodeInvalidMessage, http.StatusBadRequest},
		{blackjack.ErrDeckExhausted, CodeInternal, http.StatusInternalServerError},
		{errors.New("boom"), CodeInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.code, CodeFor(tt.err))
			assert.Equal(t, tt.status, StatusFor(CodeFor(tt.err)))
		})
	}
}

func TestErrorDataRoundTrip(t *testing.T) {
	data := NewErrorData(fmt.Errorf("bet 600 exceeds bankroll 500: %w", blackjack.ErrInsufficientFunds))
	assert.Equal(t, CodeInsufficientFunds, data.Code)
	assert.Contains(t, data.Message, "exceeds bankroll")

	err := data.Err()
	assert.True(t, errors.Is(err, blackjack.ErrInsufficientFunds))
	assert.Contains(t, err.Error(), CodeInsufficientFunds)

	internal := NewErrorData(blackjack.ErrDeckExhausted)
	assert.Equal(t, "internal server error", internal.Message)
	assert.False(t, errors.Is(internal.Err(), blackjack.ErrDeckExhausted))
}
