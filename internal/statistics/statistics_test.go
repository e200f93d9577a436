package statistics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/blackjack/internal/blackjack"
	"github.com/lox/blackjack/internal/deck"
)

func TestStatisticsEmpty(t *testing.T) {
	t.Parallel()
	stats := &Statistics{}

	assert.Zero(t, stats.Mean())
	assert.Zero(t, stats.Variance())
	assert.Zero(t, stats.StdDev())
	assert.Zero(t, stats.StdError())
	assert.Zero(t, stats.Median())
	assert.Zero(t, stats.WinRate())
	assert.Zero(t, stats.ReturnOnWager())
	assert.Error(t, stats.Validate())
}

func TestStatisticsAdd(t *testing.T) {
	t.Parallel()
	stats := &Statistics{}

	results := []RoundResult{
		{Net: 50, Wagered: 50, Outcome: blackjack.OutcomeWin, DealerBusted: true},
		{Net: -100, Wagered: 100, Outcome: blackjack.OutcomeLose, Doubled: true},
		{Net: 0, Wagered: 50, Outcome: blackjack.OutcomePush},
		{Net: 100, Wagered: 100, Outcome: blackjack.OutcomeWin, Doubled: true},
		{Net: -50, Wagered: 50, Outcome: blackjack.OutcomeLose, PlayerBusted: true},
		{Net: 50, Wagered: 50, Outcome: blackjack.OutcomeWin, PlayerBlackjack: true},
	}
	for _, r := range results {
		stats.Add(r)
	}

	require.NoError(t, stats.Validate())
	assert.Equal(t, 6, stats.Rounds)
	assert.Equal(t, 3, stats.Wins)
	assert.Equal(t, 2, stats.Losses)
	assert.Equal(t, 1, stats.Pushes)
	assert.Equal(t, 2, stats.Doubles)
	assert.Equal(t, 1, stats.Blackjacks)
	assert.Equal(t, 1, stats.PlayerBusts)
	assert.Equal(t, 1, stats.DealerBusts)
	assert.Equal(t, 400, stats.Wagered)

	assert.InDelta(t, 50.0/6.0, stats.Mean(), 1e-9)
	assert.InDelta(t, 0.0, stats.DoubledNet, 1e-9)
	assert.InDelta(t, 50.0, stats.StandardNet, 1e-9)
	assert.InDelta(t, 0.5, stats.WinRate(), 1e-9)
	assert.InDelta(t, 1.0/3.0, stats.LossRate(), 1e-9)
	assert.InDelta(t, 1.0/6.0, stats.PushRate(), 1e-9)
	assert.InDelta(t, 50.0/400.0, stats.ReturnOnWager(), 1e-9)
	assert.InDelta(t, 25.0, stats.Median(), 1e-9)

	// Sample variance computed directly
	mean := stats.Mean()
	var sq float64
	for _, v := range stats.Values {
		sq += (v - mean) * (v - mean)
	}
	assert.InDelta(t, sq/5, stats.Variance(), 1e-6)
	assert.InDelta(t, math.Sqrt(sq/5)/math.Sqrt(6), stats.StdError(), 1e-6)

	low, high := stats.ConfidenceInterval95()
	assert.Less(t, low, mean)
	assert.Greater(t, high, mean)
}

func TestStatisticsPercentile(t *testing.T) {
	t.Parallel()
	stats := &Statistics{}
	for _, net := range []int{-100, -50, 0, 50, 100} {
		stats.Add(RoundResult{Net: net, Outcome: blackjack.OutcomePush})
	}

	assert.InDelta(t, -100.0, stats.Percentile(0), 1e-9)
	assert.InDelta(t, -75.0, stats.Percentile(0.125), 1e-9)
	assert.InDelta(t, 0.0, stats.Median(), 1e-9)
	assert.InDelta(t, 100.0, stats.Percentile(1), 1e-9)
}

func TestStatisticsMerge(t *testing.T) {
	t.Parallel()

	a, b, all := &Statistics{}, &Statistics{}, &Statistics{}
	results := []RoundResult{
		{Net: 50, Wagered: 50, Outcome: blackjack.OutcomeWin},
		{Net: -100, Wagered: 100, Outcome: blackjack.OutcomeLose, Doubled: true},
		{Net: 0, Wagered: 50, Outcome: blackjack.OutcomePush},
	}
	for i, r := range results {
		all.Add(r)
		if i%2 == 0 {
			a.Add(r)
		} else {
			b.Add(r)
		}
	}

	a.Merge(b)
	require.NoError(t, a.Validate())
	assert.Equal(t, all.Rounds, a.Rounds)
	assert.Equal(t, all.Wins, a.Wins)
	assert.Equal(t, all.Doubles, a.Doubles)
	assert.InDelta(t, all.Mean(), a.Mean(), 1e-9)
	assert.InDelta(t, all.Variance(), a.Variance(), 1e-9)
}

func TestStatisticsValidateCatchesMismatch(t *testing.T) {
	t.Parallel()
	stats := &Statistics{}
	stats.Add(RoundResult{Net: 50, Outcome: blackjack.OutcomeWin})

	stats.AllNet += 10
	assert.Error(t, stats.Validate())
}

func TestResultFromState(t *testing.T) {
	t.Parallel()

	final := blackjack.GameState{
		PlayerHand: blackjack.NewHand(deck.MustParseCards("AS KH")...),
		DealerHand: blackjack.NewHand(deck.MustParseCards("10C 6D 9H")...),
		Status:     blackjack.StatusGameOver,
		Outcome:    blackjack.OutcomeWin,
		Bankroll:   1050,
		CurrentBet: 50,
	}

	r := ResultFromState(final, 1000, 9)
	assert.Equal(t, 50, r.Net)
	assert.Equal(t, 50, r.Wagered)
	assert.True(t, r.PlayerBlackjack)
	assert.False(t, r.PlayerBusted)
	assert.True(t, r.DealerBusted)
	assert.False(t, r.Doubled)
	assert.Equal(t, int64(9), r.Seed)
}
