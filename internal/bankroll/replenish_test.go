package bankroll

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{})
}

func newTestReplenisher(t *testing.T) (*Replenisher, *quartz.Mock, chan int) {
	t.Helper()

	clock := quartz.NewMock(t)
	fired := make(chan int, 4)
	r := NewReplenisher(testLogger(), func(bankroll int) { fired <- bankroll },
		WithClock(clock),
		WithDelay(3*time.Second),
		WithAmount(500),
		WithMinBet(25))
	return r, clock, fired
}

func advance(t *testing.T, clock *quartz.Mock, d time.Duration) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	clock.Advance(d).MustWait(ctx)
}

func TestReplenisherFiresAfterDelay(t *testing.T) {
	t.Parallel()
	r, clock, fired := newTestReplenisher(t)

	require.True(t, r.Arm(10))
	assert.True(t, r.Pending())

	advance(t, clock, 2*time.Second)
	assert.Empty(t, fired)

	advance(t, clock, time.Second)
	select {
	case bankroll := <-fired:
		assert.Equal(t, 500, bankroll)
	case <-time.After(5 * time.Second):
		t.Fatal("replenish callback did not run")
	}
	assert.False(t, r.Pending())
}

func TestReplenisherIgnoresCoveredBankroll(t *testing.T) {
	t.Parallel()
	r, clock, fired := newTestReplenisher(t)

	assert.False(t, r.Arm(25))
	assert.False(t, r.Pending())

	advance(t, clock, 3*time.Second)
	assert.Empty(t, fired)
}

func TestReplenisherArmTwiceKeepsOneTimer(t *testing.T) {
	t.Parallel()
	r, clock, fired := newTestReplenisher(t)

	require.True(t, r.Arm(0))
	advance(t, clock, 2*time.Second)
	require.True(t, r.Arm(0))

	// The original deadline still applies
	advance(t, clock, time.Second)
	select {
	case <-fired:
	case <-time.After(5 * time.Second):
		t.Fatal("replenish callback did not run")
	}
	assert.Empty(t, fired)
}

func TestReplenisherStop(t *testing.T) {
	t.Parallel()
	r, clock, fired := newTestReplenisher(t)

	require.True(t, r.Arm(0))
	r.Stop()
	assert.False(t, r.Pending())

	advance(t, clock, 3*time.Second)
	assert.Empty(t, fired)

	// A recovered bankroll also cancels
	require.True(t, r.Arm(0))
	assert.False(t, r.Arm(100))
	advance(t, clock, 3*time.Second)
	assert.Empty(t, fired)
}

func TestReplenisherDefaults(t *testing.T) {
	t.Parallel()

	r := NewReplenisher(testLogger(), nil)
	assert.Equal(t, DefaultReplenishDelay, r.Delay())
	assert.Equal(t, 1000, r.amount)
	assert.Equal(t, 50, r.minBet)
}
