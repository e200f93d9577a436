package bankroll

import (
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/lox/blackjack/internal/blackjack"
)

// DefaultReplenishDelay is how long a broke player waits for a top-up
const DefaultReplenishDelay = 5 * time.Second

// Replenisher restores the bankroll after a delay once it drops below the
// minimum bet
type Replenisher struct {
	clock       quartz.Clock
	delay       time.Duration
	amount      int
	minBet      int
	onReplenish func(bankroll int)
	logger      *log.Logger

	mu    sync.Mutex
	timer *quartz.Timer
	armed int // generation of the pending timer
}

// ReplenishOption configures a Replenisher
type ReplenishOption func(*Replenisher)

// WithClock sets the clock used for the delay
func WithClock(clock quartz.Clock) ReplenishOption {
	return func(r *Replenisher) {
		r.clock = clock
	}
}

// WithDelay sets how long to wait before replenishing
func WithDelay(d time.Duration) ReplenishOption {
	return func(r *Replenisher) {
		if d >= 0 {
			r.delay = d
		}
	}
}

// WithAmount sets the bankroll restored after the delay
func WithAmount(amount int) ReplenishOption {
	return func(r *Replenisher) {
		if amount > 0 {
			r.amount = amount
		}
	}
}

// WithMinBet sets the bankroll below which the timer is armed
func WithMinBet(bet int) ReplenishOption {
	return func(r *Replenisher) {
		if bet > 0 {
			r.minBet = bet
		}
	}
}

// NewReplenisher creates a replenisher that calls onReplenish with the new
// bankroll. The callback runs on the clock's goroutine.
func NewReplenisher(logger *log.Logger, onReplenish func(bankroll int), opts ...ReplenishOption) *Replenisher {
	r := &Replenisher{
		clock:       quartz.NewReal(),
		delay:       DefaultReplenishDelay,
		amount:      blackjack.DefaultInitialBankroll,
		minBet:      blackjack.DefaultBaseBet,
		onReplenish: onReplenish,
		logger:      logger.WithPrefix("bankroll"),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Delay returns the configured delay
func (r *Replenisher) Delay() time.Duration {
	return r.delay
}

// Arm starts the timer if bankroll cannot cover the minimum bet and cancels
// any pending timer otherwise. It reports whether a timer is pending.
func (r *Replenisher) Arm(bankroll int) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if bankroll >= r.minBet {
		r.stopLocked()
		return false
	}
	if r.timer != nil {
		return true
	}

	r.armed++
	generation := r.armed
	r.timer = r.clock.AfterFunc(r.delay, func() { r.fire(generation) }, "replenish")
	r.logger.Info("Bankroll exhausted, replenishing soon", "bankroll", bankroll, "delay", r.delay)
	return true
}

// Pending reports whether a replenishment is scheduled
func (r *Replenisher) Pending() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.timer != nil
}

// Stop cancels any pending replenishment
func (r *Replenisher) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stopLocked()
}

func (r *Replenisher) stopLocked() {
	if r.timer != nil {
		r.timer.Stop()
		r.timer = nil
	}
	r.armed++
}

func (r *Replenisher) fire(generation int) {
	r.mu.Lock()
	if generation != r.armed || r.timer == nil {
		// Cancelled after the timer had already fired
		r.mu.Unlock()
		return
	}
	r.timer = nil
	amount := r.amount
	r.mu.Unlock()

	r.logger.Info("Bankroll replenished", "bankroll", amount)
	if r.onReplenish != nil {
		r.onReplenish(amount)
	}
}
