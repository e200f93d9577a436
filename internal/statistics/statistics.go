// Package statistics accumulates per-round results from simulated play.
package statistics

import (
	"fmt"
	"math"
	"sort"

	"github.com/lox/blackjack/internal/blackjack"
)

// RoundResult is the outcome of a single settled round
type RoundResult struct {
	Net             int               // Chips won (positive) or lost (negative)
	Wagered         int               // Final bet, doubled if the player doubled
	Outcome         blackjack.Outcome // win, lose or push
	Doubled         bool
	PlayerBlackjack bool // Two-card 21 on the deal
	PlayerBusted    bool
	DealerBusted    bool
	Seed            int64 // RNG seed of the worker that played the round
}

// ResultFromState builds a RoundResult from a settled state and the bankroll
// the player had before the deal
func ResultFromState(final blackjack.GameState, bankrollBefore int, seed int64) RoundResult {
	return RoundResult{
		Net:             final.Bankroll - bankrollBefore,
		Wagered:         final.CurrentBet,
		Outcome:         final.Outcome,
		Doubled:         final.IsDoubled,
		PlayerBlackjack: len(final.PlayerHand.Cards) == 2 && final.PlayerHand.IsBlackjack(),
		PlayerBusted:    final.PlayerHand.IsBusted(),
		DealerBusted:    final.DealerHand.IsBusted(),
		Seed:            seed,
	}
}

// Statistics tracks running totals over many rounds
type Statistics struct {
	Rounds  int
	SumNet  float64
	SumNet2 float64   // Sum of squares for variance calculation
	Values  []float64 // Every net result, for median and percentiles

	Wins   int
	Losses int
	Pushes int

	Doubles     int
	DoubledNet  float64 // Net from doubled rounds
	StandardNet float64 // Net from rounds that were not doubled
	AllNet      float64 // Total net for the ledger check

	Blackjacks  int
	PlayerBusts int
	DealerBusts int
	Wagered     int
}

// Add incorporates a round into the statistics
func (s *Statistics) Add(result RoundResult) {
	net := float64(result.Net)
	s.Rounds++
	s.SumNet += net
	s.SumNet2 += net * net
	s.Values = append(s.Values, net)

	switch result.Outcome {
	case blackjack.OutcomeWin:
		s.Wins++
	case blackjack.OutcomeLose:
		s.Losses++
	case blackjack.OutcomePush:
		s.Pushes++
	}

	if result.Doubled {
		s.Doubles++
		s.DoubledNet += net
	} else {
		s.StandardNet += net
	}
	s.AllNet += net

	if result.PlayerBlackjack {
		s.Blackjacks++
	}
	if result.PlayerBusted {
		s.PlayerBusts++
	}
	if result.DealerBusted {
		s.DealerBusts++
	}
	s.Wagered += result.Wagered
}

// Merge folds other into s
func (s *Statistics) Merge(other *Statistics) {
	s.Rounds += other.Rounds
	s.SumNet += other.SumNet
	s.SumNet2 += other.SumNet2
	s.Values = append(s.Values, other.Values...)
	s.Wins += other.Wins
	s.Losses += other.Losses
	s.Pushes += other.Pushes
	s.Doubles += other.Doubles
	s.DoubledNet += other.DoubledNet
	s.StandardNet += other.StandardNet
	s.AllNet += other.AllNet
	s.Blackjacks += other.Blackjacks
	s.PlayerBusts += other.PlayerBusts
	s.DealerBusts += other.DealerBusts
	s.Wagered += other.Wagered
}

// Mean returns the mean net result per round
func (s *Statistics) Mean() float64 {
	if s.Rounds == 0 {
		return 0
	}
	return s.SumNet / float64(s.Rounds)
}

// Variance returns the sample variance of the net results
func (s *Statistics) Variance() float64 {
	if s.Rounds < 2 {
		return 0
	}
	mean := s.Mean()
	return (s.SumNet2 - float64(s.Rounds)*mean*mean) / float64(s.Rounds-1)
}

// StdDev returns the sample standard deviation
func (s *Statistics) StdDev() float64 {
	return math.Sqrt(s.Variance())
}

// StdError returns the standard error of the mean
func (s *Statistics) StdError() float64 {
	if s.Rounds == 0 {
		return 0
	}
	return s.StdDev() / math.Sqrt(float64(s.Rounds))
}

// ConfidenceInterval95 returns the 95% confidence interval for the mean
func (s *Statistics) ConfidenceInterval95() (float64, float64) {
	mean := s.Mean()
	margin := 1.96 * s.StdError()
	return mean - margin, mean + margin
}

// WinRate returns the fraction of rounds won
func (s *Statistics) WinRate() float64 {
	return s.rate(s.Wins)
}

// LossRate returns the fraction of rounds lost
func (s *Statistics) LossRate() float64 {
	return s.rate(s.Losses)
}

// PushRate returns the fraction of rounds pushed
func (s *Statistics) PushRate() float64 {
	return s.rate(s.Pushes)
}

func (s *Statistics) rate(n int) float64 {
	if s.Rounds == 0 {
		return 0
	}
	return float64(n) / float64(s.Rounds)
}

// ReturnOnWager returns total net divided by total chips wagered. A negative
// value is the house edge against the simulated strategy.
func (s *Statistics) ReturnOnWager() float64 {
	if s.Wagered == 0 {
		return 0
	}
	return s.AllNet / float64(s.Wagered)
}

// Median returns the median net result
func (s *Statistics) Median() float64 {
	return s.Percentile(0.5)
}

// Percentile returns the value at the given percentile (0.0 to 1.0)
func (s *Statistics) Percentile(p float64) float64 {
	if len(s.Values) == 0 {
		return 0
	}
	sorted := make([]float64, len(s.Values))
	copy(sorted, s.Values)
	sort.Float64s(sorted)

	index := p * float64(len(sorted)-1)
	lower := int(index)
	upper := lower + 1
	if upper >= len(sorted) {
		return sorted[len(sorted)-1]
	}

	weight := index - float64(lower)
	return sorted[lower]*(1-weight) + sorted[upper]*weight
}

// IsLedgerBalanced checks that doubled and standard rounds add up to the total
func (s *Statistics) IsLedgerBalanced() bool {
	return math.Abs(s.AllNet-s.DoubledNet-s.StandardNet) <= 1e-6
}

// Validate checks the internal consistency of the totals
func (s *Statistics) Validate() error {
	if s.Rounds <= 0 {
		return fmt.Errorf("invalid round count: %d", s.Rounds)
	}
	if !s.IsLedgerBalanced() {
		return fmt.Errorf("ledger mismatch: all=%.2f doubled=%.2f standard=%.2f",
			s.AllNet, s.DoubledNet, s.StandardNet)
	}
	if len(s.Values) != s.Rounds {
		return fmt.Errorf("values length (%d) does not match round count (%d)", len(s.Values), s.Rounds)
	}
	if settled := s.Wins + s.Losses + s.Pushes; settled != s.Rounds {
		return fmt.Errorf("outcomes (%d) do not match round count (%d)", settled, s.Rounds)
	}
	if s.Doubles > s.Rounds {
		return fmt.Errorf("doubles (%d) exceed round count (%d)", s.Doubles, s.Rounds)
	}
	return nil
}
