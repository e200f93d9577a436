// Package randutil builds the random sources used for shuffling.
package randutil

import (
	rand "math/rand/v2"
	"sync"
	"time"
)

const (
	goldenRatio64 = 0x9e3779b97f4a7c15
)

// New returns a *rand.Rand seeded deterministically from the provided int64.
// Both PCG words are derived from the one seed so that every call site gets
// a reproducible sequence for a given seed.
func New(seed int64) *rand.Rand {
	u := uint64(seed)
	return rand.New(rand.NewPCG(mix(u), mix(u+goldenRatio64)))
}

// Seed returns *seed when set, otherwise a time-derived seed. The chosen seed
// is returned so callers can log it for replay.
func Seed(seed *int64) int64 {
	if seed != nil {
		return *seed
	}
	return time.Now().UnixNano()
}

// Locked wraps a *rand.Rand so it can be shared between goroutines.
type Locked struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewLocked returns a goroutine-safe source seeded from seed
func NewLocked(seed int64) *Locked {
	return &Locked{rng: New(seed)}
}

// IntN returns a uniform integer in [0, n)
func (l *Locked) IntN(n int) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.rng.IntN(n)
}

func mix(x uint64) uint64 {
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x
}
