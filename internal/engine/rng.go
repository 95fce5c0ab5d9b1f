package engine

import (
	"math/rand"
	"sync"
	"time"
)

// RNG is the single random source for gameplay-affecting rolls: the crisis
// trigger draw, candidate stat generation, and fallback judge scores.
// Cosmetic randomness must not share it. Injectable so tests can script or
// seed the rolls.
type RNG interface {
	Float64() float64
	Intn(n int) int
}

type lockedRNG struct {
	mu sync.Mutex
	r  *rand.Rand
}

// NewRNG returns the production random source. No seeding contract: each
// playthrough is independently random and not reproducible.
func NewRNG() RNG {
	return NewSeededRNG(time.Now().UnixNano())
}

// NewSeededRNG returns a reproducible source for tests.
func NewSeededRNG(seed int64) RNG {
	return &lockedRNG{r: rand.New(rand.NewSource(seed))}
}

func (l *lockedRNG) Float64() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.r.Float64()
}

func (l *lockedRNG) Intn(n int) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.r.Intn(n)
}
