package core

import (
	"math/rand/v2"
	"sync"
	"time"
)

// ReplyStrategy picks which of n candidate replies to send.
type ReplyStrategy interface {
	Choose(n int) int
}

// BranchPolicy decides whether an outcome of probability p happens.
type BranchPolicy interface {
	Decide(p float64) bool
}

// Strategy drives both the reply choice and the application branches of a
// session.
type Strategy interface {
	ReplyStrategy
	BranchPolicy
}

// RandomStrategy draws uniformly from a PCG source.
type RandomStrategy struct {
	mu sync.Mutex
	r  *rand.Rand
}

// NewRandomStrategy seeds a strategy. Seed 0 seeds from the wall clock.
func NewRandomStrategy(seed uint64) *RandomStrategy {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return &RandomStrategy{r: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

func (s *RandomStrategy) Choose(n int) int {
	if n <= 1 {
		return 0
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.r.IntN(n)
}

func (s *RandomStrategy) Decide(p float64) bool {
	if p <= 0 {
		return false
	}
	if p >= 1 {
		return true
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.r.Float64() < p
}

// FixedStrategy always picks the same reply index and plays back a queue of
// branch outcomes. Once the queue is empty, Decide takes the more likely
// branch.
type FixedStrategy struct {
	mu       sync.Mutex
	index    int
	outcomes []bool
}

func NewFixedStrategy(index int, outcomes ...bool) *FixedStrategy {
	return &FixedStrategy{index: index, outcomes: outcomes}
}

func (s *FixedStrategy) Choose(n int) int {
	if n <= 0 {
		return 0
	}
	i := s.index % n
	if i < 0 {
		i += n
	}
	return i
}

func (s *FixedStrategy) Decide(p float64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.outcomes) > 0 {
		out := s.outcomes[0]
		s.outcomes = s.outcomes[1:]
		return out
	}
	return p >= 0.5
}
