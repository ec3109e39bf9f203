// Package rng provides injectable, deterministic randomness for the engine.
// Every probabilistic decision (encounter triggers, NPC action choice, qubit
// measurement) draws from a Source so that runs are reproducible in tests.
package rng

import "math/rand"

// Source is the randomness contract consumed by the engine.
type Source interface {
	// Float64 returns a uniform draw in [0, 1).
	Float64() float64
	// Intn returns a uniform draw in [0, n). Panics if n <= 0.
	Intn(n int) int
}

// RNG wraps math/rand.Rand with a fixed seed.
type RNG struct {
	seed int64
	src  *rand.Rand
}

// New creates a seeded RNG.
func New(seed int64) *RNG {
	return &RNG{
		seed: seed,
		src:  rand.New(rand.NewSource(seed)),
	}
}

// Float64 returns a uniform draw in [0, 1).
func (r *RNG) Float64() float64 {
	return r.src.Float64()
}

// Intn returns a uniform draw in [0, n).
func (r *RNG) Intn(n int) int {
	return r.src.Intn(n)
}

// Seed returns the seed this RNG was created with.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Script is a Source that replays a fixed sequence of draws. Float64 values
// are consumed as-is; Intn scales the next draw into [0, n). When the
// sequence runs out it wraps around, so a single value acts as a constant.
type Script struct {
	draws []float64
	pos   int
}

// NewScript creates a scripted source from the given draws.
// At least one draw must be provided.
func NewScript(draws ...float64) *Script {
	if len(draws) == 0 {
		panic("rng: scripted source needs at least one draw")
	}
	return &Script{draws: draws}
}

func (s *Script) next() float64 {
	v := s.draws[s.pos%len(s.draws)]
	s.pos++
	return v
}

// Float64 returns the next scripted draw.
func (s *Script) Float64() float64 {
	return s.next()
}

// Intn maps the next scripted draw into [0, n).
func (s *Script) Intn(n int) int {
	if n <= 0 {
		panic("rng: Intn with non-positive bound")
	}
	v := int(s.next() * float64(n))
	if v >= n {
		v = n - 1
	}
	return v
}
