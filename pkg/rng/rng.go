// Package rng provides the deterministic pseudo-random stream that drives a
// generation run. Every stage draws from a single Stream, so a given seed
// reproduces the same world bit for bit.
package rng

import "math"

// Stream is a 32-bit linear congruential generator. It is not safe for
// concurrent use; each generation run owns exactly one Stream.
type Stream struct {
	state uint32
}

// LCG constants (numerical recipes). Changing them breaks seed compatibility
// with previously generated worlds.
const (
	multiplier = 1664525
	increment  = 1013904223
)

// New creates a stream seeded from the given integer.
func New(seed int64) *Stream {
	return &Stream{state: uint32(seed)}
}

// Float advances the state exactly once and returns a value in [0, 1).
func (s *Stream) Float() float64 {
	s.state = s.state*multiplier + increment
	return float64(s.state) / 4294967296.0
}

// Range returns a value uniformly distributed in [min, max). Consumes one draw.
func (s *Stream) Range(min, max float64) float64 {
	return min + s.Float()*(max-min)
}

// IntN returns an integer in [0, n). Consumes one draw. Returns 0 for n <= 0.
func (s *Stream) IntN(n int) int {
	if n <= 0 {
		return 0
	}
	return int(s.Float() * float64(n))
}

// IntRange returns an integer in [min, max] inclusive. Consumes one draw.
func (s *Stream) IntRange(min, max int) int {
	if max < min {
		return min
	}
	return min + s.IntN(max-min+1)
}

// Chance returns true with probability p. Consumes one draw.
func (s *Stream) Chance(p float64) bool {
	return s.Float() < p
}

// Angle returns a value in [0, 2π). Consumes one draw.
func (s *Stream) Angle() float64 {
	return s.Float() * 2 * math.Pi
}
