package simulation

import (
	"math/rand/v2"
	"time"
)

// RandomSource supplies every random draw the models make.
// Engines never touch process-wide random state.
type RandomSource interface {
	// Float64 returns a value in [0, 1).
	Float64() float64
	// Uniform returns a value in [lo, hi).
	Uniform(lo, hi float64) float64
	// Gaussian returns a normally distributed value.
	Gaussian(mean, stddev float64) float64
	// IntN returns a value in [0, n).
	IntN(n int) int
}

// pcgStreamSalt decorrelates the second PCG word from the seed.
const pcgStreamSalt = 0x9e3779b97f4a7c15

type seededSource struct {
	r *rand.Rand
}

// NewRandomSource returns a deterministic source for the given seed.
func NewRandomSource(seed uint64) RandomSource {
	return &seededSource{r: rand.New(rand.NewPCG(seed, seed^pcgStreamSalt))}
}

// NewTimeSeededSource returns a source seeded from the wall clock.
func NewTimeSeededSource() RandomSource {
	return NewRandomSource(uint64(time.Now().UnixNano()))
}

func (s *seededSource) Float64() float64 { return s.r.Float64() }

func (s *seededSource) Uniform(lo, hi float64) float64 {
	return lo + (hi-lo)*s.r.Float64()
}

func (s *seededSource) Gaussian(mean, stddev float64) float64 {
	return mean + stddev*s.r.NormFloat64()
}

func (s *seededSource) IntN(n int) int {
	if n <= 0 {
		return 0
	}
	return s.r.IntN(n)
}
