package pipeline

import "math/rand/v2"

// Sampler is the randomness source for temperature draws. *rand.Rand
// satisfies it; tests supply fixed values.
type Sampler interface {
	Float64() float64
}

// globalSampler draws from the runtime's concurrency-safe global source.
type globalSampler struct{}

func (globalSampler) Float64() float64 { return rand.Float64() }

// SampleTemperature maps a draw from s onto [lo, hi]. Draws outside [0, 1]
// are clamped so the result never leaves the bounds.
func SampleTemperature(lo, hi float64, s Sampler) float64 {
	u := s.Float64()
	switch {
	case u < 0:
		u = 0
	case u > 1:
		u = 1
	}
	t := lo + u*(hi-lo)
	if t < lo {
		return lo
	}
	if t > hi {
		return hi
	}
	return t
}
