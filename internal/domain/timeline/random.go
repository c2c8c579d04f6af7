package timeline

import (
	"math/rand"
	"time"
)

// RandomSource supplies the draws consumed by each step.
// *math/rand.Rand satisfies it.
type RandomSource interface {
	// Float64 returns a uniform value in [0.0, 1.0).
	Float64() float64
	// Intn returns a uniform value in [0, n). It panics if n <= 0.
	Intn(n int) int
}

// NewRandomSource returns a deterministic source for seed.
// A zero seed draws one from the clock.
func NewRandomSource(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed)) //nolint:gosec // simulation only, reproducibility matters more than unpredictability
}
