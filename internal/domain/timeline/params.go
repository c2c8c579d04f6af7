package timeline

import (
	"fmt"
	"math"
)

// Default generation parameters.
const (
	DefaultTimestampsCount         = 50000
	DefaultProbabilityScoreChanged = 0.0001
	DefaultProbabilityHomeScore    = 0.45
	DefaultOffsetMaxStep           = 3
)

// Params controls the random walk.
type Params struct {
	// ProbabilityScoreChanged is the per-step goal probability.
	ProbabilityScoreChanged float64
	// ProbabilityHomeScore is the probability a goal is credited to the home side.
	ProbabilityHomeScore float64
	// OffsetMaxStep is the inclusive upper bound of the per-step offset advance.
	// The lower bound is always 1.
	OffsetMaxStep int
}

// DefaultParams returns the default walk parameters.
func DefaultParams() Params {
	return Params{
		ProbabilityScoreChanged: DefaultProbabilityScoreChanged,
		ProbabilityHomeScore:    DefaultProbabilityHomeScore,
		OffsetMaxStep:           DefaultOffsetMaxStep,
	}
}

// Validate reports the first parameter outside its allowed range.
func (p Params) Validate() error {
	if !isProbability(p.ProbabilityScoreChanged) {
		return fmt.Errorf("%w: probability_score_changed must be within [0,1], got %v", ErrInvalidParams, p.ProbabilityScoreChanged)
	}
	if !isProbability(p.ProbabilityHomeScore) {
		return fmt.Errorf("%w: probability_home_score must be within [0,1], got %v", ErrInvalidParams, p.ProbabilityHomeScore)
	}
	if p.OffsetMaxStep < 1 {
		return fmt.Errorf("%w: offset_max_step must be >= 1, got %d", ErrInvalidParams, p.OffsetMaxStep)
	}
	return nil
}

func isProbability(p float64) bool {
	return !math.IsNaN(p) && p >= 0 && p <= 1
}

// Option applies a configuration option to the Generator.
// Options store values as given; out-of-range values are rejected by Generate.
type Option func(*Generator)

// WithParams replaces all walk parameters at once.
func WithParams(p Params) Option {
	return func(g *Generator) {
		g.params = p
	}
}

// WithProbabilityScoreChanged sets the per-step goal probability.
func WithProbabilityScoreChanged(p float64) Option {
	return func(g *Generator) {
		g.params.ProbabilityScoreChanged = p
	}
}

// WithProbabilityHomeScore sets the conditional home-goal probability.
func WithProbabilityHomeScore(p float64) Option {
	return func(g *Generator) {
		g.params.ProbabilityHomeScore = p
	}
}

// WithOffsetMaxStep sets the inclusive upper bound of the offset advance.
func WithOffsetMaxStep(step int) Option {
	return func(g *Generator) {
		g.params.OffsetMaxStep = step
	}
}
