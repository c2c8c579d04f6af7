// Package timeline generates synthetic match timelines as a biased random walk
// over (offset, score).
package timeline

import (
	"fmt"

	"github.com/okian/matchscore/internal/domain/model"
)

// Generator produces timelines from a fixed set of walk parameters.
type Generator struct {
	params Params
}

// NewGenerator creates a generator with default parameters and applies opts.
func NewGenerator(opts ...Option) *Generator {
	g := &Generator{params: DefaultParams()}

	// Apply all options
	for _, opt := range opts {
		opt(g)
	}

	return g
}

// Params returns the walk parameters in use.
func (g *Generator) Params() Params {
	return g.params
}

// Step advances previous by one walk step. It always consumes exactly three
// draws from rng, in order: goal?, home?, offset delta.
func (g *Generator) Step(previous model.Stamp, rng RandomSource) model.Stamp {
	scoreChanged := rng.Float64() < g.params.ProbabilityScoreChanged
	homeScored := rng.Float64() < g.params.ProbabilityHomeScore
	offsetDelta := 1 + rng.Intn(g.params.OffsetMaxStep)

	next := model.Stamp{
		Offset: previous.Offset + offsetDelta,
		Score:  previous.Score,
	}
	if scoreChanged {
		if homeScored {
			next.Score.Home++
		} else {
			next.Score.Away++
		}
	}
	return next
}

// Generate returns a timeline of count+1 stamps: the initial stamp followed by
// count chained steps. Parameters are validated before any stamp is produced.
func (g *Generator) Generate(count int, rng RandomSource) (*Timeline, error) {
	if count < 0 {
		return nil, fmt.Errorf("%w: %d", ErrNegativeCount, count)
	}
	if rng == nil {
		return nil, ErrNilRandomSource
	}
	if err := g.params.Validate(); err != nil {
		return nil, err
	}

	stamps := make([]model.Stamp, 0, count+1)
	current := model.InitialStamp
	stamps = append(stamps, current)
	for i := 0; i < count; i++ {
		current = g.Step(current, rng)
		stamps = append(stamps, current)
	}

	return &Timeline{stamps: stamps}, nil
}
