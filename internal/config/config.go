// Package config defines process configuration and its loading hooks.
//
// Conventions:
// - Defaults live in New; Load layers file and env values on top.
// - Generation parameters are validated by the generator, not here.
// - External errors are wrapped with this package's sentinel kinds.
package config

import (
	"runtime"

	"github.com/okian/matchscore/internal/domain/timeline"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":9080".
	Addr string `koanf:"addr"`

	// TimestampsCount is the number of random-walk steps to generate.
	TimestampsCount int `koanf:"timestamps_count"`

	// ProbabilityScoreChanged is the per-step goal probability.
	ProbabilityScoreChanged float64 `koanf:"probability_score_changed"`

	// ProbabilityHomeScore is the conditional probability a goal goes to the home side.
	ProbabilityHomeScore float64 `koanf:"probability_home_score"`

	// OffsetMaxStep is the inclusive upper bound of a step's offset advance.
	OffsetMaxStep int `koanf:"offset_max_step"`

	// Seed seeds the random walk. Zero picks a clock-based seed.
	Seed int64 `koanf:"seed"`

	// BatchWorkers bounds concurrency of batch queries.
	BatchWorkers int `koanf:"batch_workers"`

	// MaxBatchSize caps the number of offsets in one batch query.
	MaxBatchSize int `koanf:"max_batch_size"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:                "info",
		Addr:                    ":9080",
		TimestampsCount:         timeline.DefaultTimestampsCount,
		ProbabilityScoreChanged: timeline.DefaultProbabilityScoreChanged,
		ProbabilityHomeScore:    timeline.DefaultProbabilityHomeScore,
		OffsetMaxStep:           timeline.DefaultOffsetMaxStep,
		Seed:                    0,
		BatchWorkers:            runtime.NumCPU(),
		MaxBatchSize:            1000,
	}
}

// GeneratorParams maps the walk settings onto generator parameters.
func (c *Config) GeneratorParams() timeline.Params {
	return timeline.Params{
		ProbabilityScoreChanged: c.ProbabilityScoreChanged,
		ProbabilityHomeScore:    c.ProbabilityHomeScore,
		OffsetMaxStep:           c.OffsetMaxStep,
	}
}
