// Package service owns the generated match timeline for the lifetime of the
// process and answers score queries against it.
package service

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/okian/matchscore/internal/domain/scoring"
	"github.com/okian/matchscore/internal/domain/timeline"
	"github.com/okian/matchscore/internal/domain/types"
	"github.com/okian/matchscore/pkg/logger"
	"github.com/okian/matchscore/pkg/metrics"
)

// Default service configuration constants.
const (
	defaultMaxBatchSize = 1000
	microsPerNano       = 1e3
	millisPerNano       = 1e6
)

// Sentinel kinds for service errors.
var (
	ErrNotStarted    = errors.New("timeline not generated yet")
	ErrBatchTooLarge = errors.New("batch too large")
)

// Service implements the API dependencies for the score timeline.
type Service struct {
	mu sync.RWMutex

	// Core components
	generator *timeline.Generator
	rng       timeline.RandomSource
	timeline  *timeline.Timeline
	matchID   string

	// Configuration
	count        int
	seed         int64
	batchWorkers int
	maxBatchSize int

	// State
	started bool

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithGenerator sets the timeline generator.
func WithGenerator(g *timeline.Generator) Option {
	return func(s *Service) {
		if g != nil {
			s.generator = g
		}
	}
}

// WithTimestampsCount sets the number of walk steps. Negative values are
// passed through so the generator can reject them.
func WithTimestampsCount(count int) Option {
	return func(s *Service) {
		s.count = count
	}
}

// WithSeed seeds the random walk. Zero picks a clock-based seed at Start.
func WithSeed(seed int64) Option {
	return func(s *Service) {
		s.seed = seed
	}
}

// WithRandomSource injects the random source directly, overriding WithSeed.
func WithRandomSource(rng timeline.RandomSource) Option {
	return func(s *Service) {
		if rng != nil {
			s.rng = rng
		}
	}
}

// WithBatchWorkers sets the number of goroutines serving a batch query.
func WithBatchWorkers(count int) Option {
	return func(s *Service) {
		if count > 0 {
			s.batchWorkers = count
		}
	}
}

// WithMaxBatchSize caps the number of offsets in one batch.
func WithMaxBatchSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.maxBatchSize = size
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		generator:    timeline.NewGenerator(),
		count:        timeline.DefaultTimestampsCount,
		batchWorkers: runtime.NumCPU(),
		maxBatchSize: defaultMaxBatchSize,
		logger:       nil, // resolved at Start
	}

	// Apply all options
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start generates the timeline the service will serve. Calling Start on a
// started service is a no-op.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	if s.logger == nil {
		s.logger = logger.Get()
	}

	rng := s.rng
	if rng == nil {
		if s.seed == 0 {
			s.seed = time.Now().UnixNano()
		}
		rng = timeline.NewRandomSource(s.seed)
	}

	s.logger.Info(ctx, "generating timeline...",
		logger.Int("timestampsCount", s.count),
		logger.Int64("seed", s.seed),
	)

	start := time.Now()
	tl, err := s.generator.Generate(s.count, rng)
	if err != nil {
		metrics.RecordGenerationError()
		metrics.RecordErrorByComponent("generator", "invalid_params")
		s.logger.Error(ctx, "timeline generation rejected", logger.Error(err))
		return fmt.Errorf("generate timeline: %w", err)
	}
	elapsed := time.Since(start)

	s.timeline = tl
	s.matchID = uuid.New().String()
	s.started = true

	last := tl.Last()
	metrics.RecordTimelineGenerated(tl.Len(), last.Score.Home, last.Score.Away, float64(elapsed.Nanoseconds())/millisPerNano)
	metrics.UpdateTimelineShape(tl.Len(), last.Offset)
	metrics.UpdateBatchWorkers(s.batchWorkers)

	s.logger.Info(ctx, "timeline generated",
		logger.String("matchID", s.matchID),
		logger.Int("stamps", tl.Len()),
		logger.Int("lastOffset", last.Offset),
		logger.Int("home", last.Score.Home),
		logger.Int("away", last.Score.Away),
		logger.String("elapsed", elapsed.String()),
	)

	return nil
}

// Stop releases the timeline.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	s.timeline = nil
	s.started = false
	s.logger.Info(context.Background(), "timeline service stopped", logger.String("matchID", s.matchID))
}

// current returns the served timeline.
func (s *Service) current() (*timeline.Timeline, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.started {
		return nil, ErrNotStarted
	}
	return s.timeline, nil
}

// Score returns the differential in effect at offset.
func (s *Service) Score(ctx context.Context, offset int) (types.ScoreResult, error) {
	tl, err := s.current()
	if err != nil {
		return types.ScoreResult{}, err
	}

	res := s.resolve(ctx, tl, offset)
	return res, nil
}

// resolve runs one query and records its metrics.
func (s *Service) resolve(ctx context.Context, tl *timeline.Timeline, offset int) types.ScoreResult {
	start := time.Now()
	res, how := scoring.Resolve(tl, offset)
	metrics.RecordQuery(how.String(), float64(time.Since(start).Nanoseconds())/microsPerNano)

	s.logger.Debug(ctx, "score resolved",
		logger.Int("offset", offset),
		logger.Int("differential", res.Differential),
		logger.String("resolution", how.String()),
	)

	return types.ScoreResult{Differential: res.Differential, Offset: res.Offset}
}

// ScoreBatch answers every offset, keeping input order. The timeline is
// shared read-only across a bounded set of workers. On cancellation no
// partial results are returned.
func (s *Service) ScoreBatch(ctx context.Context, offsets []int) ([]types.ScoreResult, error) {
	tl, err := s.current()
	if err != nil {
		return nil, err
	}
	if len(offsets) > s.maxBatchSize {
		return nil, fmt.Errorf("%w: %d offsets, max %d", ErrBatchTooLarge, len(offsets), s.maxBatchSize)
	}

	metrics.RecordBatchQuery(len(offsets))
	results := make([]types.ScoreResult, len(offsets))
	if len(offsets) == 0 {
		return results, nil
	}

	workerCount := minInt(s.batchWorkers, len(offsets))
	jobs := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < workerCount; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				results[i] = s.resolve(ctx, tl, offsets[i])
			}
		}()
	}

	var cancelled error
dispatch:
	for i := range offsets {
		if cancelled = ctx.Err(); cancelled != nil {
			break
		}
		select {
		case <-ctx.Done():
			cancelled = ctx.Err()
			break dispatch
		case jobs <- i:
		}
	}
	close(jobs)
	wg.Wait()

	if cancelled != nil {
		metrics.RecordErrorByComponent("service", "batch_cancelled")
		return nil, fmt.Errorf("batch query cancelled: %w", cancelled)
	}
	return results, nil
}

// Summary describes the served timeline.
func (s *Service) Summary(_ context.Context) (types.TimelineSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.started {
		return types.TimelineSummary{}, ErrNotStarted
	}

	last := s.timeline.Last()
	return types.TimelineSummary{
		MatchID:      s.matchID,
		Stamps:       s.timeline.Len(),
		LastOffset:   last.Offset,
		Home:         last.Score.Home,
		Away:         last.Score.Away,
		Differential: last.Differential(),
		Seed:         s.seed,
	}, nil
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]interface{}{
		"started":         s.started,
		"timestampsCount": s.count,
		"batchWorkers":    s.batchWorkers,
		"maxBatchSize":    s.maxBatchSize,
	}

	if s.started {
		stats["matchID"] = s.matchID
		stats["stamps"] = s.timeline.Len()
		stats["lastOffset"] = s.timeline.Last().Offset
		metrics.UpdateTimelineShape(s.timeline.Len(), s.timeline.Last().Offset)
	}

	return stats
}

// MaxBatchSize returns the batch cap.
func (s *Service) MaxBatchSize() int {
	return s.maxBatchSize
}

// minInt returns the minimum of two integers.
func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
