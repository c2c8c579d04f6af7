package service_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	service "github.com/okian/matchscore/internal/app"
	"github.com/okian/matchscore/internal/domain/scoring"
	"github.com/okian/matchscore/internal/domain/timeline"
	"github.com/okian/matchscore/internal/domain/types"
	"github.com/okian/matchscore/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	// Initialize logging for tests
	err := logger.Init()
	if err != nil {
		panic(err)
	}
}

func newStartedService(opts ...service.Option) *service.Service {
	base := []service.Option{
		service.WithTimestampsCount(3000),
		service.WithSeed(42),
		service.WithGenerator(timeline.NewGenerator(timeline.WithProbabilityScoreChanged(0.05))),
	}
	svc := service.New(append(base, opts...)...)
	if err := svc.Start(context.Background()); err != nil {
		panic(err)
	}
	return svc
}

func TestService_New(t *testing.T) {
	Convey("Given a new service with default options", t, func() {
		svc := service.New()

		Convey("Then it should not be started", func() {
			So(svc, ShouldNotBeNil)
			So(svc.GetStats()["started"], ShouldEqual, false)
			So(svc.GetStats()["timestampsCount"], ShouldEqual, timeline.DefaultTimestampsCount)
			So(svc.MaxBatchSize(), ShouldEqual, 1000)
		})
	})

	Convey("Given a new service with custom options", t, func() {
		svc := service.New(
			service.WithTimestampsCount(10),
			service.WithBatchWorkers(3),
			service.WithMaxBatchSize(5),
			service.WithBatchWorkers(0),
			service.WithMaxBatchSize(-1),
		)

		Convey("Then positive values should stick and invalid ones be ignored", func() {
			stats := svc.GetStats()
			So(stats["timestampsCount"], ShouldEqual, 10)
			So(stats["batchWorkers"], ShouldEqual, 3)
			So(svc.MaxBatchSize(), ShouldEqual, 5)
		})
	})
}

func TestService_Start(t *testing.T) {
	Convey("Given a new service", t, func() {
		svc := service.New(service.WithTimestampsCount(500), service.WithSeed(7))
		defer svc.Stop()

		Convey("When starting the service", func() {
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			err := svc.Start(ctx)

			Convey("Then it should generate the timeline", func() {
				So(err, ShouldBeNil)
				stats := svc.GetStats()
				So(stats["started"], ShouldEqual, true)
				So(stats["stamps"], ShouldEqual, 501)
				So(stats["matchID"], ShouldNotBeEmpty)
			})

			Convey("And starting again should be a no-op", func() {
				before, _ := svc.Summary(ctx)
				So(svc.Start(ctx), ShouldBeNil)
				after, _ := svc.Summary(ctx)
				So(after.MatchID, ShouldEqual, before.MatchID)
			})
		})
	})

	Convey("Given a service with invalid generation parameters", t, func() {
		Convey("When the count is negative", func() {
			svc := service.New(service.WithTimestampsCount(-1))
			err := svc.Start(context.Background())

			Convey("Then Start should fail before anything is served", func() {
				So(errors.Is(err, timeline.ErrNegativeCount), ShouldBeTrue)
				_, qerr := svc.Score(context.Background(), 1)
				So(errors.Is(qerr, service.ErrNotStarted), ShouldBeTrue)
			})
		})

		Convey("When the offset step is zero", func() {
			svc := service.New(service.WithGenerator(timeline.NewGenerator(timeline.WithOffsetMaxStep(0))))
			err := svc.Start(context.Background())

			Convey("Then Start should report invalid params", func() {
				So(errors.Is(err, timeline.ErrInvalidParams), ShouldBeTrue)
			})
		})
	})
}

func TestService_Stop(t *testing.T) {
	Convey("Given a started service", t, func() {
		svc := newStartedService()

		Convey("When stopping the service", func() {
			svc.Stop()

			Convey("Then it should be marked as stopped and refuse queries", func() {
				So(svc.GetStats()["started"], ShouldEqual, false)
				_, err := svc.Score(context.Background(), 10)
				So(errors.Is(err, service.ErrNotStarted), ShouldBeTrue)
			})

			Convey("And stopping twice should be safe", func() {
				So(func() { svc.Stop() }, ShouldNotPanic)
			})
		})
	})
}

func TestService_Score(t *testing.T) {
	Convey("Given a started service with a fixed seed", t, func() {
		svc := newStartedService()
		defer svc.Stop()
		ctx := context.Background()
		summary, err := svc.Summary(ctx)
		So(err, ShouldBeNil)

		Convey("When querying beyond the last offset", func() {
			res, err := svc.Score(ctx, summary.LastOffset+10)

			Convey("Then the final differential should be returned", func() {
				So(err, ShouldBeNil)
				So(res, ShouldResemble, types.ScoreResult{Differential: summary.Differential, Offset: summary.LastOffset + 10})
			})
		})

		Convey("When querying before the start", func() {
			res, err := svc.Score(ctx, -3)

			Convey("Then zero should be returned", func() {
				So(err, ShouldBeNil)
				So(res, ShouldResemble, types.ScoreResult{Differential: 0, Offset: -3})
			})
		})

		Convey("When a second service uses the same seed", func() {
			twin := newStartedService()
			defer twin.Stop()
			twinSummary, err := twin.Summary(ctx)

			Convey("Then both should serve the same match under different ids", func() {
				So(err, ShouldBeNil)
				So(twinSummary.LastOffset, ShouldEqual, summary.LastOffset)
				So(twinSummary.Differential, ShouldEqual, summary.Differential)
				So(twinSummary.Seed, ShouldEqual, int64(42))
				So(twinSummary.MatchID, ShouldNotEqual, summary.MatchID)
			})
		})
	})

	Convey("Given a service with an injected random source", t, func() {
		gen := timeline.NewGenerator(timeline.WithProbabilityScoreChanged(0.05))
		svc := service.New(
			service.WithTimestampsCount(800),
			service.WithGenerator(gen),
			service.WithRandomSource(timeline.NewRandomSource(99)),
		)
		So(svc.Start(context.Background()), ShouldBeNil)
		defer svc.Stop()

		Convey("Then its answers should match a direct query on the same walk", func() {
			expected, err := gen.Generate(800, timeline.NewRandomSource(99))
			So(err, ShouldBeNil)
			for offset := -2; offset < expected.Last().Offset+3; offset += 7 {
				res, err := svc.Score(context.Background(), offset)
				So(err, ShouldBeNil)
				direct := scoring.Query(expected, offset)
				So(res.Differential, ShouldEqual, direct.Differential)
				So(res.Offset, ShouldEqual, offset)
			}
		})
	})
}

func TestService_ScoreBatch(t *testing.T) {
	Convey("Given a started service", t, func() {
		svc := newStartedService(service.WithBatchWorkers(4), service.WithMaxBatchSize(200))
		defer svc.Stop()
		ctx := context.Background()

		Convey("When querying a batch", func() {
			offsets := make([]int, 0, 150)
			for i := -10; i < 140; i++ {
				offsets = append(offsets, i*37)
			}
			results, err := svc.ScoreBatch(ctx, offsets)

			Convey("Then results should keep input order and match single queries", func() {
				So(err, ShouldBeNil)
				So(len(results), ShouldEqual, len(offsets))
				for i, offset := range offsets {
					single, err := svc.Score(ctx, offset)
					So(err, ShouldBeNil)
					So(results[i], ShouldResemble, single)
				}
			})
		})

		Convey("When the batch is empty", func() {
			results, err := svc.ScoreBatch(ctx, nil)

			Convey("Then an empty result should come back", func() {
				So(err, ShouldBeNil)
				So(results, ShouldBeEmpty)
			})
		})

		Convey("When the batch exceeds the cap", func() {
			results, err := svc.ScoreBatch(ctx, make([]int, 201))

			Convey("Then it should be rejected", func() {
				So(results, ShouldBeNil)
				So(errors.Is(err, service.ErrBatchTooLarge), ShouldBeTrue)
			})
		})

		Convey("When the context is already cancelled", func() {
			cctx, cancel := context.WithCancel(ctx)
			cancel()
			results, err := svc.ScoreBatch(cctx, []int{1, 2, 3, 4, 5, 6, 7, 8})

			Convey("Then no partial results should be returned", func() {
				So(results, ShouldBeNil)
				So(errors.Is(err, context.Canceled), ShouldBeTrue)
			})
		})
	})

	Convey("Given a service that was never started", t, func() {
		svc := service.New()

		Convey("Then batch queries should fail", func() {
			_, err := svc.ScoreBatch(context.Background(), []int{1})
			So(errors.Is(err, service.ErrNotStarted), ShouldBeTrue)
		})
	})
}

func TestService_ConcurrentReads(t *testing.T) {
	Convey("Given a started service shared by many readers", t, func() {
		svc := newStartedService()
		defer svc.Stop()
		ctx := context.Background()
		summary, err := svc.Summary(ctx)
		So(err, ShouldBeNil)

		Convey("When querying concurrently", func() {
			const readers = 16
			var wg sync.WaitGroup
			errs := make(chan error, readers)
			for r := 0; r < readers; r++ {
				wg.Add(1)
				go func(r int) {
					defer wg.Done()
					for offset := r; offset <= summary.LastOffset; offset += 97 {
						if _, err := svc.Score(ctx, offset); err != nil {
							errs <- err
							return
						}
					}
					res, err := svc.Score(ctx, summary.LastOffset)
					if err == nil && res.Differential != summary.Differential {
						err = errors.New("final differential mismatch")
					}
					if err != nil {
						errs <- err
					}
				}(r)
			}
			wg.Wait()
			close(errs)

			Convey("Then every reader should succeed", func() {
				for err := range errs {
					So(err, ShouldBeNil)
				}
			})
		})
	})
}

func TestService_Summary(t *testing.T) {
	Convey("Given a service that was never started", t, func() {
		svc := service.New()

		Convey("Then Summary should fail", func() {
			_, err := svc.Summary(context.Background())
			So(errors.Is(err, service.ErrNotStarted), ShouldBeTrue)
		})
	})
}
