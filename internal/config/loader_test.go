package config_test

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/okian/matchscore/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfigLoader(t *testing.T) {
	convey.Convey("Given a config loader", t, func() {
		ctx := context.Background()

		convey.Convey("When loading config with defaults only", func() {
			clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load successfully with defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9080")
				convey.So(cfg.TimestampsCount, convey.ShouldEqual, 50000)
				convey.So(cfg.ProbabilityScoreChanged, convey.ShouldEqual, 0.0001)
				convey.So(cfg.ProbabilityHomeScore, convey.ShouldEqual, 0.45)
				convey.So(cfg.OffsetMaxStep, convey.ShouldEqual, 3)
			})
		})

		convey.Convey("When loading config with environment variables", func() {
			_ = os.Setenv("MATCHSCORE_ADDR", ":8080")
			_ = os.Setenv("MATCHSCORE_TIMESTAMPS_COUNT", "1000")
			_ = os.Setenv("MATCHSCORE_PROBABILITY_SCORE_CHANGED", "0.01")
			_ = os.Setenv("MATCHSCORE_PROBABILITY_HOME_SCORE", "0.6")
			_ = os.Setenv("MATCHSCORE_OFFSET_MAX_STEP", "5")
			_ = os.Setenv("MATCHSCORE_SEED", "42")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should override defaults with env vars", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
				convey.So(cfg.TimestampsCount, convey.ShouldEqual, 1000)
				convey.So(cfg.ProbabilityScoreChanged, convey.ShouldEqual, 0.01)
				convey.So(cfg.ProbabilityHomeScore, convey.ShouldEqual, 0.6)
				convey.So(cfg.OffsetMaxStep, convey.ShouldEqual, 5)
				convey.So(cfg.Seed, convey.ShouldEqual, int64(42))
			})
		})

		convey.Convey("When loading config with YAML file", func() {
			yamlContent := `
addr: ":9090"
timestamps_count: 20000
probability_score_changed: 0.001
probability_home_score: 0.5
offset_max_step: 4
batch_workers: 2
max_batch_size: 50
`
			tmpFile := createTempConfigFile(yamlContent)
			defer func() { _ = os.Remove(tmpFile) }()

			_ = os.Setenv("MATCHSCORE_CONFIG", tmpFile)
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load from YAML file", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9090")
				convey.So(cfg.TimestampsCount, convey.ShouldEqual, 20000)
				convey.So(cfg.ProbabilityScoreChanged, convey.ShouldEqual, 0.001)
				convey.So(cfg.ProbabilityHomeScore, convey.ShouldEqual, 0.5)
				convey.So(cfg.OffsetMaxStep, convey.ShouldEqual, 4)
				convey.So(cfg.BatchWorkers, convey.ShouldEqual, 2)
				convey.So(cfg.MaxBatchSize, convey.ShouldEqual, 50)
			})
		})

		convey.Convey("When loading config with an explicit file path", func() {
			clearConfigEnvVars()
			tmpFile := createTempConfigFile("timestamps_count: 77\n")
			defer func() { _ = os.Remove(tmpFile) }()

			cfg, err := config.LoadFrom(ctx, tmpFile)

			convey.Convey("Then it should merge the file with defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.TimestampsCount, convey.ShouldEqual, 77)
				convey.So(cfg.OffsetMaxStep, convey.ShouldEqual, 3)
			})
		})

		convey.Convey("When loading config with both file and environment variables", func() {
			yamlContent := `
addr: ":9090"
timestamps_count: 20000
offset_max_step: 4
`
			tmpFile := createTempConfigFile(yamlContent)
			defer func() { _ = os.Remove(tmpFile) }()

			_ = os.Setenv("MATCHSCORE_CONFIG", tmpFile)
			_ = os.Setenv("MATCHSCORE_ADDR", ":8080")
			_ = os.Setenv("MATCHSCORE_OFFSET_MAX_STEP", "6")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then environment variables should override file values", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")              // Overridden by env
				convey.So(cfg.TimestampsCount, convey.ShouldEqual, 20000)     // From file
				convey.So(cfg.OffsetMaxStep, convey.ShouldEqual, 6)           // Overridden by env
				convey.So(cfg.ProbabilityHomeScore, convey.ShouldEqual, 0.45) // From defaults
			})
		})

		convey.Convey("When loading config with invalid YAML file", func() {
			invalidYaml := `invalid: yaml: content: [`
			tmpFile := createTempConfigFile(invalidYaml)
			defer func() { _ = os.Remove(tmpFile) }()

			_ = os.Setenv("MATCHSCORE_CONFIG", tmpFile)
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a load error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with non-existent file", func() {
			_ = os.Setenv("MATCHSCORE_CONFIG", "/non/existent/file.yaml")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return an error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with empty addr", func() {
			_ = os.Setenv("MATCHSCORE_ADDR", "")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a validation error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
				convey.So(err.Error(), convey.ShouldContainSubstring, "addr must not be empty")
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with zero batch workers", func() {
			_ = os.Setenv("MATCHSCORE_BATCH_WORKERS", "0")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a validation error", func() {
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
				convey.So(err.Error(), convey.ShouldContainSubstring, "batch_workers")
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with invalid numeric environment variables", func() {
			_ = os.Setenv("MATCHSCORE_TIMESTAMPS_COUNT", "invalid")
			_ = os.Setenv("MATCHSCORE_OFFSET_MAX_STEP", "not_a_number")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return an error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})
	})
}

func TestConfigLoaderEdgeCases(t *testing.T) {
	convey.Convey("Given config loader edge cases", t, func() {
		ctx := context.Background()

		convey.Convey("When loading out-of-range generation parameters", func() {
			_ = os.Setenv("MATCHSCORE_TIMESTAMPS_COUNT", "-10")
			_ = os.Setenv("MATCHSCORE_OFFSET_MAX_STEP", "0")
			_ = os.Setenv("MATCHSCORE_PROBABILITY_HOME_SCORE", "1.5")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then loading should pass them through for the generator to reject", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.TimestampsCount, convey.ShouldEqual, -10)
				convey.So(cfg.OffsetMaxStep, convey.ShouldEqual, 0)
				convey.So(cfg.GeneratorParams().Validate(), convey.ShouldNotBeNil)
			})
		})

		convey.Convey("When loading config with YAML file containing comments", func() {
			yamlContent := `
# walk settings
timestamps_count: 300  # short match
offset_max_step: 2
`
			tmpFile := createTempConfigFile(yamlContent)
			defer func() { _ = os.Remove(tmpFile) }()

			_ = os.Setenv("MATCHSCORE_CONFIG", tmpFile)
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should parse YAML with comments", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.TimestampsCount, convey.ShouldEqual, 300)
				convey.So(cfg.OffsetMaxStep, convey.ShouldEqual, 2)
			})
		})

		convey.Convey("When loading a negative seed", func() {
			_ = os.Setenv("MATCHSCORE_SEED", "-7")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should be kept as is", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Seed, convey.ShouldEqual, int64(-7))
			})
		})
	})
}

// Helper functions.

func clearConfigEnvVars() {
	envVars := []string{
		"MATCHSCORE_CONFIG",
		"MATCHSCORE_ADDR",
		"MATCHSCORE_LOG_LEVEL",
		"MATCHSCORE_TIMESTAMPS_COUNT",
		"MATCHSCORE_PROBABILITY_SCORE_CHANGED",
		"MATCHSCORE_PROBABILITY_HOME_SCORE",
		"MATCHSCORE_OFFSET_MAX_STEP",
		"MATCHSCORE_SEED",
		"MATCHSCORE_BATCH_WORKERS",
		"MATCHSCORE_MAX_BATCH_SIZE",
	}
	for _, envVar := range envVars {
		_ = os.Unsetenv(envVar)
	}
}

func createTempConfigFile(content string) string {
	tmpFile, err := os.CreateTemp("", "matchscore-config-*.yaml")
	if err != nil {
		panic(err)
	}

	if _, err := tmpFile.WriteString(content); err != nil {
		panic(err)
	}

	if err := tmpFile.Close(); err != nil {
		panic(err)
	}

	return tmpFile.Name()
}
