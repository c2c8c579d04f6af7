// Package cli implements the matchscore command tree.
package cli

import (
	"fmt"
	"os"
	"slices"

	"github.com/spf13/cobra"

	service "github.com/okian/matchscore/internal/app"
	"github.com/okian/matchscore/internal/config"
	"github.com/okian/matchscore/internal/domain/timeline"
	"github.com/okian/matchscore/pkg/logger"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose    bool
	Format     string // "text" | "json" | "yaml"
	ConfigPath string
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json", "yaml"}

// NewRootCommand creates the root command for the matchscore CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "matchscore",
		Short: "Score differential queries over a generated match timeline",
		Long: `matchscore generates a match as a random walk of timestamped score
snapshots and answers what the score differential was at any offset.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return NewExitError(ExitCommandError,
					fmt.Sprintf("invalid format %q: must be one of %v", opts.Format, ValidFormats))
			}
			// Results own stdout; logs go to stderr.
			if err := logger.InitWithWriter(cmd.ErrOrStderr()); err != nil {
				return WrapExitError(ExitFailure, "initialize logging", err)
			}
			return nil
		},
	}

	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return WrapExitError(ExitCommandError, "invalid flags", err)
	})

	// Global flags
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (text|json|yaml)")
	cmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", "",
		"YAML config file (defaults to $"+config.EnvConfigFile+")")

	cmd.AddCommand(NewQueryCommand(opts))
	cmd.AddCommand(NewTimelineCommand(opts))
	cmd.AddCommand(NewServeCommand(opts))

	return cmd
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	return slices.Contains(ValidFormats, format)
}

// newFormatter builds the formatter for cmd's writers.
func newFormatter(opts *RootOptions, cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}
}

// loadConfig layers defaults, the config file and env vars, then applies
// the configured log level. --verbose forces debug.
func loadConfig(cmd *cobra.Command, opts *RootOptions) (*config.Config, error) {
	path := opts.ConfigPath
	if path == "" {
		path = os.Getenv(config.EnvConfigFile)
	}

	cfg, err := config.LoadFrom(cmd.Context(), path)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "load config", err)
	}

	level := cfg.LogLevel
	if opts.Verbose {
		level = "debug"
	}
	if err := logger.SetLevelString(level); err != nil {
		logger.Get().Warn(cmd.Context(), "invalid log_level; falling back to info",
			logger.String("log_level", level), logger.Error(err))
		_ = logger.SetLevelString("info")
	}
	return cfg, nil
}

// walkFlags are the generation overrides shared by query and timeline.
type walkFlags struct {
	seed  int64
	count int
}

func (w *walkFlags) bind(cmd *cobra.Command) {
	cmd.Flags().Int64Var(&w.seed, "seed", 0, "random walk seed (0 seeds from the clock)")
	cmd.Flags().IntVar(&w.count, "count", timeline.DefaultTimestampsCount, "number of random walk steps")
}

// apply copies explicitly set flags over cfg.
func (w *walkFlags) apply(cmd *cobra.Command, cfg *config.Config) {
	if cmd.Flags().Changed("seed") {
		cfg.Seed = w.seed
	}
	if cmd.Flags().Changed("count") {
		cfg.TimestampsCount = w.count
	}
}

// newService builds a service from cfg.
func newService(cfg *config.Config, extra ...service.Option) *service.Service {
	opts := []service.Option{
		service.WithLogger(logger.Named("service")),
		service.WithGenerator(timeline.NewGenerator(timeline.WithParams(cfg.GeneratorParams()))),
		service.WithTimestampsCount(cfg.TimestampsCount),
		service.WithSeed(cfg.Seed),
		service.WithBatchWorkers(cfg.BatchWorkers),
		service.WithMaxBatchSize(cfg.MaxBatchSize),
	}
	return service.New(append(opts, extra...)...)
}
