package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	service "github.com/okian/matchscore/internal/app"
)

// DefaultQueryOffset is queried when no offsets are given.
const DefaultQueryOffset = 9878

// NewQueryCommand creates the query command.
func NewQueryCommand(rootOpts *RootOptions) *cobra.Command {
	walk := &walkFlags{}

	cmd := &cobra.Command{
		Use:   "query [offset...]",
		Short: "Print the score differential at one or more offsets",
		Long: `Generate a timeline and print the differential in effect at each offset.

Offsets past the last stamp report the final differential; offsets at or
before the start report zero. Without arguments the offset 9878 is queried.`,
		Example: `  matchscore query --seed 42 100 2500
  matchscore query --format json -- -5 12`,
		RunE: func(cmd *cobra.Command, args []string) error {
			offsets, err := parseOffsets(args)
			if err != nil {
				return err
			}
			return runQuery(rootOpts, walk, offsets, cmd)
		},
	}

	walk.bind(cmd)
	return cmd
}

// parseOffsets converts positional arguments into offsets.
func parseOffsets(args []string) ([]int, error) {
	if len(args) == 0 {
		return []int{DefaultQueryOffset}, nil
	}
	offsets := make([]int, 0, len(args))
	for _, a := range args {
		o, err := strconv.Atoi(a)
		if err != nil {
			return nil, WrapExitError(ExitCommandError, fmt.Sprintf("invalid offset %q", a), err)
		}
		offsets = append(offsets, o)
	}
	return offsets, nil
}

func runQuery(opts *RootOptions, walk *walkFlags, offsets []int, cmd *cobra.Command) error {
	ctx := cmd.Context()
	formatter := newFormatter(opts, cmd)

	cfg, err := loadConfig(cmd, opts)
	if err != nil {
		return err
	}
	walk.apply(cmd, cfg)

	// A single invocation may ask for more offsets than the server cap.
	svc := newService(cfg, service.WithMaxBatchSize(max(cfg.MaxBatchSize, len(offsets))))
	if err := svc.Start(ctx); err != nil {
		return WrapExitError(ExitFailure, "timeline rejected", err)
	}
	defer svc.Stop()

	formatter.VerboseLog("querying %d offset(s)", len(offsets))

	results, err := svc.ScoreBatch(ctx, offsets)
	if err != nil {
		return WrapExitError(ExitFailure, "query failed", err)
	}
	return formatter.Results(results)
}
