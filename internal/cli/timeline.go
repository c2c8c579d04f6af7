package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// NewTimelineCommand creates the timeline command.
func NewTimelineCommand(rootOpts *RootOptions) *cobra.Command {
	walk := &walkFlags{}
	var lang string

	cmd := &cobra.Command{
		Use:   "timeline",
		Short: "Generate a timeline and print its summary",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tag, err := language.Parse(lang)
			if err != nil {
				return WrapExitError(ExitCommandError, fmt.Sprintf("invalid language %q", lang), err)
			}
			return runTimeline(rootOpts, walk, message.NewPrinter(tag), cmd)
		},
	}

	walk.bind(cmd)
	cmd.Flags().StringVar(&lang, "lang", "en", "BCP 47 language tag used to group digits in text output")
	return cmd
}

func runTimeline(opts *RootOptions, walk *walkFlags, printer *message.Printer, cmd *cobra.Command) error {
	ctx := cmd.Context()
	formatter := newFormatter(opts, cmd)

	cfg, err := loadConfig(cmd, opts)
	if err != nil {
		return err
	}
	walk.apply(cmd, cfg)

	svc := newService(cfg)
	if err := svc.Start(ctx); err != nil {
		return WrapExitError(ExitFailure, "timeline rejected", err)
	}
	defer svc.Stop()

	summary, err := svc.Summary(ctx)
	if err != nil {
		return WrapExitError(ExitFailure, "summarize timeline", err)
	}
	return formatter.Summary(summary, printer)
}
