package cli

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"github.com/aretw0/waypoint"
	"github.com/aretw0/waypoint/internal/config"
	"github.com/aretw0/waypoint/internal/presentation/tui"
	"github.com/aretw0/waypoint/pkg/adapters/terminal"
	"github.com/aretw0/waypoint/pkg/domain"
	"github.com/aretw0/waypoint/pkg/runner"
)

// RunOptions configures an interactive tour.
type RunOptions struct {
	In  io.Reader
	Out io.Writer

	// Interactive enables the banner, Markdown rendering and the huh
	// confirmation prompt. Set it only when In is a terminal.
	Interactive bool
	// Width is the popover width in columns.
	Width int
}

// RunTour walks the user through tourID in the terminal.
func RunTour(ctx context.Context, cfg *config.Config, logger *slog.Logger, tourID string, opts RunOptions) error {
	consoleOpts := []terminal.Option{terminal.WithWidth(opts.Width)}
	if opts.Interactive {
		tui.PrintBanner(opts.Out)
		consoleOpts = append(consoleOpts, terminal.WithRenderer(tui.NewRenderer(opts.Width-4)))
	}
	console := terminal.New(opts.In, opts.Out, consoleOpts...)

	guideOpts := []waypoint.Option{
		waypoint.WithNavigator(console),
		waypoint.WithRenderer(console),
		waypoint.WithCompletion(func(o domain.Outcome) {
			printSystemMessage(opts.Out, "%s", describeOutcome(o))
		}),
	}
	if opts.Interactive {
		guideOpts = append(guideOpts, waypoint.WithConfirmationGate(terminal.PromptGate{}))
	} else {
		guideOpts = append(guideOpts, waypoint.WithConfirmationGate(console))
	}

	guide, cleanup, err := NewGuide(cfg, logger, guideOpts...)
	if err != nil {
		return err
	}
	defer cleanup()

	r := runner.NewRunner(guide, console, runner.WithOutput(opts.Out), runner.WithLogger(logger))
	if err := r.Run(ctx, tourID); err != nil {
		if errors.Is(err, domain.ErrTourNotFound) {
			if hint := guide.Suggest(tourID); hint != "" {
				printSystemMessage(opts.Out, "Did you mean '%s'?", hint)
			}
		}
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	}
	return nil
}
