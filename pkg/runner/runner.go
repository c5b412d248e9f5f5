package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/aretw0/waypoint/internal/logging"
	"github.com/aretw0/waypoint/pkg/domain"
)

// Guide is the part of the engine the runner drives.
type Guide interface {
	Start(ctx context.Context, tourID string) error
	Advance(ctx context.Context) error
	Retreat(ctx context.Context) error
	RequestCancel(ctx context.Context) error
	Close(ctx context.Context)
	Session() domain.Session
}

// LineReader supplies commands, one per line.
type LineReader interface {
	ReadLine(ctx context.Context) (string, error)
}

// Runner handles the command loop of one tour.
type Runner struct {
	Guide  Guide
	Input  LineReader
	Output io.Writer

	// Logger is used for internal debug logging.
	// If nil, a no-op logger is used.
	Logger *slog.Logger
}

// NewRunner creates a runner reading commands from input.
func NewRunner(guide Guide, input LineReader, opts ...Option) *Runner {
	r := &Runner{
		Guide:  guide,
		Input:  input,
		Output: io.Discard,
		Logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run starts tourID and processes commands until the tour ends. When the
// input is exhausted or ctx is done, the tour is closed; the former returns
// nil and the latter ctx.Err().
func (r *Runner) Run(ctx context.Context, tourID string) error {
	if err := r.Guide.Start(ctx, tourID); err != nil {
		return err
	}
	sessionID := r.Guide.Session().ID

	for r.active(sessionID) {
		raw, err := r.Input.ReadLine(ctx)
		if err != nil {
			r.Guide.Close(context.WithoutCancel(ctx))
			if errors.Is(err, io.EOF) {
				r.Logger.Debug("input closed, tour aborted", "session_id", sessionID)
				return nil
			}
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return fmt.Errorf("input error: %w", err)
		}

		cmd, err := SanitizeInput(raw)
		if err != nil {
			fmt.Fprintf(r.Output, "Invalid input: %v\n", err)
			continue
		}

		if err := r.dispatch(ctx, strings.ToLower(strings.TrimSpace(cmd))); err != nil {
			r.Logger.Warn("command failed", "command", cmd, "session_id", sessionID, "err", err)
			fmt.Fprintf(r.Output, "Error: %v\n", err)
		}
	}
	return nil
}

func (r *Runner) active(sessionID string) bool {
	s := r.Guide.Session()
	return s.ID == sessionID && s.Status == domain.StatusActive
}

func (r *Runner) dispatch(ctx context.Context, cmd string) error {
	switch cmd {
	case "", "n", "next":
		return r.Guide.Advance(ctx)
	case "p", "b", "back":
		return r.Guide.Retreat(ctx)
	case "q", "quit", "exit":
		return r.Guide.RequestCancel(ctx)
	case "h", "?", "help":
		fmt.Fprintln(r.Output, "Commands: [enter] next, [p] back, [q] quit, [h] help")
		return nil
	default:
		fmt.Fprintf(r.Output, "Unknown command %q. Type h for help.\n", cmd)
		return nil
	}
}
