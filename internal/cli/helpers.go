package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/aretw0/waypoint/internal/config"
	"github.com/aretw0/waypoint/internal/logging"
	"github.com/aretw0/waypoint/pkg/domain"
)

// NewLogger configures the application logger. Logs go to stderr (so they do
// not mix with the tour on stdout) or to a rotated file when configured.
// The returned closer flushes the file.
func NewLogger(cfg config.LogConfig) (*slog.Logger, io.Closer) {
	level := logging.ParseLevel(cfg.Level)
	if cfg.File != "" {
		return logging.NewFile(cfg.File, level)
	}
	return logging.NewWithWriter(os.Stderr, level), io.NopCloser(nil)
}

// printSystemMessage prints a standardized system message.
func printSystemMessage(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, ">>> %s\n", fmt.Sprintf(format, args...))
}

func describeOutcome(o domain.Outcome) string {
	switch o.Reason {
	case domain.ReasonCompleted:
		return fmt.Sprintf("Tour '%s' completed.", o.TourID)
	case domain.ReasonUserCancelled:
		return fmt.Sprintf("Left tour '%s' at step %d.", o.TourID, o.StepIndex+1)
	case domain.ReasonAborted:
		return fmt.Sprintf("Tour '%s' interrupted.", o.TourID)
	case domain.ReasonRejected:
		return fmt.Sprintf("Tour '%s' not started: another tour is in progress.", o.TourID)
	default:
		return fmt.Sprintf("Tour '%s' not started: %s.", o.TourID, o.Reason)
	}
}
