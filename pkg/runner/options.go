package runner

import (
	"io"
	"log/slog"
)

// Option defines a functional option for configuring the Runner.
type Option func(*Runner)

// WithLogger configures the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) {
		r.Logger = logger
	}
}

// WithOutput sets where help and command errors are printed.
func WithOutput(w io.Writer) Option {
	return func(r *Runner) {
		r.Output = w
	}
}
