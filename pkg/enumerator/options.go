package enumerator

import (
	"log/slog"

	"github.com/aretw0/tabula/internal/metrics"
	"github.com/aretw0/tabula/pkg/domain"
)

// Option defines a functional option for configuring the Enumerator.
type Option func(*Enumerator)

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Enumerator) {
		e.logger = logger
	}
}

// WithHooks registers observability hooks.
func WithHooks(hooks domain.EnumerationHooks) Option {
	return func(e *Enumerator) {
		e.hooks = hooks
	}
}

// WithRecorder attaches a Prometheus recorder.
func WithRecorder(r *metrics.Recorder) Option {
	return func(e *Enumerator) {
		e.recorder = r
	}
}
