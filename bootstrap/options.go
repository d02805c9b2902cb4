package bootstrap

import (
	"io"

	"github.com/kbukum/arraygate/logger"
)

// Option customizes NewApp. Options do not depend on the config type.
type Option func(*appOptions)

type appOptions struct {
	logger     *logger.Logger
	summaryOut io.Writer
}

// WithLogger replaces the global logger built from the Logging section.
func WithLogger(l *logger.Logger) Option {
	return func(o *appOptions) { o.logger = l }
}

// WithSummaryOutput sends the startup summary to w instead of stdout.
func WithSummaryOutput(w io.Writer) Option {
	return func(o *appOptions) { o.summaryOut = w }
}
