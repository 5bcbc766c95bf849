package ginurn

import (
	"log/slog"

	"github.com/ghettovoice/urn"
	"github.com/ghettovoice/urn/internal/log"
)

// DefaultContextKey is the gin context key the parsed URN is stored under.
const DefaultContextKey = "urn"

type options struct {
	logger    *slog.Logger
	validator Validator
	mode      urn.Mode
	key       string
}

// Option configures the [Param] middleware.
type Option func(*options)

// WithLogger sets the logger rejected values are reported to.
// Defaults to a noop logger.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithValidator replaces the validator.
// It takes precedence over [WithMode].
func WithValidator(v Validator) Option {
	return func(o *options) {
		o.validator = v
	}
}

// WithMode sets the mode of the default validator.
// Defaults to [urn.Unescaped], since gin passes decoded path values.
func WithMode(mode urn.Mode) Option {
	return func(o *options) {
		o.mode = mode
	}
}

// WithContextKey sets the gin context key the parsed URN is stored under.
func WithContextKey(key string) Option {
	return func(o *options) {
		if key != "" {
			o.key = key
		}
	}
}

func newOptions(opts []Option) *options {
	o := &options{
		logger: log.Noop,
		mode:   urn.Unescaped,
		key:    DefaultContextKey,
	}
	for _, opt := range opts {
		opt(o)
	}
	if o.validator == nil {
		o.validator = ModeValidator(o.mode)
	}
	return o
}
