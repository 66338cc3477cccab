package maf

import (
	"context"
	"log/slog"

	"github.com/hupe1980/maffilter/internal/logging"
)

// Option configures a Reader, Writer, or filter pass.
type Option func(*options)

type options struct {
	name   string
	field  string
	value  string
	logger *slog.Logger
}

func newOptions(defaultName string, opts []Option) options {
	o := options{
		name:  defaultName,
		field: FilterField,
		value: PassValue,
	}

	for _, opt := range opts {
		opt(&o)
	}

	return o
}

// WithName sets the stream name used in error messages, typically the file
// path.
func WithName(name string) Option {
	return func(o *options) {
		o.name = name
	}
}

// WithMatch makes a filter pass keep records whose field equals value,
// instead of FILTER == PASS. The field must be declared by the header; an
// empty field makes the pass fail with ErrEmptyMatchField.
func WithMatch(field, value string) Option {
	return func(o *options) {
		o.field = field
		o.value = value
	}
}

// WithLogger sets the logger of a filter pass. By default the logger carried
// by the context is used.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

func (o options) loggerFor(ctx context.Context) *slog.Logger {
	if o.logger != nil {
		return o.logger
	}

	return logging.FromContext(ctx)
}
