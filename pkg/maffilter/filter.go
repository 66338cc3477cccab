// Package maffilter provides a public Go API for filtering tab-delimited
// mutation annotation (MAF) files down to the records that passed upstream
// quality control.
//
// Basic usage:
//
//	res, err := maffilter.FilterFile(ctx, "calls.maf", "calls.pass.maf")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("kept %d of %d records\n", res.Kept, res.Read)
//
// Streams can be filtered directly with [Filter]. Errors can be classified
// with errors.As against [InputError], [OutputError],
// [SchemaFieldMissingError] and [MalformedRowError], or with
// errors.Is(err, [ErrEmptyInput]).
package maffilter

import (
	"context"
	"io"
	"log/slog"

	"github.com/hupe1980/maffilter/internal/maf"
)

// Error types reported by Filter and FilterFile.
type (
	InputError              = maf.InputError
	OutputError             = maf.OutputError
	SchemaFieldMissingError = maf.SchemaFieldMissingError
	MalformedRowError       = maf.MalformedRowError
)

// Sentinel errors reported by Filter and FilterFile.
var (
	// ErrEmptyInput is returned for input without a header line.
	ErrEmptyInput = maf.ErrEmptyInput

	// ErrEmptyMatchField is returned when WithMatch names no field.
	ErrEmptyMatchField = maf.ErrEmptyMatchField
)

// discardLogger returns a logger that discards all output.
func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// Option configures a filter run.
// Use the With* functions to create Options.
type Option func(*options)

type options struct {
	logger *slog.Logger
	name   string
	match  bool
	field  string
	value  string
}

// WithLogger sets the logger used for progress and summary messages.
// By default nothing is logged.
func WithLogger(l *slog.Logger) Option { return func(o *options) { o.logger = l } }

// WithName sets the input name used in error messages of Filter.
func WithName(name string) Option { return func(o *options) { o.name = name } }

// WithMatch keeps records whose field equals value instead of
// FILTER == PASS. An empty field is rejected with [ErrEmptyMatchField].
func WithMatch(field, value string) Option {
	return func(o *options) {
		o.match = true
		o.field = field
		o.value = value
	}
}

// Result summarizes a filter run.
type Result struct {
	// Read is the number of data records parsed.
	Read int
	// Kept is the number of records written to the output.
	Kept int
	// Dropped is Read minus Kept.
	Dropped int
}

func (o *options) internal() []maf.Option {
	opts := []maf.Option{maf.WithLogger(o.logger)}

	if o.name != "" {
		opts = append(opts, maf.WithName(o.name))
	}

	if o.match {
		opts = append(opts, maf.WithMatch(o.field, o.value))
	}

	return opts
}

func buildOptions(opts []Option) *options {
	o := &options{logger: discardLogger()}

	for _, opt := range opts {
		opt(o)
	}

	if o.logger == nil {
		o.logger = discardLogger()
	}

	return o
}

// Filter copies the header of r to w followed by the retained records.
func Filter(ctx context.Context, r io.Reader, w io.Writer, opts ...Option) (*Result, error) {
	stats, err := maf.Filter(ctx, r, w, buildOptions(opts).internal()...)

	return toResult(stats), err
}

// FilterFile filters the file at inPath into outPath. On error outPath is
// left unchanged.
func FilterFile(ctx context.Context, inPath, outPath string, opts ...Option) (*Result, error) {
	stats, err := maf.FilterFile(ctx, inPath, outPath, buildOptions(opts).internal()...)

	return toResult(stats), err
}

func toResult(s maf.Stats) *Result {
	return &Result{Read: s.Read, Kept: s.Kept, Dropped: s.Dropped}
}
