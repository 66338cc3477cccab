package maf

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/hupe1980/maffilter/internal/output"
)

// Stats counts the data records seen by one filter pass.
type Stats struct {
	Read    int
	Kept    int
	Dropped int
}

// Filter copies the header of r to w followed by every record matching the
// pass predicate (FILTER == PASS unless WithMatch is given). The header is
// validated before anything is written to w.
func Filter(ctx context.Context, r io.Reader, w io.Writer, opts ...Option) (Stats, error) {
	o := newOptions("<input>", opts)
	if o.field == "" {
		return Stats{}, ErrEmptyMatchField
	}

	rd, err := NewReader(r, WithName(o.name))
	if err != nil {
		return Stats{}, err
	}

	if err := RequireField(rd.Schema(), o.field, o.name); err != nil {
		return Stats{}, err
	}

	return run(ctx, rd, NewWriter(w, rd.Schema()), o)
}

// FilterFile filters the file at inPath into outPath. A regular output is
// staged beside the file outPath resolves to and only renamed into place once
// every record has been written, so on error it is left as it was. Symlinks
// are followed and keep pointing at the new content. FIFOs and devices are
// written in place. inPath and outPath may name the same file.
func FilterFile(ctx context.Context, inPath, outPath string, opts ...Option) (Stats, error) {
	o := newOptions(inPath, opts)
	if o.field == "" {
		return Stats{}, ErrEmptyMatchField
	}
	logger := o.loggerFor(ctx)

	in, err := os.Open(inPath) //nolint:gosec // caller-supplied path
	if err != nil {
		return Stats{}, &InputError{Path: inPath, Err: err}
	}
	defer in.Close()

	rd, err := NewReader(in, WithName(inPath))
	if err != nil {
		return Stats{}, err
	}

	if err := RequireField(rd.Schema(), o.field, inPath); err != nil {
		return Stats{}, err
	}

	logger.Debug("header parsed",
		slog.String("path", inPath),
		slog.Int("fields", rd.Schema().Len()),
	)

	out, err := output.Create(outPath, output.WithLogger(logger))
	if err != nil {
		return Stats{}, &OutputError{Path: outPath, Err: err}
	}
	defer out.Abort()

	stats, err := run(ctx, rd, NewWriter(out, rd.Schema(), WithName(outPath)), o)
	if err != nil {
		return stats, err
	}

	if err := out.Commit(); err != nil {
		return stats, &OutputError{Path: outPath, Err: err}
	}

	logger.Info("filter complete",
		slog.String("input", inPath),
		slog.String("output", outPath),
		slog.Int("read", stats.Read),
		slog.Int("kept", stats.Kept),
		slog.Int("dropped", stats.Dropped),
	)

	return stats, nil
}

func run(ctx context.Context, rd *Reader, wr *Writer, o options) (Stats, error) {
	var stats Stats

	if err := wr.WriteHeader(); err != nil {
		return stats, err
	}

	keep := FieldEquals(o.field, o.value)

	for rec, err := range rd.All() {
		if err != nil {
			return stats, err
		}

		stats.Read++

		if !keep(rec) {
			stats.Dropped++
			continue
		}

		if err := wr.Write(rec); err != nil {
			return stats, err
		}

		stats.Kept++
	}

	if err := wr.Flush(); err != nil {
		return stats, err
	}

	o.loggerFor(ctx).Debug("records streamed",
		slog.String("input", o.name),
		slog.Int("lines", rd.Line()),
	)

	return stats, nil
}
