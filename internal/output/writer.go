package output

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strconv"
)

// stageAttempts bounds the search for an unused staging file name.
const stageAttempts = 10000

// FileWriter streams output into a temporary file next to the target path
// and renames it over the target on Commit. Until Commit succeeds the target
// is left untouched, so a failed run never leaves a partial file behind.
//
// A symlinked target is resolved first, so the rename replaces the file the
// link points to and the link itself survives. Targets that are neither
// regular files nor directories (FIFOs, character devices such as
// /dev/stdout) cannot be replaced; they are opened and written directly.
type FileWriter struct {
	path   string
	target string
	perm   os.FileMode
	logger *slog.Logger

	file   *os.File
	direct bool
	exists bool
	done   bool
}

// FileWriterOption configures a FileWriter.
type FileWriterOption func(*FileWriter)

// WithPermissions sets the permissions of the committed file. Without it an
// existing target keeps its mode and a new file gets 0666 minus the umask.
func WithPermissions(perm os.FileMode) FileWriterOption {
	return func(fw *FileWriter) {
		fw.perm = perm
	}
}

// WithLogger sets a logger for the FileWriter.
func WithLogger(logger *slog.Logger) FileWriterOption {
	return func(fw *FileWriter) {
		fw.logger = logger
	}
}

// Create prepares path for writing. The directory of the (resolved) target
// must already exist.
func Create(path string, opts ...FileWriterOption) (*FileWriter, error) {
	fw := &FileWriter{
		path:   path,
		logger: slog.Default(),
	}

	for _, opt := range opts {
		opt(fw)
	}

	target, err := resolveTarget(path)
	if err != nil {
		return nil, err
	}

	fw.target = target

	info, err := os.Stat(target)

	switch {
	case err == nil && info.IsDir():
		return nil, fmt.Errorf("%s is a directory", path)
	case err == nil && !info.Mode().IsRegular():
		return fw.openDirect(info.Mode())
	case err == nil:
		fw.exists = true
		if fw.perm == 0 {
			fw.perm = info.Mode().Perm()
		}
	case !errors.Is(err, fs.ErrNotExist):
		return nil, fmt.Errorf("inspecting %s: %w", path, err)
	}

	if err := fw.stage(); err != nil {
		return nil, err
	}

	fw.logger.Debug("output staged",
		slog.String("path", path),
		slog.String("target", target),
		slog.String("temp", fw.file.Name()),
	)

	return fw, nil
}

// resolveTarget follows path through any symlinks. A dangling link resolves
// to the path it names, so the file is created where the link points.
func resolveTarget(path string) (string, error) {
	info, err := os.Lstat(path)
	if err != nil || info.Mode()&fs.ModeSymlink == 0 {
		return path, nil
	}

	resolved, err := filepath.EvalSymlinks(path)
	if err == nil {
		return resolved, nil
	}

	if !errors.Is(err, fs.ErrNotExist) {
		return "", fmt.Errorf("resolving %s: %w", path, err)
	}

	dest, err := os.Readlink(path)
	if err != nil {
		return "", fmt.Errorf("resolving %s: %w", path, err)
	}

	if !filepath.IsAbs(dest) {
		dest = filepath.Join(filepath.Dir(path), dest)
	}

	return dest, nil
}

// stage creates the temporary file beside the target. It is opened with
// mode 0666 so that the process umask applies to new outputs.
func (fw *FileWriter) stage() error {
	dir, base := filepath.Split(fw.target)
	if dir == "" {
		dir = "."
	}

	for range stageAttempts {
		name := filepath.Join(dir, "."+base+"."+strconv.FormatUint(rand.Uint64(), 36)+".tmp")

		f, err := os.OpenFile(name, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o666) //nolint:gosec // caller-supplied path
		if errors.Is(err, fs.ErrExist) {
			continue
		}

		if err != nil {
			return fmt.Errorf("creating temp file in %s: %w", dir, err)
		}

		fw.file = f

		return nil
	}

	return fmt.Errorf("creating temp file in %s: %w", dir, fs.ErrExist)
}

func (fw *FileWriter) openDirect(mode fs.FileMode) (*FileWriter, error) {
	f, err := os.OpenFile(fw.target, os.O_WRONLY|os.O_TRUNC, 0) //nolint:gosec // caller-supplied path
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", fw.path, err)
	}

	fw.file = f
	fw.direct = true

	fw.logger.Debug("output opened directly",
		slog.String("path", fw.path),
		slog.String("target", fw.target),
		slog.String("type", mode.Type().String()),
	)

	return fw, nil
}

// Write appends data to the staged file, or to the target in direct mode.
func (fw *FileWriter) Write(data []byte) (int, error) {
	if fw.done {
		return 0, os.ErrClosed
	}

	return fw.file.Write(data)
}

// Commit syncs and closes the staged file and renames it over the target.
// In direct mode it only closes the target.
func (fw *FileWriter) Commit() error {
	if fw.done {
		return os.ErrClosed
	}

	fw.done = true

	if fw.direct {
		if err := fw.file.Close(); err != nil {
			return fmt.Errorf("closing %s: %w", fw.path, err)
		}

		return nil
	}

	tmpPath := fw.file.Name()

	var err error
	if fw.perm != 0 {
		err = fw.file.Chmod(fw.perm)
	}

	err = errors.Join(err, fw.file.Sync())
	if cerr := fw.file.Close(); cerr != nil {
		err = errors.Join(err, cerr)
	}

	if err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("finalizing %s: %w", tmpPath, err)
	}

	if fw.exists {
		fw.logger.Debug("overwriting existing file", slog.String("path", fw.path))
	}

	if err := os.Rename(tmpPath, fw.target); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("renaming %s to %s: %w", tmpPath, fw.target, err)
	}

	return nil
}

// Abort discards the staged file. It is a no-op after Commit or a previous
// Abort, so it can be deferred unconditionally. In direct mode whatever was
// already written stays written.
func (fw *FileWriter) Abort() {
	if fw.done {
		return
	}

	fw.done = true

	_ = fw.file.Close()

	if fw.direct {
		return
	}

	tmpPath := fw.file.Name()
	if err := os.Remove(tmpPath); err != nil && !errors.Is(err, os.ErrNotExist) {
		fw.logger.Warn("removing staged output", slog.String("temp", tmpPath), slog.Any("error", err))
	}
}

// Path returns the target file path as given to Create.
func (fw *FileWriter) Path() string {
	return fw.path
}

// Direct reports whether the target is written in place instead of staged.
func (fw *FileWriter) Direct() bool {
	return fw.direct
}
