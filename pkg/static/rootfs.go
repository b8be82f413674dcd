package static

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"syscall"
)

var (
	// ErrPathEscape is returned when a request path resolves outside the root.
	ErrPathEscape = errors.New("path escapes root")

	errRefused = fmt.Errorf("%w: %w", ErrPathEscape, fs.ErrPermission)
)

// RootFS is a read-only fs.FS confined to an os.Root.
type RootFS struct {
	root   *os.Root
	logger *slog.Logger
}

// NewRootFS wraps root so that it can back the standard file server.
func NewRootFS(root *os.Root, logger *slog.Logger) *RootFS {
	if logger == nil {
		logger = slog.Default()
	}
	return &RootFS{root: root, logger: logger}
}

// Open opens name relative to the root.
//
// os.Root reports symlink escapes with an unexported error, so anything that
// is not a missing file or a permission problem is treated as an escape and
// reported as fs.ErrPermission.
func (r *RootFS) Open(name string) (fs.File, error) {
	if !fs.ValidPath(name) {
		return nil, &fs.PathError{Op: "open", Path: name, Err: errRefused}
	}

	f, err := r.root.Open(name)
	if err == nil {
		return f, nil
	}

	switch {
	case errors.Is(err, fs.ErrNotExist), errors.Is(err, fs.ErrPermission):
		return nil, err
	case errors.Is(err, syscall.ENOTDIR):
		return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrNotExist}
	}

	r.logger.Warn("open refused", slog.String("name", name), slog.String("error", err.Error()))
	return nil, &fs.PathError{Op: "open", Path: name, Err: errRefused}
}
