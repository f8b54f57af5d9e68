package ingest

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

// Batch-fatal discovery failures. Per-file failures never surface
// through these; only directory-level problems abort a run.
var (
	// ErrDirectoryNotFound means the input directory does not exist.
	ErrDirectoryNotFound = errors.New("input directory not found")
	// ErrPermissionDenied means the input directory exists but cannot be read.
	ErrPermissionDenied = errors.New("permission denied reading input directory")
)

// ListDataFiles lists the file names in dir ending with ext, in
// directory listing order. Zero matches is not an error; it yields an
// empty slice and the caller reports "no data".
func ListDataFiles(dir, ext string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrDirectoryNotFound, dir)
		}
		if os.IsPermission(err) {
			return nil, fmt.Errorf("%w: %s", ErrPermissionDenied, dir)
		}
		return nil, fmt.Errorf("failed to list %s: %w", dir, err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if strings.HasSuffix(entry.Name(), ext) {
			files = append(files, entry.Name())
		}
	}
	return files, nil
}

// EnsureInputDir creates the input directory if it does not exist.
// Idempotent; invoked once by the owning caller as an explicit setup
// step, not as a per-run discovery behavior.
func EnsureInputDir(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create input directory %s: %w", dir, err)
	}
	return nil
}
