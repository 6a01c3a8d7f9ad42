// Package fsops implements the filesystem capabilities the registry relies
// on: collision-safe moves, trash removal, directory listing, and HTTP
// downloads. Destination collisions are resolved by appending " (n)" to the
// filename stem, and the path actually used is always returned so callers
// can record it.
package fsops

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"htmm/internal/domain"
)

// UniquePath returns a path that does not exist yet. If target exists,
// " (1)", " (2)", ... is appended to the filename stem.
func UniquePath(target string) string {
	if _, err := os.Lstat(target); errors.Is(err, os.ErrNotExist) {
		return target
	}

	ext := filepath.Ext(target)
	stem := strings.TrimSuffix(filepath.Base(target), ext)
	dir := filepath.Dir(target)

	for n := 1; n < 1000; n++ {
		p := filepath.Join(dir, fmt.Sprintf("%s (%d)%s", stem, n, ext))
		if _, err := os.Lstat(p); errors.Is(err, os.ErrNotExist) {
			return p
		}
	}
	return target
}

// MoveFile moves a file, resolving destination collisions with a unique
// name. Returns the path actually used.
func MoveFile(from, to string) (string, error) {
	info, err := os.Lstat(from)
	if errors.Is(err, os.ErrNotExist) {
		return "", fmt.Errorf("%w: %s", domain.ErrNotFoundLocal, from)
	}
	if err != nil {
		return "", fmt.Errorf("%w: stat %s: %v", domain.ErrMoveFailed, from, err)
	}
	if info.IsDir() {
		return "", fmt.Errorf("%w: source is a directory: %s", domain.ErrMoveFailed, from)
	}

	if err := os.MkdirAll(filepath.Dir(to), 0755); err != nil {
		return "", fmt.Errorf("%w: creating destination dir: %v", domain.ErrMoveFailed, err)
	}

	final := UniquePath(to)
	if err := os.Rename(from, final); err != nil {
		return "", fmt.Errorf("%w: %s -> %s: %v", domain.ErrMoveFailed, from, final, err)
	}
	return final, nil
}

// ListFilenames returns the names of regular files directly inside dir,
// sorted. Subdirectories are skipped.
func ListFilenames(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading directory %s: %w", dir, err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		names = append(names, e.Name())
	}
	return names, nil
}

// EnsureDir creates the directory if missing. Returns true when it was
// created, and an error if the path exists but is not a directory.
func EnsureDir(path string) (bool, error) {
	if path = strings.TrimSpace(path); path == "" {
		return false, fmt.Errorf("path is empty")
	}

	info, err := os.Stat(path)
	if err == nil {
		if !info.IsDir() {
			return false, fmt.Errorf("%s exists but is not a directory", path)
		}
		return false, nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return false, fmt.Errorf("checking %s: %w", path, err)
	}

	if err := os.MkdirAll(path, 0755); err != nil {
		return false, fmt.Errorf("creating %s: %w", path, err)
	}
	return true, nil
}

// ReplaceFile swaps a downloaded file in for an installed one: the old file
// is moved into backupDir with a ".bak" suffix (never deleted in place), then
// the new temp file is renamed to its canonical name in finalDir. Returns the
// filename actually used, which may carry a collision suffix.
func ReplaceFile(oldPath, newTempPath, finalDir, newFilename, backupDir string) (string, error) {
	if _, err := os.Lstat(oldPath); err != nil {
		return "", fmt.Errorf("%w: existing mod file: %s", domain.ErrNotFoundLocal, oldPath)
	}
	if _, err := os.Lstat(newTempPath); err != nil {
		return "", fmt.Errorf("%w: downloaded file: %s", domain.ErrNotFoundLocal, newTempPath)
	}
	if newFilename = strings.TrimSpace(newFilename); newFilename == "" {
		return "", fmt.Errorf("%w: new filename is empty", domain.ErrMoveFailed)
	}

	if err := os.MkdirAll(backupDir, 0755); err != nil {
		return "", fmt.Errorf("%w: creating backup dir: %v", domain.ErrMoveFailed, err)
	}

	backupPath := UniquePath(filepath.Join(backupDir, filepath.Base(oldPath)+".bak"))
	if err := os.Rename(oldPath, backupPath); err != nil {
		return "", fmt.Errorf("%w: backing up %s: %v", domain.ErrMoveFailed, oldPath, err)
	}

	final := UniquePath(filepath.Join(finalDir, newFilename))
	if err := os.Rename(newTempPath, final); err != nil {
		return "", fmt.Errorf("%w: installing %s: %v", domain.ErrMoveFailed, newFilename, err)
	}
	return filepath.Base(final), nil
}
