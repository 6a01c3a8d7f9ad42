package fsops

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"htmm/internal/domain"
)

// trashDir returns the freedesktop trash directory, honoring XDG_DATA_HOME.
func trashDir() (string, error) {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "Trash"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("home directory: %w", err)
	}
	return filepath.Join(home, ".local", "share", "Trash"), nil
}

// Trash moves a file to the user's trash (freedesktop Trash spec) so removal
// stays recoverable. The record must not be dropped when this fails.
func Trash(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrTrashFailed, err)
	}
	if _, err := os.Lstat(abs); errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("%w: %s", domain.ErrNotFoundLocal, abs)
	}

	trash, err := trashDir()
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrTrashFailed, err)
	}
	filesDir := filepath.Join(trash, "files")
	infoDir := filepath.Join(trash, "info")
	for _, d := range []string{filesDir, infoDir} {
		if err := os.MkdirAll(d, 0700); err != nil {
			return fmt.Errorf("%w: creating %s: %v", domain.ErrTrashFailed, d, err)
		}
	}

	dest := UniquePath(filepath.Join(filesDir, filepath.Base(abs)))
	info := fmt.Sprintf("[Trash Info]\nPath=%s\nDeletionDate=%s\n",
		url.PathEscape(abs), time.Now().Format("2006-01-02T15:04:05"))
	infoPath := filepath.Join(infoDir, filepath.Base(dest)+".trashinfo")
	if err := os.WriteFile(infoPath, []byte(info), 0600); err != nil {
		return fmt.Errorf("%w: writing trash info: %v", domain.ErrTrashFailed, err)
	}

	if err := os.Rename(abs, dest); err != nil {
		os.Remove(infoPath)
		return fmt.Errorf("%w: %s: %v", domain.ErrTrashFailed, abs, err)
	}
	return nil
}
