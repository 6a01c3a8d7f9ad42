// Package modpath derives the on-disk locations used by the registry: the
// active mods directory, its ".disabled" sibling for inactive mods, and its
// ".backup" sibling for files replaced during updates. All functions are
// pure; paths are normalized to forward slashes.
package modpath

import (
	"strings"

	"htmm/internal/domain"
)

// Normalize converts backslashes to forward slashes and trims surrounding
// whitespace and trailing slashes.
func Normalize(dir string) string {
	norm := strings.ReplaceAll(strings.TrimSpace(dir), "\\", "/")
	for len(norm) > 1 && strings.HasSuffix(norm, "/") {
		norm = strings.TrimSuffix(norm, "/")
	}
	return norm
}

// siblingDir appends suffix to the last path segment of activeDir,
// preserving all preceding segments. Degenerate input still yields a value:
// an empty path becomes just the suffix.
func siblingDir(activeDir, suffix string) string {
	norm := Normalize(activeDir)

	var segs []string
	for _, s := range strings.Split(norm, "/") {
		if s != "" {
			segs = append(segs, s)
		}
	}
	if len(segs) == 0 {
		return norm + suffix
	}

	segs[len(segs)-1] += suffix
	joined := strings.Join(segs, "/")
	if strings.HasPrefix(norm, "/") {
		joined = "/" + joined
	}
	return joined
}

// DisabledDir returns the sibling directory holding disabled mods, e.g.
// ".../UserData/Mods" -> ".../UserData/Mods.disabled".
func DisabledDir(activeDir string) string {
	return siblingDir(activeDir, ".disabled")
}

// BackupDir returns the sibling directory that receives files replaced by
// updates, e.g. ".../UserData/Mods" -> ".../UserData/Mods.backup".
func BackupDir(activeDir string) string {
	return siblingDir(activeDir, ".backup")
}

// Join appends a filename to a directory using forward slashes.
func Join(dir, name string) string {
	return Normalize(dir) + "/" + name
}

// RecordPath returns the full path of a record's file given its enabled
// state: activeDir for enabled records, disabledDir otherwise.
func RecordPath(rec *domain.InstalledModRecord, activeDir, disabledDir string) string {
	if rec.Enabled {
		return Join(activeDir, rec.InstalledFilename)
	}
	return Join(disabledDir, rec.InstalledFilename)
}
