package domain

import (
	"strconv"
	"time"
)

// Provider identifies a remote mod catalog.
type Provider string

const (
	ProviderCurseForge Provider = "curseforge"
	ProviderOrbis      Provider = "orbis"
)

// SlugUntracked marks placeholder records created by rescan for files found
// on disk with no catalog metadata. Their Name is the filename.
const SlugUntracked = "__untracked__"

// InstalledModRecord tracks one installed mod file and its metadata.
// Field names serialize camelCase to match installed_mods.json.
type InstalledModRecord struct {
	ID                int64       `json:"id"`
	Provider          Provider    `json:"provider"`
	ProjectID         *int64      `json:"projectId,omitempty"`  // CurseForge numeric project id
	ResourceID        *string     `json:"resourceId,omitempty"` // Orbis resource id
	Slug              string      `json:"slug"`
	Name              string      `json:"name"`
	InstalledFileID   *VersionRef `json:"installedFileId,omitempty"`
	InstalledFilename string      `json:"installedFilename"`
	InstalledAt       time.Time   `json:"installedAt"`
	SourceURL         string      `json:"sourceUrl,omitempty"`
	Enabled           bool        `json:"enabled"`
	Pinned            bool        `json:"pinned"`
}

// Untracked reports whether the record is a rescan placeholder.
func (m *InstalledModRecord) Untracked() bool {
	return m.Slug == SlugUntracked
}

// ProviderRef returns the provider-specific identifier as a string: the
// numeric project id for CurseForge, the resource id for Orbis. The second
// return value is false when the record has no reference (placeholders).
func (m *InstalledModRecord) ProviderRef() (string, bool) {
	switch m.Provider {
	case ProviderCurseForge:
		if m.ProjectID != nil {
			return strconv.FormatInt(*m.ProjectID, 10), true
		}
	case ProviderOrbis:
		if m.ResourceID != nil && *m.ResourceID != "" {
			return *m.ResourceID, true
		}
	}
	return "", false
}

// NextID returns the id for a new record: max existing + 1, or 1 when the
// list is empty.
func NextID(records []InstalledModRecord) int64 {
	var max int64
	for _, m := range records {
		if m.ID > max {
			max = m.ID
		}
	}
	return max + 1
}

// FindRecord returns a pointer into records for the given id, or nil.
func FindRecord(records []InstalledModRecord, id int64) *InstalledModRecord {
	for i := range records {
		if records[i].ID == id {
			return &records[i]
		}
	}
	return nil
}

// VersionFile is one downloadable file from a provider catalog.
type VersionFile struct {
	FileID      int64     `json:"fileId,omitempty"`    // CurseForge
	VersionID   string    `json:"versionId,omitempty"` // Orbis
	FileIndex   int       `json:"fileIndex,omitempty"` // Orbis: index in the version's file list
	FileName    string    `json:"fileName"`
	DisplayName string    `json:"displayName,omitempty"`
	ReleaseType string    `json:"releaseType,omitempty"` // "release", "beta", "alpha", or "" when unknown
	FileDate    time.Time `json:"fileDate"`
	DownloadURL string    `json:"downloadUrl,omitempty"`
}

// Ref returns the file's version identity for the given provider.
// The second return value is false when the identity is incomplete.
func (f VersionFile) Ref(p Provider) (VersionRef, bool) {
	switch p {
	case ProviderCurseForge:
		if f.FileID != 0 {
			return NumericRef(f.FileID), true
		}
	case ProviderOrbis:
		if f.VersionID != "" {
			return CompositeRef(f.VersionID, f.FileIndex), true
		}
	}
	return VersionRef{}, false
}

// BestName returns the filename to install the file under.
func (f VersionFile) BestName() string {
	if f.FileName != "" {
		return f.FileName
	}
	if f.DisplayName != "" {
		return f.DisplayName
	}
	return "mod.jar"
}

// ModSummary is catalog metadata for a mod (search results and details).
type ModSummary struct {
	Provider   Provider
	ProjectID  int64  // CurseForge
	ResourceID string // Orbis
	Slug       string
	Name       string
	Summary    string
	SourceURL  string
}

// Ref returns the provider-specific identifier as a string.
func (m ModSummary) Ref() string {
	if m.Provider == ProviderCurseForge {
		return strconv.FormatInt(m.ProjectID, 10)
	}
	return m.ResourceID
}
