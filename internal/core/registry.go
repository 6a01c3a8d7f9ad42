package core

import (
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"htmm/internal/domain"
	"htmm/internal/fsops"
	"htmm/internal/modpath"
	"htmm/internal/storage/store"
)

// Registry manages the installed-mod records and their on-disk files. A
// record's Enabled flag and its file location move together: enabled files
// live in the mods directory, disabled files in its ".disabled" sibling.
type Registry struct {
	store   *store.Store
	modsDir string
}

// NewRegistry creates a registry manager.
func NewRegistry(st *store.Store, modsDir string) *Registry {
	return &Registry{store: st, modsDir: modsDir}
}

func (r *Registry) dirs() (active, disabled string, err error) {
	if r.modsDir == "" {
		return "", "", domain.ErrModsDirNotSet
	}
	active = modpath.Normalize(r.modsDir)
	return active, modpath.DisabledDir(active), nil
}

// List returns all installed-mod records.
func (r *Registry) List() ([]domain.InstalledModRecord, error) {
	return r.store.LoadRecords()
}

// Get returns a single record by id.
func (r *Registry) Get(id int64) (*domain.InstalledModRecord, error) {
	records, err := r.store.LoadRecords()
	if err != nil {
		return nil, err
	}
	rec := domain.FindRecord(records, id)
	if rec == nil {
		return nil, fmt.Errorf("%w: id %d", domain.ErrModNotFound, id)
	}
	out := *rec
	return &out, nil
}

// Toggle enables or disables a record by moving its file between the active
// and disabled directories. The record keeps whatever filename the move
// actually produced, so collision suffixes are never lost. When a profile is
// active its mod set is updated to reflect the new global enabled state.
func (r *Registry) Toggle(id int64) (*domain.InstalledModRecord, error) {
	activeDir, disabledDir, err := r.dirs()
	if err != nil {
		return nil, err
	}

	records, err := r.store.LoadRecords()
	if err != nil {
		return nil, err
	}
	rec := domain.FindRecord(records, id)
	if rec == nil {
		return nil, fmt.Errorf("%w: id %d", domain.ErrModNotFound, id)
	}

	fromDir, toDir := disabledDir, activeDir
	if rec.Enabled {
		fromDir, toDir = activeDir, disabledDir
	}

	if _, err := fsops.EnsureDir(toDir); err != nil {
		return nil, err
	}

	finalPath, err := fsops.MoveFile(
		modpath.Join(fromDir, rec.InstalledFilename),
		modpath.Join(toDir, rec.InstalledFilename),
	)
	if err != nil {
		return nil, err
	}

	rec.Enabled = !rec.Enabled
	rec.InstalledFilename = filepath.Base(finalPath)

	if err := r.store.SaveRecords(records); err != nil {
		return nil, err
	}

	if err := r.syncActiveProfile(records); err != nil {
		return nil, err
	}

	out := *rec
	return &out, nil
}

// syncActiveProfile rewrites the active profile's mod set from the global
// enabled flags so manual toggles are not silently reverted by the next
// profile switch.
func (r *Registry) syncActiveProfile(records []domain.InstalledModRecord) error {
	profiles, err := r.store.LoadProfiles()
	if err != nil {
		return err
	}
	active := profiles.Active()
	if active == nil {
		return nil
	}

	enabled := make([]int64, 0, len(records))
	for _, rec := range records {
		if rec.Enabled {
			enabled = append(enabled, rec.ID)
		}
	}
	active.EnabledModIDs = enabled

	return r.store.SaveProfiles(profiles)
}

// SetPinned marks or unmarks a record as pinned. Pinned records are excluded
// from update checks.
func (r *Registry) SetPinned(id int64, pinned bool) (*domain.InstalledModRecord, error) {
	records, err := r.store.LoadRecords()
	if err != nil {
		return nil, err
	}
	rec := domain.FindRecord(records, id)
	if rec == nil {
		return nil, fmt.Errorf("%w: id %d", domain.ErrModNotFound, id)
	}

	rec.Pinned = pinned
	if err := r.store.SaveRecords(records); err != nil {
		return nil, err
	}

	out := *rec
	return &out, nil
}

// Remove moves a record's file to the system trash and drops the record.
// The record survives when trashing fails, so the registry never claims a
// file is gone while it still sits in the mods directory. A file already
// missing from disk does not block removal.
func (r *Registry) Remove(id int64) error {
	activeDir, disabledDir, err := r.dirs()
	if err != nil {
		return err
	}

	records, err := r.store.LoadRecords()
	if err != nil {
		return err
	}
	rec := domain.FindRecord(records, id)
	if rec == nil {
		return fmt.Errorf("%w: id %d", domain.ErrModNotFound, id)
	}

	if err := fsops.Trash(modpath.RecordPath(rec, activeDir, disabledDir)); err != nil {
		if !errors.Is(err, domain.ErrNotFoundLocal) {
			return err
		}
	}

	kept := make([]domain.InstalledModRecord, 0, len(records)-1)
	for _, m := range records {
		if m.ID != id {
			kept = append(kept, m)
		}
	}
	return r.store.SaveRecords(kept)
}

// RescanResult lists files found on disk that no record tracks.
type RescanResult struct {
	InActive   []string `json:"inActive"`
	InDisabled []string `json:"inDisabled"`
}

// Rescan compares the mods directories against the registry and returns the
// untracked files. It never modifies records.
func (r *Registry) Rescan() (*RescanResult, error) {
	activeDir, disabledDir, err := r.dirs()
	if err != nil {
		return nil, err
	}

	records, err := r.store.LoadRecords()
	if err != nil {
		return nil, err
	}

	tracked := make(map[string]bool, len(records))
	for _, rec := range records {
		tracked[rec.InstalledFilename] = true
	}

	result := &RescanResult{InActive: []string{}, InDisabled: []string{}}

	if names, err := fsops.ListFilenames(activeDir); err == nil {
		for _, name := range names {
			if !tracked[name] {
				result.InActive = append(result.InActive, name)
			}
		}
	}
	if names, err := fsops.ListFilenames(disabledDir); err == nil {
		for _, name := range names {
			if !tracked[name] {
				result.InDisabled = append(result.InDisabled, name)
			}
		}
	}

	return result, nil
}

// AdoptUntracked creates a placeholder record for a file found by rescan.
// The record carries no catalog identity, so it is skipped by update checks
// and exports until replaced by a proper install.
func (r *Registry) AdoptUntracked(filename string, inActiveDir bool) (*domain.InstalledModRecord, error) {
	if _, _, err := r.dirs(); err != nil {
		return nil, err
	}

	records, err := r.store.LoadRecords()
	if err != nil {
		return nil, err
	}

	rec := domain.InstalledModRecord{
		ID:                domain.NextID(records),
		Provider:          domain.ProviderOrbis,
		Slug:              domain.SlugUntracked,
		Name:              filename,
		InstalledFilename: filename,
		InstalledAt:       time.Now().UTC(),
		Enabled:           inActiveDir,
	}

	records = append(records, rec)
	if err := r.store.SaveRecords(records); err != nil {
		return nil, err
	}
	return &rec, nil
}

// VerifyResult reports what a verification pass found and fixed.
type VerifyResult struct {
	// Repaired records had their Enabled flag corrected to match the
	// directory their file was actually found in.
	Repaired []domain.InstalledModRecord `json:"repaired"`

	// Missing records have no file in either directory.
	Missing []domain.InstalledModRecord `json:"missing"`

	// Ambiguous records have a file of the same name in both directories.
	// Their flag is left untouched; resolution needs a human.
	Ambiguous []domain.InstalledModRecord `json:"ambiguous"`
}

// VerifyAndRepair reconciles each record's Enabled flag against where its
// file actually is. A record whose file sits in exactly one directory gets
// its flag corrected; a file in both directories is reported as ambiguous
// and never auto-resolved.
func (r *Registry) VerifyAndRepair() (*VerifyResult, error) {
	activeDir, disabledDir, err := r.dirs()
	if err != nil {
		return nil, err
	}

	records, err := r.store.LoadRecords()
	if err != nil {
		return nil, err
	}

	inActive := make(map[string]bool)
	if names, err := fsops.ListFilenames(activeDir); err == nil {
		for _, n := range names {
			inActive[n] = true
		}
	}
	inDisabled := make(map[string]bool)
	if names, err := fsops.ListFilenames(disabledDir); err == nil {
		for _, n := range names {
			inDisabled[n] = true
		}
	}

	result := &VerifyResult{}
	changed := false

	for i := range records {
		rec := &records[i]
		active := inActive[rec.InstalledFilename]
		disabled := inDisabled[rec.InstalledFilename]

		switch {
		case active && disabled:
			result.Ambiguous = append(result.Ambiguous, *rec)
		case !active && !disabled:
			result.Missing = append(result.Missing, *rec)
		case active != rec.Enabled:
			rec.Enabled = active
			changed = true
			result.Repaired = append(result.Repaired, *rec)
		}
	}

	if changed {
		if err := r.store.SaveRecords(records); err != nil {
			return nil, err
		}
	}
	return result, nil
}
