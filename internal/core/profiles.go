package core

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"time"

	"htmm/internal/catalog"
	"htmm/internal/domain"
	"htmm/internal/fsops"
	"htmm/internal/modpath"
	"htmm/internal/storage/store"
)

// Profiles manages named mod sets and the file moves needed to switch
// between them.
type Profiles struct {
	store     *store.Store
	catalogs  *catalog.Registry
	installer *Installer
	modsDir   string
}

// NewProfiles creates a profile manager.
func NewProfiles(st *store.Store, catalogs *catalog.Registry, installer *Installer, modsDir string) *Profiles {
	return &Profiles{store: st, catalogs: catalogs, installer: installer, modsDir: modsDir}
}

// List returns the profiles document.
func (p *Profiles) List() (domain.ProfilesData, error) {
	return p.store.LoadProfiles()
}

// Create adds a new profile and makes it active. With seedFromCurrent the
// profile captures the currently enabled records; otherwise it starts empty.
func (p *Profiles) Create(name string, seedFromCurrent bool) (*domain.ProfileRecord, error) {
	profiles, err := p.store.LoadProfiles()
	if err != nil {
		return nil, err
	}

	var enabled []int64
	if seedFromCurrent {
		records, err := p.store.LoadRecords()
		if err != nil {
			return nil, err
		}
		for _, rec := range records {
			if rec.Enabled {
				enabled = append(enabled, rec.ID)
			}
		}
	}
	if enabled == nil {
		enabled = []int64{}
	}

	profile := domain.ProfileRecord{
		ID:            profiles.NextID,
		Name:          name,
		CreatedAt:     time.Now().UTC(),
		EnabledModIDs: enabled,
	}

	profiles.NextID++
	profiles.Profiles = append(profiles.Profiles, profile)
	profiles.ActiveProfileID = &profile.ID

	if err := p.store.SaveProfiles(profiles); err != nil {
		return nil, err
	}
	return &profile, nil
}

// Rename changes a profile's name.
func (p *Profiles) Rename(id int64, name string) (*domain.ProfileRecord, error) {
	profiles, err := p.store.LoadProfiles()
	if err != nil {
		return nil, err
	}

	profile := profiles.Find(id)
	if profile == nil {
		return nil, fmt.Errorf("%w: id %d", domain.ErrProfileNotFound, id)
	}
	profile.Name = name

	if err := p.store.SaveProfiles(profiles); err != nil {
		return nil, err
	}
	out := *profile
	return &out, nil
}

// Delete removes a profile. When the active profile is deleted, the first
// remaining profile becomes active, or none when the list is empty. No files
// move; the enabled state on disk is left as-is.
func (p *Profiles) Delete(id int64) error {
	profiles, err := p.store.LoadProfiles()
	if err != nil {
		return err
	}

	if profiles.Find(id) == nil {
		return fmt.Errorf("%w: id %d", domain.ErrProfileNotFound, id)
	}

	kept := make([]domain.ProfileRecord, 0, len(profiles.Profiles)-1)
	for _, prof := range profiles.Profiles {
		if prof.ID != id {
			kept = append(kept, prof)
		}
	}
	profiles.Profiles = kept

	if profiles.ActiveProfileID != nil && *profiles.ActiveProfileID == id {
		if len(kept) > 0 {
			profiles.ActiveProfileID = &kept[0].ID
		} else {
			profiles.ActiveProfileID = nil
		}
	}

	return p.store.SaveProfiles(profiles)
}

// SwitchPlan lists the record ids a profile switch must move, disables
// before enables.
type SwitchPlan struct {
	ToDisable []int64 `json:"toDisable"`
	ToEnable  []int64 `json:"toEnable"`
}

// Total returns the number of moves the plan performs.
func (p *SwitchPlan) Total() int {
	return len(p.ToDisable) + len(p.ToEnable)
}

// ComputeSwitchPlan diffs the current enabled flags against a profile's mod
// set. Records already in the desired state are not part of the plan, so
// applying a plan twice yields an empty second plan.
func ComputeSwitchPlan(target *domain.ProfileRecord, records []domain.InstalledModRecord) SwitchPlan {
	plan := SwitchPlan{ToDisable: []int64{}, ToEnable: []int64{}}
	for _, rec := range records {
		want := target.HasMod(rec.ID)
		switch {
		case rec.Enabled && !want:
			plan.ToDisable = append(plan.ToDisable, rec.ID)
		case !rec.Enabled && want:
			plan.ToEnable = append(plan.ToEnable, rec.ID)
		}
	}
	return plan
}

// SwitchProgressFunc reports profile-switch progress after each move.
type SwitchProgressFunc func(processed, total int, name string)

// ApplySwitch moves files to match the target profile and makes it active.
// Disables run before enables. The record list is persisted after every
// successful move, so a failure mid-switch leaves the registry accurate for
// the moves already done; the switch aborts on the first failed move and the
// active profile is only updated once every move succeeded.
func (p *Profiles) ApplySwitch(id int64, progressFn SwitchProgressFunc) (*SwitchPlan, error) {
	if p.modsDir == "" {
		return nil, domain.ErrModsDirNotSet
	}
	activeDir := modpath.Normalize(p.modsDir)
	disabledDir := modpath.DisabledDir(activeDir)

	profiles, err := p.store.LoadProfiles()
	if err != nil {
		return nil, err
	}
	target := profiles.Find(id)
	if target == nil {
		return nil, fmt.Errorf("%w: id %d", domain.ErrProfileNotFound, id)
	}

	records, err := p.store.LoadRecords()
	if err != nil {
		return nil, err
	}

	plan := ComputeSwitchPlan(target, records)
	total := plan.Total()
	processed := 0

	move := func(recID int64, enable bool) error {
		rec := domain.FindRecord(records, recID)
		if rec == nil {
			return fmt.Errorf("%w: id %d", domain.ErrModNotFound, recID)
		}

		fromDir, toDir := activeDir, disabledDir
		if enable {
			fromDir, toDir = disabledDir, activeDir
		}
		if _, err := fsops.EnsureDir(toDir); err != nil {
			return err
		}

		finalPath, err := fsops.MoveFile(
			modpath.Join(fromDir, rec.InstalledFilename),
			modpath.Join(toDir, rec.InstalledFilename),
		)
		if err != nil {
			return fmt.Errorf("switching %q: %w", rec.Name, err)
		}

		rec.Enabled = enable
		rec.InstalledFilename = filepath.Base(finalPath)
		if err := p.store.SaveRecords(records); err != nil {
			return err
		}

		processed++
		if progressFn != nil {
			progressFn(processed, total, rec.Name)
		}
		return nil
	}

	for _, recID := range plan.ToDisable {
		if err := move(recID, false); err != nil {
			return &plan, err
		}
	}
	for _, recID := range plan.ToEnable {
		if err := move(recID, true); err != nil {
			return &plan, err
		}
	}

	profiles.ActiveProfileID = &target.ID
	if err := p.store.SaveProfiles(profiles); err != nil {
		return &plan, err
	}
	return &plan, nil
}

// Export builds a portable manifest of a profile's mods. Placeholder records
// and ids no record matches are silently skipped; the manifest only carries
// mods another installation could actually resolve.
func (p *Profiles) Export(id int64) (*domain.ExportedProfile, error) {
	profiles, err := p.store.LoadProfiles()
	if err != nil {
		return nil, err
	}
	profile := profiles.Find(id)
	if profile == nil {
		return nil, fmt.Errorf("%w: id %d", domain.ErrProfileNotFound, id)
	}

	records, err := p.store.LoadRecords()
	if err != nil {
		return nil, err
	}

	export := &domain.ExportedProfile{
		Name:       profile.Name,
		ExportedAt: time.Now().UTC(),
		Mods:       []domain.ExportedMod{},
	}

	for _, recID := range profile.EnabledModIDs {
		rec := domain.FindRecord(records, recID)
		if rec == nil || rec.Untracked() {
			continue
		}
		export.Mods = append(export.Mods, domain.ExportedMod{
			Provider:        rec.Provider,
			ProjectID:       rec.ProjectID,
			ResourceID:      rec.ResourceID,
			InstalledFileID: rec.InstalledFileID,
			Slug:            rec.Slug,
			Name:            rec.Name,
		})
	}

	return export, nil
}

// ImportReport summarizes what an import did.
type ImportReport struct {
	Profile   domain.ProfileRecord `json:"profile"`
	Matched   []string             `json:"matched"`   // already installed, reused
	Installed []string             `json:"installed"` // downloaded fresh
	Failed    []string             `json:"failed"`    // could not be resolved or downloaded
}

// Import recreates a profile from an exported manifest. Mods already
// installed are matched by provider reference and reused without
// re-downloading; the rest are fetched from their catalogs. The imported
// profile is created with whatever could be resolved, made active, and
// applied, so one failed download degrades the profile rather than aborting
// the import.
func (p *Profiles) Import(ctx context.Context, manifest []byte, progressFn SwitchProgressFunc) (*ImportReport, error) {
	if p.modsDir == "" {
		return nil, domain.ErrModsDirNotSet
	}

	var export domain.ExportedProfile
	if err := json.Unmarshal(manifest, &export); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidManifest, err)
	}
	if export.Name == "" {
		return nil, fmt.Errorf("%w: missing profile name", domain.ErrInvalidManifest)
	}

	records, err := p.store.LoadRecords()
	if err != nil {
		return nil, err
	}

	report := &ImportReport{Matched: []string{}, Installed: []string{}, Failed: []string{}}
	var wantIDs []int64

	for _, mod := range export.Mods {
		ref, ok := mod.Ref()
		if !ok {
			report.Failed = append(report.Failed, mod.Name)
			continue
		}

		if existing := findByProviderRef(records, mod.Provider, ref); existing != nil {
			wantIDs = append(wantIDs, existing.ID)
			report.Matched = append(report.Matched, existing.Name)
			continue
		}

		rec, err := p.installer.install(ctx, mod.Provider, ref, mod.InstalledFileID, nil)
		if err != nil {
			report.Failed = append(report.Failed, fmt.Sprintf("%s: %v", mod.Name, err))
			continue
		}

		// Reload so the next match sees the new record.
		records, err = p.store.LoadRecords()
		if err != nil {
			return nil, err
		}
		wantIDs = append(wantIDs, rec.ID)
		report.Installed = append(report.Installed, rec.Name)
	}

	if wantIDs == nil {
		wantIDs = []int64{}
	}

	profiles, err := p.store.LoadProfiles()
	if err != nil {
		return nil, err
	}

	profile := domain.ProfileRecord{
		ID:            profiles.NextID,
		Name:          "Imported: " + export.Name,
		CreatedAt:     time.Now().UTC(),
		EnabledModIDs: wantIDs,
	}
	profiles.NextID++
	profiles.Profiles = append(profiles.Profiles, profile)

	if err := p.store.SaveProfiles(profiles); err != nil {
		return nil, err
	}

	report.Profile = profile
	if _, err := p.ApplySwitch(profile.ID, progressFn); err != nil {
		return report, fmt.Errorf("applying imported profile: %w", err)
	}
	return report, nil
}

// findByProviderRef matches a record by provider plus provider reference.
func findByProviderRef(records []domain.InstalledModRecord, provider domain.Provider, ref string) *domain.InstalledModRecord {
	for i := range records {
		if records[i].Provider != provider {
			continue
		}
		if r, ok := records[i].ProviderRef(); ok && r == ref {
			return &records[i]
		}
	}
	return nil
}
