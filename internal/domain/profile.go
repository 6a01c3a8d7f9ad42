package domain

import "time"

// ProfileRecord is a named, reusable set of record ids that should be
// enabled when the profile is active.
type ProfileRecord struct {
	ID            int64     `json:"id"`
	Name          string    `json:"name"`
	CreatedAt     time.Time `json:"createdAt"`
	EnabledModIDs []int64   `json:"enabledModIds"`
}

// HasMod reports whether the profile wants the given record enabled.
func (p *ProfileRecord) HasMod(id int64) bool {
	for _, v := range p.EnabledModIDs {
		if v == id {
			return true
		}
	}
	return false
}

// ProfilesData is the persisted profiles document.
type ProfilesData struct {
	NextID          int64           `json:"nextId"`
	ActiveProfileID *int64          `json:"activeProfileId"`
	Profiles        []ProfileRecord `json:"profiles"`
}

// DefaultProfilesData is the first-run document: no profiles, no active one.
func DefaultProfilesData() ProfilesData {
	return ProfilesData{NextID: 1}
}

// Find returns a pointer into Profiles for the given id, or nil.
func (d *ProfilesData) Find(id int64) *ProfileRecord {
	for i := range d.Profiles {
		if d.Profiles[i].ID == id {
			return &d.Profiles[i]
		}
	}
	return nil
}

// Active returns the active profile, or nil when none is active.
func (d *ProfilesData) Active() *ProfileRecord {
	if d.ActiveProfileID == nil {
		return nil
	}
	return d.Find(*d.ActiveProfileID)
}

// ExportedProfile is the portable, registry-id-free manifest used to
// recreate a profile's mod set on another installation.
type ExportedProfile struct {
	Name       string        `json:"name"`
	ExportedAt time.Time     `json:"exportedAt"`
	Mods       []ExportedMod `json:"mods"`
}

// ExportedMod describes one mod by provider reference only; it carries no
// local record id or filename.
type ExportedMod struct {
	Provider        Provider    `json:"provider"`
	ProjectID       *int64      `json:"projectId,omitempty"`
	ResourceID      *string     `json:"resourceId,omitempty"`
	InstalledFileID *VersionRef `json:"installedFileId,omitempty"`
	Slug            string      `json:"slug"`
	Name            string      `json:"name"`
}

// Ref returns the provider-specific identifier as a string, mirroring
// InstalledModRecord.ProviderRef.
func (m ExportedMod) Ref() (string, bool) {
	rec := InstalledModRecord{Provider: m.Provider, ProjectID: m.ProjectID, ResourceID: m.ResourceID}
	return rec.ProviderRef()
}
