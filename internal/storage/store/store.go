// Package store persists the two registry documents, installed_mods.json
// and profiles.json, as whole JSON files under the data directory. Every
// save fully replaces the prior document; there is no transaction log.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"htmm/internal/domain"
)

const (
	recordsFilename  = "installed_mods.json"
	profilesFilename = "profiles.json"
)

// Store reads and writes the registry documents.
type Store struct {
	dataDir string
}

// New creates a store rooted at dataDir. The directory is created lazily on
// first save.
func New(dataDir string) *Store {
	return &Store{dataDir: dataDir}
}

// LoadRecords returns the installed-mod record list. A missing or unparsable
// document yields an empty list: "no registry yet" is a valid first-run
// state, not an error.
func (s *Store) LoadRecords() ([]domain.InstalledModRecord, error) {
	data, err := os.ReadFile(filepath.Join(s.dataDir, recordsFilename))
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading records: %w", err)
	}

	var records []domain.InstalledModRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, nil
	}
	return records, nil
}

// SaveRecords replaces the installed-mod document wholesale.
func (s *Store) SaveRecords(records []domain.InstalledModRecord) error {
	if records == nil {
		records = []domain.InstalledModRecord{}
	}
	return s.write(recordsFilename, records)
}

// LoadProfiles returns the profiles document, or the first-run default when
// it is missing or unparsable.
func (s *Store) LoadProfiles() (domain.ProfilesData, error) {
	data, err := os.ReadFile(filepath.Join(s.dataDir, profilesFilename))
	if errors.Is(err, os.ErrNotExist) {
		return domain.DefaultProfilesData(), nil
	}
	if err != nil {
		return domain.ProfilesData{}, fmt.Errorf("reading profiles: %w", err)
	}

	var profiles domain.ProfilesData
	if err := json.Unmarshal(data, &profiles); err != nil {
		return domain.DefaultProfilesData(), nil
	}
	if profiles.NextID < 1 {
		profiles.NextID = 1
	}
	return profiles, nil
}

// SaveProfiles replaces the profiles document wholesale.
func (s *Store) SaveProfiles(data domain.ProfilesData) error {
	if data.Profiles == nil {
		data.Profiles = []domain.ProfileRecord{}
	}
	return s.write(profilesFilename, data)
}

func (s *Store) write(filename string, v any) error {
	if err := os.MkdirAll(s.dataDir, 0755); err != nil {
		return fmt.Errorf("creating data dir: %w", err)
	}

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling %s: %w", filename, err)
	}

	if err := os.WriteFile(filepath.Join(s.dataDir, filename), data, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", filename, err)
	}
	return nil
}
