package core_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"htmm/internal/catalog"
	"htmm/internal/domain"
	"htmm/internal/storage/store"

	"github.com/stretchr/testify/require"
)

// fakeCatalog serves canned catalog data keyed by mod reference.
type fakeCatalog struct {
	provider domain.Provider
	mods     map[string]domain.ModSummary
	files    map[string][]domain.VersionFile
}

func newFakeCatalog(provider domain.Provider) *fakeCatalog {
	return &fakeCatalog{
		provider: provider,
		mods:     map[string]domain.ModSummary{},
		files:    map[string][]domain.VersionFile{},
	}
}

func (f *fakeCatalog) ID() domain.Provider { return f.provider }
func (f *fakeCatalog) Name() string        { return string(f.provider) }

func (f *fakeCatalog) Search(ctx context.Context, query string, page, pageSize int) ([]domain.ModSummary, error) {
	var out []domain.ModSummary
	for _, m := range f.mods {
		out = append(out, m)
	}
	return out, nil
}

func (f *fakeCatalog) GetMod(ctx context.Context, ref string) (*domain.ModSummary, error) {
	mod, ok := f.mods[ref]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrModNotFound, ref)
	}
	return &mod, nil
}

func (f *fakeCatalog) GetFiles(ctx context.Context, ref string) ([]domain.VersionFile, error) {
	files, ok := f.files[ref]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrModNotFound, ref)
	}
	return files, nil
}

func (f *fakeCatalog) GetDownloadURL(ctx context.Context, ref string, file domain.VersionFile) (string, error) {
	if file.DownloadURL == "" {
		return "", fmt.Errorf("%w: %s", domain.ErrDistributionRestricted, ref)
	}
	return file.DownloadURL, nil
}

// env bundles the pieces core tests wire by hand.
type env struct {
	store    *store.Store
	catalogs *catalog.Registry
	cf       *fakeCatalog
	orbis    *fakeCatalog
	modsDir  string
	disabled string
}

func newEnv(t *testing.T) *env {
	t.Helper()
	root := t.TempDir()

	modsDir := filepath.Join(root, "UserData", "Mods")
	require.NoError(t, os.MkdirAll(modsDir, 0755))

	cf := newFakeCatalog(domain.ProviderCurseForge)
	orb := newFakeCatalog(domain.ProviderOrbis)
	catalogs := catalog.NewRegistry()
	require.NoError(t, catalogs.Register(cf))
	require.NoError(t, catalogs.Register(orb))

	return &env{
		store:    store.New(filepath.Join(root, "data")),
		catalogs: catalogs,
		cf:       cf,
		orbis:    orb,
		modsDir:  modsDir,
		disabled: modsDir + ".disabled",
	}
}

// seedRecord writes a record and the matching file on disk.
func (e *env) seedRecord(t *testing.T, rec domain.InstalledModRecord) domain.InstalledModRecord {
	t.Helper()

	records, err := e.store.LoadRecords()
	require.NoError(t, err)
	if rec.ID == 0 {
		rec.ID = domain.NextID(records)
	}
	records = append(records, rec)
	require.NoError(t, e.store.SaveRecords(records))

	dir := e.disabled
	if rec.Enabled {
		dir = e.modsDir
	}
	require.NoError(t, os.MkdirAll(dir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, rec.InstalledFilename), []byte(rec.InstalledFilename), 0644))
	return rec
}

func (e *env) fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func cfRecord(name string, projectID int64, fileID int64, enabled bool) domain.InstalledModRecord {
	ref := domain.NumericRef(fileID)
	return domain.InstalledModRecord{
		Provider:          domain.ProviderCurseForge,
		ProjectID:         &projectID,
		Slug:              name,
		Name:              name,
		InstalledFileID:   &ref,
		InstalledFilename: name + ".jar",
		Enabled:           enabled,
	}
}
