package core_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"htmm/internal/core"
	"htmm/internal/domain"
	"htmm/internal/fsops"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProfiles(e *env) *core.Profiles {
	installer := core.NewInstaller(e.store, e.catalogs, fsops.NewDownloader(nil), e.modsDir)
	return core.NewProfiles(e.store, e.catalogs, installer, e.modsDir)
}

func TestProfiles_Create_SeedsFromCurrent(t *testing.T) {
	e := newEnv(t)
	pm := newProfiles(e)
	rec1 := e.seedRecord(t, cfRecord("foo", 10, 100, true))
	e.seedRecord(t, cfRecord("bar", 11, 101, false))

	profile, err := pm.Create("current", true)
	require.NoError(t, err)
	assert.Equal(t, []int64{rec1.ID}, profile.EnabledModIDs)

	profiles, err := pm.List()
	require.NoError(t, err)
	require.NotNil(t, profiles.ActiveProfileID)
	assert.Equal(t, profile.ID, *profiles.ActiveProfileID)
}

func TestProfiles_Create_Empty(t *testing.T) {
	e := newEnv(t)
	pm := newProfiles(e)
	e.seedRecord(t, cfRecord("foo", 10, 100, true))

	profile, err := pm.Create("empty", false)
	require.NoError(t, err)
	assert.Empty(t, profile.EnabledModIDs)
}

func TestProfiles_Rename(t *testing.T) {
	e := newEnv(t)
	pm := newProfiles(e)

	profile, err := pm.Create("old-name", false)
	require.NoError(t, err)

	renamed, err := pm.Rename(profile.ID, "new-name")
	require.NoError(t, err)
	assert.Equal(t, "new-name", renamed.Name)

	_, err = pm.Rename(99, "nope")
	assert.ErrorIs(t, err, domain.ErrProfileNotFound)
}

func TestProfiles_Delete_ActiveFallsBack(t *testing.T) {
	e := newEnv(t)
	pm := newProfiles(e)

	first, err := pm.Create("first", false)
	require.NoError(t, err)
	second, err := pm.Create("second", false)
	require.NoError(t, err)

	require.NoError(t, pm.Delete(second.ID))

	profiles, err := pm.List()
	require.NoError(t, err)
	require.NotNil(t, profiles.ActiveProfileID)
	assert.Equal(t, first.ID, *profiles.ActiveProfileID)

	require.NoError(t, pm.Delete(first.ID))
	profiles, err = pm.List()
	require.NoError(t, err)
	assert.Nil(t, profiles.ActiveProfileID)
}

func TestComputeSwitchPlan(t *testing.T) {
	records := []domain.InstalledModRecord{
		{ID: 1, Enabled: true},
		{ID: 2, Enabled: false},
		{ID: 3, Enabled: true},
	}
	target := &domain.ProfileRecord{EnabledModIDs: []int64{2, 3}}

	plan := core.ComputeSwitchPlan(target, records)
	assert.Equal(t, []int64{1}, plan.ToDisable)
	assert.Equal(t, []int64{2}, plan.ToEnable)
	assert.Equal(t, 2, plan.Total())
}

func TestProfiles_ApplySwitch(t *testing.T) {
	e := newEnv(t)
	pm := newProfiles(e)
	rec1 := e.seedRecord(t, cfRecord("foo", 10, 100, true))
	rec2 := e.seedRecord(t, cfRecord("bar", 11, 101, false))

	profile, err := pm.Create("only-bar", false)
	require.NoError(t, err)

	profiles, err := pm.List()
	require.NoError(t, err)
	profiles.Find(profile.ID).EnabledModIDs = []int64{rec2.ID}
	require.NoError(t, e.store.SaveProfiles(profiles))

	var calls int
	plan, err := pm.ApplySwitch(profile.ID, func(processed, total int, name string) {
		calls++
		assert.Equal(t, 2, total)
	})
	require.NoError(t, err)
	assert.Equal(t, []int64{rec1.ID}, plan.ToDisable)
	assert.Equal(t, []int64{rec2.ID}, plan.ToEnable)
	assert.Equal(t, 2, calls)

	assert.True(t, e.fileExists(filepath.Join(e.disabled, "foo.jar")))
	assert.True(t, e.fileExists(filepath.Join(e.modsDir, "bar.jar")))

	// Applying the same profile again is a no-op
	plan, err = pm.ApplySwitch(profile.ID, nil)
	require.NoError(t, err)
	assert.Zero(t, plan.Total())
}

func TestProfiles_ApplySwitch_UnknownProfile(t *testing.T) {
	e := newEnv(t)
	pm := newProfiles(e)

	_, err := pm.ApplySwitch(42, nil)
	assert.ErrorIs(t, err, domain.ErrProfileNotFound)
}

func TestProfiles_Export_SkipsUntracked(t *testing.T) {
	e := newEnv(t)
	pm := newProfiles(e)
	rec := e.seedRecord(t, cfRecord("foo", 10, 100, true))
	placeholder := e.seedRecord(t, domain.InstalledModRecord{
		Provider:          domain.ProviderOrbis,
		Slug:              domain.SlugUntracked,
		Name:              "stray.jar",
		InstalledFilename: "stray.jar",
		Enabled:           true,
	})

	profile, err := pm.Create("mixed", true)
	require.NoError(t, err)
	require.Contains(t, profile.EnabledModIDs, placeholder.ID)

	export, err := pm.Export(profile.ID)
	require.NoError(t, err)
	require.Len(t, export.Mods, 1)
	assert.Equal(t, rec.Name, export.Mods[0].Name)
	assert.Equal(t, domain.ProviderCurseForge, export.Mods[0].Provider)
}

func TestProfiles_Import_InvalidManifest(t *testing.T) {
	e := newEnv(t)
	pm := newProfiles(e)

	_, err := pm.Import(context.Background(), []byte("{broken"), nil)
	assert.ErrorIs(t, err, domain.ErrInvalidManifest)

	_, err = pm.Import(context.Background(), []byte(`{"mods":[]}`), nil)
	assert.ErrorIs(t, err, domain.ErrInvalidManifest)
}

func TestProfiles_Import_ReusesInstalledMods(t *testing.T) {
	e := newEnv(t)
	pm := newProfiles(e)
	rec := e.seedRecord(t, cfRecord("foo", 10, 100, false))

	projectID := int64(10)
	fileRef := domain.NumericRef(100)
	manifest, err := json.Marshal(domain.ExportedProfile{
		Name: "shared",
		Mods: []domain.ExportedMod{{
			Provider:        domain.ProviderCurseForge,
			ProjectID:       &projectID,
			InstalledFileID: &fileRef,
			Slug:            "foo",
			Name:            "foo",
		}},
	})
	require.NoError(t, err)

	report, err := pm.Import(context.Background(), manifest, nil)
	require.NoError(t, err)
	assert.Equal(t, "Imported: shared", report.Profile.Name)
	assert.Equal(t, []string{"foo"}, report.Matched)
	assert.Empty(t, report.Installed)

	// The matched mod was enabled by the switch, not re-downloaded
	assert.True(t, e.fileExists(filepath.Join(e.modsDir, "foo.jar")))
	records, err := e.store.LoadRecords()
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, rec.ID, records[0].ID)
}

func TestProfiles_Import_DownloadsMissingMods(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("jar bytes"))
	}))
	defer server.Close()

	e := newEnv(t)
	pm := newProfiles(e)

	e.orbis.mods["abc"] = domain.ModSummary{
		Provider:   domain.ProviderOrbis,
		ResourceID: "abc",
		Slug:       "bar",
		Name:       "Bar",
	}
	e.orbis.files["abc"] = []domain.VersionFile{{
		VersionID:   "v1",
		FileName:    "bar-1.0.jar",
		DownloadURL: server.URL + "/bar-1.0.jar",
	}}

	resourceID := "abc"
	manifest, err := json.Marshal(domain.ExportedProfile{
		Name: "fresh",
		Mods: []domain.ExportedMod{{
			Provider:   domain.ProviderOrbis,
			ResourceID: &resourceID,
			Slug:       "bar",
			Name:       "Bar",
		}},
	})
	require.NoError(t, err)

	report, err := pm.Import(context.Background(), manifest, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"Bar"}, report.Installed)
	assert.Empty(t, report.Failed)

	assert.True(t, e.fileExists(filepath.Join(e.modsDir, "bar-1.0.jar")))

	records, err := e.store.LoadRecords()
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.True(t, records[0].Enabled)
	require.NotNil(t, records[0].InstalledFileID)
	assert.True(t, records[0].InstalledFileID.Equal(domain.CompositeRef("v1", 0)))
}

func TestProfiles_Import_FailedModDegrades(t *testing.T) {
	e := newEnv(t)
	pm := newProfiles(e)

	resourceID := "missing"
	manifest, err := json.Marshal(domain.ExportedProfile{
		Name: "partial",
		Mods: []domain.ExportedMod{{
			Provider:   domain.ProviderOrbis,
			ResourceID: &resourceID,
			Name:       "Ghost",
		}},
	})
	require.NoError(t, err)

	report, err := pm.Import(context.Background(), manifest, nil)
	require.NoError(t, err)
	assert.Len(t, report.Failed, 1)
	assert.Empty(t, report.Profile.EnabledModIDs)
}
