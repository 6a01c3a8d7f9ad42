package core_test

import (
	"context"
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

func newInstaller(e *env) *core.Installer {
	return core.NewInstaller(e.store, e.catalogs, fsops.NewDownloader(nil), e.modsDir)
}

func TestInstaller_Install(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("jar bytes"))
	}))
	defer server.Close()

	e := newEnv(t)
	inst := newInstaller(e)

	e.cf.mods["10"] = domain.ModSummary{
		Provider:  domain.ProviderCurseForge,
		ProjectID: 10,
		Slug:      "foo",
		Name:      "Foo",
		SourceURL: "https://www.curseforge.com/hytale/mods/foo",
	}
	e.cf.files["10"] = []domain.VersionFile{
		{FileID: 101, FileName: "foo-1.1.jar", ReleaseType: "release", FileDate: date(2), DownloadURL: server.URL + "/foo-1.1.jar"},
		{FileID: 100, FileName: "foo-1.0.jar", ReleaseType: "release", FileDate: date(1), DownloadURL: server.URL + "/foo-1.0.jar"},
	}

	rec, err := inst.Install(context.Background(), domain.ProviderCurseForge, "10", nil)
	require.NoError(t, err)
	assert.Equal(t, "Foo", rec.Name)
	assert.Equal(t, "foo-1.1.jar", rec.InstalledFilename)
	assert.True(t, rec.Enabled)
	require.NotNil(t, rec.ProjectID)
	assert.Equal(t, int64(10), *rec.ProjectID)
	require.NotNil(t, rec.InstalledFileID)
	assert.True(t, rec.InstalledFileID.Equal(domain.NumericRef(101)))

	assert.True(t, e.fileExists(filepath.Join(e.modsDir, "foo-1.1.jar")))
}

func TestInstaller_Install_CollisionGetsSuffix(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("jar bytes"))
	}))
	defer server.Close()

	e := newEnv(t)
	inst := newInstaller(e)

	e.orbis.mods["abc"] = domain.ModSummary{Provider: domain.ProviderOrbis, ResourceID: "abc", Slug: "bar", Name: "Bar"}
	e.orbis.files["abc"] = []domain.VersionFile{
		{VersionID: "v1", FileName: "bar.jar", FileDate: date(1), DownloadURL: server.URL + "/bar.jar"},
	}

	// Unrelated file already uses the name
	e.seedRecord(t, domain.InstalledModRecord{
		Provider:          domain.ProviderOrbis,
		Slug:              domain.SlugUntracked,
		Name:              "bar.jar",
		InstalledFilename: "bar.jar",
		Enabled:           true,
	})

	rec, err := inst.Install(context.Background(), domain.ProviderOrbis, "abc", nil)
	require.NoError(t, err)
	assert.Equal(t, "bar (1).jar", rec.InstalledFilename)
	assert.True(t, e.fileExists(filepath.Join(e.modsDir, "bar (1).jar")))
	assert.True(t, e.fileExists(filepath.Join(e.modsDir, "bar.jar")))
}

func TestInstaller_Install_UnknownMod(t *testing.T) {
	e := newEnv(t)
	inst := newInstaller(e)

	_, err := inst.Install(context.Background(), domain.ProviderOrbis, "nope", nil)
	assert.ErrorIs(t, err, domain.ErrModNotFound)
}

func TestInstaller_Install_NoModsDir(t *testing.T) {
	e := newEnv(t)
	inst := core.NewInstaller(e.store, e.catalogs, fsops.NewDownloader(nil), "")

	_, err := inst.Install(context.Background(), domain.ProviderOrbis, "abc", nil)
	assert.ErrorIs(t, err, domain.ErrModsDirNotSet)
}
