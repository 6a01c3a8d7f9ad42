package core

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"htmm/internal/catalog"
	"htmm/internal/domain"
	"htmm/internal/fsops"
	"htmm/internal/modpath"
	"htmm/internal/storage/store"
)

// Installer downloads catalog mods into the mods directory and registers
// them.
type Installer struct {
	store      *store.Store
	catalogs   *catalog.Registry
	downloader *fsops.Downloader
	modsDir    string
}

// NewInstaller creates an installer.
func NewInstaller(st *store.Store, catalogs *catalog.Registry, downloader *fsops.Downloader, modsDir string) *Installer {
	return &Installer{store: st, catalogs: catalogs, downloader: downloader, modsDir: modsDir}
}

// Install fetches the latest file of a catalog mod, downloads it into the
// active directory, and creates an enabled record for it.
func (i *Installer) Install(ctx context.Context, provider domain.Provider, ref string, progressFn fsops.ProgressFunc) (*domain.InstalledModRecord, error) {
	return i.install(ctx, provider, ref, nil, progressFn)
}

// install resolves and downloads one catalog mod. With a non-nil wantRef the
// exact matching file is installed; otherwise the latest file is picked.
func (i *Installer) install(ctx context.Context, provider domain.Provider, ref string, wantRef *domain.VersionRef, progressFn fsops.ProgressFunc) (*domain.InstalledModRecord, error) {
	if i.modsDir == "" {
		return nil, domain.ErrModsDirNotSet
	}
	activeDir := modpath.Normalize(i.modsDir)

	cat, err := i.catalogs.Get(provider)
	if err != nil {
		return nil, err
	}

	mod, err := cat.GetMod(ctx, ref)
	if err != nil {
		return nil, err
	}

	files, err := cat.GetFiles(ctx, ref)
	if err != nil {
		return nil, err
	}

	var file *domain.VersionFile
	if wantRef != nil && !wantRef.IsZero() {
		for idx := range files {
			if fr, ok := files[idx].Ref(provider); ok && fr.Equal(*wantRef) {
				file = &files[idx]
				break
			}
		}
	}
	if file == nil {
		file = latestFile(provider, files)
	}
	if file == nil {
		return nil, fmt.Errorf("%w: %s has no downloadable files", domain.ErrModNotFound, mod.Name)
	}

	url := file.DownloadURL
	if url == "" {
		url, err = cat.GetDownloadURL(ctx, ref, *file)
		if err != nil {
			return nil, err
		}
	}

	if _, err := fsops.EnsureDir(activeDir); err != nil {
		return nil, err
	}

	finalPath, err := i.downloader.Download(ctx, url, modpath.Join(activeDir, file.BestName()), progressFn)
	if err != nil {
		return nil, err
	}

	records, err := i.store.LoadRecords()
	if err != nil {
		return nil, err
	}

	rec := domain.InstalledModRecord{
		ID:                domain.NextID(records),
		Provider:          provider,
		Slug:              mod.Slug,
		Name:              mod.Name,
		InstalledFilename: filepath.Base(finalPath),
		InstalledAt:       time.Now().UTC(),
		SourceURL:         mod.SourceURL,
		Enabled:           true,
	}
	switch provider {
	case domain.ProviderCurseForge:
		projectID := mod.ProjectID
		rec.ProjectID = &projectID
	case domain.ProviderOrbis:
		resourceID := mod.ResourceID
		rec.ResourceID = &resourceID
	}
	if vr, ok := file.Ref(provider); ok {
		rec.InstalledFileID = &vr
	}

	records = append(records, rec)
	if err := i.store.SaveRecords(records); err != nil {
		return nil, err
	}
	return &rec, nil
}
