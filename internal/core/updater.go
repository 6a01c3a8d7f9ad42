package core

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"htmm/internal/catalog"
	"htmm/internal/domain"
	"htmm/internal/fsops"
	"htmm/internal/modpath"
	"htmm/internal/storage/store"
)

// Updater checks installed records against their catalogs and applies
// updates in place.
type Updater struct {
	store      *store.Store
	catalogs   *catalog.Registry
	downloader *fsops.Downloader
	modsDir    string
}

// NewUpdater creates an updater.
func NewUpdater(st *store.Store, catalogs *catalog.Registry, downloader *fsops.Downloader, modsDir string) *Updater {
	return &Updater{store: st, catalogs: catalogs, downloader: downloader, modsDir: modsDir}
}

// Checkable reports whether a record participates in update checks: it must
// carry a catalog reference and not be pinned.
func Checkable(rec *domain.InstalledModRecord) bool {
	if rec.Untracked() || rec.Pinned {
		return false
	}
	_, ok := rec.ProviderRef()
	return ok
}

// releasePriority orders file release channels, stable first.
func releasePriority(releaseType string) int {
	switch releaseType {
	case "release":
		return 0
	case "beta":
		return 1
	case "alpha":
		return 2
	default:
		return 99
	}
}

// latestFile picks the file an update should target. CurseForge files are
// ranked by release channel then date, so a stable build beats a newer
// alpha; Orbis versions carry no channel and rank by date alone.
func latestFile(provider domain.Provider, files []domain.VersionFile) *domain.VersionFile {
	if len(files) == 0 {
		return nil
	}

	sorted := make([]domain.VersionFile, len(files))
	copy(sorted, files)

	if provider == domain.ProviderCurseForge {
		sort.SliceStable(sorted, func(i, j int) bool {
			pi, pj := releasePriority(sorted[i].ReleaseType), releasePriority(sorted[j].ReleaseType)
			if pi != pj {
				return pi < pj
			}
			return sorted[i].FileDate.After(sorted[j].FileDate)
		})
	} else {
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].FileDate.After(sorted[j].FileDate)
		})
	}

	return &sorted[0]
}

// AvailableUpdate pairs a record with the newer file found for it.
type AvailableUpdate struct {
	Record domain.InstalledModRecord `json:"record"`
	File   domain.VersionFile        `json:"file"`
}

// CheckOne looks up the latest catalog file for one record. Returns nil when
// the record is up to date or its installed version cannot be compared.
func (u *Updater) CheckOne(ctx context.Context, rec *domain.InstalledModRecord) (*AvailableUpdate, error) {
	if !Checkable(rec) {
		return nil, nil
	}
	ref, _ := rec.ProviderRef()

	cat, err := u.catalogs.Get(rec.Provider)
	if err != nil {
		return nil, err
	}

	files, err := cat.GetFiles(ctx, ref)
	if err != nil {
		return nil, err
	}

	latest := latestFile(rec.Provider, files)
	if latest == nil {
		return nil, nil
	}

	latestRef, ok := latest.Ref(rec.Provider)
	if !ok || rec.InstalledFileID == nil {
		return nil, nil
	}
	if latestRef.Equal(*rec.InstalledFileID) {
		return nil, nil
	}

	return &AvailableUpdate{Record: *rec, File: *latest}, nil
}

// CheckAll checks every eligible record concurrently. Records whose catalog
// lookup fails are skipped rather than failing the whole sweep; an offline
// catalog should not hide updates from the other one.
func (u *Updater) CheckAll(ctx context.Context) ([]AvailableUpdate, error) {
	records, err := u.store.LoadRecords()
	if err != nil {
		return nil, err
	}

	var (
		mu      sync.Mutex
		wg      sync.WaitGroup
		updates []AvailableUpdate
	)

	for i := range records {
		rec := records[i]
		if !Checkable(&rec) {
			continue
		}

		wg.Add(1)
		go func() {
			defer wg.Done()
			upd, err := u.CheckOne(ctx, &rec)
			if err != nil || upd == nil {
				return
			}
			mu.Lock()
			updates = append(updates, *upd)
			mu.Unlock()
		}()
	}
	wg.Wait()

	sort.Slice(updates, func(i, j int) bool {
		return updates[i].Record.ID < updates[j].Record.ID
	})
	return updates, nil
}

// ApplyOne downloads the given file and swaps it in for the record's current
// one. The replaced file is kept under the ".backup" sibling directory, and
// the new file lands in whichever directory the record currently occupies so
// a disabled mod stays disabled after updating.
func (u *Updater) ApplyOne(ctx context.Context, recordID int64, file domain.VersionFile, progressFn fsops.ProgressFunc) (*domain.InstalledModRecord, error) {
	if u.modsDir == "" {
		return nil, domain.ErrModsDirNotSet
	}
	activeDir := modpath.Normalize(u.modsDir)
	disabledDir := modpath.DisabledDir(activeDir)

	records, err := u.store.LoadRecords()
	if err != nil {
		return nil, err
	}
	rec := domain.FindRecord(records, recordID)
	if rec == nil {
		return nil, fmt.Errorf("%w: id %d", domain.ErrModNotFound, recordID)
	}

	ref, ok := rec.ProviderRef()
	if !ok {
		return nil, fmt.Errorf("%w: record %d has no catalog reference", domain.ErrModNotFound, recordID)
	}

	cat, err := u.catalogs.Get(rec.Provider)
	if err != nil {
		return nil, err
	}

	url := file.DownloadURL
	if url == "" {
		url, err = cat.GetDownloadURL(ctx, ref, file)
		if err != nil {
			return nil, err
		}
	}

	currentDir := activeDir
	if !rec.Enabled {
		currentDir = disabledDir
	}

	tempName := fmt.Sprintf(".ht-update-%d-%s", time.Now().UnixNano(), file.BestName())
	tempPath, err := u.downloader.Download(ctx, url, modpath.Join(currentDir, tempName), progressFn)
	if err != nil {
		return nil, err
	}

	finalName, err := fsops.ReplaceFile(
		modpath.Join(currentDir, rec.InstalledFilename),
		tempPath,
		currentDir,
		file.BestName(),
		modpath.BackupDir(activeDir),
	)
	if err != nil {
		return nil, err
	}

	rec.InstalledFilename = finalName
	rec.InstalledAt = time.Now().UTC()
	if vr, ok := file.Ref(rec.Provider); ok {
		rec.InstalledFileID = &vr
	}

	if err := u.store.SaveRecords(records); err != nil {
		return nil, err
	}
	out := *rec
	return &out, nil
}

// ApplyAll applies a list of updates sequentially, stopping at the first
// failure.
func (u *Updater) ApplyAll(ctx context.Context, updates []AvailableUpdate, progressFn fsops.ProgressFunc) ([]domain.InstalledModRecord, error) {
	applied := make([]domain.InstalledModRecord, 0, len(updates))
	for _, upd := range updates {
		rec, err := u.ApplyOne(ctx, upd.Record.ID, upd.File, progressFn)
		if err != nil {
			return applied, fmt.Errorf("updating %q: %w", upd.Record.Name, err)
		}
		applied = append(applied, *rec)
	}
	return applied, nil
}
