// Package orbis implements the Orbis catalog backend. Orbis identifies mods
// by string resource ids; a downloadable file is addressed by its version id
// plus the file's index within the version's file list.
package orbis

import (
	"context"
	"fmt"
	"net/http"

	"htmm/internal/domain"
)

// Orbis implements the Catalog interface for the Orbis API.
type Orbis struct {
	client *Client
}

// New creates a new Orbis catalog. Orbis requires no authentication.
func New(httpClient *http.Client) *Orbis {
	return &Orbis{
		client: NewClient(httpClient),
	}
}

// SetBaseURL overrides the API base URL (tests and mirrors).
func (o *Orbis) SetBaseURL(baseURL string) {
	o.client.SetBaseURL(baseURL)
}

// ID returns the provider identifier
func (o *Orbis) ID() domain.Provider {
	return domain.ProviderOrbis
}

// Name returns the display name
func (o *Orbis) Name() string {
	return "Orbis"
}

// Search finds mod resources matching the query
func (o *Orbis) Search(ctx context.Context, query string, page, pageSize int) ([]domain.ModSummary, error) {
	// Orbis pages are 1-based
	results, err := o.client.SearchResources(ctx, query, page+1, pageSize)
	if err != nil {
		return nil, err
	}

	mods := make([]domain.ModSummary, len(results))
	for i, r := range results {
		mods[i] = resourceToSummary(r)
	}
	return mods, nil
}

// GetMod retrieves a specific resource by ID
func (o *Orbis) GetMod(ctx context.Context, ref string) (*domain.ModSummary, error) {
	resource, err := o.client.GetResource(ctx, ref)
	if err != nil {
		return nil, err
	}

	mod := resourceToSummary(*resource)
	return &mod, nil
}

// GetFiles returns one downloadable file per published version: the version's
// primary file, or its first file when no primary is marked.
func (o *Orbis) GetFiles(ctx context.Context, ref string) ([]domain.VersionFile, error) {
	versions, err := o.client.GetVersions(ctx, ref)
	if err != nil {
		return nil, err
	}

	var files []domain.VersionFile
	for _, v := range versions {
		if len(v.Files) == 0 {
			continue
		}

		idx := 0
		if v.PrimaryFileID != "" {
			for i, f := range v.Files {
				if f.ID == v.PrimaryFileID {
					idx = i
					break
				}
			}
		}

		f := v.Files[idx]
		name := f.Filename
		if name == "" {
			name = f.DisplayName
		}

		files = append(files, domain.VersionFile{
			VersionID:   v.ID,
			FileIndex:   idx,
			FileName:    name,
			DisplayName: v.Name,
			FileDate:    v.CreatedAt,
			DownloadURL: f.URL,
		})
	}
	return files, nil
}

// GetDownloadURL resolves the download URL for a specific version file
func (o *Orbis) GetDownloadURL(ctx context.Context, ref string, file domain.VersionFile) (string, error) {
	if file.VersionID == "" {
		return "", fmt.Errorf("file has no Orbis version ID")
	}

	versions, err := o.client.GetVersions(ctx, ref)
	if err != nil {
		return "", err
	}

	for _, v := range versions {
		if v.ID != file.VersionID {
			continue
		}
		if file.FileIndex < 0 || file.FileIndex >= len(v.Files) {
			return "", fmt.Errorf("%w: version %s has no file at index %d", domain.ErrModNotFound, file.VersionID, file.FileIndex)
		}
		url := v.Files[file.FileIndex].URL
		if url == "" {
			return "", fmt.Errorf("%w: no download URL for version %s", domain.ErrDistributionRestricted, file.VersionID)
		}
		return url, nil
	}

	return "", fmt.Errorf("%w: version %s not found", domain.ErrModNotFound, file.VersionID)
}

// resourceToSummary converts an Orbis Resource to domain.ModSummary
func resourceToSummary(r Resource) domain.ModSummary {
	return domain.ModSummary{
		Provider:   domain.ProviderOrbis,
		ResourceID: r.ID,
		Slug:       r.Slug,
		Name:       r.Name,
		Summary:    r.Tagline,
		SourceURL:  siteURL + "/resources/" + r.Slug,
	}
}
