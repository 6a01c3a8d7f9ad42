// Package curseforge implements the CurseForge catalog backend.
package curseforge

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"htmm/internal/domain"
)

// CurseForge implements the Catalog interface for the CurseForge API.
type CurseForge struct {
	client *Client
	gameID int
}

// New creates a new CurseForge catalog scoped to one game.
func New(httpClient *http.Client, apiKey string, gameID int) *CurseForge {
	return &CurseForge{
		client: NewClient(httpClient, apiKey),
		gameID: gameID,
	}
}

// SetBaseURL overrides the API base URL (tests and mirrors).
func (c *CurseForge) SetBaseURL(baseURL string) {
	c.client.SetBaseURL(baseURL)
}

// SetAPIKey sets the API key for authentication
func (c *CurseForge) SetAPIKey(key string) {
	c.client.SetAPIKey(key)
}

// IsAuthenticated returns true if an API key is configured
func (c *CurseForge) IsAuthenticated() bool {
	return c.client.IsAuthenticated()
}

// ID returns the provider identifier
func (c *CurseForge) ID() domain.Provider {
	return domain.ProviderCurseForge
}

// Name returns the display name
func (c *CurseForge) Name() string {
	return "CurseForge"
}

// Search finds mods matching the query
func (c *CurseForge) Search(ctx context.Context, query string, page, pageSize int) ([]domain.ModSummary, error) {
	if c.gameID <= 0 {
		return nil, fmt.Errorf("CurseForge game ID not configured; set curseforge_game_id in config")
	}
	if pageSize <= 0 {
		pageSize = 20
	}
	index := page * pageSize

	results, _, err := c.client.SearchMods(ctx, c.gameID, query, pageSize, index)
	if err != nil {
		return nil, err
	}

	mods := make([]domain.ModSummary, len(results))
	for i, r := range results {
		mods[i] = modToSummary(r)
	}
	return mods, nil
}

// GetMod retrieves a specific mod by numeric project id
func (c *CurseForge) GetMod(ctx context.Context, ref string) (*domain.ModSummary, error) {
	id, err := strconv.ParseInt(ref, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid project ID %q: %w", ref, err)
	}

	data, err := c.client.GetMod(ctx, id)
	if err != nil {
		return nil, err
	}

	mod := modToSummary(*data)
	return &mod, nil
}

// GetFiles returns the available download files for a mod
func (c *CurseForge) GetFiles(ctx context.Context, ref string) ([]domain.VersionFile, error) {
	id, err := strconv.ParseInt(ref, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid project ID %q: %w", ref, err)
	}

	fileList, err := c.client.GetModFiles(ctx, id)
	if err != nil {
		return nil, err
	}

	files := make([]domain.VersionFile, len(fileList))
	for i, f := range fileList {
		files[i] = domain.VersionFile{
			FileID:      f.ID,
			FileName:    f.FileName,
			DisplayName: f.DisplayName,
			ReleaseType: releaseTypeLabel(f.ReleaseType),
			FileDate:    f.FileDate,
			DownloadURL: f.DownloadURL,
		}
	}
	return files, nil
}

// GetDownloadURL gets the download URL for a mod file
func (c *CurseForge) GetDownloadURL(ctx context.Context, ref string, file domain.VersionFile) (string, error) {
	id, err := strconv.ParseInt(ref, 10, 64)
	if err != nil {
		return "", fmt.Errorf("invalid project ID %q: %w", ref, err)
	}
	if file.FileID == 0 {
		return "", fmt.Errorf("file has no CurseForge file ID")
	}

	return c.client.GetDownloadURL(ctx, id, file.FileID)
}

// modToSummary converts a CurseForge Mod to domain.ModSummary
func modToSummary(data Mod) domain.ModSummary {
	return domain.ModSummary{
		Provider:  domain.ProviderCurseForge,
		ProjectID: data.ID,
		Slug:      data.Slug,
		Name:      data.Name,
		Summary:   data.Summary,
		SourceURL: data.Links.WebsiteURL,
	}
}

// releaseTypeLabel converts a release type code to its label
func releaseTypeLabel(releaseType int) string {
	switch releaseType {
	case ReleaseTypeRelease:
		return "release"
	case ReleaseTypeBeta:
		return "beta"
	case ReleaseTypeAlpha:
		return "alpha"
	default:
		return ""
	}
}
