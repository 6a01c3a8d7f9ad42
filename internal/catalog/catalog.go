// Package catalog defines the interface remote mod catalogs implement and a
// registry for looking them up by provider.
package catalog

import (
	"context"

	"htmm/internal/domain"
)

// Catalog is the interface every remote mod catalog must implement.
type Catalog interface {
	// ID returns the provider identifier for this catalog.
	ID() domain.Provider

	// Name returns the human-readable catalog name.
	Name() string

	// Search searches the catalog for mods matching the query.
	Search(ctx context.Context, query string, page, pageSize int) ([]domain.ModSummary, error)

	// GetMod fetches a single mod by its provider reference.
	GetMod(ctx context.Context, ref string) (*domain.ModSummary, error)

	// GetFiles fetches the downloadable files for a mod, newest first.
	GetFiles(ctx context.Context, ref string) ([]domain.VersionFile, error)

	// GetDownloadURL resolves the download URL for a specific file.
	GetDownloadURL(ctx context.Context, ref string, file domain.VersionFile) (string, error)
}
