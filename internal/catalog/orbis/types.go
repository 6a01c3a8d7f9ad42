package orbis

import "time"

// Orbis API response types.

// PaginatedResponse wraps paginated Orbis API responses
type PaginatedResponse[T any] struct {
	Data       T   `json:"data"`
	Page       int `json:"page"`
	TotalPages int `json:"totalPages"`
	Total      int `json:"total"`
}

// Resource represents a mod resource from the Orbis API
type Resource struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Slug    string `json:"slug"`
	Tagline string `json:"tagline"`
	Type    string `json:"type"`
}

// Version represents one published version of a resource
type Version struct {
	ID            string        `json:"id"`
	Name          string        `json:"name"`
	VersionNumber string        `json:"versionNumber"`
	CreatedAt     time.Time     `json:"createdAt"`
	PrimaryFileID string        `json:"primaryFileId"`
	Files         []VersionFile `json:"files"`
}

// VersionFile is one file attached to a version
type VersionFile struct {
	ID          string `json:"id"`
	URL         string `json:"url"`
	Filename    string `json:"filename"`
	DisplayName string `json:"displayName"`
	Size        int64  `json:"size"`
}
