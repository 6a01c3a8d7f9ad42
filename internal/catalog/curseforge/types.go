package curseforge

import "time"

// CurseForge API v1 response types
// API docs: https://docs.curseforge.com/rest-api/

// APIResponse wraps all CurseForge API responses
type APIResponse[T any] struct {
	Data T `json:"data"`
}

// PaginatedResponse wraps paginated CurseForge API responses
type PaginatedResponse[T any] struct {
	Data       T          `json:"data"`
	Pagination Pagination `json:"pagination"`
}

// Pagination contains pagination info from CurseForge API
type Pagination struct {
	Index       int `json:"index"`
	PageSize    int `json:"pageSize"`
	ResultCount int `json:"resultCount"`
	TotalCount  int `json:"totalCount"`
}

// Mod represents a mod from the CurseForge API
type Mod struct {
	ID                   int64     `json:"id"`
	GameID               int       `json:"gameId"`
	Name                 string    `json:"name"`
	Slug                 string    `json:"slug"`
	Links                ModLinks  `json:"links"`
	Summary              string    `json:"summary"`
	DownloadCount        int64     `json:"downloadCount"`
	MainFileID           int64     `json:"mainFileId"`
	LatestFiles          []File    `json:"latestFiles"`
	DateCreated          time.Time `json:"dateCreated"`
	DateModified         time.Time `json:"dateModified"`
	DateReleased         time.Time `json:"dateReleased"`
	AllowModDistribution *bool     `json:"allowModDistribution"`
	IsAvailable          bool      `json:"isAvailable"`
}

// ModLinks contains URLs associated with a mod
type ModLinks struct {
	WebsiteURL string `json:"websiteUrl"`
	WikiURL    string `json:"wikiUrl"`
	IssuesURL  string `json:"issuesUrl"`
	SourceURL  string `json:"sourceUrl"`
}

// File represents a downloadable mod file
type File struct {
	ID          int64     `json:"id"`
	GameID      int       `json:"gameId"`
	ModID       int64     `json:"modId"`
	IsAvailable bool      `json:"isAvailable"`
	DisplayName string    `json:"displayName"`
	FileName    string    `json:"fileName"`
	ReleaseType int       `json:"releaseType"` // 1=Release, 2=Beta, 3=Alpha
	FileDate    time.Time `json:"fileDate"`
	FileLength  int64     `json:"fileLength"`
	DownloadURL string    `json:"downloadUrl"`
}

// StringDownloadURL is the response for the download URL endpoint
type StringDownloadURL struct {
	Data string `json:"data"`
}

// Release types
const (
	ReleaseTypeRelease = 1
	ReleaseTypeBeta    = 2
	ReleaseTypeAlpha   = 3
)
