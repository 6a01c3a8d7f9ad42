package domain

import "errors"

var (
	ErrModNotFound            = errors.New("mod not found")
	ErrProfileNotFound        = errors.New("profile not found")
	ErrNotFoundLocal          = errors.New("file not found on disk")
	ErrMoveFailed             = errors.New("move failed")
	ErrTrashFailed            = errors.New("trash failed")
	ErrDownloadFailed         = errors.New("download failed")
	ErrDistributionRestricted = errors.New("download restricted by provider distribution settings")
	ErrCatalogUnavailable     = errors.New("catalog unavailable")
	ErrInvalidManifest        = errors.New("invalid profile manifest")
	ErrAmbiguousState         = errors.New("mod file in ambiguous state")
	ErrAuthRequired           = errors.New("authentication required")
	ErrModsDirNotSet          = errors.New("mods directory not configured")
)
