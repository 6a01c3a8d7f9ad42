// Package core implements the mod manager engine: the installed-mod
// registry, profile switching, update checks, and installation. It owns no
// I/O of its own; storage, catalogs, and filesystem operations are injected.
package core

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"htmm/internal/catalog"
	"htmm/internal/catalog/curseforge"
	"htmm/internal/catalog/orbis"
	"htmm/internal/domain"
	"htmm/internal/fsops"
	"htmm/internal/storage/config"
	"htmm/internal/storage/db"
	"htmm/internal/storage/store"
)

// Options configures service construction.
type Options struct {
	ConfigDir string
	DataDir   string

	// ModsDir overrides the configured mods directory when set.
	ModsDir string

	// CurseForgeAPIKey overrides env and stored-token resolution when set.
	CurseForgeAPIKey string

	HTTPClient *http.Client
}

// Service wires storage, catalogs, and the engine components together.
type Service struct {
	cfg      *config.Config
	database *db.DB
	store    *store.Store
	catalogs *catalog.Registry
	modsDir  string

	registry  *Registry
	profiles  *Profiles
	updater   *Updater
	installer *Installer
}

// NewService loads configuration, opens storage, and registers the catalogs.
func NewService(opts Options) (*Service, error) {
	cfg, err := config.Load(opts.ConfigDir)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	if err := os.MkdirAll(opts.DataDir, 0755); err != nil {
		return nil, fmt.Errorf("creating data dir: %w", err)
	}

	database, err := db.New(filepath.Join(opts.DataDir, "htmm.db"))
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	st := store.New(opts.DataDir)

	modsDir := opts.ModsDir
	if modsDir == "" {
		modsDir = cfg.ModsDir
	}

	apiKey := opts.CurseForgeAPIKey
	if apiKey == "" {
		apiKey = os.Getenv("CURSEFORGE_API_KEY")
	}
	if apiKey == "" {
		if token, err := database.GetToken(string(domain.ProviderCurseForge)); err == nil && token != nil {
			apiKey = token.APIKey
		}
	}

	cf := curseforge.New(opts.HTTPClient, apiKey, cfg.CurseForgeGameID)
	if cfg.CurseForgeBaseURL != "" {
		cf.SetBaseURL(cfg.CurseForgeBaseURL)
	}

	orb := orbis.New(opts.HTTPClient)
	if cfg.OrbisBaseURL != "" {
		orb.SetBaseURL(cfg.OrbisBaseURL)
	}

	catalogs := catalog.NewRegistry()
	for _, c := range []catalog.Catalog{cf, orb} {
		if err := catalogs.Register(c); err != nil {
			database.Close()
			return nil, err
		}
	}

	svc := &Service{
		cfg:      cfg,
		database: database,
		store:    st,
		catalogs: catalogs,
		modsDir:  modsDir,
	}

	downloader := fsops.NewDownloader(opts.HTTPClient)
	svc.registry = NewRegistry(st, modsDir)
	svc.installer = NewInstaller(st, catalogs, downloader, modsDir)
	svc.profiles = NewProfiles(st, catalogs, svc.installer, modsDir)
	svc.updater = NewUpdater(st, catalogs, downloader, modsDir)

	return svc, nil
}

// Close releases the database handle.
func (s *Service) Close() error {
	return s.database.Close()
}

// Config returns the loaded application config.
func (s *Service) Config() *config.Config { return s.cfg }

// DB returns the token database.
func (s *Service) DB() *db.DB { return s.database }

// Catalogs returns the catalog registry.
func (s *Service) Catalogs() *catalog.Registry { return s.catalogs }

// ModsDir returns the active mods directory, or ErrModsDirNotSet when neither
// config nor flags provide one.
func (s *Service) ModsDir() (string, error) {
	if s.modsDir == "" {
		return "", domain.ErrModsDirNotSet
	}
	return s.modsDir, nil
}

// Registry returns the installed-mod registry manager.
func (s *Service) Registry() *Registry { return s.registry }

// Profiles returns the profile manager.
func (s *Service) Profiles() *Profiles { return s.profiles }

// Updater returns the update manager.
func (s *Service) Updater() *Updater { return s.updater }

// Installer returns the install manager.
func (s *Service) Installer() *Installer { return s.installer }
