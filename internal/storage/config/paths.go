package config

import (
	"os"
	"path/filepath"
	"runtime"
)

// DefaultModsDirCandidates returns likely locations of the game's Mods
// directory for the current platform, most likely first. Used by
// "config init" when mods_dir is unset.
func DefaultModsDirCandidates() []string {
	var candidates []string
	add := func(p string) {
		if p == "" {
			return
		}
		for _, c := range candidates {
			if c == p {
				return
			}
		}
		candidates = append(candidates, p)
	}

	switch runtime.GOOS {
	case "windows":
		if appdata := os.Getenv("APPDATA"); appdata != "" {
			add(filepath.Join(appdata, "Hytale", "UserData", "Mods"))
		}
	case "darwin":
		if home, err := os.UserHomeDir(); err == nil {
			add(filepath.Join(home, "Library", "Application Support", "Hytale", "UserData", "Mods"))
		}
	default:
		if home, err := os.UserHomeDir(); err == nil {
			add(filepath.Join(home, ".var", "app", "com.hypixel.HytaleLauncher", "data", "Hytale", "UserData", "Mods"))
		}
		if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
			add(filepath.Join(xdg, "Hytale", "UserData", "Mods"))
		}
		if home, err := os.UserHomeDir(); err == nil {
			add(filepath.Join(home, ".local", "share", "Hytale", "UserData", "Mods"))
		}
	}

	return candidates
}
