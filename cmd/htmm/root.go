package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"htmm/internal/core"

	"github.com/spf13/cobra"
)

// ErrCancelled is returned when the user declines a confirmation prompt.
// When returned from a command, Execute exits with code 2.
var ErrCancelled = errors.New("cancelled")

var (
	version = "0.3.0"

	// Global flags
	configDir  string
	dataDir    string
	modsDir    string
	verbose    bool
	jsonOutput bool
	assumeYes  bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "htmm",
	Short: "Hytale mod manager - Terminal-based mod manager for Hytale",
	Long: `htmm manages installed Hytale mods from the terminal: searching,
installing, enabling and disabling, profiles, and updates from the
CurseForge and Orbis catalogs.

Use subcommands for operations. Run 'htmm --help' for available commands.`,
	Version:       version,
	SilenceUsage:  true, // Runtime errors should not print usage
	SilenceErrors: true, // We handle error output in Execute()
}

func init() {
	// Persistent flags available to all commands
	rootCmd.PersistentFlags().StringVar(&configDir, "config", "", "config directory (default: ~/.config/htmm)")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", "", "data directory (default: ~/.local/share/htmm)")
	rootCmd.PersistentFlags().StringVar(&modsDir, "mods-dir", "", "mods directory (default: from config)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "output in JSON format (list, rescan, verify, search, update)")
	rootCmd.PersistentFlags().BoolVarP(&assumeYes, "yes", "y", false, "assume yes for confirmation prompts")
}

// Execute runs the root command. Exit codes: 0 = success, 1 = error, 2 = user cancelled.
// When --json is set and an error occurs, prints {"error":"..."} to stdout before exiting.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		if errors.Is(err, ErrCancelled) {
			os.Exit(2)
		}
		if jsonOutput {
			fmt.Printf(`{"error":%q}`+"\n", err.Error())
		} else {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

// initService creates and initializes the core service
func initService() (*core.Service, error) {
	opts, err := serviceOptions()
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(opts.ConfigDir, 0755); err != nil {
		return nil, fmt.Errorf("creating config dir: %w", err)
	}

	return core.NewService(opts)
}

// serviceOptions returns the service options with defaults applied.
func serviceOptions() (core.Options, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return core.Options{}, fmt.Errorf("home directory: %w", err)
	}

	opts := core.Options{
		ConfigDir: configDir,
		DataDir:   dataDir,
		ModsDir:   modsDir,
	}

	if opts.ConfigDir == "" {
		opts.ConfigDir = filepath.Join(homeDir, ".config", "htmm")
	}
	if opts.DataDir == "" {
		opts.DataDir = filepath.Join(homeDir, ".local", "share", "htmm")
	}

	return opts, nil
}

// confirm asks a yes/no question on stdin unless --yes was given.
func confirm(prompt string) bool {
	if assumeYes {
		return true
	}
	fmt.Printf("%s [y/N]: ", prompt)
	var answer string
	fmt.Scanln(&answer)
	return answer == "y" || answer == "Y" || answer == "yes"
}
