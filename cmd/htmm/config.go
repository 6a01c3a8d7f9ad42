package main

import (
	"fmt"
	"os"

	"htmm/internal/storage/config"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect and change configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the current configuration",
	RunE:  runConfigShow,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Detect and save the mods directory",
	Long: `Look for the game's Mods directory in its standard per-platform
locations and save the first one that exists. Use 'config set-mods-dir'
when the game lives somewhere unusual.`,
	RunE: runConfigInit,
}

var configSetModsDirCmd = &cobra.Command{
	Use:   "set-mods-dir <path>",
	Short: "Set the mods directory",
	Args:  cobra.ExactArgs(1),
	RunE:  runConfigSetModsDir,
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configSetModsDirCmd)

	rootCmd.AddCommand(configCmd)
}

func loadConfig() (*config.Config, string, error) {
	opts, err := serviceOptions()
	if err != nil {
		return nil, "", err
	}
	cfg, err := config.Load(opts.ConfigDir)
	if err != nil {
		return nil, "", err
	}
	return cfg, opts.ConfigDir, nil
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	cfg, dir, err := loadConfig()
	if err != nil {
		return err
	}

	if jsonOutput {
		return printJSON(cfg)
	}

	fmt.Printf("Config directory: %s\n", dir)
	if cfg.ModsDir == "" {
		fmt.Println("Mods directory:   (not set; run 'htmm config init')")
	} else {
		fmt.Printf("Mods directory:   %s\n", cfg.ModsDir)
	}
	if cfg.CurseForgeGameID > 0 {
		fmt.Printf("CurseForge game:  %d\n", cfg.CurseForgeGameID)
	}
	return nil
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	cfg, dir, err := loadConfig()
	if err != nil {
		return err
	}

	for _, candidate := range config.DefaultModsDirCandidates() {
		info, err := os.Stat(candidate)
		if err != nil || !info.IsDir() {
			continue
		}
		cfg.ModsDir = candidate
		if err := cfg.Save(dir); err != nil {
			return err
		}
		fmt.Printf("Mods directory set to %s.\n", candidate)
		return nil
	}

	return fmt.Errorf("no Mods directory found in the standard locations; set one with 'htmm config set-mods-dir <path>'")
}

func runConfigSetModsDir(cmd *cobra.Command, args []string) error {
	info, err := os.Stat(args[0])
	if err != nil {
		return fmt.Errorf("checking %s: %w", args[0], err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", args[0])
	}

	cfg, dir, err := loadConfig()
	if err != nil {
		return err
	}
	cfg.ModsDir = args[0]
	if err := cfg.Save(dir); err != nil {
		return err
	}
	fmt.Printf("Mods directory set to %s.\n", args[0])
	return nil
}
