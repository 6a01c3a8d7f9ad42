package main

import (
	"context"
	"fmt"

	"htmm/internal/fsops"

	"github.com/spf13/cobra"
)

var installProvider string

var installCmd = &cobra.Command{
	Use:   "install <ref>",
	Short: "Download and install a mod from a catalog",
	Long: `Install the latest file of a catalog mod into the mods directory
and register it. The ref is the catalog's mod identifier: a numeric project
id for CurseForge, a resource id for Orbis.

Examples:
  htmm install --provider curseforge 534982
  htmm install --provider orbis abc123`,
	Args: cobra.ExactArgs(1),
	RunE: runInstall,
}

func init() {
	installCmd.Flags().StringVarP(&installProvider, "provider", "p", "orbis", "catalog to install from (curseforge, orbis)")

	rootCmd.AddCommand(installCmd)
}

func runInstall(cmd *cobra.Command, args []string) error {
	provider, err := parseProvider(installProvider)
	if err != nil {
		return err
	}

	service, err := initService()
	if err != nil {
		return fmt.Errorf("initializing service: %w", err)
	}
	defer service.Close()

	var progressFn fsops.ProgressFunc
	if verbose {
		progressFn = func(p fsops.DownloadProgress) {
			fmt.Printf("\rDownloading... %.0f%%", p.Percentage)
		}
	}

	rec, err := service.Installer().Install(context.Background(), provider, args[0], progressFn)
	if verbose {
		fmt.Println()
	}
	if err != nil {
		return err
	}

	if jsonOutput {
		return printJSON(rec)
	}
	fmt.Printf("Installed %s as %s (id %d).\n", rec.Name, rec.InstalledFilename, rec.ID)
	return nil
}
