package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"htmm/internal/domain"

	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List installed mods",
	Long: `List all mods in the installed-mod registry.

Examples:
  htmm list
  htmm list --json`,
	RunE: runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	service, err := initService()
	if err != nil {
		return fmt.Errorf("initializing service: %w", err)
	}
	defer service.Close()

	records, err := service.Registry().List()
	if err != nil {
		return fmt.Errorf("loading registry: %w", err)
	}

	if jsonOutput {
		if records == nil {
			records = []domain.InstalledModRecord{}
		}
		return printJSON(records)
	}

	if len(records) == 0 {
		fmt.Println("No mods installed.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tPROVIDER\tVERSION\tENABLED\tPINNED\tFILE")
	fmt.Fprintln(w, "--\t----\t--------\t-------\t-------\t------\t----")

	for _, rec := range records {
		providerDisplay := string(rec.Provider)
		if rec.Untracked() {
			providerDisplay = "(untracked)"
		}
		installedVersion := ""
		if rec.InstalledFileID != nil {
			installedVersion = rec.InstalledFileID.String()
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\t%s\n",
			rec.ID,
			truncate(rec.Name, 40),
			providerDisplay,
			truncate(installedVersion, 20),
			enabledLabel(rec.Enabled),
			enabledLabel(rec.Pinned),
			truncate(rec.InstalledFilename, 40),
		)
	}
	w.Flush()

	if verbose {
		fmt.Printf("\nTotal: %d mod(s)\n", len(records))
	}

	return nil
}
