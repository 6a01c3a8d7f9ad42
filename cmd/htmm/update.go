package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"htmm/internal/core"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

var updateApply bool

var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Check installed mods for updates",
	Long: `Check every eligible mod against its catalog. Pinned mods and
untracked placeholders are skipped. With --apply, the found updates are
downloaded and swapped in; each replaced file is kept in the ".backup"
sibling of the mods directory.

Examples:
  htmm update
  htmm update --apply`,
	RunE: runUpdate,
}

func init() {
	updateCmd.Flags().BoolVar(&updateApply, "apply", false, "download and apply the found updates")

	rootCmd.AddCommand(updateCmd)
}

func runUpdate(cmd *cobra.Command, args []string) error {
	service, err := initService()
	if err != nil {
		return fmt.Errorf("initializing service: %w", err)
	}
	defer service.Close()

	ctx := context.Background()

	updates, err := service.Updater().CheckAll(ctx)
	if err != nil {
		return fmt.Errorf("checking for updates: %w", err)
	}

	if !updateApply {
		if jsonOutput {
			if updates == nil {
				updates = []core.AvailableUpdate{}
			}
			return printJSON(updates)
		}

		if len(updates) == 0 {
			fmt.Println("All mods are up to date.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME\tINSTALLED\tAVAILABLE")
		fmt.Fprintln(w, "--\t----\t---------\t---------")
		for _, upd := range updates {
			installed := ""
			if upd.Record.InstalledFileID != nil {
				installed = upd.Record.InstalledFileID.String()
			}
			available := upd.File.DisplayName
			if available == "" {
				available = upd.File.FileName
			}
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\n",
				upd.Record.ID, truncate(upd.Record.Name, 40), truncate(installed, 20), truncate(available, 40))
		}
		w.Flush()

		fmt.Printf("\n%d update(s) available; run 'htmm update --apply' to install them.\n", len(updates))
		return nil
	}

	if len(updates) == 0 {
		fmt.Println("All mods are up to date.")
		return nil
	}

	if jsonOutput {
		applied, err := service.Updater().ApplyAll(ctx, updates, nil)
		if err != nil {
			return err
		}
		return printJSON(applied)
	}

	model := newApplyModel(service, updates)
	if _, err := tea.NewProgram(model).Run(); err != nil {
		return fmt.Errorf("running update UI: %w", err)
	}
	return model.err()
}
