package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var rescanAdopt bool

var rescanCmd = &cobra.Command{
	Use:   "rescan",
	Short: "Find mod files the registry does not track",
	Long: `Scan the mods directory and its ".disabled" sibling for files no
record tracks. With --adopt, each untracked file gets a placeholder record
so it can be enabled, disabled, and removed like any other mod.

Examples:
  htmm rescan
  htmm rescan --adopt`,
	RunE: runRescan,
}

func init() {
	rescanCmd.Flags().BoolVar(&rescanAdopt, "adopt", false, "create placeholder records for untracked files")

	rootCmd.AddCommand(rescanCmd)
}

func runRescan(cmd *cobra.Command, args []string) error {
	service, err := initService()
	if err != nil {
		return fmt.Errorf("initializing service: %w", err)
	}
	defer service.Close()

	result, err := service.Registry().Rescan()
	if err != nil {
		return err
	}

	if rescanAdopt {
		for _, name := range result.InActive {
			if _, err := service.Registry().AdoptUntracked(name, true); err != nil {
				return fmt.Errorf("adopting %s: %w", name, err)
			}
		}
		for _, name := range result.InDisabled {
			if _, err := service.Registry().AdoptUntracked(name, false); err != nil {
				return fmt.Errorf("adopting %s: %w", name, err)
			}
		}
	}

	if jsonOutput {
		return printJSON(result)
	}

	total := len(result.InActive) + len(result.InDisabled)
	if total == 0 {
		fmt.Println("No untracked files found.")
		return nil
	}

	for _, name := range result.InActive {
		fmt.Printf("untracked (enabled):  %s\n", name)
	}
	for _, name := range result.InDisabled {
		fmt.Printf("untracked (disabled): %s\n", name)
	}

	if rescanAdopt {
		fmt.Printf("\nAdopted %d file(s) into the registry.\n", total)
	} else {
		fmt.Printf("\n%d untracked file(s); run 'htmm rescan --adopt' to track them.\n", total)
	}
	return nil
}
