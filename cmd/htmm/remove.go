package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var removeCmd = &cobra.Command{
	Use:     "remove <mod-id>",
	Aliases: []string{"rm", "uninstall"},
	Short:   "Remove an installed mod",
	Long: `Remove a mod from the registry and move its file to the system trash.
The file is never deleted in place, so a mistaken removal can be restored
from the trash.

Examples:
  htmm remove 3
  htmm remove 3 --yes`,
	Args: cobra.ExactArgs(1),
	RunE: runRemove,
}

func init() {
	rootCmd.AddCommand(removeCmd)
}

func runRemove(cmd *cobra.Command, args []string) error {
	id, err := parseRecordID(args[0])
	if err != nil {
		return err
	}

	service, err := initService()
	if err != nil {
		return fmt.Errorf("initializing service: %w", err)
	}
	defer service.Close()

	rec, err := service.Registry().Get(id)
	if err != nil {
		return err
	}

	if !confirm(fmt.Sprintf("Remove %s (%s)?", rec.Name, rec.InstalledFilename)) {
		return ErrCancelled
	}

	if err := service.Registry().Remove(id); err != nil {
		return err
	}

	fmt.Printf("Removed %s; file moved to trash.\n", rec.Name)
	return nil
}
