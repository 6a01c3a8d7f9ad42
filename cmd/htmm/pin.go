package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var pinCmd = &cobra.Command{
	Use:   "pin <mod-id>",
	Short: "Pin a mod at its installed version",
	Long: `Pin a mod so update checks skip it.

Examples:
  htmm pin 3`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPin(args[0], true)
	},
}

var unpinCmd = &cobra.Command{
	Use:   "unpin <mod-id>",
	Short: "Unpin a mod so updates apply again",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPin(args[0], false)
	},
}

func init() {
	rootCmd.AddCommand(pinCmd)
	rootCmd.AddCommand(unpinCmd)
}

func runPin(arg string, pinned bool) error {
	id, err := parseRecordID(arg)
	if err != nil {
		return err
	}

	service, err := initService()
	if err != nil {
		return fmt.Errorf("initializing service: %w", err)
	}
	defer service.Close()

	rec, err := service.Registry().SetPinned(id, pinned)
	if err != nil {
		return err
	}

	if jsonOutput {
		return printJSON(rec)
	}
	if pinned {
		fmt.Printf("Pinned %s at its installed version.\n", rec.Name)
	} else {
		fmt.Printf("Unpinned %s.\n", rec.Name)
	}
	return nil
}
