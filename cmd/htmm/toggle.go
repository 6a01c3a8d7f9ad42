package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var enableCmd = &cobra.Command{
	Use:   "enable <mod-id>",
	Short: "Enable an installed mod",
	Long: `Enable a mod by moving its file back into the mods directory.

Examples:
  htmm enable 3`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runToggle(args[0], true)
	},
}

var disableCmd = &cobra.Command{
	Use:   "disable <mod-id>",
	Short: "Disable an installed mod",
	Long: `Disable a mod by moving its file into the ".disabled" sibling of the
mods directory. The mod stays installed and can be re-enabled later.

Examples:
  htmm disable 3`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runToggle(args[0], false)
	},
}

func init() {
	rootCmd.AddCommand(enableCmd)
	rootCmd.AddCommand(disableCmd)
}

func runToggle(arg string, enable bool) error {
	id, err := parseRecordID(arg)
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
	if rec.Enabled == enable {
		fmt.Printf("%s is already %s.\n", rec.Name, enabledState(enable))
		return nil
	}

	rec, err = service.Registry().Toggle(id)
	if err != nil {
		return err
	}

	if jsonOutput {
		return printJSON(rec)
	}
	fmt.Printf("%s is now %s (%s).\n", rec.Name, enabledState(rec.Enabled), rec.InstalledFilename)
	return nil
}

func enabledState(enabled bool) string {
	if enabled {
		return "enabled"
	}
	return "disabled"
}
