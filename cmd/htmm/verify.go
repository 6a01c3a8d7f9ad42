package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Reconcile the registry against the filesystem",
	Long: `Check every record's file location against its enabled flag and
repair flags that drifted. A file present in both the mods directory and
its ".disabled" sibling is reported but never auto-resolved.

Examples:
  htmm verify
  htmm verify --json`,
	RunE: runVerify,
}

func init() {
	rootCmd.AddCommand(verifyCmd)
}

func runVerify(cmd *cobra.Command, args []string) error {
	service, err := initService()
	if err != nil {
		return fmt.Errorf("initializing service: %w", err)
	}
	defer service.Close()

	result, err := service.Registry().VerifyAndRepair()
	if err != nil {
		return err
	}

	if jsonOutput {
		return printJSON(result)
	}

	for _, rec := range result.Repaired {
		fmt.Printf("repaired:  %s is %s on disk; flag corrected\n", rec.Name, enabledState(rec.Enabled))
	}
	for _, rec := range result.Missing {
		fmt.Printf("missing:   %s (%s) not found in either directory\n", rec.Name, rec.InstalledFilename)
	}
	for _, rec := range result.Ambiguous {
		fmt.Printf("ambiguous: %s (%s) exists in both directories; resolve manually\n", rec.Name, rec.InstalledFilename)
	}

	if len(result.Repaired)+len(result.Missing)+len(result.Ambiguous) == 0 {
		fmt.Println("Registry matches the filesystem.")
	}
	return nil
}
