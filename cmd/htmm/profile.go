package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Manage mod profiles",
	Long: `Profiles are named mod sets. Switching to a profile enables its mods
and disables everything else by moving files between the mods directory and
its ".disabled" sibling.`,
}

var profileListCmd = &cobra.Command{
	Use:   "list",
	Short: "List profiles",
	RunE:  runProfileList,
}

var profileCreateEmpty bool

var profileCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a profile and make it active",
	Long: `Create a profile seeded from the currently enabled mods and make it
active. With --empty the profile starts with no mods instead.

Examples:
  htmm profile create vanilla-plus
  htmm profile create testing --empty`,
	Args: cobra.ExactArgs(1),
	RunE: runProfileCreate,
}

var profileRenameCmd = &cobra.Command{
	Use:   "rename <profile-id> <new-name>",
	Short: "Rename a profile",
	Args:  cobra.ExactArgs(2),
	RunE:  runProfileRename,
}

var profileDeleteCmd = &cobra.Command{
	Use:   "delete <profile-id>",
	Short: "Delete a profile",
	Long: `Delete a profile. No mod files move; only the profile record is
removed. Deleting the active profile activates the first remaining one.`,
	Args: cobra.ExactArgs(1),
	RunE: runProfileDelete,
}

var profileSwitchCmd = &cobra.Command{
	Use:   "switch <profile-id>",
	Short: "Switch to a profile",
	Long: `Enable the profile's mods and disable the rest. Disables run before
enables, and the registry is saved after every file move, so an interrupted
switch never misreports what is on disk.

Examples:
  htmm profile switch 2`,
	Args: cobra.ExactArgs(1),
	RunE: runProfileSwitch,
}

var profileExportOutput string

var profileExportCmd = &cobra.Command{
	Use:   "export <profile-id>",
	Short: "Export a profile as a portable manifest",
	Long: `Write a profile's mod set as a JSON manifest holding catalog
references only. Untracked placeholder mods are not exported.

Examples:
  htmm profile export 2 -o vanilla-plus.json`,
	Args: cobra.ExactArgs(1),
	RunE: runProfileExport,
}

var profileImportCmd = &cobra.Command{
	Use:   "import <manifest.json>",
	Short: "Recreate a profile from an exported manifest",
	Long: `Import a manifest produced by 'profile export'. Mods already
installed are reused; missing ones are downloaded from their catalogs. The
imported profile becomes active and is applied immediately.

Examples:
  htmm profile import vanilla-plus.json`,
	Args: cobra.ExactArgs(1),
	RunE: runProfileImport,
}

func init() {
	profileCreateCmd.Flags().BoolVar(&profileCreateEmpty, "empty", false, "start with no mods instead of the current enabled set")
	profileExportCmd.Flags().StringVarP(&profileExportOutput, "output", "o", "", "output file (default: stdout)")

	profileCmd.AddCommand(profileListCmd)
	profileCmd.AddCommand(profileCreateCmd)
	profileCmd.AddCommand(profileRenameCmd)
	profileCmd.AddCommand(profileDeleteCmd)
	profileCmd.AddCommand(profileSwitchCmd)
	profileCmd.AddCommand(profileExportCmd)
	profileCmd.AddCommand(profileImportCmd)

	rootCmd.AddCommand(profileCmd)
}

func runProfileList(cmd *cobra.Command, args []string) error {
	service, err := initService()
	if err != nil {
		return fmt.Errorf("initializing service: %w", err)
	}
	defer service.Close()

	profiles, err := service.Profiles().List()
	if err != nil {
		return err
	}

	if jsonOutput {
		return printJSON(profiles)
	}

	if len(profiles.Profiles) == 0 {
		fmt.Println("No profiles; create one with 'htmm profile create <name>'.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tMODS\tACTIVE")
	fmt.Fprintln(w, "--\t----\t----\t------")
	for _, profile := range profiles.Profiles {
		active := ""
		if profiles.ActiveProfileID != nil && *profiles.ActiveProfileID == profile.ID {
			active = "*"
		}
		fmt.Fprintf(w, "%d\t%s\t%d\t%s\n", profile.ID, truncate(profile.Name, 40), len(profile.EnabledModIDs), active)
	}
	w.Flush()
	return nil
}

func runProfileCreate(cmd *cobra.Command, args []string) error {
	service, err := initService()
	if err != nil {
		return fmt.Errorf("initializing service: %w", err)
	}
	defer service.Close()

	profile, err := service.Profiles().Create(args[0], !profileCreateEmpty)
	if err != nil {
		return err
	}

	if jsonOutput {
		return printJSON(profile)
	}
	fmt.Printf("Created profile %s (id %d) with %d mod(s); now active.\n",
		profile.Name, profile.ID, len(profile.EnabledModIDs))
	return nil
}

func runProfileRename(cmd *cobra.Command, args []string) error {
	id, err := parseRecordID(args[0])
	if err != nil {
		return err
	}

	service, err := initService()
	if err != nil {
		return fmt.Errorf("initializing service: %w", err)
	}
	defer service.Close()

	profile, err := service.Profiles().Rename(id, args[1])
	if err != nil {
		return err
	}

	fmt.Printf("Renamed profile %d to %s.\n", profile.ID, profile.Name)
	return nil
}

func runProfileDelete(cmd *cobra.Command, args []string) error {
	id, err := parseRecordID(args[0])
	if err != nil {
		return err
	}

	service, err := initService()
	if err != nil {
		return fmt.Errorf("initializing service: %w", err)
	}
	defer service.Close()

	if !confirm(fmt.Sprintf("Delete profile %d?", id)) {
		return ErrCancelled
	}

	if err := service.Profiles().Delete(id); err != nil {
		return err
	}
	fmt.Printf("Deleted profile %d.\n", id)
	return nil
}

func runProfileSwitch(cmd *cobra.Command, args []string) error {
	id, err := parseRecordID(args[0])
	if err != nil {
		return err
	}

	service, err := initService()
	if err != nil {
		return fmt.Errorf("initializing service: %w", err)
	}
	defer service.Close()

	plan, err := service.Profiles().ApplySwitch(id, func(processed, total int, name string) {
		fmt.Printf("[%d/%d] %s\n", processed, total, name)
	})
	if err != nil {
		return err
	}

	if jsonOutput {
		return printJSON(plan)
	}
	fmt.Printf("Switched: %d enabled, %d disabled.\n", len(plan.ToEnable), len(plan.ToDisable))
	return nil
}

func runProfileExport(cmd *cobra.Command, args []string) error {
	id, err := parseRecordID(args[0])
	if err != nil {
		return err
	}

	service, err := initService()
	if err != nil {
		return fmt.Errorf("initializing service: %w", err)
	}
	defer service.Close()

	export, err := service.Profiles().Export(id)
	if err != nil {
		return err
	}

	if profileExportOutput == "" {
		return printJSON(export)
	}

	data, err := marshalIndent(export)
	if err != nil {
		return err
	}
	if err := os.WriteFile(profileExportOutput, data, 0644); err != nil {
		return fmt.Errorf("writing manifest: %w", err)
	}
	fmt.Printf("Exported %d mod(s) to %s.\n", len(export.Mods), profileExportOutput)
	return nil
}

func runProfileImport(cmd *cobra.Command, args []string) error {
	manifest, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("reading manifest: %w", err)
	}

	service, err := initService()
	if err != nil {
		return fmt.Errorf("initializing service: %w", err)
	}
	defer service.Close()

	report, err := service.Profiles().Import(context.Background(), manifest, func(processed, total int, name string) {
		if verbose {
			fmt.Printf("[%d/%d] %s\n", processed, total, name)
		}
	})
	if err != nil {
		return err
	}

	if jsonOutput {
		return printJSON(report)
	}

	fmt.Printf("Imported profile %s (id %d): %d reused, %d downloaded.\n",
		report.Profile.Name, report.Profile.ID, len(report.Matched), len(report.Installed))
	for _, failure := range report.Failed {
		fmt.Printf("  skipped: %s\n", failure)
	}
	return nil
}
