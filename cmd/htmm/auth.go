package main

import (
	"fmt"

	"htmm/internal/domain"

	"github.com/spf13/cobra"
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage catalog API keys",
	Long: `Store and inspect catalog API keys. CurseForge requires an API key
from console.curseforge.com; Orbis needs none. Keys are kept in the local
database, and the CURSEFORGE_API_KEY environment variable takes precedence
over a stored key.`,
}

var authSetCmd = &cobra.Command{
	Use:   "set <provider> <api-key>",
	Short: "Store an API key for a provider",
	Long: `Store an API key.

Examples:
  htmm auth set curseforge $CF_KEY`,
	Args: cobra.ExactArgs(2),
	RunE: runAuthSet,
}

var authStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show which providers have stored keys",
	RunE:  runAuthStatus,
}

var authRemoveCmd = &cobra.Command{
	Use:   "remove <provider>",
	Short: "Remove a stored API key",
	Args:  cobra.ExactArgs(1),
	RunE:  runAuthRemove,
}

func init() {
	authCmd.AddCommand(authSetCmd)
	authCmd.AddCommand(authStatusCmd)
	authCmd.AddCommand(authRemoveCmd)

	rootCmd.AddCommand(authCmd)
}

func runAuthSet(cmd *cobra.Command, args []string) error {
	provider, err := parseProvider(args[0])
	if err != nil {
		return err
	}

	service, err := initService()
	if err != nil {
		return fmt.Errorf("initializing service: %w", err)
	}
	defer service.Close()

	if err := service.DB().SaveToken(string(provider), args[1]); err != nil {
		return err
	}
	fmt.Printf("Stored API key for %s.\n", provider)
	return nil
}

func runAuthStatus(cmd *cobra.Command, args []string) error {
	service, err := initService()
	if err != nil {
		return fmt.Errorf("initializing service: %w", err)
	}
	defer service.Close()

	for _, provider := range []domain.Provider{domain.ProviderCurseForge, domain.ProviderOrbis} {
		if provider == domain.ProviderOrbis {
			fmt.Printf("%s: no key required\n", provider)
			continue
		}
		has, err := service.DB().HasToken(string(provider))
		if err != nil {
			return err
		}
		if has {
			fmt.Printf("%s: key stored\n", provider)
		} else {
			fmt.Printf("%s: no key stored\n", provider)
		}
	}
	return nil
}

func runAuthRemove(cmd *cobra.Command, args []string) error {
	provider, err := parseProvider(args[0])
	if err != nil {
		return err
	}

	service, err := initService()
	if err != nil {
		return fmt.Errorf("initializing service: %w", err)
	}
	defer service.Close()

	if err := service.DB().DeleteToken(string(provider)); err != nil {
		return err
	}
	fmt.Printf("Removed API key for %s.\n", provider)
	return nil
}
