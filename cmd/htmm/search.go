package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"htmm/internal/domain"

	"github.com/spf13/cobra"
)

var (
	searchProvider string
	searchPage     int
	searchPageSize int
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search the mod catalogs",
	Long: `Search a remote catalog for mods.

Examples:
  htmm search "better foliage"
  htmm search sorter --provider curseforge`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().StringVarP(&searchProvider, "provider", "p", "orbis", "catalog to search (curseforge, orbis)")
	searchCmd.Flags().IntVar(&searchPage, "page", 0, "result page")
	searchCmd.Flags().IntVar(&searchPageSize, "page-size", 20, "results per page")

	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	provider, err := parseProvider(searchProvider)
	if err != nil {
		return err
	}
	query := strings.Join(args, " ")

	service, err := initService()
	if err != nil {
		return fmt.Errorf("initializing service: %w", err)
	}
	defer service.Close()

	cat, err := service.Catalogs().Get(provider)
	if err != nil {
		return err
	}

	results, err := cat.Search(context.Background(), query, searchPage, searchPageSize)
	if err != nil {
		return fmt.Errorf("searching %s: %w", cat.Name(), err)
	}

	if jsonOutput {
		if results == nil {
			results = []domain.ModSummary{}
		}
		return printJSON(results)
	}

	if len(results) == 0 {
		fmt.Println("No mods found.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "REF\tNAME\tSUMMARY")
	fmt.Fprintln(w, "---\t----\t-------")
	for _, mod := range results {
		fmt.Fprintf(w, "%s\t%s\t%s\n", mod.Ref(), truncate(mod.Name, 40), truncate(mod.Summary, 60))
	}
	w.Flush()

	fmt.Printf("\nInstall with 'htmm install --provider %s <ref>'.\n", provider)
	return nil
}
