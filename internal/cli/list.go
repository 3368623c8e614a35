package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/elemdex-labs/elemdex/internal/scope"
)

var (
	listTypeFilter  string
	listScopeFilter string
	listRefresh     bool
	listJSON        bool
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List cataloged elements",
	Long: `List the elements recorded in the manifests, syncing first when the
cache has gone stale. Use --refresh to force a rescan.`,
	RunE: runList,
}

func init() {
	listCmd.Flags().StringVar(&listTypeFilter, "type", "", "Filter by type (skill, command, agent)")
	listCmd.Flags().StringVar(&listScopeFilter, "scope", "", "Filter by scope (global, project, local)")
	listCmd.Flags().BoolVar(&listRefresh, "refresh", false, "Rescan the filesystem before listing")
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output in JSON format")
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	t, err := parseTypeFilter(listTypeFilter)
	if err != nil {
		return err
	}
	sc := scope.All
	if listScopeFilter != "" {
		sc = scope.Scope(listScopeFilter)
	}

	entries, warnings, err := manager().List(t, sc, listRefresh)
	if err != nil {
		return fmt.Errorf("listing elements: %w", err)
	}
	printWarnings(warnings)

	if listJSON {
		return printJSON(cmd, toDisplayList(entries))
	}

	if len(entries) == 0 {
		if listTypeFilter != "" || listScopeFilter != "" {
			fmt.Fprintln(cmd.OutOrStdout(), "No elements match the given filters.")
		} else {
			fmt.Fprintln(cmd.OutOrStdout(), "No elements cataloged yet.")
		}
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "TYPE\tNAME\tSCOPE\tDESCRIPTION")
	for _, d := range toDisplayList(entries) {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", d.Type, d.Name, d.Scope, truncateDesc(d.Description, 60))
	}
	return w.Flush()
}

// printWarnings surfaces non-fatal sync problems without polluting
// stdout.
func printWarnings(warnings []string) {
	for _, w := range warnings {
		fmt.Fprintln(os.Stderr, "warning:", w)
	}
}
