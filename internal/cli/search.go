package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/elemdex-labs/elemdex/internal/scope"
	"github.com/elemdex-labs/elemdex/internal/search"
)

var (
	searchTypeFilter  string
	searchScopeFilter string
	searchTagFilter   string
	searchLimit       int
	searchJSON        bool
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search the catalog",
	Long: `Search cataloged elements by relevance. The query is split into
whitespace tokens and matched against names, descriptions, and tags;
results come back ranked, best first.

Use --type and --scope to narrow the search and --tag to require tags
(comma-separated, all must be present).`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().StringVar(&searchTypeFilter, "type", "", "Filter by type (skill, command, agent)")
	searchCmd.Flags().StringVar(&searchScopeFilter, "scope", "", "Filter by scope (global, project, local)")
	searchCmd.Flags().StringVar(&searchTagFilter, "tag", "", "Filter by tags (comma-separated, all must match)")
	searchCmd.Flags().IntVar(&searchLimit, "limit", 0, "Maximum number of results (default 20)")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "Output in JSON format")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	query := ""
	if len(args) > 0 {
		query = args[0]
	}

	t, err := parseTypeFilter(searchTypeFilter)
	if err != nil {
		return err
	}
	sc := scope.All
	if searchScopeFilter != "" {
		sc = scope.Scope(searchScopeFilter)
	}

	results, warnings, err := manager().Search(search.Options{
		Query: query,
		Type:  t,
		Scope: sc,
		Tags:  parseTags(searchTagFilter),
		Limit: searchLimit,
	})
	if err != nil {
		return fmt.Errorf("searching catalog: %w", err)
	}
	printWarnings(warnings)

	if searchJSON {
		return printJSON(cmd, toDisplayList(results))
	}

	if len(results) == 0 {
		msg := "No elements found"
		if query != "" {
			msg += fmt.Sprintf(" matching %q", query)
		}
		if searchTypeFilter != "" {
			msg += fmt.Sprintf(" with --type=%s", searchTypeFilter)
		}
		if searchTagFilter != "" {
			msg += fmt.Sprintf(" with --tag=%s", searchTagFilter)
		}
		fmt.Fprintln(cmd.OutOrStdout(), msg)
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "TYPE\tNAME\tSCOPE\tDESCRIPTION")
	for _, d := range toDisplayList(results) {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", d.Type, d.Name, d.Scope, truncateDesc(d.Description, 60))
	}
	return w.Flush()
}
