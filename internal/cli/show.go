package cli

import (
	"errors"
	"fmt"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/elemdex-labs/elemdex/internal/catalog"
	"github.com/elemdex-labs/elemdex/internal/entry"
)

var (
	showTypeFilter string
	showFuzzy      bool
	showJSON       bool
)

var showCmd = &cobra.Command{
	Use:   "show <name>",
	Short: "Show one element in full",
	Long: `Show a single cataloged element by name. Matching is case-insensitive;
with --fuzzy a near-miss name falls back to the best search match.`,
	Args: cobra.ExactArgs(1),
	RunE: runShow,
}

func init() {
	showCmd.Flags().StringVar(&showTypeFilter, "type", "", "Limit lookup to one type (skill, command, agent)")
	showCmd.Flags().BoolVar(&showFuzzy, "fuzzy", false, "Fall back to the closest search match")
	showCmd.Flags().BoolVar(&showJSON, "json", false, "Output in JSON format")
	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	t, err := parseTypeFilter(showTypeFilter)
	if err != nil {
		return err
	}

	e, err := manager().Get(args[0], t, showFuzzy)
	if errors.Is(err, catalog.ErrNotFound) {
		return fmt.Errorf("no element named %q (try --fuzzy or 'search')", args[0])
	}
	if err != nil {
		return err
	}

	if showJSON {
		return printJSON(cmd, e)
	}
	return printDetail(cmd, e)
}

func printDetail(cmd *cobra.Command, e entry.Entry) error {
	b := e.Base()

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "Name:\t%s\n", b.Name)
	fmt.Fprintf(w, "Type:\t%s\n", b.Type)
	fmt.Fprintf(w, "Scope:\t%s\n", b.Scope)
	fmt.Fprintf(w, "Path:\t%s\n", b.Path)
	fmt.Fprintf(w, "Description:\t%s\n", b.Description)

	switch v := e.(type) {
	case *entry.SkillEntry:
		fmt.Fprintf(w, "Template:\t%s\n", v.Template)
		fmt.Fprintf(w, "Has scripts:\t%t\n", v.HasScripts)
		fmt.Fprintf(w, "File count:\t%d\n", v.FileCount)
		if len(v.AllowedTools) > 0 {
			fmt.Fprintf(w, "Allowed tools:\t%s\n", strings.Join(v.AllowedTools, ", "))
		}
	case *entry.CommandEntry:
		if len(v.Aliases) > 0 {
			fmt.Fprintf(w, "Aliases:\t%s\n", strings.Join(v.Aliases, ", "))
		}
		if len(v.RequiresTools) > 0 {
			fmt.Fprintf(w, "Requires tools:\t%s\n", strings.Join(v.RequiresTools, ", "))
		}
	case *entry.AgentEntry:
		fmt.Fprintf(w, "Model:\t%s\n", v.Model)
		fmt.Fprintf(w, "Specialization:\t%s\n", v.Specialization)
		if len(v.RequiresSkills) > 0 {
			fmt.Fprintf(w, "Requires skills:\t%s\n", strings.Join(v.RequiresSkills, ", "))
		}
	}

	if tags := entry.Tags(e); len(tags) > 0 {
		fmt.Fprintf(w, "Tags:\t%s\n", strings.Join(tags, ", "))
	}
	fmt.Fprintf(w, "Created:\t%s\n", b.CreatedAt.Format(time.RFC3339))
	fmt.Fprintf(w, "Updated:\t%s\n", b.UpdatedAt.Format(time.RFC3339))
	return w.Flush()
}
