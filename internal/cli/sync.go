package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/elemdex-labs/elemdex/internal/entry"
)

var (
	syncTypes []string
	syncForce bool
	syncJSON  bool
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Rescan the filesystem and rewrite the manifests",
	Long: `Scan every scope for installed elements and merge the results into the
persisted manifests. Entries whose files have disappeared are kept; a
sync never deletes. Types are synced in parallel, and one type failing
does not stop the others.`,
	RunE: runSync,
}

func init() {
	syncCmd.Flags().StringSliceVar(&syncTypes, "type", nil, "Types to sync (skill, command, agent; default all)")
	syncCmd.Flags().BoolVar(&syncForce, "force", false, "Rescan even when the cache is still fresh")
	syncCmd.Flags().BoolVar(&syncJSON, "json", false, "Output in JSON format")
	rootCmd.AddCommand(syncCmd)
}

func runSync(cmd *cobra.Command, args []string) error {
	var types []entry.ElementType
	for _, raw := range syncTypes {
		t, err := parseTypeFilter(raw)
		if err != nil {
			return err
		}
		if t == entry.TypeAll {
			types = nil
			break
		}
		types = append(types, t)
	}

	result := manager().Sync(types, syncForce)

	if syncJSON {
		return printJSON(cmd, result)
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "TYPE\tDISCOVERED\tTOTAL\tSTATUS")
	failed := 0
	for _, s := range result.Summaries {
		status := "ok"
		if s.Failed {
			status = "failed"
			failed++
		}
		fmt.Fprintf(w, "%s\t%d\t%d\t%s\n", s.Type, s.Discovered, s.Total, status)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	printWarnings(result.Warnings)
	fmt.Fprintf(cmd.OutOrStdout(), "%d elements cataloged.\n", result.Total())

	if failed == len(result.Summaries) && failed > 0 {
		return fmt.Errorf("sync failed for every requested type")
	}
	return nil
}
