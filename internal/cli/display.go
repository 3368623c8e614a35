package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/elemdex-labs/elemdex/internal/entry"
)

// displayEntry is the flattened view of a catalog entry used by the
// list and search tables and their --json variants.
type displayEntry struct {
	Type        string   `json:"type"`
	Name        string   `json:"name"`
	Scope       string   `json:"scope"`
	Description string   `json:"description"`
	Path        string   `json:"path"`
	Tags        []string `json:"tags,omitempty"`
}

func toDisplay(e entry.Entry) displayEntry {
	b := e.Base()
	return displayEntry{
		Type:        string(b.Type),
		Name:        b.Name,
		Scope:       string(b.Scope),
		Description: b.Description,
		Path:        b.Path,
		Tags:        entry.Tags(e),
	}
}

func toDisplayList(entries []entry.Entry) []displayEntry {
	out := make([]displayEntry, 0, len(entries))
	for _, e := range entries {
		out = append(out, toDisplay(e))
	}
	return out
}

// truncateDesc shortens a description for table output.
func truncateDesc(desc string, max int) string {
	if len(desc) <= max {
		return desc
	}
	return desc[:max-3] + "..."
}

// parseTags splits a comma-separated tag flag into trimmed, non-empty
// tags.
func parseTags(raw string) []string {
	var tags []string
	for _, t := range strings.Split(raw, ",") {
		if tag := strings.TrimSpace(t); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}

// parseTypeFilter maps a --type flag value onto an element type filter.
// An empty flag means all types.
func parseTypeFilter(raw string) (entry.ElementType, error) {
	if raw == "" {
		return entry.TypeAll, nil
	}
	t := entry.ElementType(strings.ToLower(raw))
	if !entry.ValidTypeFilter(t) {
		return "", fmt.Errorf("unknown type %q (expected skill, command, agent, or all)", raw)
	}
	return t, nil
}

func printJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return err
}
