// Package search provides pure, stateless filtering and relevance scoring
// over in-memory entry lists. It performs no I/O and never mutates its
// inputs.
package search

import (
	"fmt"
	"sort"
	"strings"

	"github.com/elemdex-labs/elemdex/internal/entry"
	"github.com/elemdex-labs/elemdex/internal/scope"
)

// DefaultLimit caps result sets when the caller does not supply a limit.
const DefaultLimit = 20

// Relevance weights.
const (
	scoreExactName    = 100
	scoreNameContains = 50
	scoreDescToken    = 10
	scoreTagMatch     = 20
)

// QueryError reports malformed query input.
type QueryError struct {
	Reason string
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("invalid search query: %s", e.Reason)
}

// Options control one search call.
type Options struct {
	Query string
	Type  entry.ElementType // TypeAll matches every type
	Scope scope.Scope       // scope.All matches every scope
	Tags  []string          // AND semantics: every tag must be present
	Limit int               // 0 means DefaultLimit
}

// Search filters entries by type, scope, and tags, scores survivors
// against the whitespace-tokenized query, and returns them ranked by
// score descending with name-ascending tie-breaks. An empty query yields
// the filtered set in name order, unscored.
func Search(entries []entry.Entry, opts Options) ([]entry.Entry, error) {
	if opts.Type == "" {
		opts.Type = entry.TypeAll
	}
	if opts.Scope == "" {
		opts.Scope = scope.All
	}
	if !entry.ValidTypeFilter(opts.Type) {
		return nil, &QueryError{Reason: fmt.Sprintf("unknown element type %q", opts.Type)}
	}
	if !scope.ValidFilter(opts.Scope) {
		return nil, &QueryError{Reason: fmt.Sprintf("unknown scope %q", opts.Scope)}
	}
	if opts.Limit < 0 {
		return nil, &QueryError{Reason: "limit must not be negative"}
	}
	limit := opts.Limit
	if limit == 0 {
		limit = DefaultLimit
	}

	filtered := FilterByTags(FilterByScope(FilterByType(entries, opts.Type), opts.Scope), opts.Tags)

	tokens := Tokenize(opts.Query)
	if len(tokens) == 0 {
		result := sortByName(filtered)
		return truncate(result, limit), nil
	}

	type scored struct {
		e     entry.Entry
		score int
	}
	var ranked []scored
	for _, e := range filtered {
		s := Score(e, tokens)
		if s > 0 {
			ranked = append(ranked, scored{e: e, score: s})
		}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].score != ranked[j].score {
			return ranked[i].score > ranked[j].score
		}
		return ranked[i].e.Base().Name < ranked[j].e.Base().Name
	})

	result := make([]entry.Entry, 0, len(ranked))
	for _, r := range ranked {
		result = append(result, r.e)
	}
	return truncate(result, limit), nil
}

// Tokenize splits a query on whitespace into lowercase tokens.
func Tokenize(query string) []string {
	var tokens []string
	for _, field := range strings.Fields(query) {
		tokens = append(tokens, strings.ToLower(field))
	}
	return tokens
}

// Score computes relevance for e against pre-lowercased tokens: exact name
// match scores highest, then name-contains, per-token description hits,
// and tag hits.
func Score(e entry.Entry, tokens []string) int {
	b := e.Base()
	name := strings.ToLower(b.Name)
	desc := strings.ToLower(b.Description)

	tags := make(map[string]bool)
	for _, tag := range entry.Tags(e) {
		tags[strings.ToLower(tag)] = true
	}

	query := strings.Join(tokens, " ")

	score := 0
	if name == query || name == "/"+query {
		score += scoreExactName
	}
	for _, tok := range tokens {
		if strings.Contains(name, tok) {
			score += scoreNameContains
			break
		}
	}
	for _, tok := range tokens {
		if strings.Contains(desc, tok) {
			score += scoreDescToken
		}
	}
	for _, tok := range tokens {
		if tags[tok] {
			score += scoreTagMatch
		}
	}
	return score
}

// FilterByType returns entries of the given type; TypeAll passes all.
func FilterByType(entries []entry.Entry, t entry.ElementType) []entry.Entry {
	if t == entry.TypeAll {
		return entries
	}
	var out []entry.Entry
	for _, e := range entries {
		if e.Base().Type == t {
			out = append(out, e)
		}
	}
	return out
}

// FilterByScope returns entries in the given scope; scope.All passes all.
func FilterByScope(entries []entry.Entry, s scope.Scope) []entry.Entry {
	if s == scope.All {
		return entries
	}
	var out []entry.Entry
	for _, e := range entries {
		if e.Base().Scope == s {
			out = append(out, e)
		}
	}
	return out
}

// FilterByTags returns entries carrying every filter tag
// (case-insensitive). An empty filter passes all entries.
func FilterByTags(entries []entry.Entry, filterTags []string) []entry.Entry {
	if len(filterTags) == 0 {
		return entries
	}
	var out []entry.Entry
	for _, e := range entries {
		tags := make(map[string]bool)
		for _, tag := range entry.Tags(e) {
			tags[strings.ToLower(tag)] = true
		}
		all := true
		for _, ft := range filterTags {
			if !tags[strings.ToLower(ft)] {
				all = false
				break
			}
		}
		if all {
			out = append(out, e)
		}
	}
	return out
}

// sortByName returns a copy ordered by name ascending.
func sortByName(entries []entry.Entry) []entry.Entry {
	out := make([]entry.Entry, len(entries))
	copy(out, entries)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Base().Name < out[j].Base().Name
	})
	return out
}

func truncate(entries []entry.Entry, limit int) []entry.Entry {
	if len(entries) > limit {
		return entries[:limit]
	}
	return entries
}
