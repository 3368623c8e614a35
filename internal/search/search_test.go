package search

import (
	"testing"

	"github.com/elemdex-labs/elemdex/internal/entry"
	"github.com/elemdex-labs/elemdex/internal/scope"
)

func skill(name, description string, sc scope.Scope) *entry.SkillEntry {
	return &entry.SkillEntry{
		BaseEntry: entry.BaseEntry{
			Name:        name,
			Description: description,
			Scope:       sc,
			Type:        entry.TypeSkill,
		},
		Template: entry.TemplateBasic,
	}
}

func command(name, description string, tags ...string) *entry.CommandEntry {
	return &entry.CommandEntry{
		BaseEntry: entry.BaseEntry{
			Name:        name,
			Description: description,
			Scope:       scope.Global,
			Type:        entry.TypeCommand,
		},
		Tags: tags,
	}
}

func names(entries []entry.Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Base().Name
	}
	return out
}

func TestSearch_NameMatchBeatsDescriptionMatch(t *testing.T) {
	entries := []entry.Entry{
		skill("deploy", "deploy and analysis tool", scope.Global),
		skill("code-analysis", "static checks", scope.Project),
	}

	got, err := Search(entries, Options{Query: "analysis"})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 results, got %d", len(got))
	}
	if got[0].Base().Name != "code-analysis" {
		t.Errorf("first result = %q, want code-analysis", got[0].Base().Name)
	}
	if got[1].Base().Name != "deploy" {
		t.Errorf("second result = %q, want deploy", got[1].Base().Name)
	}
}

func TestSearch_ExactNameScoresHighest(t *testing.T) {
	entries := []entry.Entry{
		skill("review-helper", "helps with review", scope.Global),
		skill("review", "bare name match", scope.Global),
	}

	got, err := Search(entries, Options{Query: "review"})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if got[0].Base().Name != "review" {
		t.Errorf("first result = %q, want review", got[0].Base().Name)
	}
}

func TestSearch_EmptyQueryReturnsNameOrder(t *testing.T) {
	entries := []entry.Entry{
		skill("zeta", "last", scope.Global),
		skill("alpha", "first", scope.Global),
		skill("mid", "middle", scope.Global),
	}

	got, err := Search(entries, Options{Query: "   "})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	want := []string{"alpha", "mid", "zeta"}
	for i, name := range names(got) {
		if name != want[i] {
			t.Errorf("result[%d] = %q, want %q", i, name, want[i])
		}
	}
}

func TestSearch_Deterministic(t *testing.T) {
	entries := []entry.Entry{
		skill("bravo", "build helper", scope.Global),
		skill("alpha", "build helper", scope.Global),
		skill("charlie", "build helper", scope.Global),
	}

	first, err := Search(entries, Options{Query: "build"})
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 10; i++ {
		again, err := Search(entries, Options{Query: "build"})
		if err != nil {
			t.Fatal(err)
		}
		for j := range first {
			if first[j].Base().Name != again[j].Base().Name {
				t.Fatalf("ordering changed between calls: %v vs %v", names(first), names(again))
			}
		}
	}
	// Equal scores break ties by name ascending.
	want := []string{"alpha", "bravo", "charlie"}
	for i, name := range names(first) {
		if name != want[i] {
			t.Errorf("result[%d] = %q, want %q", i, name, want[i])
		}
	}
}

func TestSearch_TagsAreANDed(t *testing.T) {
	entries := []entry.Entry{
		command("/deploy", "ship it", "ops", "deploy"),
		command("/rollback", "undo it", "ops"),
	}

	got, err := Search(entries, Options{Tags: []string{"ops", "deploy"}})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(got) != 1 || got[0].Base().Name != "/deploy" {
		t.Errorf("results = %v, want [/deploy]", names(got))
	}
}

func TestSearch_TagMatchesRaiseScore(t *testing.T) {
	entries := []entry.Entry{
		command("/a", "nothing relevant", "deploy"),
		command("/b", "nothing relevant"),
	}

	got, err := Search(entries, Options{Query: "deploy"})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	// Only /a scores: tag match. /b has zero score and is dropped.
	if len(got) != 1 || got[0].Base().Name != "/a" {
		t.Errorf("results = %v, want [/a]", names(got))
	}
}

func TestSearch_Limit(t *testing.T) {
	var entries []entry.Entry
	for _, name := range []string{"a", "b", "c", "d", "e"} {
		entries = append(entries, skill(name, "common description", scope.Global))
	}

	got, err := Search(entries, Options{Query: "common", Limit: 3})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(got) != 3 {
		t.Errorf("expected 3 results, got %d", len(got))
	}
}

func TestSearch_NegativeLimitRejected(t *testing.T) {
	_, err := Search(nil, Options{Limit: -1})
	if err == nil {
		t.Fatal("expected QueryError, got nil")
	}
	if _, ok := err.(*QueryError); !ok {
		t.Errorf("expected *QueryError, got %T", err)
	}
}

func TestSearch_UnknownFilterRejected(t *testing.T) {
	if _, err := Search(nil, Options{Type: "plugin"}); err == nil {
		t.Error("expected error for unknown type filter")
	}
	if _, err := Search(nil, Options{Scope: "workspace"}); err == nil {
		t.Error("expected error for unknown scope filter")
	}
}

func TestFilters_EmptyInput(t *testing.T) {
	if got := FilterByType(nil, entry.TypeSkill); len(got) != 0 {
		t.Errorf("FilterByType(nil) = %v, want empty", got)
	}
	if got := FilterByScope(nil, scope.Global); len(got) != 0 {
		t.Errorf("FilterByScope(nil) = %v, want empty", got)
	}
	if got := FilterByTags(nil, []string{"x"}); len(got) != 0 {
		t.Errorf("FilterByTags(nil) = %v, want empty", got)
	}
}

func TestFilterByScope(t *testing.T) {
	entries := []entry.Entry{
		skill("g", "global one", scope.Global),
		skill("p", "project one", scope.Project),
	}

	got := FilterByScope(entries, scope.Project)
	if len(got) != 1 || got[0].Base().Name != "p" {
		t.Errorf("FilterByScope = %v, want [p]", names(got))
	}
	if got := FilterByScope(entries, scope.All); len(got) != 2 {
		t.Errorf("FilterByScope(all) = %d entries, want 2", len(got))
	}
}

func TestSearch_DoesNotMutateInput(t *testing.T) {
	entries := []entry.Entry{
		skill("zeta", "z", scope.Global),
		skill("alpha", "a", scope.Global),
	}

	if _, err := Search(entries, Options{}); err != nil {
		t.Fatal(err)
	}
	if entries[0].Base().Name != "zeta" {
		t.Error("Search reordered the caller's slice")
	}
}
