package catalog

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/elemdex-labs/elemdex/internal/config"
	"github.com/elemdex-labs/elemdex/internal/entry"
	"github.com/elemdex-labs/elemdex/internal/scanner"
	"github.com/elemdex-labs/elemdex/internal/scope"
	"github.com/elemdex-labs/elemdex/internal/search"
	"github.com/elemdex-labs/elemdex/internal/syncer"
)

// ErrNotFound is returned by Get when no element matches the requested
// name, even after fuzzy fallback.
var ErrNotFound = errors.New("element not found")

// minFuzzyScore is the floor below which a fuzzy Get match is rejected.
// A single description-token hit scores 10; anything weaker than that
// is noise.
const minFuzzyScore = 10

// cacheItem holds one element type's synced entries and when they were
// fetched.
type cacheItem struct {
	entries []entry.Entry
	at      time.Time
}

// Manager coordinates the scanner and syncer and answers catalog
// queries. Safe for concurrent use.
type Manager struct {
	scanner *scanner.Scanner
	syncer  *syncer.Syncer
	ttl     time.Duration

	mu    sync.Mutex
	cache map[entry.ElementType]cacheItem
}

// New returns a Manager with the cache TTL taken from configuration.
func New() *Manager {
	return &Manager{
		scanner: scanner.New(),
		syncer:  syncer.New(),
		ttl:     config.CacheTTL(),
		cache:   make(map[entry.ElementType]cacheItem),
	}
}

// List returns the cataloged entries of the given type (entry.TypeAll
// for every type) in the given scope (scope.All for every scope),
// sorted by name. Stale or missing cache state triggers a sync first;
// refresh forces one. Non-fatal sync problems come back as warnings.
func (m *Manager) List(t entry.ElementType, sc scope.Scope, refresh bool) ([]entry.Entry, []string, error) {
	if t == "" {
		t = entry.TypeAll
	}
	if sc == "" {
		sc = scope.All
	}
	if !entry.ValidTypeFilter(t) {
		return nil, nil, fmt.Errorf("unknown element type %q", t)
	}
	if !scope.ValidFilter(sc) {
		return nil, nil, fmt.Errorf("unknown scope %q", sc)
	}

	var entries []entry.Entry
	var warnings []string
	for _, ty := range resolveTypes(t) {
		ents, warns, err := m.entriesFor(ty, refresh)
		warnings = append(warnings, warns...)
		if err != nil {
			return nil, warnings, err
		}
		entries = append(entries, ents...)
	}

	entries = search.FilterByScope(entries, sc)
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Base().Name < entries[j].Base().Name
	})
	return entries, warnings, nil
}

// Search runs a ranked query over the synced catalog. Filter validation
// and scoring semantics live in the search package.
func (m *Manager) Search(opts search.Options) ([]entry.Entry, []string, error) {
	t := opts.Type
	if t == "" {
		t = entry.TypeAll
	}
	if !entry.ValidTypeFilter(t) {
		return nil, nil, &search.QueryError{Reason: fmt.Sprintf("unknown element type %q", t)}
	}

	entries, warnings, err := m.List(t, scope.All, false)
	if err != nil {
		return nil, warnings, err
	}
	results, err := search.Search(entries, opts)
	return results, warnings, err
}

// Get finds a single element by name. Matching is case-insensitive and,
// for commands, tolerant of a missing leading slash. With fuzzy set, a
// failed exact match falls back to the search scorer and returns the
// best-scoring candidate above a minimum threshold. A miss is reported
// as ErrNotFound.
func (m *Manager) Get(name string, t entry.ElementType, fuzzy bool) (entry.Entry, error) {
	entries, _, err := m.List(t, scope.All, false)
	if err != nil {
		return nil, err
	}

	want := strings.TrimPrefix(strings.ToLower(name), "/")
	for _, e := range entries {
		have := strings.TrimPrefix(strings.ToLower(e.Base().Name), "/")
		if have == want {
			return e, nil
		}
	}

	if fuzzy {
		tokens := search.Tokenize(name)
		var best entry.Entry
		bestScore := 0
		for _, e := range entries {
			if s := search.Score(e, tokens); s > bestScore {
				best, bestScore = e, s
			}
		}
		if best != nil && bestScore >= minFuzzyScore {
			return best, nil
		}
	}

	return nil, fmt.Errorf("%q: %w", name, ErrNotFound)
}

// TypeSummary reports one element type's sync outcome.
type TypeSummary struct {
	Type       entry.ElementType `json:"type"`
	Discovered int               `json:"discovered"`
	Total      int               `json:"total"`
	Failed     bool              `json:"failed,omitempty"`
}

// SyncResult aggregates a Sync call across types. Summaries are in
// request order.
type SyncResult struct {
	Summaries []TypeSummary `json:"summaries"`
	Warnings  []string      `json:"warnings,omitempty"`
}

// Total returns the number of cataloged entries across all summaries.
func (r *SyncResult) Total() int {
	n := 0
	for _, s := range r.Summaries {
		n += s.Total
	}
	return n
}

// Sync rescans the filesystem and rewrites the manifests for the given
// types (nil or empty means every type), one goroutine per type. force
// bypasses the cache; without it a type whose cache is still fresh is
// not rescanned. A failing type is reported in its summary and as a
// warning; the other types still complete.
func (m *Manager) Sync(types []entry.ElementType, force bool) *SyncResult {
	if len(types) == 0 {
		types = entry.KnownTypes
	}

	result := &SyncResult{Summaries: make([]TypeSummary, len(types))}
	var resultMu sync.Mutex

	var wg sync.WaitGroup
	for i, t := range types {
		wg.Add(1)
		go func(i int, t entry.ElementType) {
			defer wg.Done()

			summary := TypeSummary{Type: t}
			if !force {
				if cached, ok := m.cached(t); ok {
					summary.Total = len(cached)
					resultMu.Lock()
					result.Summaries[i] = summary
					resultMu.Unlock()
					return
				}
			}

			entries, discovered, warns, err := m.syncType(t)
			summary.Discovered = discovered
			summary.Total = len(entries)
			if err != nil {
				summary.Failed = true
				warns = append(warns, fmt.Sprintf("sync %s: %v", t, err))
				log.Error("sync failed", "type", t, "error", err)
			}

			resultMu.Lock()
			result.Summaries[i] = summary
			result.Warnings = append(result.Warnings, warns...)
			resultMu.Unlock()
		}(i, t)
	}
	wg.Wait()

	return result
}

// entriesFor returns the synced entries for one concrete type, serving
// from the cache while it is fresh.
func (m *Manager) entriesFor(t entry.ElementType, refresh bool) ([]entry.Entry, []string, error) {
	if !refresh {
		if cached, ok := m.cached(t); ok {
			return cached, nil, nil
		}
	}

	entries, _, warnings, err := m.syncType(t)
	if err != nil {
		return nil, warnings, err
	}
	return entries, warnings, nil
}

// cached returns a copy of t's cache slot when it is still within the
// TTL.
func (m *Manager) cached(t entry.ElementType) ([]entry.Entry, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	item, ok := m.cache[t]
	if !ok || time.Since(item.at) >= m.ttl {
		return nil, false
	}
	out := make([]entry.Entry, len(item.entries))
	copy(out, item.entries)
	return out, true
}

// syncType performs one full sync pass for a concrete type: scan every
// scope, merge each scope's discoveries into its persisted manifest,
// save, and refresh the cache. Scopes with nothing discovered and no
// manifest on disk are left untouched.
func (m *Manager) syncType(t entry.ElementType) ([]entry.Entry, int, []string, error) {
	found, warnings, err := m.scanner.Scan(t, scope.All)
	if err != nil {
		return nil, 0, warnings, err
	}

	byScope := make(map[scope.Scope][]entry.Entry)
	for _, e := range found {
		byScope[e.Base().Scope] = append(byScope[e.Base().Scope], e)
	}

	var all []entry.Entry
	for _, sc := range scope.Known() {
		existing, loadWarns := m.syncer.Load(t, sc)
		warnings = append(warnings, loadWarns...)

		merged, mergeWarns := syncer.Merge(existing.Entries, byScope[sc])
		warnings = append(warnings, mergeWarns...)

		if len(merged) == 0 && !m.manifestExists(t, sc) {
			continue
		}

		cat := syncer.NewCatalog(t)
		cat.Entries = merged
		if err := m.syncer.Save(cat, sc); err != nil {
			return nil, len(found), warnings, err
		}
		all = append(all, merged...)
	}

	m.mu.Lock()
	m.cache[t] = cacheItem{entries: all, at: time.Now()}
	m.mu.Unlock()

	out := make([]entry.Entry, len(all))
	copy(out, all)
	return out, len(found), warnings, nil
}

func (m *Manager) manifestExists(t entry.ElementType, sc scope.Scope) bool {
	path, err := m.syncer.ManifestPath(t, sc)
	if err != nil {
		return false
	}
	_, err = os.Stat(path)
	return err == nil
}

// resolveTypes expands entry.TypeAll into the concrete types.
func resolveTypes(t entry.ElementType) []entry.ElementType {
	if t == entry.TypeAll {
		return entry.KnownTypes
	}
	return []entry.ElementType{t}
}
