package syncer

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/Masterminds/semver/v3"
	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/elemdex-labs/elemdex/internal/config"
	"github.com/elemdex-labs/elemdex/internal/entry"
	"github.com/elemdex-labs/elemdex/internal/scope"
)

// Sibling suffixes used by the atomic write protocol. Readers only ever
// open the canonical filename.
const (
	tmpSuffix    = ".tmp"
	backupSuffix = ".backup"
)

// Syncer persists catalogs and merges scan results into them.
type Syncer struct {
	manifestDir string

	// readBack verifies serialized manifest bytes during the atomic write
	// protocol. Overridable in tests to inject validation failures.
	readBack func(t entry.ElementType, data []byte) error
}

// New returns a Syncer using the configured manifest directory name.
func New() *Syncer {
	return &Syncer{
		manifestDir: config.ManifestDir(),
		readBack:    verifyManifest,
	}
}

// ManifestPath returns the canonical manifest location for a type within
// a scope: <scope_root>/<manifest_dir>/<type>.json.
func (s *Syncer) ManifestPath(t entry.ElementType, sc scope.Scope) (string, error) {
	root, err := scope.Root(sc)
	if err != nil {
		return "", err
	}
	return filepath.Join(root, s.manifestDir, manifestKey(t)+".json"), nil
}

// Load reads the manifest for (t, sc). A missing manifest yields an empty
// catalog with no warnings. An unreadable or invalid manifest falls back
// to its .backup sibling; if that also fails, an empty catalog is
// returned. Load never fails: problems surface as warnings.
func (s *Syncer) Load(t entry.ElementType, sc scope.Scope) (*Catalog, []string) {
	path, err := s.ManifestPath(t, sc)
	if err != nil {
		warn := fmt.Sprintf("resolving manifest path for %s/%s: %v", t, sc, err)
		log.Warn("catalog load degraded", "type", t, "scope", sc, "err", err)
		return NewCatalog(t), []string{warn}
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return NewCatalog(t), nil
	}

	cat, err := s.loadFile(t, path)
	if err == nil {
		return cat, nil
	}

	var warnings []string
	lerr := &LoadError{Path: path, Err: err}
	warnings = append(warnings, lerr.Error())
	log.Warn("manifest invalid, trying backup", "path", path, "err", err)

	backupPath := path + backupSuffix
	cat, berr := s.loadFile(t, backupPath)
	if berr == nil {
		warnings = append(warnings, fmt.Sprintf("recovered catalog %s from backup", path))
		return cat, warnings
	}

	warnings = append(warnings, (&LoadError{Path: backupPath, Err: berr}).Error())
	log.Warn("backup also unusable, starting from empty catalog", "path", backupPath, "err", berr)
	return NewCatalog(t), warnings
}

// loadFile reads, schema-validates, and decodes one manifest file.
func (s *Syncer) loadFile(t entry.ElementType, path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	if err := verifyManifest(t, data); err != nil {
		return nil, err
	}

	cat := NewCatalog(t)
	if err := cat.decode(data); err != nil {
		return nil, err
	}
	return cat, nil
}

// Save writes the catalog for (c.Type, sc) using the atomic protocol:
// backup, temp write, read-back validation, rename. On any failure before
// the rename the canonical file is untouched and any backup is preserved.
func (s *Syncer) Save(c *Catalog, sc scope.Scope) error {
	path, err := s.ManifestPath(c.Type, sc)
	if err != nil {
		return &SaveError{Path: string(c.Type), Err: err}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return &SaveError{Path: path, Err: err}
	}

	// Step 1: back up the current manifest, if any.
	if _, err := os.Stat(path); err == nil {
		if _, err := s.Backup(c.Type, sc); err != nil {
			return err
		}
	}

	c.SchemaVersion = SchemaVersion
	c.LastSynced = time.Now()

	data, err := c.encode()
	if err != nil {
		return &SaveError{Path: path, Err: err}
	}

	// Step 2: serialize to a .tmp sibling.
	tmpPath := path + tmpSuffix
	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		return &SaveError{Path: path, Err: err}
	}

	// Step 3: re-read the .tmp file and validate it.
	written, err := os.ReadFile(tmpPath)
	if err != nil {
		os.Remove(tmpPath)
		return &SaveError{Path: path, Err: err}
	}
	if err := s.readBack(c.Type, written); err != nil {
		os.Remove(tmpPath)
		return &SaveError{Path: path, Err: err}
	}

	// Step 4: atomic rename over the canonical path.
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return &SaveError{Path: path, Err: err}
	}

	// Step 5: the write landed; the backup is no longer needed.
	os.Remove(path + backupSuffix)
	return nil
}

// Backup copies the current manifest to its .backup sibling and returns
// the backup path.
func (s *Syncer) Backup(t entry.ElementType, sc scope.Scope) (string, error) {
	path, err := s.ManifestPath(t, sc)
	if err != nil {
		return "", &BackupError{Path: string(t), Err: err}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", &BackupError{Path: path, Err: err}
	}

	backupPath := path + backupSuffix
	if err := os.WriteFile(backupPath, data, 0644); err != nil {
		return "", &BackupError{Path: path, Err: err}
	}
	return backupPath, nil
}

// verifyManifest runs JSON Schema validation over manifest bytes and
// checks schema_version compatibility (same major as SchemaVersion).
func verifyManifest(t entry.ElementType, data []byte) error {
	result, err := entry.ValidateCatalogJSON(data)
	if err != nil {
		return err
	}
	if !result.Valid {
		issue := result.Issues[0]
		return &entry.ValidationError{
			Field:  issue.Path,
			Reason: fmt.Sprintf("%s (%s)", issue.Message, issue.Keyword),
		}
	}

	cat := NewCatalog(t)
	if err := cat.decode(data); err != nil {
		return err
	}
	return checkSchemaVersion(cat.SchemaVersion)
}

// checkSchemaVersion rejects manifests from an incompatible major version.
func checkSchemaVersion(version string) error {
	current, err := semver.NewVersion(SchemaVersion)
	if err != nil {
		return fmt.Errorf("parsing supported schema version: %w", err)
	}
	found, err := semver.NewVersion(version)
	if err != nil {
		return fmt.Errorf("parsing manifest schema_version %q: %w", version, err)
	}
	if found.Major() != current.Major() {
		return fmt.Errorf("manifest schema_version %s is incompatible with %s", version, SchemaVersion)
	}
	return nil
}

// Merge reconciles previously persisted entries with a fresh scan, keyed
// on (scope, path):
//
//   - present in both: keep the existing ID and created_at, take the
//     discovered entry's fields, refresh updated_at
//   - only discovered: added as new (ID minted here if the scanner left
//     it empty)
//   - only existing: retained as-is; a rescan never deletes
//
// Duplicate names within one scope are surfaced as warnings, never
// auto-resolved. Inputs are not mutated.
func Merge(existing, discovered []entry.Entry) ([]entry.Entry, []string) {
	type mergeKey struct {
		sc   scope.Scope
		path string
	}
	now := time.Now()

	discByKey := make(map[mergeKey]entry.Entry, len(discovered))
	for _, d := range discovered {
		discByKey[mergeKey{d.Base().Scope, d.Base().Path}] = d
	}

	var merged []entry.Entry
	consumed := make(map[mergeKey]bool)

	for _, ex := range existing {
		k := mergeKey{ex.Base().Scope, ex.Base().Path}
		d, ok := discByKey[k]
		if !ok {
			merged = append(merged, ex)
			continue
		}

		// Filesystem is authoritative for content; identity survives.
		m := entry.Clone(d)
		mb := m.Base()
		mb.ID = ex.Base().ID
		mb.CreatedAt = ex.Base().CreatedAt
		mb.UpdatedAt = now
		merged = append(merged, m)
		consumed[k] = true
	}

	for _, d := range discovered {
		k := mergeKey{d.Base().Scope, d.Base().Path}
		if consumed[k] {
			continue
		}
		m := entry.Clone(d)
		if m.Base().ID == "" {
			m.Base().ID = uuid.NewString()
		}
		merged = append(merged, m)
	}

	return merged, duplicateNameWarnings(merged)
}

// duplicateNameWarnings reports (scope, name) collisions in the merged set.
func duplicateNameWarnings(entries []entry.Entry) []string {
	type nameKey struct {
		sc   scope.Scope
		name string
	}
	seen := make(map[nameKey]int)
	for _, e := range entries {
		seen[nameKey{e.Base().Scope, e.Base().Name}]++
	}

	var warnings []string
	reported := make(map[nameKey]bool)
	for _, e := range entries {
		k := nameKey{e.Base().Scope, e.Base().Name}
		if seen[k] > 1 && !reported[k] {
			reported[k] = true
			warnings = append(warnings, fmt.Sprintf("duplicate name %q in scope %s (%d entries)", k.name, k.sc, seen[k]))
			log.Warn("duplicate name within scope", "name", k.name, "scope", k.sc, "count", seen[k])
		}
	}
	return warnings
}
