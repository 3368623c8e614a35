// Package syncer persists per-type catalog manifests and reconciles
// freshly scanned entries against previously persisted ones.
//
// Every write follows the same atomic protocol: back up the current
// manifest, serialize to a .tmp sibling, re-read and schema-validate the
// .tmp file, then rename it over the canonical path. A failure at any
// point leaves the canonical manifest byte-identical to its prior state,
// with the .backup sibling available for manual recovery.
//
// Merging is keyed on (scope, path) rather than entry ID, because the
// scanner mints fresh IDs each pass. A merge never deletes: entries whose
// backing files vanished stay in the catalog, flagged stale only by their
// unrefreshed updated_at.
package syncer
