// Package scanner discovers elements on disk. It walks scope-rooted
// directories with a per-type layout (skills/<name>/*.md, commands/<name>.md,
// agents/<name>.md), parses each candidate's metadata header, and builds
// freshly minted catalog entries. A scan is a pure read: reconciling new
// entries against previously persisted ones is the syncer's merge step.
//
// One bad file never aborts a scan. Unparseable headers, schema-invalid
// metadata, and unreadable directories are skipped with a warning; a
// ScanError is reserved for a requested scope root being unresolvable.
package scanner
