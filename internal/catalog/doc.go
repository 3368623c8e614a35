// Package catalog ties discovery, persistence, and search together
// behind a single Manager facade. The Manager keeps a short-lived
// per-type cache so repeated queries do not rescan the filesystem.
package catalog
