// Package cli defines the Cobra command tree for the elemdex CLI. Each file
// in this package registers one top-level command (list, search, show, sync)
// with the root command. Command implementations delegate to the catalog
// manager for business logic and only handle flag parsing, I/O formatting,
// and user interaction.
package cli
