// Package constants provides shared constants used throughout the credits codebase.
// This includes default artifact locations, default templates and file permissions
// that should be consistent across the library and the CLI.
package constants

// File permission constants define standard Unix file permissions
const (
	// DirPermissions is the default permission for created directories (rwxr-xr-x)
	DirPermissions = 0755

	// FilePermissions is the default permission for created files (rw-r--r--)
	FilePermissions = 0644
)

// Default artifact locations, relative to the repository root.
const (
	// DefaultRegistryPath is where the identity registry is stored
	DefaultRegistryPath = ".credits/registry.yaml"

	// DefaultLedgerPath is the human-readable contributor listing
	DefaultLedgerPath = "AUTHORS.md"

	// DefaultMailmapPath is the identity-mapping file read by git
	DefaultMailmapPath = ".mailmap"

	// DefaultSnapshotPath is the per-release contributor snapshot.
	// It lives outside the registry directory so it can be tracked with the release.
	DefaultSnapshotPath = "docs/releases/{version}/contributors.yaml"

	// DefaultSortPolicy orders the ledger by commit count
	DefaultSortPolicy = "num_commits"
)

// DefaultHeaderTemplate is the ledger body. {sorting_text} and {authors} are
// substituted when the ledger is rendered.
const DefaultHeaderTemplate = `# Authors

This file lists everyone who has contributed to this project, {sorting_text}.
It is generated from version-control history; edit the registry and re-run
the generator instead of editing this file by hand.

{authors}
`

// DefaultItemFormat renders one ledger line per person.
const DefaultItemFormat = "- {name} <{email}>\n"

// TempFilePattern is the pattern used for staged artifact writes.
const TempFilePattern = ".credits-*.tmp"

// EnvPrefix is the prefix for environment variable configuration.
const EnvPrefix = "CREDITS"
