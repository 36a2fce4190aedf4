// Package cmd provides the dslpatch subcommands: listing the catalog,
// patching templates from a value tree, compiling the patched sources, and
// writing the configuration file.
package cmd

const (
	// CacheIdentifier is the kong variable identifier containing the path to
	// the runtime cache directory.
	CacheIdentifier = "cache"

	// ConfigIdentifier is the kong variable identifier containing the path to
	// the configuration file. It also names the top-level mapping of that
	// file holding the flag values.
	ConfigIdentifier = "config"
)
