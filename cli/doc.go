// Package cli contains the command line interface for dslpatch.
//
// # Usage
//
//	dslpatch [flags] <command> [args]
//
// Commands:
//
//	list      List catalog entries and the selectors they use
//	patch     Patch templates with a value tree, writing <template>.dsl
//	compile   Patch, then compile each source with the ACPI compiler
//	init      Write the configuration file from the current flags
//
// The catalog starts with the built-in entries. Each --catalog file adds
// entries or replaces those with the same ID. Templates are searched in the
// --templates directories, then in each catalog file's directory, then among
// the built-in templates.
//
// # Configuration
//
// Flags may also be set in config.yaml (or config.yaml.json) in the
// configuration directory, under the "config" mapping:
//
//	config:
//	  log-level: debug
//	  catalog:
//	    - /path/to/catalog.yaml
//
// Command-line flags override the configuration file. Run "dslpatch init"
// to write the file from the current flag values.
package cli
