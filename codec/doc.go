// Package codec decodes and encodes the documents dslpatch reads and writes:
// value trees, catalog files, and listings.
//
// Supported formats are YAML, JSON, JSON with comments and trailing commas
// (JSONC), and TOML. Decoding always yields a map[string]any whose integers
// keep their full precision (JSON numbers are decoded as [json.Number]).
package codec
