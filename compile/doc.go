// Package compile runs the ACPI source compiler (iasl) on patched templates.
//
// The compiler is an external process. It receives the path of a source
// file, writes its diagnostics to stdout and stderr, and exits with status 0
// after writing the compiled table next to the source with an ".aml"
// extension. Any other status means compilation failed and no table was
// produced. Diagnostics are forwarded line by line to the logger at debug
// level.
package compile
