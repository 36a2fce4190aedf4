// Package patch resolves typed placeholder tokens in ACPI source templates.
//
// A template is plain text containing tokens of the form
//
//	{ gpu->deviceId }
//
// where the text between the braces is a selector: one or more keys joined
// by "->". Each selector addresses a terminal in two trees of the same shape.
// The type tree ([Types]) declares how the terminal is rendered and the value
// tree ([Values]) supplies the data:
//
//   - [TagText] values are inserted verbatim.
//   - [TagInteger] values are rendered as upper-case hex with a "0x" prefix
//     and at least two digits (10 → 0x0A, 4096 → 0x1000).
//   - [TagByteSequence] values render each byte as 0xHH, joined by ", ".
//
// An [Engine] loads a template from an [fs.FS], scans it for tokens, and
// replaces every occurrence of each token's literal text with its rendering.
// Resolution is all-or-nothing: the first token that cannot be resolved or
// rendered fails the whole call, and no partially patched text is returned.
//
// The package does not understand ACPI source language. It performs purely
// textual substitution and leaves validation of the result to the compiler.
package patch
