// Package catalog is the registry of patches dslpatch knows how to apply.
//
// Each entry names a template and the type tree of the placeholders in it.
// The built-in entries ship with their templates embedded in the binary
// ([Builtin], [Templates]). Additional entries are read from catalog files
// ([Load]) whose templates live in a directory layered over the embedded
// ones ([Overlay]).
//
// A catalog file holds a single "patches" mapping:
//
//	patches:
//	  nvidiaTuringPatch:
//	    template: SSDT-GPU-SPOOF.dslpatch
//	    description: Spoof device-id of NVIDIA Turing GPUs
//	    match: gpu?.architecture == "Turing"
//	    types:
//	      gpu:
//	        pciPath: text
//	        deviceId: bytes
//	        model: text
//
// The optional match field is an expr-lang boolean expression evaluated
// against a value tree. It lets callers pick the entries that apply to the
// detected hardware without naming them.
package catalog
