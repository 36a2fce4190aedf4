package compile

import "github.com/ardnew/dslpatch/pkg"

// Predefined errors (sentinel values).
var (
	ErrCompilerNotFound = pkg.NewError("compiler not found")
	ErrCompilerRun      = pkg.NewError("failed to run compiler")
	ErrCompileFailed    = pkg.NewError("compilation failed")
	ErrArtifactMissing  = pkg.NewError("compiled artifact missing")
)
