package patch

import "github.com/ardnew/dslpatch/pkg"

// Predefined errors (sentinel values).
var (
	ErrTemplateNotFound      = pkg.NewError("template not found")
	ErrReadTemplate          = pkg.NewError("failed to read template")
	ErrMissingSelectorData   = pkg.NewError("missing selector data")
	ErrMalformedSelector     = pkg.NewError("malformed selector")
	ErrSerializationMismatch = pkg.NewError("value does not match declared type")
	ErrInvalidValue          = pkg.NewError("invalid value")
	ErrInvalidType           = pkg.NewError("invalid type")
)
