package catalog

import "github.com/ardnew/dslpatch/pkg"

// Predefined errors (sentinel values).
var (
	ErrUnknownEntry   = pkg.NewError("unknown patch")
	ErrDuplicateEntry = pkg.NewError("duplicate patch")
	ErrInvalidEntry   = pkg.NewError("invalid patch")
	ErrInvalidMatch   = pkg.NewError("invalid match expression")
	ErrReadCatalog    = pkg.NewError("failed to read catalog")
)
