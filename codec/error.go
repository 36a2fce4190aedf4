package codec

import "github.com/ardnew/dslpatch/pkg"

// Predefined errors (sentinel values).
var (
	ErrUnknownFormat = pkg.NewError("unknown document format")
	ErrDecode        = pkg.NewError("failed to decode document")
	ErrEncode        = pkg.NewError("failed to encode document")
)
