package cmd

import "github.com/ardnew/dslpatch/pkg"

var (
	ErrWriteConfig = pkg.NewError("write configuration file")
	ErrFileExists  = pkg.NewError("file exists (use --force to overwrite)")
	ErrReadValues  = pkg.NewError("read values")
	ErrWriteOutput = pkg.NewError("write patched source")
	ErrNoEntries   = pkg.NewError("no catalog entries selected")
	ErrCanceled    = pkg.NewError("selection canceled")
)
