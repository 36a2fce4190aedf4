package cmd

import (
	"context"
	"io"
	"io/fs"
	"os"

	"github.com/alecthomas/kong"

	"github.com/ardnew/dslpatch/catalog"
	"github.com/ardnew/dslpatch/log"
)

type (
	contextKey   struct{}
	catalogKey   struct{}
	templatesKey struct{}
)

// WithContext returns a new context.Context containing the given kong.Context.
func WithContext(ctx context.Context, ktx *kong.Context) context.Context {
	return context.WithValue(ctx, contextKey{}, ktx)
}

func kongContextFrom(ctx context.Context) *kong.Context {
	ktx, ok := ctx.Value(contextKey{}).(*kong.Context)
	if !ok || ktx == nil {
		return nil
	}

	return ktx
}

// WithCatalog returns a new context.Context carrying the catalog the
// commands select entries from.
func WithCatalog(ctx context.Context, c *catalog.Catalog) context.Context {
	return context.WithValue(ctx, catalogKey{}, c)
}

// catalogFrom returns the catalog stored by WithCatalog, or the built-in
// catalog if none was stored.
func catalogFrom(ctx context.Context) *catalog.Catalog {
	if c, ok := ctx.Value(catalogKey{}).(*catalog.Catalog); ok && c != nil {
		return c
	}

	return catalog.Builtin()
}

// WithTemplates returns a new context.Context carrying the file system the
// engine loads templates from.
func WithTemplates(ctx context.Context, templates fs.FS) context.Context {
	return context.WithValue(ctx, templatesKey{}, templates)
}

// templatesFrom returns the file system stored by WithTemplates, or the
// built-in templates if none was stored.
func templatesFrom(ctx context.Context) fs.FS {
	if t, ok := ctx.Value(templatesKey{}).(fs.FS); ok && t != nil {
		return t
	}

	return catalog.Templates
}

// stdout returns the writer for command output.
func stdout(ctx context.Context) io.Writer {
	if ktx := kongContextFrom(ctx); ktx != nil && ktx.Stdout != nil {
		return ktx.Stdout
	}

	return os.Stdout
}

// logger returns the logger commands hand to the engine and compiler.
func logger() log.Logger { return log.Default() }
