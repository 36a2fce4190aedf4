package catalog

import (
	"io"
	"log/slog"
	"maps"
	"slices"

	"github.com/ardnew/dslpatch/codec"
	"github.com/ardnew/dslpatch/patch"
	"github.com/ardnew/dslpatch/pkg"
)

// Keys of a catalog document.
const (
	keyPatches     = "patches"
	keyTemplate    = "template"
	keyDescription = "description"
	keyMatch       = "match"
	keyTypes       = "types"
)

// Load reads the catalog file at path. Its format is inferred from the
// extension (see [codec.FormatOf]).
func Load(path string) ([]*patch.Entry, error) {
	doc, err := codec.DecodeFile(path)
	if err != nil {
		return nil, ErrReadCatalog.Wrap(err).With(slog.String("path", path))
	}

	entries, err := FromDocument(doc)
	if err != nil {
		return nil, pkg.WrapError(err).With(slog.String("path", path))
	}

	return entries, nil
}

// Read decodes a catalog document in format f from r.
func Read(f codec.Format, r io.Reader) ([]*patch.Entry, error) {
	doc, err := codec.Decode(f, r)
	if err != nil {
		return nil, ErrReadCatalog.Wrap(err)
	}

	return FromDocument(doc)
}

// FromDocument converts a decoded catalog document into entries, sorted by
// ID. The entries are not validated; pass them to [New] or [Catalog.With].
func FromDocument(doc map[string]any) ([]*patch.Entry, error) {
	raw, ok := doc[keyPatches]
	if !ok {
		return nil, nil
	}

	patches, ok := raw.(map[string]any)
	if !ok {
		return nil, ErrReadCatalog.With(
			slog.String("key", keyPatches),
			slog.String("reason", "not a mapping"),
		)
	}

	entries := make([]*patch.Entry, 0, len(patches))

	for _, id := range slices.Sorted(maps.Keys(patches)) {
		e, err := entryFromDocument(id, patches[id])
		if err != nil {
			return nil, err
		}

		entries = append(entries, e)
	}

	return entries, nil
}

func entryFromDocument(id string, raw any) (*patch.Entry, error) {
	invalid := func(key, reason string) error {
		return ErrInvalidEntry.With(
			slog.String("id", id),
			slog.String("key", key),
			slog.String("reason", reason),
		)
	}

	fields, ok := raw.(map[string]any)
	if !ok {
		return nil, invalid("", "not a mapping")
	}

	e := &patch.Entry{ID: id}

	for key, value := range fields {
		if key == keyTypes {
			doc, ok := value.(map[string]any)
			if !ok {
				return nil, invalid(key, "not a mapping")
			}

			types, err := patch.TypesFromNative(doc)
			if err != nil {
				return nil, ErrInvalidEntry.Wrap(err).With(slog.String("id", id))
			}

			e.Types = types

			continue
		}

		s, ok := value.(string)
		if !ok {
			return nil, invalid(key, "not a string")
		}

		switch key {
		case keyTemplate:
			e.Template = s
		case keyDescription:
			e.Description = s
		case keyMatch:
			e.Match = s
		default:
			return nil, invalid(key, "unknown key")
		}
	}

	return e, nil
}

// Document converts the catalog into the document form read by [Load].
func (c *Catalog) Document() map[string]any {
	patches := make(map[string]any, len(c.entries))

	for _, e := range c.entries {
		fields := map[string]any{
			keyTemplate: e.Template,
			keyTypes:    e.Types.Native(),
		}

		if e.Description != "" {
			fields[keyDescription] = e.Description
		}

		if e.Match != "" {
			fields[keyMatch] = e.Match
		}

		patches[e.ID] = fields
	}

	return map[string]any{keyPatches: patches}
}
