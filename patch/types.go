package patch

import (
	"iter"
	"log/slog"
	"maps"
	"slices"
)

// Type is a node of a type tree: either a branch holding named children or a
// terminal carrying the [Tag] used to serialize the value at the same
// position in a value tree.
type Type struct {
	Fields Types
	Tag    Tag
}

// Types maps keys to the nodes one level below a branch. The root of a type
// tree is itself a Types.
type Types map[string]*Type

// Leaf returns a terminal node with the given tag.
func Leaf(tag Tag) *Type { return &Type{Tag: tag} }

// Branch returns a branch node with the given children.
func Branch(fields Types) *Type {
	if fields == nil {
		fields = Types{}
	}

	return &Type{Fields: fields}
}

// IsBranch reports whether t has children.
func (t *Type) IsBranch() bool { return t != nil && t.Fields != nil }

// IsLeaf reports whether t is a terminal with a serialization rule.
func (t *Type) IsLeaf() bool {
	return t != nil && t.Fields == nil && t.Tag != TagNone
}

// Selectors returns an iterator over every terminal of the tree, yielding its
// selector and tag. Keys are visited in sorted order, depth first.
func (ts Types) Selectors() iter.Seq2[Selector, Tag] {
	return func(yield func(Selector, Tag) bool) {
		ts.walk(nil, yield)
	}
}

func (ts Types) walk(prefix Selector, yield func(Selector, Tag) bool) bool {
	for _, key := range slices.Sorted(maps.Keys(ts)) {
		node := ts[key]
		sel := append(slices.Clip(prefix), key)

		switch {
		case node.IsBranch():
			if !node.Fields.walk(sel, yield) {
				return false
			}

		case node.IsLeaf():
			if !yield(sel, node.Tag) {
				return false
			}
		}
	}

	return true
}

// TypesFromNative converts a decoded document into a type tree. Nested maps
// become branches and strings name a tag (see [ParseTag]).
func TypesFromNative(doc map[string]any) (Types, error) {
	return typesFromNative(nil, doc)
}

func typesFromNative(prefix Selector, doc map[string]any) (Types, error) {
	types := make(Types, len(doc))

	for key, raw := range doc {
		sel := append(slices.Clip(prefix), key)

		switch v := raw.(type) {
		case string:
			tag, err := ParseTag(v)
			if err != nil {
				return nil, ErrInvalidType.Wrap(err).
					With(slog.String("selector", sel.String()))
			}

			types[key] = Leaf(tag)

		case map[string]any:
			fields, err := typesFromNative(sel, v)
			if err != nil {
				return nil, err
			}

			types[key] = Branch(fields)

		default:
			return nil, ErrInvalidType.With(
				slog.String("selector", sel.String()),
				slog.String("kind", typeName(raw)),
			)
		}
	}

	return types, nil
}

// Native converts the type tree into plain maps of tag names, the inverse of
// [TypesFromNative].
func (ts Types) Native() map[string]any {
	doc := make(map[string]any, len(ts))

	for key, node := range ts {
		switch {
		case node.IsBranch():
			doc[key] = node.Fields.Native()
		case node.IsLeaf():
			doc[key] = node.Tag.String()
		}
	}

	return doc
}
