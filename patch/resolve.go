package patch

import "log/slog"

// Tree names used in [ErrMissingSelectorData] attributes.
const (
	treeTypes  = "types"
	treeValues = "values"
)

// Resolve walks types and values in lock-step along sel and returns the
// terminal tag and value.
//
// Every segment but the last descends one level in both trees. The last
// segment is a direct lookup in the current level of each tree. An absent or
// nil node, an intermediate node that is not a branch, a type node at the
// last segment that is not a terminal, or a blank terminal value fails with
// [ErrMissingSelectorData]. See [Value.IsBlank].
func Resolve(sel Selector, types Types, values Values) (Tag, *Value, error) {
	if len(sel) == 0 {
		return TagNone, nil, ErrMalformedSelector.With(
			slog.String("reason", "empty selector"),
		)
	}

	missing := func(tree string, depth int) error {
		return ErrMissingSelectorData.With(
			slog.String("selector", sel.String()),
			slog.String("tree", tree),
			slog.String("segment", sel[depth]),
		)
	}

	last := len(sel) - 1

	for depth, key := range sel[:last] {
		t := types[key]
		if !t.IsBranch() {
			return TagNone, nil, missing(treeTypes, depth)
		}

		v := values[key]
		if !v.IsTree() {
			return TagNone, nil, missing(treeValues, depth)
		}

		types, values = t.Fields, v.Fields
	}

	key := sel[last]

	t := types[key]
	if !t.IsLeaf() {
		return TagNone, nil, missing(treeTypes, last)
	}

	v := values[key]
	if v.IsBlank() {
		return TagNone, nil, missing(treeValues, last)
	}

	return t.Tag, v, nil
}
