package catalog

import (
	"context"
	"iter"
	"log/slog"
	"maps"
	"slices"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"github.com/sahilm/fuzzy"

	"github.com/ardnew/dslpatch/log"
	"github.com/ardnew/dslpatch/patch"
)

// maxSuggestions bounds the alternatives offered for an unknown ID.
const maxSuggestions = 3

// Catalog is an immutable, ordered set of patch entries keyed by ID.
type Catalog struct {
	index   map[string]int
	entries []*patch.Entry
	match   []*vm.Program // parallel to entries; nil without a predicate
}

// New returns a catalog holding entries in the given order.
//
// Entries must have an ID, a template, and a type tree. IDs must be unique
// and match expressions must compile.
func New(entries ...*patch.Entry) (*Catalog, error) {
	c := &Catalog{index: make(map[string]int, len(entries))}

	for _, e := range entries {
		if err := c.add(e); err != nil {
			return nil, err
		}
	}

	return c, nil
}

// With returns a new catalog extending c with entries. An entry whose ID is
// already in c replaces the existing one in place; IDs repeated among
// entries are rejected.
func (c *Catalog) With(entries ...*patch.Entry) (*Catalog, error) {
	next, err := New(entries...)
	if err != nil {
		return nil, err
	}

	merged := &Catalog{
		index:   maps.Clone(c.index),
		entries: slices.Clone(c.entries),
		match:   slices.Clone(c.match),
	}

	for i, e := range next.entries {
		if at, ok := merged.index[e.ID]; ok {
			merged.entries[at] = e
			merged.match[at] = next.match[i]

			continue
		}

		merged.index[e.ID] = len(merged.entries)
		merged.entries = append(merged.entries, e)
		merged.match = append(merged.match, next.match[i])
	}

	return merged, nil
}

func (c *Catalog) add(e *patch.Entry) error {
	if err := validate(e); err != nil {
		return err
	}

	if _, ok := c.index[e.ID]; ok {
		return ErrDuplicateEntry.With(slog.String("id", e.ID))
	}

	program, err := compileMatch(e)
	if err != nil {
		return err
	}

	c.index[e.ID] = len(c.entries)
	c.entries = append(c.entries, e)
	c.match = append(c.match, program)

	return nil
}

func validate(e *patch.Entry) error {
	invalid := func(reason string) error {
		err := ErrInvalidEntry.With(slog.String("reason", reason))
		if e != nil {
			err = err.With(slog.String("id", e.ID))
		}

		return err
	}

	switch {
	case e == nil:
		return invalid("nil entry")
	case strings.TrimSpace(e.ID) == "":
		return invalid("empty id")
	case strings.TrimSpace(e.Template) == "":
		return invalid("empty template")
	case len(e.Types) == 0:
		return invalid("empty type tree")
	}

	return nil
}

func compileMatch(e *patch.Entry) (*vm.Program, error) {
	src := strings.TrimSpace(e.Match)
	if src == "" {
		return nil, nil //nolint:nilnil
	}

	program, err := expr.Compile(src, expr.AsBool(), expr.AllowUndefinedVariables())
	if err != nil {
		return nil, ErrInvalidMatch.Wrap(err).With(
			slog.String("id", e.ID),
			slog.String("match", src),
		)
	}

	return program, nil
}

// Len returns the number of entries.
func (c *Catalog) Len() int { return len(c.entries) }

// Entries returns an iterator over the entries in registration order.
func (c *Catalog) Entries() iter.Seq[*patch.Entry] {
	return slices.Values(c.entries)
}

// IDs returns the entry IDs in registration order.
func (c *Catalog) IDs() []string {
	ids := make([]string, len(c.entries))
	for i, e := range c.entries {
		ids[i] = e.ID
	}

	return ids
}

// Lookup returns the entry with the given ID. An unknown ID fails with
// [ErrUnknownEntry] carrying the closest known IDs as suggestions.
func (c *Catalog) Lookup(id string) (*patch.Entry, error) {
	if i, ok := c.index[id]; ok {
		return c.entries[i], nil
	}

	err := ErrUnknownEntry.With(slog.String("id", id))

	if s := c.Suggest(id); len(s) > 0 {
		err = err.With(slog.String("suggestions", strings.Join(s, ", ")))
	}

	return nil, err
}

// Suggest returns up to three IDs that fuzzily match pattern, best first.
func (c *Catalog) Suggest(pattern string) []string {
	matches := fuzzy.Find(pattern, c.IDs())

	ids := make([]string, 0, min(len(matches), maxSuggestions))
	for _, m := range matches {
		if len(ids) == maxSuggestions {
			break
		}

		ids = append(ids, m.Str)
	}

	return ids
}

// Match returns the entries whose match expression evaluates to true against
// values, in registration order. Entries without an expression never match.
// An expression that fails to evaluate is logged and treated as false.
func (c *Catalog) Match(ctx context.Context, values patch.Values) []*patch.Entry {
	env := values.Native()

	var matched []*patch.Entry

	for i, program := range c.match {
		if program == nil {
			continue
		}

		out, err := expr.Run(program, env)
		if err != nil {
			log.DebugContext(ctx, "match evaluation failed",
				slog.String("id", c.entries[i].ID),
				slog.Any("error", err))

			continue
		}

		if ok, _ := out.(bool); ok {
			matched = append(matched, c.entries[i])
		}
	}

	return matched
}
