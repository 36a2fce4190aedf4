package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"

	"github.com/ardnew/dslpatch/catalog"
	"github.com/ardnew/dslpatch/log"
	"github.com/ardnew/dslpatch/patch"
)

// SourceExt is the extension of the patched sources written by [Patch].
const SourceExt = ".dsl"

// Patch resolves catalog entries against a value tree and writes the patched
// sources.
type Patch struct {
	IDs    []string `arg:""       help:"Catalog entry IDs to apply (default: entries matching the values)" name:"id"       optional:""`
	Values string   `help:"Value tree file ('-' for stdin)" placeholder:"FILE"                              required:"" short:"v"`
	Output string   `default:"."  help:"Directory receiving the patched sources"                           placeholder:"DIR" short:"o" type:"path"`
	Pick   bool     `help:"Choose entries interactively" short:"p"`
}

// Run executes the patch command.
func (p *Patch) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	written, err := p.write(ctx)
	if err != nil {
		return err
	}

	w := stdout(ctx)
	for _, file := range written {
		fmt.Fprintln(w, file)
	}

	return nil
}

// write applies the selected entries and writes one source per entry into
// the output directory. It returns the written paths in entry order.
//
// Nothing is written unless every entry applies.
func (p *Patch) write(ctx context.Context) ([]string, error) {
	values, err := readValues(p.Values, nil)
	if err != nil {
		return nil, err
	}

	entries, err := p.selectEntries(ctx, catalogFrom(ctx), values)
	if err != nil {
		return nil, err
	}

	files, err := outputFiles(p.Output, entries)
	if err != nil {
		return nil, err
	}

	jobs := make([]patch.Job, len(entries))
	for i, e := range entries {
		jobs[i] = patch.Job{Entry: e, Values: values}
	}

	results, err := patch.NewEngine(templatesFrom(ctx), logger()).
		ApplyAll(ctx, jobs...)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(p.Output, 0o755); err != nil {
		return nil, ErrWriteOutput.Wrap(err).With(slog.String("dir", p.Output))
	}

	for i, r := range results {
		if err := os.WriteFile(files[i], []byte(r.Text), 0o644); err != nil {
			return nil, ErrWriteOutput.Wrap(err).With(slog.String("file", files[i]))
		}

		log.InfoContext(ctx, "wrote patched source",
			slog.String("id", r.Entry.ID),
			slog.String("file", files[i]),
			slog.Int("substitutions", len(r.Substitutions)),
		)
	}

	return files, nil
}

// selectEntries picks the entries to apply: the named IDs, the user's choice
// when picking, or else every entry whose match expression accepts values.
func (p *Patch) selectEntries(
	ctx context.Context,
	cat *catalog.Catalog,
	values patch.Values,
) ([]*patch.Entry, error) {
	var entries []*patch.Entry

	for _, id := range p.IDs {
		e, err := cat.Lookup(id)
		if err != nil {
			return nil, err
		}

		if !slices.Contains(entries, e) {
			entries = append(entries, e)
		}
	}

	if len(entries) == 0 {
		entries = cat.Match(ctx, values)
	}

	if p.Pick {
		return pick(ctx, slices.Collect(cat.Entries()), entries)
	}

	if len(entries) == 0 {
		return nil, ErrNoEntries
	}

	return entries, nil
}

// outputFiles returns the path written for each entry: the template's base
// name with [SourceExt] in dir. Entries sharing a name are rejected.
func outputFiles(dir string, entries []*patch.Entry) ([]string, error) {
	files := make([]string, len(entries))
	owner := make(map[string]string, len(entries))

	for i, e := range entries {
		name := SourceName(e.Template)

		if id, ok := owner[name]; ok {
			return nil, ErrWriteOutput.With(
				slog.String("file", name),
				slog.String("id", e.ID),
				slog.String("conflict", id),
			)
		}

		owner[name] = e.ID
		files[i] = filepath.Join(dir, name)
	}

	return files, nil
}

// SourceName returns the file name of the source patched from template.
func SourceName(template string) string {
	base := path.Base(filepath.ToSlash(template))

	return strings.TrimSuffix(base, path.Ext(base)) + SourceExt
}
