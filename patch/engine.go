package patch

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"slices"
	"strings"

	"github.com/ardnew/dslpatch/log"
	"github.com/ardnew/dslpatch/pkg"
)

// Engine applies catalog entries to value trees.
//
// An Engine holds no mutable state and may be used from multiple goroutines.
type Engine struct {
	templates fs.FS
	logger    log.Logger
}

// NewEngine returns an engine reading templates from templates and reporting
// each resolution to logger.
func NewEngine(templates fs.FS, logger log.Logger) *Engine {
	return &Engine{templates: templates, logger: logger}
}

// Substitution records one resolved placeholder.
type Substitution struct {
	Selector    Selector
	Match       string
	Replacement string
}

// Result is the outcome of a successful [Engine.Apply].
type Result struct {
	Entry         *Entry
	Text          string
	Substitutions []Substitution
}

// Apply loads the entry's template and substitutes every placeholder with
// its serialized value from values.
//
// Placeholders are resolved in order of appearance. Every occurrence of a
// placeholder's literal text is replaced at once, so a repeated placeholder
// is resolved a single time. The first placeholder that cannot be parsed,
// resolved, or serialized aborts the call. On failure the returned result is
// nil; partially patched text is never returned.
//
// Each resolved placeholder emits an Info event "patched selector" carrying
// selector, file, and replacement. A failure emits one Error event
// "patch failed" carrying selector, file, and reason.
func (e *Engine) Apply(
	ctx context.Context,
	entry *Entry,
	values Values,
) (*Result, error) {
	if entry == nil {
		return nil, ErrTemplateNotFound.With(slog.String("reason", "no entry"))
	}

	file := slog.String("file", entry.Template)

	text, err := e.load(entry.Template)
	if err != nil {
		e.fail(ctx, file, nil, err)

		return nil, err
	}

	e.logger.DebugContext(ctx, "loaded template",
		file, slog.String("entry", entry.ID), slog.Int("size", len(text)))

	tokens := slices.Collect(Scan(text))

	e.logger.DebugContext(ctx, "scanned template",
		file, slog.Int("tokens", len(tokens)))

	work := text
	subs := make([]Substitution, 0, len(tokens))
	done := make(map[string]struct{}, len(tokens))

	for _, tok := range tokens {
		if err := ctx.Err(); err != nil {
			e.logger.DebugContext(ctx, "patch canceled", file)

			return nil, err
		}

		if _, ok := done[tok.Match]; ok {
			e.logger.DebugContext(ctx, "repeated selector",
				slog.String("selector", tok.Selector), file)

			continue
		}

		done[tok.Match] = struct{}{}

		sel, repl, err := e.resolve(entry.Types, values, tok)
		if err != nil {
			err = pkg.WrapError(err).With(file)
			e.fail(ctx, file, &tok, err)

			return nil, err
		}

		work = strings.ReplaceAll(work, tok.Match, repl)
		subs = append(subs, Substitution{
			Selector:    sel,
			Match:       tok.Match,
			Replacement: repl,
		})

		e.logger.InfoContext(ctx, "patched selector",
			slog.String("selector", tok.Selector),
			file,
			slog.String("replacement", repl))
	}

	return &Result{Entry: entry, Text: work, Substitutions: subs}, nil
}

func (e *Engine) load(name string) (string, error) {
	file := slog.String("file", name)

	if e.templates == nil {
		return "", ErrTemplateNotFound.With(file)
	}

	data, err := fs.ReadFile(e.templates, name)

	switch {
	case errors.Is(err, fs.ErrNotExist), errors.Is(err, fs.ErrInvalid):
		return "", ErrTemplateNotFound.Wrap(err).With(file)

	case err != nil:
		return "", ErrReadTemplate.Wrap(err).With(file)
	}

	return string(data), nil
}

func (e *Engine) resolve(
	types Types,
	values Values,
	tok Token,
) (Selector, string, error) {
	sel, err := ParseSelector(tok.Selector)
	if err != nil {
		return nil, "", err
	}

	tag, val, err := Resolve(sel, types, values)
	if err != nil {
		return nil, "", err
	}

	repl, err := Serialize(tag, val)
	if err != nil {
		return nil, "", pkg.WrapError(err).
			With(slog.String("selector", sel.String()))
	}

	return sel, repl, nil
}

func (e *Engine) fail(ctx context.Context, file slog.Attr, tok *Token, err error) {
	attrs := make([]slog.Attr, 0, 3)

	if tok != nil {
		attrs = append(attrs, slog.String("selector", tok.Selector))
	}

	attrs = append(attrs, file, slog.String("reason", err.Error()))

	e.logger.ErrorContext(ctx, "patch failed", attrs...)
}
