package cmd

import (
	"context"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/ardnew/dslpatch/catalog"
	"github.com/ardnew/dslpatch/codec"
	"github.com/ardnew/dslpatch/patch"
)

// formatText selects the styled listing of [List].
const formatText = "text"

// Styles.
var (
	idStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true)
	hintStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	selectorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("15"))
	tagStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("4"))
	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("4"))
	matchStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("4")).Bold(true)
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
)

// List prints the catalog entries and the selectors their templates use.
type List struct {
	Values string `help:"Only list entries matching the value tree in FILE ('-' for stdin)" placeholder:"FILE" short:"v"`
	Format string `default:"text" enum:"text,yaml,json,toml" help:"Output format (${enum})"    short:"f"`
	Indent int    `default:"2"    help:"Indent width for structured output"                                 short:"i"`
}

// Run executes the list command.
func (l *List) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	cat := catalogFrom(ctx)
	entries := slices.Collect(cat.Entries())

	if l.Values != "" {
		values, err := readValues(l.Values, nil)
		if err != nil {
			return err
		}

		entries = cat.Match(ctx, values)
	}

	w := stdout(ctx)

	if l.Format == formatText {
		return writeListing(w, entries)
	}

	f, err := codec.ParseFormat(l.Format)
	if err != nil {
		return err
	}

	sub, err := catalog.New(entries...)
	if err != nil {
		return err
	}

	return codec.Encode(ctx, f, w, sub.Document(), l.Indent)
}

// writeListing renders entries one block per entry:
//
//	<id>  <description>
//	  template  <file>
//	  match     <expression>
//	  <selector>  <tag>
func writeListing(w io.Writer, entries []*patch.Entry) error {
	var b strings.Builder

	for i, e := range entries {
		if i > 0 {
			b.WriteByte('\n')
		}

		b.WriteString(idStyle.Render(e.ID))

		if e.Description != "" {
			b.WriteString("  " + e.Description)
		}

		b.WriteByte('\n')

		width := len("template")
		for sel := range e.Types.Selectors() {
			width = max(width, lipgloss.Width(sel.String()))
		}

		label := hintStyle.Width(width)

		fmt.Fprintf(&b, "  %s  %s\n", label.Render("template"), e.Template)

		if e.Match != "" {
			fmt.Fprintf(&b, "  %s  %s\n", label.Render("match"), e.Match)
		}

		for sel, tag := range e.Types.Selectors() {
			fmt.Fprintf(&b, "  %s  %s\n",
				selectorStyle.Width(width).Render(sel.String()),
				tagStyle.Render(tag.String()))
		}
	}

	_, err := io.WriteString(w, b.String())

	return err
}
