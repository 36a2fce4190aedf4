package cmd

import (
	"context"
	"os"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	"github.com/ardnew/dslpatch/patch"
)

const (
	pickPrompt = "patch> "
	pickHelp   = "↑/↓ move • tab toggle • enter confirm • esc cancel"
)

var promptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true)

// picker is the Bubble Tea model of the interactive entry picker.
type picker struct {
	input    textinput.Model
	entries  []*patch.Entry
	ids      []string
	matches  fuzzy.Matches // visible entries, best first
	chosen   map[int]bool  // indexes into entries
	cursor   int
	width    int
	canceled bool
}

// pick lets the user choose catalog entries interactively. Entries in
// preselect start out chosen.
func pick(
	ctx context.Context,
	entries []*patch.Entry,
	preselect []*patch.Entry,
) ([]*patch.Entry, error) {
	p := tea.NewProgram(
		newPicker(entries, preselect),
		tea.WithContext(ctx),
		tea.WithOutput(os.Stderr),
	)

	final, err := p.Run()
	if err != nil {
		return nil, err
	}

	m, _ := final.(picker)
	if m.canceled {
		return nil, ErrCanceled
	}

	chosen := m.selection()
	if len(chosen) == 0 {
		return nil, ErrNoEntries
	}

	return chosen, nil
}

func newPicker(entries []*patch.Entry, preselect []*patch.Entry) picker {
	ti := textinput.New()
	ti.Prompt = promptStyle.Render(pickPrompt)
	ti.Placeholder = "filter by ID"
	ti.Focus()
	ti.Width = defaultWidth

	m := picker{
		input:   ti,
		entries: entries,
		ids:     make([]string, len(entries)),
		chosen:  make(map[int]bool, len(preselect)),
		width:   defaultWidth,
	}

	for i, e := range entries {
		m.ids[i] = e.ID
		m.chosen[i] = slices.Contains(preselect, e)
	}

	m.filter()

	return m
}

const defaultWidth = 80

func (m picker) Init() tea.Cmd {
	return textinput.Blink
}

func (m picker) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.input.Width = msg.Width - len(pickPrompt) - 2

		return m, nil
	}

	var cmd tea.Cmd

	m.input, cmd = m.input.Update(msg)

	return m, cmd
}

func (m picker) handleKey(msg tea.KeyMsg) (picker, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		m.canceled = true

		return m, tea.Quit

	case tea.KeyEnter:
		// Confirming with nothing toggled takes the entry under the cursor.
		if !m.anyChosen() && len(m.matches) > 0 {
			m.chosen[m.matches[m.cursor].Index] = true
		}

		return m, tea.Quit

	case tea.KeyTab:
		if len(m.matches) > 0 {
			i := m.matches[m.cursor].Index
			m.chosen[i] = !m.chosen[i]
		}

		return m, nil

	case tea.KeyUp:
		if m.cursor > 0 {
			m.cursor--
		}

		return m, nil

	case tea.KeyDown:
		if m.cursor < len(m.matches)-1 {
			m.cursor++
		}

		return m, nil
	}

	var cmd tea.Cmd

	m.input, cmd = m.input.Update(msg)
	m.filter()

	return m, cmd
}

// filter ranks the entries against the current input. An empty input keeps
// every entry in catalog order.
func (m *picker) filter() {
	if pattern := strings.TrimSpace(m.input.Value()); pattern != "" {
		m.matches = fuzzy.Find(pattern, m.ids)
	} else {
		m.matches = make(fuzzy.Matches, len(m.ids))
		for i, id := range m.ids {
			m.matches[i] = fuzzy.Match{Str: id, Index: i}
		}
	}

	m.cursor = max(0, min(m.cursor, len(m.matches)-1))
}

func (m picker) anyChosen() bool {
	for _, ok := range m.chosen {
		if ok {
			return true
		}
	}

	return false
}

// selection returns the chosen entries in catalog order.
func (m picker) selection() []*patch.Entry {
	var chosen []*patch.Entry

	for i, e := range m.entries {
		if m.chosen[i] {
			chosen = append(chosen, e)
		}
	}

	return chosen
}

func (m picker) View() string {
	var b strings.Builder

	b.WriteString(m.input.View())
	b.WriteByte('\n')

	if len(m.matches) == 0 {
		b.WriteString(errorStyle.Render("  no matching entries"))
		b.WriteByte('\n')
	}

	for row, match := range m.matches {
		mark := "[ ]"
		if m.chosen[match.Index] {
			mark = "[x]"
		}

		line := mark + " " + renderMatch(match, row == m.cursor)

		if desc := m.entries[match.Index].Description; desc != "" {
			line += "  " + hintStyle.Render(desc)
		}

		b.WriteString(ellipsize(line, m.width))
		b.WriteByte('\n')
	}

	b.WriteString(hintStyle.Render(pickHelp))

	return b.String()
}

// renderMatch renders an entry ID with its matched characters highlighted.
func renderMatch(match fuzzy.Match, selected bool) string {
	base, highlight := selectorStyle, matchStyle
	if selected {
		base = selectedStyle
		highlight = selectedStyle.Bold(true)
	}

	matched := make(map[int]bool, len(match.MatchedIndexes))
	for _, i := range match.MatchedIndexes {
		matched[i] = true
	}

	var b strings.Builder

	for i, r := range match.Str {
		if matched[i] {
			b.WriteString(highlight.Render(string(r)))
		} else {
			b.WriteString(base.Render(string(r)))
		}
	}

	return b.String()
}

// ellipsize truncates a rendered line to width cells.
func ellipsize(line string, width int) string {
	if width <= 0 || lipgloss.Width(line) <= width {
		return line
	}

	return lipgloss.NewStyle().MaxWidth(width).Render(line)
}
