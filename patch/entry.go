package patch

// Entry is a catalog entry: a template and the type tree describing the
// placeholders it may contain. Entries are not modified once registered.
type Entry struct {
	// Types is the type tree shared by every placeholder of the template.
	Types Types
	// ID uniquely identifies the entry within a catalog.
	ID string
	// Template is the template's path within the engine's file system.
	Template string
	// Description is a one-line summary shown in listings.
	Description string
	// Match is an optional boolean expression evaluated against a value tree
	// to select the entry automatically.
	Match string
}

// Selectors returns the terminal selectors of the entry's type tree in
// sorted order.
func (e *Entry) Selectors() []Selector {
	var sels []Selector
	for sel := range e.Types.Selectors() {
		sels = append(sels, sel)
	}

	return sels
}
