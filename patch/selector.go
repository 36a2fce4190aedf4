package patch

import (
	"log/slog"
	"strings"
)

// Delimiter separates the segments of a selector.
const Delimiter = "->"

// Selector is an ordered list of keys addressing a terminal in both a type
// tree and a value tree.
type Selector []string

// ParseSelector splits raw on [Delimiter]. Whitespace around each segment is
// ignored. Empty input or any blank segment fails with
// [ErrMalformedSelector].
func ParseSelector(raw string) (Selector, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, ErrMalformedSelector.With(
			slog.String("selector", raw),
			slog.String("reason", "empty selector"),
		)
	}

	parts := strings.Split(raw, Delimiter)
	sel := make(Selector, 0, len(parts))

	for i, part := range parts {
		key := strings.TrimSpace(part)
		if key == "" {
			return nil, ErrMalformedSelector.With(
				slog.String("selector", raw),
				slog.Int("segment", i),
				slog.String("reason", "empty segment"),
			)
		}

		sel = append(sel, key)
	}

	return sel, nil
}

// String joins the segments with [Delimiter].
func (s Selector) String() string { return strings.Join(s, Delimiter) }
