package codec

//go:generate go tool stringer --linecomment --type Format --output format_string.go

import (
	"iter"
	"log/slog"
	"path/filepath"
	"strings"
)

// Format identifies a document encoding.
type Format int

const (
	FormatYAML  Format = iota // yaml
	FormatJSON                // json
	FormatJSONC               // jsonc
	FormatTOML                // toml
)

// Formats returns an iterator over the names of all supported formats.
func Formats() iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, f := range []Format{FormatYAML, FormatJSON, FormatJSONC, FormatTOML} {
			if !yield(f.String()) {
				return
			}
		}
	}
}

// ParseFormat returns the format named by s (case-insensitive).
// "yml" is accepted as an alias for "yaml".
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "yaml", "yml":
		return FormatYAML, nil
	case "json":
		return FormatJSON, nil
	case "jsonc":
		return FormatJSONC, nil
	case "toml":
		return FormatTOML, nil
	default:
		return 0, ErrUnknownFormat.With(slog.String("format", s))
	}
}

// FormatOf infers the format of a file from its extension.
func FormatOf(path string) (Format, error) {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "" {
		return 0, ErrUnknownFormat.With(slog.String("path", path))
	}

	f, err := ParseFormat(ext)
	if err != nil {
		return 0, ErrUnknownFormat.With(slog.String("path", path))
	}

	return f, nil
}

// MarshalText implements [encoding.TextMarshaler].
func (f Format) MarshalText() ([]byte, error) { return []byte(f.String()), nil }

// UnmarshalText implements [encoding.TextUnmarshaler].
func (f *Format) UnmarshalText(text []byte) error {
	v, err := ParseFormat(string(text))
	if err != nil {
		return err
	}

	*f = v

	return nil
}
