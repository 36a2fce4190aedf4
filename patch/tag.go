package patch

//go:generate go tool stringer --linecomment --type Tag,Kind --output tag_string.go

import (
	"log/slog"
	"strings"
)

// Tag identifies the serialization rule of a terminal in a type tree.
type Tag int

const (
	TagNone         Tag = iota // none
	TagText                    // text
	TagInteger                 // integer
	TagByteSequence            // bytes
)

// ParseTag returns the tag named by s.
// Recognized names are case-insensitive:
// "text" or "string"; "integer", "int", or "number";
// "bytes", "bytesequence", or "buffer".
func ParseTag(s string) (Tag, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "text", "string":
		return TagText, nil
	case "integer", "int", "number":
		return TagInteger, nil
	case "bytes", "bytesequence", "buffer":
		return TagByteSequence, nil
	default:
		return TagNone, ErrInvalidType.With(slog.String("tag", s))
	}
}

// MarshalText implements [encoding.TextMarshaler].
func (t Tag) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText implements [encoding.TextUnmarshaler].
func (t *Tag) UnmarshalText(text []byte) error {
	tag, err := ParseTag(string(text))
	if err != nil {
		return err
	}

	*t = tag

	return nil
}

// Kind identifies the shape of a node in a value tree.
type Kind int

const (
	KindNone    Kind = iota // none
	KindTree                // tree
	KindText                // text
	KindInteger             // integer
	KindBytes               // bytes
)

// Accepts reports whether a terminal value of kind k can be serialized with
// tag t.
func (t Tag) Accepts(k Kind) bool {
	switch t {
	case TagText:
		return k == KindText
	case TagInteger:
		return k == KindInteger
	case TagByteSequence:
		return k == KindBytes
	default:
		return false
	}
}
