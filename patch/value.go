package patch

import "strconv"

// Value is a node of a value tree. Kind selects which field is meaningful.
type Value struct {
	Fields  Values
	Text    string
	Bytes   []byte
	Integer int64
	Kind    Kind
}

// Values maps keys to the nodes one level below a tree node. The root of a
// value tree is itself a Values.
type Values map[string]*Value

// Tree returns a tree node with the given children.
func Tree(fields Values) *Value {
	if fields == nil {
		fields = Values{}
	}

	return &Value{Kind: KindTree, Fields: fields}
}

// Text returns a text terminal.
func Text(s string) *Value { return &Value{Kind: KindText, Text: s} }

// Integer returns an integer terminal.
func Integer(n int64) *Value { return &Value{Kind: KindInteger, Integer: n} }

// Bytes returns a byte sequence terminal. The slice is copied.
func Bytes(b ...byte) *Value {
	return &Value{Kind: KindBytes, Bytes: append([]byte{}, b...)}
}

// IsTree reports whether v has children.
func (v *Value) IsTree() bool { return v != nil && v.Kind == KindTree }

// IsBlank reports whether v carries no data for a selector: a nil node, a
// node without a kind, a zero integer, or empty text. An empty byte sequence
// and an empty tree are not blank.
func (v *Value) IsBlank() bool {
	if v == nil {
		return true
	}

	switch v.Kind {
	case KindNone:
		return true
	case KindInteger:
		return v.Integer == 0
	case KindText:
		return v.Text == ""
	default:
		return false
	}
}

// String returns a short human-readable rendering of v.
func (v *Value) String() string {
	if v == nil {
		return "<nil>"
	}

	switch v.Kind {
	case KindTree:
		return "tree(" + strconv.Itoa(len(v.Fields)) + ")"
	case KindText:
		return strconv.Quote(v.Text)
	case KindInteger:
		return strconv.FormatInt(v.Integer, 10)
	case KindBytes:
		return "[" + FormatBytes(v.Bytes) + "]"
	default:
		return v.Kind.String()
	}
}
