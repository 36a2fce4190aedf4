package patch

import (
	"log/slog"
	"strconv"
	"strings"
)

// Serialize renders v according to tag:
//
//   - [TagText]: the text verbatim.
//   - [TagInteger]: see [FormatInteger].
//   - [TagByteSequence]: see [FormatBytes].
//
// A value whose kind does not match tag, or a negative integer, fails with
// [ErrSerializationMismatch].
func Serialize(tag Tag, v *Value) (string, error) {
	if v == nil || !tag.Accepts(v.Kind) {
		kind := KindNone
		if v != nil {
			kind = v.Kind
		}

		return "", ErrSerializationMismatch.With(
			slog.String("tag", tag.String()),
			slog.String("kind", kind.String()),
		)
	}

	switch tag {
	case TagText:
		return v.Text, nil

	case TagInteger:
		if v.Integer < 0 {
			return "", ErrSerializationMismatch.With(
				slog.String("tag", tag.String()),
				slog.Int64("value", v.Integer),
				slog.String("reason", "negative integer"),
			)
		}

		return FormatInteger(uint64(v.Integer)), nil

	default:
		return FormatBytes(v.Bytes), nil
	}
}

// FormatInteger renders n as upper-case hex with a "0x" prefix and at least
// two digits: 0 → 0x00, 10 → 0x0A, 4096 → 0x1000.
func FormatInteger(n uint64) string {
	digits := strings.ToUpper(strconv.FormatUint(n, 16))
	if len(digits) < 2 {
		digits = "0" + digits
	}

	return "0x" + digits
}

// FormatBytes renders each byte as 0xHH and joins them with ", ".
// An empty sequence renders as the empty string.
func FormatBytes(b []byte) string {
	const hex = "0123456789ABCDEF"

	var sb strings.Builder

	sb.Grow(len(b) * len("0x00, "))

	for i, c := range b {
		if i > 0 {
			sb.WriteString(", ")
		}

		sb.WriteString("0x")
		sb.WriteByte(hex[c>>4])
		sb.WriteByte(hex[c&0x0f])
	}

	return sb.String()
}
