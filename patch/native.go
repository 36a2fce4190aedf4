package patch

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"slices"

	"fortio.org/safecast"

	"github.com/ardnew/dslpatch/pkg"
)

// FromNative converts a decoded document (YAML, JSON, TOML) into a value
// tree.
//
// Strings become [KindText]. Any Go integer, or a [json.Number] holding one,
// becomes [KindInteger]. A []byte, or a list whose elements are all integers
// in 0..255, becomes [KindBytes]. Nested maps become [KindTree]. A nil value
// is treated as absent and the key is dropped.
//
// Every other shape, including booleans, floats, and out-of-range integers,
// fails with [ErrInvalidValue].
func FromNative(doc map[string]any) (Values, error) {
	return valuesFromNative(nil, doc)
}

func valuesFromNative(prefix Selector, doc map[string]any) (Values, error) {
	values := make(Values, len(doc))

	for key, raw := range doc {
		if raw == nil {
			continue
		}

		sel := append(slices.Clip(prefix), key)

		v, err := valueFromNative(sel, raw)
		if err != nil {
			return nil, err
		}

		values[key] = v
	}

	return values, nil
}

func valueFromNative(sel Selector, raw any) (*Value, error) {
	invalid := func(err error) *pkg.Error {
		e := ErrInvalidValue.With(
			slog.String("selector", sel.String()),
			slog.String("kind", typeName(raw)),
		)
		if err != nil {
			e = e.Wrap(err)
		}

		return e
	}

	switch v := raw.(type) {
	case string:
		return Text(v), nil

	case []byte:
		return Bytes(v...), nil

	case map[string]any:
		fields, err := valuesFromNative(sel, v)
		if err != nil {
			return nil, err
		}

		return Tree(fields), nil

	case []any:
		buf := make([]byte, 0, len(v))

		for i, elem := range v {
			n, ok, err := nativeInteger[uint8](elem)
			if !ok || err != nil {
				return nil, invalid(err).With(slog.Int("index", i))
			}

			buf = append(buf, n)
		}

		return &Value{Kind: KindBytes, Bytes: buf}, nil

	default:
		n, ok, err := nativeInteger[int64](raw)
		if !ok || err != nil {
			return nil, invalid(err)
		}

		return Integer(n), nil
	}
}

// nativeInteger converts any Go integer or json.Number to T. The boolean
// result is false when raw is not an integer at all.
func nativeInteger[T safecast.Integer](raw any) (T, bool, error) {
	var (
		n   T
		err error
	)

	switch v := raw.(type) {
	case int:
		n, err = safecast.Conv[T](v)
	case int8:
		n, err = safecast.Conv[T](v)
	case int16:
		n, err = safecast.Conv[T](v)
	case int32:
		n, err = safecast.Conv[T](v)
	case int64:
		n, err = safecast.Conv[T](v)
	case uint:
		n, err = safecast.Conv[T](v)
	case uint8:
		n, err = safecast.Conv[T](v)
	case uint16:
		n, err = safecast.Conv[T](v)
	case uint32:
		n, err = safecast.Conv[T](v)
	case uint64:
		n, err = safecast.Conv[T](v)
	case json.Number:
		i, perr := v.Int64()
		if perr != nil {
			return n, true, perr
		}

		n, err = safecast.Conv[T](i)
	default:
		return n, false, nil
	}

	return n, true, err
}

// Native converts the value tree into plain Go values: maps for trees,
// string, int64, and []any of int64 for byte sequences. The result is
// suitable as an expression environment or for re-encoding.
func (vs Values) Native() map[string]any {
	doc := make(map[string]any, len(vs))

	for key, v := range vs {
		if v == nil {
			continue
		}

		doc[key] = v.Native()
	}

	return doc
}

// Native converts a single node; see [Values.Native].
func (v *Value) Native() any {
	if v == nil {
		return nil
	}

	switch v.Kind {
	case KindTree:
		return v.Fields.Native()
	case KindText:
		return v.Text
	case KindInteger:
		return v.Integer
	case KindBytes:
		list := make([]any, len(v.Bytes))
		for i, b := range v.Bytes {
			list[i] = int64(b)
		}

		return list
	default:
		return nil
	}
}

func typeName(v any) string { return fmt.Sprintf("%T", v) }
