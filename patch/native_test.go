package patch

import (
	"encoding/json"
	"errors"
	"slices"
	"testing"
)

func TestFromNative(t *testing.T) {
	doc := map[string]any{
		"gpu": map[string]any{
			"model":    "GeForce GTX 1080 Ti",
			"deviceId": []any{uint64(6), int64(27), 0, json.Number("0")},
			"slot":     uint64(4096),
			"raw":      []byte{1, 2},
			"empty":    []any{},
			"absent":   nil,
		},
	}

	values, err := FromNative(doc)
	if err != nil {
		t.Fatalf("FromNative() error = %v", err)
	}

	gpu := values["gpu"]
	if !gpu.IsTree() {
		t.Fatalf("gpu kind = %v, want %v", gpu.Kind, KindTree)
	}

	tests := []struct {
		name string
		key  string
		want *Value
	}{
		{"string_is_text", "model", Text("GeForce GTX 1080 Ti")},
		{"integer_list_is_bytes", "deviceId", Bytes(6, 27, 0, 0)},
		{"unsigned_is_integer", "slot", Integer(4096)},
		{"byte_slice_is_bytes", "raw", Bytes(1, 2)},
		{"empty_list_is_bytes", "empty", Bytes()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := gpu.Fields[tt.key]
			if got == nil {
				t.Fatalf("missing key %q", tt.key)
			}

			if got.Kind != tt.want.Kind || got.Text != tt.want.Text ||
				got.Integer != tt.want.Integer || !slices.Equal(got.Bytes, tt.want.Bytes) {
				t.Errorf("FromNative()[%q] = %v, want %v", tt.key, got, tt.want)
			}
		})
	}

	if _, ok := gpu.Fields["absent"]; ok {
		t.Error("nil value should be dropped")
	}
}

func TestFromNative_Invalid(t *testing.T) {
	tests := []struct {
		name string
		raw  any
	}{
		{"bool", true},
		{"float", 1.5},
		{"byte_out_of_range", []any{256}},
		{"negative_byte", []any{-1}},
		{"mixed_list", []any{1, "two"}},
		{"integer_overflow", uint64(1) << 63},
		{"bad_number", json.Number("1e3")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FromNative(map[string]any{"gpu": map[string]any{"x": tt.raw}})
			if !errors.Is(err, ErrInvalidValue) {
				t.Fatalf("FromNative() error = %v, want %v", err, ErrInvalidValue)
			}

			if got := attrValue(err, "selector"); got != "gpu->x" {
				t.Errorf("selector attr = %q, want %q", got, "gpu->x")
			}
		})
	}
}

func TestValues_Native_RoundTrip(t *testing.T) {
	native := gpuValues().Native()

	back, err := FromNative(native)
	if err != nil {
		t.Fatalf("FromNative(Native()) error = %v", err)
	}

	for sel, tag := range gpuTypes().Selectors() {
		_, want, _ := Resolve(sel, gpuTypes(), gpuValues())
		_, got, err := Resolve(sel, gpuTypes(), back)
		if err != nil {
			t.Fatalf("Resolve(%v) error = %v", sel, err)
		}

		ws, _ := Serialize(tag, want)
		gs, _ := Serialize(tag, got)
		if ws != gs {
			t.Errorf("%v: got %q, want %q", sel, gs, ws)
		}
	}
}

func TestTypesFromNative(t *testing.T) {
	types, err := TypesFromNative(map[string]any{
		"gpu": map[string]any{
			"pciPath":  "text",
			"deviceId": "bytes",
			"model":    "String",
			"slot":     "int",
		},
	})
	if err != nil {
		t.Fatalf("TypesFromNative() error = %v", err)
	}

	var got []string
	for sel, tag := range types.Selectors() {
		got = append(got, sel.String()+":"+tag.String())
	}

	want := []string{
		"gpu->deviceId:bytes",
		"gpu->model:text",
		"gpu->pciPath:text",
		"gpu->slot:integer",
	}

	if !slices.Equal(got, want) {
		t.Errorf("Selectors() = %v, want %v", got, want)
	}
}

func TestTypesFromNative_Invalid(t *testing.T) {
	tests := []struct {
		name string
		doc  map[string]any
	}{
		{"unknown_tag", map[string]any{"gpu": map[string]any{"model": "float"}}},
		{"non_string_leaf", map[string]any{"gpu": 1}},
		{"list_leaf", map[string]any{"gpu": []any{"text"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := TypesFromNative(tt.doc); !errors.Is(err, ErrInvalidType) {
				t.Errorf("TypesFromNative() error = %v, want %v", err, ErrInvalidType)
			}
		})
	}
}

func TestParseTag(t *testing.T) {
	tests := []struct {
		in   string
		want Tag
	}{
		{"text", TagText},
		{"STRING", TagText},
		{"integer", TagInteger},
		{"number", TagInteger},
		{"bytes", TagByteSequence},
		{"ByteSequence", TagByteSequence},
		{"buffer", TagByteSequence},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseTag(tt.in)
			if err != nil {
				t.Fatalf("ParseTag(%q) error = %v", tt.in, err)
			}

			if got != tt.want {
				t.Errorf("ParseTag(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}

	if _, err := ParseTag("bool"); !errors.Is(err, ErrInvalidType) {
		t.Errorf("ParseTag(bool) error = %v, want %v", err, ErrInvalidType)
	}
}
