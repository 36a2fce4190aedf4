package catalog

import (
	"context"
	"errors"
	"io/fs"
	"slices"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/ardnew/dslpatch/log"
	"github.com/ardnew/dslpatch/patch"
	"github.com/ardnew/dslpatch/pkg"
)

func entry(id, match string) *patch.Entry {
	return &patch.Entry{
		ID:       id,
		Template: id + ".dslpatch",
		Match:    match,
		Types:    patch.Types{"gpu": patch.Branch(patch.Types{"model": patch.Leaf(patch.TagText)})},
	}
}

func TestNew_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		entries []*patch.Entry
		wantErr error
	}{
		{"nil_entry", []*patch.Entry{nil}, ErrInvalidEntry},
		{"empty_id", []*patch.Entry{entry(" ", "")}, ErrInvalidEntry},
		{"empty_template", []*patch.Entry{{ID: "a", Types: entry("a", "").Types}}, ErrInvalidEntry},
		{"empty_types", []*patch.Entry{{ID: "a", Template: "a.dslpatch"}}, ErrInvalidEntry},
		{"duplicate", []*patch.Entry{entry("a", ""), entry("a", "")}, ErrDuplicateEntry},
		{"bad_match_syntax", []*patch.Entry{entry("a", "gpu ==")}, ErrInvalidMatch},
		{"non_bool_match", []*patch.Entry{entry("a", `"Turing"`)}, ErrInvalidMatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := New(tt.entries...)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("New() error = %v, want %v", err, tt.wantErr)
			}

			if c != nil {
				t.Errorf("New() catalog = %v, want nil", c)
			}
		})
	}
}

func TestCatalog_Lookup(t *testing.T) {
	c, err := New(entry("nvidiaTuringPatch", ""), entry("amdNaviPatch", ""))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	e, err := c.Lookup("amdNaviPatch")
	if err != nil || e.ID != "amdNaviPatch" {
		t.Fatalf("Lookup() = %v, %v", e, err)
	}

	_, err = c.Lookup("turing")
	if !errors.Is(err, ErrUnknownEntry) {
		t.Fatalf("Lookup(turing) error = %v, want %v", err, ErrUnknownEntry)
	}

	var pe *pkg.Error
	if !errors.As(err, &pe) {
		t.Fatalf("Lookup(turing) error type = %T", err)
	}

	if v, ok := pe.Attr("suggestions"); !ok || !strings.Contains(v.String(), "nvidiaTuringPatch") {
		t.Errorf("suggestions = %v, want nvidiaTuringPatch", v)
	}
}

func TestCatalog_With(t *testing.T) {
	base, err := New(entry("a", ""), entry("b", ""))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	replacement := entry("a", "")
	replacement.Description = "override"

	next, err := base.With(entry("c", ""), replacement)
	if err != nil {
		t.Fatalf("With() error = %v", err)
	}

	if got := next.IDs(); !slices.Equal(got, []string{"a", "b", "c"}) {
		t.Errorf("IDs() = %v, want [a b c]", got)
	}

	if e, _ := next.Lookup("a"); e.Description != "override" {
		t.Errorf("Lookup(a).Description = %q, want override", e.Description)
	}

	if base.Len() != 2 {
		t.Errorf("base catalog modified: Len() = %d", base.Len())
	}

	if e, _ := base.Lookup("a"); e.Description != "" {
		t.Errorf("base entry replaced: %q", e.Description)
	}

	if _, err := base.With(entry("d", ""), entry("d", "")); !errors.Is(err, ErrDuplicateEntry) {
		t.Errorf("With(dup) error = %v, want %v", err, ErrDuplicateEntry)
	}
}

func TestCatalog_Match(t *testing.T) {
	c, err := New(
		entry("turing", `gpu?.architecture == "Turing"`),
		entry("anyGpu", `gpu != nil`),
		entry("manual", ""),
		entry("broken", `gpu.architecture.name == "x"`),
	)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	tests := []struct {
		name   string
		values patch.Values
		want   []string
	}{
		{
			"turing",
			patch.Values{"gpu": patch.Tree(patch.Values{"architecture": patch.Text("Turing")})},
			[]string{"turing", "anyGpu"},
		},
		{
			"pascal",
			patch.Values{"gpu": patch.Tree(patch.Values{"architecture": patch.Text("Pascal")})},
			[]string{"anyGpu"},
		},
		{"no_gpu", patch.Values{}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got []string
			for _, e := range c.Match(context.Background(), tt.values) {
				got = append(got, e.ID)
			}

			if !slices.Equal(got, tt.want) {
				t.Errorf("Match() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBuiltin(t *testing.T) {
	c := Builtin()

	e, err := c.Lookup(NvidiaTuringPatch)
	if err != nil {
		t.Fatalf("Lookup(%s) error = %v", NvidiaTuringPatch, err)
	}

	var sels []string
	for _, sel := range e.Selectors() {
		sels = append(sels, sel.String())
	}

	want := []string{"gpu->deviceId", "gpu->model", "gpu->pciPath"}
	if !slices.Equal(sels, want) {
		t.Errorf("Selectors() = %v, want %v", sels, want)
	}

	if _, err := fs.Stat(Templates, e.Template); err != nil {
		t.Errorf("template %s not embedded: %v", e.Template, err)
	}
}

func TestBuiltin_TemplateResolves(t *testing.T) {
	e, err := Builtin().Lookup(NvidiaTuringPatch)
	if err != nil {
		t.Fatal(err)
	}

	values := patch.Values{
		"gpu": patch.Tree(patch.Values{
			"pciPath":  patch.Text(`\_SB.PCI0.PEG0.PEGP`),
			"deviceId": patch.Bytes(0x82, 0x1e, 0x00, 0x00),
			"model":    patch.Text("GeForce RTX 2080"),
		}),
	}

	result, err := patch.NewEngine(Templates, log.Discard()).
		Apply(context.Background(), e, values)
	if err != nil {
		t.Fatalf("Apply() error = %v", err)
	}

	for _, want := range []string{
		`External (\_SB.PCI0.PEG0.PEGP, DeviceObj)`,
		`Scope (\_SB.PCI0.PEG0.PEGP)`,
		"0x82, 0x1E, 0x00, 0x00",
		`"GeForce RTX 2080"`,
	} {
		if !strings.Contains(result.Text, want) {
			t.Errorf("patched template missing %q", want)
		}
	}

	if strings.Contains(result.Text, "{ gpu->") {
		t.Error("patched template still contains placeholders")
	}

	matched := Builtin().Match(context.Background(), patch.Values{
		"gpu": patch.Tree(patch.Values{"architecture": patch.Text("Turing")}),
	})
	if len(matched) != 1 || matched[0].ID != NvidiaTuringPatch {
		t.Errorf("Match() = %v, want [%s]", matched, NvidiaTuringPatch)
	}
}

func TestOverlay(t *testing.T) {
	upper := fstest.MapFS{"a.dslpatch": {Data: []byte("upper")}}
	lower := fstest.MapFS{
		"a.dslpatch": {Data: []byte("lower")},
		"b.dslpatch": {Data: []byte("lower")},
	}

	fsys := Overlay(upper, nil, lower)

	tests := []struct {
		name    string
		file    string
		want    string
		wantErr error
	}{
		{"upper_wins", "a.dslpatch", "upper", nil},
		{"falls_through", "b.dslpatch", "lower", nil},
		{"missing", "c.dslpatch", "", fs.ErrNotExist},
		{"invalid", "../a.dslpatch", "", fs.ErrInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := fs.ReadFile(fsys, tt.file)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("ReadFile() error = %v, want %v", err, tt.wantErr)
			}

			if string(data) != tt.want {
				t.Errorf("ReadFile() = %q, want %q", data, tt.want)
			}

			f, err := fsys.Open(tt.file)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Open() error = %v, want %v", err, tt.wantErr)
			}

			if f != nil {
				f.Close()
			}
		})
	}
}
