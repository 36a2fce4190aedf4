package cmd

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ardnew/dslpatch/catalog"
	"github.com/ardnew/dslpatch/codec"
	"github.com/ardnew/dslpatch/patch"
)

func TestList_Text(t *testing.T) {
	var out bytes.Buffer

	ctx := commandContext(t, &out)

	if err := (&List{Format: formatText, Indent: 2}).Run(ctx); err != nil {
		t.Fatalf("List.Run() error = %v", err)
	}

	for _, want := range []string{
		catalog.NvidiaTuringPatch,
		"SSDT-GPU-SPOOF.dslpatch",
		`gpu?.architecture == "Turing"`,
		"gpu->deviceId",
		"gpu->model",
		"gpu->pciPath",
		"bytes",
		"text",
	} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("List.Run() output missing %q:\n%s", want, out.String())
		}
	}
}

func TestList_Structured(t *testing.T) {
	tests := []struct {
		name   string
		format string
		parse  codec.Format
	}{
		{name: "yaml", format: "yaml", parse: codec.FormatYAML},
		{name: "json", format: "json", parse: codec.FormatJSON},
		{name: "toml", format: "toml", parse: codec.FormatTOML},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer

			ctx := commandContext(t, &out)

			if err := (&List{Format: tt.format, Indent: 2}).Run(ctx); err != nil {
				t.Fatalf("List.Run() error = %v", err)
			}

			entries, err := catalog.Read(tt.parse, &out)
			if err != nil {
				t.Fatalf("catalog.Read() error = %v", err)
			}

			if len(entries) != 1 || entries[0].ID != catalog.NvidiaTuringPatch {
				t.Errorf("listed entries = %v", entries)
			}
		})
	}
}

func TestList_Values(t *testing.T) {
	dir := t.TempDir()

	other, err := catalog.Builtin().With(&patch.Entry{
		ID:       "audioPatch",
		Template: "SSDT-HDEF.dslpatch",
		Match:    "audio?.layout > 0",
		Types:    patch.Types{"audio": patch.Branch(patch.Types{"layout": patch.Leaf(patch.TagInteger)})},
	})
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name    string
		values  string
		want    []string
		notWant []string
	}{
		{
			name:    "gpu_values",
			values:  gpuValues,
			want:    []string{catalog.NvidiaTuringPatch},
			notWant: []string{"audioPatch"},
		},
		{
			name:    "audio_values",
			values:  "audio:\n  layout: 7\n",
			want:    []string{"audioPatch"},
			notWant: []string{catalog.NvidiaTuringPatch},
		},
		{
			name:    "no_match",
			values:  "gpu:\n  architecture: Pascal\n",
			notWant: []string{catalog.NvidiaTuringPatch, "audioPatch"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer

			ctx := WithCatalog(commandContext(t, &out), other)
			path := writeFile(t, filepath.Join(dir, tt.name+".yaml"), tt.values)

			if err := (&List{Values: path, Format: formatText}).Run(ctx); err != nil {
				t.Fatalf("List.Run() error = %v", err)
			}

			for _, id := range tt.want {
				if !strings.Contains(out.String(), id) {
					t.Errorf("output missing %q:\n%s", id, out.String())
				}
			}

			for _, id := range tt.notWant {
				if strings.Contains(out.String(), id) {
					t.Errorf("output includes %q:\n%s", id, out.String())
				}
			}
		})
	}
}
