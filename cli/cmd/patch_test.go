package cmd

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ardnew/dslpatch/catalog"
	"github.com/ardnew/dslpatch/patch"
)

func TestPatch_Run(t *testing.T) {
	dir := t.TempDir()

	missing := "gpu:\n  architecture: Turing\n  pciPath: \\_SB.PEGP\n  model: RTX\n"

	tests := []struct {
		name    string
		ids     []string
		values  string
		wantErr error
	}{
		{name: "selected_by_match", values: gpuValues},
		{name: "selected_by_id", ids: []string{catalog.NvidiaTuringPatch}, values: gpuValues},
		{
			name:   "repeated_id",
			ids:    []string{catalog.NvidiaTuringPatch, catalog.NvidiaTuringPatch},
			values: gpuValues,
		},
		{
			name:    "unknown_id",
			ids:     []string{"nvidiaTurningPatch"},
			values:  gpuValues,
			wantErr: catalog.ErrUnknownEntry,
		},
		{
			name:    "nothing_matches",
			values:  "gpu:\n  architecture: Pascal\n",
			wantErr: ErrNoEntries,
		},
		{
			name:    "missing_selector_data",
			values:  missing,
			wantErr: patch.ErrMissingSelectorData,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer

			ctx := commandContext(t, &out)
			output := filepath.Join(t.TempDir(), "out")

			p := &Patch{
				IDs:    tt.ids,
				Values: writeFile(t, filepath.Join(dir, tt.name+".yaml"), tt.values),
				Output: output,
			}

			err := p.Run(ctx)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Patch.Run() error = %v, want %v", err, tt.wantErr)
			}

			written := filepath.Join(output, "SSDT-GPU-SPOOF.dsl")

			if tt.wantErr != nil {
				if _, err := os.Stat(written); !os.IsNotExist(err) {
					t.Errorf("Patch.Run() wrote %s after failure", written)
				}

				return
			}

			if got := strings.TrimSpace(out.String()); got != written {
				t.Errorf("output = %q, want %q", got, written)
			}

			data, err := os.ReadFile(written)
			if err != nil {
				t.Fatal(err)
			}

			for _, want := range []string{
				`External (\_SB.PCI0.PEG0.PEGP, DeviceObj)`,
				"0x06, 0x1B, 0x00, 0x00",
				`"NVIDIA GeForce RTX 2070"`,
			} {
				if !strings.Contains(string(data), want) {
					t.Errorf("patched source missing %q", want)
				}
			}

			if strings.Contains(string(data), "{ gpu->") {
				t.Error("patched source still contains placeholders")
			}
		})
	}
}

func TestPatch_Run_ConflictingOutput(t *testing.T) {
	var out bytes.Buffer

	types := patch.Types{"gpu": patch.Branch(patch.Types{"model": patch.Leaf(patch.TagText)})}

	cat, err := catalog.New(
		&patch.Entry{ID: "first", Template: "a/SSDT.dslpatch", Types: types},
		&patch.Entry{ID: "second", Template: "b/SSDT.dslpatch", Types: types},
	)
	if err != nil {
		t.Fatal(err)
	}

	ctx := WithCatalog(commandContext(t, &out), cat)

	p := &Patch{
		IDs:    []string{"first", "second"},
		Values: writeFile(t, filepath.Join(t.TempDir(), "values.yaml"), gpuValues),
		Output: t.TempDir(),
	}

	if err := p.Run(ctx); !errors.Is(err, ErrWriteOutput) {
		t.Errorf("Patch.Run() error = %v, want %v", err, ErrWriteOutput)
	}
}

func TestSourceName(t *testing.T) {
	tests := []struct {
		template string
		want     string
	}{
		{"SSDT-GPU-SPOOF.dslpatch", "SSDT-GPU-SPOOF.dsl"},
		{"gpu/SSDT-PLUG.dslpatch", "SSDT-PLUG.dsl"},
		{"DSDT", "DSDT.dsl"},
		{"SSDT.v2.tmpl", "SSDT.v2.dsl"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := SourceName(tt.template); got != tt.want {
				t.Errorf("SourceName(%q) = %q, want %q", tt.template, got, tt.want)
			}
		})
	}
}
