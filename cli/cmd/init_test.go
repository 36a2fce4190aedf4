package cmd

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/alecthomas/kong"

	"github.com/ardnew/dslpatch/codec"
)

// TestInitRun tests the Init.Run command.
func TestInitRun(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		force   bool
		setup   func(t *testing.T, path string) // setup function to prepare test
		wantErr error
	}{
		{
			name:  "create_new_config",
			force: false,
		},
		{
			name:  "overwrite_existing_with_force",
			force: true,
			setup: func(t *testing.T, path string) {
				if err := os.WriteFile(path, []byte("existing content"), 0o644); err != nil {
					t.Fatal(err)
				}
			},
		},
		{
			name:  "fail_without_force",
			force: false,
			setup: func(t *testing.T, path string) {
				if err := os.WriteFile(path, []byte("existing content"), 0o644); err != nil {
					t.Fatal(err)
				}
			},
			wantErr: ErrFileExists,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			confPath := filepath.Join(t.TempDir(), "config.yaml")

			if tt.setup != nil {
				tt.setup(t, confPath)
			}

			var cli struct {
				LogLevel string `default:"info"`
			}

			parser, err := kong.New(&cli, kong.Vars{
				ConfigIdentifier: confPath,
			})
			if err != nil {
				t.Fatal(err)
			}

			kctx, err := parser.Parse(nil)
			if err != nil {
				t.Fatal(err)
			}

			ctx := WithContext(context.Background(), kctx)

			err = (&Init{Force: tt.force}).Run(ctx)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Init.Run() error = %v, want %v", err, tt.wantErr)
			}

			if tt.wantErr != nil {
				if !errors.Is(err, ErrWriteConfig) {
					t.Errorf("Init.Run() error = %v, want %v", err, ErrWriteConfig)
				}

				return
			}

			doc, err := codec.DecodeFile(confPath)
			if err != nil {
				t.Fatalf("generated config is not valid YAML: %v", err)
			}

			flags, _ := doc[ConfigIdentifier].(map[string]any)
			if flags["log-level"] != "info" {
				t.Errorf("config = %v, want log-level: info", doc)
			}
		})
	}
}

// TestInitDocument tests that document collects the current flag values.
func TestInitDocument(t *testing.T) {
	t.Parallel()

	type level string

	var cli struct {
		Verbose bool     `help:"Enable verbose output"     name:"verbose"`
		Output  string   `help:"Output file"               name:"output"`
		Count   int      `help:"Number of items"           name:"count"`
		Level   level    `default:"warn"                   name:"level"`
		Dirs    []string `help:"Search directories"        name:"dirs"`
		Empty   string   `help:"Left unset"                name:"empty"`
		Quiet   bool     `help:"Disabled boolean"          name:"quiet"`
		Hidden  string   `default:"secret"                 hidden:""        name:"hidden"`
		Mode    string   `default:"cpu"                    name:"pprof-mode"`
	}

	parser, err := kong.New(&cli)
	if err != nil {
		t.Fatal(err)
	}

	kctx, err := parser.Parse([]string{
		"--verbose", "--output=test.txt", "--count=5", "--dirs=a,b",
	})
	if err != nil {
		t.Fatal(err)
	}

	ctx := WithContext(context.Background(), kctx)
	flags, _ := new(Init).document(ctx)[ConfigIdentifier].(map[string]any)

	want := map[string]any{
		"verbose": true,
		"output":  "test.txt",
		"count":   5,
		"level":   "warn",
		"quiet":   false,
	}

	for key, val := range want {
		if flags[key] != val {
			t.Errorf("document()[%q] = %#v, want %#v", key, flags[key], val)
		}
	}

	if dirs, _ := flags["dirs"].([]string); !slices.Equal(dirs, []string{"a", "b"}) {
		t.Errorf("document()[dirs] = %#v", flags["dirs"])
	}

	for _, key := range []string{"empty", "hidden", "help", "pprof-mode"} {
		if _, ok := flags[key]; ok {
			t.Errorf("document() includes %q", key)
		}
	}
}
