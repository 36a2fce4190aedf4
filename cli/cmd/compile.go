package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ardnew/dslpatch/compile"
	"github.com/ardnew/dslpatch/log"
)

// Compile patches catalog entries like [Patch] and compiles each written
// source into a table.
type Compile struct {
	Patch Patch `embed:""`

	Compiler string   `help:"Compiler executable (default: search --tools, then PATH)" placeholder:"FILE" type:"existingfile"`
	Tools    []string `help:"Directories searched for the compiler before PATH"         placeholder:"DIR"  type:"existingdir"`
}

// Run executes the compile command.
func (c *Compile) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	exe := c.Compiler
	if exe == "" {
		if exe, err = compile.Locate(c.Tools...); err != nil {
			return err
		}
	}

	log.DebugContext(ctx, "using compiler", slog.String("path", exe))

	sources, err := c.Patch.write(ctx)
	if err != nil {
		return err
	}

	compiler := compile.New(exe, logger())
	w := stdout(ctx)

	for _, source := range sources {
		r, err := compiler.Compile(ctx, source)
		if err != nil {
			return err
		}

		log.InfoContext(ctx, "compiled table",
			slog.String("source", r.Source),
			slog.String("artifact", r.Artifact),
		)

		fmt.Fprintln(w, r.Artifact)
	}

	return nil
}
