package compile

import (
	"bufio"
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/ardnew/dslpatch/log"
)

// ArtifactExt is the extension of compiled tables.
const ArtifactExt = ".aml"

// Compiler runs a compiler executable.
type Compiler struct {
	logger log.Logger
	path   string
}

// Result describes a successful compilation.
type Result struct {
	Source   string
	Artifact string
	Status   int
}

// New returns a compiler running the executable at path.
func New(path string, logger log.Logger) *Compiler {
	return &Compiler{path: path, logger: logger}
}

// Path returns the executable the compiler runs.
func (c *Compiler) Path() string { return c.path }

// Artifact returns the path of the table compiled from source.
func Artifact(source string) string {
	return strings.TrimSuffix(source, filepath.Ext(source)) + ArtifactExt
}

// Compile runs the compiler on source and waits for it to exit.
//
// Output lines are logged at debug level as they arrive. A nonzero exit
// status fails with [ErrCompileFailed] carrying the status. A zero status
// without a table next to source fails with [ErrArtifactMissing].
func (c *Compiler) Compile(ctx context.Context, source string) (*Result, error) {
	attrs := []slog.Attr{
		slog.String("compiler", c.path),
		slog.String("source", source),
	}

	cmd := exec.CommandContext(ctx, c.path, source)

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, ErrCompilerRun.Wrap(err).With(attrs...)
	}

	stderr, err := cmd.StderrPipe()
	if err != nil {
		return nil, ErrCompilerRun.Wrap(err).With(attrs...)
	}

	c.logger.DebugContext(ctx, "starting compiler", attrs...)

	if err := cmd.Start(); err != nil {
		return nil, ErrCompilerRun.Wrap(err).With(attrs...)
	}

	var g errgroup.Group

	g.Go(func() error { return c.stream(ctx, "stdout", stdout) })
	g.Go(func() error { return c.stream(ctx, "stderr", stderr) })

	streamErr := g.Wait()
	waitErr := cmd.Wait()

	var exitErr *exec.ExitError

	switch {
	case errors.As(waitErr, &exitErr):
		return nil, ErrCompileFailed.Wrap(waitErr).
			With(attrs...).
			With(slog.Int("status", exitErr.ExitCode()))

	case waitErr != nil:
		return nil, ErrCompilerRun.Wrap(waitErr).With(attrs...)

	case streamErr != nil:
		return nil, ErrCompilerRun.Wrap(streamErr).With(attrs...)
	}

	artifact := Artifact(source)
	if _, err := os.Stat(artifact); err != nil {
		return nil, ErrArtifactMissing.Wrap(err).
			With(attrs...).
			With(slog.String("artifact", artifact))
	}

	c.logger.DebugContext(ctx, "compiler finished",
		append(attrs, slog.String("artifact", artifact))...)

	return &Result{Source: source, Artifact: artifact, Status: 0}, nil
}

// stream logs each line read from r until EOF. Output past a line longer
// than the scanner buffer is discarded so the child never blocks on a full
// pipe.
func (c *Compiler) stream(ctx context.Context, name string, r io.Reader) error {
	s := bufio.NewScanner(r)
	for s.Scan() {
		c.logger.DebugContext(ctx, "compiler output",
			slog.String("stream", name),
			slog.String("line", s.Text()))
	}

	err := s.Err()
	if errors.Is(err, bufio.ErrTooLong) {
		c.logger.DebugContext(ctx, "compiler output truncated",
			slog.String("stream", name))

		err = nil
	}

	if _, derr := io.Copy(io.Discard, r); err == nil {
		err = derr
	}

	return err
}
