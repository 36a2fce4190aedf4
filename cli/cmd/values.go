package cmd

import (
	"io"
	"log/slog"
	"os"

	"github.com/ardnew/dslpatch/codec"
	"github.com/ardnew/dslpatch/patch"
)

// stdinSource names standard input as a values file.
const stdinSource = "-"

// readValues decodes the value tree in path, or in r if path is
// [stdinSource]. The format of a named file follows its extension; standard
// input is read as YAML, which also accepts JSON.
func readValues(path string, r io.Reader) (patch.Values, error) {
	var (
		doc map[string]any
		err error
	)

	if path == stdinSource {
		if r == nil {
			r = os.Stdin
		}

		doc, err = codec.Decode(codec.FormatYAML, r)
	} else {
		doc, err = codec.DecodeFile(path)
	}

	if err != nil {
		return nil, ErrReadValues.Wrap(err).With(slog.String("file", path))
	}

	values, err := patch.FromNative(doc)
	if err != nil {
		return nil, ErrReadValues.Wrap(err).With(slog.String("file", path))
	}

	return values, nil
}
