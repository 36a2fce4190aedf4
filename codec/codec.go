package codec

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/goccy/go-yaml"
	"github.com/tidwall/jsonc"

	"github.com/ardnew/dslpatch/pkg"
)

// Decode reads a whole document in format f from r.
// An empty document decodes to an empty map.
func Decode(f Format, r io.Reader) (map[string]any, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, ErrDecode.Wrap(err).With(slog.String("format", f.String()))
	}

	doc, err := DecodeBytes(f, data)
	if err != nil {
		return nil, err
	}

	return doc, nil
}

// DecodeBytes decodes a document in format f.
func DecodeBytes(f Format, data []byte) (map[string]any, error) {
	var (
		doc map[string]any
		err error
	)

	switch f {
	case FormatYAML:
		err = yaml.Unmarshal(data, &doc)

	case FormatJSON:
		doc, err = decodeJSON(data)

	case FormatJSONC:
		doc, err = decodeJSON(jsonc.ToJSON(data))

	case FormatTOML:
		_, err = toml.NewDecoder(bytes.NewReader(data)).Decode(&doc)

	default:
		return nil, ErrUnknownFormat.With(slog.String("format", f.String()))
	}

	if err != nil {
		return nil, ErrDecode.Wrap(err).With(slog.String("format", f.String()))
	}

	if doc == nil {
		doc = map[string]any{}
	}

	return doc, nil
}

func decodeJSON(data []byte) (map[string]any, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var doc map[string]any
	if err := dec.Decode(&doc); err != nil {
		return nil, err
	}

	return doc, nil
}

// DecodeFile reads the file at path, inferring its format from the
// extension.
func DecodeFile(path string) (map[string]any, error) {
	f, err := FormatOf(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, ErrDecode.Wrap(err).With(slog.String("path", path))
	}

	doc, err := DecodeBytes(f, data)
	if err != nil {
		return nil, pkg.WrapError(err).With(slog.String("path", path))
	}

	return doc, nil
}

// Encode writes v to w in format f.
//
// A positive indent pretty-prints JSON and sets the YAML indentation width.
// An indent of zero writes compact JSON and flow-style YAML. TOML output
// ignores indent, and JSONC is written as plain JSON.
func Encode(ctx context.Context, f Format, w io.Writer, v any, indent int) error {
	var (
		data []byte
		err  error
	)

	switch f {
	case FormatYAML:
		var opts []yaml.EncodeOption
		if indent > 0 {
			opts = append(opts, yaml.Indent(indent))
		} else {
			opts = append(opts, yaml.Flow(true))
		}

		data, err = yaml.MarshalContext(ctx, v, opts...)

	case FormatJSON, FormatJSONC:
		if indent > 0 {
			data, err = json.MarshalIndent(v, "", strings.Repeat(" ", indent))
		} else {
			data, err = json.Marshal(v)
		}

		if err == nil {
			data = append(data, '\n')
		}

	case FormatTOML:
		var buf bytes.Buffer

		err = toml.NewEncoder(&buf).Encode(v)
		data = buf.Bytes()

	default:
		return ErrUnknownFormat.With(slog.String("format", f.String()))
	}

	if err != nil {
		return ErrEncode.Wrap(err).With(slog.String("format", f.String()))
	}

	if _, err := w.Write(data); err != nil {
		return ErrEncode.Wrap(err).With(slog.String("format", f.String()))
	}

	return nil
}
