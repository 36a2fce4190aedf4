package cli

import (
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/goccy/go-yaml"

	"github.com/ardnew/dslpatch/log"
)

// resolve returns a [kong.ConfigurationLoader] that reads flag values from
// the mapping called name in a YAML configuration file.
//
// It can be used with [kong.Configuration] like this:
//
//	kong.Configuration(resolve("config"), "/path/to/config.yaml")
//
// Flag names may be written with hyphens or underscores. Example:
//
//	config:
//	  log-level: debug
//	  log_format: json
//	  catalog:
//	    - ~/acpi/catalog.yaml
//
// Command-line flags override config file values. A file that cannot be
// parsed, or that lacks the mapping, is ignored with a warning.
func resolve(name string) func(r io.Reader) (kong.Resolver, error) {
	return func(r io.Reader) (kong.Resolver, error) {
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, err
		}

		var doc map[string]any
		if err := yaml.Unmarshal(data, &doc); err != nil {
			log.Warn("ignoring configuration file",
				slog.String("error", err.Error()))

			return config{}, nil
		}

		flags, ok := doc[name].(map[string]any)
		if !ok {
			if _, exists := doc[name]; exists {
				log.Warn("ignoring configuration file",
					slog.String("error", "not a mapping"),
					slog.String("key", name))
			}

			return config{}, nil
		}

		c := make(config, len(flags))
		for key, val := range flags {
			c[key] = flagValue(val)
		}

		return c, nil
	}
}

// config implements [kong.Resolver] for YAML configuration files.
type config map[string]any

// Validate implements [kong.Resolver].
func (config) Validate(*kong.Application) error { return nil }

// Resolve implements [kong.Resolver].
func (r config) Resolve(
	_ *kong.Context,
	_ *kong.Path,
	flag *kong.Flag,
) (any, error) {
	for _, key := range []string{
		flag.Name,
		strings.ReplaceAll(flag.Name, "-", "_"),
	} {
		if value, ok := r[key]; ok {
			return value, nil
		}
	}

	return nil, nil
}

// flagValue converts a decoded YAML value into a form kong can decode.
// Kong parses numbers from strings, so numbers are formatted, and lists are
// converted element-wise.
func flagValue(val any) any {
	switch v := val.(type) {
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case uint64:
		return strconv.FormatUint(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case []any:
		out := make([]any, len(v))
		for i, elem := range v {
			out[i] = flagValue(elem)
		}

		return out
	default:
		return val
	}
}
