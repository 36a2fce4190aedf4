package pkg

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"
)

// Prefix returns the base name used for the configuration and cache
// directories and as the prefix of environment variable identifiers.
//
// Prefix is the base name of the executable without extension, except:
//   - "__debug_bin<N>" (default output of the dlv debugger) becomes [Name]
//   - leading dots are removed
//
//nolint:gochecknoglobals
var Prefix = sync.OnceValue(
	func() string {
		id := os.Args[0]
		if exe, err := os.Executable(); err == nil {
			id = exe
		}

		id = filepath.Base(id)
		id = strings.TrimSuffix(id, filepath.Ext(id))

		id = debugBin.ReplaceAllString(id, Name)
		id = strings.TrimLeft(id, ".")

		if id == "" {
			return Name
		}

		return id
	},
)

var debugBin = regexp.MustCompile(`^__debug_bin\d+$`)

// EnvIdentifier returns the environment variable name for key, qualified by
// [Prefix]. For example, "config_dir" becomes "DSLPATCH_CONFIG_DIR".
func EnvIdentifier(key string) string {
	ident := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		default:
			return '_'
		}
	}, Prefix()+"_"+key)

	return strings.ToUpper(ident)
}

// ConfigDir returns the directory holding the configuration file.
//
// The environment variable named by EnvIdentifier("config_dir") overrides
// the platform default.
//
//nolint:gochecknoglobals
var ConfigDir = sync.OnceValue(
	func() string {
		return userDir("config_dir", os.UserConfigDir, ".config")
	},
)

// CacheDir returns the directory used for transient files.
//
// The environment variable named by EnvIdentifier("cache_dir") overrides
// the platform default.
//
//nolint:gochecknoglobals
var CacheDir = sync.OnceValue(
	func() string {
		return userDir("cache_dir", os.UserCacheDir, ".cache")
	},
)

// userDir resolves a per-user directory. Without an override, it tries the
// platform directory, then hidden under the home directory, then the working
// directory.
func userDir(key string, platform func() (string, error), hidden string) string {
	if dir := os.Getenv(EnvIdentifier(key)); dir != "" {
		return dir
	}

	dir, err := platform()
	if err != nil {
		if home, herr := os.UserHomeDir(); herr == nil {
			dir = filepath.Join(home, hidden)
		} else if wd, werr := os.Getwd(); werr == nil {
			dir = wd
		} else {
			dir = "."
		}
	}

	return filepath.Join(dir, Prefix())
}
