package cli

import (
	"os"
	"path/filepath"

	"github.com/ardnew/dslpatch/cli/cmd"
	"github.com/ardnew/dslpatch/pkg"
)

// baseConfig is the file name of the YAML configuration file. The JSON
// variant is the same path with ".json" appended.
const baseConfig = cmd.ConfigIdentifier + ".yaml"

// defaultDirMode is the permission mode for created directories.
const defaultDirMode os.FileMode = 0o700

// configPath returns the path formed by joining the configuration directory
// with the given path elements.
func configPath(elem ...string) string {
	return filepath.Join(append([]string{pkg.ConfigDir()}, elem...)...)
}

// mkdirAllRequired creates the configuration and cache directories.
func mkdirAllRequired() error {
	for _, dir := range []string{pkg.ConfigDir(), pkg.CacheDir()} {
		if err := os.MkdirAll(dir, defaultDirMode); err != nil {
			return err
		}
	}

	return nil
}
