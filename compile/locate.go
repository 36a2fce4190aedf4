package compile

import (
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"slices"

	"github.com/ardnew/mung"
)

// Generic is the name of the compiler as installed by package managers.
const Generic = "iasl"

// Binary returns the name of the prebuilt compiler for the host platform.
func Binary() string {
	switch runtime.GOOS {
	case "windows":
		return "iasl-win32.exe"
	case "darwin":
		return "iasl-darwin"
	default:
		return "iasl-linux"
	}
}

// SearchPath returns the directories searched by [Locate]: dirs followed by
// the entries of $PATH, keeping only existing directories.
func SearchPath(dirs ...string) []string {
	list := mung.Make(
		mung.WithSubjectItems(os.Getenv("PATH")),
		mung.WithDelim(string(os.PathListSeparator)),
		mung.WithPrefixItems(dirs...),
		mung.WithFilter(isDir),
	).String()

	search := filepath.SplitList(list)

	return slices.DeleteFunc(search, func(dir string) bool { return !isDir(dir) })
}

// Locate finds the compiler executable. The platform binary ([Binary]) is
// preferred over [Generic]; for each name every directory of [SearchPath] is
// tried in order.
func Locate(dirs ...string) (string, error) {
	search := SearchPath(dirs...)

	for _, name := range []string{Binary(), Generic} {
		for _, dir := range search {
			path := filepath.Join(dir, name)
			if isExecutable(path) {
				return path, nil
			}
		}
	}

	return "", ErrCompilerNotFound.With(
		slog.String("binary", Binary()),
		slog.Any("path", search),
	)
}

func isDir(path string) bool {
	if path == "" {
		return false
	}

	fi, err := os.Stat(path)

	return err == nil && fi.IsDir()
}

func isExecutable(path string) bool {
	fi, err := os.Stat(path)
	if err != nil || !fi.Mode().IsRegular() {
		return false
	}

	return runtime.GOOS == "windows" || fi.Mode().Perm()&0o111 != 0
}
