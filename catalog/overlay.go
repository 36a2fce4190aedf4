package catalog

import (
	"errors"
	"io/fs"
)

// overlay searches its layers in order and serves each name from the first
// layer that holds it.
type overlay []fs.FS

// Overlay returns a file system layering fss, earliest first. Nil layers are
// ignored. A name missing from every layer fails with [fs.ErrNotExist].
func Overlay(fss ...fs.FS) fs.FS {
	o := make(overlay, 0, len(fss))

	for _, fsys := range fss {
		if fsys != nil {
			o = append(o, fsys)
		}
	}

	return o
}

// Open implements [fs.FS].
func (o overlay) Open(name string) (fs.File, error) {
	if !fs.ValidPath(name) {
		return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrInvalid}
	}

	for _, fsys := range o {
		f, err := fsys.Open(name)
		if err == nil {
			return f, nil
		}

		if !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrNotExist}
}

// ReadFile implements [fs.ReadFileFS].
func (o overlay) ReadFile(name string) ([]byte, error) {
	if !fs.ValidPath(name) {
		return nil, &fs.PathError{Op: "read", Path: name, Err: fs.ErrInvalid}
	}

	for _, fsys := range o {
		data, err := fs.ReadFile(fsys, name)
		if err == nil {
			return data, nil
		}

		if !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	return nil, &fs.PathError{Op: "read", Path: name, Err: fs.ErrNotExist}
}
