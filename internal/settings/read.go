package settings

import (
	"errors"
	"io/fs"
	"os"
)

// Read loads and decodes the settings file at path.
//
// A missing file is not an error: Read returns an empty object and
// found == false. A file that exists but does not decode fails with
// ErrMalformedDocument; callers must not treat that as an empty document,
// or the next write would discard the user's settings.
func Read(path string) (doc *Object, found bool, err error) {
	// os.ReadFile on a directory fails with EISDIR only on some platforms,
	// so check explicitly.
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return NewObject(), false, nil
		}
		return nil, false, kindError(ErrIO, "stat %s: %w", path, err)
	}
	if !info.Mode().IsRegular() {
		return nil, false, kindError(ErrIO, "%s is not a regular file", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, false, kindError(ErrIO, "read %s: %w", path, err)
	}

	doc, err = Decode(data)
	if err != nil {
		return nil, true, err
	}
	return doc, true, nil
}
