package resource

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"sort"
)

// FSResolver resolves resources from a file system, typically an embed.FS
// compiled into the binary or an os.DirFS rooted at a resource directory.
type FSResolver struct {
	fsys fs.FS
}

// NewFSResolver creates a resolver over fsys.
func NewFSResolver(fsys fs.FS) *FSResolver {
	return &FSResolver{fsys: fsys}
}

// Open opens name. Directories count as absent.
func (r *FSResolver) Open(_ context.Context, name string) (io.ReadCloser, error) {
	clean, ok := cleanName(name)
	if !ok {
		return nil, notFound(name)
	}

	f, err := r.fsys.Open(clean)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, notFound(name)
		}
		return nil, err
	}

	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	if info.IsDir() {
		_ = f.Close()
		return nil, notFound(name)
	}

	return f, nil
}

// List walks the file system and returns regular files under prefix.
func (r *FSResolver) List(_ context.Context, prefix string) ([]string, error) {
	var names []string
	err := fs.WalkDir(r.fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && matchesPrefix(p, prefix) {
			names = append(names, p)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(names)
	return names, nil
}
