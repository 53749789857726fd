package resource

import (
	"context"
	"io"
	"io/fs"
	"path"
	"strings"
)

// Resolver maps a logical resource name to a byte stream.
//
// A missing resource is reported with an error that satisfies
// errors.Is(err, fs.ErrNotExist), which keeps absence distinguishable from an
// empty resource. Implementations must be safe for concurrent use and must
// hand out a fresh stream on every call.
type Resolver interface {
	Open(ctx context.Context, name string) (io.ReadCloser, error)
}

// Lister is implemented by resolvers that can enumerate their resources.
type Lister interface {
	// List returns the names of resources under prefix, sorted.
	List(ctx context.Context, prefix string) ([]string, error)
}

// Publisher is implemented by resolvers that can store resources.
type Publisher interface {
	Put(ctx context.Context, name string, content []byte) error
}

// notFound builds the absence error returned by every resolver.
func notFound(name string) error {
	return &fs.PathError{Op: "open", Path: name, Err: fs.ErrNotExist}
}

// cleanName normalizes a resource name. Names that are empty, absolute,
// escape the root or point at the root itself are rejected, which resolvers
// report as not found.
func cleanName(name string) (string, bool) {
	if name == "" || strings.HasPrefix(name, "/") || strings.Contains(name, "\\") {
		return "", false
	}
	clean := path.Clean(name)
	if clean == "." || !fs.ValidPath(clean) {
		return "", false
	}
	return clean, true
}

// matchesPrefix reports whether name lives under prefix. An empty prefix
// matches everything.
func matchesPrefix(name, prefix string) bool {
	if prefix == "" {
		return true
	}
	return strings.HasPrefix(name, strings.TrimSuffix(prefix, "/")+"/") || name == prefix
}
