package resource

import (
	"bytes"
	"context"
	"io"
	"sort"
	"sync"
)

// MemoryResolver serves resources held in memory. It is used to validate
// content before publishing it and as a test double.
type MemoryResolver struct {
	mu      sync.RWMutex
	content map[string][]byte
}

// NewMemoryResolver creates a resolver over a copy of content. Names are
// stored in clean form; names that cannot be cleaned are dropped.
func NewMemoryResolver(content map[string][]byte) *MemoryResolver {
	r := &MemoryResolver{content: make(map[string][]byte, len(content))}
	for name, data := range content {
		if clean, ok := cleanName(name); ok {
			r.content[clean] = bytes.Clone(data)
		}
	}
	return r
}

// Open returns a fresh reader over the named content.
func (r *MemoryResolver) Open(_ context.Context, name string) (io.ReadCloser, error) {
	clean, ok := cleanName(name)
	if !ok {
		return nil, notFound(name)
	}
	r.mu.RLock()
	data, found := r.content[clean]
	r.mu.RUnlock()
	if !found {
		return nil, notFound(name)
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

// List returns the stored names under prefix.
func (r *MemoryResolver) List(_ context.Context, prefix string) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var names []string
	for name := range r.content {
		if matchesPrefix(name, prefix) {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names, nil
}

// Put stores a copy of content under name.
func (r *MemoryResolver) Put(_ context.Context, name string, content []byte) error {
	clean, ok := cleanName(name)
	if !ok {
		return notFound(name)
	}
	r.mu.Lock()
	r.content[clean] = bytes.Clone(content)
	r.mu.Unlock()
	return nil
}
