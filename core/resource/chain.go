package resource

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"sort"
)

// ChainResolver searches a list of resolvers in order, like a class path.
// The first resolver that has the resource wins. Any error other than absence
// stops the search.
type ChainResolver struct {
	resolvers []Resolver
}

// NewChainResolver creates a resolver over resolvers, searched in order.
func NewChainResolver(resolvers ...Resolver) *ChainResolver {
	return &ChainResolver{resolvers: resolvers}
}

// Open returns the first hit along the chain.
func (c *ChainResolver) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	for _, r := range c.resolvers {
		rc, err := r.Open(ctx, name)
		if err == nil {
			return rc, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}
	return nil, notFound(name)
}

// List merges the listings of every resolver that supports listing.
func (c *ChainResolver) List(ctx context.Context, prefix string) ([]string, error) {
	seen := make(map[string]struct{})
	var names []string
	for _, r := range c.resolvers {
		l, ok := r.(Lister)
		if !ok {
			continue
		}
		found, err := l.List(ctx, prefix)
		if err != nil {
			return nil, err
		}
		for _, n := range found {
			if _, dup := seen[n]; dup {
				continue
			}
			seen[n] = struct{}{}
			names = append(names, n)
		}
	}
	sort.Strings(names)
	return names, nil
}

// Put stores content in the first resolver that accepts writes.
func (c *ChainResolver) Put(ctx context.Context, name string, content []byte) error {
	for _, r := range c.resolvers {
		if p, ok := r.(Publisher); ok {
			return p.Put(ctx, name, content)
		}
	}
	return errors.New("no writable resource source configured")
}
