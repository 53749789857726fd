package resource

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingResolver struct{ err error }

func (f failingResolver) Open(context.Context, string) (io.ReadCloser, error) {
	return nil, f.err
}

func TestChainResolver_Open(t *testing.T) {
	override := NewFSResolver(fstest.MapFS{"cellular.recon": {Data: []byte("name: override")}})
	base := NewFSResolver(fstest.MapFS{
		"cellular.recon": {Data: []byte("name: base")},
		"sites.json":     {Data: []byte("[]")},
	})
	chain := NewChainResolver(override, base)

	read := func(name string) string {
		rc, err := chain.Open(context.Background(), name)
		require.NoError(t, err)
		defer rc.Close()
		b, _ := io.ReadAll(rc)
		return string(b)
	}

	assert.Equal(t, "name: override", read("cellular.recon"))
	assert.Equal(t, "[]", read("sites.json"))

	_, err := chain.Open(context.Background(), "missing")
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestChainResolver_StopsOnFailure(t *testing.T) {
	boom := errors.New("boom")
	base := NewFSResolver(fstest.MapFS{"a.json": {Data: []byte("{}")}})
	chain := NewChainResolver(failingResolver{err: boom}, base)

	_, err := chain.Open(context.Background(), "a.json")
	assert.ErrorIs(t, err, boom)
}

func TestChainResolver_ListAndPut(t *testing.T) {
	pub := NewMemoryResolver(map[string][]byte{"b.json": []byte("{}")})
	base := NewFSResolver(fstest.MapFS{"a.json": {}, "b.json": {}})
	chain := NewChainResolver(failingResolver{err: fs.ErrNotExist}, base, pub)

	names, err := chain.List(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, []string{"a.json", "b.json"}, names)

	require.NoError(t, chain.Put(context.Background(), "c.json", []byte("{}")))
	rc, err := pub.Open(context.Background(), "c.json")
	require.NoError(t, err)
	rc.Close()

	assert.Error(t, NewChainResolver(base).Put(context.Background(), "x", nil))
}
