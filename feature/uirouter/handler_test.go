package uirouter

import (
	"context"
	"errors"
	"io"
	"net/http/httptest"
	"sync"
	"testing"
	"testing/fstest"
	"time"

	"cellular/core/resource"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type failingResolver struct{}

func (failingResolver) Open(context.Context, string) (io.ReadCloser, error) {
	return nil, errors.New("backend down")
}

// countingResolver counts the streams it opens and how many were closed.
type countingResolver struct {
	resource.Resolver
	mu     sync.Mutex
	opens  int
	closes int
}

type countingStream struct {
	io.ReadCloser
	r *countingResolver
}

func (s *countingStream) Close() error {
	s.r.mu.Lock()
	s.r.closes++
	s.r.mu.Unlock()
	return s.ReadCloser.Close()
}

func (r *countingResolver) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	rc, err := r.Resolver.Open(ctx, name)
	if err != nil {
		return nil, err
	}
	r.mu.Lock()
	r.opens++
	r.mu.Unlock()
	return &countingStream{ReadCloser: rc, r: r}, nil
}

func (r *countingResolver) counts() (int, int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.opens, r.closes
}

func setupTestApp(t *testing.T, resolver resource.Resolver) *fiber.App {
	app := fiber.New()
	require.NoError(t, NewFeature(resolver, true, zap.NewNop()).Load(app))
	return app
}

func TestResourceName(t *testing.T) {
	assert.Equal(t, "ui/index.html", ResourceName(""))
	assert.Equal(t, "ui/css/index.html", ResourceName("css/"))
	assert.Equal(t, "ui/style.css", ResourceName("style.css"))
}

func TestHandleAsset(t *testing.T) {
	fsys := fstest.MapFS{
		"ui/index.html":  {Data: []byte("<h1>cellular</h1>")},
		"ui/style.css":   {Data: []byte("body{}")},
		"ui/plane.recon": {Data: []byte("a:1")},
	}
	app := setupTestApp(t, resource.NewFSResolver(fsys))

	tests := []struct {
		name        string
		path        string
		status      int
		contentType string
		body        string
	}{
		{"Index", "/ui/", 200, "text/html", "<h1>cellular</h1>"},
		{"Stylesheet", "/ui/style.css", 200, "text/css", "body{}"},
		{"Recon", "/ui/plane.recon", 200, "text/x-recon", "a:1"},
		{"Missing", "/ui/app.js", 404, "application/json", "Not Found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := app.Test(httptest.NewRequest("GET", tt.path, nil))
			require.NoError(t, err)
			assert.Equal(t, tt.status, resp.StatusCode)
			assert.Contains(t, resp.Header.Get("Content-Type"), tt.contentType)

			body, _ := io.ReadAll(resp.Body)
			assert.Contains(t, string(body), tt.body)
		})
	}
}

func TestHandleAsset_Redirect(t *testing.T) {
	app := setupTestApp(t, resource.NewFSResolver(fstest.MapFS{}))

	resp, err := app.Test(httptest.NewRequest("GET", "/ui", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusMovedPermanently, resp.StatusCode)
	assert.Equal(t, "/ui/", resp.Header.Get("Location"))
}

func TestHandleAsset_ResolverFailure(t *testing.T) {
	app := setupTestApp(t, failingResolver{})

	resp, err := app.Test(httptest.NewRequest("GET", "/ui/index.html", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
}

func TestFeature(t *testing.T) {
	feature := NewFeature(failingResolver{}, false, zap.NewNop())
	assert.Equal(t, "ui", feature.Name())
	assert.False(t, feature.IsEnabled())
}

func TestHandleAsset_ClosesStream(t *testing.T) {
	res := &countingResolver{Resolver: resource.NewMemoryResolver(map[string][]byte{
		"ui/index.html": []byte("<h1>cellular</h1>"),
		"ui/style.css":  []byte("body{}"),
	})}
	app := setupTestApp(t, res)

	for _, path := range []string{"/ui/", "/ui/index.html", "/ui/style.css", "/ui/missing.js"} {
		resp, err := app.Test(httptest.NewRequest("GET", path, nil))
		require.NoError(t, err)
		_, _ = io.ReadAll(resp.Body)
	}

	assert.Eventually(t, func() bool {
		opens, closes := res.counts()
		return opens == 3 && closes == 3
	}, time.Second, 10*time.Millisecond)
}
