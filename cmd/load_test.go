package cmd

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"cellular/core/resource"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testLoader() *resource.Loader {
	return resource.NewLoader(resource.NewMemoryResolver(map[string][]byte{
		"config.json":  []byte(`{"a":1}`),
		"plane.recon":  []byte("a:1,b:2"),
		"broken.recon": []byte("{a:"),
		"notes":        []byte("a:1"),
	}), zap.NewNop())
}

func TestRunLoad(t *testing.T) {
	tests := []struct {
		name   string
		res    string
		format string
		output string
		want   string
	}{
		{"JSON", "config.json", "", "json", "{\n  \"a\": 1\n}\n"},
		{"ReconAsJSON", "plane.recon", "", "", "{\n  \"a\": 1,\n  \"b\": 2\n}\n"},
		{"ReconOutput", "plane.recon", "", "recon", "a:1,b:2\n"},
		{"ExplicitFormat", "notes", "recon", "recon", "a:1\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			err := runLoad(context.Background(), testLoader(), tt.res, tt.format, tt.output, &stdout, &stderr)
			require.NoError(t, err)
			assert.Equal(t, tt.want, stdout.String())
			assert.Empty(t, stderr.String())
		})
	}
}

func TestRunLoad_NotFound(t *testing.T) {
	var stdout, stderr bytes.Buffer
	err := runLoad(context.Background(), testLoader(), "missing.json", "", "json", &stdout, &stderr)

	var exit exitCodeError
	require.True(t, errors.As(err, &exit))
	assert.Equal(t, exitNotFound, exit.code)
	assert.Equal(t, "missing.json: not found\n", stderr.String())
	assert.Empty(t, stdout.String())
}

func TestRunLoad_Errors(t *testing.T) {
	var stdout, stderr bytes.Buffer
	ctx := context.Background()

	err := runLoad(ctx, testLoader(), "broken.recon", "", "json", &stdout, &stderr)
	var de *resource.DecodeError
	assert.ErrorAs(t, err, &de)

	assert.Error(t, runLoad(ctx, testLoader(), "notes", "", "json", &stdout, &stderr))
	assert.Error(t, runLoad(ctx, testLoader(), "config.json", "yaml", "json", &stdout, &stderr))
	assert.Error(t, runLoad(ctx, testLoader(), "config.json", "", "xml", &stdout, &stderr))
	assert.Empty(t, stdout.String())
}

func TestRunPutAndList(t *testing.T) {
	ctx := context.Background()
	store := resource.NewMemoryResolver(nil)

	require.NoError(t, runPut(ctx, store, "sites.json", []byte(`{"count":0}`), zap.NewNop()))
	require.NoError(t, runPut(ctx, store, "ui/logo.svg", []byte("<svg/>"), zap.NewNop()))

	err := runPut(ctx, store, "broken.json", []byte("{"), zap.NewNop())
	var de *resource.DecodeError
	assert.ErrorAs(t, err, &de)

	for _, name := range []string{"./broken.json", "ui//broken.json"} {
		err := runPut(ctx, store, name, []byte("{invalid"), zap.NewNop())
		assert.ErrorAs(t, err, &de, name)
	}
	for _, name := range []string{"../escape.json", "/abs.json", ""} {
		assert.Error(t, runPut(ctx, store, name, []byte("{}"), zap.NewNop()), name)
	}

	var out bytes.Buffer
	require.NoError(t, runList(ctx, store, "", &out))
	assert.Equal(t, "sites.json\nui/logo.svg\n", out.String())
}
