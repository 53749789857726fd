package resource

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"
	"testing/fstest"
	"testing/iotest"

	"cellular/core/jsonvalue"
	"cellular/core/recon"
	"cellular/core/structure"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// countingStream records how many times it was closed.
type countingStream struct {
	io.Reader
	mu       sync.Mutex
	closes   int
	closeErr error
}

func (s *countingStream) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closes++
	return s.closeErr
}

func (s *countingStream) closeCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closes
}

// countingResolver serves in-memory resources and keeps every stream it
// opened so tests can match opens against closes.
type countingResolver struct {
	mu       sync.Mutex
	content  map[string]string
	closeErr error
	readErr  error
	openErr  error
	streams  []*countingStream
}

func (r *countingResolver) Open(_ context.Context, name string) (io.ReadCloser, error) {
	if r.openErr != nil {
		return nil, r.openErr
	}
	body, ok := r.content[name]
	if !ok {
		return nil, notFound(name)
	}

	var reader io.Reader = strings.NewReader(body)
	if r.readErr != nil {
		reader = io.MultiReader(reader, iotest.ErrReader(r.readErr))
	}
	s := &countingStream{Reader: reader, closeErr: r.closeErr}

	r.mu.Lock()
	r.streams = append(r.streams, s)
	r.mu.Unlock()
	return s, nil
}

func (r *countingResolver) assertBalanced(t *testing.T, wantOpens int) {
	t.Helper()
	r.mu.Lock()
	defer r.mu.Unlock()
	assert.Len(t, r.streams, wantOpens)
	for i, s := range r.streams {
		assert.Equal(t, 1, s.closeCount(), "stream %d must be closed exactly once", i)
	}
}

func TestLoader_Absent(t *testing.T) {
	res := &countingResolver{content: map[string]string{}}
	l := NewLoader(res, nil)

	for _, format := range []Format{FormatJSON, FormatRecon} {
		v, ok, err := l.Load(context.Background(), "config.json", format)
		assert.NoError(t, err)
		assert.False(t, ok)
		assert.False(t, v.IsDefined())
	}

	v, ok, err := l.LoadJSON(context.Background(), "config.json")
	assert.NoError(t, err)
	assert.False(t, ok)
	assert.False(t, v.IsDefined())

	v, ok, err = l.LoadRecon(context.Background(), "config.recon")
	assert.NoError(t, err)
	assert.False(t, ok)
	assert.False(t, v.IsDefined())

	res.assertBalanced(t, 0)
}

func TestLoader_LoadJSON(t *testing.T) {
	res := &countingResolver{content: map[string]string{
		"config.json": `{"a":1}`,
		"sites.json":  `{"sites":[{"id":"s1","lat":37.7,"on":true}],"count":1}`,
	}}
	l := NewLoader(res, zap.NewNop())

	t.Run("SingleKey", func(t *testing.T) {
		v, ok, err := l.LoadJSON(context.Background(), "config.json")
		require.NoError(t, err)
		require.True(t, ok)
		assert.True(t, structure.Record(structure.Field("a", structure.Int(1))).Equal(v))
	})

	t.Run("EqualsDirectParse", func(t *testing.T) {
		v, ok, err := l.LoadJSON(context.Background(), "sites.json")
		require.NoError(t, err)
		require.True(t, ok)

		direct, err := jsonvalue.ParseValue(strings.NewReader(res.content["sites.json"]))
		require.NoError(t, err)
		assert.True(t, direct.Equal(v))

		encoded, err := jsonvalue.Encode(v)
		require.NoError(t, err)
		again, err := jsonvalue.ParseValue(strings.NewReader(string(encoded)))
		require.NoError(t, err)
		assert.True(t, v.Equal(again), "JSON round trip")
	})

	res.assertBalanced(t, 2)
}

func TestLoader_LoadRecon(t *testing.T) {
	content := "@plane(cellular)\nname: \"Cellular\"\nui: {enabled: true}\n"
	res := &countingResolver{content: map[string]string{
		"config.recon": "a:1,b:2",
		"plane.recon":  content,
	}}
	l := NewLoader(res, zap.NewNop())

	v, ok, err := l.LoadRecon(context.Background(), "config.recon")
	require.NoError(t, err)
	require.True(t, ok)
	want := structure.Record(structure.Field("a", structure.Int(1)), structure.Field("b", structure.Int(2)))
	assert.True(t, want.Equal(v))

	v, ok, err = l.LoadRecon(context.Background(), "plane.recon")
	require.NoError(t, err)
	require.True(t, ok)
	direct, err := recon.ParseBlockString(content)
	require.NoError(t, err)
	assert.True(t, direct.Equal(v))
	assert.Equal(t, "plane", v.Tag())
	assert.Equal(t, "cellular", v.Index(0).Value().StringValue(""))
	assert.Equal(t, "Cellular", v.Get("name").StringValue(""))

	res.assertBalanced(t, 2)
}

func TestLoader_DecodeError(t *testing.T) {
	res := &countingResolver{content: map[string]string{
		"config.json":  "{invalid",
		"config.recon": "{a:1",
		"empty.json":   "",
		"binary.json":  "\xff\xfe",
	}}
	l := NewLoader(res, zap.NewNop())

	cases := []struct {
		name   string
		format Format
	}{
		{"config.json", FormatJSON},
		{"config.recon", FormatRecon},
		{"empty.json", FormatJSON},
		{"binary.json", FormatJSON},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			v, ok, err := l.Load(context.Background(), tc.name, tc.format)
			require.Error(t, err)
			assert.False(t, ok)
			assert.False(t, v.IsDefined())

			var de *DecodeError
			require.ErrorAs(t, err, &de)
			assert.Equal(t, tc.name, de.Name)
			assert.Equal(t, tc.format, de.Format)
		})
	}

	_, _, err := l.LoadJSON(context.Background(), "config.json")
	var syntaxErr *jsonvalue.SyntaxError
	assert.ErrorAs(t, err, &syntaxErr)

	_, _, err = l.LoadRecon(context.Background(), "config.recon")
	var reconErr *recon.SyntaxError
	assert.ErrorAs(t, err, &reconErr)

	res.assertBalanced(t, 6)
}

func TestLoader_ReadErrorIsDecodeError(t *testing.T) {
	readErr := errors.New("disk on fire")
	res := &countingResolver{content: map[string]string{"config.json": `{"a":`}, readErr: readErr}
	l := NewLoader(res, zap.NewNop())

	v, ok, err := l.LoadJSON(context.Background(), "config.json")
	var de *DecodeError
	require.ErrorAs(t, err, &de)
	assert.ErrorIs(t, err, readErr)
	assert.False(t, ok)
	assert.False(t, v.IsDefined())
	res.assertBalanced(t, 1)
}

func TestLoader_ResolverFailureIsDecodeError(t *testing.T) {
	openErr := errors.New("connection reset")
	l := NewLoader(&countingResolver{openErr: openErr}, zap.NewNop())

	_, ok, err := l.LoadRecon(context.Background(), "config.recon")
	var de *DecodeError
	require.ErrorAs(t, err, &de)
	assert.ErrorIs(t, err, openErr)
	assert.False(t, ok)
}

func TestLoader_CloseFailureIsIgnored(t *testing.T) {
	closeErr := errors.New("close failed")
	core, logs := observer.New(zapcore.DebugLevel)
	res := &countingResolver{
		content: map[string]string{
			"good.json": `{"a":1}`,
			"bad.json":  "{invalid",
		},
		closeErr: closeErr,
	}
	l := NewLoader(res, zap.New(core))

	v, ok, err := l.LoadJSON(context.Background(), "good.json")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, int64(1), v.Get("a").IntValue(0))

	_, ok, err = l.LoadJSON(context.Background(), "bad.json")
	var de *DecodeError
	require.ErrorAs(t, err, &de)
	assert.NotErrorIs(t, err, closeErr)
	assert.False(t, ok)

	res.assertBalanced(t, 2)
	assert.Equal(t, 2, logs.FilterMessage("Ignoring resource close error").Len())
}

func TestLoader_EmptyResourceIsNotAbsent(t *testing.T) {
	res := &countingResolver{content: map[string]string{"empty.recon": ""}}
	l := NewLoader(res, zap.NewNop())

	v, ok, err := l.LoadRecon(context.Background(), "empty.recon")
	require.NoError(t, err)
	assert.True(t, ok, "an empty resource exists")
	assert.False(t, v.IsDefined(), "an empty block decodes to Absent")
	res.assertBalanced(t, 1)
}

func TestLoader_StripsBOM(t *testing.T) {
	res := &countingResolver{content: map[string]string{"bom.json": "\xEF\xBB\xBF{\"a\":1}"}}
	l := NewLoader(res, zap.NewNop())

	v, ok, err := l.LoadJSON(context.Background(), "bom.json")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, int64(1), v.Get("a").IntValue(0))
}

func TestLoader_UnknownFormat(t *testing.T) {
	res := &countingResolver{content: map[string]string{"a.yaml": "a: 1"}}
	l := NewLoader(res, zap.NewNop())

	_, ok, err := l.Load(context.Background(), "a.yaml", Format("yaml"))
	require.Error(t, err)
	var de *DecodeError
	assert.False(t, errors.As(err, &de))
	assert.False(t, ok)
	res.assertBalanced(t, 0)
}

func TestLoader_Concurrent(t *testing.T) {
	fsys := fstest.MapFS{
		"a.json":  {Data: []byte(`{"n":1}`)},
		"b.recon": {Data: []byte("n:2")},
	}
	l := NewLoader(NewFSResolver(fsys), zap.NewNop())

	var wg sync.WaitGroup
	errs := make(chan error, 64)
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if v, ok, err := l.LoadJSON(context.Background(), "a.json"); err != nil || !ok || v.Get("n").IntValue(0) != 1 {
				errs <- errors.New("bad json load")
			}
			if v, ok, err := l.LoadRecon(context.Background(), "b.recon"); err != nil || !ok || v.Get("n").IntValue(0) != 2 {
				errs <- errors.New("bad recon load")
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Error(err)
	}
}

func TestDecodeError_Message(t *testing.T) {
	err := &DecodeError{Name: "config.json", Format: FormatJSON, Err: errors.New("boom")}
	assert.Equal(t, `failed to decode json resource "config.json": boom`, err.Error())
}
