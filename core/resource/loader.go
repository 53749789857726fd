package resource

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"unicode/utf8"

	"cellular/core/structure"

	"go.uber.org/zap"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// DecodeError is returned when a resource exists but cannot be read or
// parsed. It is never returned for a missing resource.
type DecodeError struct {
	Name   string
	Format Format
	Err    error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("failed to decode %s resource %q: %v", e.Format, e.Name, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// Loader resolves named resources and decodes them into structured values.
// It holds no mutable state and is safe for concurrent use.
type Loader struct {
	resolver Resolver
	logger   *zap.Logger
}

// NewLoader creates a loader over resolver. A nil logger disables logging.
func NewLoader(resolver Resolver, logger *zap.Logger) *Loader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loader{resolver: resolver, logger: logger}
}

// Resolver returns the resolver the loader reads from.
func (l *Loader) Resolver() Resolver {
	return l.resolver
}

// LoadJSON loads name and decodes it as a single JSON value.
// ok is false, with a nil error, when the resource does not exist.
func (l *Loader) LoadJSON(ctx context.Context, name string) (structure.Value, bool, error) {
	return l.Load(ctx, name, FormatJSON)
}

// LoadRecon loads name and decodes it as a Recon block.
// ok is false, with a nil error, when the resource does not exist.
func (l *Loader) LoadRecon(ctx context.Context, name string) (structure.Value, bool, error) {
	return l.Load(ctx, name, FormatRecon)
}

// Load loads name and decodes it with format.
//
// The outcome is exactly one of: a value (ok true), absence (ok false, nil
// error) or a *DecodeError. The stream, when one was opened, is closed before
// Load returns; a failure to close it is logged and otherwise ignored.
func (l *Loader) Load(ctx context.Context, name string, format Format) (structure.Value, bool, error) {
	parse, err := format.parser()
	if err != nil {
		return structure.Absent(), false, err
	}

	stream, err := l.resolver.Open(ctx, name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			l.logger.Debug("Resource not found", zap.String("resource", name))
			return structure.Absent(), false, nil
		}
		return structure.Absent(), false, &DecodeError{Name: name, Format: format, Err: err}
	}
	defer l.release(name, stream)

	value, err := decode(stream, parse)
	if err != nil {
		return structure.Absent(), false, &DecodeError{Name: name, Format: format, Err: err}
	}

	l.logger.Debug("Resource loaded",
		zap.String("resource", name),
		zap.String("format", string(format)),
		zap.Stringer("kind", value.Kind()),
	)
	return value, true, nil
}

func (l *Loader) release(name string, stream io.Closer) {
	if err := stream.Close(); err != nil {
		l.logger.Debug("Ignoring resource close error", zap.String("resource", name), zap.Error(err))
	}
}

func decode(stream io.Reader, parse parseFunc) (structure.Value, error) {
	data, err := io.ReadAll(stream)
	if err != nil {
		return structure.Absent(), fmt.Errorf("failed to read resource: %w", err)
	}
	data = bytes.TrimPrefix(data, utf8BOM)
	if !utf8.Valid(data) {
		return structure.Absent(), errors.New("resource is not valid UTF-8")
	}
	return parse(bytes.NewReader(data))
}
