package jsonvalue

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"cellular/core/structure"
)

// SyntaxError reports malformed JSON input.
type SyntaxError struct {
	// Offset is the byte offset at which the decoder stopped.
	Offset int64
	Err    error
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("invalid JSON at offset %d: %v", e.Offset, e.Err)
}

func (e *SyntaxError) Unwrap() error {
	return e.Err
}

// ParseValue decodes exactly one JSON value from r. Object members keep
// their document order. Trailing data after the value is an error.
func ParseValue(r io.Reader) (structure.Value, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	v, err := parseValue(dec)
	if err != nil {
		return structure.Absent(), wrap(dec, err)
	}

	if _, err := dec.Token(); err != io.EOF {
		if err == nil {
			err = errors.New("unexpected data after top-level value")
		}
		return structure.Absent(), wrap(dec, err)
	}

	return v, nil
}

func parseValue(dec *json.Decoder) (structure.Value, error) {
	tok, err := dec.Token()
	if err != nil {
		if err == io.EOF {
			return structure.Absent(), io.ErrUnexpectedEOF
		}
		return structure.Absent(), err
	}

	switch t := tok.(type) {
	case nil:
		return structure.Extant(), nil
	case bool:
		return structure.Bool(t), nil
	case string:
		return structure.Text(t), nil
	case json.Number:
		return parseNumber(t)
	case json.Delim:
		switch t {
		case '{':
			return parseObject(dec)
		case '[':
			return parseArray(dec)
		}
		return structure.Absent(), fmt.Errorf("unexpected delimiter %q", t)
	}
	return structure.Absent(), fmt.Errorf("unexpected token %v", tok)
}

func parseObject(dec *json.Decoder) (structure.Value, error) {
	var items []structure.Item
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return structure.Absent(), err
		}
		key, ok := tok.(string)
		if !ok {
			return structure.Absent(), fmt.Errorf("object key must be a string, got %v", tok)
		}
		v, err := parseValue(dec)
		if err != nil {
			return structure.Absent(), fmt.Errorf("object[%q]: %w", key, err)
		}
		items = append(items, structure.Field(key, v))
	}
	if _, err := dec.Token(); err != nil {
		return structure.Absent(), err
	}
	return structure.Record(items...), nil
}

func parseArray(dec *json.Decoder) (structure.Value, error) {
	var items []structure.Item
	for i := 0; dec.More(); i++ {
		v, err := parseValue(dec)
		if err != nil {
			return structure.Absent(), fmt.Errorf("array[%d]: %w", i, err)
		}
		items = append(items, structure.Elem(v))
	}
	if _, err := dec.Token(); err != nil {
		return structure.Absent(), err
	}
	return structure.Record(items...), nil
}

// parseNumber keeps integers exact and falls back to float64 for fractions
// and integers outside the int64 range.
func parseNumber(n json.Number) (structure.Value, error) {
	if i, err := n.Int64(); err == nil {
		return structure.Int(i), nil
	}
	f, err := n.Float64()
	if err != nil {
		return structure.Absent(), fmt.Errorf("invalid number %q: %w", n, err)
	}
	return structure.Float(f), nil
}

func wrap(dec *json.Decoder, err error) error {
	var se *SyntaxError
	if errors.As(err, &se) {
		return err
	}
	return &SyntaxError{Offset: dec.InputOffset(), Err: err}
}
