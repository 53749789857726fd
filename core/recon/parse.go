package recon

import (
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"cellular/core/structure"
)

// Position is a location in the source text.
type Position struct {
	Line   int
	Column int
	Offset int
}

// String returns the position as "line:column".
func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// SyntaxError reports malformed Recon input.
type SyntaxError struct {
	Message string
	Pos     Position
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s at %s", e.Message, e.Pos)
}

// ParseBlock reads all of r and parses it as a Recon block.
//
// A block is a sequence of items separated by commas, semicolons or
// newlines. An empty block is Absent, a block holding a single bare value is
// that value, and anything else is a record of the items.
func ParseBlock(r io.Reader) (structure.Value, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return structure.Absent(), err
	}
	return ParseBlockString(string(src))
}

// ParseBlockString parses src as a Recon block.
func ParseBlockString(src string) (structure.Value, error) {
	if !utf8.ValidString(src) {
		return structure.Absent(), errors.New("recon input is not valid UTF-8")
	}

	p := &parser{src: src}
	items, err := p.parseItems(0)
	if err != nil {
		return structure.Absent(), err
	}

	switch {
	case len(items) == 0:
		return structure.Absent(), nil
	case len(items) == 1 && items[0].IsElem():
		return items[0].Value(), nil
	default:
		return structure.Record(items...), nil
	}
}

type parser struct {
	src string
	pos int
}

func (p *parser) eof() bool {
	return p.pos >= len(p.src)
}

func (p *parser) peek() rune {
	if p.eof() {
		return -1
	}
	r, _ := utf8.DecodeRuneInString(p.src[p.pos:])
	return r
}

func (p *parser) next() rune {
	r, size := utf8.DecodeRuneInString(p.src[p.pos:])
	p.pos += size
	return r
}

func (p *parser) errorf(format string, args ...any) error {
	return &SyntaxError{Message: fmt.Sprintf(format, args...), Pos: p.position()}
}

func (p *parser) position() Position {
	consumed := p.src[:p.pos]
	line := strings.Count(consumed, "\n") + 1
	col := utf8.RuneCountInString(consumed[strings.LastIndexByte(consumed, '\n')+1:]) + 1
	return Position{Line: line, Column: col, Offset: p.pos}
}

// skipSpace skips blanks and comments but not newlines.
func (p *parser) skipSpace() {
	for !p.eof() {
		switch c := p.peek(); {
		case c == ' ' || c == '\t' || c == '\uFEFF':
			p.next()
		case c == '#':
			for !p.eof() && p.peek() != '\n' {
				p.next()
			}
		default:
			return
		}
	}
}

// skipBlank skips blanks, comments and newlines.
func (p *parser) skipBlank() {
	for {
		p.skipSpace()
		if c := p.peek(); c == '\n' || c == '\r' {
			p.next()
			continue
		}
		return
	}
}

// parseItems parses items until closer (or end of input when closer is 0).
// The closer itself is consumed.
func (p *parser) parseItems(closer rune) ([]structure.Item, error) {
	var items []structure.Item
	for {
		p.skipBlank()
		if p.eof() {
			if closer != 0 {
				return nil, p.errorf("expected %q", closer)
			}
			return items, nil
		}
		if closer != 0 && p.peek() == closer {
			p.next()
			return items, nil
		}

		parsed, err := p.parseItem()
		if err != nil {
			return nil, err
		}
		items = append(items, parsed...)

		p.skipSpace()
		switch c := p.peek(); {
		case c == ',' || c == ';' || c == '\n' || c == '\r':
			p.next()
		case c == -1 || (closer != 0 && c == closer):
		default:
			return nil, p.errorf("unexpected %q, expected separator", c)
		}
	}
}

// parseItem parses one item. Attributes standing alone as an item belong to
// the enclosing record, so they are returned as attribute items.
func (p *parser) parseItem() ([]structure.Item, error) {
	key, bare, err := p.parseValueBody()
	if err != nil {
		return nil, err
	}
	p.skipSpace()
	if p.peek() != ':' {
		if bare {
			return key.Items(), nil
		}
		return []structure.Item{structure.Elem(key)}, nil
	}
	p.next()
	p.skipSpace()
	if p.atItemEnd() {
		return []structure.Item{structure.Slot(key, structure.Extant())}, nil
	}
	value, err := p.parseValue()
	if err != nil {
		return nil, err
	}
	return []structure.Item{structure.Slot(key, value)}, nil
}

func (p *parser) atItemEnd() bool {
	switch p.peek() {
	case -1, ',', ';', '\n', '\r', ':', ')', '}', '#':
		return true
	}
	return false
}

// parseValue parses a primary value with optional leading attributes.
// Attributes followed by a record merge into that record.
func (p *parser) parseValue() (structure.Value, error) {
	v, _, err := p.parseValueBody()
	return v, err
}

// parseValueBody is parseValue that also reports whether the value was made
// of attributes only, with no body after them.
func (p *parser) parseValueBody() (structure.Value, bool, error) {
	var attrs []structure.Item
	for p.peek() == '@' {
		attr, err := p.parseAttr()
		if err != nil {
			return structure.Absent(), false, err
		}
		attrs = append(attrs, attr)
		p.skipSpace()
	}

	if len(attrs) == 0 {
		v, err := p.parsePrimary()
		return v, false, err
	}
	if p.atItemEnd() {
		return structure.Record(attrs...), true, nil
	}

	body, err := p.parsePrimary()
	if err != nil {
		return structure.Absent(), false, err
	}
	if body.IsRecord() {
		return structure.Record(append(attrs, body.Items()...)...), false, nil
	}
	return structure.Record(append(attrs, structure.Elem(body))...), false, nil
}

func (p *parser) parseAttr() (structure.Item, error) {
	p.next() // '@'
	if !isIdentStart(p.peek()) {
		return structure.Item{}, p.errorf("expected attribute name")
	}
	name := p.parseIdent()
	if p.peek() != '(' {
		return structure.Attr(name, structure.Extant()), nil
	}
	p.next()
	items, err := p.parseItems(')')
	if err != nil {
		return structure.Item{}, err
	}
	switch {
	case len(items) == 0:
		return structure.Attr(name, structure.Extant()), nil
	case len(items) == 1 && items[0].IsElem():
		return structure.Attr(name, items[0].Value()), nil
	default:
		return structure.Attr(name, structure.Record(items...)), nil
	}
}

func (p *parser) parsePrimary() (structure.Value, error) {
	switch c := p.peek(); {
	case c == '{':
		p.next()
		items, err := p.parseItems('}')
		if err != nil {
			return structure.Absent(), err
		}
		return structure.Record(items...), nil
	case c == '"' || c == '\'':
		s, err := p.parseString(c)
		if err != nil {
			return structure.Absent(), err
		}
		return structure.Text(s), nil
	case c == '%':
		return p.parseData()
	case c == '-' || (c >= '0' && c <= '9'):
		return p.parseNumber()
	case isIdentStart(c):
		ident := p.parseIdent()
		switch ident {
		case "true":
			return structure.Bool(true), nil
		case "false":
			return structure.Bool(false), nil
		}
		return structure.Text(ident), nil
	case c == -1:
		return structure.Absent(), p.errorf("unexpected end of input")
	default:
		return structure.Absent(), p.errorf("unexpected %q", c)
	}
}

func isIdentStart(c rune) bool {
	return c == '_' || unicode.IsLetter(c)
}

func isIdentChar(c rune) bool {
	return c == '_' || c == '-' || unicode.IsLetter(c) || unicode.IsDigit(c)
}

func (p *parser) parseIdent() string {
	start := p.pos
	p.next()
	for !p.eof() && isIdentChar(p.peek()) {
		p.next()
	}
	return p.src[start:p.pos]
}

func (p *parser) parseString(quote rune) (string, error) {
	p.next()
	var b strings.Builder
	for {
		if p.eof() {
			return "", p.errorf("unterminated string")
		}
		c := p.next()
		switch c {
		case quote:
			return b.String(), nil
		case '\\':
			if p.eof() {
				return "", p.errorf("unterminated escape")
			}
			esc := p.next()
			switch esc {
			case '"', '\'', '\\', '/', '@', '{', '}', '[', ']':
				b.WriteRune(esc)
			case 'b':
				b.WriteByte('\b')
			case 'f':
				b.WriteByte('\f')
			case 'n':
				b.WriteByte('\n')
			case 'r':
				b.WriteByte('\r')
			case 't':
				b.WriteByte('\t')
			case 'u':
				if p.pos+4 > len(p.src) {
					return "", p.errorf("truncated unicode escape")
				}
				code, err := strconv.ParseUint(p.src[p.pos:p.pos+4], 16, 32)
				if err != nil {
					return "", p.errorf("invalid unicode escape")
				}
				p.pos += 4
				b.WriteRune(rune(code))
			default:
				return "", p.errorf("invalid escape %q", esc)
			}
		default:
			b.WriteRune(c)
		}
	}
}

func (p *parser) parseData() (structure.Value, error) {
	p.next() // '%'
	start := p.pos
	for !p.eof() {
		c := p.peek()
		if (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z') || (c >= '0' && c <= '9') || c == '+' || c == '/' || c == '=' {
			p.next()
			continue
		}
		break
	}
	data, err := base64.StdEncoding.DecodeString(p.src[start:p.pos])
	if err != nil {
		return structure.Absent(), p.errorf("invalid base64 data: %v", err)
	}
	return structure.Data(data), nil
}

func (p *parser) parseNumber() (structure.Value, error) {
	start := p.pos
	if p.peek() == '-' {
		p.next()
	}

	if strings.HasPrefix(p.src[p.pos:], "0x") {
		p.pos += 2
		digits := p.pos
		for !p.eof() && isHex(p.peek()) {
			p.next()
		}
		u, err := strconv.ParseUint(p.src[digits:p.pos], 16, 64)
		if err != nil {
			return structure.Absent(), p.errorf("invalid hex number")
		}
		if p.src[start] == '-' {
			if u > 1<<63 {
				return structure.Absent(), p.errorf("hex number out of range")
			}
			return structure.Int(int64(-u)), nil
		}
		if u > math.MaxInt64 {
			return structure.Absent(), p.errorf("hex number out of range")
		}
		return structure.Int(int64(u)), nil
	}

	if !isDigit(p.peek()) {
		return structure.Absent(), p.errorf("expected digit")
	}
	isFloat := false
	p.skipDigits()
	if p.peek() == '.' {
		isFloat = true
		p.next()
		if !isDigit(p.peek()) {
			return structure.Absent(), p.errorf("expected fraction digits")
		}
		p.skipDigits()
	}
	if c := p.peek(); c == 'e' || c == 'E' {
		isFloat = true
		p.next()
		if c := p.peek(); c == '+' || c == '-' {
			p.next()
		}
		if !isDigit(p.peek()) {
			return structure.Absent(), p.errorf("expected exponent digits")
		}
		p.skipDigits()
	}

	lit := p.src[start:p.pos]
	if !isFloat {
		if i, err := strconv.ParseInt(lit, 10, 64); err == nil {
			return structure.Int(i), nil
		}
	}
	f, err := strconv.ParseFloat(lit, 64)
	if err != nil {
		return structure.Absent(), p.errorf("invalid number %q", lit)
	}
	return structure.Float(f), nil
}

func (p *parser) skipDigits() {
	for !p.eof() && isDigit(p.peek()) {
		p.next()
	}
}

func isDigit(c rune) bool {
	return c >= '0' && c <= '9'
}

func isHex(c rune) bool {
	return isDigit(c) || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}
