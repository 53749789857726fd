package recon

import (
	"encoding/base64"
	"fmt"
	"math"
	"strings"
	"unicode/utf8"

	"cellular/core/structure"
)

// Format writes v as a Recon block, the inverse of ParseBlockString.
//
// Records without leading attributes are written as bare blocks
// (a:1,b:2). Extant has no literal of its own and is only written as an
// empty slot or attribute value; a bare Extant element is written as an
// empty record. Recon has no literal for NaN or infinities either, so
// non-finite numbers are written as the text NaN, "+Inf" or "-Inf" and
// read back as text.
func Format(v structure.Value) string {
	var b strings.Builder
	switch {
	case !v.IsDefined():
	case v.IsRecord() && v.Tag() == "" && !isSingleElem(v):
		if v.Len() == 0 {
			b.WriteString("{}")
			break
		}
		writeItems(&b, v.Items())
	default:
		writeValue(&b, v)
	}
	return b.String()
}

func isSingleElem(v structure.Value) bool {
	return v.Len() == 1 && v.Index(0).IsElem()
}

func writeItems(b *strings.Builder, items []structure.Item) {
	for i, item := range items {
		if i > 0 {
			b.WriteByte(',')
		}
		writeItem(b, item)
	}
}

func writeItem(b *strings.Builder, item structure.Item) {
	switch {
	case item.IsAttr():
		writeAttr(b, item)
	case item.IsSlot():
		writeValue(b, item.Key())
		b.WriteByte(':')
		if item.Value().Kind() != structure.KindExtant {
			writeValue(b, item.Value())
		}
	case isAttrOnly(item.Value()):
		// A bare attribute item would attach to the enclosing record
		b.WriteByte('{')
		writeValue(b, item.Value())
		b.WriteByte('}')
	default:
		writeValue(b, item.Value())
	}
}

func isAttrOnly(v structure.Value) bool {
	if !v.IsRecord() || v.Len() == 0 {
		return false
	}
	for _, item := range v.Items() {
		if !item.IsAttr() {
			return false
		}
	}
	return true
}

func writeAttr(b *strings.Builder, item structure.Item) {
	b.WriteByte('@')
	b.WriteString(item.Key().StringValue(""))
	v := item.Value()
	switch {
	case v.Kind() == structure.KindExtant || !v.IsDefined():
	case v.IsRecord() && v.Len() == 0:
		b.WriteString("({})")
	case v.IsRecord() && v.Tag() == "" && v.Len() > 1:
		b.WriteByte('(')
		writeItems(b, v.Items())
		b.WriteByte(')')
	case v.IsRecord() && v.Tag() == "" && !v.Index(0).IsElem():
		b.WriteByte('(')
		writeItem(b, v.Index(0))
		b.WriteByte(')')
	default:
		b.WriteByte('(')
		writeValue(b, v)
		b.WriteByte(')')
	}
}

func writeValue(b *strings.Builder, v structure.Value) {
	switch v.Kind() {
	case structure.KindAbsent, structure.KindExtant:
		b.WriteString("{}")
	case structure.KindNum:
		if f := v.FloatValue(0); v.IsFloat() && (math.IsNaN(f) || math.IsInf(f, 0)) {
			writeText(b, v.StringValue(""))
			return
		}
		s := v.StringValue("")
		if v.IsFloat() && !strings.ContainsAny(s, ".eE") {
			s += ".0"
		}
		b.WriteString(s)
	case structure.KindBool:
		b.WriteString(v.StringValue(""))
	case structure.KindText:
		writeText(b, v.StringValue(""))
	case structure.KindData:
		b.WriteByte('%')
		b.WriteString(base64.StdEncoding.EncodeToString(v.DataValue()))
	case structure.KindRecord:
		writeRecord(b, v)
	}
}

func writeRecord(b *strings.Builder, v structure.Value) {
	items := v.Items()
	n := 0
	for n < len(items) && items[n].IsAttr() {
		writeAttr(b, items[n])
		n++
	}
	rest := items[n:]
	if n > 0 {
		if len(rest) == 0 {
			return
		}
		if len(rest) == 1 && rest[0].IsElem() && !rest[0].Value().IsRecord() {
			b.WriteByte(' ')
			writeValue(b, rest[0].Value())
			return
		}
	}
	b.WriteByte('{')
	writeItems(b, rest)
	b.WriteByte('}')
}

func writeText(b *strings.Builder, s string) {
	if isIdent(s) {
		b.WriteString(s)
		return
	}
	b.WriteByte('"')
	for _, c := range s {
		switch c {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		default:
			if c < 0x20 {
				fmt.Fprintf(b, `\u%04x`, c)
				continue
			}
			b.WriteRune(c)
		}
	}
	b.WriteByte('"')
}

func isIdent(s string) bool {
	if s == "" || s == "true" || s == "false" {
		return false
	}
	for i, c := range s {
		if i == 0 && !isIdentStart(c) {
			return false
		}
		if !isIdentChar(c) {
			return false
		}
	}
	return utf8.ValidString(s)
}
