package jsonvalue

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"math"
	"strconv"

	"cellular/core/structure"
)

// Encode writes v as compact JSON.
//
// Records of text-keyed fields become objects; every other record becomes an
// array in which fields are written as single-member objects (attributes
// keyed "@name"). Absent and Extant both encode as null and Data as a base64
// string.
func Encode(v structure.Value) ([]byte, error) {
	var buf bytes.Buffer
	if err := encode(&buf, v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// EncodeIndent is Encode followed by json.Indent.
func EncodeIndent(v structure.Value, prefix, indent string) ([]byte, error) {
	raw, err := Encode(v)
	if err != nil {
		return nil, err
	}
	var out bytes.Buffer
	if err := json.Indent(&out, raw, prefix, indent); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

func encode(buf *bytes.Buffer, v structure.Value) error {
	switch v.Kind() {
	case structure.KindAbsent, structure.KindExtant:
		buf.WriteString("null")
	case structure.KindBool:
		buf.WriteString(strconv.FormatBool(v.BoolValue(false)))
	case structure.KindNum:
		if !v.IsFloat() {
			buf.WriteString(strconv.FormatInt(v.IntValue(0), 10))
			return nil
		}
		f := v.FloatValue(0)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return fmt.Errorf("cannot encode %v as JSON", f)
		}
		buf.WriteString(strconv.FormatFloat(f, 'g', -1, 64))
	case structure.KindText:
		writeString(buf, v.StringValue(""))
	case structure.KindData:
		writeString(buf, base64.StdEncoding.EncodeToString(v.DataValue()))
	case structure.KindRecord:
		return encodeRecord(buf, v)
	default:
		return fmt.Errorf("unsupported value kind %s", v.Kind())
	}
	return nil
}

func encodeRecord(buf *bytes.Buffer, v structure.Value) error {
	if v.IsObject() {
		buf.WriteByte('{')
		for i, item := range v.Items() {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := encodeField(buf, item); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
		return nil
	}

	buf.WriteByte('[')
	for i, item := range v.Items() {
		if i > 0 {
			buf.WriteByte(',')
		}
		if item.IsElem() {
			if err := encode(buf, item.Value()); err != nil {
				return err
			}
			continue
		}
		buf.WriteByte('{')
		if err := encodeField(buf, item); err != nil {
			return err
		}
		buf.WriteByte('}')
	}
	buf.WriteByte(']')
	return nil
}

func encodeField(buf *bytes.Buffer, item structure.Item) error {
	name := item.Key().StringValue("")
	if item.IsAttr() {
		name = "@" + name
	}
	writeString(buf, name)
	buf.WriteByte(':')
	return encode(buf, item.Value())
}

func writeString(buf *bytes.Buffer, s string) {
	// json.Marshal of a string cannot fail.
	b, _ := json.Marshal(s)
	buf.Write(b)
}
