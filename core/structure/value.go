package structure

import (
	"bytes"
	"fmt"
	"strconv"
)

// Kind identifies the variant held by a Value.
type Kind uint8

const (
	KindAbsent Kind = iota
	KindExtant
	KindBool
	KindNum
	KindText
	KindData
	KindRecord
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindAbsent:
		return "absent"
	case KindExtant:
		return "extant"
	case KindBool:
		return "bool"
	case KindNum:
		return "num"
	case KindText:
		return "text"
	case KindData:
		return "data"
	case KindRecord:
		return "record"
	default:
		return "unknown"
	}
}

// Value is an immutable node of the structured value tree.
// The zero Value is Absent.
type Value struct {
	kind Kind

	boolVal  bool
	intVal   int64
	floatVal float64
	isFloat  bool
	textVal  string
	dataVal  []byte

	items []Item
}

// Absent returns the value that denotes nothing at all.
func Absent() Value {
	return Value{}
}

// Extant returns the value that exists but carries no data (JSON null).
func Extant() Value {
	return Value{kind: KindExtant}
}

// Bool creates a boolean value.
func Bool(v bool) Value {
	return Value{kind: KindBool, boolVal: v}
}

// Int creates an integral number.
func Int(v int64) Value {
	return Value{kind: KindNum, intVal: v}
}

// Float creates a floating point number.
func Float(v float64) Value {
	return Value{kind: KindNum, floatVal: v, isFloat: true}
}

// Text creates a string value.
func Text(v string) Value {
	return Value{kind: KindText, textVal: v}
}

// Data creates a binary value. The slice is copied.
func Data(v []byte) Value {
	return Value{kind: KindData, dataVal: append([]byte(nil), v...)}
}

// Record creates a record from items, in order.
func Record(items ...Item) Value {
	return Value{kind: KindRecord, items: items}
}

// Kind returns the variant of v.
func (v Value) Kind() Kind {
	return v.kind
}

// IsDefined reports whether v is anything other than Absent.
func (v Value) IsDefined() bool {
	return v.kind != KindAbsent
}

// IsRecord reports whether v is a record.
func (v Value) IsRecord() bool {
	return v.kind == KindRecord
}

// IsFloat reports whether a number was created from a floating point value.
func (v Value) IsFloat() bool {
	return v.kind == KindNum && v.isFloat
}

// Len returns the number of items of a record, 0 otherwise.
func (v Value) Len() int {
	return len(v.items)
}

// Items returns the items of a record. The slice must not be modified.
func (v Value) Items() []Item {
	return v.items
}

// Index returns the i-th item of a record, or an empty item if out of range.
func (v Value) Index(i int) Item {
	if i < 0 || i >= len(v.items) {
		return Item{}
	}
	return v.items[i]
}

// Get returns the value of the last attribute or slot whose key is the text
// key. Absent is returned when there is no such field.
func (v Value) Get(key string) Value {
	for i := len(v.items) - 1; i >= 0; i-- {
		item := v.items[i]
		if item.kind == itemElem {
			continue
		}
		if item.key.kind == KindText && item.key.textVal == key {
			return item.value
		}
	}
	return Absent()
}

// Path walks nested records by key.
func (v Value) Path(keys ...string) Value {
	cur := v
	for _, k := range keys {
		cur = cur.Get(k)
		if !cur.IsDefined() {
			return cur
		}
	}
	return cur
}

// Tag returns the name of the leading attribute of a record, if any.
func (v Value) Tag() string {
	if len(v.items) > 0 && v.items[0].kind == itemAttr {
		return v.items[0].key.textVal
	}
	return ""
}

// StringValue returns v as a string, or def when v is not a scalar.
func (v Value) StringValue(def string) string {
	switch v.kind {
	case KindText:
		return v.textVal
	case KindNum:
		if v.isFloat {
			return strconv.FormatFloat(v.floatVal, 'g', -1, 64)
		}
		return strconv.FormatInt(v.intVal, 10)
	case KindBool:
		return strconv.FormatBool(v.boolVal)
	default:
		return def
	}
}

// IntValue returns v as an integer, or def when v has no integral reading.
func (v Value) IntValue(def int64) int64 {
	switch v.kind {
	case KindNum:
		if v.isFloat {
			return int64(v.floatVal)
		}
		return v.intVal
	case KindText:
		if i, err := strconv.ParseInt(v.textVal, 10, 64); err == nil {
			return i
		}
	}
	return def
}

// FloatValue returns v as a float, or def when v has no numeric reading.
func (v Value) FloatValue(def float64) float64 {
	switch v.kind {
	case KindNum:
		if v.isFloat {
			return v.floatVal
		}
		return float64(v.intVal)
	case KindText:
		if f, err := strconv.ParseFloat(v.textVal, 64); err == nil {
			return f
		}
	}
	return def
}

// BoolValue returns v as a boolean, or def when v has no boolean reading.
func (v Value) BoolValue(def bool) bool {
	switch v.kind {
	case KindBool:
		return v.boolVal
	case KindText:
		if b, err := strconv.ParseBool(v.textVal); err == nil {
			return b
		}
	}
	return def
}

// DataValue returns the bytes of a Data value, nil otherwise.
func (v Value) DataValue() []byte {
	if v.kind != KindData {
		return nil
	}
	return v.dataVal
}

// Equal reports whether v and o are structurally equal. Records compare
// item by item, in order. Numbers compare by magnitude, so Int(1) equals
// Float(1).
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindAbsent, KindExtant:
		return true
	case KindBool:
		return v.boolVal == o.boolVal
	case KindNum:
		if !v.isFloat && !o.isFloat {
			return v.intVal == o.intVal
		}
		return v.FloatValue(0) == o.FloatValue(0)
	case KindText:
		return v.textVal == o.textVal
	case KindData:
		return bytes.Equal(v.dataVal, o.dataVal)
	case KindRecord:
		if len(v.items) != len(o.items) {
			return false
		}
		for i := range v.items {
			if !v.items[i].Equal(o.items[i]) {
				return false
			}
		}
		return true
	}
	return false
}

// Interface converts v into plain Go values: nil, bool, int64, float64,
// string, []byte, map[string]any or []any. Records made only of text-keyed
// fields become maps (attributes keyed "@name"); any other record becomes a
// slice in which fields appear as single-entry maps.
func (v Value) Interface() any {
	switch v.kind {
	case KindBool:
		return v.boolVal
	case KindNum:
		if v.isFloat {
			return v.floatVal
		}
		return v.intVal
	case KindText:
		return v.textVal
	case KindData:
		return v.dataVal
	case KindRecord:
		if v.isObject() {
			m := make(map[string]any, len(v.items))
			for _, item := range v.items {
				m[item.fieldName()] = item.value.Interface()
			}
			return m
		}
		list := make([]any, 0, len(v.items))
		for _, item := range v.items {
			if item.kind == itemElem {
				list = append(list, item.value.Interface())
				continue
			}
			list = append(list, map[string]any{item.fieldName(): item.value.Interface()})
		}
		return list
	default:
		return nil
	}
}

// IsObject reports whether v is a non-empty record made only of fields with
// text keys, i.e. a record that maps naturally onto a JSON object.
func (v Value) IsObject() bool {
	return v.kind == KindRecord && len(v.items) > 0 && v.isObject()
}

func (v Value) isObject() bool {
	if len(v.items) == 0 {
		return false
	}
	for _, item := range v.items {
		if item.kind == itemElem || item.key.kind != KindText {
			return false
		}
	}
	return true
}

// GoString implements fmt.GoStringer for test failure output.
func (v Value) GoString() string {
	switch v.kind {
	case KindRecord:
		var buf bytes.Buffer
		buf.WriteString("Record(")
		for i, item := range v.items {
			if i > 0 {
				buf.WriteString(", ")
			}
			buf.WriteString(item.GoString())
		}
		buf.WriteString(")")
		return buf.String()
	case KindText:
		return strconv.Quote(v.textVal)
	case KindData:
		return fmt.Sprintf("Data(%x)", v.dataVal)
	case KindAbsent, KindExtant:
		return v.kind.String()
	default:
		return v.StringValue("")
	}
}
