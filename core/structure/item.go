package structure

type itemKind uint8

const (
	itemNone itemKind = iota
	itemElem
	itemAttr
	itemSlot
)

// Item is a member of a record: a bare value, an attribute (@name(value))
// or a slot (key: value).
type Item struct {
	kind  itemKind
	key   Value
	value Value
}

// Elem wraps a bare value as a record item.
func Elem(v Value) Item {
	return Item{kind: itemElem, value: v}
}

// Attr creates an attribute item.
func Attr(name string, v Value) Item {
	return Item{kind: itemAttr, key: Text(name), value: v}
}

// Slot creates a keyed item.
func Slot(key, v Value) Item {
	return Item{kind: itemSlot, key: key, value: v}
}

// Field is shorthand for a slot keyed by text.
func Field(key string, v Value) Item {
	return Slot(Text(key), v)
}

// IsElem reports whether the item is a bare value.
func (i Item) IsElem() bool { return i.kind == itemElem }

// IsAttr reports whether the item is an attribute.
func (i Item) IsAttr() bool { return i.kind == itemAttr }

// IsSlot reports whether the item is a slot.
func (i Item) IsSlot() bool { return i.kind == itemSlot }

// Key returns the key of a slot, the name (as Text) of an attribute, or
// Absent for a bare value.
func (i Item) Key() Value { return i.key }

// Value returns the item's value.
func (i Item) Value() Value { return i.value }

// Equal compares two items structurally.
func (i Item) Equal(o Item) bool {
	return i.kind == o.kind && i.key.Equal(o.key) && i.value.Equal(o.value)
}

func (i Item) fieldName() string {
	if i.kind == itemAttr {
		return "@" + i.key.textVal
	}
	return i.key.textVal
}

// GoString implements fmt.GoStringer.
func (i Item) GoString() string {
	switch i.kind {
	case itemAttr:
		return "@" + i.key.textVal + "(" + i.value.GoString() + ")"
	case itemSlot:
		return i.key.GoString() + ": " + i.value.GoString()
	default:
		return i.value.GoString()
	}
}
