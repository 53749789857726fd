// Package structure defines the structured value tree shared by the JSON and
// Recon decoders.
//
// A Value is one of Absent, Extant, Bool, Num, Text, Data or Record. Records
// are ordered sequences of items; an item is a bare value, an attribute
// (@name(value)) or a slot (key: value). JSON objects decode to records of
// text-keyed slots in document order and JSON arrays to records of bare values.
//
// # Usage
//
//	v := structure.Record(
//	    structure.Field("a", structure.Int(1)),
//	    structure.Field("b", structure.Int(2)),
//	)
//	v.Get("b").IntValue(0) // 2
package structure
