// Package jsonvalue decodes JSON text into structure values and encodes them
// back.
//
// Unlike json.Unmarshal into map[string]any, ParseValue keeps object members
// in document order and integers exact, so a decoded configuration can be
// compared against its Recon counterpart item by item.
package jsonvalue
