// Package recon parses and formats Recon, a compact structured-data notation.
//
// Recon writes records without mandatory braces at the top level:
//
//	@plane(cellular)
//	name: "Cellular Network"
//	ui: { enabled: true }
//	resources: { "sites.json", "towers.recon" }
//
// Supported syntax: records {a:1, b}, attributes @name and @name(args),
// slots key: value, quoted strings, identifiers, true/false, decimal and 0x
// hex numbers, %base64 data and # line comments. Items are separated by
// commas, semicolons or newlines.
package recon
