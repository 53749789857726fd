// Package resources holds the resources compiled into the cellular binary.
// They form the "embed" source at the end of the default search path.
package resources

import "embed"

// FS is the embedded classpath.
//
//go:embed cellular.recon sites.json ui
var FS embed.FS
