// Package uirouter serves the plane UI.
//
// Files are read from the ui/ directory of the resource search path, so a UI
// can be shipped embedded in the binary, overridden from disk or published to
// object storage. Content types follow the file extension.
//
// # HTTP Endpoints
//
//   - GET /ui/ : Serves ui/index.html.
//   - GET /ui/{path} : Serves ui/{path}.
package uirouter
