// Package middleware contains HTTP middleware for the Fiber application.
//
// It provides cross-cutting concerns that sit between the request and the handler.
//
// # Components
//
//   - auth: API key validation (X-API-Key header or api_key query) protecting the
//     plane endpoints. Path prefixes such as /ui/ can be exempted.
//   - rayid: Tags every request with a ray ID, stored in Locals under "ray_id"
//     and echoed in the X-Ray-ID response header.
//
// These middleware components are registered globally by the start command.
package middleware
