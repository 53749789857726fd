// Package plane provides the cellular plane.
//
// On startup the plane loads its configuration resource (cellular.recon by
// default, falling back to cellular.json) through the resource loader. A
// missing configuration leaves the plane on defaults. A configuration that
// cannot be decoded aborts startup.
//
// # Configuration
//
//	@plane(cellular)
//	name: "Cellular Network"
//	ui: {enabled: true}
//	resources: {sites: "sites.json"}
//
// # HTTP Endpoints
//
//   - GET /plane : Plane name, configuration source and exposed resources.
//   - GET /plane/resources/{name} : Decoded resource as JSON (?format=json|recon, ?as=recon).
package plane
