// Package resource loads named configuration resources and decodes them as
// JSON or Recon.
//
// # Resolvers
//
// A Resolver maps a resource name to a stream. The package ships resolvers
// for file systems (embed.FS, os.DirFS), S3/MinIO buckets, database
// tables and in-memory maps, plus a ChainResolver that searches several of
// them in order the way a class path does. Absence is reported as fs.ErrNotExist.
//
// # Loader
//
// Loader.LoadJSON and Loader.LoadRecon resolve a name, read the whole stream
// as UTF-8 and parse it:
//
//   - missing resource: ok == false, err == nil
//   - unreadable or malformed resource: *DecodeError
//   - otherwise: the decoded value, ok == true
//
// The stream is always closed before returning; close errors are logged at
// debug level and dropped.
//
// # Usage
//
//	loader := resource.NewLoader(resource.NewFSResolver(resources.FS), log)
//	cfg, ok, err := loader.LoadRecon(ctx, "cellular.recon")
//	if err != nil {
//	    return err // malformed configuration
//	}
//	if !ok {
//	    // not configured, use defaults
//	}
package resource
