// Package storage provides an abstraction layer for object storage services.
//
// It wraps the MinIO Go client so that resources can be served from an S3 or
// MinIO bucket. The Client interface keeps the surface small enough to mock
// in unit tests (see core/storage/mocks).
//
// # Operations
//
//   - BucketExists: Verifies access to the target bucket.
//   - GetObject: Opens an object as a stream; missing objects fail eagerly.
//   - PutObject: Uploads content (with size and options).
//   - ListObjects: Lists objects in a bucket (supports prefix/recursive).
//
// # Usage
//
//	client, err := storage.NewClient(config)
//	rc, err := client.GetObject(ctx, "resources", "cellular.recon", minio.GetObjectOptions{})
//	if storage.IsNotFound(err) { ... }
package storage
