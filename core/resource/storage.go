package resource

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path"
	"sort"
	"strings"

	"cellular/core/storage"

	"github.com/minio/minio-go/v7"
)

// StorageResolver resolves resources from objects in an S3/MinIO bucket.
// Resource "a/b.json" maps to object "<prefix>/a/b.json".
type StorageResolver struct {
	client storage.Client
	bucket string
	prefix string
}

// NewStorageResolver creates a resolver over bucket, optionally rooted at
// prefix.
func NewStorageResolver(client storage.Client, bucket, prefix string) *StorageResolver {
	return &StorageResolver{
		client: client,
		bucket: bucket,
		prefix: strings.Trim(prefix, "/"),
	}
}

func (r *StorageResolver) objectName(clean string) string {
	if r.prefix == "" {
		return clean
	}
	return path.Join(r.prefix, clean)
}

// Open fetches the object for name.
func (r *StorageResolver) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	clean, ok := cleanName(name)
	if !ok {
		return nil, notFound(name)
	}

	reader, err := r.client.GetObject(ctx, r.bucket, r.objectName(clean), minio.GetObjectOptions{})
	if err != nil {
		if storage.IsNotFound(err) {
			return nil, notFound(name)
		}
		return nil, fmt.Errorf("failed to get object %s: %w", r.objectName(clean), err)
	}
	return reader, nil
}

// List returns resource names (prefix stripped) of the objects under prefix.
func (r *StorageResolver) List(ctx context.Context, prefix string) ([]string, error) {
	listPrefix := r.prefix
	if listPrefix != "" {
		listPrefix += "/"
	}

	var names []string
	for obj := range r.client.ListObjects(ctx, r.bucket, minio.ListObjectsOptions{Prefix: listPrefix, Recursive: true}) {
		if obj.Err != nil {
			return nil, fmt.Errorf("failed to list objects: %w", obj.Err)
		}
		name := strings.TrimPrefix(obj.Key, listPrefix)
		if name == "" || strings.HasSuffix(name, "/") || !matchesPrefix(name, prefix) {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// Put uploads content as the object for name.
func (r *StorageResolver) Put(ctx context.Context, name string, content []byte) error {
	clean, ok := cleanName(name)
	if !ok {
		return fmt.Errorf("invalid resource name %q", name)
	}
	_, err := r.client.PutObject(ctx, r.bucket, r.objectName(clean), bytes.NewReader(content), int64(len(content)), minio.PutObjectOptions{
		ContentType: ContentType(clean),
	})
	if err != nil {
		return fmt.Errorf("failed to put object %s: %w", r.objectName(clean), err)
	}
	return nil
}

// Check verifies that the bucket is reachable.
func (r *StorageResolver) Check(ctx context.Context) error {
	exists, err := r.client.BucketExists(ctx, r.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket existence: %w", err)
	}
	if !exists {
		return fmt.Errorf("bucket %s does not exist", r.bucket)
	}
	return nil
}
