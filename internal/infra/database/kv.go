package database

import (
	"context"
	"encoding/json"
	"fmt"
)

// Buckets. One bucket per record kind; the listing index lives in the
// same bucket under a reserved key.
const (
	BucketValuations = "valuations"
	BucketLeads      = "leads"
	BucketBlogPosts  = "blog-posts"

	ValuationsIndexKey = "vals:index"
	LeadsIndexKey      = "leads:index"
	PostsIndexKey      = "posts:index"
)

// KV is the storage capability the repositories are built on. Backends
// must return entity.ErrNotFound from Get for a missing key, never a
// nil/nil pair.
type KV interface {
	Get(ctx context.Context, bucket, key string) ([]byte, error)
	Set(ctx context.Context, bucket, key string, value []byte) error
	// Delete reports whether the key existed.
	Delete(ctx context.Context, bucket, key string) (bool, error)
}

func getJSON(ctx context.Context, kv KV, bucket, key string, out any) error {
	data, err := kv.Get(ctx, bucket, key)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("corrupt blob %s/%s: %w", bucket, key, err)
	}
	return nil
}

func setJSON(ctx context.Context, kv KV, bucket, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal blob %s/%s: %w", bucket, key, err)
	}
	return kv.Set(ctx, bucket, key, data)
}
