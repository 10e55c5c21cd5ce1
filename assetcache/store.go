package assetcache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

const bucketPrefix = "assetcache:"

// Asset is one cached response body with its content type.
type Asset struct {
	ContentType string `json:"content_type"`
	Body        []byte `json:"body"`
}

// BucketStore holds named cache buckets of assets keyed by URL path.
type BucketStore interface {
	Put(ctx context.Context, bucket, path string, asset Asset) error
	Get(ctx context.Context, bucket, path string) (Asset, bool, error)
	// DropOthers deletes every bucket except the one named keep.
	DropOthers(ctx context.Context, keep string) error
}

// RedisBucketStore keeps each bucket as one hash: field = URL path,
// value = serialized Asset.
type RedisBucketStore struct {
	client *redis.Client
}

func NewRedisBucketStore(client *redis.Client) *RedisBucketStore {
	return &RedisBucketStore{client: client}
}

func bucketKey(bucket string) string {
	return bucketPrefix + bucket
}

func (s *RedisBucketStore) Put(ctx context.Context, bucket, path string, asset Asset) error {
	raw, err := json.Marshal(asset)
	if err != nil {
		return fmt.Errorf("json.Marshal: %w", err)
	}
	if err := s.client.HSet(ctx, bucketKey(bucket), path, raw).Err(); err != nil {
		return fmt.Errorf("redis.HSet: %w", err)
	}
	return nil
}

func (s *RedisBucketStore) Get(ctx context.Context, bucket, path string) (Asset, bool, error) {
	raw, err := s.client.HGet(ctx, bucketKey(bucket), path).Result()
	if errors.Is(err, redis.Nil) {
		return Asset{}, false, nil
	}
	if err != nil {
		return Asset{}, false, fmt.Errorf("redis.HGet: %w", err)
	}

	var asset Asset
	if err := json.Unmarshal([]byte(raw), &asset); err != nil {
		return Asset{}, false, fmt.Errorf("json.Unmarshal: %w", err)
	}
	return asset, true, nil
}

func (s *RedisBucketStore) DropOthers(ctx context.Context, keep string) error {
	keepKey := bucketKey(keep)

	iter := s.client.Scan(ctx, 0, bucketPrefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		key := iter.Val()
		if key == keepKey {
			continue
		}
		if err := s.client.Del(ctx, key).Err(); err != nil {
			return fmt.Errorf("redis.Del %s: %w", key, err)
		}
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("redis.Scan: %w", err)
	}
	return nil
}
