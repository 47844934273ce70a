// Package cache provides the cross-run render cache for docweave.
//
// The resolution engine itself keeps its document cache in memory for the
// lifetime of a single run; this package caches rendered output across
// runs, keyed by a content hash of the reachable document set and the
// render mode. Three backends are provided: FileCache for CLI usage,
// RedisCache for the HTTP API, and NullCache to disable caching.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"
)

// TTLRender is how long rendered output stays valid. Keys are content
// hashes, so entries never go stale - the TTL only bounds disk usage.
const TTLRender = 7 * 24 * time.Hour

// Cache stores rendered output across runs.
type Cache interface {
	// Get retrieves a value. The second return reports whether the key
	// was present.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with a time-to-live. A zero ttl means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// Hash returns the hex-encoded SHA-256 digest of data.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// RenderKey builds the cache key for a rendered output: the hash of the
// reachable document contents combined with the render mode.
func RenderKey(contentHash, mode string) string {
	return fmt.Sprintf("render:%s:%s", mode, contentHash)
}
