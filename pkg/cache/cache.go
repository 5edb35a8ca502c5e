// Package cache provides a small byte-oriented cache used to avoid
// re-rendering unit graph artifacts (DOT, SVG) that were produced from the
// same document before. Keys are derived from content hashes, so a cache
// hit is always safe to reuse.
package cache

import (
	"context"
	"time"
)

// Cache stores opaque byte values under string keys.
type Cache interface {
	// Get retrieves a value. The second return reports whether the key
	// was present and unexpired.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value. A ttl of zero means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any resources held by the cache.
	Close() error
}

// ArtifactKey builds the cache key for a rendered artifact: the hash of
// the serialized document the artifact was produced from, scoped by the
// output format.
func ArtifactKey(docHash, format string) string {
	return "artifact:" + format + ":" + docHash
}
