package cache

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"time"
)

// noExpiry is the header written for entries without a TTL.
const noExpiry = "-"

// FileCache stores rendered artifacts as files under a directory, sharded
// by key hash. Each entry is the raw artifact bytes prefixed with a single
// header line holding the expiry timestamp, so multi-megabyte SVG payloads
// are stored as-is rather than wrapped in an encoding.
type FileCache struct {
	dir string
}

// NewFileCache creates a file-based cache rooted at dir.
// The directory is created if it doesn't exist.
func NewFileCache(dir string) (Cache, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	return &FileCache{dir: dir}, nil
}

// Get retrieves an artifact from the cache. Corrupt and expired entries
// are removed and reported as misses.
func (c *FileCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	path := c.path(key)

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	header, payload, ok := bytes.Cut(data, []byte{'\n'})
	if !ok {
		_ = os.Remove(path)
		return nil, false, nil
	}
	if expiry := string(header); expiry != noExpiry {
		deadline, err := time.Parse(time.RFC3339Nano, expiry)
		if err != nil || time.Now().After(deadline) {
			_ = os.Remove(path)
			return nil, false, nil
		}
	}
	return payload, true, nil
}

// Set stores an artifact. A ttl of zero means the entry never expires.
func (c *FileCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	var buf bytes.Buffer
	if ttl > 0 {
		buf.WriteString(time.Now().Add(ttl).UTC().Format(time.RFC3339Nano))
	} else {
		buf.WriteString(noExpiry)
	}
	buf.WriteByte('\n')
	buf.Write(data)

	path := c.path(key)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, buf.Bytes(), 0644)
}

// Delete removes an artifact from the cache.
func (c *FileCache) Delete(ctx context.Context, key string) error {
	err := os.Remove(c.path(key))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// Close does nothing for file caches.
func (c *FileCache) Close() error {
	return nil
}

// path converts a cache key to a file path.
// The first two hash characters shard entries across subdirectories.
func (c *FileCache) path(key string) string {
	hash := Hash([]byte(key))
	return filepath.Join(c.dir, hash[:2], hash[2:]+".entry")
}

var _ Cache = (*FileCache)(nil)
