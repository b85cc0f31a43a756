package runner

import (
	"sync"

	"github.com/yaklabco/mdview/pkg/fsutil"
	"github.com/yaklabco/mdview/pkg/mdast"
)

// Digest returns the hex-encoded BLAKE3 digest of content, the key the
// cache compares.
func Digest(content []byte) string {
	return fsutil.Digest(content)
}

// DefaultCacheVersions is how many versions of each path a cache keeps.
const DefaultCacheVersions = 8

type cacheEntry struct {
	digest string
	blocks []mdast.Block
}

// Cache remembers the parses of each path keyed by the digest of their
// content, so unchanged files are not parsed again. It keeps the most
// recently used versions of every path, which lets a long-lived cache serve
// an edit that was undone without parsing it again. It is safe for
// concurrent use. Cached block slices are shared and must not be modified
// by callers.
type Cache struct {
	mu       sync.Mutex
	entries  map[string][]cacheEntry
	versions int
	hits     int
	misses   int
}

// NewCache returns an empty cache keeping DefaultCacheVersions versions per path.
func NewCache() *Cache {
	return NewCacheWithVersions(DefaultCacheVersions)
}

// NewCacheWithVersions returns an empty cache keeping up to versions parses
// per path. Values below one keep a single version.
func NewCacheWithVersions(versions int) *Cache {
	return &Cache{
		entries:  make(map[string][]cacheEntry),
		versions: max(versions, 1),
	}
}

// Lookup returns the blocks stored for path when they were parsed from
// content with the given digest. A hit makes that version the most recent.
func (c *Cache) Lookup(path, digest string) ([]mdast.Block, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	history := c.entries[path]
	for i, entry := range history {
		if entry.digest != digest {
			continue
		}
		copy(history[1:i+1], history[:i])
		history[0] = entry
		c.hits++
		return entry.blocks, true
	}
	c.misses++
	return nil, false
}

// Store records blocks as the parse of path at digest. The least recently
// used version is dropped once the path holds more than the cache keeps.
func (c *Cache) Store(path, digest string, blocks []mdast.Block) {
	c.mu.Lock()
	defer c.mu.Unlock()

	history := c.entries[path]
	kept := make([]cacheEntry, 0, min(len(history)+1, c.versions))
	kept = append(kept, cacheEntry{digest: digest, blocks: blocks})
	for _, entry := range history {
		if len(kept) == c.versions {
			break
		}
		if entry.digest != digest {
			kept = append(kept, entry)
		}
	}
	c.entries[path] = kept
}

// Forget drops every version stored for path.
func (c *Cache) Forget(path string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, path)
}

// Len returns the number of cached paths.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Counters returns the number of lookup hits and misses so far.
func (c *Cache) Counters() (hits, misses int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hits, c.misses
}
