package mcpserver

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/erraggy/docpatch/patch"
)

// docInput represents the two ways a document can be provided to a tool.
// At most one of File or Content may be set.
type docInput struct {
	File    string `json:"file,omitempty"    jsonschema:"Path to the document on disk"`
	Content string `json:"content,omitempty" jsonschema:"Inline document content"`
}

// options returns the patch options selecting this document. No options
// are returned when neither field is set.
func (d docInput) options() ([]patch.Option, error) {
	switch {
	case d.File != "" && d.Content != "":
		return nil, fmt.Errorf("at most one of document file or content may be provided")
	case d.File != "":
		return []patch.Option{patch.WithDocumentPath(d.File)}, nil
	case d.Content != "":
		if int64(len(d.Content)) > cfg.MaxInlineSize {
			return nil, fmt.Errorf("inline document size %d bytes exceeds maximum %d bytes; use file input instead, or set DOCPATCH_MAX_INLINE_SIZE to increase",
				len(d.Content), cfg.MaxInlineSize)
		}
		return []patch.Option{patch.WithDocumentContent(d.Content)}, nil
	default:
		return nil, nil
	}
}

// patchSetInput represents the two ways a patch set can be provided.
// Exactly one of File or Content must be set.
type patchSetInput struct {
	File    string `json:"file,omitempty"    jsonschema:"Path to a patch file (YAML or JSON) on disk"`
	Content string `json:"content,omitempty" jsonschema:"Inline patch file content (YAML or JSON)"`
}

// cacheEntry holds a parsed patch set with LRU ordering and TTL expiry.
type cacheEntry struct {
	patchSet  *patch.PatchSet
	insertAt  time.Time
	expiresAt time.Time
}

// patchSetCacheStore provides a session-scoped cache for parsed patch sets.
// File inputs are keyed by (absolutePath, modTime). Content inputs are keyed
// by a SHA-256 hash. Cached patch sets are never mutated after parsing.
type patchSetCacheStore struct {
	mu             sync.Mutex
	entries        map[string]*cacheEntry
	maxSize        int
	sweeperStarted atomic.Bool
}

var patchSetCache = &patchSetCacheStore{
	entries: make(map[string]*cacheEntry),
	maxSize: cfg.CacheMaxSize,
}

// get returns a cached patch set or nil. Expired entries are lazily removed.
func (c *patchSetCacheStore) get(key string) *patch.PatchSet {
	c.mu.Lock()
	defer c.mu.Unlock()
	if e, ok := c.entries[key]; ok {
		if !e.expiresAt.IsZero() && time.Now().After(e.expiresAt) {
			delete(c.entries, key)
			return nil
		}
		e.insertAt = time.Now()
		return e.patchSet
	}
	return nil
}

// putWithTTL stores a patch set, evicting the least recently used entry if
// at capacity.
func (c *patchSetCacheStore) putWithTTL(key string, ps *patch.PatchSet, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	entry := &cacheEntry{patchSet: ps, insertAt: now, expiresAt: now.Add(ttl)}

	if _, ok := c.entries[key]; ok {
		c.entries[key] = entry
		return
	}

	if len(c.entries) >= c.maxSize {
		var oldestKey string
		var oldestTime time.Time
		for k, e := range c.entries {
			if oldestKey == "" || e.insertAt.Before(oldestTime) {
				oldestKey = k
				oldestTime = e.insertAt
			}
		}
		if oldestKey != "" {
			delete(c.entries, oldestKey)
		}
	}

	c.entries[key] = entry
}

// sweep removes all expired entries from the cache.
func (c *patchSetCacheStore) sweep() {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := time.Now()
	for k, e := range c.entries {
		if !e.expiresAt.IsZero() && now.After(e.expiresAt) {
			delete(c.entries, k)
		}
	}
}

// startSweeper launches a goroutine that periodically removes expired
// entries until ctx is cancelled. Only the first call spawns a sweeper.
func (c *patchSetCacheStore) startSweeper(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}
	if !c.sweeperStarted.CompareAndSwap(false, true) {
		return
	}
	go func() {
		defer c.sweeperStarted.Store(false)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				c.sweep()
			}
		}
	}()
}

// reset clears all cached entries. Used in tests.
func (c *patchSetCacheStore) reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]*cacheEntry)
}

// size returns the number of cached entries.
func (c *patchSetCacheStore) size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// makeCacheKey creates a cache key for the given patch set input.
func makeCacheKey(p patchSetInput) string {
	switch {
	case p.File != "":
		absPath, err := filepath.Abs(p.File)
		if err != nil {
			return ""
		}
		info, err := os.Stat(absPath)
		if err != nil {
			return ""
		}
		return fmt.Sprintf("file:%s:%d", absPath, info.ModTime().UnixNano())
	case p.Content != "":
		h := sha256.Sum256([]byte(p.Content))
		return "content:" + hex.EncodeToString(h[:])
	default:
		return ""
	}
}

// resolve parses the patch set from whichever input was provided, using the
// cache when enabled.
func (p patchSetInput) resolve() (*patch.PatchSet, error) {
	if (p.File == "") == (p.Content == "") {
		return nil, fmt.Errorf("exactly one of patchset file or content must be provided")
	}
	if p.Content != "" && int64(len(p.Content)) > cfg.MaxInlineSize {
		return nil, fmt.Errorf("inline patch set size %d bytes exceeds maximum %d bytes; use file input instead, or set DOCPATCH_MAX_INLINE_SIZE to increase",
			len(p.Content), cfg.MaxInlineSize)
	}

	var key string
	ttl := cfg.CacheContentTTL
	if cfg.CacheEnabled {
		key = makeCacheKey(p)
		if p.File != "" {
			ttl = cfg.CacheFileTTL
		}
	}
	if key != "" {
		if cached := patchSetCache.get(key); cached != nil {
			return cached, nil
		}
	}

	var ps *patch.PatchSet
	var err error
	if p.File != "" {
		ps, err = patch.ParsePatchSetFile(p.File)
	} else {
		ps, err = patch.ParsePatchSet([]byte(p.Content))
	}
	if err != nil {
		return nil, err
	}

	if key != "" {
		patchSetCache.putWithTTL(key, ps, ttl)
	}
	return ps, nil
}
