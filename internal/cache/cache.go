// Package cache provides an on-disk cache for document analyses. Analysis is
// the expensive, oracle-bound half of an evaluation; judging and aggregation
// always rerun, so scoreboards are never cached.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/vinothezhumalai/legalmcpserver/internal/models"
)

// promptVersion is folded into every cache key so prompt template changes
// invalidate prior entries.
const promptVersion = "v1"

// Cache stores document analyses as JSON files under a directory. An empty
// directory disables the cache entirely.
type Cache struct {
	dir string
	mu  sync.Mutex
}

// New creates a cache rooted at dir. dir may be "" to disable caching.
func New(dir string) *Cache {
	return &Cache{dir: dir}
}

// Key derives the cache key for one analysis request. The key covers:
// - the normalized document text
// - the oracle model ID
// - the caller's expected area and precedent toggle
// - the prompt template version
func Key(documentText, model, expectedArea string, includePrecedents bool) (string, error) {
	h := sha256.New()

	if err := writeString(h, documentText); err != nil {
		return "", err
	}
	if err := writeString(h, model); err != nil {
		return "", err
	}
	if err := writeString(h, expectedArea); err != nil {
		return "", err
	}
	if err := writeString(h, fmt.Sprintf("%t", includePrecedents)); err != nil {
		return "", err
	}
	if err := writeString(h, promptVersion); err != nil {
		return "", err
	}

	return hex.EncodeToString(h.Sum(nil)), nil
}

// Get retrieves a cached analysis if one exists. Unreadable or corrupt
// entries are treated as misses.
func (c *Cache) Get(key string) (*models.DocumentAnalysis, bool) {
	if c.dir == "" {
		return nil, false
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	data, err := os.ReadFile(c.cachePath(key))
	if err != nil {
		return nil, false
	}

	var entry cacheEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		return nil, false
	}

	da := entry.Analysis
	da.Document = entry.Document
	return &da, true
}

// Put stores an analysis in the cache.
func (c *Cache) Put(key string, da *models.DocumentAnalysis) error {
	if c.dir == "" {
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if err := os.MkdirAll(c.dir, 0755); err != nil {
		return fmt.Errorf("creating cache directory: %w", err)
	}

	entry := cacheEntry{Document: da.Document, Analysis: *da}
	data, err := json.MarshalIndent(entry, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling analysis: %w", err)
	}

	if err := os.WriteFile(c.cachePath(key), data, 0644); err != nil {
		return fmt.Errorf("writing cache file: %w", err)
	}

	return nil
}

// Clear removes all cached analyses. It refuses to delete a directory that
// contains anything other than .json cache files.
func (c *Cache) Clear() error {
	if c.dir == "" {
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, err := os.Stat(c.dir); os.IsNotExist(err) {
		return nil
	}

	entries, err := os.ReadDir(c.dir)
	if err != nil {
		return fmt.Errorf("reading cache directory: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() {
			return fmt.Errorf("cache directory contains subdirectories - refusing to delete for safety")
		}
		if filepath.Ext(entry.Name()) != ".json" {
			return fmt.Errorf("cache directory contains non-cache files - refusing to delete for safety")
		}
	}

	return os.RemoveAll(c.dir)
}

func (c *Cache) cachePath(key string) string {
	return filepath.Join(c.dir, key+".json")
}

// cacheEntry carries the document text explicitly because DocumentAnalysis
// excludes it from JSON to keep scoreboard payloads small.
type cacheEntry struct {
	Document string                  `json:"document"`
	Analysis models.DocumentAnalysis `json:"analysis"`
}

func writeString(w io.Writer, s string) error {
	// Null byte delimiter prevents hash collisions between adjacent fields.
	_, err := w.Write([]byte(s + "\x00"))
	return err
}
