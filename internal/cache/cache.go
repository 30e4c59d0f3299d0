// Package cache persists generated content across runs in a single JSON file.
//
// Entries are keyed by an MD5 digest over the provider namespace, the content type
// and the first 100 characters of job and profile text. Requests that differ only
// after the first 100 characters share a slot.
package cache

import (
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/jonathan/bewerbung-generator/internal/schemas"
	"github.com/jonathan/bewerbung-generator/internal/types"
)

// FileName is the cache document inside the cache directory
const FileName = "ai_content_cache.json"

// PrefixLength is the number of characters of job and profile text that enter the key
const PrefixLength = 100

// Entry is one cached response
type Entry struct {
	types.ContentResponse
	CachedAt string `json:"cached_at,omitempty"`
}

// Stats summarizes the cache content
type Stats struct {
	Entries     int                       `json:"entries"`
	TotalTokens int                       `json:"total_tokens"`
	ByType      map[types.ContentType]int `json:"by_type"`
}

// Cache is a file-backed response cache. It is not safe for concurrent use.
type Cache struct {
	path    string
	entries map[string]Entry
	logger  *slog.Logger
}

// Open loads the cache document from dir, creating dir if needed.
// A corrupt or invalid document is logged and treated as empty.
func Open(dir string, logger *slog.Logger) (*Cache, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}

	c := &Cache{
		path:    filepath.Join(dir, FileName),
		entries: make(map[string]Entry),
		logger:  logger,
	}
	c.load()
	return c, nil
}

func (c *Cache) load() {
	data, err := os.ReadFile(c.path)
	if err != nil {
		if !os.IsNotExist(err) {
			c.logger.Warn("failed to read cache, starting empty", "path", c.path, "error", err)
		}
		return
	}

	if err := schemas.ValidateDocument(schemas.CacheSchema, data); err != nil {
		c.logger.Warn("ignoring invalid cache document", "path", c.path, "error", err)
		return
	}

	var entries map[string]Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		c.logger.Warn("ignoring corrupt cache document", "path", c.path, "error", err)
		return
	}
	c.entries = entries
}

// Key derives the cache key of a request within a namespace
func Key(namespace string, req types.ContentRequest) string {
	data := fmt.Sprintf("%s:%s:%s:%s",
		namespace,
		req.ContentType,
		prefix(req.JobDescription, PrefixLength),
		prefix(req.ProfileContent, PrefixLength),
	)
	sum := md5.Sum([]byte(data))
	return hex.EncodeToString(sum[:])
}

// prefix returns the first n characters of s
func prefix(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}

// Get returns a copy of the cached response for req
func (c *Cache) Get(namespace string, req types.ContentRequest) (*types.ContentResponse, bool) {
	entry, ok := c.entries[Key(namespace, req)]
	if !ok {
		return nil, false
	}

	resp := entry.ContentResponse
	meta := make(map[string]any, len(resp.Metadata)+1)
	for k, v := range resp.Metadata {
		meta[k] = v
	}
	meta[types.MetaCached] = true
	resp.Metadata = meta
	return &resp, true
}

// Set stores resp for req and rewrites the cache file
func (c *Cache) Set(namespace string, req types.ContentRequest, resp *types.ContentResponse) error {
	if resp == nil || resp.GeneratedText == "" {
		return fmt.Errorf("cannot cache empty response")
	}
	c.entries[Key(namespace, req)] = Entry{
		ContentResponse: *resp,
		CachedAt:        time.Now().UTC().Format(time.RFC3339),
	}
	return c.save()
}

// Clear removes all entries and rewrites the cache file
func (c *Cache) Clear() error {
	c.entries = make(map[string]Entry)
	return c.save()
}

// Len returns the number of entries
func (c *Cache) Len() int {
	return len(c.entries)
}

// Path returns the location of the cache document
func (c *Cache) Path() string {
	return c.path
}

// Stats returns entry count, cached token total and entries per content type
func (c *Cache) Stats() Stats {
	stats := Stats{ByType: make(map[types.ContentType]int)}
	for _, entry := range c.entries {
		stats.Entries++
		stats.TotalTokens += entry.TokensUsed
		stats.ByType[entry.ContentType]++
	}
	return stats
}

func (c *Cache) save() error {
	data, err := json.MarshalIndent(c.entries, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal cache: %w", err)
	}
	if err := os.WriteFile(c.path, data, 0644); err != nil {
		return fmt.Errorf("failed to write cache: %w", err)
	}
	return nil
}
