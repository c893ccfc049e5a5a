// Package cache holds parse results keyed by source identity so repeated
// parses of unchanged content skip the engine entirely.
//
// Two tiers are kept: normalized models (the expensive product, cached
// longest) and parsed documents (cheaper to rebuild, shorter TTL). Both
// tiers are bounded LRUs with per-entry expiry; a full cache evicts the
// least recently used entry rather than rejecting writes.
package cache

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/johnholliday/glsp-generator-sub001/langium"
	"github.com/johnholliday/glsp-generator-sub001/model"
)

// Default sizing and retention. Models survive an hour, documents half
// that; grammar workspaces rarely hold more than a few dozen files so the
// entry counts are generous.
const (
	DefaultModelEntries    = 128
	DefaultDocumentEntries = 128
	DefaultModelTTL        = time.Hour
	DefaultDocumentTTL     = 30 * time.Minute
)

// Config controls cache sizing and retention. Zero fields fall back to
// the package defaults.
type Config struct {
	ModelEntries    int
	DocumentEntries int
	ModelTTL        time.Duration
	DocumentTTL     time.Duration
}

func (c Config) withDefaults() Config {
	if c.ModelEntries <= 0 {
		c.ModelEntries = DefaultModelEntries
	}
	if c.DocumentEntries <= 0 {
		c.DocumentEntries = DefaultDocumentEntries
	}
	if c.ModelTTL <= 0 {
		c.ModelTTL = DefaultModelTTL
	}
	if c.DocumentTTL <= 0 {
		c.DocumentTTL = DefaultDocumentTTL
	}
	return c
}

// TierStats is a hit/miss snapshot for one cache tier.
type TierStats struct {
	Hits    uint64 `json:"hits"`
	Misses  uint64 `json:"misses"`
	Entries int    `json:"entries"`
}

// Stats is a point-in-time snapshot of cache effectiveness, per tier.
type Stats struct {
	Model    TierStats `json:"model"`
	Document TierStats `json:"document"`
}

// Hits is the total across both tiers.
func (s Stats) Hits() uint64 { return s.Model.Hits + s.Document.Hits }

// Misses is the total across both tiers.
func (s Stats) Misses() uint64 { return s.Model.Misses + s.Document.Misses }

// Cache is a two-tier TTL cache for parse results. All methods are safe
// for concurrent use. Concurrent misses for the same key each do their
// own work and overwrite each other's entry; the results are identical
// so the last write is as good as the first.
type Cache struct {
	models *expirable.LRU[string, *model.ParsedGrammar]
	docs   *expirable.LRU[string, *langium.Document]

	modelHits   atomic.Uint64
	modelMisses atomic.Uint64
	docHits     atomic.Uint64
	docMisses   atomic.Uint64
}

// New builds a cache from cfg, filling in defaults for zero fields.
func New(cfg Config) *Cache {
	cfg = cfg.withDefaults()
	return &Cache{
		models: expirable.NewLRU[string, *model.ParsedGrammar](cfg.ModelEntries, nil, cfg.ModelTTL),
		docs:   expirable.NewLRU[string, *langium.Document](cfg.DocumentEntries, nil, cfg.DocumentTTL),
	}
}

// Key derives the cache key for a source. The fingerprint makes stale
// entries unreachable the moment the content changes; no explicit
// invalidation is needed on edit.
func Key(uri, fingerprint string) string {
	return fmt.Sprintf("%s#%s", uri, fingerprint)
}

// GetModel returns the cached model for key, if present and unexpired.
func (c *Cache) GetModel(key string) (*model.ParsedGrammar, bool) {
	v, ok := c.models.Get(key)
	count(&c.modelHits, &c.modelMisses, ok)
	return v, ok
}

// SetModel stores a model under key.
func (c *Cache) SetModel(key string, m *model.ParsedGrammar) {
	c.models.Add(key, m)
}

// GetDocument returns the cached document for key, if present and unexpired.
func (c *Cache) GetDocument(key string) (*langium.Document, bool) {
	v, ok := c.docs.Get(key)
	count(&c.docHits, &c.docMisses, ok)
	return v, ok
}

// SetDocument stores a document under key.
func (c *Cache) SetDocument(key string, d *langium.Document) {
	c.docs.Add(key, d)
}

// Invalidate drops key from both tiers.
func (c *Cache) Invalidate(key string) {
	c.models.Remove(key)
	c.docs.Remove(key)
}

// Clear empties both tiers. Counters are preserved.
func (c *Cache) Clear() {
	c.models.Purge()
	c.docs.Purge()
}

// Stats reports per-tier hit/miss counters and current entry counts.
func (c *Cache) Stats() Stats {
	return Stats{
		Model: TierStats{
			Hits:    c.modelHits.Load(),
			Misses:  c.modelMisses.Load(),
			Entries: c.models.Len(),
		},
		Document: TierStats{
			Hits:    c.docHits.Load(),
			Misses:  c.docMisses.Load(),
			Entries: c.docs.Len(),
		},
	}
}

func count(hits, misses *atomic.Uint64, hit bool) {
	if hit {
		hits.Add(1)
	} else {
		misses.Add(1)
	}
}
