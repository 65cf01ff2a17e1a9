// Package cache keeps recently inferred shapes so follow-up tool calls can
// render them without resending samples.
package cache

import (
	"time"

	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/usestring/shapegen/pkg/inference"
	"github.com/usestring/shapegen/pkg/shape"
)

// Entry is one cached inference result.
type Entry struct {
	ID        string
	Name      string
	Shape     shape.Shape
	Samples   int
	Stats     []inference.FieldStat
	CreatedAt time.Time
}

// ShapeCache provides thread-safe LRU caching of inferred shapes.
type ShapeCache struct {
	cache *lru.Cache[string, *Entry]
}

// NewShapeCache creates a cache holding at most maxItems shapes.
func NewShapeCache(maxItems int) (*ShapeCache, error) {
	c, err := lru.New[string, *Entry](maxItems)
	if err != nil {
		return nil, err
	}
	return &ShapeCache{cache: c}, nil
}

// Put stores a result under a fresh shape ID and returns the entry.
func (c *ShapeCache) Put(name string, res *inference.Result) *Entry {
	entry := &Entry{
		ID:        uuid.NewString(),
		Name:      name,
		Shape:     res.Shape,
		Samples:   res.Samples,
		Stats:     res.Stats,
		CreatedAt: time.Now(),
	}
	c.cache.Add(entry.ID, entry)
	return entry
}

// Get retrieves an entry by shape ID.
func (c *ShapeCache) Get(id string) (*Entry, bool) {
	return c.cache.Get(id)
}

// Len returns the current number of cached shapes.
func (c *ShapeCache) Len() int {
	return c.cache.Len()
}
