package document

import (
	"github.com/cespare/xxhash/v2"
	lru "github.com/hashicorp/golang-lru"
)

// Provider returns the Document for a query, using parse when it has to.
type Provider func(query string, parse ParseFunc) (*Document, error)

// Direct always parses.
func Direct(query string, parse ParseFunc) (*Document, error) {
	return parse(query)
}

const DefaultCacheSize = 1024

type cacheEntry struct {
	query    string
	document *Document
}

// Cache memoizes parsed documents by query text. It is safe for concurrent use.
type Cache struct {
	documents *lru.Cache
}

func NewCache(size int) (*Cache, error) {
	if size <= 0 {
		size = DefaultCacheSize
	}
	documents, err := lru.New(size)
	if err != nil {
		return nil, err
	}
	return &Cache{documents: documents}, nil
}

// Provide satisfies Provider. Parse errors are not cached.
func (c *Cache) Provide(query string, parse ParseFunc) (*Document, error) {
	key := xxhash.Sum64String(query)
	if cached, ok := c.documents.Get(key); ok {
		entry := cached.(cacheEntry)
		// hash collision: fall through and replace the entry
		if entry.query == query {
			return entry.document, nil
		}
	}

	doc, err := parse(query)
	if err != nil {
		return nil, err
	}

	c.documents.Add(key, cacheEntry{query: query, document: doc})
	return doc, nil
}

func (c *Cache) Len() int {
	return c.documents.Len()
}

func (c *Cache) Purge() {
	c.documents.Purge()
}
