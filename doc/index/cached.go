package index

import (
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/dhamidi/docparse/doc/parser"
)

// DefaultCacheTTL is how long Cached keeps a lookup result.
const DefaultCacheTTL = 10 * time.Minute

// Cached memoizes the exact lookups of another index. Long-running
// servers share one Cached across sessions, so repeated references in
// the documents they parse probe the underlying index once.
type Cached struct {
	parser.SymbolIndex
	lookups *cache.Cache
}

// NewCached wraps idx. A ttl of 0 uses DefaultCacheTTL.
func NewCached(idx parser.SymbolIndex, ttl time.Duration) *Cached {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &Cached{
		SymbolIndex: idx,
		lookups:     cache.New(ttl, 2*ttl),
	}
}

func (c *Cached) Lookup(qualifiedName, args string) parser.Resolution {
	key := qualifiedName + "\x00" + args
	if x, found := c.lookups.Get(key); found {
		return x.(parser.Resolution)
	}
	res := c.SymbolIndex.Lookup(qualifiedName, args)
	c.lookups.Set(key, res, cache.DefaultExpiration)
	return res
}

func (c *Cached) XRefItem(key string, id int) (parser.XRefEntry, bool) {
	if xl, ok := c.SymbolIndex.(parser.XRefLister); ok {
		return xl.XRefItem(key, id)
	}
	return parser.XRefEntry{}, false
}

func (c *Cached) Formula(id int) (string, bool) {
	if ft, ok := c.SymbolIndex.(parser.FormulaTable); ok {
		return ft.Formula(id)
	}
	return "", false
}

// Len returns the number of cached lookups.
func (c *Cached) Len() int {
	return c.lookups.ItemCount()
}

// Flush drops every cached lookup, e.g. after the index was reloaded.
func (c *Cached) Flush() {
	c.lookups.Flush()
}
