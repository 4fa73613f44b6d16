package models

import (
	"sync"

	"github.com/google/btree"
)

// priceCache keeps loaded series ordered by time so repeated indicator
// requests over the same symbol slice in memory instead of re-reading the
// database. Entries are filled whole-series and dropped on any write to the
// symbol.
type priceCache struct {
	mu    sync.Mutex
	trees map[string]*btree.BTreeG[StockPrice]
}

var cache = &priceCache{trees: map[string]*btree.BTreeG[StockPrice]{}}

func priceLess(a, b StockPrice) bool {
	return a.Time < b.Time
}

func (c *priceCache) fill(symbol string, prices []StockPrice) {
	tree := btree.NewG(2, priceLess)
	for _, p := range prices {
		tree.ReplaceOrInsert(p)
	}

	c.mu.Lock()
	c.trees[symbol] = tree
	c.mu.Unlock()
}

// rangeOf returns the cached bars with start <= Time <= end ascending,
// ok=false on a cache miss
func (c *priceCache) rangeOf(symbol string, start, end int64) ([]StockPrice, bool) {
	c.mu.Lock()
	tree, ok := c.trees[symbol]
	c.mu.Unlock()
	if !ok {
		return nil, false
	}

	var out []StockPrice
	pivot := StockPrice{Time: start}
	tree.AscendGreaterOrEqual(pivot, func(p StockPrice) bool {
		if p.Time > end {
			return false
		}
		out = append(out, p)
		return true
	})

	return out, true
}

func (c *priceCache) invalidate(symbol string) {
	c.mu.Lock()
	delete(c.trees, symbol)
	c.mu.Unlock()
}

// FlushPriceCache drops the cached series for symbol, used by ingestion
// after replacing the stored bars
func FlushPriceCache(symbol string) {
	cache.invalidate(symbol)
}
