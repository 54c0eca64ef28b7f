// Package pdgcache provides an in-memory LRU cache of built PDGs keyed by
// file path, so the orchestrator's worker pool does not rebuild a PDG for a
// file it has already analyzed in the same run (e.g. a re-queued job after
// a transient classifier error). Adapted from pkg/parser/cache.go's
// entry+memory-bounded LRU, generalized from cached tree-sitter parses to
// cached *pdg.Graph values.
package pdgcache

import (
	"container/list"
	"sync"
	"sync/atomic"

	"github.com/Aurore54F/jstap/pkg/pdg"
)

// bytesPerNode is a rough per-node memory estimate used to bound the
// cache by approximate memory rather than raw entry count alone, mirroring
// CachedParse.estimateMemory's source-size-based heuristic.
const bytesPerNode = 256

// Cache is an LRU cache of built PDGs with both an entry-count and an
// approximate-memory bound.
type Cache struct {
	maxEntries int
	maxMemory  int64
	currentMem int64

	items     map[string]*list.Element
	evictList *list.List
	mu        sync.RWMutex

	hits   int64
	misses int64
}

type cacheEntry struct {
	key    string
	graph  *pdg.Graph
	memory int64
}

// New creates a cache bounded by maxEntries (defaulting to 100 if <= 0) and
// a fixed 32MB memory budget, matching the teacher cache's multi-threaded
// defaults.
func New(maxEntries int) *Cache {
	if maxEntries <= 0 {
		maxEntries = 100
	}
	return &Cache{
		maxEntries: maxEntries,
		maxMemory:  32 * 1024 * 1024,
		items:      make(map[string]*list.Element, maxEntries),
		evictList:  list.New(),
	}
}

// Get retrieves a cached graph by file path.
func (c *Cache) Get(path string) *pdg.Graph {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.items[path]; ok {
		c.evictList.MoveToFront(elem)
		atomic.AddInt64(&c.hits, 1)
		return elem.Value.(*cacheEntry).graph
	}
	atomic.AddInt64(&c.misses, 1)
	return nil
}

// Put stores a built graph under path, evicting least-recently-used entries
// until the new entry fits within both bounds.
func (c *Cache) Put(path string, g *pdg.Graph) {
	c.mu.Lock()
	defer c.mu.Unlock()

	memUsage := int64(g.Len()) * bytesPerNode

	if elem, ok := c.items[path]; ok {
		old := elem.Value.(*cacheEntry)
		c.currentMem += memUsage - old.memory
		old.graph = g
		old.memory = memUsage
		c.evictList.MoveToFront(elem)
		return
	}

	for len(c.items) >= c.maxEntries || c.currentMem+memUsage > c.maxMemory {
		if c.evictList.Len() == 0 {
			break
		}
		c.evictOldest()
	}

	entry := &cacheEntry{key: path, graph: g, memory: memUsage}
	elem := c.evictList.PushFront(entry)
	c.items[path] = elem
	c.currentMem += memUsage
}

func (c *Cache) evictOldest() {
	elem := c.evictList.Back()
	if elem == nil {
		return
	}
	entry := elem.Value.(*cacheEntry)
	c.evictList.Remove(elem)
	delete(c.items, entry.key)
	c.currentMem -= entry.memory
}

// Remove evicts path's entry, if any.
func (c *Cache) Remove(path string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if elem, ok := c.items[path]; ok {
		c.evictList.Remove(elem)
		delete(c.items, path)
		c.currentMem -= elem.Value.(*cacheEntry).memory
	}
}

// Size returns the current number of cached graphs.
func (c *Cache) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

// Stats returns cumulative hit/miss counts.
func (c *Cache) Stats() (hits, misses int64) {
	return atomic.LoadInt64(&c.hits), atomic.LoadInt64(&c.misses)
}
