// Package cache provides an LRU cache of parsed problems keyed by their
// exact LP source text, so repeated solves of the same document (common
// under the batch scheduler and the RPC server) skip re-parsing.
//
// What: ProblemCache, an LRU keyed by source string.
// How: container/list for O(1) most-recently-used reordering plus a map
// for O(1) lookup, guarded by a sync.RWMutex — the same structure this
// codebase's query cache uses for compiled SQL.
// Why: the parse step is cheap but not free, and identical LP documents
// recur under scheduled batch runs; a tiny LRU avoids redundant work
// without needing anything heavier than the standard library.
package cache

import (
	"container/list"
	"sync"

	"github.com/StephenWattam/lpsolve/internal/ir"
)

type entry struct {
	key     string
	problem *ir.Problem
}

// ProblemCache is an LRU cache of parsed problems, keyed by LP source text.
type ProblemCache struct {
	mu      sync.RWMutex
	entries map[string]*list.Element
	order   *list.List
	maxSize int
}

// New returns a ProblemCache holding at most maxSize entries. maxSize <= 0
// is treated as the default of 100.
func New(maxSize int) *ProblemCache {
	if maxSize <= 0 {
		maxSize = 100
	}
	return &ProblemCache{
		entries: make(map[string]*list.Element, maxSize),
		order:   list.New(),
		maxSize: maxSize,
	}
}

// Get returns the cached problem for source, promoting it to
// most-recently-used, and reports whether it was present.
func (c *ProblemCache) Get(source string) (*ir.Problem, bool) {
	c.mu.RLock()
	elem, ok := c.entries[source]
	c.mu.RUnlock()
	if !ok {
		return nil, false
	}

	c.mu.Lock()
	c.order.MoveToFront(elem)
	c.mu.Unlock()

	return elem.Value.(*entry).problem, true
}

// Put inserts or replaces the cached entry for source, evicting the least
// recently used entry if the cache is at capacity.
func (c *ProblemCache) Put(source string, problem *ir.Problem) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.entries[source]; ok {
		elem.Value.(*entry).problem = problem
		c.order.MoveToFront(elem)
		return
	}

	if c.order.Len() >= c.maxSize {
		tail := c.order.Back()
		if tail != nil {
			c.order.Remove(tail)
			delete(c.entries, tail.Value.(*entry).key)
		}
	}

	elem := c.order.PushFront(&entry{key: source, problem: problem})
	c.entries[source] = elem
}

// GetOrBuild returns the cached problem for source if present, otherwise
// calls build to parse and presolve it, caches the result, and returns
// it. build should return a fully presolved problem: callers (the batch
// scheduler, the RPC server) only ever read from the returned problem, so
// a cache hit under concurrent use is safe to hand out without copying.
func (c *ProblemCache) GetOrBuild(source string, build func() (*ir.Problem, error)) (*ir.Problem, error) {
	if problem, ok := c.Get(source); ok {
		return problem, nil
	}

	problem, err := build()
	if err != nil {
		return nil, err
	}

	// Two callers can race to build the same miss; Put on an existing key
	// replaces it, so the last one to finish wins and every caller still
	// gets a valid problem back.
	c.Put(source, problem)
	return problem, nil
}

// Len returns the number of cached entries.
func (c *ProblemCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.order.Len()
}

// Clear empties the cache.
func (c *ProblemCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]*list.Element, c.maxSize)
	c.order.Init()
}
