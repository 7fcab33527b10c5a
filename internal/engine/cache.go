// Package engine implements the lazily expanded, cached game tree that
// sits on top of internal/board: PlayerNode and ComputerNode turn nodes,
// a weak-reference-keyed transposition cache that deduplicates nodes by
// board value, and the SearchTree root that owns both.
package engine

import (
	"weak"

	"github.com/tile2048/engine/internal/board"
)

// nodeCache maps a board value to a weak reference to a node of type N.
// It holds only weak references, never strong ones, so that caching a node
// can never keep it alive on its own: strong ownership flows strictly
// parent to child from the search root, and the cache's job is purely
// deduplication, not lifetime extension. A lookup probes the weak pointer
// and upgrades it if the node is still live; on a miss (key absent, or the
// node behind it already collected) it builds a fresh node and stores a new
// weak reference to it.
//
// Single-threaded cooperative model (see the engine-wide doc comment in
// tree.go): nodeCache is not safe for concurrent use, matching the rest of
// this package.
type nodeCache[N any] struct {
	entries map[board.Board]weak.Pointer[N]
}

func newNodeCache[N any]() *nodeCache[N] {
	return &nodeCache[N]{entries: make(map[board.Board]weak.Pointer[N])}
}

// getOrInsertWith returns the live node cached under b, or calls factory to
// build a fresh one, caches a weak reference to it, and returns it. factory
// must not re-enter the same cache for the same key; node construction
// initializes children lazily so this is guaranteed by construction.
func (c *nodeCache[N]) getOrInsertWith(b board.Board, factory func() *N) *N {
	if wp, ok := c.entries[b]; ok {
		if n := wp.Value(); n != nil {
			return n
		}
	}
	n := factory()
	c.entries[b] = weak.Make(n)
	return n
}

// strongCount returns the number of currently-live entries: those whose
// weak reference still upgrades.
func (c *nodeCache[N]) strongCount() int {
	count := 0
	for _, wp := range c.entries {
		if wp.Value() != nil {
			count++
		}
	}
	return count
}

// len returns the number of entries, including stale ones not yet swept.
func (c *nodeCache[N]) len() int {
	return len(c.entries)
}

// gc removes every entry whose weak reference no longer upgrades.
func (c *nodeCache[N]) gc() {
	for k, wp := range c.entries {
		if wp.Value() == nil {
			delete(c.entries, k)
		}
	}
}

// treeCache bundles the two independent caches a SearchTree needs: one for
// PlayerNodes, one for ComputerNodes.
type treeCache[T any] struct {
	playerNodes   *nodeCache[PlayerNode[T]]
	computerNodes *nodeCache[ComputerNode[T]]
}

func newTreeCache[T any]() *treeCache[T] {
	return &treeCache[T]{
		playerNodes:   newNodeCache[PlayerNode[T]](),
		computerNodes: newNodeCache[ComputerNode[T]](),
	}
}
