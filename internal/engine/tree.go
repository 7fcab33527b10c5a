package engine

import (
	"fmt"
	"runtime"

	"github.com/awalterschulze/gographviz"
	"github.com/tile2048/engine/internal/board"
)

// SearchTree owns the transposition cache and a strong handle to the
// current root PlayerNode. It is the only type in this package a caller
// constructs directly.
//
// Scheduling model: single-threaded cooperative. Nothing in this package
// is safe for concurrent use; a search driver that wants parallelism must
// run independent SearchTrees per goroutine, or add its own synchronization
// above this package. There are no suspension points: every method here is
// synchronous, non-blocking, and pure except for cache mutation during
// child materialization.
type SearchTree[T any] struct {
	root  *PlayerNode[T]
	cache *treeCache[T]
}

// New creates a SearchTree rooted at the given board.
func New[T any](b board.Board) *SearchTree[T] {
	cache := newTreeCache[T]()
	root := cache.playerNodes.getOrInsertWith(b, func() *PlayerNode[T] {
		return newPlayerNode(b, cache)
	})
	return &SearchTree[T]{root: root, cache: cache}
}

// Root returns the current root node.
func (t *SearchTree[T]) Root() *PlayerNode[T] {
	return t.root
}

// SetRoot replaces the current root with a (possibly already cached) node
// for board, then garbage-collects both caches. After this call, every
// cached entry is reachable from the new root, provided the caller has
// dropped any external handles to nodes outside the new root's subtree:
// advancing the root only drops this SearchTree's own strong reference to
// the old one.
func (t *SearchTree[T]) SetRoot(b board.Board) {
	t.root = t.cache.playerNodes.getOrInsertWith(b, func() *PlayerNode[T] {
		return newPlayerNode(b, t.cache)
	})

	// A weak.Pointer only reports a node dead once the collector has
	// actually reclaimed it, unlike the strong-count check a Rc-based cache
	// could do synchronously. Forcing a collection here makes the
	// known-node counts settle immediately after SetRoot returns instead of
	// lagging an indeterminate number of future GC cycles.
	runtime.GC()
	t.cache.playerNodes.gc()
	t.cache.computerNodes.gc()
}

// KnownPlayerNodeCount returns the number of currently-live PlayerNode
// cache entries, for diagnostics and tests.
func (t *SearchTree[T]) KnownPlayerNodeCount() int {
	return t.cache.playerNodes.strongCount()
}

// KnownComputerNodeCount returns the number of currently-live ComputerNode
// cache entries, for diagnostics and tests.
func (t *SearchTree[T]) KnownComputerNodeCount() int {
	return t.cache.computerNodes.strongCount()
}

// ExportDOT renders the already-materialized (visited) subtree reachable
// from the root as a Graphviz digraph, for a search driver to dump while
// debugging. It does not force any additional child materialization: nodes
// whose Children has never been called appear as childless leaves. This is
// read-only and, like the rest of the package, not safe to call
// concurrently with a mutation.
func (t *SearchTree[T]) ExportDOT() (string, error) {
	g := gographviz.NewGraph()
	if err := g.SetName("searchtree"); err != nil {
		return "", err
	}
	if err := g.SetDir(true); err != nil {
		return "", err
	}

	visitedPlayer := make(map[board.Board]bool)
	visitedComputer := make(map[board.Board]bool)

	var walkPlayer func(n *PlayerNode[T]) error
	var walkComputer func(n *ComputerNode[T]) error

	walkPlayer = func(n *PlayerNode[T]) error {
		name := playerNodeName(n.Board())
		if visitedPlayer[n.Board()] {
			return nil
		}
		visitedPlayer[n.Board()] = true
		if err := g.AddNode("searchtree", name, map[string]string{
			"label": fmt.Sprintf("%q", n.Board().String()),
			"shape": "box",
		}); err != nil {
			return err
		}

		if n.children == nil {
			return nil
		}
		for m, child := range n.children.All() {
			if err := walkComputer(child); err != nil {
				return err
			}
			if err := g.AddEdge(name, computerNodeName(child.Board()), true, map[string]string{
				"label": fmt.Sprintf("%q", m.String()),
			}); err != nil {
				return err
			}
		}
		return nil
	}

	walkComputer = func(n *ComputerNode[T]) error {
		name := computerNodeName(n.Board())
		if visitedComputer[n.Board()] {
			return nil
		}
		visitedComputer[n.Board()] = true
		if err := g.AddNode("searchtree", name, map[string]string{
			"label": fmt.Sprintf("%q", n.Board().String()),
			"shape": "ellipse",
		}); err != nil {
			return err
		}

		if n.children == nil {
			return nil
		}
		for child := range n.children.With2() {
			if err := walkPlayer(child); err != nil {
				return err
			}
			if err := g.AddEdge(name, playerNodeName(child.Board()), true, map[string]string{
				"label": `"2"`,
			}); err != nil {
				return err
			}
		}
		for child := range n.children.With4() {
			if err := walkPlayer(child); err != nil {
				return err
			}
			if err := g.AddEdge(name, playerNodeName(child.Board()), true, map[string]string{
				"label": `"4"`,
			}); err != nil {
				return err
			}
		}
		return nil
	}

	if err := walkPlayer(t.root); err != nil {
		return "", err
	}

	return g.String(), nil
}

func playerNodeName(b board.Board) string {
	return fmt.Sprintf("\"p%d\"", uint64(b))
}

func computerNodeName(b board.Board) string {
	return fmt.Sprintf("\"c%d\"", uint64(b))
}
