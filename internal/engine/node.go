package engine

import (
	"iter"

	"github.com/tile2048/engine/internal/board"
)

// PlayerNode is a position at which the human is to move. It is logically
// immutable (its board never changes), but its children are materialized
// lazily: the first call to Children builds the 4-slot container and every
// later call returns the same one, a one-shot write-once container rather
// than anything guarded by a mutex, since the whole package assumes the
// single-threaded cooperative model described in tree.go.
//
// Data is the one genuinely mutable field: a caller-chosen value the search
// layer can use for whatever it wants (a cached heuristic score, a depth
// marker, ...). Nothing in this package reads or writes it.
type PlayerNode[T any] struct {
	b        board.Board
	cache    *treeCache[T]
	children *PlayerNodeChildren[T]

	Data T
}

func newPlayerNode[T any](b board.Board, cache *treeCache[T]) *PlayerNode[T] {
	return &PlayerNode[T]{b: b, cache: cache}
}

// Board returns the board state this node represents.
func (n *PlayerNode[T]) Board() board.Board {
	return n.b
}

// Children returns this node's computer-node children, one per legal move,
// materializing them on first call.
func (n *PlayerNode[T]) Children() *PlayerNodeChildren[T] {
	if n.children == nil {
		n.children = n.buildChildren()
	}
	return n.children
}

func (n *PlayerNode[T]) buildChildren() *PlayerNodeChildren[T] {
	var nodes [4]*ComputerNode[T]
	for _, m := range board.Moves {
		next := n.b.MakeMove(m)
		if next == n.b {
			// Illegal: this move changes nothing, so the slot stays absent.
			continue
		}
		nodes[m] = n.cache.computerNodes.getOrInsertWith(next, func() *ComputerNode[T] {
			return newComputerNode(next, n.cache)
		})
	}
	return &PlayerNodeChildren[T]{nodes: nodes}
}

// PlayerNodeChildren holds a PlayerNode's children, indexed by move
// ordinal; an absent slot means that move is illegal from this position.
type PlayerNodeChildren[T any] struct {
	nodes [4]*ComputerNode[T]
}

// IsEmpty reports whether every move is illegal from this position, i.e.
// the position is terminal.
func (c *PlayerNodeChildren[T]) IsEmpty() bool {
	for _, n := range c.nodes {
		if n != nil {
			return false
		}
	}
	return true
}

// Get returns the child reached by move m, if that move is legal.
func (c *PlayerNodeChildren[T]) Get(m board.Move) (*ComputerNode[T], bool) {
	n := c.nodes[m]
	return n, n != nil
}

// All iterates the legal (Move, *ComputerNode) pairs in Left, Right, Up,
// Down ordinal order, skipping illegal moves.
func (c *PlayerNodeChildren[T]) All() iter.Seq2[board.Move, *ComputerNode[T]] {
	return func(yield func(board.Move, *ComputerNode[T]) bool) {
		for _, m := range board.Moves {
			n := c.nodes[m]
			if n == nil {
				continue
			}
			if !yield(m, n) {
				return
			}
		}
	}
}

// Values iterates the legal children in the same order as All, without
// their moves.
func (c *PlayerNodeChildren[T]) Values() iter.Seq[*ComputerNode[T]] {
	return func(yield func(*ComputerNode[T]) bool) {
		for _, m := range board.Moves {
			n := c.nodes[m]
			if n == nil {
				continue
			}
			if !yield(n) {
				return
			}
		}
	}
}

// ComputerNode is a position at which a random tile is about to spawn. Its
// children are two index-aligned sequences of PlayerNodes: with2[i] and
// with4[i] are the boards produced by filling the i-th empty cell with a
// human "2" and a human "4" respectively.
type ComputerNode[T any] struct {
	b        board.Board
	cache    *treeCache[T]
	children *ComputerNodeChildren[T]
}

func newComputerNode[T any](b board.Board, cache *treeCache[T]) *ComputerNode[T] {
	return &ComputerNode[T]{b: b, cache: cache}
}

// Board returns the board state this node represents.
func (n *ComputerNode[T]) Board() board.Board {
	return n.b
}

// Children returns this node's player-node children, materializing them on
// first call. A ComputerNode is only ever created from a board produced by
// a legal player move, which by the game's rules always has at least one
// empty cell, so Children is never empty.
func (n *ComputerNode[T]) Children() *ComputerNodeChildren[T] {
	if n.children == nil {
		n.children = n.buildChildren()
	}
	return n.children
}

func (n *ComputerNode[T]) buildChildren() *ComputerNodeChildren[T] {
	with2Boards := n.b.SpawnsWith(1)
	with4Boards := n.b.SpawnsWith(2)

	with2 := make([]*PlayerNode[T], len(with2Boards))
	for i, b := range with2Boards {
		with2[i] = n.cache.playerNodes.getOrInsertWith(b, func() *PlayerNode[T] {
			return newPlayerNode(b, n.cache)
		})
	}

	with4 := make([]*PlayerNode[T], len(with4Boards))
	for i, b := range with4Boards {
		with4[i] = n.cache.playerNodes.getOrInsertWith(b, func() *PlayerNode[T] {
			return newPlayerNode(b, n.cache)
		})
	}

	return &ComputerNodeChildren[T]{with2: with2, with4: with4}
}

// ComputerNodeChildren holds a ComputerNode's children, split by the tile
// value the computer spawned. with2 and with4 always have equal length,
// one entry per empty cell of the parent board, and with2[i]/with4[i]
// correspond to the same cell.
type ComputerNodeChildren[T any] struct {
	with2 []*PlayerNode[T]
	with4 []*PlayerNode[T]
}

// With2 returns the game states produced by spawning a human "2".
func (c *ComputerNodeChildren[T]) With2() iter.Seq[*PlayerNode[T]] {
	return func(yield func(*PlayerNode[T]) bool) {
		for _, n := range c.with2 {
			if !yield(n) {
				return
			}
		}
	}
}

// With4 returns the game states produced by spawning a human "4".
func (c *ComputerNodeChildren[T]) With4() iter.Seq[*PlayerNode[T]] {
	return func(yield func(*PlayerNode[T]) bool) {
		for _, n := range c.with4 {
			if !yield(n) {
				return
			}
		}
	}
}

// Variants returns the number of distinct empty cells a tile could have
// spawned into (the common length of With2 and With4).
func (c *ComputerNodeChildren[T]) Variants() int {
	return len(c.with2)
}
