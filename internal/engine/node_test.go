package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tile2048/engine/internal/board"
)

func mustFromHuman(t *testing.T, grid [4][4]uint32) board.Board {
	t.Helper()
	b, err := board.FromHuman(grid)
	require.NoError(t, err)
	return b
}

func TestPlayerNodeChildrenOneSlotPerLegalMove(t *testing.T) {
	cache := newTreeCache[struct{}]()
	b := mustFromHuman(t, [4][4]uint32{
		{2, 2, 4, 4},
		{0, 2, 2, 0},
		{0, 2, 2, 2},
		{2, 0, 0, 2},
	})
	node := newPlayerNode(b, cache)

	children := node.Children()
	assert.False(t, children.IsEmpty())

	for _, m := range board.Moves {
		child, ok := children.Get(m)
		require.True(t, ok, "%s should be legal", m)
		assert.Equal(t, b.MakeMove(m), child.Board())
	}

	seen := map[board.Move]bool{}
	for m, child := range children.All() {
		seen[m] = true
		assert.Equal(t, b.MakeMove(m), child.Board())
	}
	assert.Len(t, seen, 4)
}

func TestPlayerNodeChildrenSkipsIllegalMoves(t *testing.T) {
	cache := newTreeCache[struct{}]()
	b := mustFromHuman(t, [4][4]uint32{
		{2, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	})
	node := newPlayerNode(b, cache)

	children := node.Children()
	_, ok := children.Get(board.Left)
	assert.False(t, ok, "sliding left does not move the single tile, so it is illegal")

	_, ok = children.Get(board.Up)
	assert.False(t, ok)

	count := 0
	for range children.Values() {
		count++
	}
	assert.Equal(t, 2, count, "only Right and Down change this board")
}

func TestPlayerNodeTerminalBoardHasEmptyChildren(t *testing.T) {
	cache := newTreeCache[struct{}]()
	terminal := mustFromHuman(t, [4][4]uint32{
		{4, 16, 8, 4},
		{8, 128, 32, 2},
		{2, 32, 16, 8},
		{4, 2, 4, 2},
	})
	node := newPlayerNode(terminal, cache)
	assert.True(t, node.Children().IsEmpty())
}

func TestPlayerNodeChildrenShareCache(t *testing.T) {
	cache := newTreeCache[struct{}]()
	b := mustFromHuman(t, [4][4]uint32{
		{2, 2, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	})

	left := newPlayerNode(b, cache)
	right := cache.playerNodes.getOrInsertWith(b, func() *PlayerNode[struct{}] {
		t2 := newPlayerNode(b, cache)
		return t2
	})

	leftChild, ok := left.Children().Get(board.Left)
	require.True(t, ok)
	rightChild, ok := right.Children().Get(board.Left)
	require.True(t, ok)
	assert.Same(t, leftChild, rightChild, "the same target board must resolve to the same ComputerNode")
}

func TestComputerNodeChildrenAreIndexAlignedByEmptyCell(t *testing.T) {
	cache := newTreeCache[struct{}]()
	b := mustFromHuman(t, [4][4]uint32{
		{0, 8, 8, 8},
		{8, 8, 0, 8},
		{8, 8, 8, 0},
		{8, 0, 8, 8},
	})
	node := newComputerNode(b, cache)

	children := node.Children()
	assert.Equal(t, 4, children.Variants())

	expectedCells := [][2]int{{0, 0}, {1, 2}, {2, 3}, {3, 1}}

	var with2, with4 []board.Board
	for c := range children.With2() {
		with2 = append(with2, c.Board())
	}
	for c := range children.With4() {
		with4 = append(with4, c.Board())
	}
	require.Len(t, with2, 4)
	require.Len(t, with4, 4)

	for i, cell := range expectedCells {
		h2 := with2[i].ToHuman()
		h4 := with4[i].ToHuman()
		assert.Equal(t, uint32(2), h2[cell[0]][cell[1]])
		assert.Equal(t, uint32(4), h4[cell[0]][cell[1]])
	}
}

func TestNodesCarryMutableData(t *testing.T) {
	cache := newTreeCache[int]()
	node := newPlayerNode(board.Board(0), cache)
	assert.Equal(t, 0, node.Data)
	node.Data = 7
	assert.Equal(t, 7, node.Data)
}
