package engine

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tile2048/engine/internal/board"
)

func TestNewSearchTreeStartsWithOnlyTheRoot(t *testing.T) {
	tree := New[struct{}](board.Board(0))
	assert.Equal(t, board.Board(0), tree.Root().Board())
	assert.Equal(t, 1, tree.KnownPlayerNodeCount())
	assert.Equal(t, 0, tree.KnownComputerNodeCount())
}

func TestSearchTreeCachesRootChildren(t *testing.T) {
	start, err := board.FromHuman([4][4]uint32{
		{2, 2, 4, 4},
		{0, 2, 2, 0},
		{0, 2, 2, 2},
		{2, 0, 0, 2},
	})
	require.NoError(t, err)

	tree := New[struct{}](start)
	root := tree.Root()
	_ = root.Children()

	assert.Equal(t, 4, tree.KnownComputerNodeCount(), "all four directions are legal from this board")
}

func TestSetRootDropsUnreachableNodes(t *testing.T) {
	start, err := board.FromHuman([4][4]uint32{
		{2, 2, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	})
	require.NoError(t, err)

	tree := New[struct{}](start)
	children := tree.Root().Children()
	_, ok := children.Get(board.Left)
	require.True(t, ok)

	unrelated, err := board.FromHuman([4][4]uint32{
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 2, 0},
	})
	require.NoError(t, err)

	tree.SetRoot(unrelated)
	assert.Equal(t, unrelated, tree.Root().Board())
	assert.Equal(t, 1, tree.KnownPlayerNodeCount(),
		"advancing to an unrelated board should leave only the new root reachable")
}

func TestSetRootMovesRootToChildBoard(t *testing.T) {
	start, err := board.FromHuman([4][4]uint32{
		{2, 2, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	})
	require.NoError(t, err)

	tree := New[struct{}](start)
	root := tree.Root()
	children := root.Children()
	child, ok := children.Get(board.Left)
	require.True(t, ok)
	childBoard := child.Board()

	tree.SetRoot(childBoard)
	assert.Equal(t, childBoard, tree.Root().Board())
}

func TestExportDOTRendersVisitedSubtreeOnly(t *testing.T) {
	start, err := board.FromHuman([4][4]uint32{
		{2, 2, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	})
	require.NoError(t, err)

	tree := New[struct{}](start)
	root := tree.Root()

	dot, err := tree.ExportDOT()
	require.NoError(t, err)
	assert.True(t, strings.Contains(dot, "digraph"))
	beforeLines := strings.Count(dot, "\n")

	root.Children()
	dot, err = tree.ExportDOT()
	require.NoError(t, err)
	afterLines := strings.Count(dot, "\n")
	assert.Greater(t, afterLines, beforeLines,
		"materializing the root's children should add nodes and edges to the rendered graph")
}
