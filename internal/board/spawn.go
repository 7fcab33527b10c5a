package board

import "math/rand"

// SpawnsWith returns, for each empty cell in most-significant-nibble-first
// order (top-left to bottom-right in row-major layout, i.e. nibble index 15
// down to 0), a board with that cell set to the given nibble value. value
// should be 1 (human "2") or 2 (human "4"). The iteration order is part of
// the public contract: internal/engine's ComputerNode pairs the i-th board
// from SpawnsWith(1) with the i-th board from SpawnsWith(2), and the two
// must agree on which cell moved.
func (b Board) SpawnsWith(value uint8) []Board {
	boards := make([]Board, 0, 16)
	x := uint64(b)
	for i := 15; i >= 0; i-- {
		shift := uint(i) * 4
		if x&(uint64(0xF)<<shift) == 0 {
			boards = append(boards, Board(x|uint64(value)<<shift))
		}
	}
	return boards
}

// AddRandomTile returns a board with a tile spawned into a uniformly chosen
// empty cell: with probability 0.9 the spawned tile is a human "2", and
// otherwise a human "4". It uses plain top-level math/rand calls rather
// than a locally seeded *rand.Rand, since the engine has no need to
// reproduce a particular sequence across runs.
//
// AddRandomTile fails with ErrNoEmptyCells if the board is full; callers
// should check CountEmpty or IsGameOver first.
func (b Board) AddRandomTile() (Board, error) {
	x := uint64(b)
	var cells []int
	for i := 15; i >= 0; i-- {
		shift := uint(i) * 4
		if x&(uint64(0xF)<<shift) == 0 {
			cells = append(cells, i)
		}
	}
	if len(cells) == 0 {
		return 0, ErrNoEmptyCells
	}

	cell := cells[rand.Intn(len(cells))]
	value := uint64(1)
	if rand.Float64() < 0.1 {
		value = 2
	}
	shift := uint(cell) * 4
	return Board(x | value<<shift), nil
}
