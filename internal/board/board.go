// Package board implements the bit-packed 2048 board representation: a
// 64-bit value encoding a 4x4 grid of nibble tiles, plus the precomputed
// lookup tables that make evaluating a move a handful of array reads.
package board

import (
	"fmt"
	"math/bits"

	"github.com/chewxy/math32"
	"github.com/pkg/errors"
)

// Row packs four tiles into four nibbles. The most significant nibble is
// the leftmost tile.
type Row uint16

// Board packs four rows into 64 bits. The most significant 16 bits are the
// top row; within a row, the most significant nibble is the leftmost tile.
// Board is a plain value type: equality and hashing are just integer
// equality and hashing of the underlying uint64, which is why it doubles as
// its own transposition-cache key (see internal/engine).
type Board uint64

// column is the bit layout used internally while reassembling a board from
// Up/Down move-table lookups: a row's four nibbles spread into the low
// nibble of each of the four 16-bit lanes of a 64-bit word.
type column uint64

const columnMask uint64 = 0x000F_000F_000F_000F

// columnFromRow spreads row's four nibbles into lane-aligned position, the
// reverse direction from their row packing. The exact shift amounts (12, 24,
// 36) are part of the contract with makeColumnBoard below: both sides must
// agree on the same lane layout, which is in turn the layout MakeMove(Up)
// and MakeMove(Down) depend on.
func columnFromRow(r Row) column {
	x := uint64(r)
	return column((x | x<<12 | x<<24 | x<<36) & columnMask)
}

// makeColumnBoard reassembles a board from four columns, one per board
// column 0..3 left to right. The shift amounts (12, 8, 4, 0) match the
// lane layout columnFromRow produces.
func makeColumnBoard(cols [4]column) Board {
	var b uint64
	b |= uint64(cols[0]) << 12
	b |= uint64(cols[1]) << 8
	b |= uint64(cols[2]) << 4
	b |= uint64(cols[3])
	return Board(b)
}

// packRow folds four nibble-valued tiles (leftmost first) into a Row. Returns
// false if any tile does not fit in a nibble.
func packRow(tiles [4]uint8) (Row, bool) {
	var r uint16
	for _, t := range tiles {
		if t > 0b1111 {
			return 0, false
		}
		r <<= 4
		r += uint16(t)
	}
	return Row(r), true
}

// unpack spreads a Row back into its four nibble tiles, leftmost first.
func (r Row) unpack() [4]uint8 {
	return [4]uint8{
		uint8((r & 0b1111_0000_0000_0000) >> 12),
		uint8((r & 0b0000_1111_0000_0000) >> 8),
		uint8((r & 0b0000_0000_1111_0000) >> 4),
		uint8(r & 0b0000_0000_0000_1111),
	}
}

// reverse swaps nibble order within the row (tile0<->tile3, tile1<->tile2).
func (r Row) reverse() Row {
	return Row((r >> 12) |
		((r >> 4) & 0b0000_0000_1111_0000) |
		((r << 4) & 0b0000_1111_0000_0000) |
		(r << 12))
}

// Rows returns the board's four row words, top to bottom.
func (b Board) Rows() [4]Row {
	return [4]Row{
		Row((b & 0xFFFF_0000_0000_0000) >> 48),
		Row((b & 0x0000_FFFF_0000_0000) >> 32),
		Row((b & 0x0000_0000_FFFF_0000) >> 16),
		Row(b & 0x0000_0000_0000_FFFF),
	}
}

// FromRows packs four row words, top to bottom, into a Board.
func FromRows(rows [4]Row) Board {
	var b uint64
	b |= uint64(rows[0]) << 48
	b |= uint64(rows[1]) << 32
	b |= uint64(rows[2]) << 16
	b |= uint64(rows[3])
	return Board(b)
}

// toLog converts a human-visible tile value (0, or a power of two in
// [2, 32768]) to its nibble exponent. It computes the exponent via a
// floating-point log2 and an exact round, rejecting any input whose rounded
// exponent doesn't reproduce it within a 1e-10 tolerance.
func toLog(n uint32) (uint8, bool) {
	if n == 0 {
		return 0, true
	}
	log := math32.Log2(float32(n))
	rounded := math32.Round(log)
	if math32.Abs(rounded-log) >= 1e-10 || rounded < 1 {
		return 0, false
	}
	return uint8(rounded), true
}

// FromHuman builds a Board from a 4x4 grid of human-visible values (0 for
// empty, or 2^k for a visible tile). It fails with ErrInvalidHumanCell if
// any cell is neither zero nor a power of two representable in a nibble
// (i.e. in [2, 32768]).
func FromHuman(grid [4][4]uint32) (Board, error) {
	var rows [4]Row
	for x, row := range grid {
		var nibbles [4]uint8
		for y, tile := range row {
			log, ok := toLog(tile)
			if !ok {
				return 0, errors.Wrapf(ErrInvalidHumanCell,
					"cell (%d,%d) = %d is not zero or a power of two in [2,32768]", x, y, tile)
			}
			nibbles[y] = log
		}
		r, ok := packRow(nibbles)
		if !ok {
			return 0, errors.Wrapf(ErrInvalidHumanCell,
				"row %d has an exponent too large to fit in a nibble", x)
		}
		rows[x] = r
	}
	return FromRows(rows), nil
}

// ToHuman renders the board as a 4x4 grid of human-visible values (0 for
// empty, or 2^k for a visible tile).
func (b Board) ToHuman() [4][4]uint32 {
	var out [4][4]uint32
	for x, row := range b.Rows() {
		for y, tile := range row.unpack() {
			if tile == 0 {
				continue
			}
			out[x][y] = 1 << tile
		}
	}
	return out
}

// Transpose returns the board whose (i,j) tile equals the input's (j,i)
// tile. It runs a masked delta-swap in two passes: first swap the 1x1
// nibbles across the diagonal of each 2x2 block, then swap the two
// off-diagonal 2x2 blocks. The exact masks are part of the contract: MakeMove(Up) and
// MakeMove(Down) fold a Transpose into their reassembly and must see the
// identical bit layout.
func (b Board) Transpose() Board {
	x := uint64(b)
	a1 := x & 0xF0F0_0F0F_F0F0_0F0F
	a2 := x & 0x0000_F0F0_0000_F0F0
	a3 := x & 0x0F0F_0000_0F0F_0000
	a := a1 | (a2 << 12) | (a3 >> 12)

	b1 := a & 0xFF00_FF00_00FF_00FF
	b2 := a & 0x00FF_00FF_0000_0000
	b3 := a & 0x0000_0000_FF00_FF00
	return Board(b1 | (b2 >> 24) | (b3 << 24))
}

// CountEmpty returns the number of empty (zero-nibble) tiles. It runs a
// nibble-parallel "is this nibble nonzero" reduction, then sums the 16
// per-nibble results by repeated shift-and-add; the final 0xf mask isolates
// the total even though intermediate adds can carry into neighboring
// nibbles. A total of 16 would wrap to 0 under that mask, so the all-empty
// board is answered up front: CountEmpty(0) is always 16.
func (b Board) CountEmpty() int {
	if b == 0 {
		return 16
	}
	x := uint64(b)
	x |= (x >> 2) & 0x3333_3333_3333_3333
	x |= x >> 1
	x = (^x) & 0x1111_1111_1111_1111
	x += x >> 32
	x += x >> 16
	x += x >> 8
	x += x >> 4
	return int(x & 0xf)
}

// CountDistinctTiles returns the number of distinct nonzero tile values on
// the board.
func (b Board) CountDistinctTiles() int {
	x := uint64(b)
	var set uint16
	for x != 0 {
		set |= 1 << (x & 0xF)
		x >>= 4
	}
	set &^= 1 // clear the "empty" bit
	return bits.OnesCount16(set)
}

// String renders the board as four lines of four right-aligned, width-6
// decimal values, newline-terminated.
func (b Board) String() string {
	s := ""
	for _, row := range b.ToHuman() {
		for _, tile := range row {
			s += fmt.Sprintf("%6d", tile)
		}
		s += "\n"
	}
	return s
}

// GoString renders the board's rows as four 4-bit nibble groups, for
// debugging.
func (b Board) GoString() string {
	s := ""
	for _, row := range b.Rows() {
		n := row.unpack()
		s += fmt.Sprintf("[%04b %04b %04b %04b] ", n[0], n[1], n[2], n[3])
	}
	return s
}
