package board

import "sync"

// Move is one of the four directions a player can slide the board in. The
// ordinal values are part of the contract: they index PlayerNode's
// fixed-size children array in internal/engine.
type Move uint8

const (
	Left Move = iota
	Right
	Up
	Down
)

// Moves gives the fixed Left, Right, Up, Down iteration order.
var Moves = [4]Move{Left, Right, Up, Down}

// String renders the move's name, for diagnostics only.
func (m Move) String() string {
	switch m {
	case Left:
		return "Left"
	case Right:
		return "Right"
	case Up:
		return "Up"
	case Down:
		return "Down"
	default:
		return "Invalid"
	}
}

// moveRowLeft is the scalar reference implementation of "slide and merge
// one row left". It sweeps left to right holding a pending tile: zero
// tiles are skipped, a nonzero tile becomes the new pending if there isn't
// one yet, a tile matching the pending merges into pending+1, and a tile
// that doesn't match flushes the old pending and becomes the new one. Any
// tile left pending at the end is flushed too.
//
// Not much effort is spent optimizing this, since every input is run
// through it exactly once at table-build time and the result is cached.
// A merge of two 32768 tiles (nibble value 15) would need to emit 16,
// which doesn't fit in a nibble; packRow rejects that and moveRowLeft
// falls back to an all-zero row rather than panicking. Real play can never
// reach that state.
func moveRowLeft(row Row) Row {
	from := row.unpack()

	var to [4]uint8
	var last uint8
	var lastIndex int

	for _, tile := range from {
		if tile == 0 {
			continue
		}
		if last == 0 {
			last = tile
			continue
		}
		if tile == last {
			to[lastIndex] = last + 1
			last = 0
		} else {
			to[lastIndex] = last
			last = tile
		}
		lastIndex++
	}
	if last != 0 {
		to[lastIndex] = last
	}

	packed, ok := packRow(to)
	if !ok {
		return 0
	}
	return packed
}

// moveTables holds the four precomputed, 65536-entry move tables. They
// cost about 1 MiB and are process-lifetime immutable once built.
type moveTables struct {
	left, right [65536]Row
	up, down    [65536]column
}

// tables is built once, on first use, via sync.OnceValue. Every read after
// the first call observes the fully populated tables; there is no code
// path that can observe a "not yet initialized" state, which is why the
// engine has no distinct TableMissing error value.
var tables = sync.OnceValue(buildMoveTables)

func buildMoveTables() *moveTables {
	t := &moveTables{}
	for i := 0; i < 65536; i++ {
		row := Row(i)
		left := moveRowLeft(row)
		right := moveRowLeft(row.reverse()).reverse()

		t.left[i] = left
		t.right[i] = right
		t.up[i] = columnFromRow(left)
		t.down[i] = columnFromRow(right)
	}
	return t
}

// MakeMove returns the board that results from sliding and merging in
// direction m. If m is illegal (changes nothing), the result equals b.
func (b Board) MakeMove(m Move) Board {
	t := tables()
	switch m {
	case Left:
		rows := b.Rows()
		for i, r := range rows {
			rows[i] = t.left[r]
		}
		return FromRows(rows)
	case Right:
		rows := b.Rows()
		for i, r := range rows {
			rows[i] = t.right[r]
		}
		return FromRows(rows)
	case Up:
		rows := b.Transpose().Rows()
		var cols [4]column
		for i, r := range rows {
			cols[i] = t.up[r]
		}
		return makeColumnBoard(cols)
	case Down:
		rows := b.Transpose().Rows()
		var cols [4]column
		for i, r := range rows {
			cols[i] = t.down[r]
		}
		return makeColumnBoard(cols)
	default:
		return b
	}
}

// IsGameOver reports whether no move changes the board.
func (b Board) IsGameOver() bool {
	for _, m := range Moves {
		if b.MakeMove(m) != b {
			return false
		}
	}
	return true
}
