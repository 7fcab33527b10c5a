package board

import "github.com/pkg/errors"

// ErrInvalidHumanCell is returned by FromHuman when a cell is neither zero
// nor a power of two in [2, 32768].
var ErrInvalidHumanCell = errors.New("board: invalid human cell value")

// ErrNoEmptyCells is returned by AddRandomTile when the board has no empty
// cell to spawn a tile into. Callers should check CountEmpty or IsGameOver
// before calling AddRandomTile.
var ErrNoEmptyCells = errors.New("board: no empty cells to spawn a tile")
