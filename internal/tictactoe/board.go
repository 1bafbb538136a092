package tictactoe

import (
	"errors"
	"fmt"
	"strings"
)

const (
	BoardSize = 9
	rowSize   = 3
)

// Mark is the content of a single cell.
type Mark string

const (
	EmptyCell Mark = ""
	MarkX     Mark = "X"
	MarkO     Mark = "O"
)

// fingerprint symbols, one byte per cell.
const (
	emptySymbol = ' '
	xSymbol     = 'X'
	oSymbol     = 'O'
)

var ErrInvalidBoard = errors.New("invalid board")

// IsPlayer reports whether the mark belongs to one of the two sides.
func (that Mark) IsPlayer() bool {
	return that == MarkX || that == MarkO
}

// Opponent - returns the mark of the other side.
func (that Mark) Opponent() Mark {
	switch that {
	case MarkX:
		return MarkO
	case MarkO:
		return MarkX
	default:
		return EmptyCell
	}
}

// Board is the 3x3 grid in row-major order.
type Board [BoardSize]Mark

// Fingerprint is a deterministic serialization of a Board used as a value table key.
type Fingerprint string

// Fingerprint - serializes the board one symbol per cell, ' ' for empty.
func (that Board) Fingerprint() Fingerprint {
	var sb strings.Builder
	sb.Grow(BoardSize)

	for _, cell := range that {
		switch cell {
		case MarkX:
			sb.WriteByte(xSymbol)
		case MarkO:
			sb.WriteByte(oSymbol)
		default:
			sb.WriteByte(emptySymbol)
		}
	}

	return Fingerprint(sb.String())
}

// Rows - returns the board as three rows for display.
func (that Board) Rows() [rowSize][rowSize]Mark {
	var rows [rowSize][rowSize]Mark
	for i, cell := range that {
		rows[i/rowSize][i%rowSize] = cell
	}
	return rows
}

// EmptyCells - ascending indices of empty cells.
func (that Board) EmptyCells() []int {
	cells := make([]int, 0, BoardSize)
	for i, cell := range that {
		if cell == EmptyCell {
			cells = append(cells, i)
		}
	}
	return cells
}

// Validate checks that every cell holds a known mark and that turns alternated.
func (that Board) Validate() error {
	var x, o int
	for i, cell := range that {
		switch cell {
		case MarkX:
			x++
		case MarkO:
			o++
		case EmptyCell:
		default:
			return fmt.Errorf("%w: cell %d holds unknown mark %q", ErrInvalidBoard, i, cell)
		}
	}

	if x-o > 1 || o-x > 1 {
		return fmt.Errorf("%w: %d X marks against %d O marks", ErrInvalidBoard, x, o)
	}

	return nil
}

// ParseFingerprint - turns a fingerprint back into a board and validates it.
func ParseFingerprint(raw string) (Board, error) {
	var board Board

	if len(raw) != BoardSize {
		return board, fmt.Errorf("%w: fingerprint %q has length %d", ErrInvalidBoard, raw, len(raw))
	}

	for i := 0; i < BoardSize; i++ {
		switch raw[i] {
		case xSymbol:
			board[i] = MarkX
		case oSymbol:
			board[i] = MarkO
		case emptySymbol:
			board[i] = EmptyCell
		default:
			return board, fmt.Errorf("%w: fingerprint %q has unknown symbol %q", ErrInvalidBoard, raw, raw[i])
		}
	}

	if err := board.Validate(); err != nil {
		return board, err
	}

	return board, nil
}
