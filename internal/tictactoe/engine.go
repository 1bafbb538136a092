package tictactoe

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rocketscienceinc/tictactoe-agent/internal/apperror"
)

var (
	ErrIllegalMove  = errors.New("illegal move")
	ErrCellOccupied = fmt.Errorf("%w: cell is already occupied", ErrIllegalMove)
	ErrInvalidCell  = fmt.Errorf("%w: invalid cell index", ErrIllegalMove)
	ErrInvalidMark  = fmt.Errorf("%w: invalid mark", ErrIllegalMove)

	WinCombos = [][3]int{
		{0, 1, 2},
		{3, 4, 5},
		{6, 7, 8},
		{0, 3, 6},
		{1, 4, 7},
		{2, 5, 8},
		{0, 4, 8},
		{2, 4, 6},
	}

	mainDiagonal = [3]int{0, 4, 8}
	antiDiagonal = [3]int{2, 4, 6}
)

// Engine owns one board and its outcome. It is not safe for concurrent use;
// every game gets its own Engine.
type Engine struct {
	board   Board
	outcome Outcome
}

func NewEngine() *Engine {
	engine := &Engine{}
	engine.Reset()

	return engine
}

// Reset - clears the board and starts a new game.
func (that *Engine) Reset() {
	that.board = Board{}
	that.outcome = InProgress()
}

// LegalActions - ascending indices of the empty cells.
func (that *Engine) LegalActions() []int {
	return that.board.EmptyCells()
}

// ApplyMove - places mark on cell. A rejected move leaves the engine untouched.
func (that *Engine) ApplyMove(cell int, mark Mark) error {
	if that.outcome.IsTerminal() {
		return apperror.ErrGameFinished
	}

	if cell < 0 || cell >= BoardSize {
		return fmt.Errorf("%w: cell %d", ErrInvalidCell, cell)
	}

	if !mark.IsPlayer() {
		return fmt.Errorf("%w: %q", ErrInvalidMark, mark)
	}

	if that.board[cell] != EmptyCell {
		return fmt.Errorf("%w: cell %d", ErrCellOccupied, cell)
	}

	that.board[cell] = mark

	switch {
	case that.completesLine(cell, mark):
		that.outcome = Win(mark)
	case that.isFull():
		that.outcome = Draw()
	}

	return nil
}

func (that *Engine) Fingerprint() Fingerprint {
	return that.board.Fingerprint()
}

// Outcome stays terminal until Reset.
func (that *Engine) Outcome() Outcome {
	return that.outcome
}

// Board - returns a copy of the current board.
func (that *Engine) Board() Board {
	return that.board
}

// Restore - loads a stored board and derives its outcome from scratch.
func (that *Engine) Restore(board Board) error {
	if err := board.Validate(); err != nil {
		return err
	}

	var winners []Mark
	for _, combo := range WinCombos {
		a, b, c := board[combo[0]], board[combo[1]], board[combo[2]]
		if a != EmptyCell && a == b && b == c {
			winners = append(winners, a)
		}
	}

	outcome := InProgress()
	if len(winners) > 0 {
		for _, winner := range winners[1:] {
			if winner != winners[0] {
				return fmt.Errorf("%w: both sides have three in a row", ErrInvalidBoard)
			}
		}
		outcome = Win(winners[0])
	} else if len(board.EmptyCells()) == 0 {
		outcome = Draw()
	}

	that.board = board
	that.outcome = outcome

	return nil
}

// completesLine checks only the lines running through the just-played cell.
func (that *Engine) completesLine(cell int, mark Mark) bool {
	row := cell / rowSize
	col := cell % rowSize

	lines := [][3]int{
		{row * rowSize, row*rowSize + 1, row*rowSize + 2},
		{col, col + rowSize, col + 2*rowSize},
	}

	if cell%4 == 0 {
		lines = append(lines, mainDiagonal)
	}

	if cell == 2 || cell == 4 || cell == 6 {
		lines = append(lines, antiDiagonal)
	}

	for _, line := range lines {
		if that.board[line[0]] == mark && that.board[line[1]] == mark && that.board[line[2]] == mark {
			return true
		}
	}

	return false
}

func (that *Engine) isFull() bool {
	for _, cell := range that.board {
		if cell == EmptyCell {
			return false
		}
	}

	return true
}

type engineJSON struct {
	Board   Board   `json:"board"`
	Outcome Outcome `json:"outcome"`
}

func (that *Engine) MarshalJSON() ([]byte, error) {
	return json.Marshal(engineJSON{Board: that.board, Outcome: that.outcome})
}

// UnmarshalJSON ignores the stored outcome and re-derives it from the board.
func (that *Engine) UnmarshalJSON(data []byte) error {
	var stored engineJSON
	if err := json.Unmarshal(data, &stored); err != nil {
		return fmt.Errorf("failed to unmarshal engine: %w", err)
	}

	if err := that.Restore(stored.Board); err != nil {
		return fmt.Errorf("failed to restore board: %w", err)
	}

	return nil
}
