package tictactoe

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBoard_FingerprintIsInjective(t *testing.T) {
	// Given: every possible assignment of the three cell values
	marks := []Mark{EmptyCell, MarkX, MarkO}
	seen := make(map[Fingerprint]Board, 19683)

	var board Board
	var fill func(cell int)
	fill = func(cell int) {
		if cell == BoardSize {
			// When: the board is fingerprinted
			fp := board.Fingerprint()

			// Then: no other board produced the same key
			prev, ok := seen[fp]
			require.False(t, ok, "%v and %v collide on %q", prev, board, fp)
			seen[fp] = board
			return
		}
		for _, mark := range marks {
			board[cell] = mark
			fill(cell + 1)
		}
	}
	fill(0)

	assert.Len(t, seen, 19683)
}

func TestParseFingerprint(t *testing.T) {
	t.Run("Round trip", func(t *testing.T) {
		// Given: a valid position
		board := Board{MarkX, EmptyCell, MarkO, EmptyCell, MarkX, EmptyCell, EmptyCell, EmptyCell, MarkO}

		// When: its fingerprint is parsed back
		parsed, err := ParseFingerprint(string(board.Fingerprint()))

		// Then: the same board comes out
		require.NoError(t, err)
		assert.Equal(t, board, parsed)
	})

	tests := []struct {
		name string
		raw  string
	}{
		{name: "too short", raw: "X O"},
		{name: "too long", raw: "          "},
		{name: "unknown symbol", raw: "x        "},
		{name: "unbalanced", raw: "XXX      "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// When: an invalid fingerprint is parsed
			_, err := ParseFingerprint(tt.raw)

			// Then: ErrInvalidBoard is returned
			require.ErrorIs(t, err, ErrInvalidBoard)
		})
	}
}

func TestBoard_Rows(t *testing.T) {
	// Given: a board with marks on the anti-diagonal
	board := Board{EmptyCell, EmptyCell, MarkX, EmptyCell, MarkO, EmptyCell, MarkX}

	// When: it is split into rows
	rows := board.Rows()

	// Then: each row holds three consecutive cells
	assert.Equal(t, [3]Mark{EmptyCell, EmptyCell, MarkX}, rows[0])
	assert.Equal(t, [3]Mark{EmptyCell, MarkO, EmptyCell}, rows[1])
	assert.Equal(t, [3]Mark{MarkX, EmptyCell, EmptyCell}, rows[2])
}

func TestMark_Opponent(t *testing.T) {
	assert.Equal(t, MarkO, MarkX.Opponent())
	assert.Equal(t, MarkX, MarkO.Opponent())
	assert.Equal(t, EmptyCell, EmptyCell.Opponent())
}
