package entity

import (
	"testing"

	"github.com/rocketscienceinc/tictactoe-agent/internal/tictactoe"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGame(t *testing.T) {
	// When: a game is created with the agent playing X
	game := NewGame("123", tictactoe.MarkX)

	// Then: the human gets O and the board is empty
	assert.Equal(t, "123", game.ID)
	assert.Equal(t, tictactoe.MarkX, game.AgentMark)
	assert.Equal(t, tictactoe.MarkO, game.HumanMark)
	assert.Equal(t, MessageYourMove, game.Message)
	assert.False(t, game.IsFinished())
	assert.Equal(t, tictactoe.Board{}, game.State.Board())
}

func TestGame_UpdateMessage(t *testing.T) {
	tests := []struct {
		name    string
		board   tictactoe.Board
		message string
	}{
		{
			name: "Human wins",
			board: tictactoe.Board{
				tictactoe.MarkO, tictactoe.MarkO, tictactoe.MarkO,
				tictactoe.MarkX, tictactoe.MarkX,
			},
			message: MessageHumanWins,
		},
		{
			name: "Agent wins",
			board: tictactoe.Board{
				tictactoe.MarkX, tictactoe.MarkO, tictactoe.MarkO,
				tictactoe.EmptyCell, tictactoe.MarkX, tictactoe.EmptyCell,
				tictactoe.EmptyCell, tictactoe.EmptyCell, tictactoe.MarkX,
			},
			message: MessageAgentWins,
		},
		{
			name: "Draw",
			board: tictactoe.Board{
				tictactoe.MarkX, tictactoe.MarkO, tictactoe.MarkX,
				tictactoe.MarkX, tictactoe.MarkO, tictactoe.MarkO,
				tictactoe.MarkO, tictactoe.MarkX, tictactoe.MarkX,
			},
			message: MessageDraw,
		},
		{
			name:    "Ongoing",
			board:   tictactoe.Board{tictactoe.MarkO},
			message: MessageYourMove,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Given: a game on the board
			game := NewGame("1", tictactoe.MarkX)
			require.NoError(t, game.State.Restore(tt.board))

			// When: the message is updated
			game.UpdateMessage()

			// Then: it matches the outcome
			assert.Equal(t, tt.message, game.Message)
		})
	}
}

func TestGame_Clone(t *testing.T) {
	// Given: a game with one move
	game := NewGame("1", tictactoe.MarkX)
	require.NoError(t, game.State.ApplyMove(0, tictactoe.MarkO))

	// When: it is cloned and the clone is played on
	clone := game.Clone()
	require.NoError(t, clone.State.ApplyMove(1, tictactoe.MarkX))

	// Then: the original board is untouched
	assert.Equal(t, tictactoe.EmptyCell, game.State.Board()[1])
	assert.Equal(t, tictactoe.MarkX, clone.State.Board()[1])
}
