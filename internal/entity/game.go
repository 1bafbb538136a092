package entity

import "github.com/rocketscienceinc/tictactoe-agent/internal/tictactoe"

const (
	MessageYourMove  = "Your move!"
	MessageHumanWins = "You win!"
	MessageAgentWins = "Agent wins!"
	MessageDraw      = "It's a draw!"
)

// Game is one human-versus-agent session.
type Game struct {
	ID        string            `json:"id"`
	State     *tictactoe.Engine `json:"state"`
	HumanMark tictactoe.Mark    `json:"human_mark"`
	AgentMark tictactoe.Mark    `json:"agent_mark"`
	Message   string            `json:"message"`
}

func NewGame(id string, agentMark tictactoe.Mark) *Game {
	return &Game{
		ID:        id,
		State:     tictactoe.NewEngine(),
		HumanMark: agentMark.Opponent(),
		AgentMark: agentMark,
		Message:   MessageYourMove,
	}
}

func (that *Game) IsFinished() bool {
	return that.State.Outcome().IsTerminal()
}

// UpdateMessage - sets the message matching the current outcome.
func (that *Game) UpdateMessage() {
	outcome := that.State.Outcome()

	switch {
	case outcome.IsWinFor(that.HumanMark):
		that.Message = MessageHumanWins
	case outcome.IsWinFor(that.AgentMark):
		that.Message = MessageAgentWins
	case outcome.Kind == tictactoe.OutcomeDraw:
		that.Message = MessageDraw
	default:
		that.Message = MessageYourMove
	}
}

// Clone - deep copy, so stored sessions never alias caller state.
func (that *Game) Clone() *Game {
	clone := *that
	if that.State != nil {
		state := *that.State
		clone.State = &state
	}

	return &clone
}
