package tictactoe

type OutcomeKind string

const (
	OutcomeInProgress OutcomeKind = "in_progress"
	OutcomeWin        OutcomeKind = "win"
	OutcomeDraw       OutcomeKind = "draw"
)

// Outcome is derived from the board after every move.
type Outcome struct {
	Kind   OutcomeKind `json:"kind"`
	Winner Mark        `json:"winner,omitempty"`
}

func InProgress() Outcome {
	return Outcome{Kind: OutcomeInProgress}
}

func Win(mark Mark) Outcome {
	return Outcome{Kind: OutcomeWin, Winner: mark}
}

func Draw() Outcome {
	return Outcome{Kind: OutcomeDraw}
}

func (that Outcome) IsTerminal() bool {
	return that.Kind == OutcomeWin || that.Kind == OutcomeDraw
}

func (that Outcome) IsWinFor(mark Mark) bool {
	return that.Kind == OutcomeWin && that.Winner == mark
}
