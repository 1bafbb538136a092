package rest

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rocketscienceinc/tictactoe-agent/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-agent/internal/entity"
	"github.com/rocketscienceinc/tictactoe-agent/internal/tictactoe"
)

type gameUseCase interface {
	NewGame(ctx context.Context) (*entity.Game, error)
	GetGame(ctx context.Context, id string) (*entity.Game, error)
	MakeTurn(ctx context.Context, id string, cell int) (*entity.Game, error)
	ResetGame(ctx context.Context, id string) (*entity.Game, error)
	DeleteGame(ctx context.Context, id string) error
}

type turnRequest struct {
	Cell *int `json:"cell"`
}

type gameResponse struct {
	ID           string               `json:"id"`
	Board        tictactoe.Board      `json:"board"`
	Rows         [3][3]tictactoe.Mark `json:"rows"`
	Outcome      tictactoe.Outcome    `json:"outcome"`
	LegalActions []int                `json:"legal_actions"`
	HumanMark    tictactoe.Mark       `json:"human_mark"`
	AgentMark    tictactoe.Mark       `json:"agent_mark"`
	Message      string               `json:"message"`
}

type errorResponse struct {
	Error string `json:"error"`
}

type gameHandlers struct {
	logger *slog.Logger
	uGame  gameUseCase
}

func newGameHandlers(logger *slog.Logger, uGame gameUseCase) *gameHandlers {
	return &gameHandlers{
		logger: logger.With("component", "rest"),
		uGame:  uGame,
	}
}

func (that *gameHandlers) newGame(w http.ResponseWriter, r *http.Request) {
	game, err := that.uGame.NewGame(r.Context())
	if err != nil {
		that.writeError(w, err)
		return
	}

	that.writeGame(w, http.StatusCreated, game)
}

func (that *gameHandlers) getGame(w http.ResponseWriter, r *http.Request) {
	game, err := that.uGame.GetGame(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		that.writeError(w, err)
		return
	}

	that.writeGame(w, http.StatusOK, game)
}

func (that *gameHandlers) makeTurn(w http.ResponseWriter, r *http.Request) {
	var req turnRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Cell == nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "body must be {\"cell\": <0-8>}"})
		return
	}

	game, err := that.uGame.MakeTurn(r.Context(), chi.URLParam(r, "id"), *req.Cell)
	if err != nil {
		that.writeError(w, err)
		return
	}

	that.writeGame(w, http.StatusOK, game)
}

func (that *gameHandlers) resetGame(w http.ResponseWriter, r *http.Request) {
	game, err := that.uGame.ResetGame(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		that.writeError(w, err)
		return
	}

	that.writeGame(w, http.StatusOK, game)
}

func (that *gameHandlers) deleteGame(w http.ResponseWriter, r *http.Request) {
	if err := that.uGame.DeleteGame(r.Context(), chi.URLParam(r, "id")); err != nil {
		that.writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (that *gameHandlers) writeGame(w http.ResponseWriter, status int, game *entity.Game) {
	board := game.State.Board()

	writeJSON(w, status, gameResponse{
		ID:           game.ID,
		Board:        board,
		Rows:         board.Rows(),
		Outcome:      game.State.Outcome(),
		LegalActions: game.State.LegalActions(),
		HumanMark:    game.HumanMark,
		AgentMark:    game.AgentMark,
		Message:      game.Message,
	})
}

// writeError - maps domain errors to status codes.
func (that *gameHandlers) writeError(w http.ResponseWriter, err error) {
	var status int

	switch {
	case errors.Is(err, apperror.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, tictactoe.ErrIllegalMove):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, apperror.ErrGameFinished):
		status = http.StatusConflict
	default:
		that.logger.Error("request failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal server error"})
		return
	}

	writeJSON(w, status, errorResponse{Error: err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
