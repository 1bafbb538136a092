package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/rocketscienceinc/tictactoe-agent/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-agent/internal/entity"
	"github.com/rocketscienceinc/tictactoe-agent/internal/policy"
	"github.com/rocketscienceinc/tictactoe-agent/internal/tictactoe"
)

type gameRepo interface {
	CreateOrUpdate(ctx context.Context, game *entity.Game) error
	GetByID(ctx context.Context, id string) (*entity.Game, error)
	DeleteByID(ctx context.Context, id string) error
}

type actionSelector interface {
	SelectAction(state tictactoe.Fingerprint, actions []int, table policy.ValueLookup) (int, error)
}

type Options struct {
	AgentMark  tictactoe.Mark
	AgentFirst bool
}

// GameManager runs human-versus-agent sessions: every human move is answered
// by the agent until the game ends.
type GameManager struct {
	logger *slog.Logger

	gameRepo gameRepo
	selector actionSelector
	table    policy.ValueLookup
	options  Options
}

func NewGameManager(logger *slog.Logger, gameRepo gameRepo, selector actionSelector, table policy.ValueLookup, options Options) *GameManager {
	if !options.AgentMark.IsPlayer() {
		options.AgentMark = tictactoe.MarkX
	}

	return &GameManager{
		logger: logger.With("component", "game_manager"),

		gameRepo: gameRepo,
		selector: selector,
		table:    table,
		options:  options,
	}
}

// NewGame - creates a session; the agent opens when configured to go first.
func (that *GameManager) NewGame(ctx context.Context) (*entity.Game, error) {
	game := entity.NewGame(uuid.NewString(), that.options.AgentMark)

	if that.options.AgentFirst {
		if err := that.agentTurn(game); err != nil {
			return nil, fmt.Errorf("agent failed to make first turn: %w", err)
		}
	}

	if err := that.gameRepo.CreateOrUpdate(ctx, game); err != nil {
		return nil, fmt.Errorf("failed to create game: %w", err)
	}

	that.logger.Info("game created", "method", "NewGame", "gameID", game.ID)

	return game, nil
}

func (that *GameManager) GetGame(ctx context.Context, id string) (*entity.Game, error) {
	game, err := that.gameRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get game: %w", err)
	}

	return game, nil
}

// MakeTurn - applies the human move and, if the game goes on, the agent reply.
// A rejected human move is never saved.
func (that *GameManager) MakeTurn(ctx context.Context, id string, cell int) (*entity.Game, error) {
	log := that.logger.With("method", "MakeTurn", "gameID", id)

	game, err := that.GetGame(ctx, id)
	if err != nil {
		return nil, err
	}

	if game.IsFinished() {
		return game, apperror.ErrGameFinished
	}

	if err = game.State.ApplyMove(cell, game.HumanMark); err != nil {
		log.Debug("move rejected", "cell", cell, "error", err)
		return game, fmt.Errorf("failed to make turn: %w", err)
	}

	if !game.IsFinished() {
		if err = that.agentTurn(game); err != nil {
			return nil, fmt.Errorf("agent failed to make turn: %w", err)
		}
	}

	game.UpdateMessage()

	if err = that.gameRepo.CreateOrUpdate(ctx, game); err != nil {
		return nil, fmt.Errorf("failed to update game: %w", err)
	}

	if game.IsFinished() {
		outcome := game.State.Outcome()
		log.Info("game finished", "outcome", outcome.Kind, "winner", outcome.Winner)
	}

	return game, nil
}

// ResetGame - clears the board of an existing session and keeps its ID.
func (that *GameManager) ResetGame(ctx context.Context, id string) (*entity.Game, error) {
	existing, err := that.GetGame(ctx, id)
	if err != nil {
		return nil, err
	}

	game := entity.NewGame(existing.ID, existing.AgentMark)

	if that.options.AgentFirst {
		if err = that.agentTurn(game); err != nil {
			return nil, fmt.Errorf("agent failed to make first turn: %w", err)
		}
	}

	if err = that.gameRepo.CreateOrUpdate(ctx, game); err != nil {
		return nil, fmt.Errorf("failed to reset game: %w", err)
	}

	that.logger.Info("game reset", "method", "ResetGame", "gameID", id)

	return game, nil
}

func (that *GameManager) DeleteGame(ctx context.Context, id string) error {
	if err := that.gameRepo.DeleteByID(ctx, id); err != nil {
		return fmt.Errorf("failed to delete game: %w", err)
	}

	that.logger.Info("game deleted", "method", "DeleteGame", "gameID", id)

	return nil
}

func (that *GameManager) agentTurn(game *entity.Game) error {
	state := game.State.Fingerprint()

	action, err := that.selector.SelectAction(state, game.State.LegalActions(), that.table)
	if err != nil {
		return fmt.Errorf("failed to select action: %w", err)
	}

	if err = game.State.ApplyMove(action, game.AgentMark); err != nil {
		return fmt.Errorf("agent played %d on %q: %w", action, state, err)
	}

	that.logger.Debug("agent moved", "gameID", game.ID, "state", string(state), "cell", action)

	return nil
}
