package application

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"
	"github.com/rocketscienceinc/tictactoe-agent/internal/config"
	"github.com/rocketscienceinc/tictactoe-agent/internal/policy"
	"github.com/rocketscienceinc/tictactoe-agent/internal/repository"
	"github.com/rocketscienceinc/tictactoe-agent/internal/repository/storage"
	"github.com/rocketscienceinc/tictactoe-agent/internal/tictactoe"
	"github.com/rocketscienceinc/tictactoe-agent/internal/usecase"
	"github.com/rocketscienceinc/tictactoe-agent/transport/rest"
)

// RunApp - runs the application.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigs
		log.Info("Received signal, shutting down", "signal", sig)
		cancel()
	}()

	var redisClient *redis.Client
	if conf.NeedsRedis() {
		client, err := storage.New(ctx, conf.Redis.GetRedisAddr())
		if err != nil {
			return fmt.Errorf("could not connect to redis storage: %w", err)
		}

		defer func() {
			if err = client.Close(); err != nil {
				log.Error("could not close redis storage", "error", err)
			}
		}()

		redisClient = client
	}

	table, err := LoadTable(ctx, conf.Table, redisClient)
	if err != nil {
		return fmt.Errorf("could not load value table: %w", err)
	}

	log.Info("Value table loaded", "source", conf.Table.Source, "entries", table.Len(), "states", table.States())

	var gameRepo repository.GameRepository
	switch conf.SessionStore {
	case config.SessionStoreRedis:
		gameRepo = repository.NewGameRepository(redisClient, conf.SessionTTL)
	default:
		gameRepo = repository.NewMemoryGameRepository()
	}

	gameManager := usecase.NewGameManager(logger, gameRepo, policy.NewGreedy(conf.Policy.Seed), table, usecase.Options{
		AgentMark:  tictactoe.Mark(conf.Game.AgentMark),
		AgentFirst: conf.Game.AgentFirst,
	})

	log.Info("Starting HTTP server", "port", conf.HTTPPort)

	if err = rest.Start(ctx, conf.HTTPPort, rest.NewRouter(logger, gameManager)); err != nil {
		return fmt.Errorf("HTTP server error: %w", err)
	}

	log.Info("Application context canceled, shutting down")

	return nil
}

// LoadTable - reads the value table from the configured source.
func LoadTable(ctx context.Context, conf config.Table, redisClient *redis.Client) (*policy.ValueTable, error) {
	switch conf.Source {
	case config.TableSourceFile:
		return repository.NewTableFile(conf.Path).Load()

	case config.TableSourceSQLite:
		db, err := storage.NewSQLiteStorage(conf.Path)
		if err != nil {
			return nil, fmt.Errorf("could not open sqlite storage: %w", err)
		}
		defer db.Close()

		return repository.NewTableSQLite(db.Connection).Load(ctx)

	case config.TableSourceRedis:
		if redisClient == nil {
			return nil, fmt.Errorf("table source %q needs a redis connection", conf.Source)
		}

		return repository.NewTableRedis(redisClient).Load(ctx)

	default:
		return nil, fmt.Errorf("unknown table source %q", conf.Source)
	}
}
