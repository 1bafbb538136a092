package main

import (
	"context"
	"errors"
	"os"

	"github.com/spf13/cobra"

	"github.com/rocketscienceinc/tictactoe-agent/internal/policy"
	"github.com/rocketscienceinc/tictactoe-agent/internal/repository"
	"github.com/rocketscienceinc/tictactoe-agent/internal/repository/storage"
)

var errNoTarget = errors.New("exactly one of --sqlite or --redis is required")

type options struct {
	file      string
	sqlite    string
	redisAddr string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:   "tablectl",
		Short: "Inspect and move value tables between storage backends",
		Long: `tablectl validates value table files and copies tables between
the JSON file format, SQLite and Redis.`,
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVar(&opts.file, "file", "value_table.json", "Value table JSON file")
	root.PersistentFlags().StringVar(&opts.sqlite, "sqlite", "", "SQLite database path")
	root.PersistentFlags().StringVar(&opts.redisAddr, "redis", "", "Redis address host:port")

	root.AddCommand(
		&cobra.Command{
			Use:   "validate",
			Short: "Check a value table file and print its size",
			RunE: func(cmd *cobra.Command, _ []string) error {
				table, err := repository.NewTableFile(opts.file).Load()
				if err != nil {
					return err
				}

				cmd.Printf("%s: %d entries over %d states\n", opts.file, table.Len(), table.States())
				return nil
			},
		},
		&cobra.Command{
			Use:   "import",
			Short: "Copy a value table file into SQLite or Redis",
			RunE: func(cmd *cobra.Command, _ []string) error {
				table, err := repository.NewTableFile(opts.file).Load()
				if err != nil {
					return err
				}

				store, closeFn, err := openStore(cmd.Context(), opts)
				if err != nil {
					return err
				}
				defer closeFn()

				if err = store.Save(cmd.Context(), table); err != nil {
					return err
				}

				cmd.Printf("imported %d entries\n", table.Len())
				return nil
			},
		},
		&cobra.Command{
			Use:   "export",
			Short: "Write a value table from SQLite or Redis to a file",
			RunE: func(cmd *cobra.Command, _ []string) error {
				store, closeFn, err := openStore(cmd.Context(), opts)
				if err != nil {
					return err
				}
				defer closeFn()

				table, err := store.Load(cmd.Context())
				if err != nil {
					return err
				}

				if err = repository.NewTableFile(opts.file).Save(table); err != nil {
					return err
				}

				cmd.Printf("exported %d entries to %s\n", table.Len(), opts.file)
				return nil
			},
		},
	)

	return root
}

type tableStore interface {
	Load(ctx context.Context) (*policy.ValueTable, error)
	Save(ctx context.Context, table *policy.ValueTable) error
}

func openStore(ctx context.Context, opts *options) (tableStore, func(), error) {
	switch {
	case opts.sqlite != "" && opts.redisAddr == "":
		db, err := storage.NewSQLiteStorage(opts.sqlite)
		if err != nil {
			return nil, nil, err
		}

		if err = db.Init(ctx); err != nil {
			_ = db.Close()
			return nil, nil, err
		}

		return repository.NewTableSQLite(db.Connection), func() { _ = db.Close() }, nil

	case opts.redisAddr != "" && opts.sqlite == "":
		client, err := storage.New(ctx, opts.redisAddr)
		if err != nil {
			return nil, nil, err
		}

		return repository.NewTableRedis(client), func() { _ = client.Close() }, nil

	default:
		return nil, nil, errNoTarget
	}
}
