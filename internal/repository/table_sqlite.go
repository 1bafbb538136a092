package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/rocketscienceinc/tictactoe-agent/internal/policy"
)

type TableSQLite struct {
	conn *sql.DB
}

// NewTableSQLite expects a connection whose schema was created by storage.SQLiteStorage.Init.
func NewTableSQLite(conn *sql.DB) *TableSQLite {
	return &TableSQLite{
		conn: conn,
	}
}

func (that *TableSQLite) Load(ctx context.Context) (*policy.ValueTable, error) {
	var version int
	err := that.conn.QueryRowContext(ctx, `SELECT version FROM table_meta LIMIT 1`).Scan(&version)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: no table stored", ErrCorruptTable)
	}
	if err != nil {
		return nil, fmt.Errorf("can't read table version: %w", err)
	}

	if version != TableVersion {
		return nil, fmt.Errorf("%w: unsupported version %d", ErrCorruptTable, version)
	}

	rows, err := that.conn.QueryContext(ctx, `SELECT state, action, value FROM value_table`)
	if err != nil {
		return nil, fmt.Errorf("can't query value table: %w", err)
	}
	defer rows.Close()

	builder := policy.NewTableBuilder()
	for rows.Next() {
		var (
			state  string
			action int
			value  float64
		)

		if err = rows.Scan(&state, &action, &value); err != nil {
			return nil, fmt.Errorf("can't scan value table row: %w", err)
		}

		if err = builder.Add(state, action, value); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrCorruptTable, err)
		}
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("can't read value table: %w", err)
	}

	return builder.Build(), nil
}

// Save - replaces the stored table in a single transaction.
func (that *TableSQLite) Save(ctx context.Context, table *policy.ValueTable) error {
	tx, err := that.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("can't begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, query := range []string{`DELETE FROM value_table`, `DELETE FROM table_meta`} {
		if _, err = tx.ExecContext(ctx, query); err != nil {
			return fmt.Errorf("can't clear value table: %w", err)
		}
	}

	if _, err = tx.ExecContext(ctx, `INSERT INTO table_meta (version) VALUES (?)`, TableVersion); err != nil {
		return fmt.Errorf("can't save table version: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO value_table (state, action, value) VALUES (?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("can't prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, entry := range table.Entries() {
		if _, err = stmt.ExecContext(ctx, string(entry.State), entry.Action, entry.Value); err != nil {
			return fmt.Errorf("can't save entry %q/%d: %w", entry.State, entry.Action, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("can't commit value table: %w", err)
	}

	return nil
}
