package repository

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/redis/go-redis/v9"
	"github.com/rocketscienceinc/tictactoe-agent/internal/policy"
)

const fieldSeparator = "|"

var tableKey = "value-table:v" + strconv.Itoa(TableVersion)

// TableRedis keeps the table in one hash, field "<state>|<action>".
type TableRedis struct {
	client *redis.Client
}

func NewTableRedis(client *redis.Client) *TableRedis {
	return &TableRedis{
		client: client,
	}
}

func (that *TableRedis) Load(ctx context.Context) (*policy.ValueTable, error) {
	fields, err := that.client.HGetAll(ctx, tableKey).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get value table: %w", err)
	}

	if len(fields) == 0 {
		return nil, fmt.Errorf("%w: key %s is empty", ErrCorruptTable, tableKey)
	}

	builder := policy.NewTableBuilder()
	for field, raw := range fields {
		state, rawAction, ok := strings.Cut(field, fieldSeparator)
		if !ok {
			return nil, fmt.Errorf("%w: malformed field %q", ErrCorruptTable, field)
		}

		action, err := strconv.Atoi(rawAction)
		if err != nil {
			return nil, fmt.Errorf("%w: field %q: %w", ErrCorruptTable, field, err)
		}

		value, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: field %q: %w", ErrCorruptTable, field, err)
		}

		if err = builder.Add(state, action, value); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrCorruptTable, err)
		}
	}

	return builder.Build(), nil
}

// Save - replaces the stored hash atomically.
func (that *TableRedis) Save(ctx context.Context, table *policy.ValueTable) error {
	entries := table.Entries()

	values := make([]any, 0, 2*len(entries))
	for _, entry := range entries {
		values = append(values,
			string(entry.State)+fieldSeparator+strconv.Itoa(entry.Action),
			strconv.FormatFloat(entry.Value, 'g', -1, 64),
		)
	}

	_, err := that.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, tableKey)
		if len(values) > 0 {
			pipe.HSet(ctx, tableKey, values...)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to save value table: %w", err)
	}

	return nil
}
