package policy

import (
	"math"
	"testing"

	"github.com/rocketscienceinc/tictactoe-agent/internal/tictactoe"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValueTable_Value(t *testing.T) {
	// Given: a table with one entry
	table := mustTable(t, Entry{State: "X        ", Action: 4, Value: 0.25})

	// Then: the stored pair returns its value
	assert.InDelta(t, 0.25, table.Value("X        ", 4), 1e-12)

	// And: unknown pairs return DefaultValue
	assert.InDelta(t, DefaultValue, table.Value("X        ", 5), 1e-12)
	assert.InDelta(t, DefaultValue, table.Value("         ", 4), 1e-12)

	// And: a nil table answers DefaultValue too
	var empty *ValueTable
	assert.InDelta(t, DefaultValue, empty.Value("X        ", 4), 1e-12)
	assert.Equal(t, 0, empty.Len())
}

func TestTableBuilder_Add(t *testing.T) {
	tests := []struct {
		name   string
		state  string
		action int
		value  float64
	}{
		{name: "short state", state: "X", action: 1, value: 0},
		{name: "unknown symbol", state: "Z        ", action: 1, value: 0},
		{name: "unbalanced state", state: "XX       ", action: 3, value: 0},
		{name: "negative action", state: "         ", action: -1, value: 0},
		{name: "action out of range", state: "         ", action: 9, value: 0},
		{name: "occupied cell", state: "X        ", action: 0, value: 0},
		{name: "nan", state: "         ", action: 0, value: math.NaN()},
		{name: "inf", state: "         ", action: 0, value: math.Inf(1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Given: an empty builder
			builder := NewTableBuilder()

			// When: an invalid entry is added
			err := builder.Add(tt.state, tt.action, tt.value)

			// Then: ErrInvalidEntry is returned
			require.ErrorIs(t, err, ErrInvalidEntry)
		})
	}

	t.Run("duplicate", func(t *testing.T) {
		// Given: a builder holding one entry
		builder := NewTableBuilder()
		require.NoError(t, builder.Add("    O    ", 0, 0.1))

		// When: the same key is added again
		err := builder.Add("    O    ", 0, 0.2)

		// Then: ErrDuplicateEntry is returned
		require.ErrorIs(t, err, ErrDuplicateEntry)
	})
}

func TestValueTable_Entries(t *testing.T) {
	// Given: entries added out of order
	table := mustTable(t,
		Entry{State: "X   O    ", Action: 8, Value: 1},
		Entry{State: "         ", Action: 4, Value: 2},
		Entry{State: "X   O    ", Action: 1, Value: 3},
	)

	// When: listing them
	entries := table.Entries()

	// Then: they come back sorted by state, then action
	assert.Equal(t, []Entry{
		{State: "         ", Action: 4, Value: 2},
		{State: "X   O    ", Action: 1, Value: 3},
		{State: "X   O    ", Action: 8, Value: 1},
	}, entries)
	assert.Equal(t, 3, table.Len())
	assert.Equal(t, 2, table.States())
	assert.Equal(t, tictactoe.Fingerprint("         "), entries[0].State)
}
