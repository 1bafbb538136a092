package policy

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/rocketscienceinc/tictactoe-agent/internal/tictactoe"
)

// DefaultValue is the score of a (state, action) pair the table has never seen.
const DefaultValue = 0.0

var (
	ErrInvalidEntry   = errors.New("invalid value table entry")
	ErrDuplicateEntry = errors.New("duplicate value table entry")
)

// StateAction is the composite value table key.
type StateAction struct {
	State  tictactoe.Fingerprint
	Action int
}

// Entry is one scored (state, action) pair.
type Entry struct {
	State  tictactoe.Fingerprint
	Action int
	Value  float64
}

// ValueLookup is the read-only view of a value table the policy needs.
type ValueLookup interface {
	Value(state tictactoe.Fingerprint, action int) float64
}

// ValueTable is immutable once built and safe for concurrent reads.
type ValueTable struct {
	values map[StateAction]float64
}

// Value - returns the stored score or DefaultValue when the pair is absent.
func (that *ValueTable) Value(state tictactoe.Fingerprint, action int) float64 {
	if that == nil {
		return DefaultValue
	}

	value, ok := that.values[StateAction{State: state, Action: action}]
	if !ok {
		return DefaultValue
	}

	return value
}

func (that *ValueTable) Len() int {
	if that == nil {
		return 0
	}

	return len(that.values)
}

// States - number of distinct states with at least one entry.
func (that *ValueTable) States() int {
	if that == nil {
		return 0
	}

	states := make(map[tictactoe.Fingerprint]struct{})
	for key := range that.values {
		states[key.State] = struct{}{}
	}

	return len(states)
}

// Entries - every entry sorted by state, then action.
func (that *ValueTable) Entries() []Entry {
	if that == nil {
		return nil
	}

	entries := make([]Entry, 0, len(that.values))
	for key, value := range that.values {
		entries = append(entries, Entry{State: key.State, Action: key.Action, Value: value})
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].State != entries[j].State {
			return entries[i].State < entries[j].State
		}
		return entries[i].Action < entries[j].Action
	})

	return entries
}

// TableBuilder validates entries one by one. Every table loader goes through it.
type TableBuilder struct {
	values map[StateAction]float64
}

func NewTableBuilder() *TableBuilder {
	return &TableBuilder{
		values: make(map[StateAction]float64),
	}
}

// Add - validates and stores a single entry.
func (that *TableBuilder) Add(state string, action int, value float64) error {
	board, err := tictactoe.ParseFingerprint(state)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidEntry, err)
	}

	if action < 0 || action >= tictactoe.BoardSize {
		return fmt.Errorf("%w: state %q action %d out of range", ErrInvalidEntry, state, action)
	}

	if board[action] != tictactoe.EmptyCell {
		return fmt.Errorf("%w: state %q action %d targets an occupied cell", ErrInvalidEntry, state, action)
	}

	if math.IsNaN(value) || math.IsInf(value, 0) {
		return fmt.Errorf("%w: state %q action %d has non-finite value", ErrInvalidEntry, state, action)
	}

	key := StateAction{State: tictactoe.Fingerprint(state), Action: action}
	if _, ok := that.values[key]; ok {
		return fmt.Errorf("%w: state %q action %d", ErrDuplicateEntry, state, action)
	}

	that.values[key] = value

	return nil
}

// Build - hands the collected entries over to an immutable table.
// The builder must not be used afterwards.
func (that *TableBuilder) Build() *ValueTable {
	table := &ValueTable{values: that.values}
	that.values = nil

	return table
}

// NewValueTable - builds a table from a list of entries.
func NewValueTable(entries []Entry) (*ValueTable, error) {
	builder := NewTableBuilder()
	for _, entry := range entries {
		if err := builder.Add(string(entry.State), entry.Action, entry.Value); err != nil {
			return nil, err
		}
	}

	return builder.Build(), nil
}
