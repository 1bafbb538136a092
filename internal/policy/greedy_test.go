package policy

import (
	"testing"

	"github.com/rocketscienceinc/tictactoe-agent/internal/tictactoe"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const trials = 30000

func mustTable(t *testing.T, entries ...Entry) *ValueTable {
	t.Helper()

	table, err := NewValueTable(entries)
	require.NoError(t, err)

	return table
}

func countPicks(t *testing.T, greedy *Greedy, state tictactoe.Fingerprint, actions []int, table ValueLookup) map[int]int {
	t.Helper()

	counts := make(map[int]int)
	for i := 0; i < trials; i++ {
		action, err := greedy.SelectAction(state, actions, table)
		require.NoError(t, err)
		counts[action]++
	}

	return counts
}

func TestGreedy_SelectAction(t *testing.T) {
	state := tictactoe.Fingerprint("X   O    ")
	actions := []int{1, 2, 3, 5, 6, 7, 8}

	t.Run("Picks the single best action", func(t *testing.T) {
		// Given: a table where action 6 clearly leads
		table := mustTable(t,
			Entry{State: state, Action: 2, Value: 0.3},
			Entry{State: state, Action: 6, Value: 0.9},
			Entry{State: state, Action: 8, Value: -0.5},
		)
		greedy := NewGreedy(1)

		for i := 0; i < 100; i++ {
			// When: the policy selects an action
			action, err := greedy.SelectAction(state, actions, table)

			// Then: it is always 6
			require.NoError(t, err)
			require.Equal(t, 6, action)
		}
	})

	t.Run("Missing entries count as zero", func(t *testing.T) {
		// Given: every stored value is negative
		entries := make([]Entry, 0, len(actions)-1)
		for _, action := range actions[1:] {
			entries = append(entries, Entry{State: state, Action: action, Value: -1})
		}
		table := mustTable(t, entries...)
		greedy := NewGreedy(2)

		// When: the policy selects an action
		action, err := greedy.SelectAction(state, actions, table)

		// Then: the unscored action wins with its default 0.0
		require.NoError(t, err)
		assert.Equal(t, 1, action)
	})

	t.Run("Ties are broken uniformly", func(t *testing.T) {
		// Given: three actions share the maximum
		table := mustTable(t,
			Entry{State: state, Action: 2, Value: 0.7},
			Entry{State: state, Action: 5, Value: 0.7},
			Entry{State: state, Action: 8, Value: 0.7},
			Entry{State: state, Action: 1, Value: 0.2},
		)
		greedy := NewGreedy(3)

		// When: selecting many times
		counts := countPicks(t, greedy, state, actions, table)

		// Then: only the tied actions appear, each about a third of the time
		assert.Len(t, counts, 3)
		for _, action := range []int{2, 5, 8} {
			assert.InDelta(t, trials/3, counts[action], trials*0.03, "action %d", action)
		}
	})

	t.Run("Empty table degenerates to uniform choice", func(t *testing.T) {
		// Given: a table with no entries for the state
		table := mustTable(t, Entry{State: "         ", Action: 0, Value: 1})
		greedy := NewGreedy(4)

		// When: selecting many times
		counts := countPicks(t, greedy, state, actions, table)

		// Then: every legal action is picked with roughly equal frequency
		require.Len(t, counts, len(actions))
		expected := trials / len(actions)
		for _, action := range actions {
			assert.InDelta(t, expected, counts[action], float64(trials)*0.03, "action %d", action)
		}
	})

	t.Run("Nil table behaves like an empty one", func(t *testing.T) {
		// Given: no table at all
		greedy := NewGreedy(5)

		// When: selecting many times
		counts := countPicks(t, greedy, state, actions, nil)

		// Then: the lowest index is not favoured
		assert.Len(t, counts, len(actions))
	})

	t.Run("Error on empty action space", func(t *testing.T) {
		// Given: no legal actions
		greedy := NewGreedy(6)

		// When: the policy is asked to choose
		_, err := greedy.SelectAction(state, nil, nil)

		// Then: ErrEmptyActionSpace is returned
		require.ErrorIs(t, err, ErrEmptyActionSpace)
	})
}
