package policy

import (
	"errors"
	"math/rand"
	"sync"
	"time"

	"github.com/rocketscienceinc/tictactoe-agent/internal/tictactoe"
)

var ErrEmptyActionSpace = errors.New("no legal actions to choose from")

// Greedy picks the highest valued action and breaks ties uniformly at random.
// It never updates the table.
type Greedy struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewGreedy - seed 0 means a time based seed.
func NewGreedy(seed int64) *Greedy {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	return &Greedy{
		rng: rand.New(rand.NewSource(seed)), //nolint: gosec // move selection, not security
	}
}

// SelectAction - returns one of the legal actions with the maximum table value.
func (that *Greedy) SelectAction(state tictactoe.Fingerprint, actions []int, table ValueLookup) (int, error) {
	if len(actions) == 0 {
		return 0, ErrEmptyActionSpace
	}

	best := make([]int, 0, len(actions))
	bestValue := 0.0

	for i, action := range actions {
		value := DefaultValue
		if table != nil {
			value = table.Value(state, action)
		}

		switch {
		case i == 0 || value > bestValue:
			bestValue = value
			best = append(best[:0], action)
		case value == bestValue:
			best = append(best, action)
		}
	}

	that.mu.Lock()
	pick := that.rng.Intn(len(best))
	that.mu.Unlock()

	return best[pick], nil
}
