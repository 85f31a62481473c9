package searcher

import (
	"connect4/experiments/metrics"

	"golang.org/x/exp/rand"
)

// Hyperparameters for the search. The bonus and margin are tuning values
// inherited with the algorithm, not derived from anything.

const (
	// MinBudget is the smallest accepted visit budget.
	MinBudget = 8

	// DefaultForcedOutcomeBonus is the (wins, visits) weight credited to a
	// terminal leaf so resolved branches stop attracting selection.
	DefaultForcedOutcomeBonus = 7

	// DefaultBudgetMargin stops the search loop once the root is within this
	// many visits of the budget.
	DefaultBudgetMargin = 7

	// DefaultIterationCap bounds the number of search iterations, guarding
	// against stalls when the tree is fully resolved and visits stop growing.
	DefaultIterationCap = 20000

	// cSquared is the squared UCB1 exploration constant.
	cSquared = 2.0
)

// Option configures an Engine at construction.
type Option func(*Engine)

// WithSeed makes the engine's random source deterministic. Rollouts and
// selection tie-breaks both draw from it.
func WithSeed(seed uint64) Option {
	return func(e *Engine) {
		e.rng = rand.New(rand.NewSource(seed))
	}
}

// WithIterationCap overrides the search loop safety cap.
func WithIterationCap(limit int) Option {
	return func(e *Engine) {
		if limit > 0 {
			e.iterationCap = limit
		}
	}
}

// WithForcedOutcomeBonus overrides the terminal-leaf backpropagation weight.
func WithForcedOutcomeBonus(bonus uint32) Option {
	return func(e *Engine) {
		if bonus > 0 {
			e.forcedBonus = bonus
		}
	}
}

// WithBudgetMargin overrides the visit margin the search loop stops at.
func WithBudgetMargin(margin uint32) Option {
	return func(e *Engine) {
		e.budgetMargin = margin
	}
}

// WithMetrics records per-move search metrics into the given collector.
func WithMetrics(collector metrics.Collector) Option {
	return func(e *Engine) {
		if collector != nil {
			e.metrics = collector
		}
	}
}
