package searcher

import (
	"errors"
	"fmt"
	"time"

	"connect4/experiments/metrics"
	"connect4/game"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

// ErrSearchFailure is returned when the search finds no viable root child.
var ErrSearchFailure = errors.New("search produced no viable move")

// ErrTornDown is returned by calls on an engine after Teardown.
var ErrTornDown = errors.New("engine is torn down")

// Engine is a Connect-4 MCTS player for a single match. It owns the search
// tree arena and the current root, which always holds the live game state.
// The engine is fully synchronous and supports one caller; there is no
// locking because there is only one logical owner.
type Engine struct {
	tree         *tree
	side         game.Player
	budget       uint32
	budgetMargin uint32
	forcedBonus  uint32
	iterationCap int
	rng          *rand.Rand
	metrics      metrics.Collector
	torn         bool
}

// Snapshot is the engine's view of the match for display: the board, the
// outcome, the engine's confidence in winning and how many visits back it.
// After statistic recombination the win rate is an inflated confidence
// figure, not a calibrated probability.
type Snapshot struct {
	Board   game.GameState
	Outcome game.Outcome
	WinRate float64
	Visits  uint32
}

// NewEngine builds an engine playing side with the given root visit budget.
// The root is created and pre-expanded full width immediately, so the first
// seven replies carry evidence before any search runs.
func NewEngine(side game.Player, budget uint32, options ...Option) (*Engine, error) {
	if !side.Valid() {
		return nil, fmt.Errorf("side %d: %w", side, game.ErrInvalidArgument)
	}
	if budget < MinBudget {
		return nil, fmt.Errorf("budget %d below minimum %d: %w", budget, MinBudget, game.ErrInvalidArgument)
	}

	e := &Engine{
		side:         side,
		budget:       budget,
		budgetMargin: DefaultBudgetMargin,
		forcedBonus:  DefaultForcedOutcomeBonus,
		iterationCap: DefaultIterationCap,
		rng:          rand.New(rand.NewSource(uint64(time.Now().UnixNano()))),
		metrics:      metrics.NewDummyCollector(),
	}
	for _, option := range options {
		option(e)
	}
	if e.budgetMargin >= e.budget {
		return nil, fmt.Errorf("budget margin %d must be below budget %d: %w",
			e.budgetMargin, e.budget, game.ErrInvalidArgument)
	}

	e.tree = newTree()
	e.tree.root = e.createAndSimulate(game.NewGameState(game.PlayerA), noNode)
	dw, dv := e.expand(e.tree.root)
	e.tree.backpropagate(e.tree.root, dw, dv)
	return e, nil
}

// FirstMove opens the game when the engine plays first. The second return is
// false when the engine plays second and is waiting for the opponent.
func (e *Engine) FirstMove() (int, bool, error) {
	if e.torn {
		return -1, false, ErrTornDown
	}
	if e.side != game.PlayerA {
		return 0, false, nil
	}
	if e.tree.at(e.tree.root).state.Turn() != e.side {
		return -1, false, game.ErrNotYourTurn
	}
	col, err := e.decide()
	return col, err == nil, err
}

// SubmitOpponentMove applies the opponent's move and returns the engine's
// reply column. The opponent's move is validated against the live state
// before anything is committed, so an illegal move can simply be retried.
func (e *Engine) SubmitOpponentMove(col int) (int, error) {
	if e.torn {
		return -1, ErrTornDown
	}
	if col < 0 || col >= game.Columns {
		return -1, fmt.Errorf("column %d: %w", col, game.ErrInvalidArgument)
	}
	if e.tree.at(e.tree.root).state.Turn() != e.side.Opponent() {
		return -1, game.ErrNotYourTurn
	}

	probe := e.tree.at(e.tree.root).state
	if _, err := probe.Play(e.side.Opponent(), col); err != nil {
		return -1, err
	}
	if err := e.advance(col, true); err != nil {
		return -1, err
	}
	if e.tree.at(e.tree.root).state.Winner() != game.Ongoing {
		return -1, game.ErrGameFinished
	}

	return e.decide()
}

// decide picks the engine's move for the current root position and commits
// it. Tactical overrides short-circuit the search; otherwise the full
// select-expand-backpropagate loop runs within the visit budget.
func (e *Engine) decide() (int, error) {
	e.metrics.Start(e.budget, e.iterationCap)

	if col, ok := e.immediateWin(); ok {
		e.metrics.AddTacticalHit()
		log.Debug().Int("column", col).Msg("tactical override: immediate win")
		if err := e.advance(col, false); err != nil {
			return -1, err
		}
		return col, nil
	}
	if col, ok := e.immediateThreat(); ok {
		e.metrics.AddTacticalHit()
		log.Debug().Int("column", col).Msg("tactical override: forced block")
		if err := e.advance(col, false); err != nil {
			return -1, err
		}
		return col, nil
	}

	e.search()
	col, err := e.bestMove()
	if err != nil {
		return -1, err
	}
	if err := e.advance(col, true); err != nil {
		return -1, err
	}

	root := e.tree.at(e.tree.root)
	log.Debug().Int("column", col).Uint32("visits", root.visits).
		Float64("confidence", winRate(root)).Msg("search complete")
	return col, nil
}

// QueryState returns a display snapshot of the match. It is zero after
// Teardown.
func (e *Engine) QueryState() Snapshot {
	if e.torn {
		return Snapshot{}
	}
	root := e.tree.at(e.tree.root)
	return Snapshot{
		Board:   root.state.Copy(),
		Outcome: root.state.Winner(),
		WinRate: winRate(root),
		Visits:  root.visits,
	}
}

// Teardown releases the tree. It is safe to call more than once.
func (e *Engine) Teardown() {
	if e.torn {
		return
	}
	e.tree.release(e.tree.root)
	e.tree = nil
	e.torn = true
}

// Side returns which player the engine searches for.
func (e *Engine) Side() game.Player {
	return e.side
}

func winRate(n *node) float64 {
	if n.visits == 0 {
		return 0
	}
	return float64(n.wins) / float64(n.visits)
}
