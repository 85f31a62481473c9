package searcher

import (
	"testing"

	"connect4/experiments/metrics"
	"connect4/game"

	"github.com/stretchr/testify/require"
)

func TestImmediateWinOverride(t *testing.T) {
	// A has three discs stacked in column 0 and is to move.
	e := newTestEngine(game.PlayerA, 7)
	collector := metrics.NewCollector()
	e.metrics = collector
	root := e.tree.alloc(stateAfter(t, 0, 1, 0, 1, 0, 2), noNode)
	e.tree.root = root
	e.tree.at(root).visits = 1

	col, err := e.decide()

	require.NoError(t, err)
	require.Equal(t, 0, col, "Engine should play the winning column")
	require.Equal(t, game.WonByA, e.tree.at(e.tree.root).state.Winner())

	metric := collector.Complete()
	require.True(t, metric.TacticalHit)
	require.Zero(t, metric.Iterations, "Tactical override should bypass the search loop")
	require.Equal(t, 1, e.tree.size(), "Tree should not grow beyond the committed move")
}

func TestForcedBlockOverride(t *testing.T) {
	// B has three discs stacked in column 3; A must block there.
	e := newTestEngine(game.PlayerA, 7)
	collector := metrics.NewCollector()
	e.metrics = collector
	root := e.tree.alloc(stateAfter(t, 0, 3, 1, 3, 2, 3), noNode)
	e.tree.root = root
	e.tree.at(root).visits = 1

	col, err := e.decide()

	require.NoError(t, err)
	require.Equal(t, 3, col, "Engine should block the opponent's winning column")

	metric := collector.Complete()
	require.True(t, metric.TacticalHit)
	require.Zero(t, metric.Iterations, "Tactical override should bypass the search loop")
}

func TestImmediateWinScansInColumnOrder(t *testing.T) {
	// Wins in both column 1 and column 5; the lower column is reported.
	e := newTestEngine(game.PlayerA, 7)
	state := stateAfter(t, 1, 0, 1, 0, 1, 2, 5, 6, 5, 6, 5, 6)
	root := e.tree.alloc(state, noNode)
	e.tree.root = root

	col, ok := e.immediateWin()
	require.True(t, ok)
	require.Equal(t, 1, col)
}

func TestTacticsLeaveLiveTreeUntouched(t *testing.T) {
	e := newTestEngine(game.PlayerA, 7)
	root := e.tree.alloc(stateAfter(t, 0, 3, 1, 3, 2, 3), noNode)
	e.tree.root = root
	before := e.tree.at(root).state

	_, _ = e.immediateWin()
	_, _ = e.immediateThreat()

	require.Equal(t, before, e.tree.at(root).state, "Tactical probes must not mutate the root state")
	require.Equal(t, 1, e.tree.size(), "Tactical probes must not allocate nodes")
}

func TestNoTacticalFiringOnQuietPosition(t *testing.T) {
	e := newTestEngine(game.PlayerA, 7)
	root := e.tree.alloc(stateAfter(t, 3, 3), noNode)
	e.tree.root = root

	_, ok := e.immediateWin()
	require.False(t, ok)

	_, ok = e.immediateThreat()
	require.False(t, ok)
}
