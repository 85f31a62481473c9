package searcher

import (
	"testing"

	"connect4/game"

	"github.com/stretchr/testify/require"
)

func TestBestUCB(t *testing.T) {
	// Root is the empty board with A to move; two children with opposite
	// win rates and equal visits, so the exploration terms cancel out.
	setup := func(side game.Player) (*Engine, nodeID, nodeID, nodeID) {
		e := newTestEngine(side, 1)
		root := e.tree.alloc(game.NewGameState(game.PlayerA), noNode)
		e.tree.root = root
		e.tree.at(root).visits = 20

		strong := e.tree.alloc(stateAfter(t, 0), root)
		e.tree.at(strong).wins = 9
		e.tree.at(strong).visits = 10
		e.tree.at(root).children[0] = strong

		weak := e.tree.alloc(stateAfter(t, 1), root)
		e.tree.at(weak).wins = 1
		e.tree.at(weak).visits = 10
		e.tree.at(root).children[1] = weak

		return e, root, strong, weak
	}

	t.Run("maximizes win rate when the searcher is to move", func(t *testing.T) {
		e, root, strong, _ := setup(game.PlayerA)
		require.Equal(t, strong, e.bestUCB(root))
	})

	t.Run("minimizes win rate when the opponent is to move", func(t *testing.T) {
		e, root, _, weak := setup(game.PlayerB)
		require.Equal(t, weak, e.bestUCB(root))
	})

	t.Run("skips children without visits", func(t *testing.T) {
		e, root, strong, weak := setup(game.PlayerA)
		e.tree.at(strong).visits = 0
		require.Equal(t, weak, e.bestUCB(root))
	})

	t.Run("yields nothing on an unvisited parent", func(t *testing.T) {
		e, root, _, _ := setup(game.PlayerA)
		e.tree.at(root).visits = 0
		require.Equal(t, noNode, e.bestUCB(root))
	})
}

func TestIsLeaf(t *testing.T) {
	e := newTestEngine(game.PlayerA, 1)
	root := e.tree.alloc(game.NewGameState(game.PlayerA), noNode)
	e.tree.root = root

	require.True(t, e.isLeaf(root), "Node with a single visit is a leaf")

	e.tree.at(root).visits = 5
	require.True(t, e.isLeaf(root), "Node without children is a leaf")

	child := e.tree.alloc(stateAfter(t, 0), root)
	e.tree.at(child).visits = 3
	e.tree.at(root).children[0] = child
	require.False(t, e.isLeaf(root), "Visited node with children is not a leaf")
}

func TestSelectLeaf(t *testing.T) {
	e := newTestEngine(game.PlayerA, 1)
	root := e.tree.alloc(game.NewGameState(game.PlayerA), noNode)
	e.tree.root = root
	e.tree.at(root).visits = 10

	child := e.tree.alloc(stateAfter(t, 0), root)
	e.tree.at(child).wins = 2
	e.tree.at(child).visits = 4
	e.tree.at(root).children[0] = child

	require.Equal(t, child, e.selectLeaf(), "Selection should stop at the childless node")
}

func TestExpand(t *testing.T) {
	t.Run("creates a child per playable column", func(t *testing.T) {
		e := newTestEngine(game.PlayerA, 1)
		root := e.tree.alloc(game.NewGameState(game.PlayerA), noNode)
		e.tree.root = root
		e.tree.at(root).visits = 1

		dw, dv := e.expand(root)

		require.Equal(t, uint32(game.Columns), dv, "Each child should contribute one rollout visit")
		require.LessOrEqual(t, dw, dv)
		for col := 0; col < game.Columns; col++ {
			childID := e.tree.at(root).children[col]
			require.NotEqual(t, noNode, childID, "Column %d should have a child", col)
			require.Equal(t, stateAfter(t, col), e.tree.at(childID).state,
				"Child %d must hold the state reached by playing its column", col)
		}
	})

	t.Run("skips full columns", func(t *testing.T) {
		e := newTestEngine(game.PlayerA, 1)
		root := e.tree.alloc(stateAfter(t, 0, 0, 0, 0, 0, 0), noNode)
		e.tree.root = root
		e.tree.at(root).visits = 1

		_, dv := e.expand(root)

		require.Equal(t, noNode, e.tree.at(root).children[0], "Full column should leave its slot absent")
		require.Equal(t, uint32(game.Columns-1), dv)
	})

	t.Run("credits the forced-outcome bonus on a won leaf", func(t *testing.T) {
		e := newTestEngine(game.PlayerA, 1)
		root := e.tree.alloc(stateAfter(t, 0, 6, 0, 6, 0, 6, 0), noNode)
		e.tree.root = root

		dw, dv := e.expand(root)

		require.Equal(t, uint32(DefaultForcedOutcomeBonus), dw)
		require.Equal(t, uint32(DefaultForcedOutcomeBonus), dv)
		for col := 0; col < game.Columns; col++ {
			require.Equal(t, noNode, e.tree.at(root).children[col], "Terminal leaf should stay childless")
		}
	})

	t.Run("credits visits only on a lost leaf", func(t *testing.T) {
		e := newTestEngine(game.PlayerB, 1)
		root := e.tree.alloc(stateAfter(t, 0, 6, 0, 6, 0, 6, 0), noNode)
		e.tree.root = root

		dw, dv := e.expand(root)

		require.Zero(t, dw)
		require.Equal(t, uint32(DefaultForcedOutcomeBonus), dv)
	})
}

func TestBestMove(t *testing.T) {
	t.Run("prefers the most visited child", func(t *testing.T) {
		e := newTestEngine(game.PlayerA, 1)
		root := e.tree.alloc(game.NewGameState(game.PlayerA), noNode)
		e.tree.root = root

		a := e.tree.alloc(stateAfter(t, 2), root)
		e.tree.at(a).wins = 1
		e.tree.at(a).visits = 5
		e.tree.at(root).children[2] = a

		b := e.tree.alloc(stateAfter(t, 4), root)
		e.tree.at(b).wins = 5
		e.tree.at(b).visits = 9
		e.tree.at(root).children[4] = b

		col, err := e.bestMove()
		require.NoError(t, err)
		require.Equal(t, 4, col)
	})

	t.Run("breaks visit ties by wins", func(t *testing.T) {
		e := newTestEngine(game.PlayerA, 1)
		root := e.tree.alloc(game.NewGameState(game.PlayerA), noNode)
		e.tree.root = root

		a := e.tree.alloc(stateAfter(t, 2), root)
		e.tree.at(a).wins = 2
		e.tree.at(a).visits = 5
		e.tree.at(root).children[2] = a

		b := e.tree.alloc(stateAfter(t, 4), root)
		e.tree.at(b).wins = 4
		e.tree.at(b).visits = 5
		e.tree.at(root).children[4] = b

		col, err := e.bestMove()
		require.NoError(t, err)
		require.Equal(t, 4, col)
	})

	t.Run("fails without children", func(t *testing.T) {
		e := newTestEngine(game.PlayerA, 1)
		e.tree.root = e.tree.alloc(game.NewGameState(game.PlayerA), noNode)

		_, err := e.bestMove()
		require.ErrorIs(t, err, ErrSearchFailure)
	})
}

func TestSearchRespectsBudget(t *testing.T) {
	e := newTestEngine(game.PlayerA, 3)
	e.budget = 200
	root := e.createAndSimulate(game.NewGameState(game.PlayerA), noNode)
	e.tree.root = root

	e.search()

	visits := e.tree.at(e.tree.root).visits
	require.GreaterOrEqual(t, visits, e.budget-e.budgetMargin, "Search should run until the margin")
	require.Less(t, visits, e.budget+uint32(game.Columns)*DefaultForcedOutcomeBonus,
		"Search should stop near the budget")
}
