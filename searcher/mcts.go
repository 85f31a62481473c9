package searcher

import (
	"math"

	"connect4/game"
)

// createAndSimulate allocates a node for state and runs a single rollout to
// seed its statistics. A failed rollout leaves the node at zero visits, which
// counts as no evidence rather than an error.
func (e *Engine) createAndSimulate(state game.GameState, parent nodeID) nodeID {
	id := e.tree.alloc(state, parent)
	result, err := rollout(state, e.side, e.rng)
	if err != nil {
		return id
	}
	e.metrics.AddPlayout()
	n := e.tree.at(id)
	n.visits = 1
	n.wins = result
	return id
}

// isLeaf reports whether a node ends selection: at most one visit, or no
// children present.
func (e *Engine) isLeaf(id nodeID) bool {
	n := e.tree.at(id)
	if n.visits <= 1 {
		return true
	}
	for _, child := range n.children {
		if child != noNode {
			return false
		}
	}
	return true
}

// selectLeaf descends from the root through the highest-scoring existing
// children until it reaches a leaf.
func (e *Engine) selectLeaf() nodeID {
	id := e.tree.root
	for !e.isLeaf(id) {
		next := e.bestUCB(id)
		if next == noNode {
			break
		}
		id = next
	}
	return id
}

// bestUCB picks the child of id with the highest UCB1 score, breaking ties
// uniformly at random. When the searcher is to move at id the exploitation
// term is the child's win rate; when the opponent is to move it is flipped,
// modeling the opponent as minimizing the searcher's win rate. Children
// without visits score zero and are never picked over a positive score.
func (e *Engine) bestUCB(id nodeID) nodeID {
	parent := e.tree.at(id)
	if parent.visits == 0 {
		return noNode
	}
	c2LnN := cSquared * math.Log(float64(parent.visits))
	searcherToMove := parent.state.Turn() == e.side

	best := noNode
	bestScore := 0.0
	ties := 0
	for _, childID := range parent.children {
		if childID == noNode {
			continue
		}
		child := e.tree.at(childID)
		if child.visits == 0 {
			continue
		}
		exploit := float64(child.wins) / float64(child.visits)
		if !searcherToMove {
			exploit = 1 - exploit
		}
		score := exploit + math.Sqrt(c2LnN/float64(child.visits))
		switch {
		case score > bestScore:
			best = childID
			bestScore = score
			ties = 1
		case score == bestScore && best != noNode:
			ties++
			if e.rng.Intn(ties) == 0 {
				best = childID
			}
		}
	}
	return best
}

// expand grows a selected leaf full width: every playable column gets a new
// child, created and simulated in one step. The returned delta is what
// backpropagation should add from the leaf upward. A leaf that is already
// won gets the forced-outcome bonus instead of children, so the resolved
// branch stops attracting selection; a drawn leaf gets neither children nor
// delta and the iteration cap absorbs the stall.
func (e *Engine) expand(id nodeID) (dw, dv uint32) {
	switch e.tree.at(id).state.Winner() {
	case game.WonBy(e.side):
		return e.forcedBonus, e.forcedBonus
	case game.WonBy(e.side.Opponent()):
		return 0, e.forcedBonus
	}

	for col := 0; col < game.Columns; col++ {
		if e.tree.at(id).children[col] != noNode {
			continue
		}
		state := e.tree.at(id).state
		if _, err := state.PlayAuto(col); err != nil {
			continue
		}
		childID := e.createAndSimulate(state, id)
		e.tree.at(id).children[col] = childID
		child := e.tree.at(childID)
		dw += child.wins
		dv += child.visits
	}
	return dw, dv
}

// search runs select-expand-backpropagate iterations until the root is
// within the budget margin of the visit budget or the iteration cap trips.
func (e *Engine) search() {
	limit := e.budget - e.budgetMargin
	for iterations := 0; e.tree.at(e.tree.root).visits < limit && iterations < e.iterationCap; iterations++ {
		leaf := e.selectLeaf()
		dw, dv := e.expand(leaf)
		e.tree.backpropagate(leaf, dw, dv)
		e.metrics.AddIteration()
	}
}

// bestMove picks the root child with the most visits, ties broken by wins.
func (e *Engine) bestMove() (int, error) {
	root := e.tree.at(e.tree.root)
	bestCol := -1
	var bestVisits, bestWins uint32
	for col, childID := range root.children {
		if childID == noNode {
			continue
		}
		child := e.tree.at(childID)
		if bestCol == -1 || child.visits > bestVisits ||
			(child.visits == bestVisits && child.wins > bestWins) {
			bestCol = col
			bestVisits = child.visits
			bestWins = child.wins
		}
	}
	if bestCol == -1 {
		return -1, ErrSearchFailure
	}
	return bestCol, nil
}
