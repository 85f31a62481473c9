package searcher

import (
	"connect4/game"

	"github.com/rs/zerolog/log"
)

// advance commits a move at the root: the chosen child becomes the new root
// and every sibling subtree is released. A missing child is synthesized from
// the root state first. With merge set, transposition statistics are folded
// into the committed subtree before rerooting.
func (e *Engine) advance(col int, merge bool) error {
	if merge {
		e.recombine(col)
	}

	t := e.tree
	oldRoot := t.root
	childID := t.at(oldRoot).children[col]
	if childID == noNode {
		state := t.at(oldRoot).state
		if _, err := state.PlayAuto(col); err != nil {
			return err
		}
		childID = e.createAndSimulate(state, oldRoot)
	}

	t.at(oldRoot).children[col] = noNode
	t.release(oldRoot)
	t.at(childID).parent = noNode
	t.root = childID
	return nil
}

// recombine exploits three-ply move-order transpositions before committing
// column c: for sibling columns Y and grandchild columns X, the position
// reached via root->Y->X->c is the same grid as root->c->X->Y, so the
// statistics gathered under the former are folded into the latter (and into
// every node on that path up to the root) before the Y subtrees are thrown
// away. Missing nodes along root->c->X->Y are synthesized on demand.
//
// This is a heuristic, not canonical MCTS: overlapping (Y, X) pairs can
// double-count evidence, so the merged win rate is an inflated confidence
// figure rather than a probability.
func (e *Engine) recombine(c int) {
	t := e.tree
	for y := 0; y < game.Columns; y++ {
		if y == c || t.at(t.root).children[y] == noNode {
			continue
		}
		for x := 0; x < game.Columns; x++ {
			if x == c || x == y {
				continue
			}
			yID := t.at(t.root).children[y]
			xID := t.at(yID).children[x]
			if xID == noNode {
				continue
			}
			sourceID := t.at(xID).children[c]
			if sourceID == noNode {
				continue
			}
			mergedWins, mergedVisits := t.at(sourceID).wins, t.at(sourceID).visits

			targetID, ok := e.ensurePath(c, x, y)
			if !ok {
				continue
			}
			t.backpropagate(targetID, mergedWins, mergedVisits)
			e.metrics.AddMerge()
		}
	}
}

// ensurePath descends from the root along cols, synthesizing any missing
// node via createAndSimulate and backpropagating the new node's own evidence
// to its ancestors. It returns the final node, or false when a move along
// the path is not playable (a win along one move order can cut the
// transposed order short).
func (e *Engine) ensurePath(cols ...int) (nodeID, bool) {
	t := e.tree
	current := t.root
	for _, col := range cols {
		next := t.at(current).children[col]
		if next == noNode {
			state := t.at(current).state
			if _, err := state.PlayAuto(col); err != nil {
				log.Debug().Int("column", col).Msgf("recombination path not playable: %v", err)
				return noNode, false
			}
			next = e.createAndSimulate(state, current)
			t.at(current).children[col] = next
			n := t.at(next)
			t.backpropagate(current, n.wins, n.visits)
		}
		current = next
	}
	return current, true
}
