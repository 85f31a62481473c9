package searcher

import "connect4/game"

// nodeID addresses a node inside a tree's arena. IDs are stable for the life
// of the node and recycled through the free list after release.
type nodeID int32

const noNode nodeID = -1

// node is one search tree node. It owns its game state by value and refers
// to its parent and children by arena index; the parent link is only used to
// walk upward during backpropagation, never for destruction.
type node struct {
	state    game.GameState
	parent   nodeID
	children [game.Columns]nodeID
	wins     uint32
	visits   uint32
}

// tree is an arena of search nodes with a free list for index reclamation.
// Exactly one root is live at a time.
type tree struct {
	nodes []node
	free  []nodeID
	root  nodeID
}

func newTree() *tree {
	return &tree{root: noNode}
}

// at returns the node for an ID. The pointer is invalidated by the next
// alloc, so callers must not hold it across allocations.
func (t *tree) at(id nodeID) *node {
	return &t.nodes[id]
}

// alloc reserves a node for state, reusing a free slot when one exists.
// Children start absent.
func (t *tree) alloc(state game.GameState, parent nodeID) nodeID {
	var id nodeID
	if n := len(t.free); n > 0 {
		id = t.free[n-1]
		t.free = t.free[:n-1]
	} else {
		t.nodes = append(t.nodes, node{})
		id = nodeID(len(t.nodes) - 1)
	}
	n := t.at(id)
	n.state = state
	n.parent = parent
	n.wins = 0
	n.visits = 0
	for col := range n.children {
		n.children[col] = noNode
	}
	return id
}

// release returns a whole subtree to the free list. It walks an explicit
// stack instead of recursing so deep trees cannot overflow the call stack.
// Releasing noNode is a no-op.
func (t *tree) release(id nodeID) {
	if id == noNode {
		return
	}
	stack := []nodeID{id}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		n := t.at(cur)
		for col, child := range n.children {
			if child != noNode {
				stack = append(stack, child)
				n.children[col] = noNode
			}
		}
		t.free = append(t.free, cur)
	}
}

// size is the number of live nodes.
func (t *tree) size() int {
	return len(t.nodes) - len(t.free)
}

// backpropagate adds a (wins, visits) delta to the node at from and every
// ancestor up to and including the root.
func (t *tree) backpropagate(from nodeID, dw, dv uint32) {
	for id := from; id != noNode; id = t.at(id).parent {
		n := t.at(id)
		n.wins += dw
		n.visits += dv
	}
}
