package searcher

import "connect4/game"

// Tactical overrides: cheap exact checks on disposable state copies that
// bypass the search entirely when a move is forced. The live tree is never
// touched here.

// immediateWin scans columns in increasing order for a move that wins the
// game for the engine right now.
func (e *Engine) immediateWin() (int, bool) {
	for col := 0; col < game.Columns; col++ {
		state := e.tree.at(e.tree.root).state
		if result, err := state.PlayAuto(col); err == nil && result == game.MoveWin {
			return col, true
		}
	}
	return -1, false
}

// immediateThreat looks one engine move ahead for opponent wins: for every
// playable engine move and every distinct opponent reply, if the reply wins
// for the opponent, that reply column is returned as the forced block. The
// reply was playable after the probe move in a different column, so it is
// playable for the engine in the real position too.
func (e *Engine) immediateThreat() (int, bool) {
	for probe := 0; probe < game.Columns; probe++ {
		state := e.tree.at(e.tree.root).state
		if _, err := state.PlayAuto(probe); err != nil {
			continue
		}
		for reply := 0; reply < game.Columns; reply++ {
			if reply == probe {
				continue
			}
			replyState := state
			if result, err := replyState.PlayAuto(reply); err == nil && result == game.MoveWin {
				return reply, true
			}
		}
	}
	return -1, false
}
