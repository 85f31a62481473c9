package searcher

import (
	"errors"

	"connect4/game"

	"golang.org/x/exp/rand"
)

// Rollout results, from the searcher's perspective.
const (
	unfavorable uint32 = 0
	favorable   uint32 = 1
)

// rollout plays uniformly random moves from state until the game ends and
// classifies the outcome for side: 1 for a win, 0 for a loss or draw. An
// already terminal state is classified directly. The caller's state is never
// touched; state is a value and serves as the playout scratch copy.
func rollout(state game.GameState, side game.Player, rng *rand.Rand) (uint32, error) {
	if state.Winner() != game.Ongoing {
		return classify(state.Winner(), side), nil
	}

	for {
		// Pick a random column, then scan forward with wraparound past full
		// ones. The draw check in Play fires on the move that fills the board,
		// so the scan always lands somewhere while the game is ongoing.
		first := rng.Intn(game.Columns)
		var result game.MoveResult
		var err error
		for i := 0; i < game.Columns; i++ {
			result, err = state.PlayAuto((first + i) % game.Columns)
			if err == nil {
				break
			}
			if !errors.Is(err, game.ErrColumnFull) {
				return 0, err
			}
		}
		if err != nil {
			// Every column rejected: the position was terminal after all.
			return classify(state.Winner(), side), nil
		}
		if result == game.MoveWin || result == game.MoveDraw {
			return classify(state.Winner(), side), nil
		}
	}
}

func classify(outcome game.Outcome, side game.Player) uint32 {
	if outcome == game.WonBy(side) {
		return favorable
	}
	return unfavorable
}
