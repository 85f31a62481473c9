package game

import (
	"fmt"
	"strings"
)

// String renders the board top row first, with column indices, the player to
// move, and the outcome. Only the CLI uses this; the search never renders.
func (gs GameState) String() string {
	var b strings.Builder
	b.WriteString("0 1 2 3 4 5 6\n")
	for row := Rows - 1; row >= 0; row-- {
		for col := 0; col < Columns; col++ {
			switch owner, occupied := gs.CellOwner(col, row); {
			case occupied && owner == PlayerA:
				b.WriteString("● ")
			case occupied:
				b.WriteString("○ ")
			default:
				b.WriteString("_ ")
			}
		}
		b.WriteByte('\n')
	}

	outcome := gs.Winner()
	if outcome == Ongoing {
		fmt.Fprintf(&b, "=== Turn: %s\n", gs.Turn())
	}
	switch outcome {
	case WonByA:
		b.WriteString("=== A has won!\n")
	case WonByB:
		b.WriteString("=== B has won!\n")
	case Draw:
		b.WriteString("=== The game is a draw.\n")
	}
	return b.String()
}
