package game

import "errors"

const (
	// Columns is the board width, Rows the board height.
	Columns = 7
	Rows    = 6
)

// Player identifies one of the two sides.
type Player int8

const (
	PlayerA Player = 0
	PlayerB Player = 1
)

func (p Player) Valid() bool {
	return p == PlayerA || p == PlayerB
}

// Opponent returns the other side.
func (p Player) Opponent() Player {
	return 1 - p
}

func (p Player) String() string {
	if p == PlayerA {
		return "A"
	}
	return "B"
}

// Outcome is the result of a game as reported by Winner.
type Outcome int8

const (
	Ongoing Outcome = iota
	WonByA
	WonByB
	Draw
)

// WonBy maps a player to their winning outcome.
func WonBy(p Player) Outcome {
	if p == PlayerA {
		return WonByA
	}
	return WonByB
}

// MoveResult classifies an accepted move.
type MoveResult int8

const (
	MoveAccepted MoveResult = iota // Move applied, game continues
	MoveWin                        // Move applied and completed four in a row
	MoveDraw                       // Move applied and filled the top row
)

var (
	ErrInvalidArgument = errors.New("invalid argument")
	ErrNotYourTurn     = errors.New("not this player's turn")
	ErrColumnFull      = errors.New("column is full")
	ErrGameFinished    = errors.New("game is already finished")
)

// Grid packs one player's half of the board into a single word:
// bit 62 set when it is that player's turn, bit 61 set once that player has
// completed four in a row, bits 0..41 one per cell with the offset of cell
// (col, row) being (row+1)*Columns - col - 1.
type Grid uint64

const (
	bitOne  Grid = 1
	turnBit Grid = bitOne << 62
	winBit  Grid = bitOne << 61

	topRowShift = Columns * (Rows - 1)
	topRowMask  = 0x7F
)

func cellOffset(col, row int) uint {
	return uint((row+1)*Columns - col - 1)
}

// GameState is the full state of a Connect-4 game: one grid per player plus
// a per-column disc count. It is a value type: assignment produces an
// independent deep copy.
type GameState struct {
	grids     [2]Grid
	occupancy [Columns]uint8
}

// NewGameState returns an empty board with the given player to move.
func NewGameState(starting Player) GameState {
	var gs GameState
	if !starting.Valid() {
		starting = PlayerA
	}
	gs.grids[starting] = turnBit
	return gs
}

// Copy returns an independent copy of the state.
func (gs GameState) Copy() GameState {
	return gs
}

// Turn returns the player whose turn it is.
func (gs *GameState) Turn() Player {
	if gs.grids[PlayerA]&turnBit != 0 {
		return PlayerA
	}
	return PlayerB
}

// Winner reports the outcome of the game so far. A draw is the top row being
// full with neither win flag set.
func (gs *GameState) Winner() Outcome {
	if gs.grids[PlayerA]&winBit != 0 {
		return WonByA
	}
	if gs.grids[PlayerB]&winBit != 0 {
		return WonByB
	}
	if ((gs.grids[PlayerA]|gs.grids[PlayerB])>>topRowShift)&topRowMask == topRowMask {
		return Draw
	}
	return Ongoing
}

// Occupancy returns the number of discs in a column.
func (gs *GameState) Occupancy(col int) int {
	return int(gs.occupancy[col])
}

// CellOwner reports which player holds the cell at (col, row), row 0 being
// the bottom. The second return is false for an empty cell.
func (gs *GameState) CellOwner(col, row int) (Player, bool) {
	mask := bitOne << cellOffset(col, row)
	if gs.grids[PlayerA]&mask != 0 {
		return PlayerA, true
	}
	if gs.grids[PlayerB]&mask != 0 {
		return PlayerB, true
	}
	return 0, false
}

// Play drops a disc for player in col. On success the state is mutated in
// place: the cell bit is set, the turn flag moves to the opponent, and the
// win flag is set if the disc completes four in a row. A rejected move
// returns an error and leaves the state untouched.
func (gs *GameState) Play(player Player, col int) (MoveResult, error) {
	if !player.Valid() {
		return 0, ErrInvalidArgument
	}
	if col < 0 || col >= Columns {
		return 0, ErrInvalidArgument
	}
	if gs.Winner() != Ongoing {
		return 0, ErrGameFinished
	}
	if gs.occupancy[col] >= Rows {
		return 0, ErrColumnFull
	}
	if gs.grids[player]&turnBit == 0 {
		return 0, ErrNotYourTurn
	}

	gs.grids[player] |= bitOne << cellOffset(col, int(gs.occupancy[col]))
	gs.grids[player] &^= turnBit
	gs.grids[player.Opponent()] |= turnBit
	gs.occupancy[col]++

	if makesConnectFour(gs.grids[player], col, int(gs.occupancy[col]-1)) {
		gs.grids[player] |= winBit
		return MoveWin, nil
	}
	if gs.Winner() == Draw {
		return MoveDraw, nil
	}
	return MoveAccepted, nil
}

// PlayAuto is Play with the player inferred from the turn flag.
func (gs *GameState) PlayAuto(col int) (MoveResult, error) {
	return gs.Play(gs.Turn(), col)
}
