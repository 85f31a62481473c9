package game

// makesConnectFour reports whether the disc just placed at (col, row)
// completes a run of four for the grid's owner. It only scans the four lines
// through the new disc: the downward vertical run, the full row, and the two
// diagonals, each clamped so the scan never wraps past a column edge.
func makesConnectFour(grid Grid, col, row int) bool {
	// Vertical: discs stack, so only the run downward from the new disc counts.
	run := 0
	for offset := int(cellOffset(col, row)); offset >= 0; offset -= Columns {
		if grid&(bitOne<<uint(offset)) == 0 {
			break
		}
		run++
	}
	if run >= 4 {
		return true
	}

	// Horizontal: maximal run anywhere along the disc's row.
	run = 0
	start := row * Columns
	for offset := start; offset < start+Columns; offset++ {
		if grid&(bitOne<<uint(offset)) != 0 {
			run++
			if run >= 4 {
				return true
			}
		} else {
			run = 0
		}
	}

	// Diagonal up-right (as seen on the board; offsets grow by Columns-1).
	// Walk back to the nearest edge first so the scan starts on the board.
	run = 0
	increment := Columns - 1
	back := min(row, col)
	curCol := col - back
	offset := int(cellOffset(col, row)) - increment*back
	for ; offset < Columns*Rows && curCol < Columns; offset += increment {
		if grid&(bitOne<<uint(offset)) != 0 {
			run++
			if run >= 4 {
				return true
			}
		} else {
			run = 0
		}
		curCol++
	}

	// Diagonal up-left (offsets grow by Columns+1).
	run = 0
	increment = Columns + 1
	back = min(row, Columns-1-col)
	curCol = col + back
	offset = int(cellOffset(col, row)) - increment*back
	for ; offset < Columns*Rows && curCol >= 0; offset += increment {
		if grid&(bitOne<<uint(offset)) != 0 {
			run++
			if run >= 4 {
				return true
			}
		} else {
			run = 0
		}
		curCol--
	}

	return false
}
