package gomoku

import (
	"errors"
	"fmt"
)

const (
	Size     = 10
	Cells    = Size * Size
	WinRun   = 5
	scanStep = WinRun - 1
)

var (
	ErrOutOfBounds  = errors.New("cell is out of board bounds")
	ErrCellOccupied = errors.New("cell is already occupied")
	ErrInvalidMark  = errors.New("invalid mark")
)

// Mark is the owner of a cell.
type Mark int

const (
	Empty Mark = iota
	First
	Second
)

// axes - horizontal, vertical and both diagonals.
var axes = [4][2]int{
	{1, 0},
	{0, 1},
	{1, 1},
	{1, -1},
}

// Board is a value type so a copy is an immutable snapshot.
type Board struct {
	cells [Cells]Mark
	free  int
}

func NewBoard() Board {
	return Board{free: Cells}
}

func InBounds(x, y int) bool {
	return x >= 0 && x < Size && y >= 0 && y < Size
}

// At - returns the mark at (x, y), Empty when out of bounds.
func (that *Board) At(x, y int) Mark {
	if !InBounds(x, y) {
		return Empty
	}
	return that.cells[x*Size+y]
}

// Remaining - number of empty cells.
func (that *Board) Remaining() int {
	return that.free
}

func (that *Board) Full() bool {
	return that.free == 0
}

// Place - validates and applies a move.
func (that *Board) Place(x, y int, mark Mark) error {
	if mark != First && mark != Second {
		return ErrInvalidMark
	}

	if !InBounds(x, y) {
		return fmt.Errorf("%w: (%d, %d)", ErrOutOfBounds, x, y)
	}

	if that.cells[x*Size+y] != Empty {
		return fmt.Errorf("%w: (%d, %d)", ErrCellOccupied, x, y)
	}

	that.cells[x*Size+y] = mark
	that.free--

	return nil
}

// Wins - reports whether the mark at (x, y) completes a run of five.
func Wins(board Board, x, y int) bool {
	mark := board.At(x, y)
	if mark == Empty {
		return false
	}

	for _, axis := range axes {
		if runLength(&board, x, y, axis[0], axis[1], mark) >= WinRun {
			return true
		}
	}

	return false
}

// runLength - contiguous cells of mark through (x, y) along one axis,
// scanning at most scanStep cells each way.
func runLength(board *Board, x, y, dx, dy int, mark Mark) int {
	total := 1
	for _, sign := range [2]int{-1, 1} {
		for step := 1; step <= scanStep; step++ {
			cx, cy := x+dx*step*sign, y+dy*step*sign
			if !InBounds(cx, cy) || board.At(cx, cy) != mark {
				break
			}
			total++
		}
	}
	return total
}
