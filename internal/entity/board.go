package entity

import (
	"errors"
	"fmt"
	"slices"
)

var ErrCellOccupied = errors.New("cell is already occupied")

// Board - every position claimed so far, grouped by mark.
type Board struct {
	moves map[Mark]map[string]Position
}

func NewBoard() *Board {
	return &Board{
		moves: map[Mark]map[string]Position{
			MarkX: {},
			MarkO: {},
		},
	}
}

// NewBoardFromScan - builds a board from a full snapshot of both marks.
func NewBoardFromScan(xs, os []Position) (*Board, error) {
	board := NewBoard()

	for _, pos := range xs {
		if err := board.Place(MarkX, pos); err != nil {
			return nil, err
		}
	}

	for _, pos := range os {
		if err := board.Place(MarkO, pos); err != nil {
			return nil, err
		}
	}

	return board, nil
}

// Place - claims the position for the mark. A cell is never claimed twice.
func (that *Board) Place(mark Mark, pos Position) error {
	if !mark.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidMark, mark)
	}

	key := pos.Key()
	if owner, ok := that.Owner(key); ok {
		if owner == mark {
			return nil
		}
		return fmt.Errorf("%w: %s by %s", ErrCellOccupied, pos, owner)
	}

	that.moves[mark][key] = pos

	return nil
}

// Owner - returns the mark holding the cell with the given key.
func (that *Board) Owner(key string) (Mark, bool) {
	for _, mark := range []Mark{MarkX, MarkO} {
		if _, ok := that.moves[mark][key]; ok {
			return mark, true
		}
	}
	return "", false
}

func (that *Board) Occupied(key string) bool {
	_, ok := that.Owner(key)
	return ok
}

// Has - reports whether the mark holds the cell with the given key.
func (that *Board) Has(mark Mark, key string) bool {
	_, ok := that.moves[mark][key]
	return ok
}

func (that *Board) Count(mark Mark) int {
	return len(that.moves[mark])
}

func (that *Board) Empty() bool {
	return that.Count(MarkX) == 0 && that.Count(MarkO) == 0
}

// Positions - positions of the mark sorted by x, then by y.
func (that *Board) Positions(mark Mark) []Position {
	positions := make([]Position, 0, len(that.moves[mark]))
	for _, pos := range that.moves[mark] {
		positions = append(positions, pos)
	}

	slices.SortFunc(positions, ComparePositions)

	return positions
}

func (that *Board) Clone() *Board {
	clone := NewBoard()
	for mark, cells := range that.moves {
		for key, pos := range cells {
			clone.moves[mark][key] = pos
		}
	}
	return clone
}

// ComparePositions - ordering used to keep candidate lists reproducible.
func ComparePositions(a, b Position) int {
	switch {
	case a.Less(b):
		return -1
	case b.Less(a):
		return 1
	default:
		return 0
	}
}
