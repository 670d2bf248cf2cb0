package agent

import "github.com/rocketscienceinc/amoeba-bot/internal/entity"

// Directions - vertical, horizontal, diagonal and anti-diagonal axes.
var Directions = [4]entity.Position{
	{X: 0, Y: 1},
	{X: 1, Y: 0},
	{X: 1, Y: 1},
	{X: 1, Y: -1},
}

// checkDirection - counts consecutive cells of the mark stepping from pos along direction.
func checkDirection(board *entity.Board, mark entity.Mark, pos, direction entity.Position) int {
	count := 0
	for curr := pos.Add(direction); board.Has(mark, curr.Key()); curr = curr.Add(direction) {
		count++
	}
	return count
}

// RunLength - length of the mark's line through pos along the axis, pos itself excluded.
func RunLength(board *entity.Board, mark entity.Mark, pos, direction entity.Position) int {
	return checkDirection(board, mark, pos, direction) + checkDirection(board, mark, pos, direction.Neg())
}

// LongestSequence - the longest run of the mark through pos over all four axes.
func LongestSequence(board *entity.Board, mark entity.Mark, pos entity.Position) int {
	longest := 0
	for _, direction := range Directions {
		longest = max(longest, RunLength(board, mark, pos, direction))
	}
	return longest
}
