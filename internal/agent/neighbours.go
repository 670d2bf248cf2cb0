package agent

import (
	"slices"

	"github.com/rocketscienceinc/amoeba-bot/internal/entity"
)

// Neighbours - the eight cells around pos.
func Neighbours(pos entity.Position) []entity.Position {
	neighbours := make([]entity.Position, 0, 8)

	for x := pos.X - 1; x <= pos.X+1; x++ {
		for y := pos.Y - 1; y <= pos.Y+1; y++ {
			if x == pos.X && y == pos.Y {
				continue
			}
			neighbours = append(neighbours, entity.NewPosition(x, y))
		}
	}

	return neighbours
}

// NearbyLegalMoves - free cells next to any placed mark, sorted by x, then by y.
func NearbyLegalMoves(board *entity.Board) []entity.Position {
	found := make(map[string]entity.Position)

	for _, mark := range []entity.Mark{entity.MarkX, entity.MarkO} {
		for _, placed := range board.Positions(mark) {
			for _, neighbour := range Neighbours(placed) {
				key := neighbour.Key()
				if board.Occupied(key) {
					continue
				}
				if _, ok := found[key]; ok {
					continue
				}
				found[key] = neighbour
			}
		}
	}

	candidates := make([]entity.Position, 0, len(found))
	for _, pos := range found {
		candidates = append(candidates, pos)
	}

	slices.SortFunc(candidates, entity.ComparePositions)

	return candidates
}
