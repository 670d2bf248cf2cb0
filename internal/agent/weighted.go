package agent

import "github.com/rocketscienceinc/amoeba-bot/internal/entity"

// Weighted - plays the cell with the longest line through it, own or opponent's.
type Weighted struct{}

func NewWeighted() *Weighted {
	return &Weighted{}
}

// Score - max of the own and the opponent's longest sequence through pos.
func (that *Weighted) Score(board *entity.Board, sign entity.Mark, pos entity.Position) int {
	own := LongestSequence(board, sign, pos)
	opp := LongestSequence(board, sign.Opponent(), pos)

	return max(own, opp)
}

// Act - the first best scoring candidate; the origin on an empty board.
func (that *Weighted) Act(board *entity.Board, sign entity.Mark) entity.Position {
	candidates := NearbyLegalMoves(board)
	if len(candidates) == 0 {
		return entity.Position{}
	}

	best := candidates[0]
	bestScore := that.Score(board, sign, best)

	for _, candidate := range candidates[1:] {
		if score := that.Score(board, sign, candidate); score > bestScore {
			best, bestScore = candidate, score
		}
	}

	return best
}
