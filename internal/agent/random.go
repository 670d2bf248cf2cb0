package agent

import (
	"math/rand/v2"

	"github.com/rocketscienceinc/amoeba-bot/internal/entity"
)

// Random - plays any cell next to the existing marks.
type Random struct {
	rnd *rand.Rand
}

// NewRandom - a nil source falls back to the global generator.
func NewRandom(rnd *rand.Rand) *Random {
	return &Random{rnd: rnd}
}

func (that *Random) Act(board *entity.Board, _ entity.Mark) entity.Position {
	candidates := NearbyLegalMoves(board)
	if len(candidates) == 0 {
		return entity.Position{}
	}

	return candidates[that.intN(len(candidates))]
}

func (that *Random) intN(n int) int {
	if that.rnd == nil {
		return rand.IntN(n) //nolint: gosec // it's ok
	}
	return that.rnd.IntN(n)
}
