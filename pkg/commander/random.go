package commander

import (
	"math/rand"

	"github.com/rallen090/BattleShip/pkg/game"
)

// RandomCommander shoots uniformly at one of the Hidden cells.
type RandomCommander struct {
	rng *rand.Rand
}

func NewRandomCommander(opts ...Option) *RandomCommander {
	o := newOptions(opts)
	return &RandomCommander{rng: o.rng}
}

func (c *RandomCommander) NextTarget(grid *game.Grid, _ []*game.Ship) (int, error) {
	hidden := grid.CellsIn(game.Hidden)
	if len(hidden) == 0 {
		return 0, ErrNoTarget
	}
	return hidden[c.rng.Intn(len(hidden))].TargetLocation, nil
}
