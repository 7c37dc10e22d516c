package commander

import (
	"errors"
	"fmt"

	"github.com/rallen090/BattleShip/pkg/game"
)

// ErrNoTarget is returned when the grid has no Hidden cell left to shoot at.
var ErrNoTarget = errors.New("no hidden cell left")

// Commander picks the next cell to shoot at. Implementations only read the
// grid and ships; the returned location always belongs to a Hidden cell.
//
//go:generate mockery -name=Commander -output=automock -outpkg=automock -case=underscore
type Commander interface {
	NextTarget(grid *game.Grid, ships []*game.Ship) (int, error)
}

type Type int

const (
	Random Type = iota + 1
	Probability
)

func (t Type) String() string {
	switch t {
	case Random:
		return "random"
	case Probability:
		return "probability"
	default:
		return "unknown"
	}
}

func ParseType(v int) (Type, error) {
	t := Type(v)
	if t != Random && t != Probability {
		return 0, fmt.Errorf("invalid commander type: %d", v)
	}
	return t, nil
}

// NewFactory returns a constructor for commanders of the given type. Every
// session must get its own commander since commanders may keep state.
func NewFactory(t Type, opts ...Option) (func() Commander, error) {
	switch t {
	case Random:
		return func() Commander { return NewRandomCommander(opts...) }, nil
	case Probability:
		return func() Commander { return NewProbabilityCommander(opts...) }, nil
	default:
		return nil, fmt.Errorf("invalid commander type: %d", t)
	}
}
