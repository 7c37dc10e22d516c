package board

import (
	"errors"
	"fmt"
	"math/rand"
	"sort"
	"strconv"
	"strings"

	"github.com/dolthub/swiss"
	"github.com/rallen090/BattleShip/pkg/game"
	"github.com/rallen090/BattleShip/pkg/protocol"
)

// MaxPlacementAttempts bounds the random samples spent on a single ship.
const MaxPlacementAttempts = 10000

const missMarker = -99

var (
	ErrFieldsTaken        = errors.New("some of the fields are already taken")
	ErrFleetTooLarge      = errors.New("fleet does not fit the board")
	ErrPlacementExhausted = errors.New("no free location found for ship")
	ErrInvalidPlacement   = errors.New("invalid ship placement")
)

// Board is the authoritative side of a game: it knows where every ship lies
// and resolves the shots fired at it.
type Board struct {
	size  int
	fleet []*game.Ship

	// location -> ship id
	occupied *swiss.Map[int, int]
	hits     *swiss.Map[int, int]
	misses   *swiss.Map[int, struct{}]
	hitCount map[int]int

	won bool
}

// NewBoard returns an empty size×size board for the given fleet.
func NewBoard(size int, fleet []*game.Ship) *Board {
	hint := uint32(game.FleetLength(fleet))
	return &Board{
		size:     size,
		fleet:    fleet,
		occupied: swiss.NewMap[int, int](hint),
		hits:     swiss.NewMap[int, int](hint),
		misses:   swiss.NewMap[int, struct{}](uint32(size * size)),
		hitCount: make(map[int]int, len(fleet)),
	}
}

// NewRandomBoard returns a board with the fleet placed at random.
func NewRandomBoard(size int, fleet []*game.Ship, rng *rand.Rand) (*Board, error) {
	b := NewBoard(size, fleet)
	if err := b.Randomize(rng); err != nil {
		return nil, err
	}
	return b, nil
}

func (b *Board) Size() int {
	return b.size
}

// PlaceShip puts ship on the board starting at (x,y). Nothing is placed if any
// of its fields is out of bounds or already taken.
func (b *Board) PlaceShip(ship *game.Ship, x, y int, orientation game.Orientation) error {
	positions, err := game.Positions(game.Position{X: x, Y: y}, ship.Length, orientation, b.size)
	if err != nil {
		return err
	}

	for _, p := range positions {
		if b.occupied.Has(b.location(p)) {
			return ErrFieldsTaken
		}
	}

	for _, p := range positions {
		b.occupied.Put(b.location(p), ship.ID)
	}
	return nil
}

// Randomize places every ship of the fleet, longest first, by sampling an
// orientation and an anchor until the ship fits without overlapping.
func (b *Board) Randomize(rng *rand.Rand) error {
	if game.FleetLength(b.fleet) > b.size*b.size {
		return fmt.Errorf("%d cells on %dx%d: %w", game.FleetLength(b.fleet), b.size, b.size, ErrFleetTooLarge)
	}

	ships := make([]*game.Ship, len(b.fleet))
	copy(ships, b.fleet)
	sort.SliceStable(ships, func(i, j int) bool {
		return ships[i].Length > ships[j].Length
	})

	for _, ship := range ships {
		if ship.Length > b.size {
			return fmt.Errorf("%s of length %d: %w", ship.Name, ship.Length, ErrFleetTooLarge)
		}
		if err := b.placeRandomly(ship, rng); err != nil {
			return err
		}
	}

	return b.Validate()
}

func (b *Board) placeRandomly(ship *game.Ship, rng *rand.Rand) error {
	for attempt := 0; attempt < MaxPlacementAttempts; attempt++ {
		orientation := game.Orientations[rng.Intn(len(game.Orientations))]
		xMax, yMax := b.size-1, b.size-1
		if orientation == game.Horizontal {
			xMax = b.size - ship.Length
		} else {
			yMax = b.size - ship.Length
		}

		err := b.PlaceShip(ship, rng.Intn(xMax+1), rng.Intn(yMax+1), orientation)
		if err == nil {
			return nil
		}
	}
	return fmt.Errorf("%s after %d attempts: %w", ship.Name, MaxPlacementAttempts, ErrPlacementExhausted)
}

// Validate checks that the ships cover exactly as many cells as the fleet
// has. A board failing this check must never be played on.
func (b *Board) Validate() error {
	if want, have := game.FleetLength(b.fleet), b.occupied.Count(); want != have {
		return fmt.Errorf("%d ship cells, expected %d: %w", have, want, ErrInvalidPlacement)
	}
	return nil
}

// ShipAt returns the id of the ship covering location.
func (b *Board) ShipAt(location int) (int, bool) {
	return b.occupied.Get(location)
}

// Shoot resolves a shot at location.
func (b *Board) Shoot(location int) (protocol.Response, error) {
	if location < 0 || location >= b.size*b.size {
		return protocol.Response{}, fmt.Errorf("target location %d: %w", location, game.ErrOutOfBounds)
	}

	id, ok := b.occupied.Get(location)
	if !ok {
		b.misses.Put(location, struct{}{})
		return protocol.BuildResponse(protocol.Miss), nil
	}

	if !b.hits.Has(location) {
		b.hits.Put(location, id)
		b.hitCount[id]++
	}

	if b.hits.Count() == b.occupied.Count() {
		b.won = true
		return protocol.BuildResponse(protocol.Win), nil
	}

	ship := game.FindShip(b.fleet, id)
	if ship != nil && b.hitCount[id] == ship.Length {
		return protocol.BuildSunkResponse(id), nil
	}
	return protocol.BuildResponse(protocol.Hit), nil
}

// Won reports whether every ship cell has been hit.
func (b *Board) Won() bool {
	return b.won
}

// MapString renders the shots taken so far, one token per cell in row-major
// order: 0 untouched, -99 missed, the ship id for a hit.
func (b *Board) MapString() string {
	tokens := make([]string, b.size*b.size)
	for location := range tokens {
		if id, ok := b.hits.Get(location); ok {
			tokens[location] = strconv.Itoa(id)
		} else if b.misses.Has(location) {
			tokens[location] = strconv.Itoa(missMarker)
		} else {
			tokens[location] = "0"
		}
	}
	return strings.Join(tokens, " ")
}

func (b *Board) location(p game.Position) int {
	return p.Y*b.size + p.X
}
