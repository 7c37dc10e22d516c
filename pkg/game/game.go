package game

import (
	"errors"
	"fmt"
)

var (
	ErrOutOfBounds     = errors.New("position out of bounds")
	ErrShipOutOfBounds = errors.New("ship goes out of bounds")
	ErrStateTransition = errors.New("invalid cell state transition")
)

type CellState int

const (
	Hidden CellState = iota + 1
	Hit
	Miss
)

func (s CellState) String() string {
	switch s {
	case Hidden:
		return "Hidden"
	case Hit:
		return "Hit"
	case Miss:
		return "Miss"
	default:
		return "Unknown"
	}
}

type Orientation int

const (
	Horizontal Orientation = iota
	Vertical
)

func (o Orientation) String() string {
	switch o {
	case Horizontal:
		return "Horizontal"
	case Vertical:
		return "Vertical"
	default:
		return "Unknown"
	}
}

// Orientations lists both orientations in the order windows are enumerated.
var Orientations = []Orientation{Horizontal, Vertical}

type Position struct {
	X int
	Y int
}

// Positions returns the positions covered by a ship of the given length that
// starts at start and extends right (Horizontal) or down (Vertical) on an
// n×n grid. An error is returned if any of them falls outside of the grid.
func Positions(start Position, length int, orientation Orientation, n int) ([]Position, error) {
	switch orientation {
	case Horizontal:
		return fill(start,
			length,
			func(p Position, offset int) bool { return p.X+offset > n || p.Y >= n },
			func(p Position, i int) Position {
				return Position{
					X: p.X + i,
					Y: p.Y,
				}
			})
	case Vertical:
		return fill(start,
			length,
			func(p Position, offset int) bool { return p.Y+offset > n || p.X >= n },
			func(p Position, i int) Position {
				return Position{
					X: p.X,
					Y: p.Y + i,
				}
			})
	default:
		return nil, fmt.Errorf("unknown orientation %d", orientation)
	}
}

func fill(start Position, size int, outOfBounds func(Position, int) bool, next func(Position, int) Position) ([]Position, error) {
	if start.X < 0 || start.Y < 0 || outOfBounds(start, size) {
		return nil, ErrShipOutOfBounds
	}
	positions := make([]Position, 0, size)
	for i := 0; i < size; i++ {
		positions = append(positions, next(start, i))
	}
	return positions, nil
}

// Cell is a single square of the opponent's grid as seen by the shooter.
type Cell struct {
	X int
	Y int
	// TargetLocation is the row-major index exchanged over the wire.
	TargetLocation int
	State          CellState
}

// Grid is an n×n matrix of cells stored in row-major order.
type Grid struct {
	n     int
	cells []*Cell
}

//NewGrid returns an n×n grid with every cell Hidden.
func NewGrid(n int) (*Grid, error) {
	if n < 1 {
		return nil, fmt.Errorf("invalid grid size %d", n)
	}
	g := &Grid{
		n:     n,
		cells: make([]*Cell, 0, n*n),
	}
	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			g.cells = append(g.cells, &Cell{
				X:              x,
				Y:              y,
				TargetLocation: y*n + x,
				State:          Hidden,
			})
		}
	}
	return g, nil
}

func (g *Grid) Size() int {
	return g.n
}

func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.n && y >= 0 && y < g.n
}

func (g *Grid) Location(x, y int) int {
	return y*g.n + x
}

// Cell returns the cell at (x,y) or nil when out of bounds.
func (g *Grid) Cell(x, y int) *Cell {
	if !g.InBounds(x, y) {
		return nil
	}
	return g.cells[g.Location(x, y)]
}

// CellAt returns the cell with the given target location.
func (g *Grid) CellAt(location int) (*Cell, error) {
	if location < 0 || location >= len(g.cells) {
		return nil, fmt.Errorf("target location %d: %w", location, ErrOutOfBounds)
	}
	return g.cells[location], nil
}

// Cells returns all cells in row-major order: increasing y, then increasing x.
func (g *Grid) Cells() []*Cell {
	return g.cells
}

// CellsIn returns the cells of the grid holding the given state, row-major.
func (g *Grid) CellsIn(state CellState) []*Cell {
	var cells []*Cell
	for _, c := range g.cells {
		if c.State == state {
			cells = append(cells, c)
		}
	}
	return cells
}

// Adjacent returns the orthogonal neighbours of c (left, right, up, down),
// skipping those beyond the edge of the grid.
func (g *Grid) Adjacent(c *Cell) []*Cell {
	neighbours := make([]*Cell, 0, 4)
	for _, p := range getNeighbours(Position{X: c.X, Y: c.Y}) {
		if n := g.Cell(p.X, p.Y); n != nil {
			neighbours = append(neighbours, n)
		}
	}
	return neighbours
}

// Window returns the cells of a length-long run starting at (x,y).
func (g *Grid) Window(x, y, length int, orientation Orientation) ([]*Cell, error) {
	positions, err := Positions(Position{X: x, Y: y}, length, orientation, g.n)
	if err != nil {
		return nil, err
	}
	cells := make([]*Cell, len(positions))
	for i, p := range positions {
		cells[i] = g.cells[g.Location(p.X, p.Y)]
	}
	return cells, nil
}

// Mark records the outcome of a shot. Hidden may become Hit or Miss; a
// revealed cell never changes again.
func (g *Grid) Mark(location int, state CellState) error {
	c, err := g.CellAt(location)
	if err != nil {
		return err
	}
	if c.State == state {
		return nil
	}
	if c.State != Hidden || state == Hidden {
		return fmt.Errorf("cell %d %s -> %s: %w", location, c.State, state, ErrStateTransition)
	}
	c.State = state
	return nil
}

func getNeighbours(p Position) []Position {
	return []Position{
		{
			X: p.X - 1,
			Y: p.Y,
		},
		{
			X: p.X + 1,
			Y: p.Y,
		},
		{
			X: p.X,
			Y: p.Y - 1,
		},
		{
			X: p.X,
			Y: p.Y + 1,
		},
	}
}
