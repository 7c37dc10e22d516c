package commander

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/rallen090/BattleShip/pkg/game"
)

const (
	// hitWeight is added for windows passing through unattributed hits, where a
	// live ship is far more likely to continue.
	hitWeight    = 20
	normalWeight = 1
)

// sunkenShip records where a sunk ship lay once that can be told for certain.
// cells stays nil until exactly one run of hits fits the ship.
type sunkenShip struct {
	ship  *game.Ship
	cells []*game.Cell
}

// ProbabilityCommander rates every Hidden cell by the number of ways the
// remaining ships could still cover it and shoots at the best rated one.
//
// Apart from the locations inferred for sunk ships, the ratings are rebuilt
// from the grid on every call, so equal states always produce equal targets.
type ProbabilityCommander struct {
	sunken []*sunkenShip
	logger *log.Logger
}

func NewProbabilityCommander(opts ...Option) *ProbabilityCommander {
	o := newOptions(opts)
	return &ProbabilityCommander{logger: o.logger}
}

func (c *ProbabilityCommander) NextTarget(grid *game.Grid, ships []*game.Ship) (int, error) {
	c.trackSunkenShips(ships)
	for _, s := range c.sunken {
		if s.cells == nil {
			c.resolve(s, grid)
		}
	}

	attributed := c.sunkenCells()
	ratings := c.rate(grid, ships, attributed)
	c.logRatings(grid, ratings)

	return selectTarget(grid, ratings, attributed)
}

func (c *ProbabilityCommander) trackSunkenShips(ships []*game.Ship) {
	for _, ship := range ships {
		if !ship.Sunk || c.tracked(ship.ID) {
			continue
		}
		c.sunken = append(c.sunken, &sunkenShip{ship: ship})
	}
}

func (c *ProbabilityCommander) tracked(id int) bool {
	for _, s := range c.sunken {
		if s.ship.ID == id {
			return true
		}
	}
	return false
}

// resolve attributes cells to a sunk ship when exactly one run of
// unattributed hits, starting at a hit cell and heading right or down,
// matches its length. Ambiguous evidence is left for a later turn.
func (c *ProbabilityCommander) resolve(s *sunkenShip, grid *game.Grid) {
	attributed := c.sunkenCells()

	var location []*game.Cell
	count := 0
	for _, hit := range grid.CellsIn(game.Hit) {
		for _, orientation := range game.Orientations {
			// both orientations describe the same single cell
			if s.ship.Length == 1 && orientation == game.Vertical {
				continue
			}
			window, err := grid.Window(hit.X, hit.Y, s.ship.Length, orientation)
			if err != nil {
				continue
			}
			if !unattributedHits(window, attributed) {
				continue
			}
			location = window
			count++
			if count > 1 {
				return
			}
		}
	}

	if count == 1 {
		s.cells = location
		c.logger.Debug("sunk ship located", "ship", s.ship.Name, "cells", locations(location))
	}
}

func unattributedHits(window []*game.Cell, attributed map[int]bool) bool {
	for _, cell := range window {
		if cell.State != game.Hit || attributed[cell.TargetLocation] {
			return false
		}
	}
	return true
}

func (c *ProbabilityCommander) sunkenCells() map[int]bool {
	attributed := make(map[int]bool)
	for _, s := range c.sunken {
		for _, cell := range s.cells {
			attributed[cell.TargetLocation] = true
		}
	}
	return attributed
}

// rate slides every unsunk ship over the grid in both orientations and
// credits the Hidden cells of each window the ship could still occupy.
func (c *ProbabilityCommander) rate(grid *game.Grid, ships []*game.Ship, attributed map[int]bool) []int {
	n := grid.Size()
	ratings := make([]int, n*n)
	for _, ship := range ships {
		if ship.Sunk {
			continue
		}
		for _, orientation := range game.Orientations {
			xMax, yMax := n-1, n-1
			if orientation == game.Horizontal {
				xMax = n - ship.Length
			} else {
				yMax = n - ship.Length
			}
			for y := 0; y <= yMax; y++ {
				for x := 0; x <= xMax; x++ {
					window, err := grid.Window(x, y, ship.Length, orientation)
					if err != nil {
						continue
					}
					rateWindow(ratings, window, attributed)
				}
			}
		}
	}
	return ratings
}

func rateWindow(ratings []int, window []*game.Cell, attributed map[int]bool) {
	open := make([]*game.Cell, 0, len(window))
	for _, cell := range window {
		switch {
		case cell.State == game.Hidden:
			open = append(open, cell)
		case cell.State == game.Hit && !attributed[cell.TargetLocation]:
		default:
			return
		}
	}

	weight := normalWeight
	if len(open) != len(window) {
		weight = hitWeight
	}
	for _, cell := range open {
		ratings[cell.TargetLocation] += weight
	}
}

// selectTarget returns the best rated Hidden cell. Ties go to the cell with
// the most unattributed hits next to it, then to the first in row-major order.
func selectTarget(grid *game.Grid, ratings []int, attributed map[int]bool) (int, error) {
	best := -1
	var top []*game.Cell
	for _, cell := range grid.Cells() {
		if cell.State != game.Hidden {
			continue
		}
		rating := ratings[cell.TargetLocation]
		if rating > best {
			best = rating
			top = append(top[:0], cell)
		} else if rating == best {
			top = append(top, cell)
		}
	}

	if len(top) == 0 {
		return 0, ErrNoTarget
	}
	if len(top) == 1 {
		return top[0].TargetLocation, nil
	}

	target := top[0]
	most := -1
	for _, cell := range top {
		hits := adjacentHits(grid, cell, attributed)
		if hits > most {
			most = hits
			target = cell
		}
	}
	return target.TargetLocation, nil
}

func adjacentHits(grid *game.Grid, cell *game.Cell, attributed map[int]bool) int {
	count := 0
	for _, n := range grid.Adjacent(cell) {
		if n.State == game.Hit && !attributed[n.TargetLocation] {
			count++
		}
	}
	return count
}

func (c *ProbabilityCommander) logRatings(grid *game.Grid, ratings []int) {
	if c.logger.GetLevel() > log.DebugLevel {
		return
	}

	var b strings.Builder
	for _, cell := range grid.Cells() {
		switch cell.State {
		case game.Hit:
			b.WriteString(" XX")
		case game.Miss:
			b.WriteString(" ..")
		default:
			fmt.Fprintf(&b, " %02d", ratings[cell.TargetLocation])
		}
		if cell.X == grid.Size()-1 {
			b.WriteByte('\n')
		}
	}
	c.logger.Debug("probability grid\n" + b.String())
}

func locations(cells []*game.Cell) []int {
	out := make([]int, len(cells))
	for i, cell := range cells {
		out[i] = cell.TargetLocation
	}
	return out
}
