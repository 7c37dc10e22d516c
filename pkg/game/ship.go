package game

// FleetCells is the number of cells covered by the default fleet.
const FleetCells = 17

type Ship struct {
	ID     int
	Name   string
	Length int
	Sunk   bool
}

//DefaultFleet returns a fresh, unsunk copy of the five standard ships.
func DefaultFleet() []*Ship {
	return []*Ship{
		{ID: 1, Name: "Aircraft Carrier", Length: 5},
		{ID: 2, Name: "Battleship", Length: 4},
		{ID: 3, Name: "Submarine", Length: 3},
		{ID: 4, Name: "Cruiser", Length: 3},
		{ID: 5, Name: "Destroyer", Length: 2},
	}
}

// FleetLength returns the number of cells the given ships occupy.
func FleetLength(ships []*Ship) int {
	total := 0
	for _, s := range ships {
		total += s.Length
	}
	return total
}

// FindShip returns the ship with the given id or nil.
func FindShip(ships []*Ship, id int) *Ship {
	for _, s := range ships {
		if s.ID == id {
			return s
		}
	}
	return nil
}
