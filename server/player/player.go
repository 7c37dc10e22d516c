package player

import (
	"github.com/rallen090/BattleShip/pkg/protocol"
	"github.com/rallen090/BattleShip/server/board"
)

// Connection carries the lines exchanged with a single player.
//
//go:generate mockery -name=Connection -output=automock -outpkg=automock -case=underscore
type Connection interface {
	// ReadLine returns the next non-blank line sent by the player.
	ReadLine() (string, error)
	WriteLine(line string) error
	Close() error
}

// Player is a connected client. Board holds the opponent's fleet, the one this
// player shoots at.
type Player struct {
	Conn  Connection
	Board *board.Board
	Id    string
}

// Shoot fires at the opponent's fleet.
func (p *Player) Shoot(location int) (protocol.Response, error) {
	return p.Board.Shoot(location)
}

// Defeated reports whether the opponent has sunk this player's fleet, given
// the opponent.
func (p *Player) Defeated(opponent *Player) bool {
	return opponent.Board.Won()
}
