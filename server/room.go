package main

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/rallen090/BattleShip/pkg/protocol"
	"github.com/rallen090/BattleShip/server/player"
)

var ErrPlayerLeft = errors.New("player left the game")

// Room runs one game between two players. Current is the player whose turn it
// is.
type Room struct {
	Current        *player.Player
	Next           *player.Player
	Id             string
	GridSize       int
	ResponseSender ResponseSender
	// players keeps the seating order; Current and Next change every turn.
	players [2]*player.Player
	logger  *log.Logger
}

func CreateRoom(id string, first, second *player.Player, gridSize int, sender ResponseSender, logger *log.Logger) *Room {
	return &Room{
		Current:        first,
		Next:           second,
		Id:             id,
		GridSize:       gridSize,
		ResponseSender: sender,
		players:        [2]*player.Player{first, second},
		logger:         logger.With("room", id),
	}
}

func (r *Room) GetRoomInfo() (string, int) {
	playersCount := 0
	if r.Current != nil {
		playersCount++
	}
	if r.Next != nil {
		playersCount++
	}
	return r.Id, playersCount
}

// Play announces the grid to both players and lets them shoot in turn until
// one fleet is sunk. The loser is told on what would have been its next turn.
// A player sending an invalid target or leaving ends the game for both.
func (r *Room) Play() error {
	announcement := protocol.EncodeGridSize(r.GridSize)
	for _, p := range []*player.Player{r.Current, r.Next} {
		if err := r.ResponseSender.SendLine(announcement, p.Conn); err != nil {
			r.abort(p)
			return fmt.Errorf("player %s: %w", p.Id, ErrPlayerLeft)
		}
	}

	for {
		if r.Current.Defeated(r.Next) {
			r.logger.Info("game over", "winner", r.Next.Id, "loser", r.Current.Id)
			_ = r.ResponseSender.SendResponse(protocol.BuildResponse(protocol.Lose), r.Current.Conn)
			return nil
		}

		if err := r.playTurn(); err != nil {
			r.abort(r.Current)
			return err
		}
		r.switchPlayers()
	}
}

func (r *Room) playTurn() error {
	shoot := protocol.EncodeShoot(r.Current.Board.MapString(), r.Next.Board.MapString())
	if err := r.ResponseSender.SendLine(shoot, r.Current.Conn); err != nil {
		return fmt.Errorf("player %s: %w", r.Current.Id, ErrPlayerLeft)
	}

	line, err := r.Current.Conn.ReadLine()
	if err != nil {
		return fmt.Errorf("player %s: %v: %w", r.Current.Id, err, ErrPlayerLeft)
	}

	resp, err := r.processShoot(line)
	if err != nil {
		_ = r.ResponseSender.SendLine(protocol.EncodeError("invalid target "+line), r.Current.Conn)
		return fmt.Errorf("player %s: %w", r.Current.Id, err)
	}

	if err := r.ResponseSender.SendResponse(resp, r.Current.Conn); err != nil {
		return fmt.Errorf("player %s: %w", r.Current.Id, ErrPlayerLeft)
	}
	return nil
}

func (r *Room) processShoot(line string) (protocol.Response, error) {
	target, err := protocol.DecodeAction(line)
	if err != nil {
		return protocol.Response{}, err
	}

	resp, err := r.Current.Shoot(target)
	if err != nil {
		return protocol.Response{}, err
	}
	r.logger.Debug("shot", "player", r.Current.Id, "target", target, "result", resp.Type)
	return resp, nil
}

// abort tells the opponent of failed that the game cannot go on.
func (r *Room) abort(failed *player.Player) {
	opponent := r.Next
	if failed == r.Next {
		opponent = r.Current
	}
	_ = r.ResponseSender.SendLine(protocol.EncodeError("opponent left the game"), opponent.Conn)
}

func (r *Room) switchPlayers() {
	p := r.Next
	r.Next = r.Current
	r.Current = p
}

func (r *Room) closeRoom() {
	for _, p := range r.players {
		_ = p.Conn.Close()
	}
}
