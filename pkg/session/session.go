package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/rallen090/BattleShip/pkg/commander"
	"github.com/rallen090/BattleShip/pkg/game"
	"github.com/rallen090/BattleShip/pkg/protocol"
	"github.com/rallen090/BattleShip/pkg/transport"
)

// ErrProtocol is returned when the server breaks the turn order, e.g. reports
// the result of a shot that was never fired.
var ErrProtocol = errors.New("protocol violation")

type State int

const (
	Connecting State = iota + 1
	AwaitingGridSize
	Playing
	Won
	Lost
	Terminated
)

func (s State) String() string {
	switch s {
	case Connecting:
		return "connecting"
	case AwaitingGridSize:
		return "awaiting grid size"
	case Playing:
		return "playing"
	case Won:
		return "won"
	case Lost:
		return "lost"
	case Terminated:
		return "terminated"
	default:
		return "unknown"
	}
}

func (s State) final() bool {
	return s == Won || s == Lost || s == Terminated
}

// Result summarizes a finished session.
type Result struct {
	SessionID string
	State     State
	Shots     int
	Hits      int
	Misses    int
	Victory   bool
	// Reason holds the raw message that ended the session early, or the error.
	Reason string
}

// Session plays a single game against a server over channel. It owns the grid,
// the ships and the commander; none of them may be shared with another session.
type Session struct {
	id        string
	channel   transport.Channel
	commander commander.Commander
	logger    *log.Logger

	state State
	grid  *game.Grid
	ships []*game.Ship
	// target is the location of the shot awaiting its result, -1 if none.
	target int

	shots, hits, misses int
	reason              string
}

func New(channel transport.Channel, c commander.Commander, logger *log.Logger) *Session {
	id := uuid.NewString()
	return &Session{
		id:        id,
		channel:   channel,
		commander: c,
		logger:    logger.With("session", id),
		state:     Connecting,
		target:    -1,
	}
}

func (s *Session) ID() string {
	return s.id
}

func (s *Session) State() State {
	return s.state
}

// Grid returns the session's view of the opponent's board. It is nil until the
// grid size was announced.
func (s *Session) Grid() *game.Grid {
	return s.grid
}

func (s *Session) Ships() []*game.Ship {
	return s.ships
}

// Play connects and plays until the game is decided, the server ends it or the
// channel fails. Messages the server is not expected to send end the session
// without an error; malformed messages, turn order violations and channel
// failures are returned as errors. The channel is always closed on return.
func (s *Session) Play(ctx context.Context) (Result, error) {
	defer s.channel.Close()

	if err := s.channel.Connect(ctx); err != nil {
		return s.terminate(fmt.Errorf("connect: %w", err))
	}
	s.state = AwaitingGridSize
	s.logger.Debug("connected")

	for !s.state.final() {
		line, err := s.channel.ReceiveLine(ctx)
		if err != nil {
			return s.terminate(fmt.Errorf("receive: %w", err))
		}
		s.logger.Debug("received", "message", line)

		resp, err := protocol.DecodeResponse(line)
		if err != nil {
			return s.terminate(err)
		}
		if err := s.handle(resp); err != nil {
			return s.terminate(err)
		}
	}

	s.logger.Info("session finished", "state", s.state, "shots", s.shots, "hits", s.hits, "misses", s.misses)
	return s.result(), nil
}

func (s *Session) handle(resp protocol.Response) error {
	if s.state == AwaitingGridSize {
		if resp.Type != protocol.Ok {
			s.logger.Debug("waiting for grid size, message discarded", "type", resp.Type)
			return nil
		}
		return s.start(resp.GridSize)
	}

	switch resp.Type {
	case protocol.Ok:
		s.logger.Warn("grid size announced twice, ignored")
	case protocol.Shoot:
		return s.shoot()
	case protocol.Hit:
		return s.record(game.Hit)
	case protocol.Sunk:
		ship := game.FindShip(s.ships, resp.Value)
		if ship == nil {
			return fmt.Errorf("sunk ship %d is not in the fleet: %w", resp.Value, ErrProtocol)
		}
		if err := s.record(game.Hit); err != nil {
			return err
		}
		ship.Sunk = true
		s.logger.Debug("ship sunk", "ship", ship.Name)
	case protocol.Miss:
		return s.record(game.Miss)
	case protocol.Win:
		// the final shot is answered with WIN instead of HIT
		if s.target >= 0 {
			if err := s.record(game.Hit); err != nil {
				return err
			}
		}
		s.state = Won
	case protocol.Lose:
		s.state = Lost
	default:
		s.reason = resp.FullMessage
		s.state = Terminated
		s.logger.Warn("session ended by server", "message", resp.FullMessage)
	}
	return nil
}

func (s *Session) start(n int) error {
	grid, err := game.NewGrid(n)
	if err != nil {
		return err
	}
	s.grid = grid
	s.ships = game.DefaultFleet()
	s.state = Playing
	s.logger.Info("game started", "grid", n)
	return nil
}

func (s *Session) shoot() error {
	if s.target >= 0 {
		return fmt.Errorf("asked to shoot before the result of %d: %w", s.target, ErrProtocol)
	}

	target, err := s.commander.NextTarget(s.grid, s.ships)
	if err != nil {
		return err
	}
	s.target = target
	s.shots++

	if err := s.channel.SendLine(protocol.EncodeAction(target)); err != nil {
		return fmt.Errorf("send: %w", err)
	}
	s.logger.Debug("shot fired", "target", target)
	return nil
}

// record applies the result of the outstanding shot.
func (s *Session) record(state game.CellState) error {
	if s.target < 0 {
		return fmt.Errorf("%s without a shot fired: %w", state, ErrProtocol)
	}
	if err := s.grid.Mark(s.target, state); err != nil {
		return err
	}
	s.target = -1

	if state == game.Hit {
		s.hits++
	} else {
		s.misses++
	}
	return nil
}

func (s *Session) terminate(err error) (Result, error) {
	s.state = Terminated
	s.reason = err.Error()
	s.logger.Error("session terminated", "err", err)
	return s.result(), err
}

func (s *Session) result() Result {
	return Result{
		SessionID: s.id,
		State:     s.state,
		Shots:     s.shots,
		Hits:      s.hits,
		Misses:    s.misses,
		Victory:   s.state == Won,
		Reason:    s.reason,
	}
}
