package main

import (
	"context"
	"errors"
	"math/rand"
	"net"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rallen090/BattleShip/pkg/game"
	"github.com/rallen090/BattleShip/server/board"
	"github.com/rallen090/BattleShip/server/player"
)

type Config struct {
	GridSize int
	// Seed of the fleet placement, 0 for a time based one.
	Seed int64
}

// Server pairs connecting players two by two. A single goroutine, run, owns
// the waiting player and the room registry.
type Server struct {
	waiting  *player.Player
	rooms    map[string]*Room
	register chan player.Connection
	finished chan string
	done     chan struct{}

	gridSize int
	rng      *rand.Rand
	sender   ResponseSender
	logger   *log.Logger
}

func NewServer(cfg Config, sender ResponseSender, logger *log.Logger) *Server {
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Server{
		rooms:    make(map[string]*Room),
		register: make(chan player.Connection),
		finished: make(chan string),
		done:     make(chan struct{}),
		gridSize: cfg.GridSize,
		rng:      rand.New(rand.NewSource(seed)),
		sender:   sender,
		logger:   logger,
	}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

func ServeWs(s *Server, w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("websocket upgrade", "err", err)
		return
	}
	s.logger.Debug("connection has arrived", "remote", conn.RemoteAddr(), "transport", "ws")
	s.Register(player.NewWebsocketConnection(conn))
}

// ServeTCP accepts players on ln until it is closed.
func (s *Server) ServeTCP(ln net.Listener) error {
	for {
		conn, err := ln.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				return nil
			}
			return err
		}
		s.logger.Debug("connection has arrived", "remote", conn.RemoteAddr(), "transport", "tcp")
		s.Register(player.NewTCPConnection(conn))
	}
}

// Register hands a new connection over to run.
func (s *Server) Register(conn player.Connection) {
	select {
	case s.register <- conn:
	case <-s.done:
		_ = conn.Close()
	}
}

func (s *Server) Run(ctx context.Context) {
	defer close(s.done)
	for {
		select {
		case conn := <-s.register:
			if room := s.registerPlayer(conn); room != nil {
				go s.runRoom(room)
			}
		case id := <-s.finished:
			s.deleteRoom(id)
			s.logger.Debug("room finished", "room", id, "open", s.listRooms())
		case <-ctx.Done():
			s.shutdown()
			return
		}
	}
}

// registerPlayer sets up a player with a freshly placed fleet to shoot at. It
// returns a room once two players are waiting.
func (s *Server) registerPlayer(conn player.Connection) *Room {
	b, err := board.NewRandomBoard(s.gridSize, game.DefaultFleet(), s.rng)
	if err != nil {
		s.logger.Error("fleet placement", "err", err)
		_ = conn.Close()
		return nil
	}

	pl := &player.Player{
		Conn:  conn,
		Board: b,
		Id:    uuid.NewString(),
	}
	s.logger.Info("register", "player", pl.Id)

	if s.waiting == nil {
		s.waiting = pl
		return nil
	}
	return s.createRoom(pl)
}

func (s *Server) createRoom(second *player.Player) *Room {
	roomID := uuid.NewString()
	room := CreateRoom(roomID, s.waiting, second, s.gridSize, s.sender, s.logger)
	s.rooms[roomID] = room
	s.waiting = nil
	return room
}

func (s *Server) runRoom(r *Room) {
	r.logger.Info("start room", "first", r.Current.Id, "second", r.Next.Id)
	if err := r.Play(); err != nil {
		r.logger.Warn("room aborted", "err", err)
	}
	r.closeRoom()

	select {
	case s.finished <- r.Id:
	case <-s.done:
	}
}

func (s *Server) deleteRoom(id string) {
	delete(s.rooms, id)
}

func (s *Server) listRooms() map[string]int {
	roomsInfo := make(map[string]int, len(s.rooms))
	for _, r := range s.rooms {
		name, playersCount := r.GetRoomInfo()
		roomsInfo[name] = playersCount
	}
	return roomsInfo
}

func (s *Server) shutdown() {
	if s.waiting != nil {
		_ = s.waiting.Conn.Close()
		s.waiting = nil
	}
	for id, r := range s.rooms {
		r.closeRoom()
		s.deleteRoom(id)
	}
}
