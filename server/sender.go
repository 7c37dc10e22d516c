package main

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/rallen090/BattleShip/pkg/protocol"
	"github.com/rallen090/BattleShip/server/player"
)

//go:generate mockery -name=ResponseSender -output=automock -outpkg=automock -case=underscore
type ResponseSender interface {
	SendResponse(response protocol.Response, conn player.Connection) error
	SendLine(line string, conn player.Connection) error
}

type Sender struct {
	logger *log.Logger
}

func NewSender(logger *log.Logger) *Sender {
	return &Sender{logger: logger}
}

// SendResponse encodes the outcome of a shot and sends it.
func (s *Sender) SendResponse(response protocol.Response, conn player.Connection) error {
	line, err := protocol.EncodeResponse(response)
	if err != nil {
		s.logger.Error("send response: encode", "err", err)
		return err
	}
	return s.SendLine(line, conn)
}

func (s *Sender) SendLine(line string, conn player.Connection) error {
	if err := conn.WriteLine(line); err != nil {
		s.logger.Error("send response: send message", "err", err)
		return fmt.Errorf("send %q: %w", line, err)
	}
	s.logger.Debug("sent", "message", line)
	return nil
}
