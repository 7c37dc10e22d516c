package transport

import (
	"context"
	"errors"
)

// ErrClosed is returned by a channel that was closed locally or whose
// connection broke. The underlying failure, if any, is wrapped alongside it.
var ErrClosed = errors.New("channel closed")

var errNotConnected = errors.New("channel not connected")

// Channel carries newline-free text lines to and from a game server.
//
//go:generate mockery -name=Channel -output=automock -outpkg=automock -case=underscore
type Channel interface {
	// Connect establishes the connection and starts the read and write pumps.
	Connect(ctx context.Context) error
	// ReceiveLine blocks until the next non-blank line arrives, ctx is done or
	// the channel fails.
	ReceiveLine(ctx context.Context) (string, error)
	// SendLine queues line for sending. Lines are sent in the order queued.
	SendLine(line string) error
	Close() error
}

// lines implements the line operations of a Channel on top of a pump. It is
// embedded by the concrete channels, which only know how to dial.
type lines struct {
	p *pump
}

func (l *lines) ReceiveLine(ctx context.Context) (string, error) {
	if l.p == nil {
		return "", errNotConnected
	}
	return l.p.receive(ctx)
}

func (l *lines) SendLine(line string) error {
	if l.p == nil {
		return errNotConnected
	}
	return l.p.send(line)
}

func (l *lines) Close() error {
	if l.p == nil {
		return nil
	}
	return l.p.close()
}
