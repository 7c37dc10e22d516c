package transport

import (
	"context"
	"fmt"
	"strings"
	"sync"
)

const (
	inboxSize  = 64
	outboxSize = 16
)

// pump moves lines between a connection and the channel users. Reading and
// writing run on their own goroutines so a pending write never holds back
// incoming lines, and the other way round.
type pump struct {
	in   chan string
	out  chan string
	done chan struct{}

	once      sync.Once
	err       error
	closeConn func() error

	wg sync.WaitGroup
}

// startPump starts the pumps. read returns the next chunk of text, which may
// hold several lines; write sends a single line. closeConn must unblock a
// pending read or write.
func startPump(read func() (string, error), write func(string) error, closeConn func() error) *pump {
	p := &pump{
		in:        make(chan string, inboxSize),
		out:       make(chan string, outboxSize),
		done:      make(chan struct{}),
		closeConn: closeConn,
	}
	p.wg.Add(2)
	go p.readLoop(read)
	go p.writeLoop(write)
	return p
}

func (p *pump) readLoop(read func() (string, error)) {
	defer p.wg.Done()
	for {
		chunk, err := read()
		for _, line := range strings.Split(chunk, "\n") {
			line = strings.TrimRight(line, "\r")
			if strings.TrimSpace(line) == "" {
				continue
			}
			select {
			case p.in <- line:
			case <-p.done:
				return
			}
		}
		if err != nil {
			p.fail(err)
			return
		}
	}
}

func (p *pump) writeLoop(write func(string) error) {
	defer p.wg.Done()
	for {
		select {
		case line := <-p.out:
			if err := write(line); err != nil {
				p.fail(err)
				return
			}
		case <-p.done:
			return
		}
	}
}

// fail records the first failure and tears the connection down.
func (p *pump) fail(err error) error {
	var closeErr error
	p.once.Do(func() {
		p.err = err
		close(p.done)
		closeErr = p.closeConn()
	})
	return closeErr
}

func (p *pump) failure() error {
	if p.err == ErrClosed {
		return ErrClosed
	}
	return fmt.Errorf("%w: %v", ErrClosed, p.err)
}

func (p *pump) receive(ctx context.Context) (string, error) {
	// lines read before a failure are still delivered
	select {
	case line := <-p.in:
		return line, nil
	default:
	}

	select {
	case line := <-p.in:
		return line, nil
	case <-p.done:
		select {
		case line := <-p.in:
			return line, nil
		default:
			return "", p.failure()
		}
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

func (p *pump) send(line string) error {
	select {
	case <-p.done:
		return p.failure()
	default:
	}

	select {
	case p.out <- line:
		return nil
	case <-p.done:
		return p.failure()
	}
}

func (p *pump) close() error {
	err := p.fail(ErrClosed)
	p.wg.Wait()
	return err
}
