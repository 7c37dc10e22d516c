package transport

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net"
)

// maxLineSize fits the grid announcement of very large grids.
const maxLineSize = 1 << 20

// TCPChannel speaks the line protocol over a plain TCP connection, one line
// per newline-terminated record.
type TCPChannel struct {
	lines
	addr   string
	dialer net.Dialer
}

func NewTCPChannel(addr string) *TCPChannel {
	return &TCPChannel{addr: addr}
}

func (c *TCPChannel) Connect(ctx context.Context) error {
	conn, err := c.dialer.DialContext(ctx, "tcp", c.addr)
	if err != nil {
		return fmt.Errorf("dial %s: %w", c.addr, err)
	}

	scanner := bufio.NewScanner(conn)
	scanner.Buffer(make([]byte, 0, 4096), maxLineSize)
	read := func() (string, error) {
		if scanner.Scan() {
			return scanner.Text(), nil
		}
		if err := scanner.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	write := func(line string) error {
		_, err := io.WriteString(conn, line+"\n")
		return err
	}

	c.p = startPump(read, write, conn.Close)
	return nil
}
