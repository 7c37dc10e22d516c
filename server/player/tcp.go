package player

import (
	"bufio"
	"io"
	"net"
	"strings"
)

type TCPConnection struct {
	conn    net.Conn
	scanner *bufio.Scanner
}

func NewTCPConnection(conn net.Conn) *TCPConnection {
	return &TCPConnection{
		conn:    conn,
		scanner: bufio.NewScanner(conn),
	}
}

func (c *TCPConnection) ReadLine() (string, error) {
	for c.scanner.Scan() {
		if line := strings.TrimSpace(c.scanner.Text()); line != "" {
			return line, nil
		}
	}
	if err := c.scanner.Err(); err != nil {
		return "", err
	}
	return "", io.EOF
}

func (c *TCPConnection) WriteLine(line string) error {
	_, err := io.WriteString(c.conn, line+"\n")
	return err
}

func (c *TCPConnection) Close() error {
	return c.conn.Close()
}
