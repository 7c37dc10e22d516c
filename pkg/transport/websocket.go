package transport

import (
	"context"
	"fmt"
	"time"

	"github.com/gorilla/websocket"
)

const closeTimeout = time.Second

// WebsocketChannel speaks the line protocol over a websocket, one text frame
// per line.
type WebsocketChannel struct {
	lines
	url    string
	dialer *websocket.Dialer
}

func NewWebsocketChannel(url string) *WebsocketChannel {
	return &WebsocketChannel{
		url:    url,
		dialer: websocket.DefaultDialer,
	}
}

func (c *WebsocketChannel) Connect(ctx context.Context) error {
	conn, _, err := c.dialer.DialContext(ctx, c.url, nil)
	if err != nil {
		return fmt.Errorf("dial %s: %w", c.url, err)
	}

	read := func() (string, error) {
		_, data, err := conn.ReadMessage()
		return string(data), err
	}
	write := func(line string) error {
		return conn.WriteMessage(websocket.TextMessage, []byte(line))
	}
	closeConn := func() error {
		_ = conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
			time.Now().Add(closeTimeout))
		return conn.Close()
	}

	c.p = startPump(read, write, closeConn)
	return nil
}
