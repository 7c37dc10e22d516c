package player

import (
	"strings"

	"github.com/gorilla/websocket"
)

type WebsocketConnection struct {
	conn *websocket.Conn
}

func NewWebsocketConnection(conn *websocket.Conn) *WebsocketConnection {
	return &WebsocketConnection{conn: conn}
}

func (c *WebsocketConnection) ReadLine() (string, error) {
	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			return "", err
		}
		if line := strings.TrimSpace(string(data)); line != "" {
			return line, nil
		}
	}
}

func (c *WebsocketConnection) WriteLine(line string) error {
	return c.conn.WriteMessage(websocket.TextMessage, []byte(line))
}

func (c *WebsocketConnection) Close() error {
	return c.conn.Close()
}
