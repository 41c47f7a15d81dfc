package websocket

import (
	"time"

	"github.com/gorilla/websocket"
)

// ConnectionWrapper adapts *websocket.Conn to Connection.
type ConnectionWrapper struct {
	conn *websocket.Conn
}

// NewConnectionWrapper creates a new connection wrapper
func NewConnectionWrapper(conn *websocket.Conn) Connection {
	return &ConnectionWrapper{conn: conn}
}

func (c *ConnectionWrapper) WriteMessage(messageType int, data []byte) error {
	return c.conn.WriteMessage(messageType, data)
}

func (c *ConnectionWrapper) ReadMessage() (int, []byte, error) {
	return c.conn.ReadMessage()
}

func (c *ConnectionWrapper) Close() error {
	return c.conn.Close()
}

func (c *ConnectionWrapper) SetReadDeadline(t time.Time) error {
	return c.conn.SetReadDeadline(t)
}

func (c *ConnectionWrapper) SetWriteDeadline(t time.Time) error {
	return c.conn.SetWriteDeadline(t)
}

func (c *ConnectionWrapper) SetReadLimit(limit int64) {
	c.conn.SetReadLimit(limit)
}

func (c *ConnectionWrapper) SetPongHandler(h func(string) error) {
	c.conn.SetPongHandler(h)
}

// RemoteAddr returns the remote network address
func (c *ConnectionWrapper) RemoteAddr() string {
	if addr := c.conn.RemoteAddr(); addr != nil {
		return addr.String()
	}
	return ""
}
