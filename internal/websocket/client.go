package websocket

import (
	"bytes"
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"pdxpulse/internal/config"
	"pdxpulse/internal/infrastructure"
)

const (
	// Maximum message size allowed from peer
	maxMessageSize = 512

	sendBufferSize = 256
)

var (
	newline = []byte{'\n'}
	space   = []byte{' '}

	heartbeat = []byte(`{"type":"heartbeat"}`)
)

// Client is a middleman between the websocket connection and the hub
type Client struct {
	hub  *Hub
	conn Connection

	// Buffered channel of outbound messages
	send chan []byte

	cfg config.WebSocketConfig

	id          string
	traceID     string
	remoteAddr  string
	connectedAt time.Time

	logger *slog.Logger

	messagesSent     int64
	messagesReceived int64
	bytesSent        int64
	bytesReceived    int64
}

// NewClient wraps a gorilla connection.
func NewClient(hub *Hub, conn *websocket.Conn, cfg config.WebSocketConfig, traceID string, logger *slog.Logger) *Client {
	return NewClientWithConnection(hub, NewConnectionWrapper(conn), cfg, traceID, logger)
}

// NewClientWithConnection creates a Client over any Connection.
func NewClientWithConnection(hub *Hub, conn Connection, cfg config.WebSocketConfig, traceID string, logger *slog.Logger) *Client {
	if logger == nil {
		logger = infrastructure.GetLogger()
	}

	id := uuid.New().String()
	logger = logger.With(
		slog.String("component", "websocket.client"),
		slog.String("client_id", id),
	)
	if traceID != "" {
		logger = logger.With(slog.String("trace_id", traceID))
	}

	return &Client{
		hub:         hub,
		conn:        conn,
		send:        make(chan []byte, sendBufferSize),
		cfg:         withTimingDefaults(cfg),
		id:          id,
		traceID:     traceID,
		remoteAddr:  conn.RemoteAddr(),
		connectedAt: time.Now(),
		logger:      logger,
	}
}

// ID returns the client identifier sent in the connect message.
func (c *Client) ID() string { return c.id }

func (c *Client) context() context.Context {
	ctx := context.Background()
	if c.traceID != "" {
		ctx = infrastructure.WithTraceID(ctx, c.traceID)
	}
	return ctx
}

// ReadPump pumps messages from the websocket connection to the hub. Clients
// only send heartbeats; anything else is logged and ignored.
func (c *Client) ReadPump() {
	defer func() {
		c.logger.InfoContext(c.context(), "WebSocket client disconnected",
			slog.Duration("connection_duration", time.Since(c.connectedAt)),
			slog.Int64("messages_received", c.messagesReceived),
			slog.Int64("bytes_received", c.bytesReceived))
		c.hub.Unregister(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(c.cfg.PongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(c.cfg.PongWait))
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.logger.ErrorContext(c.context(), "Unexpected WebSocket close error",
					slog.String("error", err.Error()))
			}
			return
		}
		message = bytes.TrimSpace(bytes.Replace(message, newline, space, -1))

		c.messagesReceived++
		c.bytesReceived += int64(len(message))

		if bytes.Equal(message, heartbeat) {
			c.conn.SetReadDeadline(time.Now().Add(c.cfg.PongWait))
			continue
		}
		c.logger.Debug("Ignoring client message", slog.Int("size", len(message)))
	}
}

// WritePump pumps messages from the hub to the websocket connection
func (c *Client) WritePump() {
	ticker := time.NewTicker(c.cfg.PingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
		c.logger.InfoContext(c.context(), "WebSocket write pump stopped",
			slog.Int64("messages_sent", c.messagesSent),
			slog.Int64("bytes_sent", c.bytesSent))
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(c.cfg.WriteWait))
			if !ok {
				// The hub closed the channel
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if !c.write(message) {
				return
			}

			// Drain queued messages, one frame each.
			n := len(c.send)
			for i := 0; i < n; i++ {
				msg, ok := <-c.send
				if !ok {
					c.conn.WriteMessage(websocket.CloseMessage, []byte{})
					return
				}
				c.conn.SetWriteDeadline(time.Now().Add(c.cfg.WriteWait))
				if !c.write(msg) {
					return
				}
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(c.cfg.WriteWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				c.logger.DebugContext(c.context(), "Failed to send ping message",
					slog.String("error", err.Error()))
				return
			}
		}
	}
}

func (c *Client) write(message []byte) bool {
	if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
		c.logger.ErrorContext(c.context(), "Error writing message to WebSocket",
			slog.String("error", err.Error()))
		return false
	}
	c.messagesSent++
	c.bytesSent += int64(len(message))
	return true
}

func withTimingDefaults(cfg config.WebSocketConfig) config.WebSocketConfig {
	if cfg.PongWait <= 0 {
		cfg.PongWait = config.WebSocketPongWait
	}
	if cfg.PingPeriod <= 0 || cfg.PingPeriod >= cfg.PongWait {
		cfg.PingPeriod = (cfg.PongWait * 9) / 10
	}
	if cfg.WriteWait <= 0 {
		cfg.WriteWait = config.WebSocketWriteWait
	}
	return cfg
}
