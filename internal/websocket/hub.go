package websocket

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"pdxpulse/internal/infrastructure"
	"pdxpulse/pkg/contracts"
	"pdxpulse/pkg/contracts/events"
)

const broadcastQueueSize = 64

// Hub maintains the set of active clients and broadcasts messages to the clients
type Hub struct {
	// Registered clients
	clients map[*Client]bool

	// Outbound messages for every client
	broadcast chan []byte

	// Register requests from the clients
	register chan *Client

	// Unregister requests from clients
	unregister chan *Client

	mu      sync.RWMutex
	logger  *slog.Logger
	metrics *infrastructure.DashboardMetrics

	totalConnections int64
	messagesSent     int64
	dropped          int64

	quit     chan struct{}
	done     chan struct{}
	stopOnce sync.Once
	// started is never reset: a Hub runs at most once.
	started bool
}

// NewHub creates a new Hub. metrics may be nil.
func NewHub(logger *slog.Logger, metrics *infrastructure.DashboardMetrics) *Hub {
	if logger == nil {
		logger = infrastructure.GetLogger()
	}
	return &Hub{
		broadcast:  make(chan []byte, broadcastQueueSize),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		clients:    make(map[*Client]bool),
		logger:     logger.With(slog.String("component", "websocket.hub")),
		metrics:    metrics,
		quit:       make(chan struct{}),
		done:       make(chan struct{}),
	}
}

// Start runs the hub loop in its own goroutine.
func (h *Hub) Start() {
	go h.Run(context.Background())
}

// Run is the hub's main loop. It returns when ctx is done or Stop is called,
// closing every client's send channel on the way out. Calls after the first
// return immediately.
func (h *Hub) Run(ctx context.Context) {
	h.mu.Lock()
	if h.started {
		h.mu.Unlock()
		return
	}
	h.started = true
	h.mu.Unlock()

	defer close(h.done)
	defer h.closeAll()

	for {
		select {
		case <-ctx.Done():
			h.logger.Info("Hub shutting down", slog.String("reason", ctx.Err().Error()))
			return

		case <-h.quit:
			h.logger.Info("Hub shutting down")
			return

		case client := <-h.register:
			h.addClient(client)

		case client := <-h.unregister:
			h.removeClient(client)

		case message := <-h.broadcast:
			h.fanOut(message)
		}
	}
}

func (h *Hub) addClient(client *Client) {
	h.mu.Lock()
	h.clients[client] = true
	count := len(h.clients)
	h.totalConnections++
	h.mu.Unlock()

	ctx := client.context()
	h.logger.InfoContext(ctx, "Client registered",
		slog.Int("total_clients", count),
		slog.String("client_id", client.id),
		slog.String("remote_addr", client.remoteAddr))

	if h.metrics != nil {
		h.metrics.RecordClientChange(ctx, 1)
	}

	msg := events.NewMessage(events.MessageTypeConnect, events.ConnectionInfo{
		ClientID: client.id,
		Message:  "Connected to PDX Pulse",
		Version:  contracts.APIVersion,
	})
	msg.TraceID = client.traceID

	jsonData, err := json.Marshal(msg)
	if err != nil {
		h.logger.ErrorContext(ctx, "Error marshaling connection message", slog.String("error", err.Error()))
		return
	}
	select {
	case client.send <- jsonData:
	default:
		h.logger.WarnContext(ctx, "Failed to send connection message - client buffer full",
			slog.String("client_id", client.id))
	}
}

func (h *Hub) removeClient(client *Client) {
	h.mu.Lock()
	if _, ok := h.clients[client]; !ok {
		h.mu.Unlock()
		return
	}
	delete(h.clients, client)
	close(client.send)
	count := len(h.clients)
	h.mu.Unlock()

	ctx := client.context()
	h.logger.InfoContext(ctx, "Client unregistered",
		slog.Int("total_clients", count),
		slog.String("client_id", client.id),
		slog.Duration("connection_duration", time.Since(client.connectedAt)))

	if h.metrics != nil {
		h.metrics.RecordClientChange(ctx, -1)
	}
}

func (h *Hub) fanOut(message []byte) {
	h.mu.RLock()
	clients := make([]*Client, 0, len(h.clients))
	for client := range h.clients {
		clients = append(clients, client)
	}
	h.mu.RUnlock()

	failCount := 0
	for _, client := range clients {
		select {
		case client.send <- message:
			h.mu.Lock()
			h.messagesSent++
			h.mu.Unlock()
		default:
			// Slow consumer: drop it rather than stall every other client.
			failCount++
			h.logger.WarnContext(client.context(), "Client send buffer full, disconnecting",
				slog.String("client_id", client.id))
			h.removeClient(client)
		}
	}

	h.logger.Debug("Broadcast delivered",
		slog.Int("client_count", len(clients)),
		slog.Int("fail_count", failCount),
		slog.Int("payload_size", len(message)))
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for client := range h.clients {
		close(client.send)
		delete(h.clients, client)
	}
}

// Broadcast queues a typed message for every connected client. The trace id
// of ctx, if any, travels with the message.
func (h *Hub) Broadcast(ctx context.Context, messageType events.MessageType, data interface{}) {
	msg := events.NewMessage(messageType, data)
	msg.TraceID = infrastructure.GetTraceID(ctx)

	jsonData, err := json.Marshal(msg)
	if err != nil {
		h.logger.ErrorContext(ctx, "Error marshaling message",
			slog.String("error", err.Error()),
			slog.String("message_type", string(messageType)))
		return
	}

	select {
	case h.broadcast <- jsonData:
		if h.metrics != nil {
			h.metrics.RecordBroadcast(ctx, string(messageType))
		}
	case <-h.quit:
	default:
		h.mu.Lock()
		h.dropped++
		h.mu.Unlock()
		h.logger.WarnContext(ctx, "Broadcast queue full, message dropped",
			slog.String("message_type", string(messageType)))
	}
}

// ClientCount returns the number of connected clients
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Register adds a client to the hub
func (h *Hub) Register(client *Client) {
	select {
	case h.register <- client:
	case <-h.quit:
	}
}

// Unregister removes a client from the hub
func (h *Hub) Unregister(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

// Stop signals the hub loop to exit and waits for it if it was started.
func (h *Hub) Stop() {
	h.stopOnce.Do(func() { close(h.quit) })
	h.mu.RLock()
	started := h.started
	h.mu.RUnlock()
	if started {
		<-h.done
	}
}

// Stats returns counters for the health endpoint.
func (h *Hub) Stats() map[string]int64 {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return map[string]int64{
		"active_clients":    int64(len(h.clients)),
		"total_connections": h.totalConnections,
		"messages_sent":     h.messagesSent,
		"messages_dropped":  h.dropped,
	}
}
