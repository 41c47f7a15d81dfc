package websocket

import (
	"errors"
	"sync"
	"time"
)

type mockMessage struct {
	Type int
	Data []byte
}

// mockConnection records writes and serves reads from a channel until closed.
type mockConnection struct {
	mu       sync.Mutex
	written  []mockMessage
	incoming chan []byte
	closed   bool
	limit    int64
	deadline time.Time
	pong     func(string) error
}

func newMockConnection() *mockConnection {
	return &mockConnection{incoming: make(chan []byte, 8)}
}

func (m *mockConnection) WriteMessage(messageType int, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return errors.New("connection closed")
	}
	m.written = append(m.written, mockMessage{Type: messageType, Data: data})
	return nil
}

func (m *mockConnection) ReadMessage() (int, []byte, error) {
	data, ok := <-m.incoming
	if !ok {
		return 0, nil, errors.New("connection closed")
	}
	return 1, data, nil
}

func (m *mockConnection) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.closed {
		m.closed = true
		close(m.incoming)
	}
	return nil
}

func (m *mockConnection) SetReadDeadline(t time.Time) error {
	m.mu.Lock()
	m.deadline = t
	m.mu.Unlock()
	return nil
}

func (m *mockConnection) SetWriteDeadline(time.Time) error { return nil }

func (m *mockConnection) SetReadLimit(limit int64) {
	m.mu.Lock()
	m.limit = limit
	m.mu.Unlock()
}

func (m *mockConnection) SetPongHandler(h func(string) error) {
	m.mu.Lock()
	m.pong = h
	m.mu.Unlock()
}

func (m *mockConnection) RemoteAddr() string { return "127.0.0.1:9999" }

func (m *mockConnection) messages() []mockMessage {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]mockMessage, len(m.written))
	copy(out, m.written)
	return out
}

func (m *mockConnection) isClosed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}
