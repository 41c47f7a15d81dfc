package websocket

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pdxpulse/internal/config"
	"pdxpulse/internal/infrastructure"
	"pdxpulse/internal/shared/testutil"
	"pdxpulse/pkg/contracts/events"
)

func startHub(t *testing.T) *Hub {
	t.Helper()
	logger, _ := testutil.NewTestLogger(t)
	hub := NewHub(logger, nil)
	hub.Start()
	t.Cleanup(hub.Stop)
	return hub
}

func newTestClient(t *testing.T, hub *Hub) (*Client, *mockConnection) {
	t.Helper()
	logger, _ := testutil.NewTestLogger(t)
	conn := newMockConnection()
	return NewClientWithConnection(hub, conn, config.WebSocketConfig{}, "trace-1", logger), conn
}

func receive(t *testing.T, c *Client) events.WebSocketMessage {
	t.Helper()
	select {
	case raw, ok := <-c.send:
		require.True(t, ok, "send channel closed")
		var msg events.WebSocketMessage
		require.NoError(t, json.Unmarshal(raw, &msg))
		return msg
	case <-time.After(time.Second):
		t.Fatal("timeout waiting for message")
	}
	return events.WebSocketMessage{}
}

func TestHub_RegisterSendsConnectMessage(t *testing.T) {
	hub := startHub(t)
	client, _ := newTestClient(t, hub)

	hub.Register(client)

	msg := receive(t, client)
	assert.Equal(t, events.MessageTypeConnect, msg.Type)
	assert.Equal(t, "trace-1", msg.TraceID)
	data := msg.Data.(map[string]interface{})
	assert.Equal(t, client.ID(), data["client_id"])
	assert.Equal(t, 1, hub.ClientCount())
}

func TestHub_BroadcastReachesEveryClient(t *testing.T) {
	hub := startHub(t)
	clients := make([]*Client, 3)
	for i := range clients {
		clients[i], _ = newTestClient(t, hub)
		hub.Register(clients[i])
		receive(t, clients[i])
	}

	ctx := infrastructure.WithTraceID(context.Background(), "req-42")
	hub.Broadcast(ctx, events.MessageTypeDashboardSnapshot, events.DashboardSnapshot{Version: 7, Event: "filter_selected"})

	for _, c := range clients {
		msg := receive(t, c)
		assert.Equal(t, events.MessageTypeDashboardSnapshot, msg.Type)
		assert.Equal(t, "req-42", msg.TraceID)
		assert.EqualValues(t, 7, msg.Data.(map[string]interface{})["version"])
	}
	assert.EqualValues(t, 3, hub.Stats()["messages_sent"])
}

func TestHub_UnregisterClosesSendChannel(t *testing.T) {
	hub := startHub(t)
	client, _ := newTestClient(t, hub)
	hub.Register(client)
	receive(t, client)

	hub.Unregister(client)

	require.Eventually(t, func() bool { return hub.ClientCount() == 0 }, time.Second, 5*time.Millisecond)
	_, ok := <-client.send
	assert.False(t, ok)

	// a second unregister is a no-op
	hub.Unregister(client)
}

func TestHub_SlowClientIsDisconnected(t *testing.T) {
	hub := startHub(t)
	slow, _ := newTestClient(t, hub)
	hub.Register(slow)
	require.Eventually(t, func() bool { return hub.ClientCount() == 1 }, time.Second, 5*time.Millisecond)

	// the connect message already sits in the buffer; fill the rest
	for len(slow.send) < cap(slow.send) {
		slow.send <- []byte("{}")
	}
	hub.Broadcast(context.Background(), events.MessageTypeDatasetReset, nil)

	require.Eventually(t, func() bool { return hub.ClientCount() == 0 }, time.Second, 5*time.Millisecond)
}

func TestHub_StopClosesClients(t *testing.T) {
	logger, _ := testutil.NewTestLogger(t)
	hub := NewHub(logger, nil)
	hub.Start()
	client, _ := newTestClient(t, hub)
	hub.Register(client)
	receive(t, client)

	hub.Stop()
	hub.Stop()

	_, ok := <-client.send
	assert.False(t, ok)
	assert.Equal(t, 0, hub.ClientCount())

	// broadcasting after stop neither blocks nor panics
	hub.Broadcast(context.Background(), events.MessageTypeDatasetReset, nil)
}

func TestHub_RunStopsWithContext(t *testing.T) {
	logger, _ := testutil.NewTestLogger(t)
	hub := NewHub(logger, nil)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		hub.Run(ctx)
		close(done)
	}()
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("hub did not stop")
	}
}

func TestHub_RunAfterReturnIsNoop(t *testing.T) {
	logger, _ := testutil.NewTestLogger(t)
	hub := NewHub(logger, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	hub.Run(ctx)

	done := make(chan struct{})
	go func() {
		assert.NotPanics(t, func() { hub.Run(context.Background()) })
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("second Run did not return")
	}
	hub.Stop()
}
