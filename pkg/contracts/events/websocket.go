// Package events contains the message contracts pushed to dashboard clients
// over the websocket connection.
package events

import (
	"time"
)

// MessageType defines the type of WebSocket message
type MessageType string

const (
	// Full dashboard state after any change
	MessageTypeDashboardSnapshot MessageType = "dashboard:snapshot"

	// Dataset lifecycle
	MessageTypeDatasetLoaded MessageType = "dataset:loaded"
	MessageTypeDatasetReset  MessageType = "dataset:reset"

	// Connection messages
	MessageTypeConnect    MessageType = "connect"
	MessageTypeDisconnect MessageType = "disconnect"
	MessageTypeError      MessageType = "error"
)

// BaseMessage represents the base structure for all WebSocket messages
type BaseMessage struct {
	ID        string      `json:"id,omitempty"`
	Type      MessageType `json:"type"`
	Timestamp time.Time   `json:"timestamp"`
	TraceID   string      `json:"trace_id,omitempty"`
}

// WebSocketMessage represents a complete WebSocket message
type WebSocketMessage struct {
	BaseMessage
	Data interface{} `json:"data,omitempty"`
}

// DashboardSnapshot is sent on every applied state change. Clients refetch
// the summary when Version moves past the one they rendered.
type DashboardSnapshot struct {
	Version   uint64            `json:"version"`
	Event     string            `json:"event"`
	DatasetID string            `json:"dataset_id,omitempty"`
	FileName  string            `json:"file_name,omitempty"`
	Rows      int               `json:"rows"`
	Filters   map[string]string `json:"filters"`
	Location  LocationSelection `json:"location"`
}

// LocationSelection mirrors the location filter on the wire.
type LocationSelection struct {
	States        []string `json:"states,omitempty"`
	Cities        []string `json:"cities,omitempty"`
	Neighborhoods []string `json:"neighborhoods,omitempty"`
}

// ConnectionInfo is the payload of the connect message.
type ConnectionInfo struct {
	ClientID string `json:"client_id"`
	Message  string `json:"message"`
	Version  string `json:"version"`
}

// ErrorPayload represents an error pushed to clients
type ErrorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Retry   bool   `json:"retry"`
}

// NewMessage wraps data in a timestamped message envelope.
func NewMessage(messageType MessageType, data interface{}) WebSocketMessage {
	return WebSocketMessage{
		BaseMessage: BaseMessage{
			Type:      messageType,
			Timestamp: time.Now().UTC(),
		},
		Data: data,
	}
}
