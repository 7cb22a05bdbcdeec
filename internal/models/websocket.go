package models

import (
	"time"

	"github.com/google/uuid"
)

type MessageType string

const (
	// Client messages
	MsgAnalyze   MessageType = "analyze"
	MsgHeartbeat MessageType = "heartbeat"

	// Server messages
	MsgMove         MessageType = "move"
	MsgError        MessageType = "error"
	MsgHeartbeatAck MessageType = "heartbeat_ack"
)

type WSMessage struct {
	Type      MessageType `json:"type"`
	Payload   interface{} `json:"payload,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
	MessageID string      `json:"message_id"`
}

// AnalyzePayload asks the engine for the best move after a history.
type AnalyzePayload struct {
	Position string `json:"position"`
	Level    int    `json:"level"`
}

// MovePayload answers an analyze request with the chosen column.
type MovePayload struct {
	Column     int    `json:"column"`
	Position   string `json:"position"`
	Level      int    `json:"level"`
	DurationMs int64  `json:"duration_ms"`
}

type ErrorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type HeartbeatAckPayload struct {
	ServerTime time.Time `json:"server_time"`
	SessionID  string    `json:"session_id"`
}

// Helper to create WebSocket messages
func NewWSMessage(msgType MessageType, payload interface{}) WSMessage {
	return WSMessage{
		Type:      msgType,
		Payload:   payload,
		Timestamp: time.Now(),
		MessageID: uuid.New().String(),
	}
}
