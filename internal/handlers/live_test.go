package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"connect-four-engine/internal/kafka"
	"connect-four-engine/internal/models"

	"github.com/gorilla/websocket"
)

// wsReply mirrors models.WSMessage with the payload kept raw so each
// test can decode it into the expected shape.
type wsReply struct {
	Type    models.MessageType `json:"type"`
	Payload json.RawMessage    `json:"payload"`
}

func dialTestSession(t *testing.T) (*websocket.Conn, func()) {
	t.Helper()

	handler := NewLiveHandler(kafka.NewAnalyticsService(nil, false))
	srv := httptest.NewServer(http.HandlerFunc(handler.HandleWebSocket))
	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http")

	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		srv.Close()
		t.Fatalf("failed to dial test server: %v", err)
	}

	return conn, func() {
		conn.Close()
		srv.Close()
	}
}

func TestLiveAnalyze(t *testing.T) {
	conn, cleanup := dialTestSession(t)
	defer cleanup()

	err := conn.WriteJSON(models.NewWSMessage(models.MsgAnalyze, models.AnalyzePayload{
		Position: "R0B0R1B1R2",
		Level:    5,
	}))
	if err != nil {
		t.Fatalf("failed to send analyze message: %v", err)
	}

	var reply wsReply
	if err := conn.ReadJSON(&reply); err != nil {
		t.Fatalf("failed to read reply: %v", err)
	}
	if reply.Type != models.MsgMove {
		t.Fatalf("reply type = %q, want %q", reply.Type, models.MsgMove)
	}

	var payload models.MovePayload
	if err := json.Unmarshal(reply.Payload, &payload); err != nil {
		t.Fatalf("failed to decode move payload: %v", err)
	}
	if payload.Column != 3 {
		t.Errorf("column = %d, want 3", payload.Column)
	}
	if payload.Position != "R0B0R1B1R2" {
		t.Errorf("position echo = %q, want original position", payload.Position)
	}
}

func TestLiveAnalyzeEngineError(t *testing.T) {
	conn, cleanup := dialTestSession(t)
	defer cleanup()

	err := conn.WriteJSON(models.NewWSMessage(models.MsgAnalyze, models.AnalyzePayload{
		Position: "R7",
		Level:    5,
	}))
	if err != nil {
		t.Fatalf("failed to send analyze message: %v", err)
	}

	var reply wsReply
	if err := conn.ReadJSON(&reply); err != nil {
		t.Fatalf("failed to read reply: %v", err)
	}
	if reply.Type != models.MsgError {
		t.Fatalf("reply type = %q, want %q", reply.Type, models.MsgError)
	}

	var payload models.ErrorPayload
	if err := json.Unmarshal(reply.Payload, &payload); err != nil {
		t.Fatalf("failed to decode error payload: %v", err)
	}
	if payload.Code != "INVALID_POSITION" {
		t.Errorf("error code = %q, want INVALID_POSITION", payload.Code)
	}
	if !strings.Contains(payload.Message, "position 1") {
		t.Errorf("error message %q does not point at the offending character", payload.Message)
	}

	// The session survives the engine error.
	if err := conn.WriteJSON(models.NewWSMessage(models.MsgHeartbeat, nil)); err != nil {
		t.Fatalf("failed to send heartbeat after error: %v", err)
	}
	if err := conn.ReadJSON(&reply); err != nil {
		t.Fatalf("session closed after engine error: %v", err)
	}
	if reply.Type != models.MsgHeartbeatAck {
		t.Fatalf("reply type = %q, want %q", reply.Type, models.MsgHeartbeatAck)
	}
}

func TestLiveUnknownMessageType(t *testing.T) {
	conn, cleanup := dialTestSession(t)
	defer cleanup()

	if err := conn.WriteJSON(models.NewWSMessage("teleport", nil)); err != nil {
		t.Fatalf("failed to send message: %v", err)
	}

	var reply wsReply
	if err := conn.ReadJSON(&reply); err != nil {
		t.Fatalf("failed to read reply: %v", err)
	}
	if reply.Type != models.MsgError {
		t.Fatalf("reply type = %q, want %q", reply.Type, models.MsgError)
	}
}
