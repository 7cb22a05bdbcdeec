package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"time"

	"connect-four-engine/internal/engine"
	"connect-four-engine/internal/kafka"
	"connect-four-engine/internal/models"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// LiveHandler serves interactive analysis sessions over WebSocket.
type LiveHandler struct {
	analyticsService *kafka.AnalyticsService
	upgrader         websocket.Upgrader
}

func NewLiveHandler(analyticsService *kafka.AnalyticsService) *LiveHandler {
	return &LiveHandler{
		analyticsService: analyticsService,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true // TODO: Add proper origin checking for production
			},
		},
	}
}

func (h *LiveHandler) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WebSocket upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	sessionID := uuid.New().String()
	log.Printf("New analysis session %s from %s", sessionID, r.RemoteAddr)

	// Main message loop
	for {
		var msg models.WSMessage
		if err := conn.ReadJSON(&msg); err != nil {
			// Check if it's a normal close (not an actual error)
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure, websocket.CloseNormalClosure) {
				log.Printf("WebSocket unexpected close: %v", err)
			}
			// For normal closes (1001 going away, 1000 normal), just break silently
			break
		}

		switch msg.Type {
		case models.MsgAnalyze:
			h.handleAnalyze(conn, r, sessionID, msg.Payload)

		case models.MsgHeartbeat:
			h.handleHeartbeat(conn, sessionID)

		default:
			h.sendError(conn, "UNKNOWN_MESSAGE", "Unknown message type")
		}
	}

	log.Printf("Analysis session %s closed", sessionID)
}

func (h *LiveHandler) handleAnalyze(conn *websocket.Conn, r *http.Request, sessionID string, payload interface{}) {
	var analyzePayload models.AnalyzePayload
	if err := h.parsePayload(payload, &analyzePayload); err != nil {
		h.sendError(conn, "INVALID_PAYLOAD", "Invalid analyze payload")
		return
	}

	req := engine.MoveRequest{Position: analyzePayload.Position, Level: analyzePayload.Level}

	start := time.Now()
	resp, err := engine.BestMove(req)
	duration := time.Since(start)

	if err != nil {
		h.sendError(conn, errorCode(err), err.Error())

		if emitErr := h.analyticsService.EmitRequestRejected(
			analyzePayload.Position,
			strconv.Itoa(analyzePayload.Level),
			rejectionKind(err),
			err.Error(),
			kafka.Metadata{IPAddress: r.RemoteAddr, SessionID: sessionID},
		); emitErr != nil {
			log.Printf("Failed to emit request rejected event: %v", emitErr)
		}
		return
	}

	conn.WriteJSON(models.NewWSMessage(models.MsgMove, models.MovePayload{
		Column:     resp.Column,
		Position:   analyzePayload.Position,
		Level:      analyzePayload.Level,
		DurationMs: duration.Milliseconds(),
	}))

	if h.analyticsService.IsEnabled() {
		if emitErr := h.analyticsService.EmitMoveComputed(computationFor(req, resp.Column, duration), kafka.Metadata{
			IPAddress: r.RemoteAddr,
			SessionID: sessionID,
		}); emitErr != nil {
			log.Printf("Failed to emit move computed event: %v", emitErr)
		}
	}
}

func (h *LiveHandler) handleHeartbeat(conn *websocket.Conn, sessionID string) {
	// Send heartbeat acknowledgment
	conn.WriteJSON(models.NewWSMessage(models.MsgHeartbeatAck, models.HeartbeatAckPayload{
		ServerTime: time.Now(),
		SessionID:  sessionID,
	}))
}

func (h *LiveHandler) sendError(conn *websocket.Conn, code, message string) {
	conn.WriteJSON(models.NewWSMessage(models.MsgError, models.ErrorPayload{
		Code:    code,
		Message: message,
	}))
}

func (h *LiveHandler) parsePayload(payload interface{}, target interface{}) error {
	// Convert payload to JSON and back to parse into target struct
	jsonData, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	return json.Unmarshal(jsonData, target)
}

// errorCode maps engine errors to WebSocket error codes.
func errorCode(err error) string {
	switch rejectionKind(err) {
	case "parse":
		return "INVALID_POSITION"
	case "column_full":
		return "COLUMN_FULL"
	case "out_of_bounds":
		return "COLUMN_OUT_OF_BOUNDS"
	case "depth":
		return "INVALID_LEVEL"
	case "no_moves":
		return "NO_MOVES"
	default:
		return "ENGINE_ERROR"
	}
}
