package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"connect-four-engine/internal/engine"
	"connect-four-engine/internal/kafka"
)

// MoveHandler serves best-move computations over HTTP.
type MoveHandler struct {
	analyticsService *kafka.AnalyticsService
}

func NewMoveHandler(analyticsService *kafka.AnalyticsService) *MoveHandler {
	return &MoveHandler{
		analyticsService: analyticsService,
	}
}

// GetMove handles GET /api/move?position=R3B2&level=8. Engine errors
// come back as 400 with the error message as the body.
func (h *MoveHandler) GetMove(w http.ResponseWriter, r *http.Request) {
	position := r.URL.Query().Get("position")
	levelParam := r.URL.Query().Get("level")

	level, err := strconv.Atoi(levelParam)
	if err != nil {
		h.rejectRequest(w, r, position, levelParam, "level", "level must be an integer")
		return
	}

	req := engine.MoveRequest{Position: position, Level: level}

	start := time.Now()
	resp, err := engine.BestMove(req)
	duration := time.Since(start)

	if err != nil {
		h.rejectRequest(w, r, position, levelParam, rejectionKind(err), err.Error())
		return
	}

	h.emitMoveComputed(r, req, resp.Column, duration)

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		log.Printf("Failed to encode move response: %v", err)
	}
}

// rejectRequest reports the rejection to analytics and answers 400.
func (h *MoveHandler) rejectRequest(w http.ResponseWriter, r *http.Request, position, level, kind, message string) {
	if err := h.analyticsService.EmitRequestRejected(position, level, kind, message, kafka.Metadata{
		IPAddress: r.RemoteAddr,
	}); err != nil {
		log.Printf("Failed to emit request rejected event: %v", err)
	}

	http.Error(w, message, http.StatusBadRequest)
}

func (h *MoveHandler) emitMoveComputed(r *http.Request, req engine.MoveRequest, column int, duration time.Duration) {
	if !h.analyticsService.IsEnabled() {
		return
	}

	if err := h.analyticsService.EmitMoveComputed(computationFor(req, column, duration), kafka.Metadata{
		IPAddress: r.RemoteAddr,
	}); err != nil {
		log.Printf("Failed to emit move computed event: %v", err)
	}
}

// computationFor replays the position to enrich the event with the
// side to move and whether the chosen column wins on the spot.
func computationFor(req engine.MoveRequest, column int, duration time.Duration) kafka.MoveComputation {
	comp := kafka.MoveComputation{
		Position: req.Position,
		Level:    req.Level,
		Column:   column,
		Duration: duration,
	}

	// BestMove already validated the position, the replay cannot fail.
	if moves, err := engine.ParseHistory(req.Position); err == nil {
		if state, err := engine.Replay(moves); err == nil {
			comp.SideToMove = state.ToMove().String()
			comp.MovesPlayed = state.MovesPlayed()
			if outcome, err := state.Play(column); err == nil {
				comp.WinningMove = outcome.Won
			}
		}
	}

	return comp
}

// rejectionKind classifies engine errors for analytics.
func rejectionKind(err error) string {
	var parseErr *engine.ParseMoveError
	var fullErr *engine.ColumnFullError
	var boundsErr *engine.ColumnOutOfBoundsError
	var depthErr *engine.DepthError

	switch {
	case errors.As(err, &parseErr):
		return "parse"
	case errors.As(err, &fullErr):
		return "column_full"
	case errors.As(err, &boundsErr):
		return "out_of_bounds"
	case errors.As(err, &depthErr):
		return "depth"
	case errors.Is(err, engine.ErrNoMoves):
		return "no_moves"
	default:
		return "unknown"
	}
}
