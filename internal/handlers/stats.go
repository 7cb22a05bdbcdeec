package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"connect-four-engine/internal/database"
)

const (
	defaultRecentLimit = 20
	maxRecentLimit     = 100
)

// StatsHandler serves the computation log aggregates. The database is
// optional, so both endpoints answer 503 when it is not attached.
type StatsHandler struct {
	db *database.PostgresDB
}

func NewStatsHandler(db *database.PostgresDB) *StatsHandler {
	return &StatsHandler{
		db: db,
	}
}

func (h *StatsHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	if h.db == nil {
		http.Error(w, "Statistics are not available without a database", http.StatusServiceUnavailable)
		return
	}

	stats, err := h.db.GetStats()
	if err != nil {
		http.Error(w, "Failed to fetch statistics", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(stats)
}

func (h *StatsHandler) GetRecentComputations(w http.ResponseWriter, r *http.Request) {
	if h.db == nil {
		http.Error(w, "Statistics are not available without a database", http.StatusServiceUnavailable)
		return
	}

	limit := defaultRecentLimit
	if limitParam := r.URL.Query().Get("limit"); limitParam != "" {
		parsed, err := strconv.Atoi(limitParam)
		if err != nil || parsed < 1 {
			http.Error(w, "limit must be a positive integer", http.StatusBadRequest)
			return
		}
		limit = parsed
	}
	if limit > maxRecentLimit {
		limit = maxRecentLimit
	}

	records, err := h.db.RecentComputations(limit)
	if err != nil {
		http.Error(w, "Failed to fetch recent computations", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(records)
}
