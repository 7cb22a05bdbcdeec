package main

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"connect-four-engine/internal/kafka"

	"github.com/gorilla/mux"
)

// MetricsServer provides the HTTP API over the consumer's aggregated
// engine metrics
type MetricsServer struct {
	consumer  *kafka.Consumer
	processor *kafka.EventProcessor
	server    *http.Server
	router    *mux.Router
}

// MetricsResponse represents the structure of metrics API responses
type MetricsResponse struct {
	Status    string      `json:"status"`
	Timestamp time.Time   `json:"timestamp"`
	Data      interface{} `json:"data"`
	Error     string      `json:"error,omitempty"`
}

// NewMetricsServer creates a new metrics API server
func NewMetricsServer(consumer *kafka.Consumer, processor *kafka.EventProcessor, addr string) *MetricsServer {
	router := mux.NewRouter()

	server := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ms := &MetricsServer{
		consumer:  consumer,
		processor: processor,
		server:    server,
		router:    router,
	}

	ms.setupRoutes()
	return ms
}

// Start starts the metrics server
func (ms *MetricsServer) Start() error {
	log.Printf("Starting metrics API server on %s", ms.server.Addr)
	err := ms.server.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

// Stop stops the metrics server
func (ms *MetricsServer) Stop() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return ms.server.Shutdown(ctx)
}

// setupRoutes configures all API routes
func (ms *MetricsServer) setupRoutes() {
	ms.router.Use(ms.corsMiddleware)
	ms.router.Use(ms.loggingMiddleware)

	ms.router.HandleFunc("/health", ms.handleHealth).Methods("GET")

	// Consumer statistics
	ms.router.HandleFunc("/api/consumer/stats", ms.handleConsumerStats).Methods("GET")

	// Aggregated engine metrics
	ms.router.HandleFunc("/api/metrics", ms.handleMetrics).Methods("GET")
	ms.router.HandleFunc("/api/metrics/computations", ms.handleComputationMetrics).Methods("GET")
	ms.router.HandleFunc("/api/metrics/rejections", ms.handleRejectionMetrics).Methods("GET")
}

// Middleware

func (ms *MetricsServer) corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (ms *MetricsServer) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Printf("%s %s %v", r.Method, r.URL.Path, time.Since(start))
	})
}

// Handler methods

func (ms *MetricsServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	stats := ms.consumer.GetStats()

	health := map[string]interface{}{
		"status":             "healthy",
		"uptime":             stats.Uptime.String(),
		"messages_processed": stats.MessagesProcessed,
		"messages_errored":   stats.MessagesErrored,
		"last_message":       stats.LastMessageTime,
	}

	ms.writeResponse(w, http.StatusOK, health)
}

func (ms *MetricsServer) handleConsumerStats(w http.ResponseWriter, r *http.Request) {
	ms.writeResponse(w, http.StatusOK, ms.consumer.GetStats())
}

func (ms *MetricsServer) handleMetrics(w http.ResponseWriter, r *http.Request) {
	ms.writeResponse(w, http.StatusOK, ms.processor.Snapshot())
}

func (ms *MetricsServer) handleComputationMetrics(w http.ResponseWriter, r *http.Request) {
	snapshot := ms.processor.Snapshot()
	ms.writeResponse(w, http.StatusOK, map[string]interface{}{
		"computations": snapshot.Computations,
		"latency":      snapshot.Latency,
		"levels":       snapshot.Levels,
	})
}

func (ms *MetricsServer) handleRejectionMetrics(w http.ResponseWriter, r *http.Request) {
	ms.writeResponse(w, http.StatusOK, ms.processor.Snapshot().Rejections)
}

// Helper methods

func (ms *MetricsServer) writeResponse(w http.ResponseWriter, status int, data interface{}) {
	response := MetricsResponse{
		Status:    "success",
		Timestamp: time.Now(),
		Data:      data,
	}

	if status >= 400 {
		response.Status = "error"
		if errMsg, ok := data.(string); ok {
			response.Error = errMsg
			response.Data = nil
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(response); err != nil {
		log.Printf("Error encoding response: %v", err)
	}
}
