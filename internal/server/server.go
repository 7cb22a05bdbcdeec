package server

import (
	"context"
	"log"
	"net/http"
	"time"

	"connect-four-engine/internal/config"
	"connect-four-engine/internal/handlers"

	"github.com/gorilla/mux"
)

type Server struct {
	httpServer *http.Server
	config     *config.Config
}

func NewServer(cfg *config.Config, moveHandler *handlers.MoveHandler, statsHandler *handlers.StatsHandler, liveHandler *handlers.LiveHandler) *Server {
	router := newRouter(cfg, moveHandler, statsHandler, liveHandler)

	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return &Server{
		httpServer: httpServer,
		config:     cfg,
	}
}

func newRouter(cfg *config.Config, moveHandler *handlers.MoveHandler, statsHandler *handlers.StatsHandler, liveHandler *handlers.LiveHandler) *mux.Router {
	router := mux.NewRouter()

	// WebSocket endpoint for live analysis sessions
	router.HandleFunc("/ws", liveHandler.HandleWebSocket)

	// REST API endpoints
	api := router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/move", moveHandler.GetMove).Methods("GET")
	api.HandleFunc("/stats", statsHandler.GetStats).Methods("GET")
	api.HandleFunc("/stats/recent", statsHandler.GetRecentComputations).Methods("GET")

	// Health check endpoint
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"healthy"}`))
	}).Methods("GET")

	// Serve static files (the analysis frontend)
	router.PathPrefix("/").Handler(http.FileServer(http.Dir(cfg.StaticDir)))

	// CORS middleware
	router.Use(corsMiddleware)
	router.Use(loggingMiddleware)

	return router
}

func (s *Server) Start() error {
	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

func corsMiddleware(next http.Handler) http.Handler {
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

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Printf("%s %s (%v)", r.Method, r.URL.Path, time.Since(start))
	})
}
