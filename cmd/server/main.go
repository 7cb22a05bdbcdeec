package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"connect-four-engine/internal/config"
	"connect-four-engine/internal/database"
	"connect-four-engine/internal/handlers"
	"connect-four-engine/internal/kafka"
	"connect-four-engine/internal/server"

	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	cfg := config.Load()

	// Initialize database (optional; /api/stats answers 503 without it)
	var db *database.PostgresDB
	if cfg.DatabaseURL != "" {
		var err error
		db, err = database.NewPostgresDB(cfg.DatabaseURL)
		if err != nil {
			log.Fatal("Failed to connect to database:", err)
		}
		defer db.Close()
	} else {
		log.Println("DATABASE_URL not set, running without stats persistence")
	}

	// Initialize Kafka producer (optional; analytics become no-ops)
	var kafkaProducer *kafka.Producer
	if len(cfg.KafkaBrokers) > 0 {
		var err error
		kafkaProducer, err = kafka.NewProducer(kafka.DefaultProducerConfig(cfg.KafkaBrokers))
		if err != nil {
			log.Fatal("Failed to create Kafka producer:", err)
		}
		defer kafkaProducer.Close()
	} else {
		log.Println("KAFKA_BROKERS not set, running without analytics")
	}

	analyticsService := kafka.NewAnalyticsService(kafkaProducer, cfg.AnalyticsEnabled)

	// Initialize handlers
	moveHandler := handlers.NewMoveHandler(analyticsService)
	statsHandler := handlers.NewStatsHandler(db)
	liveHandler := handlers.NewLiveHandler(analyticsService)

	// Initialize server
	srv := server.NewServer(cfg, moveHandler, statsHandler, liveHandler)

	// Start server
	go func() {
		log.Printf("Server starting on port %s", cfg.Port)
		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start:", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exited")
}
