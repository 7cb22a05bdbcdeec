package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"connect-four-engine/internal/database"
	"connect-four-engine/internal/kafka"
)

func main() {
	// Command line flags, overridable by environment
	var (
		brokers     = flag.String("brokers", getEnv("KAFKA_BROKERS", "localhost:9092"), "Kafka broker addresses")
		topic       = flag.String("topic", getEnv("KAFKA_TOPIC", "engine-analytics"), "Kafka topic to consume")
		groupID     = flag.String("group", getEnv("KAFKA_GROUP_ID", "engine-analytics-group"), "Kafka consumer group ID")
		dbURL       = flag.String("db", getEnv("DATABASE_URL", ""), "Database URL (empty disables persistence)")
		metricsAddr = flag.String("metrics-addr", getEnv("METRICS_ADDR", ":8082"), "Metrics API listen address")
	)
	flag.Parse()

	log.Printf("Starting engine analytics consumer")
	log.Printf("Brokers: %s", *brokers)
	log.Printf("Topic: %s", *topic)
	log.Printf("Group ID: %s", *groupID)

	// Setup database connection (optional; aggregation stays in-memory
	// without it)
	var db *database.PostgresDB
	if *dbURL != "" {
		var err error
		db, err = database.NewPostgresDB(*dbURL)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		defer db.Close()
		log.Printf("Database connection established")
	} else {
		log.Printf("No database URL, computations will not be persisted")
	}

	// Setup Kafka consumer
	consumerConfig := kafka.DefaultConsumerConfig(strings.Split(*brokers, ","))
	consumerConfig.Topic = *topic
	consumerConfig.GroupID = *groupID

	processor := kafka.NewEventProcessor(db)
	consumer := kafka.NewConsumer(consumerConfig, processor)

	// Setup graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	// Start consumer
	if err := consumer.Start(ctx); err != nil {
		log.Fatalf("Failed to start consumer: %v", err)
	}
	log.Printf("Analytics consumer started")

	// Start metrics API server
	metricsServer := NewMetricsServer(consumer, processor, *metricsAddr)
	go func() {
		if err := metricsServer.Start(); err != nil {
			log.Printf("Metrics server error: %v", err)
		}
	}()
	log.Printf("Metrics API server started on %s", *metricsAddr)

	// Wait for shutdown signal
	<-sigChan
	log.Printf("Shutdown signal received, stopping consumer...")
	cancel()

	if err := metricsServer.Stop(); err != nil {
		log.Printf("Error stopping metrics server: %v", err)
	}

	// Stop consumer with timeout
	stopCtx, stopCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer stopCancel()

	done := make(chan error, 1)
	go func() {
		done <- consumer.Stop()
	}()

	select {
	case err := <-done:
		if err != nil {
			log.Printf("Error stopping consumer: %v", err)
		} else {
			log.Printf("Consumer stopped")
		}
	case <-stopCtx.Done():
		log.Printf("Consumer stop timeout, forcing shutdown")
	}

	log.Printf("Analytics consumer shutdown complete")
}

// getEnv gets an environment variable with a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
