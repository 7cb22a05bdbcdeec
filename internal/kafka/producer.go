package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
)

// EventType represents the type of engine event
type EventType string

const (
	EventMoveComputed    EventType = "move_computed"
	EventRequestRejected EventType = "request_rejected"
)

// Producer handles Kafka message production with async capabilities
type Producer struct {
	writer    *kafka.Writer
	errorChan chan error
	stopChan  chan struct{}
	wg        sync.WaitGroup
	isRunning bool
	mu        sync.RWMutex
	stats     ProducerStats
}

// ProducerStats tracks producer performance metrics
type ProducerStats struct {
	MessagesSent    int64     `json:"messages_sent"`
	MessagesErrored int64     `json:"messages_errored"`
	LastMessageTime time.Time `json:"last_message_time"`
	LastErrorTime   time.Time `json:"last_error_time"`
	LastError       string    `json:"last_error"`
}

// AnalyticsService provides high-level engine event emission
type AnalyticsService struct {
	producer *Producer
	enabled  bool
}

// BaseEvent represents the common structure for all engine events
type BaseEvent struct {
	EventType EventType `json:"event_type"`
	EventID   string    `json:"event_id"`
	Timestamp time.Time `json:"timestamp"`
	Metadata  Metadata  `json:"metadata"`
}

// Metadata contains additional context for events
type Metadata struct {
	ServerID    string            `json:"server_id,omitempty"`
	Version     string            `json:"version,omitempty"`
	Environment string            `json:"environment,omitempty"`
	IPAddress   string            `json:"ip_address,omitempty"`
	SessionID   string            `json:"session_id,omitempty"`
	Custom      map[string]string `json:"custom,omitempty"`
}

// MoveComputation describes one successful engine call.
type MoveComputation struct {
	Position    string
	Level       int
	Column      int
	SideToMove  string
	MovesPlayed int
	WinningMove bool
	Duration    time.Duration
}

// MoveComputedEvent represents a completed move computation
type MoveComputedEvent struct {
	BaseEvent
	Position    string `json:"position"`
	Level       int    `json:"level"`
	Column      int    `json:"column"`
	SideToMove  string `json:"side_to_move"`
	MovesPlayed int    `json:"moves_played"`
	WinningMove bool   `json:"winning_move"`
	DurationMs  int64  `json:"duration_ms"`
}

// RequestRejectedEvent represents a request the engine refused.
// Position and Level carry the raw query values as received, since a
// rejected request may not parse at all.
type RequestRejectedEvent struct {
	BaseEvent
	Position string `json:"position"`
	Level    string `json:"level"`
	Kind     string `json:"kind"`
	Message  string `json:"message"`
}

// ProducerConfig holds configuration for the Kafka producer
type ProducerConfig struct {
	Brokers         []string      `json:"brokers"`
	Topic           string        `json:"topic"`
	RequiredAcks    int           `json:"required_acks"`
	BatchSize       int           `json:"batch_size"`
	BatchTimeout    time.Duration `json:"batch_timeout"`
	MaxMessageBytes int           `json:"max_message_bytes"`
	Compression     string        `json:"compression"`
	Retries         int           `json:"retries"`
	RetryBackoff    time.Duration `json:"retry_backoff"`
}

// DefaultProducerConfig returns a production-ready configuration
func DefaultProducerConfig(brokers []string) ProducerConfig {
	return ProducerConfig{
		Brokers:         brokers,
		Topic:           "engine-analytics",
		RequiredAcks:    1, // Wait for leader acknowledgment
		BatchSize:       100,
		BatchTimeout:    10 * time.Millisecond,
		MaxMessageBytes: 1000000, // 1MB
		Compression:     "snappy",
		Retries:         3,
		RetryBackoff:    100 * time.Millisecond,
	}
}

// NewProducer creates a new async Kafka producer
func NewProducer(config ProducerConfig) (*Producer, error) {
	// Configure compression
	var compression kafka.Compression
	switch config.Compression {
	case "gzip":
		compression = kafka.Gzip
	case "snappy":
		compression = kafka.Snappy
	case "lz4":
		compression = kafka.Lz4
	case "zstd":
		compression = kafka.Zstd
	default:
		compression = kafka.Snappy // Default to snappy
	}

	writer := &kafka.Writer{
		Addr:         kafka.TCP(config.Brokers...),
		Topic:        config.Topic,
		Balancer:     &kafka.Hash{}, // Use hash balancer for consistent partitioning
		RequiredAcks: kafka.RequiredAcks(config.RequiredAcks),
		Async:        true, // Enable async mode for better performance
		BatchSize:    config.BatchSize,
		BatchTimeout: config.BatchTimeout,
		Compression:  compression,
		MaxAttempts:  config.Retries,
		BatchBytes:   int64(config.MaxMessageBytes),
		ErrorLogger:  kafka.LoggerFunc(log.Printf),
	}

	producer := &Producer{
		writer:    writer,
		errorChan: make(chan error, 100), // Buffered channel for errors
		stopChan:  make(chan struct{}),
		stats:     ProducerStats{},
	}

	// Start error handling goroutine
	producer.wg.Add(1)
	go producer.handleErrors()

	producer.mu.Lock()
	producer.isRunning = true
	producer.mu.Unlock()

	return producer, nil
}

// Close gracefully shuts down the producer
func (p *Producer) Close() error {
	p.mu.Lock()
	if !p.isRunning {
		p.mu.Unlock()
		return nil
	}
	p.isRunning = false
	p.mu.Unlock()

	// Signal stop and wait for goroutines
	close(p.stopChan)
	p.wg.Wait()

	// Close error channel
	close(p.errorChan)

	// Close writer
	return p.writer.Close()
}

// SendMessage sends a message to Kafka asynchronously
func (p *Producer) SendMessage(key string, value []byte) error {
	p.mu.RLock()
	if !p.isRunning {
		p.mu.RUnlock()
		return fmt.Errorf("producer is not running")
	}
	p.mu.RUnlock()

	message := kafka.Message{
		Key:   []byte(key),
		Value: value,
		Time:  time.Now(),
	}

	// Send message asynchronously
	err := p.writer.WriteMessages(context.Background(), message)

	p.mu.Lock()
	if err != nil {
		p.stats.MessagesErrored++
		p.stats.LastErrorTime = time.Now()
		p.stats.LastError = err.Error()
	} else {
		p.stats.MessagesSent++
		p.stats.LastMessageTime = time.Now()
	}
	p.mu.Unlock()

	return err
}

// GetStats returns current producer statistics
func (p *Producer) GetStats() ProducerStats {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.stats
}

// handleErrors processes async errors from the Kafka writer
func (p *Producer) handleErrors() {
	defer p.wg.Done()

	for {
		select {
		case err := <-p.errorChan:
			if err != nil {
				log.Printf("Kafka producer error: %v", err)
				p.mu.Lock()
				p.stats.MessagesErrored++
				p.stats.LastErrorTime = time.Now()
				p.stats.LastError = err.Error()
				p.mu.Unlock()
			}
		case <-p.stopChan:
			return
		}
	}
}

// NewAnalyticsService creates a new analytics service. A nil producer
// turns every emit into a no-op.
func NewAnalyticsService(producer *Producer, enabled bool) *AnalyticsService {
	return &AnalyticsService{
		producer: producer,
		enabled:  enabled,
	}
}

// IsEnabled returns whether analytics is enabled
func (a *AnalyticsService) IsEnabled() bool {
	return a.enabled && a.producer != nil
}

// SetEnabled enables or disables analytics
func (a *AnalyticsService) SetEnabled(enabled bool) {
	a.enabled = enabled
}

// EmitMoveComputed emits a move computed event
func (a *AnalyticsService) EmitMoveComputed(comp MoveComputation, metadata Metadata) error {
	if !a.IsEnabled() {
		return nil
	}

	event := MoveComputedEvent{
		BaseEvent: BaseEvent{
			EventType: EventMoveComputed,
			EventID:   uuid.New().String(),
			Timestamp: time.Now(),
			Metadata:  metadata,
		},
		Position:    comp.Position,
		Level:       comp.Level,
		Column:      comp.Column,
		SideToMove:  comp.SideToMove,
		MovesPlayed: comp.MovesPlayed,
		WinningMove: comp.WinningMove,
		DurationMs:  comp.Duration.Milliseconds(),
	}

	return a.sendEvent(string(EventMoveComputed), event.EventID, event)
}

// EmitRequestRejected emits a request rejected event
func (a *AnalyticsService) EmitRequestRejected(position, level, kind, message string, metadata Metadata) error {
	if !a.IsEnabled() {
		return nil
	}

	event := RequestRejectedEvent{
		BaseEvent: BaseEvent{
			EventType: EventRequestRejected,
			EventID:   uuid.New().String(),
			Timestamp: time.Now(),
			Metadata:  metadata,
		},
		Position: position,
		Level:    level,
		Kind:     kind,
		Message:  message,
	}

	return a.sendEvent(string(EventRequestRejected), event.EventID, event)
}

// sendEvent is a helper method to send events to Kafka
func (a *AnalyticsService) sendEvent(eventType, eventID string, event interface{}) error {
	eventJSON, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	// Use eventID as key for even partitioning
	key := fmt.Sprintf("%s:%s", eventType, eventID)

	return a.producer.SendMessage(key, eventJSON)
}
