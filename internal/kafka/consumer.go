package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"connect-four-engine/internal/database"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
)

// Consumer handles Kafka message consumption and analytics processing
type Consumer struct {
	reader    *kafka.Reader
	processor *EventProcessor
	stopChan  chan struct{}
	wg        sync.WaitGroup
	isRunning bool
	mu        sync.RWMutex
	stats     ConsumerStats
}

// ConsumerStats tracks consumer performance metrics
type ConsumerStats struct {
	MessagesProcessed int64         `json:"messages_processed"`
	MessagesErrored   int64         `json:"messages_errored"`
	LastMessageTime   time.Time     `json:"last_message_time"`
	LastErrorTime     time.Time     `json:"last_error_time"`
	LastError         string        `json:"last_error"`
	StartTime         time.Time     `json:"start_time"`
	Uptime            time.Duration `json:"uptime"`
}

// ConsumerConfig holds configuration for the Kafka consumer
type ConsumerConfig struct {
	Brokers        []string      `json:"brokers"`
	Topic          string        `json:"topic"`
	GroupID        string        `json:"group_id"`
	MinBytes       int           `json:"min_bytes"`
	MaxBytes       int           `json:"max_bytes"`
	MaxWait        time.Duration `json:"max_wait"`
	StartOffset    int64         `json:"start_offset"`
	CommitInterval time.Duration `json:"commit_interval"`
}

// DefaultConsumerConfig returns a production-ready consumer configuration
func DefaultConsumerConfig(brokers []string) ConsumerConfig {
	return ConsumerConfig{
		Brokers:        brokers,
		Topic:          "engine-analytics",
		GroupID:        "engine-analytics-group",
		MinBytes:       10e3, // 10KB
		MaxBytes:       10e6, // 10MB
		MaxWait:        1 * time.Second,
		StartOffset:    kafka.LastOffset,
		CommitInterval: 1 * time.Second,
	}
}

// NewConsumer creates a new Kafka consumer feeding the given processor
func NewConsumer(config ConsumerConfig, processor *EventProcessor) *Consumer {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:        config.Brokers,
		Topic:          config.Topic,
		GroupID:        config.GroupID,
		MinBytes:       config.MinBytes,
		MaxBytes:       config.MaxBytes,
		MaxWait:        config.MaxWait,
		StartOffset:    config.StartOffset,
		CommitInterval: config.CommitInterval,
		ErrorLogger:    kafka.LoggerFunc(log.Printf),
	})

	return &Consumer{
		reader:    reader,
		processor: processor,
		stopChan:  make(chan struct{}),
		stats: ConsumerStats{
			StartTime: time.Now(),
		},
	}
}

// Start begins consuming messages from Kafka
func (c *Consumer) Start(ctx context.Context) error {
	c.mu.Lock()
	if c.isRunning {
		c.mu.Unlock()
		return fmt.Errorf("consumer is already running")
	}
	c.isRunning = true
	c.mu.Unlock()

	log.Printf("Starting Kafka consumer for topic: %s", c.reader.Config().Topic)

	// Start message processing goroutine
	c.wg.Add(1)
	go c.processMessages(ctx)

	// Start metrics aggregation goroutine
	c.wg.Add(1)
	go c.processor.StartAggregation(ctx, &c.wg)

	// Start periodic statistics reporting
	c.wg.Add(1)
	go c.reportStatistics(ctx)

	return nil
}

// Stop gracefully shuts down the consumer
func (c *Consumer) Stop() error {
	c.mu.Lock()
	if !c.isRunning {
		c.mu.Unlock()
		return nil
	}
	c.isRunning = false
	c.mu.Unlock()

	log.Println("Stopping Kafka consumer...")

	// Signal stop
	close(c.stopChan)

	// Wait for all goroutines to finish
	c.wg.Wait()

	// Close reader
	if err := c.reader.Close(); err != nil {
		return fmt.Errorf("failed to close reader: %w", err)
	}

	// Stop processor
	if err := c.processor.Stop(); err != nil {
		return fmt.Errorf("failed to stop processor: %w", err)
	}

	log.Println("Kafka consumer stopped successfully")
	return nil
}

// GetStats returns current consumer statistics
func (c *Consumer) GetStats() ConsumerStats {
	c.mu.RLock()
	defer c.mu.RUnlock()

	stats := c.stats
	stats.Uptime = time.Since(stats.StartTime)
	return stats
}

// processMessages is the main message processing loop
func (c *Consumer) processMessages(ctx context.Context) {
	defer c.wg.Done()

	for {
		select {
		case <-ctx.Done():
			return
		case <-c.stopChan:
			return
		default:
			// Read message with timeout
			message, err := c.reader.ReadMessage(ctx)
			if err != nil {
				if err == context.Canceled {
					return
				}
				c.updateStats(false, err)
				log.Printf("Error reading message: %v", err)
				continue
			}

			// Process message
			if err := c.processor.ProcessMessage(message); err != nil {
				c.updateStats(false, err)
				log.Printf("Error processing message: %v", err)
			} else {
				c.updateStats(true, nil)
			}
		}
	}
}

// reportStatistics periodically reports consumer statistics
func (c *Consumer) reportStatistics(ctx context.Context) {
	defer c.wg.Done()

	ticker := time.NewTicker(60 * time.Second) // Report every minute
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-c.stopChan:
			return
		case <-ticker.C:
			c.logStatistics()
		}
	}
}

// updateStats updates consumer statistics
func (c *Consumer) updateStats(success bool, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if success {
		c.stats.MessagesProcessed++
		c.stats.LastMessageTime = time.Now()
	} else {
		c.stats.MessagesErrored++
		c.stats.LastErrorTime = time.Now()
		if err != nil {
			c.stats.LastError = err.Error()
		}
	}
}

// logStatistics logs current consumer statistics
func (c *Consumer) logStatistics() {
	stats := c.GetStats()

	log.Printf("=== Consumer Statistics ===")
	log.Printf("Uptime: %v", stats.Uptime.Round(time.Second))
	log.Printf("Messages Processed: %d", stats.MessagesProcessed)
	log.Printf("Messages Errored: %d", stats.MessagesErrored)

	if stats.MessagesProcessed > 0 {
		rate := float64(stats.MessagesProcessed) / stats.Uptime.Seconds()
		log.Printf("Processing Rate: %.2f messages/sec", rate)
	}

	if stats.LastError != "" {
		log.Printf("Last Error: %s (at %v)", stats.LastError, stats.LastErrorTime)
	}

	// Get processor statistics
	processorStats := c.processor.GetStats()
	log.Printf("Computations Today: %d", processorStats.ComputationsToday)
	log.Printf("Computations This Hour: %d", processorStats.ComputationsThisHour)
	log.Printf("Average Duration: %.1fms", processorStats.AverageDurationMs)
	log.Printf("Rejections: %d", processorStats.TotalRejections)
	log.Printf("===========================")
}

// EventProcessor handles the processing and aggregation of engine events
type EventProcessor struct {
	repo             *database.PostgresDB
	aggregator       *MetricsAggregator
	levelTracker     *LevelTracker
	columnTracker    *ColumnTracker
	latencyTracker   *LatencyTracker
	rejectionTracker *RejectionTracker
	hourlyTracker    *HourlyTracker
	mu               sync.RWMutex
	stopChan         chan struct{}
	isRunning        bool
}

// ProcessorStats tracks event processor statistics
type ProcessorStats struct {
	ComputationsToday    int     `json:"computations_today"`
	ComputationsThisHour int     `json:"computations_this_hour"`
	TrackedLevels        int     `json:"tracked_levels"`
	AverageDurationMs    float64 `json:"average_duration_ms"`
	TotalRejections      int64   `json:"total_rejections"`
}

// MetricsSnapshot is the full metrics view served by the metrics API
type MetricsSnapshot struct {
	Computations ComputationMetrics  `json:"computations"`
	Rejections   RejectionMetrics    `json:"rejections"`
	Latency      LatencySnapshot     `json:"latency"`
	Levels       map[int]*LevelStats `json:"levels"`
	RecentHours  []*HourlyStats      `json:"recent_hours"`
}

// NewEventProcessor creates a new event processor. A nil repo disables
// database persistence but keeps in-memory aggregation.
func NewEventProcessor(repo *database.PostgresDB) *EventProcessor {
	return &EventProcessor{
		repo:             repo,
		aggregator:       NewMetricsAggregator(),
		levelTracker:     NewLevelTracker(),
		columnTracker:    NewColumnTracker(),
		latencyTracker:   NewLatencyTracker(),
		rejectionTracker: NewRejectionTracker(),
		hourlyTracker:    NewHourlyTracker(),
		stopChan:         make(chan struct{}),
	}
}

// StartAggregation starts the metrics aggregation process
func (ep *EventProcessor) StartAggregation(ctx context.Context, wg *sync.WaitGroup) {
	defer wg.Done()

	ep.mu.Lock()
	ep.isRunning = true
	ep.mu.Unlock()

	// Start aggregation ticker (every 5 minutes)
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ep.stopChan:
			return
		case <-ticker.C:
			ep.hourlyTracker.CleanupOldStats(7 * 24 * time.Hour)
			if err := ep.aggregator.AggregateMetrics(); err != nil {
				log.Printf("Error aggregating metrics: %v", err)
			}
		}
	}
}

// Stop stops the event processor
func (ep *EventProcessor) Stop() error {
	ep.mu.Lock()
	if !ep.isRunning {
		ep.mu.Unlock()
		return nil
	}
	ep.isRunning = false
	ep.mu.Unlock()

	close(ep.stopChan)
	return ep.aggregator.Flush()
}

// ProcessMessage processes a single Kafka message
func (ep *EventProcessor) ProcessMessage(message kafka.Message) error {
	// Log the raw event
	log.Printf("Processing event: %s", string(message.Key))

	// Parse base event to determine type
	var baseEvent BaseEvent
	if err := json.Unmarshal(message.Value, &baseEvent); err != nil {
		return fmt.Errorf("failed to parse base event: %w", err)
	}

	// Process based on event type
	switch baseEvent.EventType {
	case EventMoveComputed:
		return ep.processMoveComputed(message.Value)
	case EventRequestRejected:
		return ep.processRequestRejected(message.Value)
	default:
		log.Printf("Unknown event type: %s", baseEvent.EventType)
		return nil
	}
}

// GetStats returns current processor statistics
func (ep *EventProcessor) GetStats() ProcessorStats {
	ep.mu.RLock()
	defer ep.mu.RUnlock()

	return ProcessorStats{
		ComputationsToday:    ep.hourlyTracker.GetComputationsToday(),
		ComputationsThisHour: ep.hourlyTracker.GetComputationsThisHour(),
		TrackedLevels:        ep.levelTracker.GetLevelCount(),
		AverageDurationMs:    ep.latencyTracker.Average(),
		TotalRejections:      ep.rejectionTracker.Total(),
	}
}

// Snapshot returns the full metrics view for the metrics API
func (ep *EventProcessor) Snapshot() MetricsSnapshot {
	return MetricsSnapshot{
		Computations: ep.aggregator.GetComputationMetrics(),
		Rejections:   ep.aggregator.GetRejectionMetrics(),
		Latency:      ep.latencyTracker.Snapshot(),
		Levels:       ep.levelTracker.Snapshot(),
		RecentHours:  ep.hourlyTracker.GetRecentHours(24),
	}
}

// Event processing methods

func (ep *EventProcessor) processMoveComputed(data []byte) error {
	var event MoveComputedEvent
	if err := json.Unmarshal(data, &event); err != nil {
		return err
	}

	log.Printf("Move Computed: position %q, level %d, column %d (%dms)",
		event.Position, event.Level, event.Column, event.DurationMs)

	// Track computation
	ep.levelTracker.Record(event.Level, event.WinningMove, event.DurationMs, event.Timestamp)
	ep.columnTracker.Record(event.Column)
	ep.latencyTracker.Record(event.DurationMs)

	// Track hourly metrics
	ep.hourlyTracker.RecordComputation(event.Timestamp, event.DurationMs)

	// Update aggregated metrics
	if err := ep.aggregator.RecordComputation(event); err != nil {
		return err
	}

	// Persist to the audit table when a database is attached
	if ep.repo != nil {
		rec := database.ComputationRecord{
			Position:    event.Position,
			Level:       event.Level,
			Column:      event.Column,
			SideToMove:  event.SideToMove,
			MovesPlayed: event.MovesPlayed,
			WinningMove: event.WinningMove,
			DurationMs:  event.DurationMs,
			CreatedAt:   event.Timestamp,
		}
		if id, err := uuid.Parse(event.EventID); err == nil {
			rec.ID = id
		}
		if err := ep.repo.RecordComputation(rec); err != nil {
			return fmt.Errorf("failed to persist computation: %w", err)
		}
	}

	return nil
}

func (ep *EventProcessor) processRequestRejected(data []byte) error {
	var event RequestRejectedEvent
	if err := json.Unmarshal(data, &event); err != nil {
		return err
	}

	log.Printf("Request Rejected: kind %s, position %q: %s",
		event.Kind, event.Position, event.Message)

	// Track rejection
	ep.rejectionTracker.Record(event.Kind, event.Timestamp)

	// Track hourly metrics
	ep.hourlyTracker.RecordRejection(event.Timestamp)

	// Update aggregated metrics
	return ep.aggregator.RecordRejection(event)
}
