package kafka

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
)

func computedMessage(t *testing.T, event MoveComputedEvent) kafka.Message {
	t.Helper()

	value, err := json.Marshal(event)
	if err != nil {
		t.Fatalf("failed to marshal event: %v", err)
	}
	return kafka.Message{
		Key:   []byte(string(event.EventType) + ":" + event.EventID),
		Value: value,
	}
}

func testComputedEvent(level, column int, durationMs int64) MoveComputedEvent {
	return MoveComputedEvent{
		BaseEvent: BaseEvent{
			EventType: EventMoveComputed,
			EventID:   uuid.New().String(),
			Timestamp: time.Now(),
		},
		Position:    "R3B3",
		Level:       level,
		Column:      column,
		SideToMove:  "red",
		MovesPlayed: 2,
		DurationMs:  durationMs,
	}
}

func TestProcessMoveComputed(t *testing.T) {
	processor := NewEventProcessor(nil)

	for _, event := range []MoveComputedEvent{
		testComputedEvent(5, 3, 10),
		testComputedEvent(5, 3, 30),
		testComputedEvent(8, 6, 200),
	} {
		if err := processor.ProcessMessage(computedMessage(t, event)); err != nil {
			t.Fatalf("ProcessMessage returned error: %v", err)
		}
	}

	snapshot := processor.Snapshot()
	if snapshot.Computations.TotalComputations != 3 {
		t.Errorf("TotalComputations = %d, want 3", snapshot.Computations.TotalComputations)
	}
	if snapshot.Computations.ByLevel[5] != 2 {
		t.Errorf("ByLevel[5] = %d, want 2", snapshot.Computations.ByLevel[5])
	}
	if snapshot.Computations.ByColumn[6] != 1 {
		t.Errorf("ByColumn[6] = %d, want 1", snapshot.Computations.ByColumn[6])
	}
	if got := snapshot.Computations.AverageDurationMs; got != 80 {
		t.Errorf("AverageDurationMs = %v, want 80", got)
	}
	if snapshot.Latency.Count != 3 {
		t.Errorf("Latency.Count = %d, want 3", snapshot.Latency.Count)
	}
}

func TestProcessRequestRejected(t *testing.T) {
	processor := NewEventProcessor(nil)

	event := RequestRejectedEvent{
		BaseEvent: BaseEvent{
			EventType: EventRequestRejected,
			EventID:   uuid.New().String(),
			Timestamp: time.Now(),
		},
		Position: "R7",
		Level:    "5",
		Kind:     "parse",
		Message:  "invalid move string at position 1: column must be 0-6",
	}
	value, err := json.Marshal(event)
	if err != nil {
		t.Fatalf("failed to marshal event: %v", err)
	}

	if err := processor.ProcessMessage(kafka.Message{Value: value}); err != nil {
		t.Fatalf("ProcessMessage returned error: %v", err)
	}

	rejections := processor.Snapshot().Rejections
	if rejections.TotalRejections != 1 {
		t.Errorf("TotalRejections = %d, want 1", rejections.TotalRejections)
	}
	if rejections.ByKind["parse"] != 1 {
		t.Errorf("ByKind[parse] = %d, want 1", rejections.ByKind["parse"])
	}
	if rejections.LastKind != "parse" {
		t.Errorf("LastKind = %q, want parse", rejections.LastKind)
	}
}

func TestProcessUnknownEventType(t *testing.T) {
	processor := NewEventProcessor(nil)

	value, err := json.Marshal(BaseEvent{
		EventType: "board_rotated",
		EventID:   uuid.New().String(),
		Timestamp: time.Now(),
	})
	if err != nil {
		t.Fatalf("failed to marshal event: %v", err)
	}

	// Unknown types are logged and skipped, not errored, so a newer
	// producer cannot wedge an older consumer.
	if err := processor.ProcessMessage(kafka.Message{Value: value}); err != nil {
		t.Fatalf("ProcessMessage returned error for unknown type: %v", err)
	}
}

func TestProcessMalformedMessage(t *testing.T) {
	processor := NewEventProcessor(nil)

	if err := processor.ProcessMessage(kafka.Message{Value: []byte("not json")}); err == nil {
		t.Fatal("ProcessMessage accepted a malformed payload")
	}
}
