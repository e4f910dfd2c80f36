package feed

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Event types carried on a bill's feed stream.
const (
	EventTypeComment  = "comment"
	EventTypePresence = "presence"
)

// Event represents a live feed event published to a bill's Redis Stream
type Event struct {
	Type      string          `json:"type"`
	Payload   json.RawMessage `json:"payload"`
	Timestamp int64           `json:"timestamp"`
}

// CommentPayload is a comment event payload, already sentiment-scored
type CommentPayload struct {
	CommentID   string  `json:"commentId"`
	BillID      string  `json:"billId"`
	DisplayName string  `json:"displayName"`
	Content     string  `json:"content"`
	Source      string  `json:"source"`
	Sentiment   string  `json:"sentiment"`
	Score       float64 `json:"score"`
	Confidence  float64 `json:"confidence"`
	Timestamp   int64   `json:"timestamp"`
}

// PresencePayload reports the number of connected viewers
type PresencePayload struct {
	Connected int64 `json:"connected"`
}

// ClientMessage represents a message from a websocket client
type ClientMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// NewEvent creates a new event with timestamp
func NewEvent(eventType string, payload interface{}) (*Event, error) {
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	return &Event{
		Type:      eventType,
		Payload:   payloadBytes,
		Timestamp: time.Now().UnixMilli(),
	}, nil
}

// MarshalEvent serializes an event for the stream
func MarshalEvent(event *Event) (string, error) {
	data, err := json.Marshal(event)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// UnmarshalEvent deserializes an event read from the stream
func UnmarshalEvent(data string) (*Event, error) {
	var event Event
	if err := json.Unmarshal([]byte(data), &event); err != nil {
		return nil, err
	}
	return &event, nil
}

// StreamKey returns the Redis Stream key for a bill's feed
func StreamKey(billID string) string {
	return fmt.Sprintf("feed:%s:events", billID)
}

// GroupName returns the consumer group name for a bill's feed
func GroupName(billID string) string {
	return fmt.Sprintf("feed:%s:group", billID)
}

// PublishEvent appends an event to a bill's feed stream
func PublishEvent(billID string, event *Event) error {
	if rdb == nil {
		return fmt.Errorf("Redis client not available")
	}

	data, err := MarshalEvent(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	return rdb.XAdd(ctx, &redis.XAddArgs{
		Stream: StreamKey(billID),
		Values: map[string]interface{}{"data": data},
	}).Err()
}
