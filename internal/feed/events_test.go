package feed

import (
	"encoding/json"
	"testing"
)

func TestNewEventCarriesPayload(t *testing.T) {
	payload := CommentPayload{
		CommentID:   "abc123",
		BillID:      "bill1",
		DisplayName: "Jordan",
		Content:     "I support this bill",
		Source:      "stream",
		Sentiment:   "positive",
		Score:       0.6,
		Confidence:  0.8,
	}

	event, err := NewEvent(EventTypeComment, payload)
	if err != nil {
		t.Fatalf("NewEvent failed: %v", err)
	}
	if event.Type != EventTypeComment {
		t.Errorf("Expected comment event, got %s", event.Type)
	}
	if event.Timestamp == 0 {
		t.Error("Expected a non-zero timestamp")
	}

	data, err := MarshalEvent(event)
	if err != nil {
		t.Fatalf("MarshalEvent failed: %v", err)
	}
	decoded, err := UnmarshalEvent(data)
	if err != nil {
		t.Fatalf("UnmarshalEvent failed: %v", err)
	}

	var got CommentPayload
	if err := json.Unmarshal(decoded.Payload, &got); err != nil {
		t.Fatalf("Failed to decode payload: %v", err)
	}
	if got != payload {
		t.Errorf("Payload changed across the stream: %+v != %+v", got, payload)
	}
}

func TestUnmarshalEventRejectsGarbage(t *testing.T) {
	if _, err := UnmarshalEvent("not json"); err == nil {
		t.Error("Expected error for malformed event data")
	}
}

func TestStreamKeysAreBillScoped(t *testing.T) {
	if StreamKey("b1") == StreamKey("b2") {
		t.Error("Stream keys must differ per bill")
	}
	if GroupName("b1") == GroupName("b2") {
		t.Error("Group names must differ per bill")
	}
	if StreamKey("b1") == GroupName("b1") {
		t.Error("Stream key and group name must not collide")
	}
}
