package events

import (
	"encoding/json"
	"fmt"
	"time"
)

// Event types published to the events queue.
const (
	UserCreated        = "user.created"
	UserDeactivated    = "user.deactivated"
	ProductCreated     = "product.created"
	ProductDeactivated = "product.deactivated"
	OrderCreated       = "order.created"
	OrderUpdated       = "order.updated"
	OrderDeactivated   = "order.deactivated"
)

// Event is the envelope for every lifecycle notification.
type Event struct {
	Type       string         `json:"type"`
	ResourceID string         `json:"resource_id"`
	SubjectID  string         `json:"subject_id,omitempty"`
	OccurredAt time.Time      `json:"occurred_at"`
	Data       map[string]any `json:"data,omitempty"`
}

func New(eventType, resourceID, subjectID string, data map[string]any) Event {
	return Event{
		Type:       eventType,
		ResourceID: resourceID,
		SubjectID:  subjectID,
		OccurredAt: time.Now().UTC(),
		Data:       data,
	}
}

func Decode(b []byte) (Event, error) {
	var e Event
	if err := json.Unmarshal(b, &e); err != nil {
		return Event{}, fmt.Errorf("decode event failed: %w", err)
	}
	if e.Type == "" {
		return Event{}, fmt.Errorf("decode event failed: missing type")
	}
	return e, nil
}
