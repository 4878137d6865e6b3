package v1

import (
	"fmt"
	"time"
)

// Event is a normalized chat event. It is implemented by *Message and *Notice only.
type Event interface {
	isEvent()
}

// Message is one chat message posted to a group.
type Message struct {
	// ID is the platform message identifier. It is globally unique and doubles as
	// the idempotency key for ingestion.
	ID string `json:"message_id"`

	GroupID  string `json:"group_id"`
	SenderID string `json:"sender_id"`

	// Text is the flattened plain text the platform reports for the message.
	// When empty, collectors fall back to the text segments.
	Text string `json:"text,omitempty"`

	// Segments is the ordered message content.
	Segments Segments `json:"segments,omitempty"`

	// SentAt is the platform send time. Zero means "now" for live ingestion.
	SentAt time.Time `json:"sent_at"`
}

func (*Message) isEvent() {}

// Validate ensures the message carries its identity attributes.
func (m *Message) Validate() error {
	if m.ID == "" {
		return fmt.Errorf("message_id is required")
	}
	if m.GroupID == "" {
		return fmt.Errorf("group_id is required")
	}
	if m.SenderID == "" {
		return fmt.Errorf("sender_id is required")
	}
	return nil
}

// HistoryPool is an unordered bulk of historical messages for one group.
// It may contain duplicates and messages that were already ingested live.
type HistoryPool struct {
	Messages []Message `json:"messages" yaml:"messages"`
}
