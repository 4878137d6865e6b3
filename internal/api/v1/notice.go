package v1

import (
	"fmt"
	"time"
)

// NoticeKind enumerates the platform notices that feed the metric model.
type NoticeKind string

const (
	// NoticePoke is a "poke" from ActorID to TargetID.
	NoticePoke NoticeKind = "poke"
	// NoticeRecall is the recall of MessageID (sent by TargetID) performed by ActorID.
	NoticeRecall NoticeKind = "recall"
	// NoticeReaction is an emoji reaction by ActorID on MessageID.
	NoticeReaction NoticeKind = "reaction"
)

// Notice is a non-message group event.
type Notice struct {
	Kind    NoticeKind `json:"kind"`
	GroupID string     `json:"group_id"`
	ActorID string     `json:"actor_id"`

	// TargetID is delivered inline by the platform for pokes, and for recalls
	// it names the sender of the recalled message.
	TargetID string `json:"target_id,omitempty"`

	// MessageID references an earlier message (reactions and recalls).
	MessageID string `json:"message_id,omitempty"`

	OccurredAt time.Time `json:"occurred_at"`
}

func (*Notice) isEvent() {}

// Validate checks the attributes each notice kind needs.
func (n *Notice) Validate() error {
	if n.GroupID == "" {
		return fmt.Errorf("group_id is required")
	}
	if n.ActorID == "" {
		return fmt.Errorf("actor_id is required")
	}

	switch n.Kind {
	case NoticePoke:
		if n.TargetID == "" {
			return fmt.Errorf("target_id is required for poke notices")
		}
	case NoticeReaction:
		if n.MessageID == "" {
			return fmt.Errorf("message_id is required for reaction notices")
		}
	case NoticeRecall:
		if n.MessageID == "" && n.TargetID == "" {
			return fmt.Errorf("message_id or target_id is required for recall notices")
		}
	case "":
		return fmt.Errorf("kind is required")
	default:
		return fmt.Errorf("unsupported notice kind %q", n.Kind)
	}
	return nil
}

// Envelope wraps a single event on a stream transport.
type Envelope struct {
	Kind    string   `json:"kind"` // "message" or "notice"
	Message *Message `json:"message,omitempty"`
	Notice  *Notice  `json:"notice,omitempty"`
}

const (
	EnvelopeMessage = "message"
	EnvelopeNotice  = "notice"
)

// Event returns the wrapped event after validating the envelope shape.
func (e *Envelope) Event() (Event, error) {
	switch e.Kind {
	case EnvelopeMessage:
		if e.Message == nil {
			return nil, fmt.Errorf("message envelope without message body")
		}
		return e.Message, nil
	case EnvelopeNotice:
		if e.Notice == nil {
			return nil, fmt.Errorf("notice envelope without notice body")
		}
		return e.Notice, nil
	default:
		return nil, fmt.Errorf("unsupported envelope kind %q", e.Kind)
	}
}
