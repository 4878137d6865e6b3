package v1

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// Segment is one piece of message content. The set of implementations is closed:
// TextSegment, ImageSegment, ReplySegment, MentionSegment and UnknownSegment.
type Segment interface {
	segmentType() string
}

// TextSegment is plain text.
type TextSegment struct {
	Text string
}

// ImageSegment is an attached image.
type ImageSegment struct {
	URL string
}

// ReplySegment references the message being replied to.
type ReplySegment struct {
	MessageID string
}

// MentionSegment mentions (@) another member.
type MentionSegment struct {
	TargetID string
}

// UnknownSegment preserves the type of segments the pipeline has no use for
// (faces, files, forwards). It contributes nothing.
type UnknownSegment struct {
	Type string
}

func (TextSegment) segmentType() string    { return "text" }
func (ImageSegment) segmentType() string   { return "image" }
func (ReplySegment) segmentType() string   { return "reply" }
func (MentionSegment) segmentType() string { return "mention" }
func (s UnknownSegment) segmentType() string {
	return s.Type
}

// Segments is an ordered list of segments that (un)marshals in the OneBot
// `{"type": ..., "data": {...}}` array form.
type Segments []Segment

type wireSegment struct {
	Type string                     `json:"type"`
	Data map[string]json.RawMessage `json:"data,omitempty"`
}

// UnmarshalJSON decodes OneBot style segments. "at" is accepted as an alias
// for "mention" and the OneBot data keys (id, qq, file) as aliases for ours.
func (s *Segments) UnmarshalJSON(b []byte) error {
	var raw []wireSegment
	if err := json.Unmarshal(b, &raw); err != nil {
		return fmt.Errorf("decode segments: %w", err)
	}

	out := make(Segments, 0, len(raw))
	for i, ws := range raw {
		seg, err := ws.decode()
		if err != nil {
			return fmt.Errorf("segment %d: %w", i, err)
		}
		out = append(out, seg)
	}
	*s = out
	return nil
}

// MarshalJSON encodes segments with the canonical type names and data keys.
func (s Segments) MarshalJSON() ([]byte, error) {
	out := make([]map[string]any, 0, len(s))
	for _, seg := range s {
		var data map[string]string
		switch v := seg.(type) {
		case TextSegment:
			data = map[string]string{"text": v.Text}
		case ImageSegment:
			data = map[string]string{"url": v.URL}
		case ReplySegment:
			data = map[string]string{"message_id": v.MessageID}
		case MentionSegment:
			data = map[string]string{"target_id": v.TargetID}
		case UnknownSegment:
		}
		entry := map[string]any{"type": seg.segmentType()}
		if data != nil {
			entry["data"] = data
		}
		out = append(out, entry)
	}
	return json.Marshal(out)
}

func (ws wireSegment) decode() (Segment, error) {
	switch ws.Type {
	case "text":
		text, err := ws.field("text")
		if err != nil {
			return nil, err
		}
		return TextSegment{Text: text}, nil
	case "image":
		url, err := ws.field("url", "file")
		if err != nil {
			return nil, err
		}
		return ImageSegment{URL: url}, nil
	case "reply":
		id, err := ws.field("message_id", "id")
		if err != nil {
			return nil, err
		}
		return ReplySegment{MessageID: id}, nil
	case "mention", "at":
		target, err := ws.field("target_id", "qq")
		if err != nil {
			return nil, err
		}
		return MentionSegment{TargetID: target}, nil
	case "":
		return nil, fmt.Errorf("missing segment type")
	default:
		return UnknownSegment{Type: ws.Type}, nil
	}
}

// field returns the first present key as a string. Numbers are accepted
// because OneBot implementations disagree on whether ids are quoted.
func (ws wireSegment) field(keys ...string) (string, error) {
	for _, k := range keys {
		raw, ok := ws.Data[k]
		if !ok {
			continue
		}
		raw = bytes.TrimSpace(raw)
		if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
			continue
		}
		if raw[0] == '"' {
			var v string
			if err := json.Unmarshal(raw, &v); err != nil {
				return "", fmt.Errorf("%s.%s: %w", ws.Type, k, err)
			}
			return v, nil
		}
		var n json.Number
		if err := json.Unmarshal(raw, &n); err != nil {
			return "", fmt.Errorf("%s.%s: expected string or number", ws.Type, k)
		}
		if _, err := strconv.ParseFloat(n.String(), 64); err != nil {
			return "", fmt.Errorf("%s.%s: %w", ws.Type, k, err)
		}
		return n.String(), nil
	}
	return "", nil
}
