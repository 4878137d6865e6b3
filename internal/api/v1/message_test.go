package v1

import (
	"encoding/json"
	"reflect"
	"testing"
	"time"
)

func TestMessageValidate(t *testing.T) {
	tests := []struct {
		name    string
		msg     Message
		wantErr bool
	}{
		{
			name: "valid",
			msg:  Message{ID: "m1", GroupID: "g1", SenderID: "u1"},
		},
		{
			name:    "missing id",
			msg:     Message{GroupID: "g1", SenderID: "u1"},
			wantErr: true,
		},
		{
			name:    "missing group",
			msg:     Message{ID: "m1", SenderID: "u1"},
			wantErr: true,
		},
		{
			name:    "missing sender",
			msg:     Message{ID: "m1", GroupID: "g1"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.msg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestMessageUnmarshalOneBotSegments(t *testing.T) {
	payload := `{
		"message_id": "1001",
		"group_id": "g1",
		"sender_id": "u1",
		"segments": [
			{"type": "reply", "data": {"id": 998}},
			{"type": "at", "data": {"qq": "42"}},
			{"type": "text", "data": {"text": "hello"}},
			{"type": "image", "data": {"file": "a.png"}},
			{"type": "face", "data": {"id": "1"}}
		],
		"sent_at": "2024-03-01T10:00:00Z"
	}`

	var msg Message
	if err := json.Unmarshal([]byte(payload), &msg); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}

	want := Segments{
		ReplySegment{MessageID: "998"},
		MentionSegment{TargetID: "42"},
		TextSegment{Text: "hello"},
		ImageSegment{URL: "a.png"},
		UnknownSegment{Type: "face"},
	}
	if !reflect.DeepEqual(msg.Segments, want) {
		t.Errorf("Segments = %#v, want %#v", msg.Segments, want)
	}
	if !msg.SentAt.Equal(time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)) {
		t.Errorf("SentAt = %v", msg.SentAt)
	}
}

func TestSegmentsRejectMissingType(t *testing.T) {
	var segs Segments
	if err := json.Unmarshal([]byte(`[{"data": {"text": "x"}}]`), &segs); err == nil {
		t.Error("expected error for segment without type")
	}
}

func TestSegmentsMarshalCanonicalForm(t *testing.T) {
	segs := Segments{
		TextSegment{Text: "hi"},
		MentionSegment{TargetID: "7"},
	}

	b, err := json.Marshal(segs)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	want := `[{"data":{"text":"hi"},"type":"text"},{"data":{"target_id":"7"},"type":"mention"}]`
	if string(b) != want {
		t.Errorf("Marshal() = %s, want %s", b, want)
	}
}

func TestNoticeValidate(t *testing.T) {
	tests := []struct {
		name    string
		notice  Notice
		wantErr bool
	}{
		{
			name:   "poke",
			notice: Notice{Kind: NoticePoke, GroupID: "g", ActorID: "a", TargetID: "b"},
		},
		{
			name:    "poke without target",
			notice:  Notice{Kind: NoticePoke, GroupID: "g", ActorID: "a"},
			wantErr: true,
		},
		{
			name:   "reaction",
			notice: Notice{Kind: NoticeReaction, GroupID: "g", ActorID: "a", MessageID: "m"},
		},
		{
			name:    "reaction without message",
			notice:  Notice{Kind: NoticeReaction, GroupID: "g", ActorID: "a"},
			wantErr: true,
		},
		{
			name:   "recall by target only",
			notice: Notice{Kind: NoticeRecall, GroupID: "g", ActorID: "a", TargetID: "a"},
		},
		{
			name:    "unknown kind",
			notice:  Notice{Kind: "wave", GroupID: "g", ActorID: "a"},
			wantErr: true,
		},
		{
			name:    "missing group",
			notice:  Notice{Kind: NoticePoke, ActorID: "a", TargetID: "b"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.notice.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestEnvelopeEvent(t *testing.T) {
	env := Envelope{Kind: EnvelopeMessage, Message: &Message{ID: "m"}}
	ev, err := env.Event()
	if err != nil {
		t.Fatalf("Event() error = %v", err)
	}
	if _, ok := ev.(*Message); !ok {
		t.Errorf("Event() = %T, want *Message", ev)
	}

	if _, err := (&Envelope{Kind: EnvelopeNotice}).Event(); err == nil {
		t.Error("expected error for notice envelope without body")
	}
	if _, err := (&Envelope{Kind: "other"}).Event(); err == nil {
		t.Error("expected error for unknown envelope kind")
	}
}
