package collect

import (
	"testing"
	"time"

	v1 "github.com/aevon-lab/affinity/internal/api/v1"
	"github.com/aevon-lab/affinity/internal/core/storage"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2026, 2, 8, 9, 0, 0, 0, time.UTC)

func textMessage(id, sender, text string, at time.Time) *v1.Message {
	return &v1.Message{ID: id, GroupID: "g1", SenderID: sender, Text: text, SentAt: at}
}

func sum(incs []Increment, userID string) storage.Delta {
	var d storage.Delta
	for _, inc := range incs {
		if inc.UserID == userID {
			d = d.Add(inc.Delta)
		}
	}
	return d
}

func TestSimp_CountsRunesNotBytes(t *testing.T) {
	c := Simp(textMessage("m1", "u1", "你好ab", t0))
	require.Equal(t, storage.Delta{MessagesSent: 1, TextLength: 4}, sum(c.Increments, "u1"))
}

func TestSimp_EmptyMessageStillCounts(t *testing.T) {
	c := Simp(&v1.Message{ID: "m1", GroupID: "g1", SenderID: "u1"})
	require.Equal(t, storage.Delta{MessagesSent: 1}, sum(c.Increments, "u1"))
}

func TestPlainText_FallsBackToSegments(t *testing.T) {
	m := &v1.Message{Segments: v1.Segments{
		v1.TextSegment{Text: "hello "},
		v1.ImageSegment{URL: "x"},
		v1.TextSegment{Text: "world"},
	}}
	require.Equal(t, "hello world", PlainText(m))

	m.Text = "flat"
	require.Equal(t, "flat", PlainText(m))
}

func TestIck_RepeatDetection(t *testing.T) {
	tests := []struct {
		name   string
		prior  Prior
		text   string
		repeat bool
	}{
		{name: "same text", prior: Prior{LastText: "hi", HasLastText: true}, text: "hi", repeat: true},
		{name: "case differs", prior: Prior{LastText: "Hi", HasLastText: true}, text: "hi"},
		{name: "different text", prior: Prior{LastText: "hi", HasLastText: true}, text: "hey"},
		{name: "no previous text", prior: Prior{}, text: "hi"},
		{name: "empty never repeats", prior: Prior{LastText: "", HasLastText: true}, text: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Ick(textMessage("m", "u1", tt.text, t0), tt.prior)
			require.Equal(t, tt.repeat, c.Repeat)
			if tt.repeat {
				require.Equal(t, int64(1), sum(c.Increments, "u1").Repeats)
			} else {
				require.Empty(t, c.Increments)
			}
		})
	}
}

func TestNostalgia_TopicDetection(t *testing.T) {
	tests := []struct {
		name  string
		last  time.Time
		at    time.Time
		topic bool
	}{
		{name: "first message in group", at: t0, topic: true},
		{name: "gap above threshold", last: t0, at: t0.Add(31 * time.Minute), topic: true},
		{name: "gap exactly threshold", last: t0, at: t0.Add(30 * time.Minute)},
		{name: "gap below threshold", last: t0, at: t0.Add(5 * time.Minute)},
		{name: "older than last", last: t0, at: t0.Add(-time.Hour)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Nostalgia(textMessage("m", "u1", "x", tt.at), Prior{LastGroupMessage: tt.last}, DefaultTopicThreshold)
			require.Equal(t, tt.topic, c.Topic)
		})
	}
}

func TestNostalgia_CountsImages(t *testing.T) {
	m := &v1.Message{ID: "m", GroupID: "g1", SenderID: "u1", SentAt: t0, Segments: v1.Segments{
		v1.ImageSegment{URL: "a"}, v1.TextSegment{Text: "look"}, v1.ImageSegment{URL: "b"},
	}}
	c := Nostalgia(m, Prior{LastGroupMessage: t0}, DefaultTopicThreshold)
	require.Equal(t, 2, c.Images)
	require.Equal(t, storage.Delta{ImagesSent: 2}, sum(c.Increments, "u1"))
}

func TestVibe_MentionsAreReportedNotCounted(t *testing.T) {
	m := &v1.Message{ID: "m", GroupID: "g1", SenderID: "u1", Segments: v1.Segments{
		v1.MentionSegment{TargetID: "u2"}, v1.MentionSegment{TargetID: "u3"},
	}}
	c := Vibe(m)
	require.Equal(t, []string{"u2", "u3"}, c.Mentions)
	require.Empty(t, c.Increments)
	require.Empty(t, c.Refs)
}

func TestVibe_SelfMentionIsIgnored(t *testing.T) {
	m := &v1.Message{ID: "m", GroupID: "g1", SenderID: "u1", Segments: v1.Segments{
		v1.MentionSegment{TargetID: "u1"}, v1.MentionSegment{TargetID: "u2"},
	}}
	require.Equal(t, []string{"u2"}, Vibe(m).Mentions)
}

func TestVibe_PokeTargetIsInline(t *testing.T) {
	n := &v1.Notice{Kind: v1.NoticePoke, GroupID: "g1", ActorID: "u1", TargetID: "u2"}
	all := New(0).Collect(n, Prior{})

	require.Equal(t, storage.Delta{PokesSent: 1}, sum(all.Increments, "u1"))
	require.Equal(t, storage.Delta{PokesReceived: 1}, sum(all.Increments, "u2"))
}

func TestVibe_SelfPokeCountsNothing(t *testing.T) {
	n := &v1.Notice{Kind: v1.NoticePoke, GroupID: "g1", ActorID: "u1", TargetID: "u1"}
	require.Empty(t, New(0).Collect(n, Prior{}).Increments)
}

func TestResolve(t *testing.T) {
	owners := map[string]storage.MessageOwner{
		"orig-u2":   {MessageID: "orig-u2", GroupID: "g1", UserID: "u2"},
		"orig-u1":   {MessageID: "orig-u1", GroupID: "g1", UserID: "u1"},
		"other-grp": {MessageID: "other-grp", GroupID: "g9", UserID: "u2"},
	}
	resolve := func(id string) (storage.MessageOwner, bool) {
		o, ok := owners[id]
		return o, ok
	}

	tests := []struct {
		name    string
		ref     Ref
		wantU1  storage.Delta
		wantU2  storage.Delta
		replies int
	}{
		{
			name:    "reply to another member",
			ref:     Ref{Kind: RefReply, MessageID: "orig-u2", ActorID: "u1"},
			wantU1:  storage.Delta{RepliesSent: 1},
			wantU2:  storage.Delta{RepliesReceived: 1},
			replies: 1,
		},
		{
			name: "reply to self",
			ref:  Ref{Kind: RefReply, MessageID: "orig-u1", ActorID: "u1"},
		},
		{
			name: "unresolved reply",
			ref:  Ref{Kind: RefReply, MessageID: "unknown", ActorID: "u1"},
		},
		{
			name: "reply into another group",
			ref:  Ref{Kind: RefReply, MessageID: "other-grp", ActorID: "u1"},
		},
		{
			name:   "reaction",
			ref:    Ref{Kind: RefReaction, MessageID: "orig-u2", ActorID: "u1"},
			wantU1: storage.Delta{ReactionsSent: 1},
			wantU2: storage.Delta{ReactionsReceived: 1},
		},
		{
			name:   "recall charged to the message owner",
			ref:    Ref{Kind: RefRecall, MessageID: "orig-u2", ActorID: "u1"},
			wantU2: storage.Delta{Recalls: 1},
		},
		{
			name:   "unresolved recall charged to the actor",
			ref:    Ref{Kind: RefRecall, MessageID: "unknown", ActorID: "u1"},
			wantU1: storage.Delta{Recalls: 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Collection{Refs: []Ref{tt.ref}}.Resolve("g1", resolve)
			require.Equal(t, tt.wantU1, sum(r.Increments, "u1"))
			require.Equal(t, tt.wantU2, sum(r.Increments, "u2"))
			require.Equal(t, tt.replies, r.Replies)
		})
	}
}

func TestDeltas_MergesPerUser(t *testing.T) {
	ds := Deltas("2026-02-08", "g1",
		[]Increment{{UserID: "u1", Delta: storage.Delta{MessagesSent: 1}}},
		[]Increment{{UserID: "u1", Delta: storage.Delta{Topics: 1}}, {UserID: "u2", Delta: storage.Delta{RepliesReceived: 1}}},
	)
	require.Len(t, ds, 2)
	require.Equal(t, storage.Delta{MessagesSent: 1, Topics: 1}, ds[storage.Key{Day: "2026-02-08", GroupID: "g1", UserID: "u1"}])
}
