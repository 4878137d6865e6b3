// Package collect turns single chat events into counter increments.
//
// The four collectors are pure: they look at one event plus the prior sequence
// state for its group and sender, and report what the event contributes to the
// simp, vibe, ick and nostalgia dimensions. Attributions that depend on an
// earlier message (replies, reactions, recalls without an inline target) are
// returned as references and resolved by the caller through the ownership
// index.
package collect

import (
	"strings"
	"time"
	"unicode/utf8"

	v1 "github.com/aevon-lab/affinity/internal/api/v1"
	"github.com/aevon-lab/affinity/internal/core/storage"
)

// DefaultTopicThreshold is the silence after which a message opens a new topic.
const DefaultTopicThreshold = 30 * time.Minute

// Prior is the sequence state observed before an event.
type Prior struct {
	// LastGroupMessage is the send time of the latest known message in the
	// group. Zero means the group has no known message.
	LastGroupMessage time.Time

	// LastText is the sender's previous text in the group.
	LastText    string
	HasLastText bool
}

// Increment is an inline attribution to one user.
type Increment struct {
	UserID string
	Delta  storage.Delta
}

// RefKind says how a referenced message should be attributed once resolved.
type RefKind int

const (
	RefReply RefKind = iota + 1
	RefReaction
	RefRecall
)

// Ref is an attribution deferred until the referenced message's owner is known.
type Ref struct {
	Kind      RefKind
	MessageID string
	// ActorID is the user performing the referencing action.
	ActorID string
}

// Collection is what one collector (or all of them) derived from an event.
type Collection struct {
	Increments []Increment
	Refs       []Ref

	// Mentions lists mentioned users. They are reported, not counted.
	Mentions []string

	Images int
	Topic  bool
	Repeat bool
}

func (c *Collection) add(userID string, d storage.Delta) {
	if userID == "" || d.IsZero() {
		return
	}
	c.Increments = append(c.Increments, Increment{UserID: userID, Delta: d})
}

func (c *Collection) merge(o Collection) {
	c.Increments = append(c.Increments, o.Increments...)
	c.Refs = append(c.Refs, o.Refs...)
	c.Mentions = append(c.Mentions, o.Mentions...)
	c.Images += o.Images
	c.Topic = c.Topic || o.Topic
	c.Repeat = c.Repeat || o.Repeat
}

// Collectors runs the four dimension collectors over an event.
type Collectors struct {
	TopicThreshold time.Duration
}

// New returns collectors using threshold as the topic silence, or
// DefaultTopicThreshold when threshold is not positive.
func New(threshold time.Duration) Collectors {
	if threshold <= 0 {
		threshold = DefaultTopicThreshold
	}
	return Collectors{TopicThreshold: threshold}
}

// Collect merges the output of Simp, Vibe, Ick and Nostalgia.
func (cs Collectors) Collect(ev v1.Event, prior Prior) Collection {
	var out Collection
	out.merge(Simp(ev))
	out.merge(Vibe(ev))
	out.merge(Ick(ev, prior))
	out.merge(Nostalgia(ev, prior, cs.TopicThreshold))
	return out
}

// PlainText returns the message's flattened text, falling back to the
// concatenated text segments.
func PlainText(m *v1.Message) string {
	if m.Text != "" {
		return m.Text
	}

	var b strings.Builder
	for _, seg := range m.Segments {
		switch s := seg.(type) {
		case v1.TextSegment:
			b.WriteString(s.Text)
		case v1.ImageSegment, v1.ReplySegment, v1.MentionSegment, v1.UnknownSegment:
		}
	}
	return b.String()
}

// TextLength counts characters, not bytes.
func TextLength(m *v1.Message) int {
	return utf8.RuneCountInString(PlainText(m))
}

// Resolver finds the owner of an earlier message.
type Resolver func(messageID string) (storage.MessageOwner, bool)

// Resolution is the outcome of resolving a collection's references.
type Resolution struct {
	Increments []Increment
	Replies    int
	Reactions  int
	Recalls    int
}

// Resolve turns references into increments. References that cannot be
// resolved, point into another group, or point back at the actor are
// dropped. A recall that cannot be resolved is charged to its actor.
func (c Collection) Resolve(groupID string, resolve Resolver) Resolution {
	var r Resolution
	for _, ref := range c.Refs {
		owner, ok := resolve(ref.MessageID)
		if ok && owner.GroupID != groupID {
			ok = false
		}

		switch ref.Kind {
		case RefReply:
			if !ok || owner.UserID == ref.ActorID {
				continue
			}
			r.Increments = append(r.Increments,
				Increment{UserID: owner.UserID, Delta: storage.Delta{RepliesReceived: 1}},
				Increment{UserID: ref.ActorID, Delta: storage.Delta{RepliesSent: 1}})
			r.Replies++
		case RefReaction:
			if !ok || owner.UserID == ref.ActorID {
				continue
			}
			r.Increments = append(r.Increments,
				Increment{UserID: owner.UserID, Delta: storage.Delta{ReactionsReceived: 1}},
				Increment{UserID: ref.ActorID, Delta: storage.Delta{ReactionsSent: 1}})
			r.Reactions++
		case RefRecall:
			target := ref.ActorID
			if ok {
				target = owner.UserID
			}
			r.Increments = append(r.Increments, Increment{UserID: target, Delta: storage.Delta{Recalls: 1}})
			r.Recalls++
		}
	}
	return r
}

// Deltas keys increments by (day, group, user) and sums them.
func Deltas(day, groupID string, increments ...[]Increment) storage.Deltas {
	out := storage.Deltas{}
	for _, incs := range increments {
		for _, inc := range incs {
			out.Add(storage.Key{Day: day, GroupID: groupID, UserID: inc.UserID}, inc.Delta)
		}
	}
	return out
}
