package collect

import (
	"time"

	v1 "github.com/aevon-lab/affinity/internal/api/v1"
	"github.com/aevon-lab/affinity/internal/core/storage"
)

// Simp measures engagement given: messages, text volume and pokes sent.
func Simp(ev v1.Event) Collection {
	var c Collection
	switch e := ev.(type) {
	case *v1.Message:
		c.add(e.SenderID, storage.Delta{MessagesSent: 1, TextLength: int64(TextLength(e))})
	case *v1.Notice:
		if e.Kind == v1.NoticePoke && e.TargetID != e.ActorID {
			c.add(e.ActorID, storage.Delta{PokesSent: 1})
		}
	}
	return c
}

// Vibe measures engagement received. Replies and reactions are deferred to
// the ownership index; poke targets are known inline.
func Vibe(ev v1.Event) Collection {
	var c Collection
	switch e := ev.(type) {
	case *v1.Message:
		replied := false
		for _, seg := range e.Segments {
			switch s := seg.(type) {
			case v1.ReplySegment:
				// Only the first reply reference counts.
				if !replied && s.MessageID != "" {
					c.Refs = append(c.Refs, Ref{Kind: RefReply, MessageID: s.MessageID, ActorID: e.SenderID})
					replied = true
				}
			case v1.MentionSegment:
				if s.TargetID != "" && s.TargetID != e.SenderID {
					c.Mentions = append(c.Mentions, s.TargetID)
				}
			case v1.TextSegment, v1.ImageSegment, v1.UnknownSegment:
			}
		}
	case *v1.Notice:
		switch e.Kind {
		case v1.NoticePoke:
			if e.TargetID != e.ActorID {
				c.add(e.TargetID, storage.Delta{PokesReceived: 1})
			}
		case v1.NoticeReaction:
			c.Refs = append(c.Refs, Ref{Kind: RefReaction, MessageID: e.MessageID, ActorID: e.ActorID})
		case v1.NoticeRecall:
		}
	}
	return c
}

// Ick measures negative behavior: recalls and verbatim repeats of the
// sender's own previous text.
func Ick(ev v1.Event, prior Prior) Collection {
	var c Collection
	switch e := ev.(type) {
	case *v1.Message:
		text := PlainText(e)
		if text != "" && prior.HasLastText && prior.LastText == text {
			c.add(e.SenderID, storage.Delta{Repeats: 1})
			c.Repeat = true
		}
	case *v1.Notice:
		if e.Kind != v1.NoticeRecall {
			break
		}
		switch {
		case e.TargetID != "":
			c.add(e.TargetID, storage.Delta{Recalls: 1})
		case e.MessageID != "":
			c.Refs = append(c.Refs, Ref{Kind: RefRecall, MessageID: e.MessageID, ActorID: e.ActorID})
		default:
			c.add(e.ActorID, storage.Delta{Recalls: 1})
		}
	}
	return c
}

// Nostalgia measures continuity: opening a new topic after a silence and
// sharing images.
func Nostalgia(ev v1.Event, prior Prior, threshold time.Duration) Collection {
	var c Collection
	m, ok := ev.(*v1.Message)
	if !ok {
		return c
	}

	images := 0
	for _, seg := range m.Segments {
		switch seg.(type) {
		case v1.ImageSegment:
			images++
		case v1.TextSegment, v1.ReplySegment, v1.MentionSegment, v1.UnknownSegment:
		}
	}

	topic := prior.LastGroupMessage.IsZero() || m.SentAt.Sub(prior.LastGroupMessage) > threshold

	d := storage.Delta{ImagesSent: int64(images)}
	if topic {
		d.Topics = 1
	}
	c.add(m.SenderID, d)
	c.Images = images
	c.Topic = topic
	return c
}
