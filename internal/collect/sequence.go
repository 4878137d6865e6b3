package collect

import (
	"sync"
	"time"
)

type senderKey struct {
	groupID  string
	senderID string
}

type textEntry struct {
	text string
	at   time.Time

	// messageID and before describe the message that wrote this entry, so a
	// retried message observes the state that preceded its first attempt.
	messageID string
	before    Prior
}

// SequenceCache remembers, per group, the latest message time and, per
// (group, sender), the sender's last text. It is best-effort: it only feeds
// topic and repeat detection and is never a source of truth.
type SequenceCache struct {
	mu     sync.Mutex
	groups map[string]time.Time
	texts  map[senderKey]textEntry
}

func NewSequenceCache() *SequenceCache {
	return &SequenceCache{
		groups: make(map[string]time.Time),
		texts:  make(map[senderKey]textEntry),
	}
}

// Swap records a message and returns the state observed before it. The
// group clock only moves forward; the sender's last text follows arrival
// order. Swapping the same message id again, as a retry after a failed
// persist does, returns the original prior state and records nothing.
func (c *SequenceCache) Swap(groupID, senderID, messageID string, at time.Time, text string) Prior {
	c.mu.Lock()
	defer c.mu.Unlock()

	key := senderKey{groupID: groupID, senderID: senderID}
	prevText, hasText := c.texts[key]
	if hasText && messageID != "" && prevText.messageID == messageID {
		return prevText.before
	}

	prior := Prior{
		LastGroupMessage: c.groups[groupID],
		LastText:         prevText.text,
		HasLastText:      hasText,
	}

	if at.After(prior.LastGroupMessage) {
		c.groups[groupID] = at
	}
	c.texts[key] = textEntry{text: text, at: at, messageID: messageID, before: prior}
	return prior
}

// Peek returns the current state without recording anything.
func (c *SequenceCache) Peek(groupID, senderID string) Prior {
	c.mu.Lock()
	defer c.mu.Unlock()

	prev, ok := c.texts[senderKey{groupID: groupID, senderID: senderID}]
	return Prior{
		LastGroupMessage: c.groups[groupID],
		LastText:         prev.text,
		HasLastText:      ok,
	}
}

// Merge advances the cache with state learned elsewhere (a history backfill).
// Nothing moves backwards: older group clocks and older texts are ignored.
func (c *SequenceCache) Merge(groupID string, lastAt time.Time, lastTexts map[string]TextState) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if lastAt.After(c.groups[groupID]) {
		c.groups[groupID] = lastAt
	}
	for senderID, ts := range lastTexts {
		key := senderKey{groupID: groupID, senderID: senderID}
		if cur, ok := c.texts[key]; ok && !ts.At.After(cur.at) {
			continue
		}
		c.texts[key] = textEntry{text: ts.Text, at: ts.At}
	}
}

// TextState is a sender's last text and when it was sent.
type TextState struct {
	Text string
	At   time.Time
}

// LocalSequence is an unsynchronized sequence state used to replay a batch
// of messages in order.
type LocalSequence struct {
	LastAt time.Time
	Texts  map[string]TextState
}

func NewLocalSequence() *LocalSequence {
	return &LocalSequence{Texts: make(map[string]TextState)}
}

// Advance records a message and returns the state observed before it.
func (s *LocalSequence) Advance(senderID string, at time.Time, text string) Prior {
	prev, ok := s.Texts[senderID]
	prior := Prior{LastGroupMessage: s.LastAt, LastText: prev.Text, HasLastText: ok}

	if at.After(s.LastAt) {
		s.LastAt = at
	}
	s.Texts[senderID] = TextState{Text: text, At: at}
	return prior
}
