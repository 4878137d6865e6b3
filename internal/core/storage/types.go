package storage

import "time"

// DayLayout is the textual form of a metric day.
const DayLayout = "2006-01-02"

// Key identifies one daily metric record.
type Key struct {
	Day     string
	GroupID string
	UserID  string
}

// NewKey builds a key for the calendar day of t in loc.
func NewKey(t time.Time, loc *time.Location, groupID, userID string) Key {
	return Key{Day: t.In(loc).Format(DayLayout), GroupID: groupID, UserID: userID}
}

// Less orders keys by (day, group, user). Transactions touching several keys
// apply them in this order.
func (k Key) Less(o Key) bool {
	if k.Day != o.Day {
		return k.Day < o.Day
	}
	if k.GroupID != o.GroupID {
		return k.GroupID < o.GroupID
	}
	return k.UserID < o.UserID
}

// Delta is a set of non-negative counter increments.
type Delta struct {
	MessagesSent      int64 `json:"messages_sent"`
	TextLength        int64 `json:"text_length"`
	ImagesSent        int64 `json:"images_sent"`
	RepliesSent       int64 `json:"replies_sent"`
	RepliesReceived   int64 `json:"replies_received"`
	PokesSent         int64 `json:"pokes_sent"`
	PokesReceived     int64 `json:"pokes_received"`
	ReactionsSent     int64 `json:"reactions_sent"`
	ReactionsReceived int64 `json:"reactions_received"`
	Recalls           int64 `json:"recalls"`
	Topics            int64 `json:"topics"`
	Repeats           int64 `json:"repeats"`
}

// Add returns the field-wise sum of d and o.
func (d Delta) Add(o Delta) Delta {
	return Delta{
		MessagesSent:      d.MessagesSent + o.MessagesSent,
		TextLength:        d.TextLength + o.TextLength,
		ImagesSent:        d.ImagesSent + o.ImagesSent,
		RepliesSent:       d.RepliesSent + o.RepliesSent,
		RepliesReceived:   d.RepliesReceived + o.RepliesReceived,
		PokesSent:         d.PokesSent + o.PokesSent,
		PokesReceived:     d.PokesReceived + o.PokesReceived,
		ReactionsSent:     d.ReactionsSent + o.ReactionsSent,
		ReactionsReceived: d.ReactionsReceived + o.ReactionsReceived,
		Recalls:           d.Recalls + o.Recalls,
		Topics:            d.Topics + o.Topics,
		Repeats:           d.Repeats + o.Repeats,
	}
}

// IsZero reports whether applying d would change nothing.
func (d Delta) IsZero() bool {
	return d == Delta{}
}

// Columns returns the counter columns paired with their increments, in
// schema order.
func (d Delta) Columns() []ColumnDelta {
	return []ColumnDelta{
		{"messages_sent", d.MessagesSent},
		{"text_length", d.TextLength},
		{"images_sent", d.ImagesSent},
		{"replies_sent", d.RepliesSent},
		{"replies_received", d.RepliesReceived},
		{"pokes_sent", d.PokesSent},
		{"pokes_received", d.PokesReceived},
		{"reactions_sent", d.ReactionsSent},
		{"reactions_received", d.ReactionsReceived},
		{"recalls", d.Recalls},
		{"topics", d.Topics},
		{"repeats", d.Repeats},
	}
}

// ColumnDelta is one counter column and the amount to add to it.
type ColumnDelta struct {
	Column string
	Amount int64
}

// Deltas accumulates per-key deltas.
type Deltas map[Key]Delta

// Add merges d into the entry for key. Zero deltas are not recorded.
func (ds Deltas) Add(key Key, d Delta) {
	if d.IsZero() {
		return
	}
	ds[key] = ds[key].Add(d)
}

// Merge adds every entry of other into ds.
func (ds Deltas) Merge(other map[Key]Delta) {
	for k, d := range other {
		ds.Add(k, d)
	}
}

// DailyMetricRecord is the persisted per-(day, group, user) counter row.
type DailyMetricRecord struct {
	Key       Key       `json:"-"`
	Day       string    `json:"day"`
	GroupID   string    `json:"group_id"`
	UserID    string    `json:"user_id"`
	Counters  Delta     `json:"counters"`
	UpdatedAt time.Time `json:"updated_at"`
}

// MessageOwner is one row of the message ownership index.
type MessageOwner struct {
	MessageID string    `json:"message_id"`
	GroupID   string    `json:"group_id"`
	UserID    string    `json:"user_id"`
	SentAt    time.Time `json:"sent_at"`
}
