package domain

import "time"

// Message is the host-owned view of one chat message. The filter only reads
// it; the host remains the source of truth.
type Message struct {
	ID       string
	ChatID   int64
	Text     string // body or caption, empty when the message has neither
	Entities []Entity
	Keyboard *Keyboard
	SentAt   time.Time
}

// Entity is one annotation inside the message text.
type Entity struct {
	Kind  EntityKind
	Label string // the annotated substring as displayed
	URL   string // target, set for EntityURL only
}

type EntityKind string

const (
	EntityURL     EntityKind = "url"
	EntityMention EntityKind = "mention"
	EntityHashtag EntityKind = "hashtag"
)

// Keyboard is an inline keyboard attached to a message, rows top to bottom.
type Keyboard struct {
	Rows [][]Button
}

type Button struct {
	Kind ButtonKind
	Text string
	URL  string // set for ButtonURL only
}

type ButtonKind string

const (
	ButtonURL      ButtonKind = "url"
	ButtonCallback ButtonKind = "callback"
	ButtonOther    ButtonKind = "other"
)

// LinkCandidate is one (label, url) pair pulled out of a message. Ephemeral,
// never persisted.
type LinkCandidate struct {
	Label string
	URL   string
}
