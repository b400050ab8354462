package domain

// Chat is the host-owned view of one chat. Description comes from the host's
// offline full-info cache only; an empty string means "not cached", the
// filter never triggers a fetch to fill it.
type Chat struct {
	ID          int64
	Kind        ChatKind
	Title       string
	Username    string // empty when the chat has no public username
	Verified    bool
	Description string
	LastMessage *Message
}

type ChatKind string

const (
	ChatChannel ChatKind = "channel"
	ChatGroup   ChatKind = "group"
	ChatPrivate ChatKind = "private"
)
