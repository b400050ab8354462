package domain

import "time"

// MessageEvent is what the host publishes for every message it processes:
// the message itself plus the offline chat snapshot it already holds. The
// filter never asks the host for more than this.
type MessageEvent struct {
	Message Message
	Chat    Chat
}

// Suppression records one message hidden by the advert filter.
type Suppression struct {
	ID        string
	MessageID string
	ChatID    int64
	ChatTitle string
	URL       string
	Action    string
	CreatedAt time.Time
}
