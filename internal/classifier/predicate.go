package classifier

import "adfilter/internal/domain"

// PredicateName is the stable identity this filter registers under in the
// host's ignore-predicate list.
const PredicateName = "channel-adverts"

// ChatResolver maps a message to its owning chat using the host's offline
// state. A nil result means the chat is unknown right now.
type ChatResolver interface {
	ChatForMessage(msg *domain.Message) *domain.Chat
}

// Predicate is the registry-facing face of the classifier: chat resolution,
// gate, then per-candidate classification.
type Predicate struct {
	gate  *Gate
	cls   *Classifier
	chats ChatResolver
}

func NewPredicate(gate *Gate, cls *Classifier, chats ChatResolver) *Predicate {
	return &Predicate{gate: gate, cls: cls, chats: chats}
}

func (p *Predicate) Name() string {
	return PredicateName
}

// ShouldIgnore reports whether the message is an advert and should be hidden.
// Messages without a resolvable chat always pass.
func (p *Predicate) ShouldIgnore(msg *domain.Message) bool {
	chat := p.chats.ChatForMessage(msg)
	if chat == nil {
		return false
	}
	if !p.gate.Matches(chat) {
		return false
	}
	return p.cls.IsAdvert(msg, chat)
}
