// Package registry models the host's message-ignore extension point as an
// explicit ordered list of named predicates, plus the chat-order decorator
// the filter installs next to it. The registry is mutated only at mode
// enable/disable, never during message evaluation.
package registry

import "adfilter/internal/domain"

// Predicate decides whether a message should be hidden. Name is the stable
// identity used for registration and provenance.
type Predicate interface {
	Name() string
	ShouldIgnore(msg *domain.Message) bool
}

// Registry is the ordered collection of ignore predicates.
type Registry struct {
	preds []Predicate
}

func New() *Registry {
	return &Registry{}
}

// Add registers a predicate. Adding a name that is already present is a
// no-op; there is never more than one predicate per identity.
func (r *Registry) Add(p Predicate) {
	if r.Contains(p.Name()) {
		return
	}
	r.preds = append(r.preds, p)
}

// Remove unregisters exactly the named predicate, leaving the rest in order.
func (r *Registry) Remove(name string) {
	for i, p := range r.preds {
		if p.Name() == name {
			r.preds = append(r.preds[:i], r.preds[i+1:]...)
			return
		}
	}
}

func (r *Registry) Contains(name string) bool {
	for _, p := range r.preds {
		if p.Name() == name {
			return true
		}
	}
	return false
}

func (r *Registry) Len() int {
	return len(r.preds)
}

// IgnoredBy returns the name of the first predicate that ignores the message,
// evaluated in registration order. Computed fresh on every call: host state
// may have changed since the last one.
func (r *Registry) IgnoredBy(msg *domain.Message) (string, bool) {
	for _, p := range r.preds {
		if p.ShouldIgnore(msg) {
			return p.Name(), true
		}
	}
	return "", false
}

// IsIgnored reports whether any registered predicate ignores the message.
func (r *Registry) IsIgnored(msg *domain.Message) bool {
	_, ok := r.IgnoredBy(msg)
	return ok
}
