package registry

import (
	"sync"

	"adfilter/internal/domain"
)

// OrderFunc computes the sort key the host uses for a chat. Larger keys sort
// first in the host's chat list.
type OrderFunc func(chat *domain.Chat) string

// OrderSlot is the host's chat-ordering extension point: a single slot other
// components may wrap. Swaps happen only at mode transitions, but callers may
// be computing order keys on other goroutines at that moment, so the slot
// guards the installed function itself.
type OrderSlot struct {
	mu sync.RWMutex
	fn OrderFunc
}

func NewOrderSlot(fn OrderFunc) *OrderSlot {
	return &OrderSlot{fn: fn}
}

// Order computes the current sort key for a chat.
func (s *OrderSlot) Order(chat *domain.Chat) string {
	s.mu.RLock()
	fn := s.fn
	s.mu.RUnlock()
	return fn(chat)
}

// Get returns the currently installed function.
func (s *OrderSlot) Get() OrderFunc {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.fn
}

// Set installs fn as the ordering function.
func (s *OrderSlot) Set(fn OrderFunc) {
	s.mu.Lock()
	s.fn = fn
	s.mu.Unlock()
}

// overrideOrder substitutes a fixed sort key for chats whose last message was
// ignored specifically by the named predicate; every other chat is delegated
// to the wrapped function untouched.
func overrideOrder(next OrderFunc, reg *Registry, predicate, value string) OrderFunc {
	return func(chat *domain.Chat) string {
		if chat != nil && chat.LastMessage != nil {
			if name, ok := reg.IgnoredBy(chat.LastMessage); ok && name == predicate {
				return value
			}
		}
		return next(chat)
	}
}
