package registry

import (
	log "github.com/sirupsen/logrus"
)

// Mode ties the filter's two installations together: the ignore predicate
// and, when an override value is configured, the chat-order wrapper. Both go
// in and out as a unit.
type Mode struct {
	reg       *Registry
	slot      *OrderSlot
	predicate Predicate

	// orderOverride is the sort key substituted for chats whose last message
	// this filter suppressed; empty means ordering is left alone.
	orderOverride string

	enabled  bool
	original OrderFunc
}

func NewMode(reg *Registry, slot *OrderSlot, predicate Predicate, orderOverride string) *Mode {
	return &Mode{
		reg:           reg,
		slot:          slot,
		predicate:     predicate,
		orderOverride: orderOverride,
	}
}

// Enable installs the predicate and the order wrapper. Calling it while
// already enabled changes nothing.
func (m *Mode) Enable() {
	if m.enabled {
		return
	}

	m.reg.Add(m.predicate)

	if m.orderOverride != "" && m.slot != nil {
		m.original = m.slot.Get()
		m.slot.Set(overrideOrder(m.original, m.reg, m.predicate.Name(), m.orderOverride))
	}

	m.enabled = true
	log.WithField("predicate", m.predicate.Name()).Info("advert filter enabled")
}

// Disable removes exactly what Enable installed. Calling it while already
// disabled is a no-op.
func (m *Mode) Disable() {
	if !m.enabled {
		return
	}

	if m.original != nil {
		m.slot.Set(m.original)
		m.original = nil
	}

	m.reg.Remove(m.predicate.Name())

	m.enabled = false
	log.WithField("predicate", m.predicate.Name()).Info("advert filter disabled")
}

func (m *Mode) Enabled() bool {
	return m.enabled
}
