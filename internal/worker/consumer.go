package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"adfilter/internal/classifier"
	"adfilter/internal/domain"
	"adfilter/internal/queue"
	"adfilter/internal/redis"
	"adfilter/internal/registry"
	"adfilter/internal/storage"
)

// Broadcaster pushes a rendered event to connected dashboard clients.
type Broadcaster interface {
	Broadcast(msg string)
}

// Notifier matches notifier.Notifier; declared on the consumer side so tests
// can stub it.
type Notifier interface {
	Notify(ctx context.Context, s domain.Suppression) error
}

// Consumer is the host event loop: it receives message events, evaluates the
// ignore-predicate registry inline for each one, and records suppressions
// made by the advert filter. It also holds the in-memory chat snapshots that
// evaluation reads, so no predicate call ever leaves the process.
type Consumer struct {
	consumer    queue.Consumer
	repo        storage.SuppressionRepository
	publisher   queue.Publisher
	notifier    Notifier
	broadcaster Broadcaster
	cache       *redis.Client
	registry    *registry.Registry
	slot        *registry.OrderSlot
	cls         *classifier.Classifier
	verbose     bool

	mu    sync.RWMutex
	chats map[int64]*domain.Chat
}

func NewConsumer(
	c queue.Consumer,
	repo storage.SuppressionRepository,
	pub queue.Publisher,
	n Notifier,
	b Broadcaster,
	cache *redis.Client,
	reg *registry.Registry,
	slot *registry.OrderSlot,
	cls *classifier.Classifier,
	verbose bool,
) *Consumer {
	return &Consumer{
		consumer:    c,
		repo:        repo,
		publisher:   pub,
		notifier:    n,
		broadcaster: b,
		cache:       cache,
		registry:    reg,
		slot:        slot,
		cls:         cls,
		verbose:     verbose,
		chats:       make(map[int64]*domain.Chat),
	}
}

// SetBroadcaster wires the dashboard broadcaster after construction; the
// server needs the consumer for its chat list, so one of the two is attached
// late.
func (w *Consumer) SetBroadcaster(b Broadcaster) {
	w.broadcaster = b
}

// ChatForMessage resolves a message to its chat from in-memory state only.
// Unknown chats return nil, which makes the filter pass the message through.
// The returned snapshot is a copy: callers read it without holding the lock
// while the event loop keeps updating the live entry.
func (w *Consumer) ChatForMessage(msg *domain.Message) *domain.Chat {
	w.mu.RLock()
	defer w.mu.RUnlock()
	chat, ok := w.chats[msg.ChatID]
	if !ok {
		return nil
	}
	return snapshotChat(chat)
}

// snapshotChat copies a chat (and its last message) so the copy stays valid
// after the lock is released. Must be called with w.mu held.
func snapshotChat(chat *domain.Chat) *domain.Chat {
	c := *chat
	if chat.LastMessage != nil {
		msg := *chat.LastMessage
		c.LastMessage = &msg
	}
	return &c
}

// Warm preloads chat snapshots persisted by previous runs.
func (w *Consumer) Warm(ctx context.Context) error {
	if w.cache == nil {
		return nil
	}

	ids, err := w.cache.ChatIDs(ctx)
	if err != nil {
		return err
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	for _, id := range ids {
		chat, err := w.cache.GetChat(ctx, id)
		if err != nil {
			log.WithError(err).Warnf("skipping cached chat %d", id)
			continue
		}
		if chat != nil {
			w.chats[id] = chat
		}
	}

	log.Infof("warmed %d chat snapshots", len(w.chats))
	return nil
}

func (w *Consumer) Start(ctx context.Context) error {
	return w.consumer.Consume(ctx, w.HandleEvent)
}

// HandleEvent processes one host message event synchronously.
func (w *Consumer) HandleEvent(ev domain.MessageEvent) error {
	ctx := context.Background()

	chat := w.upsertChat(ev.Chat)

	if w.cache != nil {
		if err := w.cache.SaveChat(ctx, chat); err != nil {
			log.WithError(err).Warn("chat cache write failed")
		}
	}

	msg := ev.Message

	// Inline evaluation, exactly what the host does before rendering the
	// message.
	name, ignored := w.registry.IgnoredBy(&msg)

	w.setLastMessage(chat.ID, &msg)

	if !ignored {
		return nil
	}

	log.WithFields(log.Fields{
		"message":   msg.ID,
		"chat":      chat.Title,
		"predicate": name,
	}).Debug("message ignored")

	// Only suppressions made by this filter are recorded; other predicates
	// belong to their owners.
	if name != classifier.PredicateName {
		return nil
	}

	cand, res, ok := w.cls.Evidence(&msg, chat)
	if !ok {
		return nil
	}

	w.record(ctx, domain.Suppression{
		ID:        uuid.New().String(),
		MessageID: msg.ID,
		ChatID:    chat.ID,
		ChatTitle: chat.Title,
		URL:       cand.URL,
		Action:    string(res.Action),
		CreatedAt: time.Now(),
	})

	return nil
}

// record persists and fans out one suppression. Every sink is advisory: a
// failure never undoes the classification.
func (w *Consumer) record(ctx context.Context, s domain.Suppression) {
	if w.repo != nil {
		if err := w.repo.Save(ctx, s); err != nil {
			log.WithError(err).Error("saving suppression failed")
		}
	}

	if w.publisher != nil {
		if err := w.publisher.Publish(ctx, s); err != nil {
			log.WithError(err).Error("publishing suppression failed")
		}
	}

	if w.notifier != nil && w.verbose {
		if err := w.notifier.Notify(ctx, s); err != nil {
			log.WithError(err).Error("notifying suppression failed")
		}
	}

	if w.broadcaster != nil {
		if data, err := json.Marshal(s); err == nil {
			w.broadcaster.Broadcast(string(data))
		}
	}
}

func (w *Consumer) upsertChat(snapshot domain.Chat) *domain.Chat {
	w.mu.Lock()
	defer w.mu.Unlock()

	existing, ok := w.chats[snapshot.ID]
	if !ok {
		chat := snapshot
		w.chats[snapshot.ID] = &chat
		return &chat
	}

	last := existing.LastMessage
	*existing = snapshot
	existing.LastMessage = last
	return existing
}

func (w *Consumer) setLastMessage(chatID int64, msg *domain.Message) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if chat, ok := w.chats[chatID]; ok {
		chat.LastMessage = msg
	}
}

// ChatView is one row of the ordered chat list.
type ChatView struct {
	ID       int64  `json:"id"`
	Title    string `json:"title"`
	Username string `json:"username,omitempty"`
	Order    string `json:"order"`
}

// Chats returns every known chat with its current sort key, largest first,
// which is the order the host's chat list would show.
func (w *Consumer) Chats() []ChatView {
	w.mu.RLock()
	chats := make([]*domain.Chat, 0, len(w.chats))
	for _, chat := range w.chats {
		// Order keys are computed below, outside the lock; hand out copies so
		// the event loop can keep writing the live entries.
		chats = append(chats, snapshotChat(chat))
	}
	w.mu.RUnlock()

	views := make([]ChatView, 0, len(chats))
	for _, chat := range chats {
		views = append(views, ChatView{
			ID:       chat.ID,
			Title:    chat.Title,
			Username: chat.Username,
			Order:    w.slot.Order(chat),
		})
	}

	sort.Slice(views, func(i, j int) bool {
		if views[i].Order != views[j].Order {
			return views[i].Order > views[j].Order
		}
		return views[i].ID < views[j].ID
	})

	return views
}

// BaseOrder stands in for the host's own chat ordering: a zero-padded
// last-activity timestamp, so plain string comparison follows time order.
func BaseOrder(chat *domain.Chat) string {
	var ts int64
	if chat != nil && chat.LastMessage != nil && chat.LastMessage.SentAt.Unix() > 0 {
		ts = chat.LastMessage.SentAt.Unix()
	}
	return fmt.Sprintf("%020d", ts)
}
