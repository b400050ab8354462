package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"adfilter/internal/domain"
)

// Client caches offline chat full-info between process runs. It is written
// from the event loop when chat snapshots arrive and read before evaluation;
// evaluation itself only ever sees the in-memory copy.
type Client struct {
	rdb *redis.Client
}

func New(addr string) (*Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr: addr,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Client{rdb: rdb}, nil
}

func (c *Client) Close() error {
	return c.rdb.Close()
}

func chatKey(id int64) string {
	return "chat:" + strconv.FormatInt(id, 10)
}

// SaveChat stores the chat snapshot. LastMessage is process-local state and
// is not persisted.
func (c *Client) SaveChat(ctx context.Context, chat *domain.Chat) error {
	snapshot := *chat
	snapshot.LastMessage = nil

	data, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("marshal chat %d: %w", chat.ID, err)
	}

	return c.rdb.Set(ctx, chatKey(chat.ID), data, 0).Err()
}

// GetChat returns the cached snapshot or nil when the chat is unknown.
func (c *Client) GetChat(ctx context.Context, id int64) (*domain.Chat, error) {
	data, err := c.rdb.Get(ctx, chatKey(id)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var chat domain.Chat
	if err := json.Unmarshal(data, &chat); err != nil {
		return nil, fmt.Errorf("unmarshal chat %d: %w", id, err)
	}

	return &chat, nil
}

// ChatIDs lists every cached chat id.
func (c *Client) ChatIDs(ctx context.Context) ([]int64, error) {
	keys, err := c.rdb.Keys(ctx, "chat:*").Result()
	if err != nil {
		return nil, err
	}

	ids := make([]int64, 0, len(keys))
	for _, key := range keys {
		id, err := strconv.ParseInt(key[len("chat:"):], 10, 64)
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}

	return ids, nil
}
