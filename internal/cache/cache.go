// Package cache provides an optional shared cache for age-band
// probability tables and parameter sets across multiple orchestrator
// processes running a parameter sweep, plus a pub/sub channel used to
// broadcast run-status change events to any subscriber.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const runStatusChannel = "sim:run-status"

// Cache wraps a redis client with the narrow surface the orchestrator
// ambient stack needs: cached parameter blobs and run-status pub/sub.
type Cache struct {
	client *redis.Client
}

// New connects to the redis instance described by url (e.g.
// "redis://localhost:6379/0").
func New(url string) (*Cache, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("cache: parse redis url: %w", err)
	}
	return &Cache{client: redis.NewClient(opts)}, nil
}

// PutParameters caches a JSON-encoded parameter set under key, expiring
// after ttl so a stale sweep configuration never lingers indefinitely.
func (c *Cache) PutParameters(ctx context.Context, key string, params any, ttl time.Duration) error {
	data, err := json.Marshal(params)
	if err != nil {
		return fmt.Errorf("cache: marshal parameters: %w", err)
	}
	if err := c.client.Set(ctx, key, data, ttl).Err(); err != nil {
		return fmt.Errorf("cache: set %q: %w", key, err)
	}
	return nil
}

// GetParameters retrieves and decodes a previously cached parameter set
// into out. Returns redis.Nil (wrapped) if the key is absent.
func (c *Cache) GetParameters(ctx context.Context, key string, out any) error {
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		return fmt.Errorf("cache: get %q: %w", key, err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("cache: unmarshal %q: %w", key, err)
	}
	return nil
}

// RunStatusEvent is published whenever a run's lifecycle state changes
// (started, stopped, failed, completed).
type RunStatusEvent struct {
	RunID  string `json:"run_id"`
	Status string `json:"status"`
}

// PublishRunStatus broadcasts a run-status change to every subscriber
// of the run-status channel (see SubscribeRunStatus).
func (c *Cache) PublishRunStatus(ctx context.Context, ev RunStatusEvent) error {
	data, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("cache: marshal run status: %w", err)
	}
	if err := c.client.Publish(ctx, runStatusChannel, data).Err(); err != nil {
		return fmt.Errorf("cache: publish run status: %w", err)
	}
	return nil
}

// SubscribeRunStatus returns a channel of decoded RunStatusEvents. The
// caller must cancel ctx to stop the subscription and drain the channel.
func (c *Cache) SubscribeRunStatus(ctx context.Context) <-chan RunStatusEvent {
	sub := c.client.Subscribe(ctx, runStatusChannel)
	out := make(chan RunStatusEvent)
	go func() {
		defer close(out)
		defer sub.Close()
		ch := sub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				var ev RunStatusEvent
				if err := json.Unmarshal([]byte(msg.Payload), &ev); err != nil {
					continue
				}
				out <- ev
			}
		}
	}()
	return out
}

// Close releases the underlying redis client.
func (c *Cache) Close() error { return c.client.Close() }
