package realtime

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/DhavalSuthar-24/skillswap/pkg/logging"
	"github.com/DhavalSuthar-24/skillswap/pkg/metrics"
)

const channelPrefix = "realtime:"

// RedisBus shares change events between instances over Redis pub/sub, one channel per table.
// Redis delivers a channel's messages in publish order.
type RedisBus struct {
	client  *redis.Client
	buffer  int
	metrics *metrics.Metrics
	log     *logging.Logger
}

func NewRedisBus(client *redis.Client, m *metrics.Metrics, log *logging.Logger) *RedisBus {
	return &RedisBus{client: client, buffer: DefaultBuffer, metrics: m, log: log}
}

// NewRedisBusFromURL connects with a redis:// URL and pings the server before returning.
func NewRedisBusFromURL(redisURL string, m *metrics.Metrics, log *logging.Logger) (*RedisBus, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}
	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	if log != nil {
		log.Info("realtime bus connected to redis", "addr", opts.Addr)
	}
	return NewRedisBus(client, m, log), nil
}

func (b *RedisBus) Publish(ctx context.Context, ev Event) error {
	payload, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	if err := b.client.Publish(ctx, channelPrefix+ev.Table, payload).Err(); err != nil {
		return fmt.Errorf("redis publish: %w", err)
	}
	b.metrics.EventPublished(ev.Table, string(ev.Type))
	return nil
}

func (b *RedisBus) Subscribe(ctx context.Context, table string, filter Filter) (*Subscription, error) {
	ps := b.client.Subscribe(ctx, channelPrefix+table)
	// Wait for the subscription confirmation so no event published after return is missed.
	if _, err := ps.Receive(ctx); err != nil {
		_ = ps.Close()
		return nil, fmt.Errorf("redis subscribe: %w", err)
	}

	sub := newSubscription(table, filter, b.buffer)
	b.metrics.SubscriberOpened()

	go func() {
		defer func() {
			_ = ps.Close()
			close(sub.events)
			b.metrics.SubscriberClosed(errors.Is(sub.Err(), ErrSlowConsumer))
		}()

		messages := ps.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case <-sub.stop:
				return
			case msg, ok := <-messages:
				if !ok {
					sub.setErr(ErrClosed)
					return
				}
				var ev Event
				if err := json.Unmarshal([]byte(msg.Payload), &ev); err != nil {
					if b.log != nil {
						b.log.WithError(err).Warn("dropping malformed realtime message", "channel", msg.Channel)
					}
					continue
				}
				if !filter.Match(ev) {
					continue
				}
				if !sub.offer(ev) {
					sub.setErr(ErrSlowConsumer)
					return
				}
			}
		}
	}()
	return sub, nil
}

func (b *RedisBus) Close() error {
	return b.client.Close()
}
