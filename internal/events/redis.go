package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// RedisPublisher shares events between API instances over a Redis channel.
// Events are delivered to the local broker immediately and published to Redis;
// Run forwards events from other instances to the local broker.
type RedisPublisher struct {
	client     *redis.Client
	channel    string
	broker     *Broker
	instanceID string
	logger     zerolog.Logger
}

// NewRedisClient parses redisURL and verifies the server is reachable.
func NewRedisClient(ctx context.Context, redisURL string) (*redis.Client, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis URL: %w", err)
	}

	client := redis.NewClient(opt)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return client, nil
}

// NewRedisPublisher returns a publisher using client and channel.
func NewRedisPublisher(client *redis.Client, channel string, broker *Broker, logger zerolog.Logger) *RedisPublisher {
	return &RedisPublisher{
		client:     client,
		channel:    channel,
		broker:     broker,
		instanceID: uuid.NewString(),
		logger:     logger.With().Str("component", "redis-events").Logger(),
	}
}

// Publish delivers locally and publishes to Redis. A Redis failure is logged;
// local subscribers still receive the event.
func (p *RedisPublisher) Publish(ctx context.Context, t Type) {
	e := Event{Type: t, At: p.broker.now().UTC(), Origin: p.instanceID}
	p.broker.Deliver(e)

	payload, err := json.Marshal(e)
	if err != nil {
		p.logger.Error().Err(err).Msg("failed to encode event")
		return
	}

	if err := p.client.Publish(ctx, p.channel, payload).Err(); err != nil {
		p.logger.Warn().
			Err(err).
			Str("channel", p.channel).
			Str("event", string(t)).
			Msg("failed to publish event to redis")
	}
}

// Run subscribes to the Redis channel and forwards events published by other
// instances until ctx is done.
func (p *RedisPublisher) Run(ctx context.Context) error {
	pubsub := p.client.Subscribe(ctx, p.channel)
	defer pubsub.Close()

	// Wait for subscription confirmation
	if _, err := pubsub.Receive(ctx); err != nil {
		return fmt.Errorf("failed to subscribe to event channel %s: %w", p.channel, err)
	}

	p.logger.Info().Str("channel", p.channel).Msg("subscribed to event channel")

	ch := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-ch:
			if !ok {
				return nil
			}

			var e Event
			if err := json.Unmarshal([]byte(msg.Payload), &e); err != nil {
				p.logger.Warn().Err(err).Msg("failed to decode event")
				continue
			}
			if e.Origin == p.instanceID {
				continue
			}

			p.broker.Deliver(e)
		}
	}
}
