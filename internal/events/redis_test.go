package events

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestRedis creates a miniredis instance and a client connected to it.
func setupTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return mr, client
}

func TestRedisPublisher_FanOutBetweenInstances(t *testing.T) {
	_, client := setupTestRedis(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	brokerA := NewBroker(zerolog.Nop())
	brokerB := NewBroker(zerolog.Nop())
	pubA := NewRedisPublisher(client, "test:events", brokerA, zerolog.Nop())
	pubB := NewRedisPublisher(client, "test:events", brokerB, zerolog.Nop())

	go func() { _ = pubA.Run(ctx) }()
	go func() { _ = pubB.Run(ctx) }()

	subA := brokerA.Subscribe(ctx)
	subB := brokerB.Subscribe(ctx)

	// Wait until both instances are subscribed.
	require.Eventually(t, func() bool {
		n, err := client.PubSubNumSub(ctx, "test:events").Result()
		return err == nil && n["test:events"] == 2
	}, 2*time.Second, 10*time.Millisecond)

	pubA.Publish(ctx, BrandsUpdated)

	assert.Equal(t, BrandsUpdated, receive(t, subA).Type)
	assert.Equal(t, BrandsUpdated, receive(t, subB).Type)

	// The publishing instance must not see its own event twice.
	select {
	case e := <-subA:
		t.Fatalf("unexpected duplicate event %v", e)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestRedisPublisher_IgnoresMalformedPayloads(t *testing.T) {
	_, client := setupTestRedis(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	broker := NewBroker(zerolog.Nop())
	pub := NewRedisPublisher(client, "test:events", broker, zerolog.Nop())
	go func() { _ = pub.Run(ctx) }()

	sub := broker.Subscribe(ctx)

	require.Eventually(t, func() bool {
		n, err := client.PubSubNumSub(ctx, "test:events").Result()
		return err == nil && n["test:events"] == 1
	}, 2*time.Second, 10*time.Millisecond)

	require.NoError(t, client.Publish(ctx, "test:events", "not json").Err())

	remote, err := json.Marshal(Event{Type: OrdersUpdated, At: time.Now().UTC(), Origin: "other"})
	require.NoError(t, err)
	require.NoError(t, client.Publish(ctx, "test:events", remote).Err())

	assert.Equal(t, OrdersUpdated, receive(t, sub).Type)
}

func TestRedisPublisher_PublishFailureStillDeliversLocally(t *testing.T) {
	mr, client := setupTestRedis(t)

	broker := NewBroker(zerolog.Nop())
	pub := NewRedisPublisher(client, "test:events", broker, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sub := broker.Subscribe(ctx)

	mr.Close()

	pub.Publish(ctx, ProductsUpdated)

	assert.Equal(t, ProductsUpdated, receive(t, sub).Type)
}

func TestNewRedisClient(t *testing.T) {
	mr, _ := setupTestRedis(t)
	ctx := context.Background()

	client, err := NewRedisClient(ctx, "redis://"+mr.Addr())
	require.NoError(t, err)
	require.NoError(t, client.Close())

	_, err = NewRedisClient(ctx, "::not a url::")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse redis URL")
}
