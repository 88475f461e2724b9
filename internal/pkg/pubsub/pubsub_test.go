package pubsub

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRedis(t *testing.T) (*redis.Client, func()) {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err)

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})

	cleanup := func() {
		client.Close()
		mr.Close()
	}

	return client, cleanup
}

func TestPublishStats_SetsType(t *testing.T) {
	client, cleanup := setupTestRedis(t)
	defer cleanup()

	pub := NewPublisher(client)

	msg := &StatsMessage{UserID: 1, Views: 10}
	err := pub.PublishStats(context.Background(), msg)
	require.NoError(t, err)
	assert.Equal(t, "profile_stats", msg.Type)
}

func TestPublishSubscribe_Roundtrip(t *testing.T) {
	client, cleanup := setupTestRedis(t)
	defer cleanup()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	received := make(chan *StatsMessage, 1)
	sub := NewSubscriber(client)

	go func() {
		_ = sub.Subscribe(ctx, func(msg *StatsMessage) {
			select {
			case received <- msg:
			default:
			}
		})
	}()

	pub := NewPublisher(client)
	msg := &StatsMessage{
		UserID: 42,
		Views:  101,
		Likes:  7,
		XP:     505,
		Level:  3,
	}

	// 订阅建立是异步的，发布重试直到消息被收到
	var got *StatsMessage
	deadline := time.After(3 * time.Second)
	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()

loop:
	for {
		select {
		case got = <-received:
			break loop
		case <-deadline:
			t.Fatal("Timed out waiting for stats message")
		case <-ticker.C:
			require.NoError(t, pub.PublishStats(ctx, msg))
		}
	}

	assert.Equal(t, int64(42), got.UserID)
	assert.Equal(t, 101, got.Views)
	assert.Equal(t, 7, got.Likes)
	assert.Equal(t, 505, got.XP)
	assert.Equal(t, 3, got.Level)
	assert.Equal(t, "profile_stats", got.Type)
}

func TestSubscribe_ContextCancel(t *testing.T) {
	client, cleanup := setupTestRedis(t)
	defer cleanup()

	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	sub := NewSubscriber(client)
	go func() {
		done <- sub.Subscribe(ctx, func(*StatsMessage) {})
	}()

	time.Sleep(100 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(3 * time.Second):
		t.Fatal("Subscribe did not return after context cancel")
	}
}
