package pubsub

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-redis/redis/v8"
)

const (
	ChannelProfileStats = "profile_stats"
)

// StatsMessage 个人页统计事件，浏览/点赞计数变化时发布，
// 推送给该用户在 Lab 里的在线连接。
type StatsMessage struct {
	Type   string `json:"type"`
	UserID int64  `json:"user_id"`
	Views  int    `json:"views"`
	Likes  int    `json:"likes"`
	XP     int    `json:"xp"`
	Level  int    `json:"level"`
}

// Publisher Redis 发布者
type Publisher struct {
	client *redis.Client
}

// NewPublisher 创建发布者
func NewPublisher(client *redis.Client) *Publisher {
	return &Publisher{client: client}
}

// PublishStats 发布统计事件
func (p *Publisher) PublishStats(ctx context.Context, msg *StatsMessage) error {
	msg.Type = "profile_stats"

	data, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal stats message: %w", err)
	}

	return p.client.Publish(ctx, ChannelProfileStats, data).Err()
}

// Subscriber Redis 订阅者
type Subscriber struct {
	client *redis.Client
}

// NewSubscriber 创建订阅者
func NewSubscriber(client *redis.Client) *Subscriber {
	return &Subscriber{client: client}
}

// Subscribe 订阅统计事件
func (s *Subscriber) Subscribe(ctx context.Context, handler func(*StatsMessage)) error {
	pubsub := s.client.Subscribe(ctx, ChannelProfileStats)
	defer pubsub.Close()

	ch := pubsub.Channel()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg, ok := <-ch:
			if !ok {
				return nil
			}

			var statsMsg StatsMessage
			if err := json.Unmarshal([]byte(msg.Payload), &statsMsg); err != nil {
				continue // 忽略解析错误
			}

			handler(&statsMsg)
		}
	}
}
