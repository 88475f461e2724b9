package session

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
)

const sessionKeyPrefix = "session:"

var ErrNotFound = errors.New("session not found")

// Store 基于 Redis 的会话存储。令牌是不透明随机串，
// 放在 HttpOnly Cookie 里；Redis 持久化保证进程重启后会话仍有效。
type Store struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewStore(rdb *redis.Client, ttl time.Duration) *Store {
	return &Store{rdb: rdb, ttl: ttl}
}

// Create 为用户生成一个新会话令牌
func (s *Store) Create(ctx context.Context, userID int64) (string, error) {
	bytes := make([]byte, 32)
	if _, err := rand.Read(bytes); err != nil {
		return "", fmt.Errorf("failed to generate session token: %w", err)
	}
	token := hex.EncodeToString(bytes)

	key := sessionKeyPrefix + token
	if err := s.rdb.Set(ctx, key, userID, s.ttl).Err(); err != nil {
		return "", fmt.Errorf("failed to store session: %w", err)
	}

	return token, nil
}

// Get 解析令牌对应的用户 ID，同时滑动续期
func (s *Store) Get(ctx context.Context, token string) (int64, error) {
	if token == "" {
		return 0, ErrNotFound
	}

	key := sessionKeyPrefix + token
	val, err := s.rdb.Get(ctx, key).Result()
	if err == redis.Nil {
		return 0, ErrNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("failed to get session: %w", err)
	}

	userID, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0, ErrNotFound
	}

	s.rdb.Expire(ctx, key, s.ttl)

	return userID, nil
}

// Destroy 销毁会话。令牌不存在不算错误（登出幂等）。
func (s *Store) Destroy(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return s.rdb.Del(ctx, sessionKeyPrefix+token).Err()
}

// TTL 会话有效期
func (s *Store) TTL() time.Duration {
	return s.ttl
}
