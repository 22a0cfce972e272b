package repository

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rmg-labs/incident-service/internal/service"
)

type SessionStore struct {
	redisClient *redis.Client
}

func NewSessionStore(redisClient *redis.Client) service.SessionStore {
	return &SessionStore{
		redisClient: redisClient,
	}
}

func sessionKey(token string) string {
	return fmt.Sprintf("session:%s", token)
}

// Create сохраняет сессионный токен в Redis со сроком жизни
func (s *SessionStore) Create(ctx context.Context, token string, userID int64, ttl time.Duration) error {
	key := sessionKey(token)
	if err := s.redisClient.Set(ctx, key, userID, ttl).Err(); err != nil {
		return fmt.Errorf("failed to store session: %w", err)
	}
	return nil
}

// Get возвращает ID пользователя по сессионному токену
func (s *SessionStore) Get(ctx context.Context, token string) (int64, error) {
	key := sessionKey(token)
	val, err := s.redisClient.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, service.ErrNotFound
		}
		return 0, fmt.Errorf("failed to get session: %w", err)
	}

	userID, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("failed to parse session value: %w", err)
	}
	return userID, nil
}

// Delete удаляет сессионный токен, делая его недействительным
func (s *SessionStore) Delete(ctx context.Context, token string) error {
	key := sessionKey(token)
	deleted, err := s.redisClient.Del(ctx, key).Result()
	if err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	if deleted == 0 {
		return service.ErrNotFound
	}
	return nil
}
