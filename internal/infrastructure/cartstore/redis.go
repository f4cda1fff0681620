package cartstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sangkips/retailhub-api/internal/domain/entity"
	domainRepo "github.com/sangkips/retailhub-api/internal/domain/repository"
)

// RedisStorage keeps each cart as a JSON array of lines under cart:<owner>.
type RedisStorage struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStorage creates cart storage on client. A zero ttl keeps carts forever.
func NewRedisStorage(client *redis.Client, ttl time.Duration) *RedisStorage {
	return &RedisStorage{client: client, ttl: ttl}
}

func (s *RedisStorage) Load(ctx context.Context, owner uuid.UUID) (*entity.Cart, error) {
	data, err := s.client.Get(ctx, cartKey(owner)).Bytes()
	if errors.Is(err, redis.Nil) {
		return entity.NewCart(nil), nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis get failed: %w", err)
	}

	var lines []entity.CartLine
	if err := json.Unmarshal(data, &lines); err != nil {
		return nil, fmt.Errorf("%w: %v", domainRepo.ErrMalformedCart, err)
	}
	return entity.NewCart(lines), nil
}

func (s *RedisStorage) Save(ctx context.Context, owner uuid.UUID, cart *entity.Cart) error {
	if cart == nil || cart.IsEmpty() {
		return s.Clear(ctx, owner)
	}
	data, err := json.Marshal(cart.Lines)
	if err != nil {
		return fmt.Errorf("marshal cart failed: %w", err)
	}
	if err := s.client.Set(ctx, cartKey(owner), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func (s *RedisStorage) Clear(ctx context.Context, owner uuid.UUID) error {
	if err := s.client.Del(ctx, cartKey(owner)).Err(); err != nil {
		return fmt.Errorf("redis delete failed: %w", err)
	}
	return nil
}

// Ping checks the connection when the server starts.
func (s *RedisStorage) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func cartKey(owner uuid.UUID) string {
	return "cart:" + owner.String()
}
