package infrastructure

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"listings-service/internal/domain/entities"
)

// CacheService wraps Redis for property cache-aside reads, profile caching
// and verification-code storage. When Redis is unreachable at startup the
// service degrades to a no-op so the process can still serve from the store.
type CacheService struct {
	client *redis.Client
	logger zerolog.Logger
}

func NewCacheService(addr, password string, db int, logger zerolog.Logger) *CacheService {
	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           db,
		PoolSize:     10,
		MinIdleConns: 5,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		logger.Warn().Err(err).Str("addr", addr).Msg("redis unreachable, caching disabled")
		return &CacheService{logger: logger}
	}

	logger.Info().Str("addr", addr).Msg("connected to redis")
	return &CacheService{client: client, logger: logger}
}

func (c *CacheService) GetProperty(ctx context.Context, id string) (*entities.Property, error) {
	if c == nil || c.client == nil {
		return nil, nil
	}
	data, err := c.client.Get(ctx, "property:"+id).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis get: %w", err)
	}

	var property entities.Property
	if err := json.Unmarshal([]byte(data), &property); err != nil {
		return nil, fmt.Errorf("decode cached property: %w", err)
	}
	return &property, nil
}

func (c *CacheService) SetProperty(ctx context.Context, property *entities.Property, ttl time.Duration) error {
	if c == nil || c.client == nil {
		return nil
	}
	data, err := json.Marshal(property)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, "property:"+property.ID, data, ttl).Err()
}

func (c *CacheService) InvalidateProperty(ctx context.Context, id string) error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Del(ctx, "property:"+id).Err()
}

func (c *CacheService) GetProfile(ctx context.Context, userID string) (*entities.User, error) {
	if c == nil || c.client == nil {
		return nil, nil
	}
	data, err := c.client.Get(ctx, "profile:"+userID).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis get: %w", err)
	}

	var user entities.User
	if err := json.Unmarshal([]byte(data), &user); err != nil {
		return nil, fmt.Errorf("decode cached profile: %w", err)
	}
	return &user, nil
}

func (c *CacheService) SetProfile(ctx context.Context, user *entities.User, ttl time.Duration) error {
	if c == nil || c.client == nil {
		return nil
	}
	data, err := json.Marshal(user)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, "profile:"+user.ID, data, ttl).Err()
}

func (c *CacheService) InvalidateProfile(ctx context.Context, userID string) error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Del(ctx, "profile:"+userID).Err()
}

func (c *CacheService) SetVerificationCode(ctx context.Context, email, code string, ttl time.Duration) error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Set(ctx, "verify:"+email, code, ttl).Err()
}

func (c *CacheService) GetVerificationCode(ctx context.Context, email string) (string, error) {
	if c == nil || c.client == nil {
		return "", nil
	}
	code, err := c.client.Get(ctx, "verify:"+email).Result()
	if err == redis.Nil {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("redis get: %w", err)
	}
	return code, nil
}

func (c *CacheService) DeleteVerificationCode(ctx context.Context, email string) error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Del(ctx, "verify:"+email).Err()
}

func (c *CacheService) Close() error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Close()
}
