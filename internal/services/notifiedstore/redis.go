package notifiedstore

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps the table as a single redis set.
type RedisStore struct {
	client redis.UniversalClient
	key    string
}

// NewRedisStore stores senders in the set at key.
func NewRedisStore(client redis.UniversalClient, key string) *RedisStore {
	return &RedisStore{client: client, key: key}
}

// Has reports whether senderID is a member of the set.
func (r *RedisStore) Has(ctx context.Context, senderID string) (bool, error) {
	ok, err := r.client.SIsMember(ctx, r.key, senderID).Result()
	if err != nil {
		return false, fmt.Errorf("failed to look up sender: %w", err)
	}
	return ok, nil
}

// MarkNotified uses SADD, which reports 1 only for a new member.
func (r *RedisStore) MarkNotified(ctx context.Context, senderID string) (bool, error) {
	added, err := r.client.SAdd(ctx, r.key, senderID).Result()
	if err != nil {
		return false, fmt.Errorf("failed to mark sender notified: %w", err)
	}
	return added == 1, nil
}

// Clear deletes the set and returns its size before deletion.
func (r *RedisStore) Clear(ctx context.Context) (int, error) {
	pipe := r.client.TxPipeline()
	card := pipe.SCard(ctx, r.key)
	pipe.Del(ctx, r.key)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, fmt.Errorf("failed to clear notified senders: %w", err)
	}
	return int(card.Val()), nil
}

// Count returns the set cardinality.
func (r *RedisStore) Count(ctx context.Context) (int, error) {
	n, err := r.client.SCard(ctx, r.key).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to count notified senders: %w", err)
	}
	return int(n), nil
}

// IDs lists the set members.
func (r *RedisStore) IDs(ctx context.Context) ([]string, error) {
	ids, err := r.client.SMembers(ctx, r.key).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list notified senders: %w", err)
	}
	return ids, nil
}
