package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"student_intake/internal/model"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const DefaultPendingKey = "student_intake:pending_submissions"

// RedisPendingStore keeps the queue in a Redis list so it survives restarts
// of the API process.
type RedisPendingStore struct {
	client *redis.Client
	key    string
	logger *zap.Logger
}

// NewRedisPendingStore builds a store on key; RPUSH appends, MULTI{LRANGE, DEL} drains
func NewRedisPendingStore(client *redis.Client, key string, logger *zap.Logger) *RedisPendingStore {
	if key == "" {
		key = DefaultPendingKey
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RedisPendingStore{client: client, key: key, logger: logger}
}

// Append pushes sub onto the tail of the list
func (s *RedisPendingStore) Append(ctx context.Context, sub model.PendingSubmission) error {
	payload, err := json.Marshal(sub)
	if err != nil {
		return fmt.Errorf("failed to encode submission: %w", err)
	}
	if err := s.client.RPush(ctx, s.key, payload).Err(); err != nil {
		return fmt.Errorf("failed to push submission: %w", err)
	}
	return nil
}

// Drain reads and deletes the list in one transaction
func (s *RedisPendingStore) Drain(ctx context.Context) ([]model.PendingSubmission, error) {
	var lrange *redis.StringSliceCmd
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		lrange = pipe.LRange(ctx, s.key, 0, -1)
		pipe.Del(ctx, s.key)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to drain submissions: %w", err)
	}

	raw, err := lrange.Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read drained submissions: %w", err)
	}

	batch := make([]model.PendingSubmission, 0, len(raw))
	for _, item := range raw {
		var sub model.PendingSubmission
		if err := json.Unmarshal([]byte(item), &sub); err != nil {
			// The list is already gone; log the raw entry so it can be recovered by hand
			s.logger.Error("dropping undecodable pending submission",
				zap.String("key", s.key), zap.String("raw", item), zap.Error(err))
			continue
		}
		batch = append(batch, sub)
	}
	return batch, nil
}

// Healthy verifies redis connectivity
func (s *RedisPendingStore) Healthy(ctx context.Context) bool {
	if s == nil || s.client == nil {
		return false
	}
	return s.client.Ping(ctx).Err() == nil
}
