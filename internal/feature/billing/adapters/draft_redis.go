package adapters

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"shopdesk_backend/internal/feature/billing/domain"
	"shopdesk_backend/internal/feature/billing/usecase"
)

// DraftRedis stores each bill as a JSON string under <prefix>:<billNo>.
// Every save refreshes the TTL.
type DraftRedis struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

var _ usecase.DraftStore = (*DraftRedis)(nil)

func NewDraftRedis(client *redis.Client, prefix string, ttl time.Duration) *DraftRedis {
	if prefix == "" {
		prefix = "bill"
	}
	return &DraftRedis{client: client, prefix: prefix, ttl: ttl}
}

func (s *DraftRedis) key(billNo string) string {
	return fmt.Sprintf("%s:%s", s.prefix, billNo)
}

// Create stores a new bill with SET NX so a taken number is never overwritten.
func (s *DraftRedis) Create(ctx context.Context, b *domain.Bill) error {
	data, err := json.Marshal(b)
	if err != nil {
		return fmt.Errorf("failed to marshal bill: %w", err)
	}
	ok, err := s.client.SetNX(ctx, s.key(b.No), data, s.ttl).Result()
	if err != nil {
		return err
	}
	if !ok {
		return usecase.ErrBillExists
	}
	return nil
}

func (s *DraftRedis) Save(ctx context.Context, b *domain.Bill) error {
	data, err := json.Marshal(b)
	if err != nil {
		return fmt.Errorf("failed to marshal bill: %w", err)
	}
	return s.client.Set(ctx, s.key(b.No), data, s.ttl).Err()
}

func (s *DraftRedis) Get(ctx context.Context, billNo string) (*domain.Bill, error) {
	data, err := s.client.Get(ctx, s.key(billNo)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, usecase.ErrBillNotFound
		}
		return nil, err
	}
	var b domain.Bill
	if err := json.Unmarshal(data, &b); err != nil {
		return nil, fmt.Errorf("failed to unmarshal bill: %w", err)
	}
	return &b, nil
}

func (s *DraftRedis) Delete(ctx context.Context, billNo string) error {
	n, err := s.client.Del(ctx, s.key(billNo)).Result()
	if err != nil {
		return err
	}
	if n == 0 {
		return usecase.ErrBillNotFound
	}
	return nil
}
