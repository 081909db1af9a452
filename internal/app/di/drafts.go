package di

import (
	"time"

	"github.com/redis/go-redis/v9"

	billingadapters "shopdesk_backend/internal/feature/billing/adapters"
	billingusecase "shopdesk_backend/internal/feature/billing/usecase"
)

// NewDraftStore keeps billing drafts in Redis when available.
func NewDraftStore(rdb *redis.Client, ttl time.Duration) billingusecase.DraftStore {
	if rdb != nil {
		return billingadapters.NewDraftRedis(rdb, "bill", ttl)
	}
	return billingadapters.NewDraftMemory(ttl)
}
