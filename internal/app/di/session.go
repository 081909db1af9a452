package di

import (
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	authadapters "shopdesk_backend/internal/feature/auth/adapters"
	"shopdesk_backend/internal/feature/auth/usecase"
	"shopdesk_backend/internal/platform/session"
)

// NewSessionRepository prefers Redis, then the relational session table,
// then process memory (document storage without Redis).
func NewSessionRepository(rdb *redis.Client, db *gorm.DB) usecase.SessionRepository {
	switch {
	case rdb != nil:
		return session.NewSessionRedis(rdb, "session")
	case db != nil:
		return authadapters.NewSessionGorm(db)
	default:
		return authadapters.NewSessionMemory()
	}
}
