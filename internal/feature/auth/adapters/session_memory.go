package adapters

import (
	"context"
	"sync"
	"time"

	"shopdesk_backend/internal/feature/auth/domain/entity"
	"shopdesk_backend/internal/feature/auth/usecase"
)

// sessionMemory is the fallback store for a Mongo deployment without Redis.
// Sessions do not survive a restart.
type sessionMemory struct {
	mu       sync.RWMutex
	sessions map[string]entity.Session
}

var _ usecase.SessionRepository = (*sessionMemory)(nil)

func NewSessionMemory() *sessionMemory {
	return &sessionMemory{sessions: map[string]entity.Session{}}
}

func (r *sessionMemory) Create(_ context.Context, s *entity.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[s.ID] = *s
	return nil
}

func (r *sessionMemory) FindByID(_ context.Context, id string) (*entity.Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sessions[id]
	if !ok {
		return nil, usecase.ErrSessionNotFound
	}
	return &s, nil
}

func (r *sessionMemory) Revoke(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[id]
	if !ok {
		return usecase.ErrSessionNotFound
	}
	now := time.Now()
	s.RevokedAt = &now
	r.sessions[id] = s
	return nil
}

func (r *sessionMemory) RevokeAllByUserID(_ context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now()
	for id, s := range r.sessions {
		if s.UserID == userID && s.RevokedAt == nil {
			s.RevokedAt = &now
			r.sessions[id] = s
		}
	}
	return nil
}

func (r *sessionMemory) DeleteExpired(context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for id, s := range r.sessions {
		if s.IsExpired() {
			delete(r.sessions, id)
			n++
		}
	}
	return n, nil
}

func (r *sessionMemory) CountByUserID(_ context.Context, userID string) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var n int64
	for _, s := range r.sessions {
		if s.UserID == userID && s.IsValid() {
			n++
		}
	}
	return n, nil
}

func (r *sessionMemory) DeleteOldestByUserID(_ context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	var oldest *entity.Session
	for _, s := range r.sessions {
		if s.UserID != userID || !s.IsValid() {
			continue
		}
		if oldest == nil || s.CreatedAt.Before(oldest.CreatedAt) {
			cp := s
			oldest = &cp
		}
	}
	if oldest != nil {
		delete(r.sessions, oldest.ID)
	}
	return nil
}
