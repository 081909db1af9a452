// Package adapters stores billing drafts and renders invoices.
package adapters

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"shopdesk_backend/internal/feature/billing/domain"
	"shopdesk_backend/internal/feature/billing/usecase"
)

type memoryEntry struct {
	data      []byte
	expiresAt time.Time
}

// draftMemory keeps drafts in process. Bills are stored encoded so callers
// never share a mutable bill.
type draftMemory struct {
	mu      sync.Mutex
	ttl     time.Duration
	now     func() time.Time
	entries map[string]memoryEntry
}

var _ usecase.DraftStore = (*draftMemory)(nil)

// NewDraftMemory is used when Redis is not configured.
func NewDraftMemory(ttl time.Duration) *draftMemory {
	return &draftMemory{ttl: ttl, now: time.Now, entries: map[string]memoryEntry{}}
}

func (s *draftMemory) Create(_ context.Context, b *domain.Bill) error {
	return s.put(b, false)
}

func (s *draftMemory) Save(_ context.Context, b *domain.Bill) error {
	return s.put(b, true)
}

func (s *draftMemory) put(b *domain.Bill, replace bool) error {
	data, err := json.Marshal(b)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sweep()
	if _, taken := s.entries[b.No]; taken && !replace {
		return usecase.ErrBillExists
	}
	s.entries[b.No] = memoryEntry{data: data, expiresAt: s.now().Add(s.ttl)}
	return nil
}

func (s *draftMemory) Get(_ context.Context, billNo string) (*domain.Bill, error) {
	s.mu.Lock()
	e, ok := s.entries[billNo]
	s.mu.Unlock()
	if !ok || !s.now().Before(e.expiresAt) {
		return nil, usecase.ErrBillNotFound
	}
	var b domain.Bill
	if err := json.Unmarshal(e.data, &b); err != nil {
		return nil, err
	}
	return &b, nil
}

func (s *draftMemory) Delete(_ context.Context, billNo string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.entries[billNo]; !ok {
		return usecase.ErrBillNotFound
	}
	delete(s.entries, billNo)
	return nil
}

// sweep drops expired drafts. Callers hold mu.
func (s *draftMemory) sweep() {
	now := s.now()
	for no, e := range s.entries {
		if !now.Before(e.expiresAt) {
			delete(s.entries, no)
		}
	}
}
