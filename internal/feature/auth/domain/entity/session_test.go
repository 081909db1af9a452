package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSession_IsValid(t *testing.T) {
	t.Parallel()

	now := time.Now()
	tests := []struct {
		name    string
		s       Session
		expired bool
		revoked bool
	}{
		{"active", Session{ExpiresAt: now.Add(time.Hour)}, false, false},
		{"expired", Session{ExpiresAt: now.Add(-time.Second)}, true, false},
		{"revoked", Session{ExpiresAt: now.Add(time.Hour), RevokedAt: &now}, false, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expired, tt.s.IsExpired())
			assert.Equal(t, tt.revoked, tt.s.IsRevoked())
			assert.Equal(t, !tt.expired && !tt.revoked, tt.s.IsValid())
		})
	}
}
