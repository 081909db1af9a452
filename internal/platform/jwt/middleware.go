// Package jwtmw issues access tokens and guards routes that need a logged-in user.
package jwtmw

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"shopdesk_backend/internal/platform/logging"
)

// ContextPrincipal is the gin context key holding the authenticated Principal.
const ContextPrincipal = "principal"

// Principal identifies the caller of an authenticated request.
type Principal struct {
	UserID    string
	Email     string
	SessionID string
	ExpiresAt time.Time
}

// TokenParser verifies a bearer token.
type TokenParser interface {
	Parse(tokenStr string) (Claims, error)
}

// SessionValidator reports whether the server-side session behind a token is
// still usable. Any error rejects the request.
type SessionValidator interface {
	ValidateSession(ctx context.Context, sessionID string) error
}

// AuthRequired rejects requests without a valid bearer token or whose session
// is missing, revoked or expired, and stores the Principal for handlers.
func AuthRequired(tokens TokenParser, sessions SessionValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		auth := c.GetHeader("Authorization")
		if !strings.HasPrefix(auth, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "missing bearer token"})
			return
		}

		claims, err := tokens.Parse(strings.TrimPrefix(auth, "Bearer "))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "invalid token"})
			return
		}

		if err := sessions.ValidateSession(c.Request.Context(), claims.SessionID); err != nil {
			logging.FromContext(c.Request.Context()).Warn("session rejected", "error", err, "user_id", claims.UserID, "remote_addr", c.ClientIP())
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "session expired or revoked"})
			return
		}

		c.Set(ContextPrincipal, Principal{
			UserID:    claims.UserID,
			Email:     claims.Email,
			SessionID: claims.SessionID,
			ExpiresAt: claims.ExpiresAt,
		})
		c.Next()
	}
}

// PrincipalFrom returns the Principal set by AuthRequired.
func PrincipalFrom(c *gin.Context) (Principal, bool) {
	v, ok := c.Get(ContextPrincipal)
	if !ok {
		return Principal{}, false
	}
	p, ok := v.(Principal)
	return p, ok
}
