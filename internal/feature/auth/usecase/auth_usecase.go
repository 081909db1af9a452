package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"shopdesk_backend/internal/feature/auth/domain/entity"
	jwtmw "shopdesk_backend/internal/platform/jwt"
	"shopdesk_backend/internal/platform/logging"
	"shopdesk_backend/internal/platform/media"
)

const (
	minPasswordLength = 8

	// dummyHash is compared against when the email is unknown so that login
	// does the same bcrypt work either way.
	dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"
)

// UserRepository persists users. Create and Update return
// ErrEmailAlreadyExists on a duplicate email; lookups return ErrUserNotFound.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	FindByID(ctx context.Context, id string) (*entity.User, error)
	Update(ctx context.Context, user *entity.User) error
}

// TokenGenerator issues signed access tokens.
type TokenGenerator interface {
	GenerateToken(userID, email string) (string, jwtmw.Claims, error)
}

// MediaStore stores profile images.
type MediaStore interface {
	Upload(ctx context.Context, folder, filename string, r io.Reader) (string, error)
	Delete(ctx context.Context, url string) error
}

// ClientMeta describes the caller a session is issued to.
type ClientMeta struct {
	UserAgent string
	IPAddress string
}

// SignupInput carries the signup fields.
type SignupInput struct {
	Name     string
	Email    string
	Password string
}

// Image is an uploaded file.
type Image struct {
	Filename string
	Content  io.Reader
}

// ProfileInput carries profile changes. Empty fields keep their old value.
type ProfileInput struct {
	Name  string
	Email string
	Image *Image
}

type authUsecase struct {
	users       UserRepository
	sessions    SessionRepository
	tokens      TokenGenerator
	media       MediaStore
	maxSessions int
}

// NewAuthUsecase wires the auth usecase. maxSessions <= 0 disables the
// per-user session cap.
func NewAuthUsecase(users UserRepository, sessions SessionRepository, tokens TokenGenerator, media MediaStore, maxSessions int) *authUsecase {
	return &authUsecase{
		users:       users,
		sessions:    sessions,
		tokens:      tokens,
		media:       media,
		maxSessions: maxSessions,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Signup registers a user and logs them in.
func (u *authUsecase) Signup(ctx context.Context, in SignupInput, meta ClientMeta) (*entity.User, string, error) {
	name := strings.TrimSpace(in.Name)
	email := normalizeEmail(in.Email)
	if name == "" || email == "" {
		return nil, "", fmt.Errorf("%w: name and email are required", ErrInvalidInput)
	}
	if len(in.Password) < minPasswordLength {
		return nil, "", fmt.Errorf("%w: password must be at least %d characters long", ErrInvalidInput, minPasswordLength)
	}

	if _, err := u.users.FindByEmail(ctx, email); err == nil {
		return nil, "", ErrEmailAlreadyExists
	} else if !errors.Is(err, ErrUserNotFound) {
		return nil, "", err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", fmt.Errorf("failed to hash password: %w", err)
	}
	user := &entity.User{Name: name, Email: email, Password: string(hashed)}
	if err := u.users.Create(ctx, user); err != nil {
		return nil, "", err
	}

	token, err := u.issue(ctx, user, meta)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// Login verifies credentials and issues a token. Unknown email and wrong
// password both return ErrInvalidCredentials after a bcrypt comparison.
func (u *authUsecase) Login(ctx context.Context, email, password string, meta ClientMeta) (string, error) {
	user, err := u.users.FindByEmail(ctx, normalizeEmail(email))
	if err != nil && !errors.Is(err, ErrUserNotFound) {
		return "", err
	}

	passwordHash := dummyHash
	if err == nil {
		passwordHash = user.Password
	}
	compareErr := bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(password))
	if err != nil || compareErr != nil {
		return "", ErrInvalidCredentials
	}

	return u.issue(ctx, user, meta)
}

// issue signs a token and records its session, evicting the user's oldest
// sessions beyond the cap.
func (u *authUsecase) issue(ctx context.Context, user *entity.User, meta ClientMeta) (string, error) {
	if u.maxSessions > 0 {
		n, err := u.sessions.CountByUserID(ctx, user.ID)
		if err != nil {
			return "", fmt.Errorf("count sessions: %w", err)
		}
		for ; n >= int64(u.maxSessions); n-- {
			if err := u.sessions.DeleteOldestByUserID(ctx, user.ID); err != nil {
				return "", fmt.Errorf("evict session: %w", err)
			}
		}
	}

	token, claims, err := u.tokens.GenerateToken(user.ID, user.Email)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	s := &entity.Session{
		ID:        claims.SessionID,
		UserID:    user.ID,
		UserAgent: meta.UserAgent,
		IPAddress: meta.IPAddress,
		CreatedAt: claims.IssuedAt,
		ExpiresAt: claims.ExpiresAt,
	}
	if err := u.sessions.Create(ctx, s); err != nil {
		return "", fmt.Errorf("create session: %w", err)
	}
	return token, nil
}

// ValidateSession returns nil when the session exists and is neither revoked
// nor expired.
func (u *authUsecase) ValidateSession(ctx context.Context, sessionID string) error {
	s, err := u.sessions.FindByID(ctx, sessionID)
	if err != nil {
		return err
	}
	if s.IsRevoked() {
		return ErrSessionRevoked
	}
	if s.IsExpired() {
		return ErrSessionExpired
	}
	return nil
}

// Logout revokes the caller's session.
func (u *authUsecase) Logout(ctx context.Context, sessionID string) error {
	return u.sessions.Revoke(ctx, sessionID)
}

// PurgeExpiredSessions drops expired session records.
func (u *authUsecase) PurgeExpiredSessions(ctx context.Context) (int64, error) {
	return u.sessions.DeleteExpired(ctx)
}

// Detail returns the user behind an authenticated request.
func (u *authUsecase) Detail(ctx context.Context, userID string) (*entity.User, error) {
	return u.users.FindByID(ctx, userID)
}

// UpdateProfile applies non-empty fields and an optional new profile image.
func (u *authUsecase) UpdateProfile(ctx context.Context, userID string, in ProfileInput) (*entity.User, error) {
	user, err := u.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if name := strings.TrimSpace(in.Name); name != "" {
		user.Name = name
	}
	if email := normalizeEmail(in.Email); email != "" {
		user.Email = email
	}

	oldImage := user.ProfileImage
	if in.Image != nil {
		url, err := u.media.Upload(ctx, media.FolderUsers, in.Image.Filename, in.Image.Content)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrImageUpload, err)
		}
		user.ProfileImage = url
	}

	if err := u.users.Update(ctx, user); err != nil {
		if user.ProfileImage != oldImage {
			u.discard(ctx, user.ProfileImage)
		}
		return nil, err
	}
	if user.ProfileImage != oldImage && oldImage != "" {
		u.discard(ctx, oldImage)
	}
	return user, nil
}

func (u *authUsecase) discard(ctx context.Context, url string) {
	if err := u.media.Delete(ctx, url); err != nil {
		logging.FromContext(ctx).Warn("profile image cleanup failed", "url", url, "error", err)
	}
}
