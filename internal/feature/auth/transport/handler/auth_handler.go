// Package handler provides HTTP handlers for the auth feature.
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"shopdesk_backend/internal/api"
	"shopdesk_backend/internal/feature/auth/domain/entity"
	"shopdesk_backend/internal/feature/auth/transport/http/dto"
	"shopdesk_backend/internal/feature/auth/usecase"
	jwtmw "shopdesk_backend/internal/platform/jwt"
	"shopdesk_backend/internal/platform/logging"
)

// AuthUsecase defines the account operations the handler needs.
// The interface lives with its consumer, not the usecase package.
type AuthUsecase interface {
	Signup(ctx context.Context, in usecase.SignupInput, meta usecase.ClientMeta) (*entity.User, string, error)
	Login(ctx context.Context, email, password string, meta usecase.ClientMeta) (string, error)
	Logout(ctx context.Context, sessionID string) error
	Detail(ctx context.Context, userID string) (*entity.User, error)
	UpdateProfile(ctx context.Context, userID string, in usecase.ProfileInput) (*entity.User, error)
}

// AuthHandler serves /api/user.
type AuthHandler struct {
	auth AuthUsecase
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(auth AuthUsecase) *AuthHandler {
	return &AuthHandler{auth: auth}
}

func clientMeta(c *gin.Context) usecase.ClientMeta {
	return usecase.ClientMeta{UserAgent: c.Request.UserAgent(), IPAddress: c.ClientIP()}
}

// Signup handles POST /signup.
//   - 400 on validation failure or an already registered email
//   - 201 with the user and a token on success
func (h *AuthHandler) Signup(c *gin.Context) {
	ctx := c.Request.Context()
	log := logging.FromContext(ctx)

	var req dto.SignupReq
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("signup validation failed", "error", err, "remote_addr", c.ClientIP())
		api.Abort(c, http.StatusBadRequest, "name, email and a password of at least 8 characters are required")
		return
	}

	user, token, err := h.auth.Signup(ctx, usecase.SignupInput{Name: req.Name, Email: req.Email, Password: req.Password}, clientMeta(c))
	switch {
	case err == nil:
	case errors.Is(err, usecase.ErrEmailAlreadyExists):
		log.Warn("signup rejected", "error", err, "remote_addr", c.ClientIP())
		api.Abort(c, http.StatusBadRequest, "User already exists")
		return
	case errors.Is(err, usecase.ErrInvalidInput):
		log.Warn("signup rejected", "error", err, "remote_addr", c.ClientIP())
		api.Abort(c, http.StatusBadRequest, err.Error())
		return
	default:
		h.internal(c, "signup failed", err)
		return
	}

	log.Info("user signup successful", "user_id", user.ID, "remote_addr", c.ClientIP())
	c.JSON(http.StatusCreated, dto.SignupRes{User: dto.NewUserRes(*user), Token: token})
}

// Login handles POST /login. Unknown email and wrong password share the
// same 401 so accounts cannot be enumerated.
func (h *AuthHandler) Login(c *gin.Context) {
	ctx := c.Request.Context()
	log := logging.FromContext(ctx)

	var req dto.LoginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("login validation failed", "error", err, "remote_addr", c.ClientIP())
		api.Abort(c, http.StatusBadRequest, "email and password are required")
		return
	}

	token, err := h.auth.Login(ctx, req.Email, req.Password, clientMeta(c))
	if err != nil {
		if errors.Is(err, usecase.ErrInvalidCredentials) {
			log.Warn("login failed", "error", err, "remote_addr", c.ClientIP())
			api.Abort(c, http.StatusUnauthorized, "Invalid credentials")
			return
		}
		h.internal(c, "login failed", err)
		return
	}
	log.Info("user login successful", "remote_addr", c.ClientIP())
	c.JSON(http.StatusOK, api.TokenResponse{Token: token})
}

// Logout handles POST /logout by revoking the caller's session.
func (h *AuthHandler) Logout(c *gin.Context) {
	p, ok := jwtmw.PrincipalFrom(c)
	if !ok {
		api.Abort(c, http.StatusUnauthorized, "unauthorized")
		return
	}
	if err := h.auth.Logout(c.Request.Context(), p.SessionID); err != nil && !errors.Is(err, usecase.ErrSessionNotFound) {
		h.internal(c, "logout failed", err)
		return
	}
	c.JSON(http.StatusOK, api.MessageResponse{Message: "Logged out successfully"})
}

// Detail handles GET /userDetail.
func (h *AuthHandler) Detail(c *gin.Context) {
	p, ok := jwtmw.PrincipalFrom(c)
	if !ok {
		api.Abort(c, http.StatusUnauthorized, "unauthorized")
		return
	}
	user, err := h.auth.Detail(c.Request.Context(), p.UserID)
	if err != nil {
		h.userFail(c, "user detail failed", err)
		return
	}
	c.JSON(http.StatusOK, dto.UserEnvelope{
		Data:    dto.NewUserRes(*user),
		Success: true,
		Message: "User details retrieved successfully",
	})
}

// UpdateProfile handles PUT /updateProfile (multipart, optional "profileImage").
func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	ctx := c.Request.Context()
	p, ok := jwtmw.PrincipalFrom(c)
	if !ok {
		api.Abort(c, http.StatusUnauthorized, "unauthorized")
		return
	}

	var form dto.ProfileForm
	if err := c.ShouldBind(&form); err != nil {
		logging.FromContext(ctx).Warn("profile validation failed", "error", err, "remote_addr", c.ClientIP())
		api.Abort(c, http.StatusBadRequest, "invalid profile data")
		return
	}
	in := usecase.ProfileInput{Name: form.Name, Email: form.Email}

	fh, err := api.OptionalFile(c, "profileImage")
	if err != nil {
		api.Abort(c, http.StatusBadRequest, "invalid profileImage upload")
		return
	}
	if fh != nil {
		f, err := fh.Open()
		if err != nil {
			api.Abort(c, http.StatusBadRequest, "invalid profileImage upload")
			return
		}
		defer f.Close()
		in.Image = &usecase.Image{Filename: fh.Filename, Content: f}
	}

	user, err := h.auth.UpdateProfile(ctx, p.UserID, in)
	if err != nil {
		h.userFail(c, "update profile failed", err)
		return
	}
	c.JSON(http.StatusOK, dto.UserEnvelope{
		Data:    dto.NewUserRes(*user),
		Success: true,
		Message: "Profile updated successfully",
	})
}

func (h *AuthHandler) userFail(c *gin.Context, msg string, err error) {
	log := logging.FromContext(c.Request.Context())
	switch {
	case errors.Is(err, usecase.ErrUserNotFound):
		log.Warn(msg, "error", err, "remote_addr", c.ClientIP())
		api.Abort(c, http.StatusNotFound, "User not found")
	case errors.Is(err, usecase.ErrEmailAlreadyExists):
		log.Warn(msg, "error", err, "remote_addr", c.ClientIP())
		api.Abort(c, http.StatusBadRequest, "User already exists")
	case errors.Is(err, usecase.ErrInvalidInput):
		log.Warn(msg, "error", err, "remote_addr", c.ClientIP())
		api.Abort(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, usecase.ErrImageUpload):
		log.Warn(msg, "error", err, "remote_addr", c.ClientIP())
		api.Abort(c, http.StatusBadRequest, "Image upload failed")
	default:
		h.internal(c, msg, err)
	}
}

func (h *AuthHandler) internal(c *gin.Context, msg string, err error) {
	logging.FromContext(c.Request.Context()).Error(msg, slog.Any("error", err))
	_ = c.Error(err)
	api.Abort(c, http.StatusInternalServerError, "Server error")
}
