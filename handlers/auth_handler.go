package handlers

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/upb/auth-gateway/middleware"
	"github.com/upb/auth-gateway/models"
	"github.com/upb/auth-gateway/services"
	"github.com/upb/auth-gateway/utils"
	"go.uber.org/zap"
)

// AuthService defines the interface for authentication operations
type AuthService interface {
	// Login verifies credentials and issues a token
	Login(ctx context.Context, email, password string) (*services.LoginResult, error)

	// Register creates a new user
	Register(ctx context.Context, name, email, password string) (*models.User, error)

	// GetProfile returns the record and role set for a user ID
	GetProfile(ctx context.Context, userID uuid.UUID) (*services.Profile, error)

	// UpdateProfile changes the user's own name and/or email
	UpdateProfile(ctx context.Context, userID uuid.UUID, name, email string) (*services.Profile, error)

	// ListUsers returns profiles for all users, paginated
	ListUsers(ctx context.Context, limit, offset int) ([]*services.Profile, error)
}

// LoginRequest represents a login request
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse is the contract login clients depend on: Success plus
// either a token and roles, or a message. Every login outcome uses this
// shape so clients never need to branch on the body layout.
type LoginResponse struct {
	Success bool     `json:"success"`
	Token   string   `json:"token,omitempty"`
	Roles   []string `json:"roles,omitempty"`
	Message string   `json:"message,omitempty"`
}

// RegisterRequest represents a registration request
type RegisterRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// RegisterResponse represents a newly registered user
type RegisterResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// AuthHandler handles authentication HTTP requests
type AuthHandler struct {
	authService AuthService
	logger      *zap.Logger
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(authService AuthService, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		logger:      logger,
	}
}

// HandleLogin handles POST /api/auth/login
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestIDFromContext(ctx)

	var req LoginRequest
	if err := decodeJSON(r, &req); err != nil {
		respondJSON(w, http.StatusBadRequest, LoginResponse{
			Success: false,
			Message: "Invalid request body",
		})
		return
	}

	if err := utils.ValidateStruct(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, LoginResponse{
			Success: false,
			Message: "Email and password are required",
		})
		return
	}

	result, err := h.authService.Login(ctx, req.Email, req.Password)
	if err != nil {
		if services.IsUnauthorizedError(err) {
			respondJSON(w, http.StatusUnauthorized, LoginResponse{
				Success: false,
				Message: services.GetErrorMessage(err),
			})
			return
		}

		h.logger.Error("login failed",
			zap.String("request_id", requestID),
			zap.Error(err))
		respondJSON(w, http.StatusInternalServerError, LoginResponse{
			Success: false,
			Message: "An internal error occurred",
		})
		return
	}

	respondJSON(w, http.StatusOK, LoginResponse{
		Success: true,
		Token:   result.Token,
		Roles:   result.Roles,
	})
}

// HandleRegister handles POST /api/auth/register
func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req RegisterRequest
	if err := decodeJSON(r, &req); err != nil {
		_ = utils.WriteBadRequest(w, "Invalid request body", nil)
		return
	}

	if err := utils.ValidateStruct(&req); err != nil {
		HandleValidationError(w, err, h.logger)
		return
	}

	user, err := h.authService.Register(ctx, req.Name, req.Email, req.Password)
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}

	_ = utils.WriteCreated(w, RegisterResponse{
		ID:    user.ID.String(),
		Email: user.Email,
		Name:  user.Name,
	})
}

// HandleLogout handles POST /api/auth/logout. Tokens are not revocable;
// logout is an acknowledgement and clients discard their stored token.
func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Logged out",
	})
}
