package handlers

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/upb/auth-gateway/middleware"
	"github.com/upb/auth-gateway/utils"
	"go.uber.org/zap"
)

// UserHandler handles user-related HTTP requests
type UserHandler struct {
	authService AuthService
	logger      *zap.Logger
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(authService AuthService, logger *zap.Logger) *UserHandler {
	return &UserHandler{
		authService: authService,
		logger:      logger,
	}
}

// UpdateProfileRequest is the body for PUT /api/users/profile.
// Empty fields keep their current value.
type UpdateProfileRequest struct {
	Name  string `json:"name" validate:"omitempty,min=1"`
	Email string `json:"email" validate:"omitempty,email"`
}

// callerID extracts the authenticated user's ID from the request claims.
// Writes the rejection itself and reports false when the claims are
// missing or carry an unusable subject.
func (h *UserHandler) callerID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	ctx := r.Context()

	claims := middleware.GetClaimsFromContext(ctx)
	if claims == nil {
		_ = utils.WriteUnauthorized(w, "Authentication required")
		return uuid.Nil, false
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		h.logger.Warn("invalid subject in claims",
			zap.String("request_id", middleware.GetRequestIDFromContext(ctx)),
			zap.String("sub", claims.Subject))
		_ = utils.WriteUnauthorized(w, "Invalid or expired token")
		return uuid.Nil, false
	}

	return userID, true
}

// HandleProfile handles GET /api/users/profile
// Returns the record and current role set of the authenticated caller.
func (h *UserHandler) HandleProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.callerID(w, r)
	if !ok {
		return
	}

	profile, err := h.authService.GetProfile(r.Context(), userID)
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}

	_ = utils.WriteOK(w, profile)
}

// HandleUpdateProfile handles PUT /api/users/profile
// Lets the authenticated caller change their own name and/or email.
func (h *UserHandler) HandleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.callerID(w, r)
	if !ok {
		return
	}

	var req UpdateProfileRequest
	if err := decodeJSON(r, &req); err != nil {
		_ = utils.WriteBadRequest(w, "Invalid request body", nil)
		return
	}

	if err := utils.ValidateStruct(&req); err != nil {
		HandleValidationError(w, err, h.logger)
		return
	}

	profile, err := h.authService.UpdateProfile(r.Context(), userID, req.Name, req.Email)
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}

	_ = utils.WriteJSON(w, http.StatusOK, utils.SuccessResponse{
		Data:    profile,
		Message: "Profile updated",
	})
}

// HandleListUsers handles GET /api/users
// Admin-gated listing of all user profiles.
func (h *UserHandler) HandleListUsers(w http.ResponseWriter, r *http.Request) {
	limit := queryInt(r, "limit", 50)
	offset := queryInt(r, "offset", 0)

	profiles, err := h.authService.ListUsers(r.Context(), limit, offset)
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}

	_ = utils.WriteOK(w, profiles)
}
