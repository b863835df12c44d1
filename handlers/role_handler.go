package handlers

import (
	"context"
	"net/http"

	"github.com/upb/auth-gateway/models"
	"github.com/upb/auth-gateway/utils"
	"go.uber.org/zap"
)

// RoleService defines the interface for role management operations
type RoleService interface {
	// CreateRole defines a new role name
	CreateRole(ctx context.Context, role models.Role) error

	// ListRoles returns all defined role names
	ListRoles(ctx context.Context) ([]models.Role, error)

	// UserRoles returns the role set held by the user with the given email
	UserRoles(ctx context.Context, email string) (models.RoleSet, error)

	// AssignRole adds a role to a user
	AssignRole(ctx context.Context, email string, role models.Role) error

	// RemoveRole removes a role from a user
	RemoveRole(ctx context.Context, email string, role models.Role) error
}

// RoleAssignmentRequest identifies a user/role pair for assignment or removal
type RoleAssignmentRequest struct {
	Email string `json:"email" validate:"required,email"`
	Role  string `json:"role" validate:"required"`
}

// CreateRoleRequest represents a request to define a new role
type CreateRoleRequest struct {
	Name string `json:"name" validate:"required"`
}

// UserRolesResponse lists the roles held by one user
type UserRolesResponse struct {
	Email string   `json:"email"`
	Roles []string `json:"roles"`
}

// RoleHandler handles role management HTTP requests
type RoleHandler struct {
	roleService RoleService
	logger      *zap.Logger
}

// NewRoleHandler creates a new RoleHandler
func NewRoleHandler(roleService RoleService, logger *zap.Logger) *RoleHandler {
	return &RoleHandler{
		roleService: roleService,
		logger:      logger,
	}
}

// HandleListRoles handles GET /api/roles
func (h *RoleHandler) HandleListRoles(w http.ResponseWriter, r *http.Request) {
	roles, err := h.roleService.ListRoles(r.Context())
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}

	names := make([]string, 0, len(roles))
	for _, role := range roles {
		names = append(names, string(role))
	}
	_ = utils.WriteOK(w, names)
}

// HandleCreateRole handles POST /api/roles
func (h *RoleHandler) HandleCreateRole(w http.ResponseWriter, r *http.Request) {
	var req CreateRoleRequest
	if err := decodeJSON(r, &req); err != nil {
		_ = utils.WriteBadRequest(w, "Invalid request body", nil)
		return
	}

	if err := utils.ValidateStruct(&req); err != nil {
		HandleValidationError(w, err, h.logger)
		return
	}

	if err := h.roleService.CreateRole(r.Context(), models.Role(req.Name)); err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}

	_ = utils.WriteCreated(w, map[string]string{"name": req.Name})
}

// HandleAssignRole handles POST /api/roles/assign
func (h *RoleHandler) HandleAssignRole(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeAssignment(w, r)
	if !ok {
		return
	}

	if err := h.roleService.AssignRole(r.Context(), req.Email, models.Role(req.Role)); err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}

	_ = utils.WriteOK(w, map[string]string{"message": "Role assigned"})
}

// HandleRemoveRole handles POST /api/roles/remove
func (h *RoleHandler) HandleRemoveRole(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeAssignment(w, r)
	if !ok {
		return
	}

	if err := h.roleService.RemoveRole(r.Context(), req.Email, models.Role(req.Role)); err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}

	_ = utils.WriteOK(w, map[string]string{"message": "Role removed"})
}

// HandleUserRoles handles GET /api/roles/user?email=...
func (h *RoleHandler) HandleUserRoles(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")
	if email == "" {
		_ = utils.WriteBadRequest(w, "email query parameter is required", nil)
		return
	}
	if err := utils.ValidateEmail(email); err != nil {
		_ = utils.WriteBadRequest(w, "Invalid email format", nil)
		return
	}

	roles, err := h.roleService.UserRoles(r.Context(), email)
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}

	_ = utils.WriteOK(w, UserRolesResponse{
		Email: email,
		Roles: roles.Names(),
	})
}

func (h *RoleHandler) decodeAssignment(w http.ResponseWriter, r *http.Request) (RoleAssignmentRequest, bool) {
	var req RoleAssignmentRequest
	if err := decodeJSON(r, &req); err != nil {
		_ = utils.WriteBadRequest(w, "Invalid request body", nil)
		return req, false
	}
	if err := utils.ValidateStruct(&req); err != nil {
		HandleValidationError(w, err, h.logger)
		return req, false
	}
	return req, true
}
